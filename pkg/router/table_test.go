package router

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mohamedgamal323/daleel/pkg/sdk"
)

func requiredRoutes() []Route {
	return []Route{
		{Path: "/", Name: RouteHome},
		{Path: "/login", Name: RouteLogin, Meta: Meta{RequiresAuth: Public()}},
		{Path: "/forbidden", Name: RouteForbidden, Meta: Meta{RequiresAuth: Public()}},
	}
}

func TestDefaultRoutes(t *testing.T) {
	table, err := NewTable(DefaultRoutes()...)
	require.NoError(t, err)

	for _, name := range []string{"home", "login", "register", "domains", "categories", "assets", "queries", "profile", "about", "forbidden", "admin", "logout", "settings"} {
		_, ok := table.Lookup(name)
		assert.True(t, ok, "missing route %q", name)
	}

	for _, r := range table.Routes() {
		assert.NotNil(t, r.Meta.RequiresAuth, "route %q should declare requiresAuth", r.Name)
	}

	login, _ := table.Lookup(RouteLogin)
	assert.False(t, login.requiresAuth())
	home, _ := table.Lookup(RouteHome)
	assert.True(t, home.requiresAuth())
	admin, _ := table.Lookup("admin")
	assert.Equal(t, sdk.AdminAccess, admin.Meta.Permission)
}

func TestTable_Match(t *testing.T) {
	table := MustNewTable(DefaultRoutes()...)

	r, ok := table.Match("/domains/")
	require.True(t, ok)
	assert.Equal(t, "domains", r.Name)

	r, ok = table.Match("")
	require.True(t, ok)
	assert.Equal(t, RouteHome, r.Name)

	_, ok = table.Match("/domains/unknown")
	assert.False(t, ok)
}

func TestNewTable_Validation(t *testing.T) {
	tests := []struct {
		name    string
		extra   Route
		wantErr string
	}{
		{"no name", Route{Path: "/x"}, "has no name"},
		{"relative path", Route{Path: "x", Name: "x"}, "must start with /"},
		{"duplicate name", Route{Path: "/other", Name: RouteHome}, "duplicate route name"},
		{"duplicate path", Route{Path: "/login/", Name: "signin"}, "share path"},
		{"unknown permission", Route{Path: "/x", Name: "x", Meta: Meta{Permission: "FLY"}}, "unknown permission"},
		{"unknown role", Route{Path: "/x", Name: "x", Meta: Meta{Roles: []sdk.Role{"root"}}}, "unknown role"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewTable(append(requiredRoutes(), tc.extra)...)
			assert.ErrorContains(t, err, tc.wantErr)
		})
	}

	_, err := NewTable(Route{Path: "/", Name: RouteHome})
	assert.ErrorContains(t, err, `missing the "login" route`)

	assert.Panics(t, func() { MustNewTable() })
}

func TestTable_RoutesIsACopy(t *testing.T) {
	table := MustNewTable(requiredRoutes()...)
	routes := table.Routes()
	routes[0].Name = "changed"

	_, ok := table.Lookup(RouteHome)
	assert.True(t, ok)
	assert.Equal(t, RouteHome, table.Routes()[0].Name)
}

package router

import (
	"fmt"
	"strings"

	"github.com/mohamedgamal323/daleel/pkg/sdk"
)

// Table is an immutable set of routes indexed by name and path.
type Table struct {
	routes []Route
	byName map[string]Route
	byPath map[string]Route
}

// NewTable validates routes and indexes them. The login, home and
// forbidden routes must be present since the guard redirects to them.
func NewTable(routes ...Route) (*Table, error) {
	t := &Table{
		byName: make(map[string]Route, len(routes)),
		byPath: make(map[string]Route, len(routes)),
	}
	for _, r := range routes {
		if r.Name == "" {
			return nil, fmt.Errorf("route %q has no name", r.Path)
		}
		if !strings.HasPrefix(r.Path, "/") {
			return nil, fmt.Errorf("route %q: path %q must start with /", r.Name, r.Path)
		}
		r.Path = normalizePath(r.Path)
		if _, dup := t.byName[r.Name]; dup {
			return nil, fmt.Errorf("duplicate route name %q", r.Name)
		}
		if other, dup := t.byPath[r.Path]; dup {
			return nil, fmt.Errorf("routes %q and %q share path %q", other.Name, r.Name, r.Path)
		}
		if r.Meta.Permission != "" && !sdk.ValidatePermission(r.Meta.Permission) {
			return nil, fmt.Errorf("route %q: unknown permission %q", r.Name, r.Meta.Permission)
		}
		for _, role := range r.Meta.Roles {
			if _, err := sdk.ParseRole(string(role)); err != nil {
				return nil, fmt.Errorf("route %q: %w", r.Name, err)
			}
		}
		r.Meta.Roles = append([]sdk.Role(nil), r.Meta.Roles...)
		t.routes = append(t.routes, r)
		t.byName[r.Name] = r
		t.byPath[r.Path] = r
	}
	for _, required := range []string{RouteHome, RouteLogin, RouteForbidden} {
		if _, ok := t.byName[required]; !ok {
			return nil, fmt.Errorf("route table is missing the %q route", required)
		}
	}
	return t, nil
}

// MustNewTable is NewTable for statically defined tables.
func MustNewTable(routes ...Route) *Table {
	t, err := NewTable(routes...)
	if err != nil {
		panic(err)
	}
	return t
}

// Lookup finds a route by name.
func (t *Table) Lookup(name string) (Route, bool) {
	r, ok := t.byName[name]
	return r, ok
}

// Match finds the route serving path. Trailing slashes are ignored.
func (t *Table) Match(path string) (Route, bool) {
	r, ok := t.byPath[normalizePath(path)]
	return r, ok
}

// Routes returns the routes in declaration order.
func (t *Table) Routes() []Route {
	return append([]Route(nil), t.routes...)
}

// DefaultRoutes is the catalog client's route table. Listing views only
// need a session; mutating actions also need the matching permission.
func DefaultRoutes() []Route {
	return []Route{
		{Path: "/", Name: RouteHome, Component: "HomeView", Meta: Meta{RequiresAuth: Protected()}},
		{Path: "/login", Name: RouteLogin, Component: "LoginView", Meta: Meta{RequiresAuth: Public()}},
		{Path: "/register", Name: RouteRegister, Component: "RegisterView", Meta: Meta{RequiresAuth: Public()}},
		{Path: "/logout", Name: "logout", Component: "LogoutView", Meta: Meta{RequiresAuth: Public()}},
		{Path: "/about", Name: "about", Component: "AboutView", Meta: Meta{RequiresAuth: Public()}},
		{Path: "/settings", Name: "settings", Component: "SettingsView", Meta: Meta{RequiresAuth: Public()}},
		{Path: "/forbidden", Name: RouteForbidden, Component: "ForbiddenView", Meta: Meta{RequiresAuth: Public()}},
		{Path: "/profile", Name: "profile", Component: "ProfileView", Meta: Meta{RequiresAuth: Protected()}},

		{Path: "/domains", Name: "domains", Component: "DomainsView", Meta: Meta{RequiresAuth: Protected()}},
		{Path: "/domains/new", Name: "domain-create", Component: "DomainsView", Meta: Meta{RequiresAuth: Protected(), Permission: sdk.CreateDomain}},
		{Path: "/domains/edit", Name: "domain-update", Component: "DomainsView", Meta: Meta{RequiresAuth: Protected(), Permission: sdk.UpdateDomain}},
		{Path: "/domains/delete", Name: "domain-delete", Component: "DomainsView", Meta: Meta{RequiresAuth: Protected(), Permission: sdk.DeleteDomain}},

		{Path: "/categories", Name: "categories", Component: "CategoriesView", Meta: Meta{RequiresAuth: Protected()}},
		{Path: "/categories/new", Name: "category-create", Component: "CategoriesView", Meta: Meta{RequiresAuth: Protected(), Permission: sdk.CreateCategory}},
		{Path: "/categories/delete", Name: "category-delete", Component: "CategoriesView", Meta: Meta{RequiresAuth: Protected(), Permission: sdk.DeleteCategory}},

		{Path: "/assets", Name: "assets", Component: "AssetsView", Meta: Meta{RequiresAuth: Protected()}},
		{Path: "/assets/delete", Name: "asset-delete", Component: "AssetsView", Meta: Meta{RequiresAuth: Protected(), Permission: sdk.DeleteAsset}},

		{Path: "/queries", Name: "queries", Component: "QueriesView", Meta: Meta{RequiresAuth: Protected(), Permission: sdk.QueryAssets}},

		{Path: "/admin", Name: "admin", Component: "AdminView", Meta: Meta{
			RequiresAuth: Protected(),
			Roles:        []sdk.Role{sdk.RoleDomainAdmin, sdk.RoleGlobalAdmin},
			Permission:   sdk.AdminAccess,
		}},
	}
}

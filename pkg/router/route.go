package router

import (
	"net/url"
	"strings"

	"github.com/mohamedgamal323/daleel/pkg/sdk"
)

// Well-known route names the guard redirects to.
const (
	RouteHome      = "home"
	RouteLogin     = "login"
	RouteRegister  = "register"
	RouteForbidden = "forbidden"
)

// RedirectParam is the query parameter carrying the path a login should
// return to.
const RedirectParam = "redirect"

// Meta is the access metadata attached to a route.
type Meta struct {
	// RequiresAuth nil is treated as true.
	RequiresAuth *bool
	// Roles, when set, restricts the route to the listed roles.
	Roles []sdk.Role
	// Permission, when set, must be held by the session's role.
	Permission sdk.Permission
}

// Route is a named destination.
type Route struct {
	Path      string
	Name      string
	Component string
	Meta      Meta
}

func (r Route) requiresAuth() bool {
	return r.Meta.RequiresAuth == nil || *r.Meta.RequiresAuth
}

func (r Route) restricted() bool {
	return len(r.Meta.Roles) > 0 || r.Meta.Permission != ""
}

// Public marks a route as reachable without a session.
func Public() *bool {
	b := false
	return &b
}

// Protected marks a route as requiring a session.
func Protected() *bool {
	b := true
	return &b
}

// Location is a navigation target.
type Location struct {
	Path  string
	Query url.Values
	// RawQuery is the query exactly as written, when the location was
	// parsed. FullPath prefers it so parameter order survives a redirect.
	RawQuery string
}

// ParseLocation splits a path such as "/domains?page=2" into a Location.
func ParseLocation(raw string) (Location, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return Location{}, err
	}
	loc := Location{Path: normalizePath(u.Path)}
	if q := u.Query(); len(q) > 0 {
		loc.Query = q
		loc.RawQuery = u.RawQuery
	}
	return loc, nil
}

// FullPath returns the path with its encoded query string.
func (l Location) FullPath() string {
	if l.RawQuery != "" {
		return l.Path + "?" + l.RawQuery
	}
	if len(l.Query) == 0 {
		return l.Path
	}
	return l.Path + "?" + l.Query.Encode()
}

// RedirectTarget returns the path carried in the redirect query parameter,
// or "" when there is none.
func (l Location) RedirectTarget() string {
	return l.Query.Get(RedirectParam)
}

func normalizePath(p string) string {
	if p == "" {
		return "/"
	}
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	if len(p) > 1 {
		p = strings.TrimRight(p, "/")
	}
	return p
}

package router

import (
	"net/url"

	"github.com/mohamedgamal323/daleel/pkg/sdk"
)

// Allower answers role checks for the guard. *sdk.Authorizer implements it.
type Allower interface {
	Allows(role sdk.Role, permission sdk.Permission) bool
	AllowsAnyRole(role sdk.Role, roles []sdk.Role) bool
}

// DecisionKind is the outcome of a guard check.
type DecisionKind int

const (
	Proceed DecisionKind = iota
	Redirect
)

func (k DecisionKind) String() string {
	if k == Redirect {
		return "redirect"
	}
	return "proceed"
}

// Decision is what the guard wants done with a navigation.
type Decision struct {
	Kind DecisionKind
	// Route names the redirect destination. Empty when proceeding.
	Route  string
	Query  url.Values
	Reason string
}

// Decide applies the navigation rules in order:
//
//  1. a protected route without a session goes to login, remembering the
//     target in the redirect query parameter;
//  2. a session visiting login or register goes home;
//  3. a session whose role lacks the route's roles or permission goes to
//     forbidden, as does a session whose profile is not yet known;
//  4. everything else proceeds.
//
// Decide performs no I/O.
func Decide(target Location, route Route, state sdk.SessionState, authz Allower) Decision {
	authenticated := state.IsAuthenticated()

	if route.requiresAuth() && !authenticated {
		return Decision{
			Kind:   Redirect,
			Route:  RouteLogin,
			Query:  url.Values{RedirectParam: {target.FullPath()}},
			Reason: "authentication required",
		}
	}

	if authenticated && (route.Name == RouteLogin || route.Name == RouteRegister) {
		return Decision{Kind: Redirect, Route: RouteHome, Reason: "already authenticated"}
	}

	if authenticated && route.restricted() {
		if state.User == nil {
			return Decision{Kind: Redirect, Route: RouteForbidden, Reason: "user profile not loaded"}
		}
		role := state.User.Role
		if len(route.Meta.Roles) > 0 && !authz.AllowsAnyRole(role, route.Meta.Roles) {
			return Decision{Kind: Redirect, Route: RouteForbidden, Reason: "role " + string(role) + " not allowed"}
		}
		if route.Meta.Permission != "" && !authz.Allows(role, route.Meta.Permission) {
			return Decision{Kind: Redirect, Route: RouteForbidden, Reason: "missing permission " + string(route.Meta.Permission)}
		}
	}

	return Decision{Kind: Proceed}
}

package router

import (
	"errors"
	"fmt"
	"net/url"
	"sync"

	"github.com/go-logr/logr"

	"github.com/mohamedgamal323/daleel/pkg/sdk"
)

var (
	// ErrRouteNotFound is returned when no route serves a path or name.
	ErrRouteNotFound = errors.New("route not found")
	// ErrTooManyRedirects is returned when guard redirects do not settle.
	ErrTooManyRedirects = errors.New("too many redirects")
)

// DefaultMaxRedirects bounds the redirects followed by one navigation.
const DefaultMaxRedirects = 5

// StateSource provides session snapshots. *sdk.Session implements it.
type StateSource interface {
	Snapshot() sdk.SessionState
}

// Resolution is where a navigation ended up.
type Resolution struct {
	Route    Route
	Location Location
	// Requested is the location originally asked for.
	Requested Location
	// Redirects lists the guard redirects followed, in order.
	Redirects []Decision
}

// Redirected reports whether the guard changed the destination.
func (r *Resolution) Redirected() bool {
	return len(r.Redirects) > 0
}

// Router resolves navigations against a route table and runs the guard
// before each one.
type Router struct {
	table        *Table
	session      StateSource
	authz        Allower
	log          logr.Logger
	maxRedirects int

	mu      sync.Mutex
	current *Resolution
}

// Option configures a Router.
type Option func(*Router)

// WithLogger sets the router logger. Guard decisions are logged at V(1).
func WithLogger(log logr.Logger) Option {
	return func(r *Router) { r.log = log }
}

// WithMaxRedirects overrides DefaultMaxRedirects.
func WithMaxRedirects(n int) Option {
	return func(r *Router) { r.maxRedirects = n }
}

// New creates a Router.
func New(table *Table, session StateSource, authz Allower, opts ...Option) *Router {
	r := &Router{
		table:        table,
		session:      session,
		authz:        authz,
		log:          logr.Discard(),
		maxRedirects: DefaultMaxRedirects,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Table returns the router's route table.
func (r *Router) Table() *Table {
	return r.table
}

// Navigate resolves to, following guard redirects. The session is
// snapshotted once per hop so each decision sees a consistent state.
func (r *Router) Navigate(to Location) (*Resolution, error) {
	res := &Resolution{Requested: to}
	loc := to

	for {
		route, ok := r.table.Match(loc.Path)
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrRouteNotFound, loc.Path)
		}
		loc.Path = route.Path

		state := r.session.Snapshot()
		decision := Decide(loc, route, state, r.authz)
		r.log.V(1).Info("route guard",
			"to", loc.FullPath(),
			"route", route.Name,
			"authenticated", state.IsAuthenticated(),
			"requiresAuth", route.requiresAuth(),
			"decision", decision.Kind.String(),
			"reason", decision.Reason,
		)

		if decision.Kind == Proceed {
			res.Route = route
			res.Location = loc
			r.mu.Lock()
			r.current = res
			r.mu.Unlock()
			return res, nil
		}

		if len(res.Redirects) >= r.maxRedirects {
			return nil, fmt.Errorf("%w: gave up at %s after %d", ErrTooManyRedirects, loc.FullPath(), len(res.Redirects))
		}
		res.Redirects = append(res.Redirects, decision)

		next, ok := r.table.Lookup(decision.Route)
		if !ok {
			return nil, fmt.Errorf("%w: redirect target %q", ErrRouteNotFound, decision.Route)
		}
		loc = Location{Path: next.Path, Query: decision.Query}
	}
}

// NavigateTo resolves the named route with an optional query.
func (r *Router) NavigateTo(name string, query url.Values) (*Resolution, error) {
	route, ok := r.table.Lookup(name)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrRouteNotFound, name)
	}
	return r.Navigate(Location{Path: route.Path, Query: query})
}

// Current returns the last successful resolution, or nil.
func (r *Router) Current() *Resolution {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.current
}

// HandleSessionExpired moves to login after the session was cleared,
// carrying the current location so the user can return to it.
func (r *Router) HandleSessionExpired() (*Resolution, error) {
	var query url.Values
	if cur := r.Current(); cur != nil && cur.Route.requiresAuth() {
		query = url.Values{RedirectParam: {cur.Location.FullPath()}}
	}
	r.log.Info("session expired, returning to login")
	return r.NavigateTo(RouteLogin, query)
}

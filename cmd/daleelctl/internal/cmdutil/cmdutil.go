package cmdutil

import (
	"context"
	"errors"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/mohamedgamal323/daleel/cmd/daleelctl/internal/config"
	"github.com/mohamedgamal323/daleel/cmd/daleelctl/internal/dirctx"
	"github.com/mohamedgamal323/daleel/pkg/router"
	"github.com/mohamedgamal323/daleel/pkg/sdk"
)

// RouteAnnotation names the route a runnable command navigates to.
const RouteAnnotation = "route"

// Route returns the annotations binding a command to the named route.
func Route(name string) map[string]string {
	return map[string]string{RouteAnnotation: name}
}

// RouteOf returns the route a command is bound to.
func RouteOf(cmd *cobra.Command) (string, bool) {
	name, ok := cmd.Annotations[RouteAnnotation]
	return name, ok && name != ""
}

// ErrAlreadyAuthenticated is returned when a logged-in user runs login or
// register. The root command reports it as a notice, not a failure.
var ErrAlreadyAuthenticated = errors.New("already logged in")

// LoginRequiredError is returned when a command needs a session.
type LoginRequiredError struct {
	Redirect string
}

func (e *LoginRequiredError) Error() string {
	return "not logged in"
}

// Hint returns the command that logs in and returns to the original target.
func (e *LoginRequiredError) Hint() string {
	if e.Redirect == "" {
		return "daleelctl auth login"
	}
	return "daleelctl auth login --redirect " + e.Redirect
}

// ForbiddenError is returned when the session's role may not run a command.
type ForbiddenError struct {
	Route  string
	Reason string
}

func (e *ForbiddenError) Error() string {
	return fmt.Sprintf("permission denied for %s: %s", e.Route, e.Reason)
}

// Outcome turns a guarded navigation into the command's pre-run result.
func Outcome(requested string, res *router.Resolution) error {
	if !res.Redirected() {
		return nil
	}
	last := res.Redirects[len(res.Redirects)-1]
	switch res.Route.Name {
	case router.RouteLogin:
		return &LoginRequiredError{Redirect: res.Location.RedirectTarget()}
	case router.RouteHome:
		return ErrAlreadyAuthenticated
	case router.RouteForbidden:
		return &ForbiddenError{Route: requested, Reason: last.Reason}
	}
	return fmt.Errorf("navigation to %s was redirected to %s", requested, res.Route.Name)
}

// Guard navigates the router to the command's route. Commands without a
// route (groups, help, completion) are not navigations and pass through.
func Guard(cmd *cobra.Command, r *router.Router) error {
	name, ok := RouteOf(cmd)
	if !ok {
		return nil
	}
	res, err := r.NavigateTo(name, nil)
	if err != nil {
		return err
	}
	return Outcome(name, res)
}

// Session returns the session for the running command.
func Session(ctx context.Context) (*sdk.Session, error) {
	return config.MustFromContext(ctx).ClientProvider.Session(ctx)
}

// SDKClient returns the API client for the running command.
func SDKClient(ctx context.Context) (*sdk.Client, error) {
	return config.MustFromContext(ctx).ClientProvider.SDKClient()
}

// WithTimeout bounds ctx by the configured request timeout.
func WithTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, config.MustFromContext(ctx).Timeout)
}

// Scope resolves explicit --domain/--category flags against the
// directory's .daleel file.
func Scope(domainID, categoryID string) (dirctx.ScopeRef, error) {
	dc, err := dirctx.Read()
	if err != nil {
		return dirctx.ScopeRef{}, err
	}
	return dirctx.ResolveScope(dirctx.ScopeRef{DomainID: domainID, CategoryID: categoryID}, dc.Scope()), nil
}

// NewTable returns a tabwriter laid out like the rest of the CLI's tables.
func NewTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
}

// FormatTime renders an optional API timestamp.
func FormatTime(ts *sdk.Timestamp) string {
	if ts == nil || ts.IsZero() {
		return "-"
	}
	return ts.Local().Format("2006-01-02 15:04")
}

// OrDash renders empty strings as "-".
func OrDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

package client

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-logr/logr"

	"github.com/mohamedgamal323/daleel/cmd/daleelctl/internal/auth"
	"github.com/mohamedgamal323/daleel/pkg/router"
	"github.com/mohamedgamal323/daleel/pkg/sdk"
)

// Options configures a Provider.
type Options struct {
	ServerURL      string
	CredentialsDir string
	// BearerToken, when set, is used instead of the credential file and is
	// never written to disk.
	BearerToken string
	Timeout     time.Duration
	Logger      logr.Logger
}

// Provider lazily builds the credential store, SDK client, session and
// router shared by every command in one invocation.
type Provider struct {
	opts Options

	storeOnce sync.Once
	store     sdk.CredentialStore
	storeErr  error

	sdkOnce   sync.Once
	sdkClient *sdk.Client
	sdkErr    error

	sessionOnce sync.Once
	session     *sdk.Session
	sessionErr  error

	routerOnce sync.Once
	router     *router.Router
	routerErr  error

	authz *sdk.Authorizer

	mu      sync.Mutex
	expired *router.Resolution
}

// NewProvider constructs a new Provider.
func NewProvider(opts Options) *Provider {
	if opts.Logger.GetSink() == nil {
		opts.Logger = logr.Discard()
	}
	return &Provider{opts: opts, authz: sdk.MustNewAuthorizer()}
}

// ServerURL returns the API root commands talk to.
func (p *Provider) ServerURL() string {
	return p.opts.ServerURL
}

// Ephemeral reports whether credentials come from a bearer token rather
// than the credential file.
func (p *Provider) Ephemeral() bool {
	return p.opts.BearerToken != ""
}

// Store returns the credential store: a memory store seeded with the
// bearer token when one was given, the file store otherwise.
func (p *Provider) Store() (sdk.CredentialStore, error) {
	p.storeOnce.Do(func() {
		if p.opts.BearerToken != "" {
			mem := sdk.NewMemoryStore()
			p.storeErr = mem.SaveCredentials(&sdk.Credentials{AccessToken: p.opts.BearerToken, TokenType: "Bearer"})
			p.store = mem
			return
		}
		store, err := auth.NewFileStore(p.opts.CredentialsDir)
		if err != nil {
			p.storeErr = fmt.Errorf("failed to create credential store: %w", err)
			return
		}
		p.store = store
	})
	if p.storeErr != nil {
		return nil, p.storeErr
	}
	return p.store, nil
}

// Credentials loads the persisted credentials.
func (p *Provider) Credentials() (*sdk.Credentials, error) {
	store, err := p.Store()
	if err != nil {
		return nil, err
	}
	return store.LoadCredentials()
}

// SDKClient returns the SDK client bound to the credential store.
func (p *Provider) SDKClient() (*sdk.Client, error) {
	p.sdkOnce.Do(func() {
		store, err := p.Store()
		if err != nil {
			p.sdkErr = err
			return
		}
		p.sdkClient = sdk.NewClient(p.opts.ServerURL,
			sdk.WithCredentialStore(store),
			sdk.WithHTTPClient(NewHTTPClient(p.opts.Timeout)),
			sdk.WithLogger(p.opts.Logger.WithName("transport")),
		)
	})
	if p.sdkErr != nil {
		return nil, p.sdkErr
	}
	return p.sdkClient, nil
}

// Session returns the process session, seeded from the credential store
// on first use.
func (p *Provider) Session(ctx context.Context) (*sdk.Session, error) {
	p.sessionOnce.Do(func() {
		client, err := p.SDKClient()
		if err != nil {
			p.sessionErr = err
			return
		}
		store, _ := p.Store()
		session := sdk.NewSession(client, store, sdk.WithSessionLogger(p.opts.Logger.WithName("session")))

		ctx, cancel := ensureTimeout(ctx, 5*time.Second)
		defer cancel()
		if err := session.Init(ctx); err != nil {
			p.sessionErr = err
			return
		}
		p.session = session
	})
	if p.sessionErr != nil {
		return nil, p.sessionErr
	}
	return p.session, nil
}

// Router returns the router guarding commands. It follows the session to
// login when the server rejects the token.
func (p *Provider) Router(ctx context.Context) (*router.Router, error) {
	p.routerOnce.Do(func() {
		session, err := p.Session(ctx)
		if err != nil {
			p.routerErr = err
			return
		}
		table, err := router.NewTable(router.DefaultRoutes()...)
		if err != nil {
			p.routerErr = err
			return
		}
		client, _ := p.SDKClient()
		r := router.New(table, session, p.authz, router.WithLogger(p.opts.Logger.WithName("router")))
		client.Transport().OnSessionExpired(func(string) {
			res, err := r.HandleSessionExpired()
			if err != nil {
				p.opts.Logger.Error(err, "failed to redirect after session expiry")
				return
			}
			p.mu.Lock()
			p.expired = res
			p.mu.Unlock()
		})
		p.router = r
	})
	if p.routerErr != nil {
		return nil, p.routerErr
	}
	return p.router, nil
}

// Authorizer returns the role/permission evaluator.
func (p *Provider) Authorizer() *sdk.Authorizer {
	return p.authz
}

// ExpiredRedirect returns the login resolution produced by the last
// session expiry, or nil.
func (p *Provider) ExpiredRedirect() *router.Resolution {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.expired
}

func ensureTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if ctx == nil {
		ctx = context.Background()
	}

	if _, ok := ctx.Deadline(); ok {
		return ctx, func() {}
	}

	ctxWithTimeout, cancel := context.WithTimeout(ctx, timeout)
	return ctxWithTimeout, cancel
}

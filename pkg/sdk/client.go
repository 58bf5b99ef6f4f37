package sdk

import (
	"net/http"

	"github.com/go-logr/logr"
)

// Client provides a high-level interface to the Daleel catalog API.
// It wraps a Transport with typed request and response methods.
type Client struct {
	transport *Transport
	baseURL   string
}

// ClientOptions configures SDK client construction.
type ClientOptions struct {
	HTTPClient *http.Client
	Store      CredentialStore
	Logger     logr.Logger
}

// ClientOption mutates ClientOptions.
type ClientOption func(*ClientOptions)

// WithHTTPClient overrides the HTTP client used for API calls.
func WithHTTPClient(client *http.Client) ClientOption {
	return func(opts *ClientOptions) {
		opts.HTTPClient = client
	}
}

// WithCredentialStore sets the store the bearer token is read from.
func WithCredentialStore(store CredentialStore) ClientOption {
	return func(opts *ClientOptions) {
		opts.Store = store
	}
}

// WithLogger sets the logger used by the transport.
func WithLogger(log logr.Logger) ClientOption {
	return func(opts *ClientOptions) {
		opts.Logger = log
	}
}

// NewClient creates a new SDK client that communicates with the API rooted
// at baseURL. Without a credential store only unauthenticated endpoints
// and WithBearer requests carry a token.
func NewClient(baseURL string, optFns ...ClientOption) *Client {
	opts := ClientOptions{Logger: logr.Discard()}
	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.HTTPClient == nil {
		opts.HTTPClient = http.DefaultClient
	}

	t := NewTransport(baseURL, opts.Store, opts.HTTPClient, opts.Logger)
	return &Client{
		transport: t,
		baseURL:   t.BaseURL(),
	}
}

// Transport exposes the underlying request function.
func (c *Client) Transport() *Transport {
	return c.transport
}

// BaseURL returns the API root.
func (c *Client) BaseURL() string {
	return c.baseURL
}

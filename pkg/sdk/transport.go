package sdk

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"

	"github.com/go-logr/logr"
	"golang.org/x/oauth2"
)

// Transport shuttles JSON requests to the catalog API. It attaches the
// persisted bearer token to every request and turns a 401 on an
// authenticated request into a forced logout.
type Transport struct {
	baseURL    string
	httpClient *http.Client
	store      CredentialStore
	log        logr.Logger

	mu        sync.Mutex
	onExpired []func(token string)
	// expireMu orders concurrent 401 handling against the store.
	expireMu sync.Mutex
}

// NewTransport creates a Transport rooted at baseURL (e.g.
// "https://daleel.example.com/api/v1"). The store may be nil, in which
// case only explicit WithBearer tokens are sent.
func NewTransport(baseURL string, store CredentialStore, httpClient *http.Client, log logr.Logger) *Transport {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Transport{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
		store:      store,
		log:        log,
	}
}

// OnSessionExpired registers fn to run after the transport has cleared the
// persisted token in response to a 401. fn receives the rejected token;
// state bound to a different token must be left alone.
func (t *Transport) OnSessionExpired(fn func(token string)) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.onExpired = append(t.onExpired, fn)
}

// BaseURL returns the API root the transport talks to.
func (t *Transport) BaseURL() string {
	return t.baseURL
}

type requestOptions struct {
	noAuth   bool
	bearer   string
	query    url.Values
	envelope bool
}

// RequestOption customises a single request.
type RequestOption func(*requestOptions)

// WithoutAuth sends the request without an Authorization header.
func WithoutAuth() RequestOption {
	return func(o *requestOptions) { o.noAuth = true }
}

// WithBearer sends token instead of the persisted one.
func WithBearer(token string) RequestOption {
	return func(o *requestOptions) { o.bearer = token }
}

// WithQuery adds query parameters to the request URL.
func WithQuery(q url.Values) RequestOption {
	return func(o *requestOptions) { o.query = q }
}

// WithEnvelope makes Do decode the data of a {"success": ..., "data": ...}
// envelope instead of the whole body. Bodies without one decode as is.
func WithEnvelope() RequestOption {
	return func(o *requestOptions) { o.envelope = true }
}

// Response is the raw outcome of a request.
type Response struct {
	StatusCode int
	Body       []byte
}

// OK reports whether the status is 2xx.
func (r *Response) OK() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// Raw performs the request and returns the response without interpreting
// the status code, except that a 401 on an authenticated request still
// triggers the session-expired handling and returns ErrSessionExpired.
// A 401 for a token that has since been replaced in the store leaves the
// store and the hooks untouched.
func (t *Transport) Raw(ctx context.Context, method, path string, body any, opts ...RequestOption) (*Response, error) {
	var o requestOptions
	for _, fn := range opts {
		fn(&o)
	}

	endpoint, err := t.url(path, o.query)
	if err != nil {
		return nil, err
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	token := ""
	if !o.noAuth {
		token = o.bearer
		if token == "" {
			token = storedToken(t.store)
		}
	}

	resp, err := t.client(token).Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response body: %w", err)
	}

	if resp.StatusCode == http.StatusUnauthorized && token != "" {
		t.expire(method, path, token)
		return nil, ErrSessionExpired
	}

	return &Response{StatusCode: resp.StatusCode, Body: data}, nil
}

// Do performs the request and decodes a 2xx JSON body into out (when out
// is non-nil). Non-2xx responses become *APIError. All catalog calls go
// through here.
func (t *Transport) Do(ctx context.Context, method, path string, body, out any, opts ...RequestOption) error {
	resp, err := t.Raw(ctx, method, path, body, opts...)
	if err != nil {
		return err
	}
	if !resp.OK() {
		return &APIError{
			Method:     method,
			Path:       path,
			StatusCode: resp.StatusCode,
			Message:    errorDetail(resp.Body),
		}
	}
	if out == nil {
		return nil
	}
	payload := resp.Body
	var o requestOptions
	for _, fn := range opts {
		fn(&o)
	}
	if o.envelope {
		payload = unwrapEnvelope(payload)
	}
	if len(bytes.TrimSpace(payload)) == 0 {
		return nil
	}
	if err := json.Unmarshal(payload, out); err != nil {
		return &MalformedResponseError{Endpoint: method + " " + path, Err: err}
	}
	return nil
}

// client returns an http.Client that injects token, or the base client
// when there is nothing to inject.
func (t *Transport) client(token string) *http.Client {
	if token == "" {
		return t.httpClient
	}
	return &http.Client{
		Transport: &oauth2.Transport{
			Source: oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token, TokenType: "Bearer"}),
			Base:   t.httpClient.Transport,
		},
		CheckRedirect: t.httpClient.CheckRedirect,
		Jar:           t.httpClient.Jar,
		Timeout:       t.httpClient.Timeout,
	}
}

func (t *Transport) url(path string, query url.Values) (string, error) {
	u, err := url.Parse(t.baseURL + "/" + strings.TrimLeft(path, "/"))
	if err != nil {
		return "", fmt.Errorf("invalid request URL: %w", err)
	}
	if len(query) > 0 {
		q := u.Query()
		for k, vs := range query {
			for _, v := range vs {
				q.Add(k, v)
			}
		}
		u.RawQuery = q.Encode()
	}
	return u.String(), nil
}

// saveCredentials persists creds under the same lock expire uses, so a
// late 401 for the previous token cannot delete them.
func (t *Transport) saveCredentials(store CredentialStore, creds *Credentials) error {
	t.expireMu.Lock()
	defer t.expireMu.Unlock()
	return store.SaveCredentials(creds)
}

func (t *Transport) expire(method, path, token string) {
	if !t.clearStored(method, path, token) {
		return
	}
	t.mu.Lock()
	hooks := append([]func(string){}, t.onExpired...)
	t.mu.Unlock()
	for _, fn := range hooks {
		fn(token)
	}
}

// clearStored deletes the persisted credentials if they still hold token.
// Hooks run after expireMu is released since they take session locks that
// are held around saveCredentials.
func (t *Transport) clearStored(method, path, token string) bool {
	t.expireMu.Lock()
	defer t.expireMu.Unlock()

	if t.store != nil {
		if current := storedToken(t.store); current != token {
			t.log.V(1).Info("stale token rejected, session left alone", "method", method, "path", path)
			return false
		}
	}

	t.log.Info("authenticated request rejected, clearing session", "method", method, "path", path)
	if t.store != nil {
		if err := t.store.DeleteCredentials(); err != nil {
			t.log.Error(err, "failed to clear persisted credentials")
		}
	}
	return true
}

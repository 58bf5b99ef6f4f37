package sdk_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/mohamedgamal323/daleel/pkg/sdk"
)

// fakeAPI is a test server with per-route handlers. Requests are recorded
// so tests can assert on headers and bodies.
type fakeAPI struct {
	t        *testing.T
	mu       sync.Mutex
	handlers map[string]http.HandlerFunc
	requests []recordedRequest
	server   *httptest.Server
}

type recordedRequest struct {
	Method        string
	Path          string
	Query         string
	Authorization string
	Body          map[string]any
}

func newFakeAPI(t *testing.T) *fakeAPI {
	t.Helper()
	f := &fakeAPI{t: t, handlers: map[string]http.HandlerFunc{}}
	f.server = httptest.NewServer(http.HandlerFunc(f.serve))
	t.Cleanup(f.server.Close)
	return f
}

func (f *fakeAPI) handle(method, path string, h http.HandlerFunc) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.handlers[method+" "+path] = h
}

func (f *fakeAPI) serve(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/api/v1")
	rec := recordedRequest{
		Method:        r.Method,
		Path:          path,
		Query:         r.URL.RawQuery,
		Authorization: r.Header.Get("Authorization"),
	}
	if r.Body != nil {
		var body map[string]any
		if err := json.NewDecoder(r.Body).Decode(&body); err == nil {
			rec.Body = body
		}
	}

	f.mu.Lock()
	f.requests = append(f.requests, rec)
	h, ok := f.handlers[r.Method+" "+path]
	f.mu.Unlock()

	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]any{"detail": "Not Found"})
		return
	}
	h(w, r)
}

func (f *fakeAPI) recorded() []recordedRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]recordedRequest(nil), f.requests...)
}

func (f *fakeAPI) lastRequest(method, path string) (recordedRequest, bool) {
	reqs := f.recorded()
	for i := len(reqs) - 1; i >= 0; i-- {
		if reqs[i].Method == method && reqs[i].Path == path {
			return reqs[i], true
		}
	}
	return recordedRequest{}, false
}

func (f *fakeAPI) url() string {
	return f.server.URL + "/api/v1"
}

func (f *fakeAPI) client(store sdk.CredentialStore) *sdk.Client {
	return sdk.NewClient(f.url(), sdk.WithCredentialStore(store), sdk.WithHTTPClient(f.server.Client()))
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func respond(status int, v any) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, status, v)
	}
}

func aliceLoginResponse() map[string]any {
	return map[string]any{
		"access_token":  "T1",
		"refresh_token": "R1",
		"token_type":    "bearer",
		"expires_in":    3600,
		"user": map[string]any{
			"id":        "u1",
			"username":  "alice",
			"email":     "a@x.com",
			"role":      "user",
			"is_active": true,
		},
	}
}

func profile(id, username, role string) map[string]any {
	return map[string]any{
		"id":         id,
		"username":   username,
		"email":      username + "@x.com",
		"role":       role,
		"is_active":  true,
		"created_at": "2024-03-01T10:00:00",
		"updated_at": "2024-03-02T10:00:00Z",
	}
}

package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mohamedgamal323/daleel/cmd/daleelctl/internal/auth"
	"github.com/mohamedgamal323/daleel/pkg/router"
	"github.com/mohamedgamal323/daleel/pkg/sdk"
)

func profileServer(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if r.URL.Path != "/api/v1/auth/me" {
			w.WriteHeader(status)
			_, _ = w.Write([]byte(`{"detail":"Token expired"}`))
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestProvider_FileStoreSession(t *testing.T) {
	srv := profileServer(t, http.StatusOK, `{"id":"u1","username":"alice","role":"domain_admin"}`)
	dir := t.TempDir()
	store, err := auth.NewFileStore(dir)
	require.NoError(t, err)
	require.NoError(t, store.SaveCredentials(&sdk.Credentials{AccessToken: "T1"}))

	p := NewProvider(Options{ServerURL: srv.URL + "/api/v1", CredentialsDir: dir})
	assert.False(t, p.Ephemeral())

	session, err := p.Session(context.Background())
	require.NoError(t, err)
	assert.True(t, session.IsAuthenticated())
	assert.True(t, session.IsAdmin())
	assert.Equal(t, "alice", session.User().Username)

	again, err := p.Session(context.Background())
	require.NoError(t, err)
	assert.Same(t, session, again)
}

func TestProvider_BearerTokenIsEphemeral(t *testing.T) {
	srv := profileServer(t, http.StatusOK, `{"id":"u1","username":"ci","role":"user"}`)
	dir := t.TempDir()

	p := NewProvider(Options{ServerURL: srv.URL + "/api/v1", CredentialsDir: dir, BearerToken: "CI"})
	assert.True(t, p.Ephemeral())

	creds, err := p.Credentials()
	require.NoError(t, err)
	assert.Equal(t, "CI", creds.AccessToken)

	session, err := p.Session(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "ci", session.User().Username)

	fileStore, err := auth.NewFileStore(dir)
	require.NoError(t, err)
	_, err = fileStore.LoadCredentials()
	assert.ErrorIs(t, err, sdk.ErrNotLoggedIn, "bearer tokens are never persisted")
}

func TestProvider_RouterFollowsExpiry(t *testing.T) {
	srv := profileServer(t, http.StatusUnauthorized, `{"id":"u1","username":"alice","role":"user"}`)
	dir := t.TempDir()
	store, err := auth.NewFileStore(dir)
	require.NoError(t, err)
	require.NoError(t, store.SaveCredentials(&sdk.Credentials{AccessToken: "T1"}))

	p := NewProvider(Options{ServerURL: srv.URL + "/api/v1", CredentialsDir: dir})
	r, err := p.Router(context.Background())
	require.NoError(t, err)

	_, err = r.NavigateTo("assets", nil)
	require.NoError(t, err)
	assert.Nil(t, p.ExpiredRedirect())

	client, err := p.SDKClient()
	require.NoError(t, err)
	_, err = client.ListAssets(context.Background(), "", sdk.ListOptions{})
	require.ErrorIs(t, err, sdk.ErrSessionExpired)

	expired := p.ExpiredRedirect()
	require.NotNil(t, expired)
	assert.Equal(t, router.RouteLogin, expired.Route.Name)
	assert.Equal(t, "/assets", expired.Location.RedirectTarget())

	_, err = store.LoadCredentials()
	assert.ErrorIs(t, err, sdk.ErrNotLoggedIn)
}

func TestNewHTTPClient(t *testing.T) {
	c := NewHTTPClient(0)
	assert.Equal(t, DefaultTimeout, c.Timeout)
	assert.NotNil(t, c.Transport)
}

package auth

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mohamedgamal323/daleel/pkg/sdk"
)

func TestFileStore_RoundTrip(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", ".daleel")
	store, err := NewFileStore(dir)
	require.NoError(t, err)

	_, err = store.LoadCredentials()
	assert.ErrorIs(t, err, sdk.ErrNotLoggedIn)

	expires := time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, store.SaveCredentials(&sdk.Credentials{
		AccessToken:  "T1",
		TokenType:    "Bearer",
		RefreshToken: "R1",
		ExpiresAt:    expires,
	}))

	info, err := os.Stat(store.Path())
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
	_, err = os.Stat(store.Path() + ".tmp")
	assert.True(t, os.IsNotExist(err), "temp file is renamed away")

	creds, err := store.LoadCredentials()
	require.NoError(t, err)
	assert.Equal(t, "T1", creds.AccessToken)
	assert.Equal(t, "R1", creds.RefreshToken)
	assert.True(t, expires.Equal(creds.ExpiresAt))

	require.NoError(t, store.DeleteCredentials())
	_, err = store.LoadCredentials()
	assert.ErrorIs(t, err, sdk.ErrNotLoggedIn)
	assert.NoError(t, store.DeleteCredentials(), "deleting a missing file is fine")
}

func TestFileStore_PersistsAcrossInstances(t *testing.T) {
	dir := t.TempDir()
	first, err := NewFileStore(dir)
	require.NoError(t, err)
	require.NoError(t, first.SaveCredentials(&sdk.Credentials{AccessToken: "T1"}))

	second, err := NewFileStore(dir)
	require.NoError(t, err)
	creds, err := second.LoadCredentials()
	require.NoError(t, err)
	assert.Equal(t, "T1", creds.AccessToken)
}

func TestFileStore_CorruptFile(t *testing.T) {
	dir := t.TempDir()
	store, err := NewFileStore(dir)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(store.Path(), []byte("{oops"), 0600))

	_, err = store.LoadCredentials()
	require.Error(t, err)
	assert.NotErrorIs(t, err, sdk.ErrNotLoggedIn)
}

func TestFileStore_EmptyTokenIsLoggedOut(t *testing.T) {
	dir := t.TempDir()
	store, err := NewFileStore(dir)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(store.Path(), []byte(`{"access_token":""}`), 0600))

	_, err = store.LoadCredentials()
	assert.ErrorIs(t, err, sdk.ErrNotLoggedIn)
}

func TestFileStore_DefaultDir(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	store, err := NewFileStore("")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".daleel", "credentials.json"), store.Path())
}

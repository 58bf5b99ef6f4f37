package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testFlags() *pflag.FlagSet {
	fs := pflag.NewFlagSet("daleelctl", pflag.ContinueOnError)
	fs.String("server", DefaultServerURL, "")
	fs.String("config", "", "")
	fs.String("credentials-dir", "", "")
	fs.Bool("non-interactive", false, "")
	fs.Bool("verbose", false, "")
	fs.Duration("timeout", 30*time.Second, "")
	return fs
}

func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	for _, key := range []string{"DALEEL_SERVER", "DALEEL_TOKEN", "DALEEL_NON_INTERACTIVE", "DALEEL_VERBOSE", "DALEEL_TIMEOUT", "DALEEL_CREDENTIALS_DIR"} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
	return home
}

func TestLoad_Defaults(t *testing.T) {
	home := isolate(t)

	s, err := Load(testFlags())
	require.NoError(t, err)
	assert.Equal(t, DefaultServerURL, s.ServerURL)
	assert.Equal(t, filepath.Join(home, ".daleel"), s.CredentialsDir)
	assert.False(t, s.NonInteractive)
	assert.Equal(t, 30*time.Second, s.Timeout)
	assert.Empty(t, s.Token)
	assert.Empty(t, s.ConfigFile)
}

func TestLoad_Precedence(t *testing.T) {
	home := isolate(t)
	dir := filepath.Join(home, ".daleel")
	require.NoError(t, os.MkdirAll(dir, 0700))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(
		"server: https://file.example.com/api/v1/\ntimeout: 5s\nverbose: true\n"), 0600))

	t.Run("config file", func(t *testing.T) {
		s, err := Load(testFlags())
		require.NoError(t, err)
		assert.Equal(t, "https://file.example.com/api/v1", s.ServerURL)
		assert.Equal(t, 5*time.Second, s.Timeout)
		assert.True(t, s.Verbose)
		assert.Equal(t, filepath.Join(dir, "config.yaml"), s.ConfigFile)
	})

	t.Run("env beats file", func(t *testing.T) {
		t.Setenv("DALEEL_SERVER", "https://env.example.com/api/v1")
		t.Setenv("DALEEL_NON_INTERACTIVE", "1")
		t.Setenv("DALEEL_TOKEN", "T-env")
		s, err := Load(testFlags())
		require.NoError(t, err)
		assert.Equal(t, "https://env.example.com/api/v1", s.ServerURL)
		assert.True(t, s.NonInteractive)
		assert.Equal(t, "T-env", s.Token)
	})

	t.Run("flag beats env", func(t *testing.T) {
		t.Setenv("DALEEL_SERVER", "https://env.example.com/api/v1")
		fs := testFlags()
		require.NoError(t, fs.Parse([]string{"--server", "https://flag.example.com/api/v1", "--timeout", "2s"}))
		s, err := Load(fs)
		require.NoError(t, err)
		assert.Equal(t, "https://flag.example.com/api/v1", s.ServerURL)
		assert.Equal(t, 2*time.Second, s.Timeout)
	})
}

func TestLoad_ExplicitConfigFile(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "custom.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server: https://custom.example.com\ncredentials_dir: ~/creds\n"), 0600))

	fs := testFlags()
	require.NoError(t, fs.Parse([]string{"--config", path}))
	s, err := Load(fs)
	require.NoError(t, err)
	assert.Equal(t, "https://custom.example.com", s.ServerURL)
	assert.Equal(t, filepath.Join(os.Getenv("HOME"), "creds"), s.CredentialsDir)

	fs = testFlags()
	require.NoError(t, fs.Parse([]string{"--config", filepath.Join(t.TempDir(), "missing.yaml")}))
	_, err = Load(fs)
	assert.ErrorContains(t, err, "failed to read config")
}

func TestLoad_Invalid(t *testing.T) {
	isolate(t)

	t.Setenv("DALEEL_TIMEOUT", "-1s")
	_, err := Load(testFlags())
	assert.ErrorContains(t, err, "timeout must be positive")
}

func TestConfigContext(t *testing.T) {
	_, ok := FromContext(context.Background())
	assert.False(t, ok)
	assert.Panics(t, func() { MustFromContext(context.Background()) })

	cfg := &GlobalConfig{Settings: Settings{ServerURL: "http://x"}}
	ctx := InjectConfig(context.Background(), cfg)
	assert.Same(t, cfg, MustFromContext(ctx))
}

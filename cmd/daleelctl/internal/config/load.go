package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/mohamedgamal323/daleel/cmd/daleelctl/internal/auth"
)

// DefaultServerURL is the API root used when nothing else is configured.
const DefaultServerURL = "http://localhost:8000/api/v1"

// Settings are the resolved configuration values.
type Settings struct {
	ServerURL      string
	CredentialsDir string
	NonInteractive bool
	Verbose        bool
	Timeout        time.Duration
	// Token is an ephemeral bearer token (DALEEL_TOKEN).
	Token string
	// ConfigFile is the file that was read, if any.
	ConfigFile string
}

// flag name -> config key
var flagKeys = map[string]string{
	"server":          "server",
	"credentials-dir": "credentials_dir",
	"non-interactive": "non_interactive",
	"verbose":         "verbose",
	"timeout":         "timeout",
}

// Load resolves settings with increasing precedence: defaults, the config
// file (--config, or ~/.daleel/config.yaml when present), DALEEL_*
// environment variables, then explicitly set flags.
func Load(flags *pflag.FlagSet) (*Settings, error) {
	v := viper.New()
	v.SetDefault("server", DefaultServerURL)
	v.SetDefault("non_interactive", false)
	v.SetDefault("verbose", false)
	v.SetDefault("timeout", "30s")
	v.SetDefault("token", "")

	defaultDir, err := auth.DefaultDir()
	if err != nil {
		return nil, err
	}
	v.SetDefault("credentials_dir", defaultDir)

	v.SetEnvPrefix("DALEEL")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()

	explicit := ""
	if flags != nil {
		if f := flags.Lookup("config"); f != nil {
			explicit = f.Value.String()
		}
	}
	if explicit != "" {
		v.SetConfigFile(explicit)
	} else {
		v.AddConfigPath(defaultDir)
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if explicit != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	if flags != nil {
		for name, key := range flagKeys {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("failed to bind --%s: %w", name, err)
				}
			}
		}
	}

	timeout := v.GetDuration("timeout")
	if timeout <= 0 {
		return nil, fmt.Errorf("timeout must be positive, got %q", v.GetString("timeout"))
	}

	server := strings.TrimRight(strings.TrimSpace(v.GetString("server")), "/")
	if server == "" {
		return nil, errors.New("server URL is required")
	}

	dir := v.GetString("credentials_dir")
	if strings.HasPrefix(dir, "~/") {
		home := filepath.Dir(defaultDir)
		dir = filepath.Join(home, dir[2:])
	}

	return &Settings{
		ServerURL:      server,
		CredentialsDir: dir,
		NonInteractive: v.GetBool("non_interactive"),
		Verbose:        v.GetBool("verbose"),
		Timeout:        timeout,
		Token:          v.GetString("token"),
		ConfigFile:     v.ConfigFileUsed(),
	}, nil
}

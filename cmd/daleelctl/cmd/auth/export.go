package auth

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mohamedgamal323/daleel/cmd/daleelctl/internal/cmdutil"
	"github.com/mohamedgamal323/daleel/cmd/daleelctl/internal/config"
)

const tokenEnvVar = "DALEEL_TOKEN"

var (
	shellFormat string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the session token as an environment variable",
	Long: `Export the stored session token as DALEEL_TOKEN so scripts and CI jobs
can reuse it. When DALEEL_TOKEN is set, daleelctl uses it instead of the
credentials file and never writes it to disk.

Supported shells:
  - posix (bash, zsh, sh) - default
  - fish
  - powershell

Usage:
  # POSIX shells (bash/zsh/sh)
  eval $(daleelctl auth export)

  # Fish shell
  eval (daleelctl auth export --shell fish)

  # PowerShell
  daleelctl auth export --shell powershell | Invoke-Expression`,
	Annotations: cmdutil.Route("profile"),
	RunE:        runExport,
}

func init() {
	exportCmd.Flags().StringVar(&shellFormat, "shell", "", "Shell format: posix, fish, powershell (auto-detected if not specified)")
}

func runExport(cmd *cobra.Command, args []string) error {
	cfg := config.MustFromContext(cmd.Context())
	creds, err := cfg.ClientProvider.Credentials()
	if err != nil {
		return fmt.Errorf("failed to load credentials: %w\n\nPlease run 'daleelctl auth login' first", err)
	}

	if creds.IsExpired() {
		return fmt.Errorf("access token has expired\n\nPlease run 'daleelctl auth login' to refresh your credentials")
	}

	format := shellFormat
	if format == "" {
		format = detectShell(os.Getenv("SHELL"))
	}

	line, usage, err := exportLine(strings.ToLower(format), creds.AccessToken)
	if err != nil {
		return err
	}

	// instructions go to stderr so eval only sees the export line
	if isTerminal(os.Stdout) {
		printUsage(cmd.ErrOrStderr(), usage)
	}
	fmt.Fprintln(cmd.OutOrStdout(), line)
	return nil
}

// detectShell maps $SHELL to an export format.
func detectShell(shell string) string {
	switch filepath.Base(shell) {
	case "fish":
		return "fish"
	case "pwsh", "powershell":
		return "powershell"
	default:
		return "posix"
	}
}

// exportLine renders the token for the given shell, plus the command that
// evaluates it.
func exportLine(format, token string) (line, usage string, err error) {
	switch format {
	case "posix", "bash", "zsh", "sh":
		return fmt.Sprintf("export %s=%q", tokenEnvVar, token), "eval $(daleelctl auth export)", nil
	case "fish":
		return fmt.Sprintf("set -x %s %q", tokenEnvVar, token), "eval (daleelctl auth export --shell fish)", nil
	case "powershell", "pwsh", "ps1":
		return fmt.Sprintf("$env:%s=%q", tokenEnvVar, token), "daleelctl auth export --shell powershell | Invoke-Expression", nil
	}
	return "", "", fmt.Errorf("unsupported shell format: %s\n\nSupported formats: posix, fish, powershell", format)
}

func printUsage(w io.Writer, usage string) {
	fmt.Fprintln(w, "# Run this command to configure your environment:")
	fmt.Fprintf(w, "#   %s\n", usage)
	fmt.Fprintln(w, "")
}

// isTerminal checks if the given file is a terminal (TTY)
func isTerminal(f *os.File) bool {
	fileInfo, err := f.Stat()
	if err != nil {
		return false
	}
	return (fileInfo.Mode() & os.ModeCharDevice) != 0
}

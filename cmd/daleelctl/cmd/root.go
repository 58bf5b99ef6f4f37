package cmd

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/go-logr/logr"
	"github.com/go-logr/stdr"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/mohamedgamal323/daleel/cmd/daleelctl/cmd/asset"
	"github.com/mohamedgamal323/daleel/cmd/daleelctl/cmd/auth"
	"github.com/mohamedgamal323/daleel/cmd/daleelctl/cmd/category"
	"github.com/mohamedgamal323/daleel/cmd/daleelctl/cmd/domain"
	"github.com/mohamedgamal323/daleel/cmd/daleelctl/cmd/query"
	"github.com/mohamedgamal323/daleel/cmd/daleelctl/cmd/scope"
	"github.com/mohamedgamal323/daleel/cmd/daleelctl/internal/client"
	"github.com/mohamedgamal323/daleel/cmd/daleelctl/internal/cmdutil"
	"github.com/mohamedgamal323/daleel/cmd/daleelctl/internal/config"
	"github.com/mohamedgamal323/daleel/pkg/sdk"
)

var activeProvider *client.Provider

var rootCmd = &cobra.Command{
	Use:   "daleelctl",
	Short: "Daleel CLI - catalog client",
	Long: `daleelctl is the command-line interface for Daleel, a multi-tenant content
catalog. Use it to log in, browse domains, categories and assets, and run
free-text queries.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		settings, err := config.Load(cmd.Flags())
		if err != nil {
			return err
		}

		logger := newLogger(settings.Verbose)
		provider := client.NewProvider(client.Options{
			ServerURL:      settings.ServerURL,
			CredentialsDir: settings.CredentialsDir,
			BearerToken:    settings.Token,
			Timeout:        settings.Timeout,
			Logger:         logger,
		})
		activeProvider = provider

		cfg := &config.GlobalConfig{
			Settings:       *settings,
			ClientProvider: provider,
			Logger:         logger,
		}
		cmd.SetContext(config.InjectConfig(cmd.Context(), cfg))

		if _, ok := cmdutil.RouteOf(cmd); !ok {
			return nil
		}
		r, err := provider.Router(cmd.Context())
		if err != nil {
			return err
		}
		return cmdutil.Guard(cmd, r)
	},
}

// Execute runs the root command
func Execute() {
	err := rootCmd.ExecuteContext(context.Background())
	os.Exit(report(err))
}

// report prints err the way a user should see it and returns the exit code.
func report(err error) int {
	if err == nil {
		return 0
	}

	var loginErr *cmdutil.LoginRequiredError
	var forbidden *cmdutil.ForbiddenError
	switch {
	case errors.Is(err, cmdutil.ErrAlreadyAuthenticated):
		pterm.Info.Println("Already logged in. Run 'daleelctl auth logout' first to switch accounts.")
		return 0
	case errors.As(err, &loginErr):
		pterm.Error.Println("You need to log in first.")
		pterm.Info.Printf("Run: %s\n", loginErr.Hint())
	case errors.Is(err, sdk.ErrSessionExpired):
		pterm.Error.Println("Your session has expired.")
		hint := (&cmdutil.LoginRequiredError{}).Hint()
		if activeProvider != nil {
			if res := activeProvider.ExpiredRedirect(); res != nil {
				hint = (&cmdutil.LoginRequiredError{Redirect: res.Location.RedirectTarget()}).Hint()
			}
		}
		pterm.Info.Printf("Run: %s\n", hint)
	case errors.As(err, &forbidden):
		pterm.Error.Println(forbidden.Error())
	default:
		pterm.Error.Println(err.Error())
	}
	return 1
}

func newLogger(verbose bool) logr.Logger {
	if verbose {
		stdr.SetVerbosity(1)
	}
	return stdr.New(log.New(os.Stderr, "", log.LstdFlags)).WithName("daleelctl")
}

func init() {
	rootCmd.PersistentFlags().String("server", config.DefaultServerURL, "Daleel API root URL (also DALEEL_SERVER)")
	rootCmd.PersistentFlags().String("config", "", "Config file (default ~/.daleel/config.yaml)")
	rootCmd.PersistentFlags().String("credentials-dir", "", "Directory holding credentials.json (default ~/.daleel)")
	rootCmd.PersistentFlags().Bool("non-interactive", false, "Disable interactive prompts (also set via DALEEL_NON_INTERACTIVE=1)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Log session and routing decisions to stderr")
	rootCmd.PersistentFlags().Duration("timeout", 30*time.Second, "Per-request timeout")

	rootCmd.AddCommand(auth.AuthCmd)
	rootCmd.AddCommand(domain.DomainCmd)
	rootCmd.AddCommand(category.CategoryCmd)
	rootCmd.AddCommand(asset.AssetCmd)
	rootCmd.AddCommand(query.QueryCmd)
	rootCmd.AddCommand(scope.ContextCmd)
	rootCmd.AddCommand(aboutCmd)
	rootCmd.AddCommand(adminCmd)
}

var aboutCmd = &cobra.Command{
	Use:         "about",
	Short:       "Show client configuration",
	Annotations: cmdutil.Route("about"),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.MustFromContext(cmd.Context())
		pterm.DefaultSection.Println("daleelctl")
		w := cmdutil.NewTable(cmd.OutOrStdout())
		fmt.Fprintf(w, "Server\t%s\n", cfg.ServerURL)
		fmt.Fprintf(w, "Config file\t%s\n", cmdutil.OrDash(cfg.ConfigFile))
		fmt.Fprintf(w, "Credentials\t%s\n", cfg.CredentialsDir)
		fmt.Fprintf(w, "Token source\t%s\n", tokenSource(cfg.ClientProvider))
		return w.Flush()
	},
}

func tokenSource(p *client.Provider) string {
	if p.Ephemeral() {
		return "DALEEL_TOKEN"
	}
	return "credentials file"
}

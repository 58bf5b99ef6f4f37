package auth

import (
	"fmt"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/mohamedgamal323/daleel/cmd/daleelctl/internal/cmdutil"
	"github.com/mohamedgamal323/daleel/cmd/daleelctl/internal/config"
	"github.com/mohamedgamal323/daleel/pkg/router"
	"github.com/mohamedgamal323/daleel/pkg/sdk"
)

var (
	loginUsername string
	loginPassword string
	loginRedirect string
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in to Daleel",
	Long: `Logs in with a username and password and stores the session token in
the credentials directory (~/.daleel by default).

Credentials are taken from, in order:
1. --username / --password
2. DALEEL_USERNAME / DALEEL_PASSWORD
3. Interactive prompts (unless --non-interactive)

When a command was refused because you were not logged in, it prints a
login command carrying --redirect; after logging in, access to that
command is re-checked.`,
	Annotations: cmdutil.Route(router.RouteLogin),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.MustFromContext(cmd.Context())
		if cfg.ClientProvider.Ephemeral() {
			return errEphemeralToken
		}

		input, err := loginInput(cfg.NonInteractive)
		if err != nil {
			return err
		}

		session, err := cmdutil.Session(cmd.Context())
		if err != nil {
			return err
		}

		ctx, cancel := cmdutil.WithTimeout(cmd.Context())
		defer cancel()
		user, err := session.Login(ctx, input)
		if err != nil {
			return err
		}

		pterm.Success.Printf("Logged in as %s (%s)\n", user.Username, user.Role)
		if loginRedirect != "" {
			return resumeRedirect(cmd, loginRedirect)
		}
		return nil
	},
}

func loginInput(nonInteractive bool) (sdk.LoginInput, error) {
	input := sdk.LoginInput{Username: loginUsername, Password: loginPassword}
	if input.Username == "" && input.Password == "" {
		if ok, env := sdk.CheckEnvCreds(); ok {
			pterm.Info.Println("Using credentials from DALEEL_USERNAME / DALEEL_PASSWORD.")
			return sdk.LoginInput{Username: env.Username, Password: env.Password}, nil
		}
	}

	var err error
	if input.Username == "" {
		if input.Username, err = prompt("Username", false, nonInteractive); err != nil {
			return input, err
		}
	}
	if input.Password == "" {
		if input.Password, err = prompt("Password", true, nonInteractive); err != nil {
			return input, err
		}
	}
	return input, nil
}

// resumeRedirect re-runs the guard for the location the user was sent
// away from, now that a session exists.
func resumeRedirect(cmd *cobra.Command, target string) error {
	cfg := config.MustFromContext(cmd.Context())
	r, err := cfg.ClientProvider.Router(cmd.Context())
	if err != nil {
		return err
	}
	loc, err := router.ParseLocation(target)
	if err != nil {
		return fmt.Errorf("invalid redirect %q: %w", target, err)
	}
	res, err := r.Navigate(loc)
	if err != nil {
		return err
	}
	if err := cmdutil.Outcome(loc.Path, res); err != nil {
		pterm.Warning.Printf("Logged in, but %s\n", err)
		return nil
	}
	pterm.Info.Printf("You can now continue with %s.\n", res.Location.FullPath())
	return nil
}

func init() {
	loginCmd.Flags().StringVarP(&loginUsername, "username", "u", "", "Username")
	loginCmd.Flags().StringVarP(&loginPassword, "password", "p", "", "Password (prompted when omitted)")
	loginCmd.Flags().StringVar(&loginRedirect, "redirect", "", "Location to return to after logging in")
}

package auth

import (
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/mohamedgamal323/daleel/cmd/daleelctl/internal/cmdutil"
	"github.com/mohamedgamal323/daleel/cmd/daleelctl/internal/config"
	"github.com/mohamedgamal323/daleel/pkg/router"
	"github.com/mohamedgamal323/daleel/pkg/sdk"
)

var (
	registerUsername string
	registerEmail    string
	registerPassword string
	registerRole     string
)

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Create an account and log in",
	Long: `Creates a Daleel account and stores the resulting session.

The role defaults to "user". The server decides whether the requested role
may be self-assigned.`,
	Annotations: cmdutil.Route(router.RouteRegister),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.MustFromContext(cmd.Context())
		if cfg.ClientProvider.Ephemeral() {
			return errEphemeralToken
		}

		role, err := sdk.ParseRole(registerRole)
		if err != nil {
			return err
		}
		input := sdk.RegisterInput{
			Username: registerUsername,
			Email:    registerEmail,
			Password: registerPassword,
			Role:     role,
		}
		if input.Username == "" {
			if input.Username, err = prompt("Username", false, cfg.NonInteractive); err != nil {
				return err
			}
		}
		if input.Email == "" {
			if input.Email, err = prompt("Email", false, cfg.NonInteractive); err != nil {
				return err
			}
		}
		if input.Password == "" {
			if input.Password, err = prompt("Password", true, cfg.NonInteractive); err != nil {
				return err
			}
		}

		session, err := cmdutil.Session(cmd.Context())
		if err != nil {
			return err
		}
		ctx, cancel := cmdutil.WithTimeout(cmd.Context())
		defer cancel()
		user, err := session.Register(ctx, input)
		if err != nil {
			return err
		}

		pterm.Success.Printf("Registered and logged in as %s (%s)\n", user.Username, user.Role)
		return nil
	},
}

func init() {
	registerCmd.Flags().StringVarP(&registerUsername, "username", "u", "", "Username")
	registerCmd.Flags().StringVar(&registerEmail, "email", "", "Email address")
	registerCmd.Flags().StringVarP(&registerPassword, "password", "p", "", "Password (prompted when omitted)")
	registerCmd.Flags().StringVar(&registerRole, "role", string(sdk.RoleUser), "Role: user, domain_admin or global_admin")
}

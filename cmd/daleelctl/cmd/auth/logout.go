package auth

import (
	"fmt"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/mohamedgamal323/daleel/cmd/daleelctl/internal/cmdutil"
	"github.com/mohamedgamal323/daleel/cmd/daleelctl/internal/config"
)

var logoutCmd = &cobra.Command{
	Use:         "logout",
	Short:       "Log out from Daleel",
	Annotations: cmdutil.Route("logout"),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.MustFromContext(cmd.Context())
		session, err := cmdutil.Session(cmd.Context())
		if err != nil {
			return err
		}

		ctx, cancel := cmdutil.WithTimeout(cmd.Context())
		defer cancel()
		if err := session.Logout(ctx); err != nil {
			return fmt.Errorf("failed to delete credentials: %w", err)
		}

		pterm.Success.Println("Logged out successfully")
		if cfg.ClientProvider.Ephemeral() {
			pterm.Warning.Println("DALEEL_TOKEN is still set in your environment.")
		}
		return nil
	},
}

package auth

import (
	"fmt"
	"strings"
	"time"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/mohamedgamal323/daleel/cmd/daleelctl/internal/cmdutil"
	"github.com/mohamedgamal323/daleel/cmd/daleelctl/internal/config"
	"github.com/mohamedgamal323/daleel/pkg/sdk"
)

var statusCmd = &cobra.Command{
	Use:         "status",
	Short:       "Display authentication status",
	Annotations: cmdutil.Route("profile"),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.MustFromContext(cmd.Context())
		session, err := cmdutil.Session(cmd.Context())
		if err != nil {
			return err
		}

		user := session.User()
		if user == nil {
			ctx, cancel := cmdutil.WithTimeout(cmd.Context())
			defer cancel()
			if user, err = session.Profile(ctx); err != nil {
				return fmt.Errorf("failed to fetch profile: %w", err)
			}
		}

		pterm.DefaultSection.Println("Authentication Status")
		if creds, err := cfg.ClientProvider.Credentials(); err == nil && !creds.ExpiresAt.IsZero() {
			pterm.Info.Printf("Logged in with token expiring at: %s\n", creds.ExpiresAt.Format(time.RFC1123))
		}

		w := cmdutil.NewTable(cmd.OutOrStdout())
		fmt.Fprintf(w, "ID\t%s\n", user.ID)
		fmt.Fprintf(w, "USERNAME\t%s\n", user.Username)
		fmt.Fprintf(w, "EMAIL\t%s\n", cmdutil.OrDash(user.Email))
		fmt.Fprintf(w, "ROLE\t%s\n", user.Role)
		fmt.Fprintf(w, "ADMIN\t%t\n", user.IsAdmin())
		fmt.Fprintf(w, "ACTIVE\t%t\n", user.IsActive)
		if user.LastLogin != nil {
			fmt.Fprintf(w, "LAST LOGIN\t%s\n", user.LastLogin.Local().Format(time.RFC1123))
		}
		if err := w.Flush(); err != nil {
			return err
		}

		pterm.DefaultSection.Println("Permissions")
		perms := cfg.ClientProvider.Authorizer().Permissions(user.Role)
		fmt.Fprintln(cmd.OutOrStdout(), formatPermissions(perms))
		return nil
	},
}

func formatPermissions(perms []sdk.Permission) string {
	if len(perms) == 0 {
		return "-"
	}
	names := make([]string, len(perms))
	for i, p := range perms {
		names[i] = string(p)
	}
	return strings.Join(names, ", ")
}

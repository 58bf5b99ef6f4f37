package domain

import (
	"fmt"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/mohamedgamal323/daleel/cmd/daleelctl/internal/cmdutil"
)

var deleteCmd = &cobra.Command{
	Use:         "delete <domain-id>",
	Short:       "Delete a domain",
	Long:        `Soft-deletes a domain. Requires the DELETE_DOMAIN permission.`,
	Args:        cobra.ExactArgs(1),
	Annotations: cmdutil.Route("domain-delete"),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := cmdutil.SDKClient(cmd.Context())
		if err != nil {
			return err
		}

		ctx, cancel := cmdutil.WithTimeout(cmd.Context())
		defer cancel()
		if err := client.DeleteDomain(ctx, args[0]); err != nil {
			return fmt.Errorf("failed to delete domain: %w", err)
		}

		pterm.Success.Printf("Deleted domain %s\n", args[0])
		return nil
	},
}

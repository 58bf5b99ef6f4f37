package domain

import (
	"errors"
	"fmt"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/mohamedgamal323/daleel/cmd/daleelctl/internal/cmdutil"
	"github.com/mohamedgamal323/daleel/pkg/sdk"
)

var (
	updateName        string
	updateDescription string
	updateActive      bool
)

var updateCmd = &cobra.Command{
	Use:         "update <domain-id>",
	Short:       "Update a domain",
	Long:        `Changes the given fields of a domain. Requires the UPDATE_DOMAIN permission.`,
	Args:        cobra.ExactArgs(1),
	Annotations: cmdutil.Route("domain-update"),
	RunE: func(cmd *cobra.Command, args []string) error {
		input := updateInput(cmd)
		if input.Name == nil && input.Description == nil && input.IsActive == nil {
			return errors.New("nothing to update: pass --name, --description or --active")
		}

		client, err := cmdutil.SDKClient(cmd.Context())
		if err != nil {
			return err
		}

		ctx, cancel := cmdutil.WithTimeout(cmd.Context())
		defer cancel()
		d, err := client.UpdateDomain(ctx, args[0], input)
		if err != nil {
			return fmt.Errorf("failed to update domain: %w", err)
		}

		pterm.Success.Printf("Updated domain %s (%s)\n", d.Name, d.ID)
		return nil
	},
}

// updateInput only carries the flags the user actually set.
func updateInput(cmd *cobra.Command) sdk.UpdateDomainInput {
	var input sdk.UpdateDomainInput
	if cmd.Flags().Changed("name") {
		input.Name = &updateName
	}
	if cmd.Flags().Changed("description") {
		input.Description = &updateDescription
	}
	if cmd.Flags().Changed("active") {
		input.IsActive = &updateActive
	}
	return input
}

func init() {
	updateCmd.Flags().StringVar(&updateName, "name", "", "New name")
	updateCmd.Flags().StringVar(&updateDescription, "description", "", "New description")
	updateCmd.Flags().BoolVar(&updateActive, "active", true, "Whether the domain is active")
}

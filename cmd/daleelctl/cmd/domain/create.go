package domain

import (
	"fmt"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/mohamedgamal323/daleel/cmd/daleelctl/internal/cmdutil"
	"github.com/mohamedgamal323/daleel/pkg/sdk"
)

var (
	createName        string
	createDescription string
)

var createCmd = &cobra.Command{
	Use:         "create",
	Short:       "Create a domain",
	Long:        `Creates a domain. Requires the CREATE_DOMAIN permission (global admins).`,
	Annotations: cmdutil.Route("domain-create"),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := cmdutil.SDKClient(cmd.Context())
		if err != nil {
			return err
		}

		ctx, cancel := cmdutil.WithTimeout(cmd.Context())
		defer cancel()
		d, err := client.CreateDomain(ctx, sdk.CreateDomainInput{Name: createName, Description: createDescription})
		if err != nil {
			return fmt.Errorf("failed to create domain: %w", err)
		}

		pterm.Success.Printf("Created domain %s (%s)\n", d.Name, d.ID)
		return nil
	},
}

func init() {
	createCmd.Flags().StringVar(&createName, "name", "", "Domain name")
	createCmd.Flags().StringVar(&createDescription, "description", "", "Domain description")
	_ = createCmd.MarkFlagRequired("name")
}

package category

import (
	"errors"
	"fmt"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/mohamedgamal323/daleel/cmd/daleelctl/internal/cmdutil"
	"github.com/mohamedgamal323/daleel/pkg/sdk"
)

var (
	createName        string
	createDescription string
	createDomain      string
)

var createCmd = &cobra.Command{
	Use:         "create",
	Short:       "Create a category",
	Long:        `Creates a category in a domain. Requires the CREATE_CATEGORY permission.`,
	Annotations: cmdutil.Route("category-create"),
	RunE: func(cmd *cobra.Command, args []string) error {
		scope, err := cmdutil.Scope(createDomain, "")
		if err != nil {
			return err
		}
		if scope.DomainID == "" {
			return errors.New("no domain selected: pass --domain or run 'daleelctl context set --domain <id>'")
		}

		client, err := cmdutil.SDKClient(cmd.Context())
		if err != nil {
			return err
		}

		ctx, cancel := cmdutil.WithTimeout(cmd.Context())
		defer cancel()
		c, err := client.CreateCategory(ctx, sdk.CreateCategoryInput{
			Name:        createName,
			Description: createDescription,
			DomainID:    scope.DomainID,
		})
		if err != nil {
			return fmt.Errorf("failed to create category: %w", err)
		}

		pterm.Success.Printf("Created category %s (%s) in domain %s\n", c.Name, c.ID, c.DomainID)
		return nil
	},
}

func init() {
	createCmd.Flags().StringVar(&createName, "name", "", "Category name")
	createCmd.Flags().StringVar(&createDescription, "description", "", "Category description")
	createCmd.Flags().StringVar(&createDomain, "domain", "", "Domain ID (defaults to the directory context)")
	_ = createCmd.MarkFlagRequired("name")
}

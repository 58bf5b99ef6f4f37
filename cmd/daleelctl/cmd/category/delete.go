package category

import (
	"fmt"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/mohamedgamal323/daleel/cmd/daleelctl/internal/cmdutil"
)

var deleteCmd = &cobra.Command{
	Use:         "delete <category-id>",
	Short:       "Delete a category",
	Args:        cobra.ExactArgs(1),
	Annotations: cmdutil.Route("category-delete"),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := cmdutil.SDKClient(cmd.Context())
		if err != nil {
			return err
		}

		ctx, cancel := cmdutil.WithTimeout(cmd.Context())
		defer cancel()
		if err := client.DeleteCategory(ctx, args[0]); err != nil {
			return fmt.Errorf("failed to delete category: %w", err)
		}

		pterm.Success.Printf("Deleted category %s\n", args[0])
		return nil
	},
}

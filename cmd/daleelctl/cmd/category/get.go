package category

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mohamedgamal323/daleel/cmd/daleelctl/internal/cmdutil"
)

var getCmd = &cobra.Command{
	Use:         "get <category-id>",
	Short:       "Show a category",
	Args:        cobra.ExactArgs(1),
	Annotations: cmdutil.Route("categories"),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := cmdutil.SDKClient(cmd.Context())
		if err != nil {
			return err
		}

		ctx, cancel := cmdutil.WithTimeout(cmd.Context())
		defer cancel()
		c, err := client.GetCategory(ctx, args[0])
		if err != nil {
			return fmt.Errorf("failed to get category: %w", err)
		}

		w := cmdutil.NewTable(cmd.OutOrStdout())
		fmt.Fprintf(w, "ID\t%s\n", c.ID)
		fmt.Fprintf(w, "NAME\t%s\n", c.Name)
		fmt.Fprintf(w, "DOMAIN\t%s\n", c.DomainID)
		fmt.Fprintf(w, "DESCRIPTION\t%s\n", cmdutil.OrDash(c.Description))
		fmt.Fprintf(w, "ACTIVE\t%t\n", c.IsActive)
		fmt.Fprintf(w, "CREATED\t%s\n", cmdutil.FormatTime(c.CreatedAt))
		fmt.Fprintf(w, "UPDATED\t%s\n", cmdutil.FormatTime(c.UpdatedAt))
		return w.Flush()
	},
}

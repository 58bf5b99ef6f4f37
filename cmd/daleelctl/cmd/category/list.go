package category

import (
	"fmt"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/mohamedgamal323/daleel/cmd/daleelctl/internal/cmdutil"
	"github.com/mohamedgamal323/daleel/pkg/sdk"
)

var (
	listDomain string
	listPage   int
	listLimit  int
)

var listCmd = &cobra.Command{
	Use:         "list",
	Short:       "List categories",
	Annotations: cmdutil.Route("categories"),
	RunE: func(cmd *cobra.Command, args []string) error {
		scope, err := cmdutil.Scope(listDomain, "")
		if err != nil {
			return err
		}

		client, err := cmdutil.SDKClient(cmd.Context())
		if err != nil {
			return err
		}

		ctx, cancel := cmdutil.WithTimeout(cmd.Context())
		defer cancel()
		page, err := client.ListCategories(ctx, scope.DomainID, sdk.ListOptions{Page: listPage, Limit: listLimit})
		if err != nil {
			return fmt.Errorf("failed to list categories: %w", err)
		}

		if len(page.Items) == 0 {
			pterm.Info.Printf("No categories found in %s\n", scope)
			return nil
		}

		w := cmdutil.NewTable(cmd.OutOrStdout())
		fmt.Fprintln(w, "ID\tNAME\tDOMAIN\tACTIVE\tCREATED")
		for _, c := range page.Items {
			fmt.Fprintf(w, "%s\t%s\t%s\t%t\t%s\n", c.ID, c.Name, c.DomainID, c.IsActive, cmdutil.FormatTime(c.CreatedAt))
		}
		return w.Flush()
	},
}

func init() {
	listCmd.Flags().StringVar(&listDomain, "domain", "", "Domain ID (defaults to the directory context)")
	listCmd.Flags().IntVar(&listPage, "page", 0, "Page number")
	listCmd.Flags().IntVar(&listLimit, "limit", 0, "Page size")
}

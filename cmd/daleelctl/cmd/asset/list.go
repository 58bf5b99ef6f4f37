package asset

import (
	"fmt"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/mohamedgamal323/daleel/cmd/daleelctl/internal/cmdutil"
	"github.com/mohamedgamal323/daleel/pkg/sdk"
)

var (
	listCategory string
	listPage     int
	listLimit    int
)

var listCmd = &cobra.Command{
	Use:         "list",
	Short:       "List assets",
	Annotations: cmdutil.Route("assets"),
	RunE: func(cmd *cobra.Command, args []string) error {
		scope, err := cmdutil.Scope("", listCategory)
		if err != nil {
			return err
		}

		client, err := cmdutil.SDKClient(cmd.Context())
		if err != nil {
			return err
		}

		ctx, cancel := cmdutil.WithTimeout(cmd.Context())
		defer cancel()
		page, err := client.ListAssets(ctx, scope.CategoryID, sdk.ListOptions{Page: listPage, Limit: listLimit})
		if err != nil {
			return fmt.Errorf("failed to list assets: %w", err)
		}

		if len(page.Items) == 0 {
			pterm.Info.Println("No assets found")
			return nil
		}

		w := cmdutil.NewTable(cmd.OutOrStdout())
		fmt.Fprintln(w, "ID\tTITLE\tTYPE\tCATEGORY\tUPDATED")
		for _, a := range page.Items {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", a.ID, a.Title, a.AssetType, a.CategoryID, cmdutil.FormatTime(a.UpdatedAt))
		}
		return w.Flush()
	},
}

func init() {
	listCmd.Flags().StringVar(&listCategory, "category", "", "Category ID (defaults to the directory context)")
	listCmd.Flags().IntVar(&listPage, "page", 0, "Page number")
	listCmd.Flags().IntVar(&listLimit, "limit", 0, "Page size")
}

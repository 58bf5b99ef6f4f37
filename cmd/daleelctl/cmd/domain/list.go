package domain

import (
	"fmt"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/mohamedgamal323/daleel/cmd/daleelctl/internal/cmdutil"
	"github.com/mohamedgamal323/daleel/pkg/sdk"
)

var (
	listPage  int
	listLimit int
)

var listCmd = &cobra.Command{
	Use:         "list",
	Short:       "List domains",
	Annotations: cmdutil.Route("domains"),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := cmdutil.SDKClient(cmd.Context())
		if err != nil {
			return err
		}

		ctx, cancel := cmdutil.WithTimeout(cmd.Context())
		defer cancel()
		page, err := client.ListDomains(ctx, sdk.ListOptions{Page: listPage, Limit: listLimit})
		if err != nil {
			return fmt.Errorf("failed to list domains: %w", err)
		}

		if len(page.Items) == 0 {
			pterm.Info.Println("No domains found")
			return nil
		}

		w := cmdutil.NewTable(cmd.OutOrStdout())
		fmt.Fprintln(w, "ID\tNAME\tACTIVE\tCREATED\tDESCRIPTION")
		for _, d := range page.Items {
			fmt.Fprintf(w, "%s\t%s\t%t\t%s\t%s\n", d.ID, d.Name, d.IsActive, cmdutil.FormatTime(d.CreatedAt), cmdutil.OrDash(d.Description))
		}
		if err := w.Flush(); err != nil {
			return err
		}
		if page.TotalPages > 1 {
			pterm.Info.Printf("Page %d of %d (%d domains)\n", page.Page, page.TotalPages, page.Total)
		}
		return nil
	},
}

func init() {
	listCmd.Flags().IntVar(&listPage, "page", 0, "Page number (server default when 0)")
	listCmd.Flags().IntVar(&listLimit, "limit", 0, "Page size (server default when 0)")
}

package asset

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/mohamedgamal323/daleel/cmd/daleelctl/internal/cmdutil"
)

var getCmd = &cobra.Command{
	Use:         "get <asset-id>",
	Short:       "Show an asset",
	Args:        cobra.ExactArgs(1),
	Annotations: cmdutil.Route("assets"),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := cmdutil.SDKClient(cmd.Context())
		if err != nil {
			return err
		}

		ctx, cancel := cmdutil.WithTimeout(cmd.Context())
		defer cancel()
		a, err := client.GetAsset(ctx, args[0])
		if err != nil {
			return fmt.Errorf("failed to get asset: %w", err)
		}

		w := cmdutil.NewTable(cmd.OutOrStdout())
		fmt.Fprintf(w, "ID\t%s\n", a.ID)
		fmt.Fprintf(w, "TITLE\t%s\n", a.Title)
		fmt.Fprintf(w, "TYPE\t%s\n", a.AssetType)
		fmt.Fprintf(w, "CATEGORY\t%s\n", a.CategoryID)
		fmt.Fprintf(w, "FILE\t%s\n", cmdutil.OrDash(a.FilePath))
		fmt.Fprintf(w, "ACTIVE\t%t\n", a.IsActive)
		fmt.Fprintf(w, "CREATED\t%s\n", cmdutil.FormatTime(a.CreatedAt))
		fmt.Fprintf(w, "UPDATED\t%s\n", cmdutil.FormatTime(a.UpdatedAt))

		keys := make([]string, 0, len(a.Metadata))
		for k := range a.Metadata {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Fprintf(w, "META %s\t%v\n", k, a.Metadata[k])
		}
		if err := w.Flush(); err != nil {
			return err
		}

		if a.Content != "" {
			fmt.Fprintln(cmd.OutOrStdout())
			fmt.Fprintln(cmd.OutOrStdout(), a.Content)
		}
		return nil
	},
}

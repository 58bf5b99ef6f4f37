package domain

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mohamedgamal323/daleel/cmd/daleelctl/internal/cmdutil"
)

var getCmd = &cobra.Command{
	Use:         "get <domain-id>",
	Short:       "Show a domain",
	Args:        cobra.ExactArgs(1),
	Annotations: cmdutil.Route("domains"),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := cmdutil.SDKClient(cmd.Context())
		if err != nil {
			return err
		}

		ctx, cancel := cmdutil.WithTimeout(cmd.Context())
		defer cancel()
		d, err := client.GetDomain(ctx, args[0])
		if err != nil {
			return fmt.Errorf("failed to get domain: %w", err)
		}

		w := cmdutil.NewTable(cmd.OutOrStdout())
		fmt.Fprintf(w, "ID\t%s\n", d.ID)
		fmt.Fprintf(w, "NAME\t%s\n", d.Name)
		fmt.Fprintf(w, "DESCRIPTION\t%s\n", cmdutil.OrDash(d.Description))
		fmt.Fprintf(w, "ACTIVE\t%t\n", d.IsActive)
		fmt.Fprintf(w, "CREATED\t%s\n", cmdutil.FormatTime(d.CreatedAt))
		fmt.Fprintf(w, "UPDATED\t%s\n", cmdutil.FormatTime(d.UpdatedAt))
		fmt.Fprintf(w, "CREATED BY\t%s\n", cmdutil.OrDash(d.CreatedBy))
		return w.Flush()
	},
}

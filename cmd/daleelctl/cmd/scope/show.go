package scope

import (
	"fmt"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/mohamedgamal323/daleel/cmd/daleelctl/internal/cmdutil"
	"github.com/mohamedgamal323/daleel/cmd/daleelctl/internal/config"
	"github.com/mohamedgamal323/daleel/cmd/daleelctl/internal/dirctx"
)

var showCmd = &cobra.Command{
	Use:         "show",
	Short:       "Show the directory scope",
	Annotations: cmdutil.Route("settings"),
	RunE: func(cmd *cobra.Command, args []string) error {
		dc, err := dirctx.Read()
		if err != nil {
			return err
		}
		if dc == nil {
			pterm.Info.Println("No .daleel file in this directory")
			return nil
		}

		path, err := dirctx.Path()
		if err != nil {
			return err
		}

		w := cmdutil.NewTable(cmd.OutOrStdout())
		fmt.Fprintf(w, "FILE\t%s\n", path)
		fmt.Fprintf(w, "DOMAIN\t%s\n", dc.DomainID)
		fmt.Fprintf(w, "CATEGORY\t%s\n", cmdutil.OrDash(dc.CategoryID))
		fmt.Fprintf(w, "SERVER\t%s\n", dc.ServerURL)
		fmt.Fprintf(w, "UPDATED\t%s\n", dc.UpdatedAt.Local().Format("2006-01-02 15:04"))
		if err := w.Flush(); err != nil {
			return err
		}

		if cfg := config.MustFromContext(cmd.Context()); dc.ServerURL != "" && dc.ServerURL != cfg.ServerURL {
			pterm.Warning.Printf("This scope was recorded against %s but the current server is %s\n", dc.ServerURL, cfg.ServerURL)
		}
		return nil
	},
}

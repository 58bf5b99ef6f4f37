package scope

import (
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/mohamedgamal323/daleel/cmd/daleelctl/internal/cmdutil"
	"github.com/mohamedgamal323/daleel/cmd/daleelctl/internal/dirctx"
)

var clearCmd = &cobra.Command{
	Use:         "clear",
	Short:       "Remove the directory scope",
	Annotations: cmdutil.Route("settings"),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := dirctx.Remove(); err != nil {
			return err
		}
		pterm.Success.Println("Directory scope cleared")
		return nil
	},
}

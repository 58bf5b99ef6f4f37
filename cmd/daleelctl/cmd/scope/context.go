package scope

import (
	"github.com/spf13/cobra"
)

// ContextCmd manages the directory's .daleel scope file
var ContextCmd = &cobra.Command{
	Use:   "context",
	Short: "Manage the directory's default domain and category",
	Long: `The .daleel file pins a domain (and optionally a category) to the current
directory. Category, asset and query commands use it when no explicit
--domain/--category flag is given.`,
}

func init() {
	ContextCmd.AddCommand(setCmd)
	ContextCmd.AddCommand(showCmd)
	ContextCmd.AddCommand(clearCmd)
}

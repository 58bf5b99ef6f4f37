package category

import (
	"github.com/spf13/cobra"
)

// CategoryCmd is the parent command for category operations
var CategoryCmd = &cobra.Command{
	Use:     "category",
	Aliases: []string{"categories"},
	Short:   "Manage categories inside a domain",
	Long: `Commands for listing, inspecting, creating and deleting categories.

The domain defaults to the one recorded in the directory's .daleel file
(see 'daleelctl context set').`,
}

func init() {
	CategoryCmd.AddCommand(listCmd)
	CategoryCmd.AddCommand(getCmd)
	CategoryCmd.AddCommand(createCmd)
	CategoryCmd.AddCommand(deleteCmd)
}

package asset

import (
	"github.com/spf13/cobra"
)

// AssetCmd is the parent command for asset operations
var AssetCmd = &cobra.Command{
	Use:     "asset",
	Aliases: []string{"assets"},
	Short:   "Browse and delete catalog assets",
}

func init() {
	AssetCmd.AddCommand(listCmd)
	AssetCmd.AddCommand(getCmd)
	AssetCmd.AddCommand(deleteCmd)
}

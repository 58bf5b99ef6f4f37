package domain

import (
	"github.com/spf13/cobra"
)

// DomainCmd is the parent command for domain operations
var DomainCmd = &cobra.Command{
	Use:     "domain",
	Aliases: []string{"domains"},
	Short:   "Manage catalog domains",
	Long:    `Commands for listing, inspecting, creating, updating and deleting domains.`,
}

func init() {
	DomainCmd.AddCommand(listCmd)
	DomainCmd.AddCommand(getCmd)
	DomainCmd.AddCommand(createCmd)
	DomainCmd.AddCommand(updateCmd)
	DomainCmd.AddCommand(deleteCmd)
}

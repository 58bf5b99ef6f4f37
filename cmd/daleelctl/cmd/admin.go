package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mohamedgamal323/daleel/cmd/daleelctl/internal/cmdutil"
	"github.com/mohamedgamal323/daleel/cmd/daleelctl/internal/config"
	"github.com/mohamedgamal323/daleel/pkg/sdk"
)

var adminCmd = &cobra.Command{
	Use:   "admin",
	Short: "Administrative commands",
}

var adminRolesCmd = &cobra.Command{
	Use:         "roles",
	Short:       "Show the role permission matrix",
	Long:        `Lists every role with the permissions it grants. Requires ADMIN_ACCESS.`,
	Annotations: cmdutil.Route("admin"),
	RunE: func(cmd *cobra.Command, args []string) error {
		authz := config.MustFromContext(cmd.Context()).ClientProvider.Authorizer()

		w := cmdutil.NewTable(cmd.OutOrStdout())
		fmt.Fprintln(w, "PERMISSION\t"+strings.ToUpper(joinRoles(sdk.Roles, "\t")))
		for _, perm := range sdk.AllPermissions {
			row := []string{string(perm)}
			for _, role := range sdk.Roles {
				mark := "-"
				if authz.Allows(role, perm) {
					mark = "yes"
				}
				row = append(row, mark)
			}
			fmt.Fprintln(w, strings.Join(row, "\t"))
		}
		return w.Flush()
	},
}

func joinRoles(roles []sdk.Role, sep string) string {
	names := make([]string, len(roles))
	for i, r := range roles {
		names[i] = string(r)
	}
	return strings.Join(names, sep)
}

func init() {
	adminCmd.AddCommand(adminRolesCmd)
}

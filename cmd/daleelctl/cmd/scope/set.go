package scope

import (
	"time"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/mohamedgamal323/daleel/cmd/daleelctl/internal/cmdutil"
	"github.com/mohamedgamal323/daleel/cmd/daleelctl/internal/config"
	"github.com/mohamedgamal323/daleel/cmd/daleelctl/internal/dirctx"
)

var (
	setDomain   string
	setCategory string
)

var setCmd = &cobra.Command{
	Use:         "set",
	Short:       "Pin a domain and optional category to this directory",
	Annotations: cmdutil.Route("settings"),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.MustFromContext(cmd.Context())

		existing, err := dirctx.Read()
		if err != nil {
			return err
		}

		now := time.Now().UTC()
		dc := &dirctx.DirectoryContext{
			Version:    dirctx.FileVersion,
			DomainID:   setDomain,
			CategoryID: setCategory,
			ServerURL:  cfg.ServerURL,
			CreatedAt:  now,
			UpdatedAt:  now,
		}
		if existing != nil {
			dc.CreatedAt = existing.CreatedAt
		}
		if err := dirctx.Write(dc); err != nil {
			return err
		}

		pterm.Success.Printf("Directory scope set to %s\n", dc.Scope())
		return nil
	},
}

func init() {
	setCmd.Flags().StringVar(&setDomain, "domain", "", "Domain ID")
	setCmd.Flags().StringVar(&setCategory, "category", "", "Category ID")
	_ = setCmd.MarkFlagRequired("domain")
}

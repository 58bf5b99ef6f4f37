package query

import (
	"fmt"
	"strings"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/mohamedgamal323/daleel/cmd/daleelctl/internal/cmdutil"
	"github.com/mohamedgamal323/daleel/pkg/sdk"
)

const snippetWidth = 60

var (
	queryDomain   string
	queryCategory string
	queryLimit    int
)

// QueryCmd runs a free-text query against the catalog
var QueryCmd = &cobra.Command{
	Use:   "query <text>...",
	Short: "Search catalog assets",
	Long: `Runs a free-text query against the catalog and prints ranked results.

The query is scoped by --domain/--category, falling back to the directory's
.daleel file. Requires the QUERY_ASSETS permission.`,
	Args:        cobra.MinimumNArgs(1),
	Annotations: cmdutil.Route("queries"),
	RunE: func(cmd *cobra.Command, args []string) error {
		scope, err := cmdutil.Scope(queryDomain, queryCategory)
		if err != nil {
			return err
		}

		client, err := cmdutil.SDKClient(cmd.Context())
		if err != nil {
			return err
		}

		ctx, cancel := cmdutil.WithTimeout(cmd.Context())
		defer cancel()
		resp, err := client.Query(ctx, sdk.QueryInput{
			Query:      strings.Join(args, " "),
			DomainID:   scope.DomainID,
			CategoryID: scope.CategoryID,
			Limit:      queryLimit,
		})
		if err != nil {
			return fmt.Errorf("query failed: %w", err)
		}

		if len(resp.Results) == 0 {
			pterm.Info.Printf("No results for %q in %s\n", resp.Query, scope)
			return nil
		}

		_ = pterm.DefaultTable.WithHasHeader().WithData(resultTable(resp.Results)).Render()
		pterm.Info.Printf("%d results in %.3fs\n", resp.TotalResults, resp.QueryTime)
		return nil
	},
}

func resultTable(results []sdk.QueryResult) pterm.TableData {
	table := pterm.TableData{{"Score", "Title", "Type", "Domain / Category", "Snippet"}}
	for _, r := range results {
		table = append(table, []string{
			fmt.Sprintf("%.2f", r.RelevanceScore),
			r.Title,
			string(r.AssetType),
			r.DomainName + " / " + r.CategoryName,
			truncate(r.ContentSnippet, snippetWidth),
		})
	}
	return table
}

func truncate(s string, n int) string {
	s = strings.Join(strings.Fields(s), " ")
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}

func init() {
	QueryCmd.Flags().StringVar(&queryDomain, "domain", "", "Restrict to a domain ID")
	QueryCmd.Flags().StringVar(&queryCategory, "category", "", "Restrict to a category ID")
	QueryCmd.Flags().IntVar(&queryLimit, "limit", 10, "Maximum number of results")
}

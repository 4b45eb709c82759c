package products

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/agentstation/storefront/cmd/application"
	"github.com/agentstation/storefront/internal/cmd/cmdutil"
	"github.com/agentstation/storefront/internal/cmd/emoji"
	"github.com/agentstation/storefront/internal/cmd/table"
	"github.com/agentstation/storefront/pkg/catalog"
)

// NewSearchCommand creates the search command.
func NewSearchCommand(app application.Application) *cobra.Command {
	return &cobra.Command{
		Use:     "search [query]",
		GroupID: "catalog",
		Short:   "Search products by name, category or description",
		Long: `Search matches the query against each product's name, category and
description, ignoring case, and shows at most 8 results. Without a query it
shows the popular picks.`,
		Example: `  storefront search jacket
  storefront search "leather bag"
  storefront search                  # popular picks`,
		RunE: func(cmd *cobra.Command, args []string) error {
			sf, err := app.Storefront()
			if err != nil {
				return err
			}

			query := strings.Join(args, " ")
			result := sf.Search(query)

			title := "Results for " + query
			if result.Default {
				title = "Popular Picks"
			}
			if result.NoResults() {
				cmdutil.Status(cmd, emoji.Info, "No products match %q", query)
			}

			value := struct {
				Query    string            `json:"query" yaml:"query"`
				Default  bool              `json:"default" yaml:"default"`
				Products []catalog.Product `json:"products" yaml:"products"`
			}{query, result.Default, result.Products}
			return cmdutil.Render(cmd, app.OutputFormat(), value, table.Products(title, result.Products))
		},
	}
}

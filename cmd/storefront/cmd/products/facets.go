package products

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/storefront/cmd/application"
	"github.com/agentstation/storefront/internal/cmd/cmdutil"
	"github.com/agentstation/storefront/internal/cmd/table"
	"github.com/agentstation/storefront/pkg/filter"
)

// NewFacetsCommand creates the facets command.
func NewFacetsCommand(app application.Application) *cobra.Command {
	return &cobra.Command{
		Use:     "facets",
		GroupID: "catalog",
		Short:   "Show the filter values the catalog offers",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			sf, err := app.Storefront()
			if err != nil {
				return err
			}

			facets := sf.Facets()
			value := struct {
				Facets []filter.Facet    `json:"facets" yaml:"facets"`
				Price  filter.PriceRange `json:"price" yaml:"price"`
				Sorts  []filter.SortMode `json:"sorts" yaml:"sorts"`
			}{
				Facets: facets,
				Price:  filter.Prices(sf.Catalog().Products()),
				Sorts:  []filter.SortMode{filter.SortFeatured, filter.SortPriceLow, filter.SortPriceHigh},
			}
			return cmdutil.Render(cmd, app.OutputFormat(), value, table.Facets(facets))
		},
	}
}

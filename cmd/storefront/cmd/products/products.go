// Package products provides the catalog commands: products, facets and search.
package products

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/agentstation/storefront/cmd/application"
	"github.com/agentstation/storefront/internal/cmd/cmdutil"
	"github.com/agentstation/storefront/internal/cmd/table"
	"github.com/agentstation/storefront/pkg/catalog"
	"github.com/agentstation/storefront/pkg/filter"
)

// maxPriceFlag is the CLI spelling of the max_price query parameter.
const maxPriceFlag = "max-price"

// listing is the json/yaml shape of a product listing.
type listing struct {
	Title    string            `json:"title" yaml:"title"`
	Query    string            `json:"query,omitempty" yaml:"query,omitempty"`
	Count    int               `json:"count" yaml:"count"`
	Products []catalog.Product `json:"products" yaml:"products"`
}

// NewCommand creates the products command.
func NewCommand(app application.Application) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "products [id]",
		GroupID: "catalog",
		Aliases: []string{"product", "ls"},
		Short:   "List products, or show one product",
		Long: `Products lists the catalog the way the shop page does.

Filters combine: a product is shown when it matches the tag, any of the
selected categories, any of the selected sizes, any of the selected colors,
and costs no more than the price ceiling.`,
		Example: `  storefront products                              # Shop All
  storefront products 7                            # Product detail
  storefront products --filter sale                # Sale
  storefront products --category Outerwear --sort price-high
  storefront products --size M --color Black,White --max-price 150`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				return showProduct(cmd, app, args[0])
			}
			return listProducts(cmd, app)
		},
	}

	cmd.Flags().String(filter.ParamFilter, "", "Tag: new, bestseller, sale")
	cmd.Flags().StringSlice(filter.ParamCategory, nil, "Categories (comma-separated)")
	cmd.Flags().StringSlice(filter.ParamSize, nil, "Sizes (comma-separated)")
	cmd.Flags().StringSlice(filter.ParamColor, nil, "Colors (comma-separated)")
	cmd.Flags().Float64(maxPriceFlag, 0, "Price ceiling (default no ceiling)")
	cmd.Flags().String(filter.ParamSort, "", "Sort: featured, price-low, price-high")

	return cmd
}

func listProducts(cmd *cobra.Command, app application.Application) error {
	sf, err := app.Storefront()
	if err != nil {
		return err
	}

	state := filter.ParseQuery(queryFromFlags(cmd))
	result := sf.Filter(state)

	app.Logger().Debug().
		Str("query", state.Query().Encode()).
		Int("count", result.Count).
		Msg("Filtered catalog")

	return cmdutil.Render(cmd, app.OutputFormat(),
		listing{
			Title:    state.Title(),
			Query:    state.Query().Encode(),
			Count:    result.Count,
			Products: result.Products,
		},
		table.Products(state.Title(), result.Products))
}

func showProduct(cmd *cobra.Command, app application.Application, id string) error {
	sf, err := app.Storefront()
	if err != nil {
		return err
	}

	p, err := cmdutil.LookupProduct(sf.Catalog(), id)
	if err != nil {
		return err
	}
	return cmdutil.Render(cmd, app.OutputFormat(), p, table.Product(p))
}

// queryFromFlags encodes the filter flags as the shop page's URL query so
// the CLI and HTTP share one parser.
func queryFromFlags(cmd *cobra.Command) url.Values {
	q := url.Values{}
	if tag, _ := cmd.Flags().GetString(filter.ParamFilter); tag != "" {
		q.Set(filter.ParamFilter, tag)
	}
	for _, name := range []string{filter.ParamCategory, filter.ParamSize, filter.ParamColor} {
		if values, _ := cmd.Flags().GetStringSlice(name); len(values) > 0 {
			q.Set(name, strings.Join(values, ","))
		}
	}
	if cmd.Flags().Changed(maxPriceFlag) {
		price, _ := cmd.Flags().GetFloat64(maxPriceFlag)
		q.Set(filter.ParamMaxPrice, strconv.FormatFloat(price, 'f', -1, 64))
	}
	if mode, _ := cmd.Flags().GetString(filter.ParamSort); mode != "" {
		q.Set(filter.ParamSort, mode)
	}
	return q
}

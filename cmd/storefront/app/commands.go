package app

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/agentstation/storefront/cmd/storefront/cmd/cart"
	"github.com/agentstation/storefront/cmd/storefront/cmd/products"
	"github.com/agentstation/storefront/cmd/storefront/cmd/serve"
	"github.com/agentstation/storefront/cmd/storefront/cmd/wishlist"
)

// NewProductsCommand creates the products command with app dependencies.
func (a *App) NewProductsCommand() *cobra.Command {
	return products.NewCommand(a)
}

// NewFacetsCommand creates the facets command with app dependencies.
func (a *App) NewFacetsCommand() *cobra.Command {
	return products.NewFacetsCommand(a)
}

// NewSearchCommand creates the search command with app dependencies.
func (a *App) NewSearchCommand() *cobra.Command {
	return products.NewSearchCommand(a)
}

// NewCartCommand creates the cart command with app dependencies.
func (a *App) NewCartCommand() *cobra.Command {
	return cart.NewCommand(a)
}

// NewWishlistCommand creates the wishlist command with app dependencies.
func (a *App) NewWishlistCommand() *cobra.Command {
	return wishlist.NewCommand(a)
}

// NewServeCommand creates the serve command with app dependencies.
func (a *App) NewServeCommand() *cobra.Command {
	return serve.NewCommand(a)
}

// NewVersionCommand creates the version command.
func (a *App) NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(out, "storefront %s\n", a.version)
			if a.config.Verbose {
				_, _ = fmt.Fprintf(out, "  commit:   %s\n", a.commit)
				_, _ = fmt.Fprintf(out, "  built:    %s\n", a.date)
				_, _ = fmt.Fprintf(out, "  built by: %s\n", a.builtBy)
			}
		},
	}
}

// Package cart provides the cart commands.
package cart

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/storefront"
	"github.com/agentstation/storefront/cmd/application"
	"github.com/agentstation/storefront/internal/cmd/cmdutil"
	"github.com/agentstation/storefront/internal/cmd/emoji"
	"github.com/agentstation/storefront/internal/cmd/table"
	"github.com/agentstation/storefront/pkg/cart"
	"github.com/agentstation/storefront/pkg/constants"
	"github.com/agentstation/storefront/pkg/errors"
	"github.com/agentstation/storefront/pkg/logging"
)

// NewCommand creates the cart command and its subcommands.
func NewCommand(app application.Application) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "cart",
		GroupID: "stores",
		Short:   "Show and change the shopping cart",
		Long: `Cart manages the persisted shopping cart. Adding a product with the same
size and color as an existing line raises that line's quantity instead of
adding a new one.`,
		Example: `  storefront cart add 1 --size M --color Black
  storefront cart add 7 --qty 2
  storefront cart list -o markdown
  storefront cart remove 0
  storefront cart clear --session alice`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return list(cmd, app)
		},
	}
	cmdutil.AddSessionFlag(cmd)

	cmd.AddCommand(newListCommand(app))
	cmd.AddCommand(newAddCommand(app))
	cmd.AddCommand(newRemoveCommand(app))
	cmd.AddCommand(newClearCommand(app))
	return cmd
}

func newListCommand(app application.Application) *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls", "show"},
		Short:   "List cart lines with their total",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return list(cmd, app)
		},
	}
}

func newAddCommand(app application.Application) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add <product-id>",
		Short: "Add a product to the cart",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sf, err := app.Storefront()
			if err != nil {
				return err
			}
			p, err := cmdutil.LookupProduct(sf.Catalog(), args[0])
			if err != nil {
				return err
			}

			size, _ := cmd.Flags().GetString("size")
			color, _ := cmd.Flags().GetString("color")
			qty, _ := cmd.Flags().GetInt("qty")
			if err := cart.ValidateQuantity(qty); err != nil {
				return err
			}
			if err := cart.ValidateVariant(p, size, color); err != nil {
				return err
			}

			item := cart.ItemFor(p, size, color, qty)
			ctx := logging.WithProduct(cmd.Context(), p.ID)
			if err := sf.Session(cmdutil.Session(cmd)).Cart.AddItem(ctx, item); err != nil {
				return err
			}
			cmdutil.Status(cmd, emoji.Success, "Added %s", item)
			return list(cmd, app)
		},
	}
	cmd.Flags().String("size", "", "Size to add")
	cmd.Flags().String("color", "", "Color to add")
	cmd.Flags().Int("qty", constants.MinQuantity, "Quantity (1-10)")
	return cmd
}

func newRemoveCommand(app application.Application) *cobra.Command {
	return &cobra.Command{
		Use:     "remove <index>",
		Aliases: []string{"rm"},
		Short:   "Remove the cart line at index (see cart list)",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			index, err := cmdutil.ParseIndex(args[0])
			if err != nil {
				return err
			}
			s, err := session(cmd, app)
			if err != nil {
				return err
			}

			removed, err := s.Cart.RemoveItem(cmd.Context(), index)
			if err != nil {
				return err
			}
			if !removed {
				return errors.NewIndexError("cart", index, len(s.Cart.Items(cmd.Context())))
			}
			cmdutil.Status(cmd, emoji.Success, "Removed line %d", index)
			return list(cmd, app)
		},
	}
}

func newClearCommand(app application.Application) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Empty the cart",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := session(cmd, app)
			if err != nil {
				return err
			}
			if err := s.Cart.Clear(cmd.Context()); err != nil {
				return err
			}
			cmdutil.Status(cmd, emoji.Success, "Cart cleared")
			return nil
		},
	}
}

func list(cmd *cobra.Command, app application.Application) error {
	s, err := session(cmd, app)
	if err != nil {
		return err
	}
	summary := s.Cart.Summary(cmd.Context())
	return cmdutil.Render(cmd, app.OutputFormat(), summary, table.Cart(summary))
}

func session(cmd *cobra.Command, app application.Application) (storefront.Session, error) {
	sf, err := app.Storefront()
	if err != nil {
		return storefront.Session{}, err
	}
	return sf.Session(cmdutil.Session(cmd)), nil
}

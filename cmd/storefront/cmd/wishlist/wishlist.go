// Package wishlist provides the wishlist commands.
package wishlist

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/storefront"
	"github.com/agentstation/storefront/cmd/application"
	"github.com/agentstation/storefront/internal/cmd/cmdutil"
	"github.com/agentstation/storefront/internal/cmd/emoji"
	"github.com/agentstation/storefront/internal/cmd/table"
	"github.com/agentstation/storefront/pkg/errors"
	"github.com/agentstation/storefront/pkg/wishlist"
)

// summary is the json/yaml shape of the wishlist.
type summary struct {
	Items []wishlist.Item `json:"items" yaml:"items"`
	Count int             `json:"count" yaml:"count"`
}

// NewCommand creates the wishlist command and its subcommands.
func NewCommand(app application.Application) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "wishlist",
		GroupID: "stores",
		Aliases: []string{"saved"},
		Short:   "Show and change the wishlist",
		Long: `Wishlist manages saved products. A product is saved at most once;
adding it again leaves the list unchanged.`,
		Example: `  storefront wishlist add 4
  storefront wishlist toggle 4
  storefront wishlist list -o yaml
  storefront wishlist remove 0`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return list(cmd, app)
		},
	}
	cmdutil.AddSessionFlag(cmd)

	cmd.AddCommand(&cobra.Command{
		Use:     "list",
		Aliases: []string{"ls", "show"},
		Short:   "List saved products",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return list(cmd, app)
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "add <product-id>",
		Short: "Save a product",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return change(cmd, app, args[0], false)
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "toggle <product-id>",
		Short: "Save a product, or unsave it when already saved",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return change(cmd, app, args[0], true)
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:     "remove <index>",
		Aliases: []string{"rm"},
		Short:   "Remove the saved product at index (see wishlist list)",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return remove(cmd, app, args[0])
		},
	})
	return cmd
}

func change(cmd *cobra.Command, app application.Application, id string, toggle bool) error {
	sf, err := app.Storefront()
	if err != nil {
		return err
	}
	p, err := cmdutil.LookupProduct(sf.Catalog(), id)
	if err != nil {
		return err
	}

	w := sf.Session(cmdutil.Session(cmd)).Wishlist
	item := wishlist.ItemFor(p)

	var added bool
	if toggle {
		added, err = w.Toggle(cmd.Context(), item)
	} else {
		added, err = w.AddItem(cmd.Context(), item)
	}
	if err != nil {
		return err
	}

	switch {
	case added:
		cmdutil.Status(cmd, emoji.Saved, "Saved %s", p.Name)
	case toggle:
		cmdutil.Status(cmd, emoji.Success, "Removed %s", p.Name)
	default:
		cmdutil.Status(cmd, emoji.Warning, "%s is already saved", p.Name)
	}
	return list(cmd, app)
}

func remove(cmd *cobra.Command, app application.Application, arg string) error {
	index, err := cmdutil.ParseIndex(arg)
	if err != nil {
		return err
	}
	s, err := session(cmd, app)
	if err != nil {
		return err
	}

	removed, err := s.Wishlist.RemoveItem(cmd.Context(), index)
	if err != nil {
		return err
	}
	if !removed {
		return errors.NewIndexError("wishlist", index, s.Wishlist.Count(cmd.Context()))
	}
	cmdutil.Status(cmd, emoji.Success, "Removed entry %d", index)
	return list(cmd, app)
}

func list(cmd *cobra.Command, app application.Application) error {
	s, err := session(cmd, app)
	if err != nil {
		return err
	}
	items := s.Wishlist.Items(cmd.Context())
	return cmdutil.Render(cmd, app.OutputFormat(),
		summary{Items: items, Count: len(items)},
		table.Wishlist(items))
}

func session(cmd *cobra.Command, app application.Application) (storefront.Session, error) {
	sf, err := app.Storefront()
	if err != nil {
		return storefront.Session{}, err
	}
	return sf.Session(cmdutil.Session(cmd)), nil
}

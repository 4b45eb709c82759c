// Package cmdutil provides helpers shared by storefront commands.
package cmdutil

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/agentstation/storefront/internal/cmd/output"
	"github.com/agentstation/storefront/internal/cmd/table"
	"github.com/agentstation/storefront/pkg/catalog"
	"github.com/agentstation/storefront/pkg/errors"
)

// SessionFlag is the flag naming the shopper whose cart and wishlist a
// command works on. Empty means the un-namespaced stores.
const SessionFlag = "session"

// AddSessionFlag registers --session on cmd and its children.
func AddSessionFlag(cmd *cobra.Command) {
	cmd.PersistentFlags().String(SessionFlag, "",
		"Session namespace for the cart and wishlist (default: shared stores)")
}

// Session returns the --session value.
func Session(cmd *cobra.Command) string {
	id, err := cmd.Flags().GetString(SessionFlag)
	if err != nil {
		return ""
	}
	return id
}

// Render writes value in the requested format. Table and markdown output
// use rows; json and yaml serialize value itself.
func Render(cmd *cobra.Command, format string, value any, rows table.Data) error {
	f, err := output.ParseFormat(format)
	if err != nil {
		return err
	}
	f = output.DetectFormat(string(f))

	var data any = value
	if f.Tabular() {
		data = rows
	}
	return output.NewFormatter(f).Format(cmd.OutOrStdout(), data)
}

// Status prints a one-line confirmation to stderr so stdout stays
// machine readable.
func Status(cmd *cobra.Command, symbol, format string, args ...any) {
	_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "%s %s\n", symbol, fmt.Sprintf(format, args...))
}

// LookupProduct resolves a product id argument. Unknown ids are a
// NotFoundError; malformed ids a ValidationError.
func LookupProduct(cat *catalog.Catalog, id string) (catalog.Product, error) {
	p, ok, err := cat.ProductByID(id)
	if err != nil {
		return catalog.Product{}, err
	}
	if !ok {
		return catalog.Product{}, errors.NewNotFoundError("product", id)
	}
	return p, nil
}

// ParseIndex parses a list position argument.
func ParseIndex(arg string) (int, error) {
	index, err := strconv.Atoi(arg)
	if err != nil {
		return 0, errors.NewValidationError("index", arg, "must be an integer")
	}
	return index, nil
}

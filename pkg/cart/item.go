package cart

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/agentstation/storefront/pkg/catalog"
	"github.com/agentstation/storefront/pkg/constants"
	"github.com/agentstation/storefront/pkg/errors"
)

// Item is a cart line. Price is captured when the line is created and is
// not re-derived from the catalog.
type Item struct {
	Name  string  `json:"name"`
	Price float64 `json:"price"`
	Img   string  `json:"img"`
	Size  string  `json:"size"`
	Color string  `json:"color"`
	Qty   int     `json:"qty"`
}

// Key is the identity of a cart line. Two items with equal keys merge.
type Key struct {
	Name  string
	Size  string
	Color string
}

// Key returns the identity of the line.
func (i Item) Key() Key {
	return Key{Name: i.Name, Size: i.Size, Color: i.Color}
}

// LineTotal returns price times quantity.
func (i Item) LineTotal() decimal.Decimal {
	return decimal.NewFromFloat(i.Price).Mul(decimal.NewFromInt(int64(i.Qty)))
}

// String renders the line the way the cart flyout does: "Slim Fit Denim M / Black × 2".
func (i Item) String() string {
	var variant []string
	if i.Size != "" {
		variant = append(variant, i.Size)
	}
	if i.Color != "" {
		variant = append(variant, i.Color)
	}
	if len(variant) == 0 {
		return fmt.Sprintf("%s × %d", i.Name, i.Qty)
	}
	return fmt.Sprintf("%s %s × %d", i.Name, strings.Join(variant, " / "), i.Qty)
}

// ItemFor builds a line for p with the selected variant.
func ItemFor(p catalog.Product, size, color string, qty int) Item {
	return Item{
		Name:  p.Name,
		Price: p.Price,
		Img:   p.Image(),
		Size:  size,
		Color: color,
		Qty:   qty,
	}
}

// ClampQuantity forces n into the range the quantity selector allows.
func ClampQuantity(n int) int {
	switch {
	case n < constants.MinQuantity:
		return constants.MinQuantity
	case n > constants.MaxQuantity:
		return constants.MaxQuantity
	default:
		return n
	}
}

// ValidateQuantity rejects quantities the selector cannot produce. The
// store itself accepts any quantity; edges call this before AddItem.
func ValidateQuantity(n int) error {
	if n < constants.MinQuantity || n > constants.MaxQuantity {
		return errors.NewValidationError("qty", n,
			fmt.Sprintf("must be between %d and %d", constants.MinQuantity, constants.MaxQuantity))
	}
	return nil
}

// ValidateVariant checks that size and color are offered for p. Empty
// values are allowed because both selections are optional.
func ValidateVariant(p catalog.Product, size, color string) error {
	if size != "" && !p.HasSize(size) {
		return errors.NewValidationError("size", size, fmt.Sprintf("%s is not offered in size %s", p.Name, size))
	}
	if color != "" && !p.HasColor(color) {
		return errors.NewValidationError("color", color, fmt.Sprintf("%s is not offered in %s", p.Name, color))
	}
	return nil
}

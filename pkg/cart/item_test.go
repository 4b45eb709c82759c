package cart_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/storefront/pkg/cart"
	"github.com/agentstation/storefront/pkg/catalog"
	"github.com/agentstation/storefront/pkg/errors"
)

func TestItemFor(t *testing.T) {
	c, err := catalog.Embedded()
	require.NoError(t, err)
	p, ok := c.Product(7)
	require.True(t, ok)

	item := cart.ItemFor(p, "M", "Indigo", 2)
	assert.Equal(t, "Slim Fit Denim", item.Name)
	assert.Equal(t, 119.0, item.Price)
	assert.Equal(t, p.Images[0], item.Img)
	assert.Equal(t, 2, item.Qty)
	assert.Equal(t, "238", item.LineTotal().String())
}

func TestItemString(t *testing.T) {
	tests := []struct {
		item cart.Item
		want string
	}{
		{item: cart.Item{Name: "Tee", Size: "M", Color: "Black", Qty: 2}, want: "Tee M / Black × 2"},
		{item: cart.Item{Name: "Tee", Size: "M", Qty: 1}, want: "Tee M × 1"},
		{item: cart.Item{Name: "Belt", Qty: 1}, want: "Belt × 1"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.item.String())
	}
}

func TestQuantityBounds(t *testing.T) {
	tests := []struct {
		in      int
		clamped int
		valid   bool
	}{
		{in: -3, clamped: 1},
		{in: 0, clamped: 1},
		{in: 1, clamped: 1, valid: true},
		{in: 10, clamped: 10, valid: true},
		{in: 11, clamped: 10},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.clamped, cart.ClampQuantity(tt.in))
		err := cart.ValidateQuantity(tt.in)
		if tt.valid {
			assert.NoError(t, err)
		} else {
			assert.True(t, errors.IsValidationError(err), "qty %d", tt.in)
		}
	}
}

func TestValidateVariant(t *testing.T) {
	p := catalog.Product{
		Name:   "Belt",
		Sizes:  []string{"M"},
		Colors: []catalog.Color{{Name: "Black"}},
	}

	assert.NoError(t, cart.ValidateVariant(p, "M", "black"))
	assert.NoError(t, cart.ValidateVariant(p, "", ""))
	assert.Error(t, cart.ValidateVariant(p, "XL", ""))
	assert.Error(t, cart.ValidateVariant(p, "", "Red"))
}

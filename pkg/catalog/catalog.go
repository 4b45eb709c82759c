// Package catalog holds the immutable, ordered list of products the
// storefront sells. A Catalog is built once at startup and only read after.
package catalog

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/agentstation/storefront/pkg/errors"
)

// Catalog is an ordered, read-only product list. Order is the featured order.
type Catalog struct {
	products []Product
	byID     map[int]int
	byName   map[string]int
}

// New validates products and builds a catalog preserving their order.
func New(products []Product) (*Catalog, error) {
	c := &Catalog{
		products: make([]Product, 0, len(products)),
		byID:     make(map[int]int, len(products)),
		byName:   make(map[string]int, len(products)),
	}

	for _, p := range products {
		if err := validate(p); err != nil {
			return nil, err
		}
		if _, dup := c.byID[p.ID]; dup {
			return nil, errors.NewValidationError("id", p.ID, "duplicate product id")
		}
		if _, dup := c.byName[p.Name]; dup {
			return nil, errors.NewValidationError("name", p.Name, "duplicate product name")
		}
		c.byID[p.ID] = len(c.products)
		c.byName[p.Name] = len(c.products)
		c.products = append(c.products, p)
	}

	return c, nil
}

func validate(p Product) error {
	switch {
	case p.ID <= 0:
		return errors.NewValidationError("id", p.ID, "must be a positive integer")
	case strings.TrimSpace(p.Name) == "":
		return errors.NewValidationError("name", p.Name, fmt.Sprintf("product %d has no name", p.ID))
	case p.Price <= 0:
		return errors.NewValidationError("price", p.Price, fmt.Sprintf("product %d must have a positive price", p.ID))
	case p.OldPrice != 0 && p.OldPrice <= p.Price:
		return errors.NewValidationError("old_price", p.OldPrice, fmt.Sprintf("product %d old price must exceed price", p.ID))
	case len(p.Sizes) == 0:
		return errors.NewValidationError("sizes", p.Sizes, fmt.Sprintf("product %d has no sizes", p.ID))
	case len(p.Colors) == 0:
		return errors.NewValidationError("colors", p.Colors, fmt.Sprintf("product %d has no colors", p.ID))
	case len(p.Images) == 0:
		return errors.NewValidationError("images", p.Images, fmt.Sprintf("product %d has no images", p.ID))
	}
	return nil
}

// Products returns the products in catalog order.
// The returned slice is a copy; the records themselves must not be modified.
func (c *Catalog) Products() []Product {
	out := make([]Product, len(c.products))
	copy(out, c.products)
	return out
}

// Len returns the number of products.
func (c *Catalog) Len() int {
	return len(c.products)
}

// First returns up to n products in catalog order.
func (c *Catalog) First(n int) []Product {
	if n > len(c.products) {
		n = len(c.products)
	}
	if n < 0 {
		n = 0
	}
	out := make([]Product, n)
	copy(out, c.products[:n])
	return out
}

// Product looks up a product by its numeric id.
func (c *Catalog) Product(id int) (Product, bool) {
	i, ok := c.byID[id]
	if !ok {
		return Product{}, false
	}
	return c.products[i], true
}

// ProductByID coerces a textual id (as found in a URL query) and looks it up.
// An id with no leading integer yields a *errors.ValidationError; any other
// id with no product yields false and a nil error.
func (c *Catalog) ProductByID(id string) (Product, bool, error) {
	n, err := ParseID(id)
	if err != nil {
		return Product{}, false, err
	}
	p, ok := c.Product(n)
	return p, ok, nil
}

// ProductByName looks up a product by its unique display name.
func (c *Catalog) ProductByName(name string) (Product, bool) {
	i, ok := c.byName[name]
	if !ok {
		return Product{}, false
	}
	return c.products[i], true
}

// ParseID converts a textual product id into its integer form. Like links
// shared from the shop page, it reads the leading integer and ignores any
// trailing text, so "3abc" and "12.5" name products 3 and 12.
func ParseID(id string) (int, error) {
	s := strings.TrimSpace(id)
	end := 0
	if end < len(s) && (s[end] == '-' || s[end] == '+') {
		end++
	}
	digits := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digits {
		return 0, errors.NewValidationError("id", id, "product id must start with an integer")
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0, errors.NewValidationError("id", id, "product id is out of range")
	}
	return n, nil
}

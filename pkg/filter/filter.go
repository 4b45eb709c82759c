// Package filter selects and orders the products shown on the shop page.
//
// A State holds the active facets. Evaluate applies it to a product list:
// a product is visible only when every facet accepts it, and an empty set
// facet accepts everything.
package filter

import (
	"sort"
	"strings"

	"github.com/agentstation/storefront/pkg/catalog"
	"github.com/agentstation/storefront/pkg/constants"
)

// SortMode orders the visible products.
type SortMode string

// Sort modes.
const (
	SortFeatured  SortMode = "featured"
	SortPriceLow  SortMode = "price-low"
	SortPriceHigh SortMode = "price-high"
)

// Valid reports whether m is a known sort mode.
func (m SortMode) Valid() bool {
	switch m {
	case SortFeatured, SortPriceLow, SortPriceHigh:
		return true
	}
	return false
}

// State is the active filter selection.
type State struct {
	Categories []string `json:"categories,omitempty" yaml:"categories,omitempty"`
	Sizes      []string `json:"sizes,omitempty" yaml:"sizes,omitempty"`
	Colors     []string `json:"colors,omitempty" yaml:"colors,omitempty"`
	MaxPrice   float64  `json:"max_price" yaml:"max_price"`
	Tag        string   `json:"tag,omitempty" yaml:"tag,omitempty"`
	Sort       SortMode `json:"sort" yaml:"sort"`
}

// NewState returns the state of a freshly loaded shop page. A zero State
// has MaxPrice 0 and hides every product.
func NewState() State {
	return State{
		MaxPrice: constants.DefaultMaxPrice,
		Sort:     SortFeatured,
	}
}

// Result is the outcome of Evaluate.
type Result struct {
	Products []catalog.Product `json:"products"`
	Count    int               `json:"count"`
}

// Evaluate returns the products state accepts, ordered by state.Sort.
// Ties under a price sort keep their input order.
func Evaluate(products []catalog.Product, state State) Result {
	visible := make([]catalog.Product, 0, len(products))
	for _, p := range products {
		if state.Matches(p) {
			visible = append(visible, p)
		}
	}

	switch state.Sort {
	case SortPriceLow:
		sort.SliceStable(visible, func(i, j int) bool {
			return visible[i].Price < visible[j].Price
		})
	case SortPriceHigh:
		sort.SliceStable(visible, func(i, j int) bool {
			return visible[i].Price > visible[j].Price
		})
	}

	return Result{Products: visible, Count: len(visible)}
}

// Matches reports whether every facet of s accepts p.
func (s State) Matches(p catalog.Product) bool {
	if len(s.Categories) > 0 && !containsFold(s.Categories, p.Category) {
		return false
	}
	if len(s.Sizes) > 0 && !anySize(s.Sizes, p) {
		return false
	}
	if len(s.Colors) > 0 && !containsFold(s.Colors, p.Color) {
		return false
	}
	if p.Price > s.MaxPrice {
		return false
	}
	if s.Tag != "" && p.Tag() != s.Tag {
		return false
	}
	return true
}

// IsZero reports whether s matches the default shop view.
func (s State) IsZero() bool {
	return len(s.Categories) == 0 && len(s.Sizes) == 0 && len(s.Colors) == 0 &&
		s.Tag == "" && s.MaxPrice == constants.DefaultMaxPrice &&
		(s.Sort == SortFeatured || s.Sort == "")
}

func anySize(sizes []string, p catalog.Product) bool {
	for _, size := range p.Sizes {
		if containsFold(sizes, size) {
			return true
		}
	}
	return false
}

func containsFold(values []string, v string) bool {
	for _, candidate := range values {
		if strings.EqualFold(candidate, v) {
			return true
		}
	}
	return false
}

package filter

import (
	"sort"

	"github.com/agentstation/storefront/pkg/catalog"
)

// Facet lists the values a filter control offers.
type Facet struct {
	Name   string       `json:"name" yaml:"name"`
	Values []FacetValue `json:"values" yaml:"values"`
}

// FacetValue is one selectable value and the number of products carrying it.
type FacetValue struct {
	Value string `json:"value" yaml:"value"`
	Label string `json:"label,omitempty" yaml:"label,omitempty"`
	Count int    `json:"count" yaml:"count"`
}

// PriceRange bounds the prices of a product list.
type PriceRange struct {
	Min float64 `json:"min" yaml:"min"`
	Max float64 `json:"max" yaml:"max"`
}

var sizeRank = map[string]int{"XXS": 0, "XS": 1, "S": 2, "M": 3, "L": 4, "XL": 5, "XXL": 6}

// Facets counts the category, size, color and tag values present in
// products. Categories and colors keep first-seen order; sizes run from
// small to large.
func Facets(products []catalog.Product) []Facet {
	categories := newCounter()
	sizes := newCounter()
	colors := newCounter()
	tags := newCounter()

	for _, p := range products {
		categories.add(p.Category)
		colors.add(p.Color)
		tags.add(p.Tag())
		for _, s := range p.Sizes {
			sizes.add(s)
		}
	}

	sort.SliceStable(sizes.order, func(i, j int) bool {
		ri, iok := sizeRank[sizes.order[i]]
		rj, jok := sizeRank[sizes.order[j]]
		if iok != jok {
			return iok
		}
		return ri < rj
	})

	tagValues := tags.values()
	for i := range tagValues {
		tagValues[i].Label = TagLabel(tagValues[i].Value)
	}

	return []Facet{
		{Name: ParamCategory, Values: categories.values()},
		{Name: ParamSize, Values: sizes.values()},
		{Name: ParamColor, Values: colors.values()},
		{Name: ParamFilter, Values: tagValues},
	}
}

// Prices returns the cheapest and dearest price in products.
func Prices(products []catalog.Product) PriceRange {
	var r PriceRange
	for i, p := range products {
		if i == 0 || p.Price < r.Min {
			r.Min = p.Price
		}
		if p.Price > r.Max {
			r.Max = p.Price
		}
	}
	return r
}

type counter struct {
	order  []string
	counts map[string]int
}

func newCounter() *counter {
	return &counter{counts: make(map[string]int)}
}

func (c *counter) add(v string) {
	if v == "" {
		return
	}
	if _, ok := c.counts[v]; !ok {
		c.order = append(c.order, v)
	}
	c.counts[v]++
}

func (c *counter) values() []FacetValue {
	out := make([]FacetValue, len(c.order))
	for i, v := range c.order {
		out[i] = FacetValue{Value: v, Count: c.counts[v]}
	}
	return out
}

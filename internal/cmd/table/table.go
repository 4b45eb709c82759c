// Package table converts storefront values into rows for CLI output.
package table

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/agentstation/storefront/pkg/cart"
	"github.com/agentstation/storefront/pkg/catalog"
	"github.com/agentstation/storefront/pkg/filter"
	"github.com/agentstation/storefront/pkg/wishlist"
)

// Align represents column alignment in tables.
type Align int

const (
	// AlignDefault uses the default alignment (skip).
	AlignDefault Align = iota
	// AlignLeft aligns content to the left.
	AlignLeft
	// AlignCenter centers content.
	AlignCenter
	// AlignRight aligns content to the right.
	AlignRight
)

// Data represents table formatting data to avoid import cycles.
type Data struct {
	Title           string
	Headers         []string
	Rows            [][]string
	ColumnAlignment []Align // Optional: column alignment
	Footer          string
}

// Products lists products one per row.
func Products(title string, products []catalog.Product) Data {
	rows := make([][]string, 0, len(products))
	for _, p := range products {
		rows = append(rows, []string{
			strconv.Itoa(p.ID),
			p.Name,
			p.Category,
			priceCell(p),
			orDash(p.Badge),
			orDash(strings.Join(p.Sizes, " ")),
			orDash(p.Color),
		})
	}
	return Data{
		Title:           title,
		Headers:         []string{"ID", "Name", "Category", "Price", "Badge", "Sizes", "Color"},
		Rows:            rows,
		ColumnAlignment: []Align{AlignRight, AlignLeft, AlignLeft, AlignRight, AlignLeft, AlignLeft, AlignLeft},
		Footer:          fmt.Sprintf("%d products", len(products)),
	}
}

// Product renders one product as a property table.
func Product(p catalog.Product) Data {
	colors := make([]string, 0, len(p.Colors))
	for _, c := range p.Colors {
		colors = append(colors, c.Name)
	}
	rows := [][]string{
		{"ID", strconv.Itoa(p.ID)},
		{"Name", p.Name},
		{"Category", p.Category},
		{"Price", priceCell(p)},
		{"Badge", orDash(p.Badge)},
		{"Sizes", orDash(strings.Join(p.Sizes, ", "))},
		{"Colors", orDash(strings.Join(colors, ", "))},
		{"Fit", orDash(p.Fit)},
		{"Description", p.Description},
	}
	for _, d := range p.Details {
		rows = append(rows, []string{"Detail", d})
	}
	return Data{
		Title:   p.Name,
		Headers: []string{"Property", "Value"},
		Rows:    rows,
	}
}

// Facets lists every facet value with its product count.
func Facets(facets []filter.Facet) Data {
	var rows [][]string
	for _, f := range facets {
		for _, v := range f.Values {
			label := v.Value
			if v.Label != "" {
				label = v.Label
			}
			rows = append(rows, []string{f.Name, label, strconv.Itoa(v.Count)})
		}
	}
	return Data{
		Headers:         []string{"Facet", "Value", "Products"},
		Rows:            rows,
		ColumnAlignment: []Align{AlignLeft, AlignLeft, AlignRight},
	}
}

// Cart lists the cart lines with their index, which cart remove takes.
func Cart(summary cart.Summary) Data {
	rows := make([][]string, 0, len(summary.Items))
	for i, it := range summary.Items {
		rows = append(rows, []string{
			strconv.Itoa(i),
			it.Name,
			orDash(it.Size),
			orDash(it.Color),
			strconv.Itoa(it.Qty),
			catalog.FormatPrice(it.Price),
			catalog.FormatPrice(it.LineTotal().InexactFloat64()),
		})
	}
	return Data{
		Title:           "Cart",
		Headers:         []string{"#", "Name", "Size", "Color", "Qty", "Price", "Line Total"},
		Rows:            rows,
		ColumnAlignment: []Align{AlignRight, AlignLeft, AlignLeft, AlignLeft, AlignRight, AlignRight, AlignRight},
		Footer:          fmt.Sprintf("%d items, total %s", summary.Count, catalog.FormatPrice(summary.Total)),
	}
}

// Wishlist lists the saved products with their index.
func Wishlist(items []wishlist.Item) Data {
	rows := make([][]string, 0, len(items))
	for i, it := range items {
		rows = append(rows, []string{
			strconv.Itoa(i),
			strconv.Itoa(it.ID),
			it.Name,
			catalog.FormatPrice(it.Price),
		})
	}
	return Data{
		Title:           "Wishlist",
		Headers:         []string{"#", "ID", "Name", "Price"},
		Rows:            rows,
		ColumnAlignment: []Align{AlignRight, AlignRight, AlignLeft, AlignRight},
		Footer:          fmt.Sprintf("%d saved", len(items)),
	}
}

// priceCell shows the sale price followed by the struck price.
func priceCell(p catalog.Product) string {
	if !p.OnSale() {
		return catalog.FormatPrice(p.Price)
	}
	return fmt.Sprintf("%s (was %s, -%d%%)", catalog.FormatPrice(p.Price), catalog.FormatPrice(p.OldPrice), p.Discount())
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

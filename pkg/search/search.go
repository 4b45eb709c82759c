// Package search answers the storefront search box. A blank query shows
// the popular picks; anything else is a case-insensitive substring match
// over product name, category and description.
package search

import (
	"strings"

	"golang.org/x/text/cases"

	"github.com/agentstation/storefront/pkg/catalog"
	"github.com/agentstation/storefront/pkg/constants"
)

// Result is the answer to a query.
type Result struct {
	Products []catalog.Product `json:"products"`

	// Default is true when the query was blank and Products holds the
	// popular picks rather than matches.
	Default bool `json:"default"`
}

// NoResults reports whether a non-blank query matched nothing.
func (r Result) NoResults() bool {
	return !r.Default && len(r.Products) == 0
}

// Index holds products with their searchable text folded once.
type Index struct {
	products []catalog.Product
	folded   []string
	picks    int
	limit    int
}

// Option configures an Index.
type Option func(*Index)

// WithLimit caps the matches returned for a non-blank query.
func WithLimit(n int) Option {
	return func(idx *Index) {
		if n > 0 {
			idx.limit = n
		}
	}
}

// WithPopularPicks sets how many products a blank query returns.
func WithPopularPicks(n int) Option {
	return func(idx *Index) {
		if n >= 0 {
			idx.picks = n
		}
	}
}

// New indexes products, keeping their order.
func New(products []catalog.Product, opts ...Option) *Index {
	idx := &Index{
		products: append([]catalog.Product(nil), products...),
		folded:   make([]string, len(products)),
		picks:    constants.PopularPicksLimit,
		limit:    constants.MaxSearchResults,
	}
	for _, opt := range opts {
		opt(idx)
	}

	caser := cases.Fold()
	for i, p := range idx.products {
		// NUL keeps a query from matching across field boundaries.
		idx.folded[i] = caser.String(p.Name + "\x00" + p.Category + "\x00" + p.Description)
	}
	return idx
}

// Query runs text against the index.
func (idx *Index) Query(text string) Result {
	text = strings.TrimSpace(text)
	if text == "" {
		n := min(idx.picks, len(idx.products))
		return Result{
			Products: append([]catalog.Product(nil), idx.products[:n]...),
			Default:  true,
		}
	}

	// Fields are NUL separated, so a needle holding NUL could only match
	// across two of them.
	if strings.ContainsRune(text, 0) {
		return Result{Products: []catalog.Product{}}
	}

	needle := cases.Fold().String(text)
	matches := make([]catalog.Product, 0, idx.limit)
	for i, haystack := range idx.folded {
		if strings.Contains(haystack, needle) {
			matches = append(matches, idx.products[i])
			if len(matches) == idx.limit {
				break
			}
		}
	}
	return Result{Products: matches}
}

// Len returns the number of indexed products.
func (idx *Index) Len() int {
	return len(idx.products)
}

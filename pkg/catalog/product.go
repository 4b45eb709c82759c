package catalog

import (
	"math"
	"strings"
)

// Badge values printed on product cards.
const (
	BadgeNew        = "New"
	BadgeBestSeller = "Best Seller"
	BadgeSale       = "Sale"
)

// Color is a selectable colorway of a product.
type Color struct {
	Name string `json:"name" yaml:"name"`
	Hex  string `json:"hex" yaml:"hex"`
}

// Product is an immutable catalog record.
type Product struct {
	ID          int      `json:"id" yaml:"id"`
	Name        string   `json:"name" yaml:"name"`
	Category    string   `json:"category" yaml:"category"`
	Price       float64  `json:"price" yaml:"price"`
	OldPrice    float64  `json:"old_price,omitempty" yaml:"old_price,omitempty"`
	Badge       string   `json:"badge,omitempty" yaml:"badge,omitempty"`
	Color       string   `json:"color" yaml:"color"` // primary color, drives the color facet
	Sizes       []string `json:"sizes" yaml:"sizes"`
	Colors      []Color  `json:"colors" yaml:"colors"`
	Images      []string `json:"images" yaml:"images"`
	Description string   `json:"description" yaml:"description"`
	Details     []string `json:"details,omitempty" yaml:"details,omitempty"`
	Fit         string   `json:"fit,omitempty" yaml:"fit,omitempty"`
}

// Tag returns the badge as a filter slug: "New" becomes "new" and
// "Best Seller" becomes "bestseller". Products without a badge return "".
func (p Product) Tag() string {
	return strings.ToLower(strings.Join(strings.Fields(p.Badge), ""))
}

// OnSale reports whether the product carries a crossed-out old price.
func (p Product) OnSale() bool {
	return p.OldPrice > p.Price
}

// Discount returns the whole percentage saved against the old price.
func (p Product) Discount() int {
	if !p.OnSale() {
		return 0
	}
	return int(math.Round((p.OldPrice - p.Price) / p.OldPrice * 100))
}

// HasSize reports whether size is offered.
func (p Product) HasSize(size string) bool {
	for _, s := range p.Sizes {
		if s == size {
			return true
		}
	}
	return false
}

// HasColor reports whether a colorway with the given name is offered.
// The comparison ignores case.
func (p Product) HasColor(name string) bool {
	for _, c := range p.Colors {
		if strings.EqualFold(c.Name, name) {
			return true
		}
	}
	return false
}

// Image returns the first image, used as the cart and wishlist thumbnail.
func (p Product) Image() string {
	if len(p.Images) == 0 {
		return ""
	}
	return p.Images[0]
}

// Gallery returns the product images sized for the detail page gallery.
func (p Product) Gallery(width int) []string {
	gallery := make([]string, len(p.Images))
	for i, img := range p.Images {
		gallery[i] = ImageURL(img, width)
	}
	return gallery
}

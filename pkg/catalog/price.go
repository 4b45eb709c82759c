package catalog

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/agentstation/storefront/pkg/constants"
)

var printer = message.NewPrinter(language.English)

// FormatPrice renders a price the way product cards show it, for example ₹1,249.
func FormatPrice(price float64) string {
	return constants.CurrencySymbol + printer.Sprintf("%.0f", price)
}

// ImageURL sizes an image for the CDN. Unsplash URLs already carry their
// sizing parameters and are returned unchanged.
func ImageURL(url string, width int) string {
	if url == "" || strings.Contains(url, "images.unsplash.com") {
		return url
	}
	sep := "?"
	if strings.Contains(url, "?") {
		sep = "&"
	}
	return fmt.Sprintf("%s%sw=%d&q=%d&fit=crop", url, sep, width, constants.ImageQuality)
}

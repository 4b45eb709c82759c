// Package embedded carries the storefront catalog compiled into the binary.
package embedded

import (
	"embed"
)

// FS embeds the catalog yaml files at build time.
//
//go:embed catalog/*.yaml
var FS embed.FS

// CatalogPath is the location of the product list inside FS.
const CatalogPath = "catalog/products.yaml"

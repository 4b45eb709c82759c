package catalog

import (
	"os"
	"sync"

	"github.com/goccy/go-yaml"

	"github.com/agentstation/storefront/internal/embedded"
	"github.com/agentstation/storefront/pkg/errors"
)

// document is the on-disk shape of a catalog file.
type document struct {
	Products []Product `yaml:"products"`
}

// Parse decodes a YAML catalog document.
func Parse(data []byte) (*Catalog, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, errors.WrapParse("yaml", "", err)
	}
	return New(doc.Products)
}

// LoadFile reads a YAML catalog from disk.
func LoadFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WrapIO("read", path, err)
	}
	c, err := Parse(data)
	if err != nil {
		return nil, errors.WrapResource("load", "catalog", path, err)
	}
	return c, nil
}

var (
	embeddedOnce    sync.Once
	embeddedCatalog *Catalog
	embeddedErr     error
)

// Embedded returns the catalog compiled into the binary. It is parsed once
// per process and shared, which is safe because catalogs are read-only.
func Embedded() (*Catalog, error) {
	embeddedOnce.Do(func() {
		data, err := embedded.FS.ReadFile(embedded.CatalogPath)
		if err != nil {
			embeddedErr = errors.WrapIO("read", embedded.CatalogPath, err)
			return
		}
		embeddedCatalog, embeddedErr = Parse(data)
		if embeddedErr != nil {
			embeddedErr = errors.WrapResource("load", "catalog", "embedded", embeddedErr)
		}
	})
	return embeddedCatalog, embeddedErr
}

package storefront

import (
	"github.com/rs/zerolog"

	"github.com/agentstation/storefront/pkg/catalog"
	"github.com/agentstation/storefront/pkg/constants"
	"github.com/agentstation/storefront/pkg/errors"
	"github.com/agentstation/storefront/pkg/events"
	"github.com/agentstation/storefront/pkg/storage"
)

// Option is a function that configures a Storefront instance
type Option func(*config) error

// config holds the settings gathered from options
type config struct {
	medium      storage.Medium
	storageURL  string
	catalog     *catalog.Catalog
	catalogPath string
	logger      *zerolog.Logger
	notifier    events.Notifier
	namespace   string
	cartKey     string
	wishlistKey string
}

func defaultConfig() *config {
	return &config{
		notifier:    events.Nop,
		cartKey:     constants.CartKey,
		wishlistKey: constants.WishlistKey,
	}
}

// WithMedium persists the cart and wishlist in m. The caller keeps
// ownership; Close does not close it.
func WithMedium(m storage.Medium) Option {
	return func(c *config) error {
		if m == nil {
			return errors.NewValidationError("medium", nil, "medium is required")
		}
		c.medium = m
		return nil
	}
}

// WithStorageURL opens the medium named by url (see storage.Open). The
// storefront owns the opened medium and closes it on Close.
func WithStorageURL(url string) Option {
	return func(c *config) error {
		c.storageURL = url
		return nil
	}
}

// WithCatalog uses cat instead of the embedded catalog
func WithCatalog(cat *catalog.Catalog) Option {
	return func(c *config) error {
		if cat == nil {
			return errors.NewValidationError("catalog", nil, "catalog is required")
		}
		c.catalog = cat
		return nil
	}
}

// WithCatalogFile loads the catalog from a YAML file
func WithCatalogFile(path string) Option {
	return func(c *config) error {
		c.catalogPath = path
		return nil
	}
}

// WithLogger configures the logger handed to every store
func WithLogger(logger *zerolog.Logger) Option {
	return func(c *config) error {
		c.logger = logger
		return nil
	}
}

// WithNotifier adds a collaborator that receives every store event after
// the registered hooks
func WithNotifier(n events.Notifier) Option {
	return func(c *config) error {
		if n != nil {
			c.notifier = n
		}
		return nil
	}
}

// WithNamespace prefixes the cart and wishlist keys with ns
func WithNamespace(ns string) Option {
	return func(c *config) error {
		c.namespace = ns
		return nil
	}
}

// WithCartKey overrides the cart key
func WithCartKey(key string) Option {
	return func(c *config) error {
		if key == "" {
			return errors.NewValidationError("cart_key", key, "key cannot be empty")
		}
		c.cartKey = key
		return nil
	}
}

// WithWishlistKey overrides the wishlist key
func WithWishlistKey(key string) Option {
	return func(c *config) error {
		if key == "" {
			return errors.NewValidationError("wishlist_key", key, "key cannot be empty")
		}
		c.wishlistKey = key
		return nil
	}
}

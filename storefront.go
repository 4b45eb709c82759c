// Package storefront is the entry point for the storefront state and query
// engine. It wires an immutable product catalog to a persisted cart and
// wishlist, and answers filter and search queries against the catalog.
//
// Example usage:
//
//	// Create a storefront backed by the default in-memory medium
//	sf, err := storefront.New()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer sf.Close()
//
//	// Refresh a badge whenever the cart changes
//	sf.OnChanged(func(e events.Event) {
//	    fmt.Printf("%s: %d items\n", e.Store, e.Count)
//	})
//
//	// Add the first product to the cart
//	p, _, _ := sf.Product("1")
//	_ = sf.Cart().AddItem(ctx, cart.ItemFor(p, "M", "Black", 1))
//
//	// Query the shop page
//	state := filter.NewState()
//	state.Categories = []string{"Outerwear"}
//	result := sf.Filter(state)
package storefront

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/agentstation/storefront/pkg/cart"
	"github.com/agentstation/storefront/pkg/catalog"
	"github.com/agentstation/storefront/pkg/events"
	"github.com/agentstation/storefront/pkg/filter"
	"github.com/agentstation/storefront/pkg/logging"
	"github.com/agentstation/storefront/pkg/search"
	"github.com/agentstation/storefront/pkg/storage"
	"github.com/agentstation/storefront/pkg/wishlist"
)

// Storefront owns a catalog, its cart and wishlist, and the hooks that
// observe them.
type Storefront interface {
	// Catalog returns the product catalog
	Catalog() *catalog.Catalog

	// Cart returns the cart store
	Cart() *cart.Store

	// Wishlist returns the wishlist store
	Wishlist() *wishlist.Store

	// Session returns the cart and wishlist views of one session
	Session(id string) Session

	// Product looks up a product by its textual id
	Product(id string) (catalog.Product, bool, error)

	// Filter evaluates state against the catalog
	Filter(state filter.State) filter.Result

	// Facets lists the filter values the catalog offers
	Facets() []filter.Facet

	// Search runs a search box query
	Search(text string) search.Result

	// OnAdded registers a callback for when items are added
	OnAdded(events.AddedHook)

	// OnRemoved registers a callback for when items are removed
	OnRemoved(events.RemovedHook)

	// OnChanged registers a callback for after every mutation
	OnChanged(events.ChangedHook)

	// Ping reports whether the persistence medium is reachable
	Ping(ctx context.Context) error

	// Close releases the medium when the storefront opened it
	Close() error
}

// Session groups the stores of a single shopper.
type Session struct {
	ID       string
	Cart     *cart.Store
	Wishlist *wishlist.Store
}

// storefront is the internal implementation of the Storefront interface
type storefront struct {
	config   *config
	catalog  *catalog.Catalog
	index    *search.Index
	medium   storage.Medium
	cart     *cart.Store
	wishlist *wishlist.Store
	hooks    *events.Hooks
	logger   *zerolog.Logger
}

// New creates a Storefront with the given options.
func New(opts ...Option) (Storefront, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, fmt.Errorf("applying options: %w", err)
		}
	}

	sf := &storefront{
		config: cfg,
		hooks:  events.NewHooks(),
		logger: cfg.logger,
	}
	if sf.logger == nil {
		sf.logger = logging.Disabled()
	}

	if err := sf.open(); err != nil {
		return nil, err
	}

	notifier := events.Multi{sf.hooks, cfg.notifier}
	sf.cart = cart.New(sf.medium,
		cart.WithKey(cfg.cartKey),
		cart.WithNotifier(notifier),
		cart.WithLogger(sf.logger),
	).Namespace(cfg.namespace)
	sf.wishlist = wishlist.New(sf.medium,
		wishlist.WithKey(cfg.wishlistKey),
		wishlist.WithNotifier(notifier),
		wishlist.WithLogger(sf.logger),
	).Namespace(cfg.namespace)

	sf.index = search.New(sf.catalog.Products())

	sf.logger.Debug().
		Int("products", sf.catalog.Len()).
		Str("cart_key", sf.cart.Key()).
		Str("wishlist_key", sf.wishlist.Key()).
		Msg("Storefront ready")

	return sf, nil
}

// Catalog returns the product catalog
func (s *storefront) Catalog() *catalog.Catalog {
	return s.catalog
}

// Cart returns the cart store
func (s *storefront) Cart() *cart.Store {
	return s.cart
}

// Wishlist returns the wishlist store
func (s *storefront) Wishlist() *wishlist.Store {
	return s.wishlist
}

// Session returns views of the cart and wishlist namespaced by id. An
// empty id returns the storefront's own stores.
func (s *storefront) Session(id string) Session {
	return Session{
		ID:       id,
		Cart:     s.cart.Namespace(id),
		Wishlist: s.wishlist.Namespace(id),
	}
}

// Product looks up a product by its textual id
func (s *storefront) Product(id string) (catalog.Product, bool, error) {
	return s.catalog.ProductByID(id)
}

// Filter evaluates state against the catalog
func (s *storefront) Filter(state filter.State) filter.Result {
	return filter.Evaluate(s.catalog.Products(), state)
}

// Facets lists the filter values the catalog offers
func (s *storefront) Facets() []filter.Facet {
	return filter.Facets(s.catalog.Products())
}

// Search runs a search box query
func (s *storefront) Search(text string) search.Result {
	return s.index.Query(text)
}

// OnAdded registers a callback for when items are added
func (s *storefront) OnAdded(fn events.AddedHook) {
	s.hooks.OnAdded(fn)
}

// OnRemoved registers a callback for when items are removed
func (s *storefront) OnRemoved(fn events.RemovedHook) {
	s.hooks.OnRemoved(fn)
}

// OnChanged registers a callback for after every mutation
func (s *storefront) OnChanged(fn events.ChangedHook) {
	s.hooks.OnChanged(fn)
}

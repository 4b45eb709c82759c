// Package cart implements the shopping cart: line items merged by
// (name, size, color), persisted as a whole list after every mutation.
package cart

import (
	"context"
	"sync"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/agentstation/storefront/pkg/constants"
	"github.com/agentstation/storefront/pkg/events"
	"github.com/agentstation/storefront/pkg/logging"
	"github.com/agentstation/storefront/pkg/storage"
	"github.com/agentstation/storefront/pkg/store"
)

// Store owns the cart list under a single medium key.
type Store struct {
	// mu is shared by every namespaced view so read-modify-write cycles
	// never interleave inside one process.
	mu       *sync.Mutex
	items    *store.Store[Item]
	key      string
	notifier events.Notifier
	logger   *zerolog.Logger
}

// Summary is a consistent snapshot of the cart.
type Summary struct {
	Items []Item  `json:"items"`
	Count int     `json:"count"`
	Total float64 `json:"total"`
}

// Option configures a Store.
type Option func(*Store)

// WithKey overrides the medium key (default "elev_cart").
func WithKey(key string) Option {
	return func(s *Store) {
		s.key = key
	}
}

// WithNotifier sets the collaborator that receives cart events.
func WithNotifier(n events.Notifier) Option {
	return func(s *Store) {
		if n != nil {
			s.notifier = n
		}
	}
}

// WithLogger sets the logger.
func WithLogger(logger *zerolog.Logger) Option {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// New creates a cart persisted in medium.
func New(medium storage.Medium, opts ...Option) *Store {
	s := &Store{
		mu:       &sync.Mutex{},
		key:      constants.CartKey,
		notifier: events.Nop,
		logger:   logging.Disabled(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.items = store.New[Item](medium,
		store.WithValidator(func(i Item) bool { return i.Qty >= 1 }),
		store.WithLogger[Item](s.logger),
	)
	return s
}

// Namespace returns a view of the cart stored under "<ns>:<key>". Views
// share the medium, notifier and lock of s.
func (s *Store) Namespace(ns string) *Store {
	if ns == "" {
		return s
	}
	view := *s
	view.key = ns + constants.NamespaceSeparator + s.key
	return &view
}

// Key returns the medium key the cart is stored under.
func (s *Store) Key() string {
	return s.key
}

// AddItem merges item into the line with the same (name, size, color),
// or appends it as a new line. The quantity is added as given.
func (s *Store) AddItem(ctx context.Context, item Item) error {
	return s.mutate(func() ([]events.Event, error) {
		items := s.items.Load(ctx, s.key)
		merged := false
		for i := range items {
			if items[i].Key() == item.Key() {
				items[i].Qty += item.Qty
				merged = true
				break
			}
		}
		if !merged {
			items = append(items, item)
		}

		if err := s.items.Save(ctx, s.key, items); err != nil {
			return nil, err
		}

		s.logger.Debug().
			Str("key", s.key).
			Str("item", item.Name).
			Int("qty", item.Qty).
			Bool("merged", merged).
			Msg("Added item to cart")

		return []events.Event{
			s.event(events.Added, item.Name, items),
			s.event(events.Changed, "", items),
		}, nil
	})
}

// RemoveItem deletes the line at index. An index outside the current list
// is a no-op reported as false.
func (s *Store) RemoveItem(ctx context.Context, index int) (bool, error) {
	removed := false
	err := s.mutate(func() ([]events.Event, error) {
		items := s.items.Load(ctx, s.key)
		if index < 0 || index >= len(items) {
			s.logger.Debug().Str("key", s.key).Int("index", index).Int("length", len(items)).Msg("Ignoring out of range cart removal")
			return nil, nil
		}

		line := items[index]
		items = append(items[:index], items[index+1:]...)
		if err := s.items.Save(ctx, s.key, items); err != nil {
			return nil, err
		}

		removed = true
		return []events.Event{
			s.event(events.Removed, line.Name, items),
			s.event(events.Changed, "", items),
		}, nil
	})
	return removed, err
}

// Clear empties the cart.
func (s *Store) Clear(ctx context.Context) error {
	return s.mutate(func() ([]events.Event, error) {
		if err := s.items.Clear(ctx, s.key); err != nil {
			return nil, err
		}
		return []events.Event{s.event(events.Changed, "", nil)}, nil
	})
}

// mutate runs fn under the store lock and delivers the events it returns
// after unlocking, so hooks may call back into the store.
func (s *Store) mutate(fn func() ([]events.Event, error)) error {
	pending, err := func() ([]events.Event, error) {
		s.mu.Lock()
		defer s.mu.Unlock()
		return fn()
	}()
	for _, e := range pending {
		s.notifier.Notify(e)
	}
	return err
}

// Items returns the lines in insertion order.
func (s *Store) Items(ctx context.Context) []Item {
	return s.items.Load(ctx, s.key)
}

// Total returns the sum of price times quantity over all lines.
func (s *Store) Total(ctx context.Context) float64 {
	return total(s.Items(ctx)).InexactFloat64()
}

// TotalDecimal returns the exact cart total.
func (s *Store) TotalDecimal(ctx context.Context) decimal.Decimal {
	return total(s.Items(ctx))
}

// Count returns the sum of quantities over all lines.
func (s *Store) Count(ctx context.Context) int {
	return count(s.Items(ctx))
}

// Summary returns items, count and total from a single read.
func (s *Store) Summary(ctx context.Context) Summary {
	items := s.Items(ctx)
	return Summary{
		Items: items,
		Count: count(items),
		Total: total(items).InexactFloat64(),
	}
}

func (s *Store) event(kind events.Kind, subject string, items []Item) events.Event {
	e := events.New(kind, events.StoreCart, subject)
	e.Count = count(items)
	e.Total = total(items).InexactFloat64()
	e.Key = s.key
	return e
}

func total(items []Item) decimal.Decimal {
	sum := decimal.Zero
	for _, i := range items {
		sum = sum.Add(i.LineTotal())
	}
	return sum
}

func count(items []Item) int {
	n := 0
	for _, i := range items {
		n += i.Qty
	}
	return n
}

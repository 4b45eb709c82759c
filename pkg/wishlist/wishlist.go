// Package wishlist implements the saved-for-later list. Entries are unique
// by product name; adding a name twice is a no-op.
package wishlist

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/agentstation/storefront/pkg/catalog"
	"github.com/agentstation/storefront/pkg/constants"
	"github.com/agentstation/storefront/pkg/events"
	"github.com/agentstation/storefront/pkg/logging"
	"github.com/agentstation/storefront/pkg/storage"
	"github.com/agentstation/storefront/pkg/store"
)

// Item is a wishlist entry.
type Item struct {
	ID    int     `json:"id"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
	Img   string  `json:"img"`
}

// ItemFor builds the entry the heart button saves for p.
func ItemFor(p catalog.Product) Item {
	return Item{ID: p.ID, Name: p.Name, Price: p.Price, Img: p.Image()}
}

// Store owns the wishlist under a single medium key.
type Store struct {
	mu       *sync.Mutex
	items    *store.Store[Item]
	key      string
	notifier events.Notifier
	logger   *zerolog.Logger
}

// Option configures a Store.
type Option func(*Store)

// WithKey overrides the medium key (default "elev_wishlist").
func WithKey(key string) Option {
	return func(s *Store) {
		s.key = key
	}
}

// WithNotifier sets the collaborator that receives wishlist events.
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

// New creates a wishlist persisted in medium.
func New(medium storage.Medium, opts ...Option) *Store {
	s := &Store{
		mu:       &sync.Mutex{},
		key:      constants.WishlistKey,
		notifier: events.Nop,
		logger:   logging.Disabled(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.items = store.New[Item](medium,
		store.WithValidator(func(i Item) bool { return i.Name != "" }),
		store.WithLogger[Item](s.logger),
	)
	return s
}

// Namespace returns a view stored under "<ns>:<key>".
func (s *Store) Namespace(ns string) *Store {
	if ns == "" {
		return s
	}
	view := *s
	view.key = ns + constants.NamespaceSeparator + s.key
	return &view
}

// Key returns the medium key the wishlist is stored under.
func (s *Store) Key() string {
	return s.key
}

// AddItem appends item unless an entry with the same name exists. It
// reports whether the list changed.
func (s *Store) AddItem(ctx context.Context, item Item) (bool, error) {
	added := false
	err := s.mutate(func() ([]events.Event, error) {
		items := s.items.Load(ctx, s.key)
		if indexOf(items, item.Name) >= 0 {
			return nil, nil
		}
		added = true
		return s.add(ctx, items, item)
	})
	return added && err == nil, err
}

// RemoveItem deletes the entry at index. An index outside the current
// list is a no-op reported as false.
func (s *Store) RemoveItem(ctx context.Context, index int) (bool, error) {
	removed := false
	err := s.mutate(func() ([]events.Event, error) {
		items := s.items.Load(ctx, s.key)
		if index < 0 || index >= len(items) {
			s.logger.Debug().Str("key", s.key).Int("index", index).Int("length", len(items)).Msg("Ignoring out of range wishlist removal")
			return nil, nil
		}
		removed = true
		return s.remove(ctx, items, index)
	})
	return removed && err == nil, err
}

// Toggle removes the entry named like item when present and adds item
// otherwise. It reports whether item is now in the list.
func (s *Store) Toggle(ctx context.Context, item Item) (bool, error) {
	present := false
	err := s.mutate(func() ([]events.Event, error) {
		items := s.items.Load(ctx, s.key)
		if i := indexOf(items, item.Name); i >= 0 {
			return s.remove(ctx, items, i)
		}
		present = true
		return s.add(ctx, items, item)
	})
	return present, err
}

// Has reports whether an entry named name exists.
func (s *Store) Has(ctx context.Context, name string) bool {
	return indexOf(s.items.Load(ctx, s.key), name) >= 0
}

// Items returns the entries in insertion order.
func (s *Store) Items(ctx context.Context) []Item {
	return s.items.Load(ctx, s.key)
}

// Count returns the number of entries.
func (s *Store) Count(ctx context.Context) int {
	return len(s.Items(ctx))
}

func (s *Store) add(ctx context.Context, items []Item, item Item) ([]events.Event, error) {
	items = append(items, item)
	if err := s.items.Save(ctx, s.key, items); err != nil {
		return nil, err
	}
	s.logger.Debug().Str("key", s.key).Str("item", item.Name).Msg("Saved item to wishlist")
	return []events.Event{
		s.event(events.Added, item.Name, len(items)),
		s.event(events.Changed, "", len(items)),
	}, nil
}

func (s *Store) remove(ctx context.Context, items []Item, index int) ([]events.Event, error) {
	removed := items[index]
	items = append(items[:index], items[index+1:]...)
	if err := s.items.Save(ctx, s.key, items); err != nil {
		return nil, err
	}
	s.logger.Debug().Str("key", s.key).Str("item", removed.Name).Msg("Removed item from wishlist")
	return []events.Event{
		s.event(events.Removed, removed.Name, len(items)),
		s.event(events.Changed, "", len(items)),
	}, nil
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

func (s *Store) event(kind events.Kind, subject string, count int) events.Event {
	e := events.New(kind, events.StoreWishlist, subject)
	e.Count = count
	e.Key = s.key
	return e
}

func indexOf(items []Item, name string) int {
	for i, it := range items {
		if it.Name == name {
			return i
		}
	}
	return -1
}

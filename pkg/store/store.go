// Package store persists ordered record lists in a storage medium.
//
// Reads are fail-soft: a missing key, an unreadable medium, a value that is
// not a JSON list, or individual records of the wrong shape all degrade to
// an empty (or shorter) list instead of an error. Writes replace the whole
// value in a single medium call.
package store

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/rs/zerolog"

	"github.com/agentstation/storefront/pkg/errors"
	"github.com/agentstation/storefront/pkg/logging"
	"github.com/agentstation/storefront/pkg/storage"
)

// ChangeHook is called after a successful write to key.
type ChangeHook func(key string)

// Store reads and writes lists of T.
type Store[T any] struct {
	medium   storage.Medium
	validate func(T) bool
	logger   *zerolog.Logger

	mu    sync.RWMutex
	hooks []ChangeHook
}

// Option configures a Store.
type Option[T any] func(*Store[T])

// WithValidator drops records for which valid returns false on Load.
func WithValidator[T any](valid func(T) bool) Option[T] {
	return func(s *Store[T]) {
		s.validate = valid
	}
}

// WithLogger sets the logger used to report absorbed corruption.
func WithLogger[T any](logger *zerolog.Logger) Option[T] {
	return func(s *Store[T]) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// New creates a store over medium.
func New[T any](medium storage.Medium, opts ...Option[T]) *Store[T] {
	s := &Store[T]{
		medium: medium,
		logger: logging.Disabled(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// OnChange registers fn to run after every successful Save or Clear.
func (s *Store[T]) OnChange(fn ChangeHook) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.hooks = append(s.hooks, fn)
}

// Load returns the list stored under key. It never fails; see the package
// documentation for how bad data is absorbed.
func (s *Store[T]) Load(ctx context.Context, key string) []T {
	raw, ok, err := s.medium.Get(ctx, key)
	if err != nil {
		s.logger.Warn().Err(err).Str("key", key).Msg("Storage read failed, treating as empty")
		return []T{}
	}
	if !ok || raw == "" {
		return []T{}
	}

	items, err := s.decode(raw)
	if err != nil {
		s.logger.Warn().
			Err(errors.NewCorruptError(key, err)).
			Str("key", key).
			Msg("Discarding corrupt stored value")
		return []T{}
	}
	return items
}

// decode parses a JSON list record by record so one bad record does not
// take the rest of the list with it.
func (s *Store[T]) decode(raw string) ([]T, error) {
	var records []json.RawMessage
	if err := json.Unmarshal([]byte(raw), &records); err != nil {
		return nil, err
	}

	items := make([]T, 0, len(records))
	for i, rec := range records {
		var item T
		if err := json.Unmarshal(rec, &item); err != nil {
			s.logger.Debug().Err(err).Int("index", i).Msg("Skipping undecodable record")
			continue
		}
		if s.validate != nil && !s.validate(item) {
			s.logger.Debug().Int("index", i).Msg("Skipping invalid record")
			continue
		}
		items = append(items, item)
	}
	return items, nil
}

// Save replaces the list stored under key and then runs the change hooks.
func (s *Store[T]) Save(ctx context.Context, key string, items []T) error {
	if items == nil {
		items = []T{}
	}
	data, err := json.Marshal(items)
	if err != nil {
		return errors.WrapParse("json", key, err)
	}
	if err := s.medium.Set(ctx, key, string(data)); err != nil {
		return ioError("write", key, err)
	}
	s.changed(key)
	return nil
}

// Clear removes key so the next Load returns an empty list.
func (s *Store[T]) Clear(ctx context.Context, key string) error {
	if err := s.medium.Delete(ctx, key); err != nil {
		return ioError("delete", key, err)
	}
	s.changed(key)
	return nil
}

func (s *Store[T]) changed(key string) {
	s.mu.RLock()
	hooks := make([]ChangeHook, len(s.hooks))
	copy(hooks, s.hooks)
	s.mu.RUnlock()

	for _, fn := range hooks {
		fn(key)
	}
}

// ioError wraps err as an *errors.IOError unless the medium already did.
func ioError(op, key string, err error) error {
	var ioErr *errors.IOError
	if errors.As(err, &ioErr) {
		return err
	}
	return errors.WrapIO(op, key, err)
}

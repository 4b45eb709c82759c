// Package memory provides an in-process medium, used by tests and by
// sessions that do not need to survive a restart.
package memory

import (
	"context"
	"sort"
	"sync"
)

// Medium keeps values in a map guarded by a RWMutex.
type Medium struct {
	mu     sync.RWMutex
	values map[string]string
}

// New returns an empty medium.
func New() *Medium {
	return &Medium{values: make(map[string]string)}
}

// Get implements storage.Reader.
func (m *Medium) Get(_ context.Context, key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.values[key]
	return v, ok, nil
}

// Set implements storage.Writer.
func (m *Medium) Set(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	return nil
}

// Delete implements storage.Writer.
func (m *Medium) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.values, key)
	return nil
}

// Keys returns the stored keys in sorted order.
func (m *Medium) Keys() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	keys := make([]string, 0, len(m.values))
	for k := range m.values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Close implements storage.Medium.
func (m *Medium) Close() error {
	return nil
}

// Package storage defines the durable key-value medium the cart and
// wishlist persist into, and opens concrete media from a URL.
//
// A medium stores opaque strings under string keys. It knows nothing about
// the records inside; decoding and fail-soft recovery live in pkg/store.
package storage

import "context"

// Reader reads raw values from a medium.
type Reader interface {
	// Get returns the value stored under key. A missing key returns ok=false
	// and a nil error.
	Get(ctx context.Context, key string) (value string, ok bool, err error)
}

// Writer replaces or removes raw values in a medium.
type Writer interface {
	// Set replaces the whole value stored under key.
	Set(ctx context.Context, key, value string) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
}

// Medium is a durable key-value store.
type Medium interface {
	Reader
	Writer

	// Close releases connections or handles held by the medium.
	Close() error
}

// Pinger is implemented by media that can report whether they are reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Ping checks m when it supports it and reports nil otherwise.
func Ping(ctx context.Context, m Medium) error {
	if p, ok := m.(Pinger); ok {
		return p.Ping(ctx)
	}
	return nil
}

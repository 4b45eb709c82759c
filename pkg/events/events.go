// Package events defines the notifications the cart and wishlist emit after
// every persisted mutation, and the hook registry collaborators subscribe
// through. Stores emit; they never render.
package events

import (
	"github.com/agentstation/utc"
)

// Kind identifies what happened.
type Kind string

// Event kinds.
const (
	// Added is emitted when an item enters a store (or merges into a line).
	Added Kind = "added"

	// Removed is emitted when an item leaves a store.
	Removed Kind = "removed"

	// Changed follows every mutation so badges can refresh count and total.
	Changed Kind = "changed"
)

// Store names carried on events.
const (
	StoreCart     = "cart"
	StoreWishlist = "wishlist"
)

// Event is a single store notification.
type Event struct {
	Kind      Kind     `json:"kind"`
	Store     string   `json:"store"`
	Subject   string   `json:"subject,omitempty"`
	Count     int      `json:"count"`
	Total     float64  `json:"total"`
	Timestamp utc.Time `json:"timestamp"`

	// Key is the medium key that was written; it routes events to the
	// session that owns the store and is never sent to clients.
	Key string `json:"-"`
}

// New stamps an event with the current time.
func New(kind Kind, store, subject string) Event {
	return Event{
		Kind:      kind,
		Store:     store,
		Subject:   subject,
		Timestamp: utc.Now(),
	}
}

// Notifier receives store events.
type Notifier interface {
	Notify(Event)
}

// NotifierFunc adapts a function to a Notifier.
type NotifierFunc func(Event)

// Notify implements Notifier.
func (f NotifierFunc) Notify(e Event) {
	f(e)
}

// Nop discards every event.
var Nop Notifier = NotifierFunc(func(Event) {})

// Multi fans an event out to several notifiers in order.
type Multi []Notifier

// Notify implements Notifier.
func (m Multi) Notify(e Event) {
	for _, n := range m {
		if n != nil {
			n.Notify(e)
		}
	}
}

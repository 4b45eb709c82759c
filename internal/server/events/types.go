// Package events carries store notifications from the storefront hooks to
// the realtime transports.
//
// The broker fans every event out to its subscribers (the SSE broadcaster and
// the WebSocket hub), and each transport forwards an event only to clients of
// the session that produced it.
package events

import (
	"strings"

	"github.com/agentstation/utc"

	"github.com/agentstation/storefront/pkg/constants"
	storeevents "github.com/agentstation/storefront/pkg/events"
)

// EventType represents the type of store event.
type EventType string

// Event types for store changes.
const (
	// Cart events.
	CartAdded   EventType = "cart.added"
	CartRemoved EventType = "cart.removed"
	CartChanged EventType = "cart.changed"

	// Wishlist events.
	WishlistAdded   EventType = "wishlist.added"
	WishlistRemoved EventType = "wishlist.removed"
	WishlistChanged EventType = "wishlist.changed"

	// Client events (from transport layers).
	ClientConnected EventType = "client.connected"
)

// Event represents a store event with type, timestamp, and data.
// Session is empty for events every client should see.
type Event struct {
	Type      EventType `json:"type"`
	Session   string    `json:"-"`
	Timestamp utc.Time  `json:"timestamp"`
	Data      any       `json:"data"`
}

// For reports whether a client of session should receive the event.
func (e Event) For(session string) bool {
	return e.Session == "" || e.Session == session
}

// TypeOf names the broker event for a store notification.
func TypeOf(e storeevents.Event) EventType {
	return EventType(e.Store + "." + string(e.Kind))
}

// SessionOf recovers the session from a namespaced medium key such as
// "alice:elev_cart". Keys without a namespace belong to no session.
func SessionOf(key string) string {
	ns, _, found := strings.Cut(key, constants.NamespaceSeparator)
	if !found {
		return ""
	}
	return ns
}

// Package sse provides Server-Sent Events support for live store updates.
package sse

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"

	"github.com/agentstation/utc"
	"github.com/rs/zerolog"

	"github.com/agentstation/storefront/internal/server/session"
	"github.com/agentstation/storefront/pkg/constants"
)

// Event represents an SSE event.
type Event struct {
	Event   string `json:"event,omitempty"` // Event type (optional)
	ID      string `json:"id,omitempty"`    // Event ID (optional)
	Session string `json:"-"`               // Empty for events every client receives
	Data    any    `json:"data"`
}

// client is one open stream.
type client struct {
	session string
	events  chan Event
}

// Broadcaster manages Server-Sent Events connections.
type Broadcaster struct {
	clients    map[*client]bool
	newClients chan *client
	closed     chan *client
	events     chan Event
	mu         sync.RWMutex
	logger     *zerolog.Logger
}

// NewBroadcaster creates a new SSE broadcaster.
func NewBroadcaster(logger *zerolog.Logger) *Broadcaster {
	return &Broadcaster{
		clients: make(map[*client]bool),
		// Buffered so clients may connect before Run starts.
		newClients: make(chan *client, 10),
		closed:     make(chan *client, 10),
		events:     make(chan Event, constants.ChannelBufferSize),
		logger:     logger,
	}
}

// Run starts the broadcaster's main loop and blocks until ctx is cancelled.
func (b *Broadcaster) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			b.mu.Lock()
			for c := range b.clients {
				close(c.events)
			}
			b.clients = make(map[*client]bool)
			b.mu.Unlock()
			b.logger.Info().Msg("SSE broadcaster shut down")
			return

		case c := <-b.newClients:
			b.mu.Lock()
			b.clients[c] = true
			total := len(b.clients)
			b.mu.Unlock()
			b.logger.Debug().
				Str("session", c.session).
				Int("total_clients", total).
				Msg("SSE client connected")

		case c := <-b.closed:
			b.mu.Lock()
			if b.clients[c] {
				delete(b.clients, c)
				close(c.events)
			}
			total := len(b.clients)
			b.mu.Unlock()
			b.logger.Debug().
				Str("session", c.session).
				Int("total_clients", total).
				Msg("SSE client disconnected")

		case event := <-b.events:
			b.mu.RLock()
			for c := range b.clients {
				if event.Session != "" && event.Session != c.session {
					continue
				}
				select {
				case c.events <- event:
				default:
					b.logger.Warn().Str("session", c.session).Msg("SSE client buffer full, event skipped")
				}
			}
			b.mu.RUnlock()
		}
	}
}

// Broadcast queues an event for the clients of its session.
func (b *Broadcaster) Broadcast(event Event) {
	select {
	case b.events <- event:
	default:
		b.logger.Warn().Msg("SSE broadcast channel full, event dropped")
	}
}

// ClientCount returns the number of connected SSE clients.
func (b *Broadcaster) ClientCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.clients)
}

// ServeHTTP streams the events of the request's session.
func (b *Broadcaster) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming not supported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	c := &client{
		session: session.FromContext(r.Context()),
		events:  make(chan Event, constants.ChannelBufferSize),
	}
	b.newClients <- c
	defer func() {
		select {
		case b.closed <- c:
		default:
			// Run has stopped or is backed up; the shutdown pass
			// closes whatever is left.
		}
	}()

	b.writeEvent(w, flusher, Event{
		Event: "connected",
		Data: map[string]any{
			"message":   "Connected to storefront updates stream",
			"session":   c.session,
			"timestamp": utc.Now(),
		},
	})

	for {
		select {
		case event, ok := <-c.events:
			if !ok {
				return
			}
			b.writeEvent(w, flusher, event)

		case <-r.Context().Done():
			return
		}
	}
}

// writeEvent writes an SSE event to the response writer.
func (b *Broadcaster) writeEvent(w http.ResponseWriter, flusher http.Flusher, event Event) {
	if event.Event != "" {
		_, _ = fmt.Fprintf(w, "event: %s\n", event.Event)
	}
	if event.ID != "" {
		_, _ = fmt.Fprintf(w, "id: %s\n", event.ID)
	}

	data, err := json.Marshal(event.Data)
	if err != nil {
		b.logger.Error().Err(err).Msg("Failed to marshal SSE event data")
		return
	}
	_, _ = fmt.Fprintf(w, "data: %s\n\n", data)
	flusher.Flush()
}

// Package handlers provides HTTP request handlers for the storefront API.
package handlers

import (
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/agentstation/storefront"
	"github.com/agentstation/storefront/internal/server/cache"
	"github.com/agentstation/storefront/internal/server/events"
	"github.com/agentstation/storefront/internal/server/sse"
	ws "github.com/agentstation/storefront/internal/server/websocket"
)

// PublishFunc queues a broker event for the clients of a session.
type PublishFunc func(eventType events.EventType, session string, data any)

// Handlers provides access to all HTTP handlers.
type Handlers struct {
	sf             storefront.Storefront
	cache          *cache.Cache
	wsHub          *ws.Hub
	sseBroadcaster *sse.Broadcaster
	upgrader       websocket.Upgrader
	logger         *zerolog.Logger
	publish        PublishFunc
}

// New creates a new Handlers instance.
func New(
	sf storefront.Storefront,
	cache *cache.Cache,
	wsHub *ws.Hub,
	sseBroadcaster *sse.Broadcaster,
	upgrader websocket.Upgrader,
	logger *zerolog.Logger,
	publish PublishFunc,
) *Handlers {
	if publish == nil {
		publish = func(events.EventType, string, any) {}
	}
	return &Handlers{
		sf:             sf,
		cache:          cache,
		wsHub:          wsHub,
		sseBroadcaster: sseBroadcaster,
		upgrader:       upgrader,
		logger:         logger,
		publish:        publish,
	}
}

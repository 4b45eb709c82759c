package handlers

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/agentstation/storefront/internal/server/events"
	"github.com/agentstation/storefront/internal/server/session"
)

// HandleWebSocket handles WebSocket connections at /api/v1/updates/ws.
// The connection receives the events of the request's session.
func (h *Handlers) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	sessionID := session.FromContext(r.Context())
	clientID := uuid.NewString()

	if err := h.wsHub.Serve(h.upgrader, w, r, clientID, sessionID); err != nil {
		// The upgrader has already answered the client.
		h.logger.Warn().Err(err).Msg("WebSocket upgrade failed")
		return
	}

	h.publish(events.ClientConnected, sessionID, map[string]any{
		"client_id": clientID,
		"transport": "websocket",
	})
}

// HandleSSE handles Server-Sent Events at /api/v1/updates/stream.
func (h *Handlers) HandleSSE(w http.ResponseWriter, r *http.Request) {
	h.sseBroadcaster.ServeHTTP(w, r)
}

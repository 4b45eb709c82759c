package handlers

import (
	"context"
	"net/http"

	"github.com/agentstation/storefront/internal/server/response"
	"github.com/agentstation/storefront/pkg/constants"
)

// HandleHealth handles GET /api/v1/health (liveness).
func (h *Handlers) HandleHealth(w http.ResponseWriter, _ *http.Request) {
	response.OK(w, map[string]any{
		"status":  "healthy",
		"service": "storefront-api",
		"version": "v1",
	})
}

// HandleReady handles GET /api/v1/ready. The server is ready when the
// persistence medium answers.
func (h *Handlers) HandleReady(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), constants.StorageTimeout)
	defer cancel()

	if err := h.sf.Ping(ctx); err != nil {
		h.logger.Warn().Err(err).Msg("Readiness check failed")
		response.ServiceUnavailable(w, "Storage not reachable")
		return
	}

	response.OK(w, map[string]any{
		"status":            "ready",
		"products":          h.sf.Catalog().Len(),
		"cache":             h.cache.GetStats(),
		"websocket_clients": h.wsHub.ClientCount(),
		"sse_clients":       h.sseBroadcaster.ClientCount(),
	})
}

package server

import (
	"fmt"
	"net/http"

	"github.com/agentstation/storefront/internal/server/handlers"
	"github.com/agentstation/storefront/internal/server/middleware"
	"github.com/agentstation/storefront/internal/server/response"
)

// setupRouter creates the HTTP handler with routes and middleware.
func (s *Server) setupRouter() http.Handler {
	mux := http.NewServeMux()

	h := handlers.New(
		s.sf,
		s.cache,
		s.wsHub,
		s.sseBroadcaster,
		s.upgrader,
		s.logger,
		s.broker.Publish,
	)

	s.registerRoutes(mux, h)
	return s.applyMiddleware(mux)
}

// registerRoutes registers all HTTP routes.
func (s *Server) registerRoutes(mux *http.ServeMux, h *handlers.Handlers) {
	prefix := s.config.PathPrefix

	mux.HandleFunc("GET /favicon.ico", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	// Health
	mux.HandleFunc("GET /health", h.HandleHealth)
	mux.HandleFunc("GET "+prefix+"/health", h.HandleHealth)
	mux.HandleFunc("GET "+prefix+"/ready", h.HandleReady)

	// Catalog
	mux.HandleFunc("GET "+prefix+"/products", h.HandleListProducts)
	mux.HandleFunc("GET "+prefix+"/products/{id}", h.HandleGetProduct)
	mux.HandleFunc("GET "+prefix+"/facets", h.HandleFacets)
	mux.HandleFunc("GET "+prefix+"/search", h.HandleSearch)

	// Cart
	mux.HandleFunc("GET "+prefix+"/cart", h.HandleGetCart)
	mux.HandleFunc("POST "+prefix+"/cart", h.HandleAddToCart)
	mux.HandleFunc("DELETE "+prefix+"/cart", h.HandleClearCart)
	mux.HandleFunc("DELETE "+prefix+"/cart/items/{index}", h.HandleRemoveCartItem)

	// Wishlist
	mux.HandleFunc("GET "+prefix+"/wishlist", h.HandleGetWishlist)
	mux.HandleFunc("POST "+prefix+"/wishlist", h.HandleAddToWishlist)
	mux.HandleFunc("DELETE "+prefix+"/wishlist/items/{index}", h.HandleRemoveWishlistItem)
	mux.HandleFunc("POST "+prefix+"/wishlist/toggle", h.HandleToggleWishlist)

	// Real-time
	mux.HandleFunc("GET "+prefix+"/updates/ws", h.HandleWebSocket)
	mux.HandleFunc("GET "+prefix+"/updates/stream", h.HandleSSE)

	// OpenAPI
	mux.HandleFunc("GET "+prefix+"/openapi.json", h.HandleOpenAPIJSON)
	mux.HandleFunc("GET "+prefix+"/openapi.yaml", h.HandleOpenAPIYAML)

	if s.config.MetricsEnabled {
		mux.HandleFunc("GET /metrics", s.handleMetrics)
	}

	// Anything else under the API answers with the JSON envelope.
	mux.HandleFunc(prefix+"/", func(w http.ResponseWriter, r *http.Request) {
		response.NotFound(w, "Not found", "No route for "+r.Method+" "+r.URL.Path)
	})
}

// handleMetrics writes a small Prometheus text exposition.
func (s *Server) handleMetrics(w http.ResponseWriter, _ *http.Request) {
	stats := s.cache.GetStats()
	w.Header().Set("Content-Type", "text/plain; version=0.0.4")
	_, _ = fmt.Fprintf(w, "# TYPE storefront_api_info gauge\n")
	_, _ = fmt.Fprintf(w, "storefront_api_info{version=\"v1\"} 1\n")
	_, _ = fmt.Fprintf(w, "# TYPE storefront_catalog_products gauge\n")
	_, _ = fmt.Fprintf(w, "storefront_catalog_products %d\n", s.sf.Catalog().Len())
	_, _ = fmt.Fprintf(w, "# TYPE storefront_cache_items gauge\n")
	_, _ = fmt.Fprintf(w, "storefront_cache_items %d\n", stats.ItemCount)
	_, _ = fmt.Fprintf(w, "# TYPE storefront_cache_hits_total counter\n")
	_, _ = fmt.Fprintf(w, "storefront_cache_hits_total %d\n", stats.Hits)
	_, _ = fmt.Fprintf(w, "# TYPE storefront_cache_misses_total counter\n")
	_, _ = fmt.Fprintf(w, "storefront_cache_misses_total %d\n", stats.Misses)
	_, _ = fmt.Fprintf(w, "# TYPE storefront_realtime_clients gauge\n")
	_, _ = fmt.Fprintf(w, "storefront_realtime_clients{transport=\"websocket\"} %d\n", s.wsHub.ClientCount())
	_, _ = fmt.Fprintf(w, "storefront_realtime_clients{transport=\"sse\"} %d\n", s.sseBroadcaster.ClientCount())
}

// applyMiddleware wraps handler with the middleware chain. Recovery is the
// outermost layer; the session is resolved before rate limiting and auth
// so rejected requests still carry a session header.
func (s *Server) applyMiddleware(handler http.Handler) http.Handler {
	cfg := s.config
	chain := []func(http.Handler) http.Handler{
		middleware.Recovery(s.logger),
		middleware.RequestID,
		middleware.Logger(s.logger),
	}

	if cfg.CORSEnabled {
		corsConfig := middleware.DefaultCORSConfig()
		if len(cfg.CORSOrigins) > 0 {
			corsConfig.AllowedOrigins = cfg.CORSOrigins
		} else {
			corsConfig.AllowAll = true
		}
		chain = append(chain, middleware.CORS(corsConfig))
	}

	chain = append(chain, middleware.Session)

	if cfg.RateLimit > 0 {
		chain = append(chain, middleware.RateLimit(middleware.NewRateLimiter(cfg.RateLimit, s.logger)))
	}

	if cfg.AuthEnabled {
		authConfig := middleware.DefaultAuthConfig()
		authConfig.Enabled = true
		authConfig.APIKey = cfg.APIKey
		if cfg.AuthHeader != "" {
			authConfig.HeaderName = cfg.AuthHeader
		}
		authConfig.PublicPaths = middleware.PublicPaths(cfg.PathPrefix)
		chain = append(chain, middleware.Auth(authConfig, s.logger))
	}

	return middleware.Chain(chain...)(handler)
}

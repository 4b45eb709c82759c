// Package server provides the HTTP server for the storefront API: catalog
// queries, per-session cart and wishlist endpoints, and live store updates
// over WebSocket and Server-Sent Events.
package server

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/agentstation/storefront"
	"github.com/agentstation/storefront/cmd/application"
	"github.com/agentstation/storefront/internal/server/cache"
	"github.com/agentstation/storefront/internal/server/events"
	"github.com/agentstation/storefront/internal/server/events/adapters"
	"github.com/agentstation/storefront/internal/server/sse"
	ws "github.com/agentstation/storefront/internal/server/websocket"
	storeevents "github.com/agentstation/storefront/pkg/events"
)

// Server holds the HTTP server state and dependencies.
type Server struct {
	sf             storefront.Storefront
	cache          *cache.Cache
	broker         *events.Broker
	wsHub          *ws.Hub
	sseBroadcaster *sse.Broadcaster
	upgrader       websocket.Upgrader
	logger         *zerolog.Logger
	config         Config
	ctx            context.Context
	cancel         context.CancelFunc
	group          *errgroup.Group
	startOnce      sync.Once
	startTime      time.Time
}

// New creates a new server instance with the given configuration.
func New(app application.Application, cfg Config) (*Server, error) {
	logger := app.Logger()

	sf, err := app.Storefront()
	if err != nil {
		return nil, err
	}

	if cfg.CacheTTL == 0 {
		cfg.CacheTTL = DefaultConfig().CacheTTL
	}
	if cfg.PathPrefix == "" {
		cfg.PathPrefix = DefaultConfig().PathPrefix
	}

	broker := events.NewBroker(logger)
	wsHub := ws.NewHub(logger)
	sseBroadcaster := sse.NewBroadcaster(logger)

	broker.Subscribe(adapters.NewWebSocketSubscriber(wsHub))
	broker.Subscribe(adapters.NewSSESubscriber(sseBroadcaster))

	ctx, cancel := context.WithCancel(context.Background())
	group, ctx := errgroup.WithContext(ctx)

	s := &Server{
		sf: sf,
		// Janitor disabled: expired entries are dropped on read and the
		// server owns no goroutine it cannot stop.
		cache:          cache.New(cfg.CacheTTL, 0),
		broker:         broker,
		wsHub:          wsHub,
		sseBroadcaster: sseBroadcaster,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     checkOrigin(cfg),
		},
		logger:    logger,
		config:    cfg,
		ctx:       ctx,
		cancel:    cancel,
		group:     group,
		startTime: time.Now(),
	}

	s.connectHooks()
	logger.Debug().Str("prefix", cfg.PathPrefix).Msg("Server instance created")
	return s, nil
}

// connectHooks forwards every cart and wishlist notification to the broker,
// which routes it to the session that owns the store.
func (s *Server) connectHooks() {
	forward := func(e storeevents.Event) {
		s.broker.Notify(e)
	}
	s.sf.OnAdded(forward)
	s.sf.OnRemoved(forward)
	s.sf.OnChanged(forward)
	s.logger.Debug().Msg("Storefront hooks connected to event broker")
}

// checkOrigin applies the CORS origin list to WebSocket upgrades.
func checkOrigin(cfg Config) func(*http.Request) bool {
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" || !cfg.CORSEnabled || len(cfg.CORSOrigins) == 0 {
			return true
		}
		for _, o := range cfg.CORSOrigins {
			if o == "*" || o == origin {
				return true
			}
		}
		return false
	}
}

// Start starts background services (broker, WebSocket hub, SSE
// broadcaster). Calling it more than once has no effect.
func (s *Server) Start() {
	s.startOnce.Do(func() {
		for _, run := range []func(context.Context){s.broker.Run, s.wsHub.Run, s.sseBroadcaster.Run} {
			s.group.Go(func() error {
				run(s.ctx)
				return nil
			})
		}
		s.logger.Debug().Msg("Background services started")
	})
}

// Handler returns the configured http.Handler with middleware chain applied.
func (s *Server) Handler() http.Handler {
	return s.setupRouter()
}

// Shutdown stops the background services and waits for them to exit, or
// for ctx to expire.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info().Msg("Shutting down server background services")
	s.cancel()

	done := make(chan error, 1)
	go func() { done <- s.group.Wait() }()

	select {
	case err := <-done:
		s.logger.Info().Msg("Background services shut down")
		return err
	case <-ctx.Done():
		s.logger.Warn().Msg("Background services shutdown timed out")
		return ctx.Err()
	}
}

// Cache returns the server's cache instance.
func (s *Server) Cache() *cache.Cache {
	return s.cache
}

// WSHub returns the WebSocket hub.
func (s *Server) WSHub() *ws.Hub {
	return s.wsHub
}

// SSEBroadcaster returns the SSE broadcaster.
func (s *Server) SSEBroadcaster() *sse.Broadcaster {
	return s.sseBroadcaster
}

// Broker returns the event broker for publishing events.
func (s *Server) Broker() *events.Broker {
	return s.broker
}

// StartTime returns the server start time for uptime calculations.
func (s *Server) StartTime() time.Time {
	return s.startTime
}

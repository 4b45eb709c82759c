// Package serve provides the HTTP server command.
package serve

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/sync/errgroup"

	"github.com/agentstation/storefront/cmd/application"
	"github.com/agentstation/storefront/internal/cmd/emoji"
	"github.com/agentstation/storefront/internal/server"
	"github.com/agentstation/storefront/pkg/constants"
)

// EnvPrefix prefixes the environment variables that override serve flags,
// for example STOREFRONT_PORT or STOREFRONT_API_KEY.
const EnvPrefix = "STOREFRONT"

// NewCommand creates the serve command.
func NewCommand(app application.Application) *cobra.Command {
	defaults := server.DefaultConfig()

	cmd := &cobra.Command{
		Use:     "serve",
		GroupID: "server",
		Aliases: []string{"server"},
		Short:   "Start the REST API server with WebSocket and SSE support",
		Long: `Start the storefront REST API.

Features:
  - Catalog, facet and search endpoints
  - Per-session cart and wishlist (X-Session-ID header or sf_session cookie)
  - Server-Sent Events (/api/v1/updates/stream) and WebSocket
    (/api/v1/updates/ws) streams of cart and wishlist changes
  - Query result caching, rate limiting, optional API key authentication
  - Health, readiness and metrics endpoints
  - OpenAPI 3.1 document (/api/v1/openapi.json)

Every flag can also be set through the environment, for example
STOREFRONT_PORT=9000 or STOREFRONT_API_KEY=secret.`,
		Example: `  # Start on default port 8080
  storefront serve

  # Persist carts in redis and require an API key
  storefront serve --storage redis://localhost:6379/0 --auth --api-key secret

  # Allow a web front end on another origin
  storefront serve --cors-origins https://shop.example.com`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := parseConfig(cmd)
			if err != nil {
				return err
			}
			return run(cmd.Context(), app, cfg, cmd.OutOrStdout())
		},
	}

	cmd.Flags().Int("port", defaults.Port, "Server port")
	cmd.Flags().String("host", defaults.Host, "Bind address")
	cmd.Flags().String("prefix", defaults.PathPrefix, "API path prefix")

	cmd.Flags().Bool("cors", false, "Enable CORS for all origins")
	cmd.Flags().StringSlice("cors-origins", nil, "Allowed CORS origins (comma-separated)")

	cmd.Flags().Bool("auth", false, "Enable API key authentication")
	cmd.Flags().String("auth-header", defaults.AuthHeader, "Authentication header name")
	cmd.Flags().String("api-key", "", "API key clients must present when --auth is set")

	cmd.Flags().Int("rate-limit", defaults.RateLimit, "Requests per minute per IP (0 to disable)")
	cmd.Flags().Duration("cache-ttl", defaults.CacheTTL, "Query cache TTL")

	cmd.Flags().Duration("read-timeout", defaults.ReadTimeout, "HTTP read timeout")
	cmd.Flags().Duration("idle-timeout", defaults.IdleTimeout, "HTTP idle timeout")

	cmd.Flags().Bool("metrics", defaults.MetricsEnabled, "Enable metrics endpoint")

	return cmd
}

// parseConfig resolves the server configuration. Flags set on the command
// line win over STOREFRONT_* variables, which win over flag defaults.
func parseConfig(cmd *cobra.Command) (server.Config, error) {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	if err := v.BindPFlags(cmd.Flags()); err != nil {
		return server.Config{}, err
	}

	cfg := server.DefaultConfig()
	cfg.Port = v.GetInt("port")
	cfg.Host = v.GetString("host")
	cfg.PathPrefix = strings.TrimRight(v.GetString("prefix"), "/")
	cfg.CORSEnabled = v.GetBool("cors")
	cfg.CORSOrigins = v.GetStringSlice("cors-origins")
	if len(cfg.CORSOrigins) > 0 {
		cfg.CORSEnabled = true
	}
	cfg.AuthEnabled = v.GetBool("auth")
	cfg.AuthHeader = v.GetString("auth-header")
	cfg.APIKey = v.GetString("api-key")
	cfg.RateLimit = v.GetInt("rate-limit")
	cfg.CacheTTL = v.GetDuration("cache-ttl")
	cfg.ReadTimeout = v.GetDuration("read-timeout")
	cfg.IdleTimeout = v.GetDuration("idle-timeout")
	cfg.MetricsEnabled = v.GetBool("metrics")

	if cfg.Port < 1 || cfg.Port > 65535 {
		return server.Config{}, fmt.Errorf("port out of range: %d", cfg.Port)
	}
	if cfg.AuthEnabled && cfg.APIKey == "" {
		return server.Config{}, fmt.Errorf("--auth requires --api-key or %s_API_KEY", EnvPrefix)
	}
	return cfg, nil
}

// run listens on the configured address and serves until ctx is done.
func run(ctx context.Context, app application.Application, cfg server.Config, out io.Writer) error {
	addr := net.JoinHostPort(cfg.Host, fmt.Sprint(cfg.Port))
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listening on %s: %w", addr, err)
	}
	return serve(ctx, app, cfg, ln, out)
}

// serve runs the API on ln. The HTTP listener and the shutdown watcher run
// under one errgroup: a listener failure cancels the watcher, and a
// cancelled ctx drains in-flight requests before the background services
// stop.
func serve(ctx context.Context, app application.Application, cfg server.Config, ln net.Listener, out io.Writer) error {
	logger := app.Logger()

	srv, err := server.New(app, cfg)
	if err != nil {
		_ = ln.Close()
		return fmt.Errorf("creating server: %w", err)
	}
	srv.Start()

	httpServer := &http.Server{
		Handler:      srv.Handler(),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
		BaseContext:  func(net.Listener) context.Context { return ctx },
	}

	logServing(logger, cfg, ln.Addr().String())
	_, _ = fmt.Fprintf(out, "API server listening on http://%s%s\n", ln.Addr(), cfg.PathPrefix)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info().Msg("Shutting down API server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), constants.ShutdownTimeout)
		defer cancel()

		// Streams hold their requests open; stopping the services first
		// closes them so Shutdown can drain.
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Warn().Err(err).Msg("Background services shutdown had issues")
		}
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown failed: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}
	logger.Info().Msg("Server stopped gracefully")
	_, _ = fmt.Fprintf(out, "%s API server stopped\n", emoji.Stop)
	return nil
}

func logServing(logger *zerolog.Logger, cfg server.Config, addr string) {
	logger.Info().
		Str("addr", addr).
		Str("prefix", cfg.PathPrefix).
		Bool("cors", cfg.CORSEnabled).
		Bool("auth", cfg.AuthEnabled).
		Int("rate_limit", cfg.RateLimit).
		Dur("cache_ttl", cfg.CacheTTL).
		Msg("Starting API server")
}

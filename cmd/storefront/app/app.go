// Package app provides the application context and dependency management
// for the storefront CLI. It centralizes configuration, logging and the
// lazily opened storefront so commands receive them through one interface.
package app

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/agentstation/storefront"
	"github.com/agentstation/storefront/cmd/application"
	"github.com/agentstation/storefront/pkg/errors"
)

// Ensure App implements application.Application at compile time.
var _ application.Application = (*App)(nil)

// App represents the storefront application with all its dependencies.
type App struct {
	// Version information
	version string
	commit  string
	date    string
	builtBy string

	config *Config
	logger *zerolog.Logger

	// Storefront instance (lazy-initialized, singleton)
	mu         sync.RWMutex
	storefront storefront.Storefront
}

// New creates a new App instance with the given version information.
func New(version, commit, date, builtBy string, opts ...Option) (*App, error) {
	app := &App{
		version: version,
		commit:  commit,
		date:    date,
		builtBy: builtBy,
	}

	config, err := LoadConfig()
	if err != nil {
		return nil, errors.WrapResource("load", "config", "", err)
	}
	app.config = config

	logger := NewLogger(config)
	app.logger = &logger

	for _, opt := range opts {
		if err := opt(app); err != nil {
			return nil, err
		}
	}

	return app, nil
}

// Version returns the version information.
func (a *App) Version() string {
	return a.version
}

// Commit returns the git commit hash.
func (a *App) Commit() string {
	return a.commit
}

// Date returns the build date.
func (a *App) Date() string {
	return a.date
}

// BuiltBy returns the build system identifier.
func (a *App) BuiltBy() string {
	return a.builtBy
}

// Config returns the application configuration.
func (a *App) Config() *Config {
	return a.config
}

// Logger returns the application logger.
func (a *App) Logger() *zerolog.Logger {
	return a.logger
}

// OutputFormat returns the output format chosen by flag, env or config.
func (a *App) OutputFormat() string {
	return a.config.Output
}

// Storefront returns the storefront, opening its storage on first use.
// Commands that never touch the stores never open the medium.
func (a *App) Storefront() (storefront.Storefront, error) {
	a.mu.RLock()
	if a.storefront != nil {
		sf := a.storefront
		a.mu.RUnlock()
		return sf, nil
	}
	a.mu.RUnlock()

	a.mu.Lock()
	defer a.mu.Unlock()

	if a.storefront != nil {
		return a.storefront, nil
	}

	sf, err := storefront.New(a.storefrontOptions()...)
	if err != nil {
		return nil, errors.WrapResource("create", "storefront", "", err)
	}

	a.storefront = sf
	return sf, nil
}

// Shutdown releases the storage medium if it was opened.
func (a *App) Shutdown(_ context.Context) error {
	a.mu.Lock()
	sf := a.storefront
	a.storefront = nil
	a.mu.Unlock()

	if sf == nil {
		return nil
	}
	return sf.Close()
}

// storefrontOptions builds storefront options from the configuration.
func (a *App) storefrontOptions() []storefront.Option {
	opts := []storefront.Option{
		storefront.WithStorageURL(a.config.Storage),
		storefront.WithLogger(a.logger),
	}
	if a.config.CatalogFile != "" {
		opts = append(opts, storefront.WithCatalogFile(a.config.CatalogFile))
	}
	return opts
}

// Option is a functional option for configuring the App.
type Option func(*App) error

// WithConfig sets a custom configuration.
func WithConfig(config *Config) Option {
	return func(a *App) error {
		a.config = config
		return nil
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *zerolog.Logger) Option {
	return func(a *App) error {
		a.logger = logger
		return nil
	}
}

// WithStorefront sets a custom storefront instance (useful for testing).
func WithStorefront(sf storefront.Storefront) Option {
	return func(a *App) error {
		a.storefront = sf
		return nil
	}
}

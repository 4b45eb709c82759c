// Package application provides the application interface for storefront
// commands.
//
// Commands accept this interface rather than the concrete App type so they
// can be tested with a mock:
//
//	mock := &application.Mock{
//	    StorefrontFunc: func() (storefront.Storefront, error) {
//	        return storefront.New(storefront.WithMedium(memory.New()))
//	    },
//	}
//	cmd := products.NewCommand(mock)
package application

import (
	"github.com/rs/zerolog"

	"github.com/agentstation/storefront"
)

// Application provides what commands need from the running program.
//
// Thread Safety: All methods must be safe for concurrent access.
type Application interface {
	// Storefront returns the shared storefront, opening it on first use.
	Storefront() (storefront.Storefront, error)

	// Logger returns the configured logger instance.
	Logger() *zerolog.Logger

	// OutputFormat returns the configured output format (table, json, yaml, markdown).
	OutputFormat() string

	// Version returns the application version string.
	Version() string

	// Commit returns the git commit hash.
	Commit() string

	// Date returns the build date.
	Date() string

	// BuiltBy returns the build system identifier.
	BuiltBy() string
}

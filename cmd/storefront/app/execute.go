package app

import (
	"context"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/agentstation/storefront/internal/cmd/output"
	"github.com/agentstation/storefront/pkg/errors"
)

// Execute runs the storefront CLI application with the given arguments.
// This is the main entry point called from main.go.
func (a *App) Execute(ctx context.Context, args []string) error {
	rootCmd := a.createRootCommand()
	rootCmd.SetArgs(args)
	return rootCmd.ExecuteContext(ctx)
}

// createRootCommand creates the root cobra command with all subcommands.
func (a *App) createRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "storefront",
		Short:   "Storefront catalog, cart and wishlist CLI",
		Version: a.version,
		Long: `Storefront browses an apparel catalog and manages a persisted cart and
wishlist from the command line, or serves the same operations over HTTP.

The cart and wishlist live in the storage medium named by --storage:
  ~/.storefront                   a directory of JSON files (default)
  memory://                       process memory, gone on exit
  redis://localhost:6379/0        a redis database
  sqlite:///var/lib/sf/store.db   a SQLite database`,
		PersistentPreRunE: a.setupCommand,
		SilenceUsage:      true,
		SilenceErrors:     true,
	}

	rootCmd.AddGroup(
		&cobra.Group{ID: "catalog", Title: "Catalog Commands:"},
		&cobra.Group{ID: "stores", Title: "Cart & Wishlist Commands:"},
		&cobra.Group{ID: "server", Title: "Server Commands:"},
	)

	// Flags are read in setupCommand so unset flags leave env and config
	// file values alone.
	flags := rootCmd.PersistentFlags()
	flags.String("config", "", "config file (default is $HOME/.storefront.yaml)")
	flags.BoolP("verbose", "v", false, "verbose output (shortcut for --log-level=debug)")
	flags.BoolP("quiet", "q", false, "minimal output (shortcut for --log-level=warn)")
	flags.Bool("no-color", false, "disable colored output")
	flags.StringP("output", "o", "", "output format: table, json, yaml, markdown")
	flags.String("log-level", "", "log level: trace, debug, info, warn, error (overrides -v/-q)")
	flags.String("storage", "", "storage URL for the cart and wishlist (default ~/.storefront)")
	flags.String("catalog", "", "YAML catalog file replacing the built-in products")

	rootCmd.SetVersionTemplate("storefront {{.Version}}\n")

	a.registerCommands(rootCmd)
	return rootCmd
}

// setupCommand is called before any command runs.
func (a *App) setupCommand(cmd *cobra.Command, _ []string) error {
	if configFile := mustGetString(cmd, "config"); configFile != "" {
		viper.Set("config", configFile)
		config, err := LoadConfig()
		if err != nil {
			return errors.WrapResource("load", "config", configFile, err)
		}
		a.config = config
	}

	a.config.UpdateFromFlags(
		mustGetBool(cmd, "verbose"),
		mustGetBool(cmd, "quiet"),
		mustGetBool(cmd, "no-color"),
		mustGetString(cmd, "output"),
		mustGetString(cmd, "log-level"),
		mustGetString(cmd, "storage"),
	)

	if catalogFile := mustGetString(cmd, "catalog"); catalogFile != "" {
		a.config.CatalogFile = catalogFile
	}

	if _, err := output.ParseFormat(a.config.Output); err != nil {
		return errors.NewValidationError("output", a.config.Output, err.Error())
	}

	logger := NewLogger(a.config)
	a.logger = &logger
	return nil
}

// registerCommands registers all subcommands with the root command.
func (a *App) registerCommands(rootCmd *cobra.Command) {
	// Catalog
	rootCmd.AddCommand(a.NewProductsCommand())
	rootCmd.AddCommand(a.NewFacetsCommand())
	rootCmd.AddCommand(a.NewSearchCommand())

	// Stores
	rootCmd.AddCommand(a.NewCartCommand())
	rootCmd.AddCommand(a.NewWishlistCommand())

	// Server
	rootCmd.AddCommand(a.NewServeCommand())

	// Utility
	rootCmd.AddCommand(a.NewVersionCommand())
}

// ExitOnError is a helper that prints an error and exits with status 1.
// This is meant to be used in main.go for top-level error handling.
func ExitOnError(err error) {
	if err != nil {
		_, _ = os.Stderr.WriteString("Error: " + err.Error() + "\n")
		os.Exit(1)
	}
}

// mustGetBool retrieves a boolean flag value or panics if the flag doesn't exist.
// This should only be used for flags defined in this package.
func mustGetBool(cmd *cobra.Command, name string) bool {
	val, err := cmd.Flags().GetBool(name)
	if err != nil {
		panic("programming error: failed to get flag " + name + ": " + err.Error())
	}
	return val
}

// mustGetString retrieves a string flag value or panics if the flag doesn't exist.
// This should only be used for flags defined in this package.
func mustGetString(cmd *cobra.Command, name string) string {
	val, err := cmd.Flags().GetString(name)
	if err != nil {
		panic("programming error: failed to get flag " + name + ": " + err.Error())
	}
	return val
}

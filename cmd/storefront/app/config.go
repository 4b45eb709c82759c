package app

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/agentstation/storefront/pkg/constants"
)

// EnvPrefix prefixes every environment variable the CLI reads, for
// example STOREFRONT_STORAGE or STOREFRONT_OUTPUT.
const EnvPrefix = "STOREFRONT"

// Config holds the application configuration loaded from various sources
// including config files, environment variables, and .env files.
type Config struct {
	// Global flags
	Verbose bool
	Quiet   bool
	NoColor bool
	Output  string

	// Config file
	ConfigFile string

	// Storefront configuration
	Storage     string // medium URL, see storage.Open
	CatalogFile string // optional YAML catalog replacing the embedded one

	// Logging configuration
	LogLevel  string
	LogFormat string
	LogOutput string
}

// LoadConfig loads configuration from all sources in order of precedence:
// 1. Command-line flags (handled by cobra)
// 2. Environment variables (STOREFRONT_*)
// 3. .env files
// 4. Config file (~/.storefront.yaml or ./.storefront.yaml)
// 5. Defaults
func LoadConfig() (*Config, error) {
	loadEnvFiles()

	v := viper.GetViper()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	v.SetDefault("storage", constants.DefaultDataPath)
	v.SetDefault("log_format", "auto")
	v.SetDefault("log_output", "stderr")

	if configFile := v.GetString("config"); configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(home)
		}
		v.AddConfigPath(".")
		v.SetConfigType("yaml")
		v.SetConfigName(".storefront")
	}

	// A missing config file is fine
	_ = v.ReadInConfig()

	return &Config{
		Verbose: v.GetBool("verbose"),
		Quiet:   v.GetBool("quiet"),
		NoColor: v.GetBool("no_color") || os.Getenv("NO_COLOR") != "",
		Output:  v.GetString("output"),

		ConfigFile: v.ConfigFileUsed(),

		Storage:     v.GetString("storage"),
		CatalogFile: v.GetString("catalog"),

		LogLevel:  v.GetString("log_level"),
		LogFormat: v.GetString("log_format"),
		LogOutput: v.GetString("log_output"),
	}, nil
}

// UpdateFromFlags updates config values from parsed command flags.
// Only flags set on the command line override file and env values.
func (c *Config) UpdateFromFlags(verbose, quiet, noColor bool, output, logLevel, storage string) {
	c.Verbose = c.Verbose || verbose
	c.Quiet = c.Quiet || quiet
	c.NoColor = c.NoColor || noColor
	if output != "" {
		c.Output = output
	}
	if logLevel != "" {
		c.LogLevel = logLevel
	}
	if storage != "" {
		c.Storage = storage
	}
}

// loadEnvFiles loads environment variables from .env files.
// godotenv never overrides variables already set, so .env.local is
// read first to take precedence over .env.
func loadEnvFiles() {
	for _, envFile := range []string{".env.local", ".env"} {
		_ = godotenv.Load(envFile)
	}
}

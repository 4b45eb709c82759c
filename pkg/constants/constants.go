// Package constants provides shared constants used throughout the storefront codebase.
// This includes storage keys, catalog limits, timeouts, and other configuration values
// that should be consistent across the application.
package constants

import "time"

// Storage key constants name the records kept in the persistence medium
const (
	// CartKey is the medium key holding the serialized cart line items
	CartKey = "elev_cart"

	// WishlistKey is the medium key holding the serialized wishlist entries
	WishlistKey = "elev_wishlist"

	// NamespaceSeparator joins a session namespace and a store key
	NamespaceSeparator = ":"
)

// Query limit constants
const (
	// PopularPicksLimit is the number of products returned for a blank search
	PopularPicksLimit = 6

	// MaxSearchResults caps the products returned for a non-blank search
	MaxSearchResults = 8

	// MinQuantity is the smallest quantity the selector allows
	MinQuantity = 1

	// MaxQuantity is the largest quantity the selector allows
	MaxQuantity = 10
)

// Price constants
const (
	// DefaultMaxPrice is the price ceiling a fresh or cleared filter starts with
	DefaultMaxPrice = 2000.0

	// UnboundedMaxPrice is used when no price range control is present
	UnboundedMaxPrice = 9999.0

	// CurrencySymbol prefixes formatted prices
	CurrencySymbol = "₹"
)

// Image constants
const (
	// GalleryImageWidth is the width requested for product gallery images
	GalleryImageWidth = 800

	// ThumbnailImageWidth is the width requested for cart and search thumbnails
	ThumbnailImageWidth = 200

	// ImageQuality is the quality parameter requested from the image CDN
	ImageQuality = 80
)

// Timeout constants define various timeout durations used in the application
const (
	// DefaultTimeout is the standard timeout for general operations
	DefaultTimeout = 10 * time.Second

	// StorageTimeout bounds a single round trip to a remote persistence medium
	StorageTimeout = 5 * time.Second

	// ShutdownTimeout is how long the server waits for in-flight requests
	ShutdownTimeout = 5 * time.Second

	// CommandTimeout is the default timeout for CLI commands
	CommandTimeout = 2 * time.Minute
)

// File permission constants define standard Unix file permissions
const (
	// DirPermissions is the default permission for created directories (rwxr-xr-x)
	DirPermissions = 0755

	// FilePermissions is the default permission for created files (rw-r--r--)
	FilePermissions = 0644
)

// Rate limiting constants
const (
	// DefaultRateLimit is the default requests per minute per client
	DefaultRateLimit = 600

	// BurstSize is the token bucket burst size for rate limiting
	BurstSize = 20
)

// Cache constants
const (
	// CacheTTL is the default time-to-live for cached query results
	CacheTTL = 15 * time.Minute

	// CacheCleanupInterval is how often to clean expired cache entries
	CacheCleanupInterval = 5 * time.Minute
)

// Realtime constants
const (
	// ChannelBufferSize is the default buffer size for event channels
	ChannelBufferSize = 256

	// PingInterval is how often websocket clients are pinged
	PingInterval = 54 * time.Second

	// PongWait is how long a websocket client may stay silent
	PongWait = 60 * time.Second

	// WriteWait is the deadline for a single websocket write
	WriteWait = 10 * time.Second
)

// Path constants
const (
	// DefaultDataPath is the default directory for the file medium
	DefaultDataPath = "~/.storefront"

	// DefaultStorageURL is the medium used when none is configured
	DefaultStorageURL = "memory://"
)

// Format constants
const (
	// TimeFormatISO8601 is the ISO 8601 time format
	TimeFormatISO8601 = time.RFC3339

	// TimeFormatLog is the format used in log files
	TimeFormatLog = "2006-01-02 15:04:05.000"
)

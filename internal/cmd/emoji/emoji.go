// Package emoji provides symbol constants for CLI output.
package emoji

// Symbols used for status lines printed after a command changes state.
const (
	// Success marks a completed mutation: item added, item removed, cart cleared.
	Success = "✓"

	// Error marks a failed operation.
	Error = "✗"

	// Stop marks a shutdown.
	Stop = "✗"

	// Warning marks a no-op the user may not expect, such as an index past
	// the end of the list.
	Warning = "!"

	// Saved marks a wishlist entry.
	Saved = "♥"

	// Info represents informational messages.
	Info = "i"
)

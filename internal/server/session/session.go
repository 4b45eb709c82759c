// Package session identifies the shopper behind a request. Each session gets
// its own cart and wishlist, and realtime clients only hear about their own
// session's stores.
package session

import (
	"context"
	"net/http"

	"github.com/google/uuid"
)

const (
	// Header carries the session id on requests and responses.
	Header = "X-Session-ID"

	// Cookie carries the session id for browser clients.
	Cookie = "sf_session"

	maxLength = 64
)

type contextKey struct{}

// WithID returns a context carrying the session id.
func WithID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, contextKey{}, id)
}

// FromContext returns the session id, or "" when the request has none.
func FromContext(ctx context.Context) string {
	id, _ := ctx.Value(contextKey{}).(string)
	return id
}

// Valid reports whether id can be used as a storage namespace: 1 to 64
// characters drawn from letters, digits, '-' and '_'.
func Valid(id string) bool {
	if id == "" || len(id) > maxLength {
		return false
	}
	for _, r := range id {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
		default:
			return false
		}
	}
	return true
}

// New issues a fresh session id.
func New() string {
	return uuid.NewString()
}

// Resolve finds the session id of a request. The header wins over the
// cookie; invalid values are ignored. The second result is false when no
// usable id was presented and a new one was issued.
func Resolve(r *http.Request) (string, bool) {
	if id := r.Header.Get(Header); Valid(id) {
		return id, true
	}
	if c, err := r.Cookie(Cookie); err == nil && Valid(c.Value) {
		return c.Value, true
	}
	return New(), false
}

// SetCookie stores the session id on the client.
func SetCookie(w http.ResponseWriter, id string) {
	http.SetCookie(w, &http.Cookie{
		Name:     Cookie,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

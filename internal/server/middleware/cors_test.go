package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestCORS(t *testing.T) {
	tests := []struct {
		name       string
		config     CORSConfig
		origin     string
		wantOrigin string
		wantVary   bool
	}{
		{
			name:       "default allows any origin",
			config:     DefaultCORSConfig(),
			origin:     "https://shop.example",
			wantOrigin: "*",
		},
		{
			name:       "wildcard among listed origins answers any origin",
			config:     CORSConfig{AllowedOrigins: []string{"https://shop.example", "*"}},
			origin:     "https://other.example",
			wantOrigin: "*",
		},
		{
			name:       "listed origin is echoed",
			config:     CORSConfig{AllowedOrigins: []string{"https://shop.example"}},
			origin:     "https://shop.example",
			wantOrigin: "https://shop.example",
			wantVary:   true,
		},
		{
			name:   "unlisted origin gets nothing",
			config: CORSConfig{AllowedOrigins: []string{"https://shop.example"}},
			origin: "https://evil.example",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/v1/products", nil)
			req.Header.Set("Origin", tt.origin)
			rec := httptest.NewRecorder()
			CORS(tt.config)(okHandler()).ServeHTTP(rec, req)

			assert.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, tt.wantOrigin, rec.Header().Get("Access-Control-Allow-Origin"))
			if tt.wantVary {
				assert.Equal(t, "Origin", rec.Header().Get("Vary"))
			} else {
				assert.Empty(t, rec.Header().Get("Vary"))
			}
		})
	}
}

func TestCORSSessionHeaders(t *testing.T) {
	rec := httptest.NewRecorder()
	CORS(DefaultCORSConfig())(okHandler()).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Contains(t, rec.Header().Get("Access-Control-Allow-Headers"), "X-Session-ID")
	assert.Equal(t, "X-Session-ID, X-Request-ID", rec.Header().Get("Access-Control-Expose-Headers"))
	assert.Equal(t, "GET, POST, DELETE, OPTIONS", rec.Header().Get("Access-Control-Allow-Methods"))
}

func TestCORSPreflight(t *testing.T) {
	called := false
	handler := CORS(DefaultCORSConfig())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodOptions, "/api/v1/cart", nil))

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.False(t, called)
	assert.Equal(t, "86400", rec.Header().Get("Access-Control-Max-Age"))
}

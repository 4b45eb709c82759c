package response

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	sferrors "github.com/agentstation/storefront/pkg/errors"
)

func decode(t *testing.T, w *httptest.ResponseRecorder) Response {
	t.Helper()
	var resp Response
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	return resp
}

func TestSuccessAndFail(t *testing.T) {
	ok := Success(map[string]string{"message": "success"})
	assert.NotNil(t, ok.Data)
	assert.Nil(t, ok.Error)

	fail := Fail("TEST_ERROR", "Test error message", "Additional details")
	assert.Nil(t, fail.Data)
	require.NotNil(t, fail.Error)
	assert.Equal(t, Error{Code: "TEST_ERROR", Message: "Test error message", Details: "Additional details"}, *fail.Error)
}

func TestEnvelopeShape(t *testing.T) {
	w := httptest.NewRecorder()
	OK(w, map[string]int{"count": 3})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"data":{"count":3},"error":null}`, w.Body.String())

	w = httptest.NewRecorder()
	NotFound(w, "product with ID 13 not found", "")
	assert.JSONEq(t, `{"data":null,"error":{"code":"NOT_FOUND","message":"product with ID 13 not found"}}`, w.Body.String())
}

func TestHelpers(t *testing.T) {
	tests := []struct {
		name   string
		write  func(w http.ResponseWriter)
		status int
		code   string
	}{
		{"created", func(w http.ResponseWriter) { Created(w, 1) }, http.StatusCreated, ""},
		{"bad request", func(w http.ResponseWriter) { BadRequest(w, "bad", "") }, http.StatusBadRequest, "BAD_REQUEST"},
		{"unauthorized", func(w http.ResponseWriter) { Unauthorized(w, "no", "") }, http.StatusUnauthorized, "UNAUTHORIZED"},
		{"not found", func(w http.ResponseWriter) { NotFound(w, "gone", "") }, http.StatusNotFound, "NOT_FOUND"},
		{"method", func(w http.ResponseWriter) { MethodNotAllowed(w, "PUT") }, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED"},
		{"rate limited", func(w http.ResponseWriter) { RateLimited(w, "slow down") }, http.StatusTooManyRequests, "RATE_LIMITED"},
		{"internal", func(w http.ResponseWriter) { InternalError(w, errors.New("secret")) }, http.StatusInternalServerError, "INTERNAL_ERROR"},
		{"unavailable", func(w http.ResponseWriter) { ServiceUnavailable(w, "down") }, http.StatusServiceUnavailable, "SERVICE_UNAVAILABLE"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			tt.write(w)
			assert.Equal(t, tt.status, w.Code)

			resp := decode(t, w)
			if tt.code == "" {
				assert.Nil(t, resp.Error)
				return
			}
			require.NotNil(t, resp.Error)
			assert.Equal(t, tt.code, resp.Error.Code)
		})
	}
}

func TestInternalErrorHidesCause(t *testing.T) {
	w := httptest.NewRecorder()
	InternalError(w, errors.New("redis password is hunter2"))
	assert.NotContains(t, w.Body.String(), "hunter2")
}

func TestErrorFromType(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{
			name:   "not found",
			err:    sferrors.NewNotFoundError("product", "13"),
			status: http.StatusNotFound,
			code:   "NOT_FOUND",
		},
		{
			name:   "index",
			err:    sferrors.NewIndexError("cart", 4, 1),
			status: http.StatusNotFound,
			code:   "NOT_FOUND",
		},
		{
			name:   "validation",
			err:    sferrors.NewValidationError("qty", 11, "must be between 1 and 10"),
			status: http.StatusBadRequest,
			code:   "BAD_REQUEST",
		},
		{
			name:   "wrapped validation",
			err:    fmt.Errorf("adding to cart: %w", sferrors.NewValidationError("size", "XXXL", "not offered")),
			status: http.StatusBadRequest,
			code:   "BAD_REQUEST",
		},
		{
			name:   "parse",
			err:    sferrors.NewParseError("json", "", "unexpected EOF", nil),
			status: http.StatusBadRequest,
			code:   "BAD_REQUEST",
		},
		{
			name:   "io",
			err:    sferrors.NewIOError("write", "alice:elev_cart", errors.New("connection refused")),
			status: http.StatusServiceUnavailable,
			code:   "SERVICE_UNAVAILABLE",
		},
		{
			name:   "unavailable",
			err:    fmt.Errorf("ping: %w", sferrors.ErrUnavailable),
			status: http.StatusServiceUnavailable,
			code:   "SERVICE_UNAVAILABLE",
		},
		{
			name:   "generic",
			err:    errors.New("generic error"),
			status: http.StatusInternalServerError,
			code:   "INTERNAL_ERROR",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			ErrorFromType(w, tt.err)

			assert.Equal(t, tt.status, w.Code)
			resp := decode(t, w)
			assert.Nil(t, resp.Data)
			require.NotNil(t, resp.Error)
			assert.Equal(t, tt.code, resp.Error.Code)
		})
	}
}

package errors_test

import (
	"errors"
	"fmt"
	"testing"

	pkgerrors "github.com/agentstation/storefront/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	err := pkgerrors.New("test error")
	assert.NotNil(t, err)
	assert.Equal(t, "test error", err.Error())
}

func TestNotFoundError(t *testing.T) {
	t.Run("basic error", func(t *testing.T) {
		err := &pkgerrors.NotFoundError{
			Resource: "product",
			ID:       "42",
		}
		assert.Equal(t, "product with ID 42 not found", err.Error())
		assert.True(t, errors.Is(err, pkgerrors.ErrNotFound))
	})

	t.Run("wrapped error", func(t *testing.T) {
		base := pkgerrors.NewNotFoundError("product", "99")
		wrapped := errors.Join(errors.New("failed"), base)
		assert.True(t, pkgerrors.IsNotFound(wrapped))
	})
}

func TestValidationError(t *testing.T) {
	t.Run("with field", func(t *testing.T) {
		err := &pkgerrors.ValidationError{
			Field:   "qty",
			Message: "must be between 1 and 10",
		}
		assert.Equal(t, "validation failed for field qty: must be between 1 and 10", err.Error())
		assert.True(t, errors.Is(err, pkgerrors.ErrInvalidInput))
	})

	t.Run("without field", func(t *testing.T) {
		err := &pkgerrors.ValidationError{Message: "empty request"}
		assert.Equal(t, "validation failed: empty request", err.Error())
		assert.True(t, pkgerrors.IsValidationError(err))
	})

	t.Run("wrap nil", func(t *testing.T) {
		assert.NoError(t, pkgerrors.WrapValidation("id", nil))
	})
}

func TestIndexError(t *testing.T) {
	err := pkgerrors.NewIndexError("cart", 5, 2)
	assert.Equal(t, "cart has no item at index 5 (length 2)", err.Error())
	assert.True(t, pkgerrors.IsInvalidIndex(err))
	assert.True(t, pkgerrors.IsNotFound(err))
}

func TestCorruptError(t *testing.T) {
	base := errors.New("unexpected token")
	err := pkgerrors.NewCorruptError("elev_cart", base)

	assert.Contains(t, err.Error(), "elev_cart")
	assert.True(t, pkgerrors.IsCorrupt(err))
	assert.ErrorIs(t, err, base)
}

func TestConfigError(t *testing.T) {
	base := errors.New("unknown scheme")
	err := pkgerrors.NewConfigError("storage", "ftp://x is not supported", base)

	assert.Equal(t, "configuration error in storage: ftp://x is not supported", err.Error())
	assert.Equal(t, base, err.Unwrap())

	bare := &pkgerrors.ConfigError{Message: "missing"}
	assert.Equal(t, "configuration error: missing", bare.Error())
}

func TestIOError(t *testing.T) {
	t.Run("with path", func(t *testing.T) {
		err := pkgerrors.NewIOError("write", "elev_cart", errors.New("disk full"))
		assert.Equal(t, "IO error during write of elev_cart: disk full", err.Error())
	})

	t.Run("without path", func(t *testing.T) {
		err := pkgerrors.NewIOError("read", "", errors.New("closed"))
		assert.Equal(t, "IO error during read: closed", err.Error())
	})

	t.Run("wrap keeps cause", func(t *testing.T) {
		base := errors.New("connection refused")
		err := pkgerrors.WrapIO("write", "elev_cart", base)
		require.Error(t, err)
		assert.ErrorIs(t, err, base)

		var ioErr *pkgerrors.IOError
		require.True(t, errors.As(err, &ioErr))
		assert.Equal(t, "write", ioErr.Operation)
	})
}

func TestParseError(t *testing.T) {
	tests := []struct {
		name     string
		err      *pkgerrors.ParseError
		expected string
	}{
		{
			name:     "with position",
			err:      &pkgerrors.ParseError{Format: "yaml", File: "products.yaml", Line: 3, Column: 7, Message: "bad indent"},
			expected: "parse error in yaml at products.yaml:3:7: bad indent",
		},
		{
			name:     "with file",
			err:      &pkgerrors.ParseError{Format: "yaml", File: "products.yaml", Message: "bad indent"},
			expected: "parse error in yaml file products.yaml: bad indent",
		},
		{
			name:     "bare",
			err:      &pkgerrors.ParseError{Format: "json", Message: "unexpected end"},
			expected: "json parse error: unexpected end",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.err.Error())
		})
	}
}

func TestResourceError(t *testing.T) {
	base := errors.New("no such host")
	err := pkgerrors.WrapResource("open", "storage", "redis://cache:6379", base)
	assert.Equal(t, "failed to open storage redis://cache:6379: no such host", err.Error())
	assert.ErrorIs(t, err, base)

	assert.NoError(t, pkgerrors.WrapResource("open", "storage", "", nil))
}

func TestWrapChains(t *testing.T) {
	base := pkgerrors.NewNotFoundError("product", "7")
	err := fmt.Errorf("showing product: %w", base)
	assert.True(t, pkgerrors.IsNotFound(err))
	assert.False(t, pkgerrors.IsValidationError(err))
	assert.False(t, pkgerrors.IsTimeout(err))
	assert.False(t, pkgerrors.IsCanceled(err))
}

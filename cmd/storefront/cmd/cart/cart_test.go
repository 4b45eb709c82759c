package cart

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/storefront"
	"github.com/agentstation/storefront/cmd/application"
	pkgcart "github.com/agentstation/storefront/pkg/cart"
	"github.com/agentstation/storefront/pkg/errors"
	"github.com/agentstation/storefront/pkg/logging"
	"github.com/agentstation/storefront/pkg/storage/memory"
)

type fixture struct {
	app    *application.Mock
	medium *memory.Medium
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	medium := memory.New()
	sf, err := storefront.New(storefront.WithMedium(medium))
	require.NoError(t, err)
	return &fixture{
		medium: medium,
		app: &application.Mock{
			StorefrontFunc:   func() (storefront.Storefront, error) { return sf, nil },
			LoggerFunc:       logging.Disabled,
			OutputFormatFunc: func() string { return "json" },
		},
	}
}

func (f *fixture) run(t *testing.T, args ...string) (pkgcart.Summary, string, error) {
	t.Helper()
	root := &cobra.Command{Use: "storefront", SilenceUsage: true, SilenceErrors: true}
	root.AddGroup(&cobra.Group{ID: "stores", Title: "Store Commands:"})
	root.AddCommand(NewCommand(f.app))

	var stdout, stderr bytes.Buffer
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetArgs(append([]string{"cart"}, args...))
	err := root.Execute()

	var summary pkgcart.Summary
	if stdout.Len() > 0 {
		require.NoError(t, json.Unmarshal(stdout.Bytes(), &summary))
	}
	return summary, stderr.String(), err
}

func TestAddMergesLines(t *testing.T) {
	f := newFixture(t)

	summary, status, err := f.run(t, "add", "1", "--size", "M", "--color", "Black")
	require.NoError(t, err)
	assert.Contains(t, status, "Added Noir Oversized Hoodie M / Black × 1")
	assert.Equal(t, 1, summary.Count)

	summary, _, err = f.run(t, "add", "1", "--size", "M", "--color", "Black", "--qty", "2")
	require.NoError(t, err)
	require.Len(t, summary.Items, 1)
	assert.Equal(t, 3, summary.Items[0].Qty)
	assert.Equal(t, 567.0, summary.Total)

	summary, _, err = f.run(t, "add", "1", "--size", "L", "--color", "Black")
	require.NoError(t, err)
	assert.Len(t, summary.Items, 2)
	assert.Equal(t, 4, summary.Count)
}

func TestAddRejectsInvalidInput(t *testing.T) {
	tests := []struct {
		name  string
		args  []string
		check func(error) bool
	}{
		{"quantity too large", []string{"add", "1", "--qty", "11"}, errors.IsValidationError},
		{"quantity zero", []string{"add", "1", "--qty", "0"}, errors.IsValidationError},
		{"size not offered", []string{"add", "1", "--size", "XXS"}, errors.IsValidationError},
		{"unknown product", []string{"add", "99"}, errors.IsNotFound},
		{"malformed id", []string{"add", "one"}, errors.IsValidationError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			_, _, err := f.run(t, tt.args...)
			require.Error(t, err)
			assert.True(t, tt.check(err), err.Error())
			assert.Empty(t, f.medium.Keys())
		})
	}
}

func TestRemoveAndClear(t *testing.T) {
	f := newFixture(t)
	_, _, err := f.run(t, "add", "2", "--size", "S")
	require.NoError(t, err)
	_, _, err = f.run(t, "add", "7")
	require.NoError(t, err)

	_, _, err = f.run(t, "remove", "5")
	assert.True(t, errors.IsInvalidIndex(err))

	_, _, err = f.run(t, "remove", "first")
	assert.True(t, errors.IsValidationError(err))

	summary, _, err := f.run(t, "rm", "0")
	require.NoError(t, err)
	require.Len(t, summary.Items, 1)
	assert.Equal(t, "Slim Fit Denim", summary.Items[0].Name)

	_, status, err := f.run(t, "clear")
	require.NoError(t, err)
	assert.Contains(t, status, "Cart cleared")

	summary, _, err = f.run(t, "list")
	require.NoError(t, err)
	assert.Zero(t, summary.Count)
	assert.Empty(t, summary.Items)
}

func TestSessionsAreIsolated(t *testing.T) {
	f := newFixture(t)

	_, _, err := f.run(t, "add", "5", "--session", "alice")
	require.NoError(t, err)
	assert.Equal(t, []string{"alice:elev_cart"}, f.medium.Keys())

	summary, _, err := f.run(t, "list")
	require.NoError(t, err)
	assert.Zero(t, summary.Count)

	summary, _, err = f.run(t, "--session", "alice")
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Count)
}

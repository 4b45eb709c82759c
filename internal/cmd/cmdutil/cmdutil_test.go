package cmdutil

import (
	"bytes"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/storefront/internal/cmd/table"
	"github.com/agentstation/storefront/pkg/catalog"
	"github.com/agentstation/storefront/pkg/errors"
)

func newCmd() (*cobra.Command, *bytes.Buffer, *bytes.Buffer) {
	cmd := &cobra.Command{Use: "test"}
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	return cmd, &stdout, &stderr
}

func TestRender(t *testing.T) {
	value := map[string]int{"count": 2}
	rows := table.Data{Headers: []string{"Count"}, Rows: [][]string{{"2"}}}

	t.Run("json uses value", func(t *testing.T) {
		cmd, stdout, _ := newCmd()
		require.NoError(t, Render(cmd, "json", value, rows))
		assert.JSONEq(t, `{"count":2}`, stdout.String())
	})

	t.Run("markdown uses rows", func(t *testing.T) {
		cmd, stdout, _ := newCmd()
		require.NoError(t, Render(cmd, "markdown", value, rows))
		assert.Contains(t, stdout.String(), "Count")
		assert.NotContains(t, stdout.String(), "{")
	})

	t.Run("invalid format", func(t *testing.T) {
		cmd, _, _ := newCmd()
		assert.Error(t, Render(cmd, "xml", value, rows))
	})
}

func TestStatus(t *testing.T) {
	cmd, stdout, stderr := newCmd()
	Status(cmd, "✓", "added %s", "Slim Fit Denim")
	assert.Equal(t, "✓ added Slim Fit Denim\n", stderr.String())
	assert.Empty(t, stdout.String())
}

func TestSessionFlag(t *testing.T) {
	parent := &cobra.Command{Use: "cart"}
	AddSessionFlag(parent)
	child := &cobra.Command{Use: "list", Run: func(*cobra.Command, []string) {}}
	parent.AddCommand(child)

	parent.SetArgs([]string{"list", "--session", "alice"})
	require.NoError(t, parent.Execute())
	assert.Equal(t, "alice", Session(child))

	assert.Empty(t, Session(&cobra.Command{Use: "bare"}))
}

func TestLookupProduct(t *testing.T) {
	cat, err := catalog.New([]catalog.Product{{
		ID:       7,
		Name:     "Slim Fit Denim",
		Category: "Bottoms",
		Price:    119,
		Sizes:    []string{"30", "32"},
		Colors:   []catalog.Color{{Name: "Indigo", Hex: "#3f4a6b"}},
		Images:   []string{"https://images.unsplash.com/denim"},
	}})
	require.NoError(t, err)

	p, err := LookupProduct(cat, "7")
	require.NoError(t, err)
	assert.Equal(t, "Slim Fit Denim", p.Name)

	_, err = LookupProduct(cat, "8")
	assert.True(t, errors.IsNotFound(err))

	_, err = LookupProduct(cat, "seven")
	assert.True(t, errors.IsValidationError(err))
}

func TestParseIndex(t *testing.T) {
	i, err := ParseIndex("2")
	require.NoError(t, err)
	assert.Equal(t, 2, i)

	for _, bad := range []string{"x", "1.5", "2a", ""} {
		_, err := ParseIndex(bad)
		assert.Error(t, err, bad)
	}
}

package search_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/storefront/pkg/catalog"
	"github.com/agentstation/storefront/pkg/search"
)

func index(t *testing.T, opts ...search.Option) *search.Index {
	t.Helper()
	c, err := catalog.Embedded()
	require.NoError(t, err)
	return search.New(c.Products(), opts...)
}

func ids(r search.Result) []int {
	out := make([]int, len(r.Products))
	for i, p := range r.Products {
		out[i] = p.ID
	}
	return out
}

func TestQuery(t *testing.T) {
	idx := index(t)

	tests := []struct {
		query string
		want  []int
	}{
		{query: "jacket", want: []int{4, 6}},
		{query: "LEATHER", want: []int{4, 8, 12}},
		{query: "tee", want: []int{2, 5}},
		{query: "outerwear", want: []int{1, 4, 6, 10}},
		{query: "cotton", want: []int{1, 2, 5, 9}},
		{query: "  Denim  ", want: []int{7}},
		{query: "t-shirts", want: []int{2, 5, 9}},
		{query: "bag", want: []int{12}},
		{query: "wool", want: []int{10}},
		{query: "a", want: []int{1, 2, 3, 4, 5, 6, 7, 8}},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			got := idx.Query(tt.query)
			assert.Equal(t, tt.want, ids(got))
			assert.False(t, got.Default)
			assert.False(t, got.NoResults())
		})
	}
}

func TestBlankQueryReturnsPopularPicks(t *testing.T) {
	idx := index(t)

	for _, q := range []string{"", "   ", "\t\n"} {
		got := idx.Query(q)
		assert.True(t, got.Default)
		assert.Equal(t, []int{1, 2, 3, 4, 5, 6}, ids(got))
		assert.False(t, got.NoResults())
	}
}

func TestNoResults(t *testing.T) {
	got := index(t).Query("zzzz")
	assert.Empty(t, got.Products)
	assert.False(t, got.Default)
	assert.True(t, got.NoResults())
}

func TestQueryNeverSpansFields(t *testing.T) {
	idx := index(t)

	// Name "Noir Oversized Hoodie" followed by category "Outerwear".
	for _, q := range []string{"hoodie\x00outer", "\x00", "noir\x00"} {
		got := idx.Query(q)
		assert.True(t, got.NoResults(), "query %q", q)
		assert.False(t, got.Default, "query %q", q)
	}

	assert.Contains(t, ids(idx.Query("hoodie")), 1)
}

func TestOptions(t *testing.T) {
	idx := index(t, search.WithLimit(2), search.WithPopularPicks(3))

	assert.Equal(t, []int{1, 2}, ids(idx.Query("a")))
	assert.Equal(t, []int{1, 2, 3}, ids(idx.Query("")))
	assert.Equal(t, 12, idx.Len())
}

func TestSmallCatalog(t *testing.T) {
	idx := search.New([]catalog.Product{{ID: 1, Name: "Only"}})
	assert.Equal(t, []int{1}, ids(idx.Query(" ")))
}

func TestConcurrentQueries(t *testing.T) {
	idx := index(t)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.Equal(t, []int{4, 6}, ids(idx.Query("Jacket")))
		}()
	}
	wg.Wait()
}

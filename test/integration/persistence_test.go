package integration

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/storefront"
	"github.com/agentstation/storefront/pkg/cart"
	"github.com/agentstation/storefront/pkg/wishlist"
)

// media lists the storage URLs each test runs against. Redis joins when
// STOREFRONT_TEST_REDIS points at a disposable database.
func media(t *testing.T) map[string]string {
	t.Helper()
	dir := t.TempDir()
	urls := map[string]string{
		"file":   "file://" + filepath.Join(dir, "files"),
		"sqlite": "sqlite://" + filepath.Join(dir, "store.db"),
	}
	if redisURL := os.Getenv("STOREFRONT_TEST_REDIS"); redisURL != "" {
		urls["redis"] = redisURL
	}
	return urls
}

func open(t *testing.T, url string) storefront.Storefront {
	t.Helper()
	sf, err := storefront.New(storefront.WithStorageURL(url))
	require.NoError(t, err)
	return sf
}

func TestStateSurvivesReopen(t *testing.T) {
	ctx := context.Background()

	for name, url := range media(t) {
		t.Run(name, func(t *testing.T) {
			sf := open(t, url)
			require.NoError(t, sf.Ping(ctx))

			hoodie, ok, err := sf.Product("1")
			require.NoError(t, err)
			require.True(t, ok)
			tee, _, err := sf.Product("2")
			require.NoError(t, err)

			require.NoError(t, sf.Cart().Clear(ctx))
			require.NoError(t, sf.Cart().AddItem(ctx, cart.ItemFor(hoodie, "M", "Black", 2)))
			require.NoError(t, sf.Cart().AddItem(ctx, cart.ItemFor(tee, "S", "White", 1)))
			_, err = sf.Wishlist().AddItem(ctx, wishlist.ItemFor(tee))
			require.NoError(t, err)
			require.NoError(t, sf.Close())

			reopened := open(t, url)
			defer func() { require.NoError(t, reopened.Close()) }()

			summary := reopened.Cart().Summary(ctx)
			require.Len(t, summary.Items, 2)
			assert.Equal(t, 3, summary.Count)
			assert.Equal(t, 457.0, summary.Total)
			assert.True(t, reopened.Wishlist().Has(ctx, "Essential White Tee"))

			removed, err := reopened.Wishlist().Toggle(ctx, wishlist.ItemFor(tee))
			require.NoError(t, err)
			assert.False(t, removed)
			assert.Zero(t, reopened.Wishlist().Count(ctx))
		})
	}
}

func TestSessionsShareMedium(t *testing.T) {
	ctx := context.Background()

	for name, url := range media(t) {
		t.Run(name, func(t *testing.T) {
			sf := open(t, url)
			defer func() { require.NoError(t, sf.Close()) }()

			p, _, err := sf.Product("7")
			require.NoError(t, err)

			alice := sf.Session("alice")
			bob := sf.Session("bob")
			require.NoError(t, alice.Cart.Clear(ctx))
			require.NoError(t, bob.Cart.Clear(ctx))

			require.NoError(t, alice.Cart.AddItem(ctx, cart.ItemFor(p, "M", "Indigo", 1)))

			assert.Equal(t, 1, alice.Cart.Count(ctx))
			assert.Zero(t, bob.Cart.Count(ctx))
		})
	}
}

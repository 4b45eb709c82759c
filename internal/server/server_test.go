package server

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/agentstation/storefront"
	"github.com/agentstation/storefront/cmd/application"
	"github.com/agentstation/storefront/internal/server/session"
	"github.com/agentstation/storefront/pkg/logging"
	"github.com/agentstation/storefront/pkg/storage/memory"
)

// envelope mirrors response.Response with raw data for per-test decoding.
type envelope struct {
	Data  json.RawMessage `json:"data"`
	Error *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

type cartSummary struct {
	Items []struct {
		Name  string  `json:"name"`
		Price float64 `json:"price"`
		Size  string  `json:"size"`
		Color string  `json:"color"`
		Qty   int     `json:"qty"`
	} `json:"items"`
	Count int     `json:"count"`
	Total float64 `json:"total"`
}

type wishlistSummary struct {
	Items []struct {
		ID   int    `json:"id"`
		Name string `json:"name"`
	} `json:"items"`
	Count int  `json:"count"`
	Added bool `json:"added"`
}

func newMockApplication(t *testing.T) (*application.Mock, *memory.Medium) {
	t.Helper()
	medium := memory.New()
	sf, err := storefront.New(storefront.WithMedium(medium))
	require.NoError(t, err)
	return &application.Mock{
		StorefrontFunc: func() (storefront.Storefront, error) { return sf, nil },
		LoggerFunc:     logging.Disabled,
	}, medium
}

// testServer starts a server and returns its handler.
func testServer(t *testing.T, cfg Config) (*Server, http.Handler, *memory.Medium) {
	t.Helper()
	app, medium := newMockApplication(t)
	srv, err := New(app, cfg)
	require.NoError(t, err)
	srv.Start()
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = srv.Shutdown(ctx)
	})
	return srv, srv.Handler(), medium
}

func testConfig() Config {
	cfg := DefaultConfig()
	cfg.RateLimit = 0
	return cfg
}

func do(t *testing.T, h http.Handler, method, path, sessionID, body string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	if sessionID != "" {
		req.Header.Set(session.Header, sessionID)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var env envelope
	if strings.HasPrefix(rec.Header().Get("Content-Type"), "application/json") {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	}
	return rec, env
}

func decodeData[T any](t *testing.T, env envelope) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(env.Data, &v))
	return v
}

func TestNewDoesNotBlock(t *testing.T) {
	app, _ := newMockApplication(t)

	done := make(chan struct{})
	var srv *Server
	go func() {
		var err error
		srv, err = New(app, Config{})
		assert.NoError(t, err)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("New deadlocked before Start")
	}
	require.NotNil(t, srv)
	assert.Equal(t, "/api/v1", srv.config.PathPrefix)
}

func TestNewFailsWithoutStorefront(t *testing.T) {
	_, err := New(&application.Mock{}, DefaultConfig())
	assert.Error(t, err)
}

func TestStartAndShutdown(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	app, _ := newMockApplication(t)
	srv, err := New(app, DefaultConfig())
	require.NoError(t, err)

	srv.Start()
	srv.Start()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.NoError(t, srv.Shutdown(ctx))
}

func TestHealth(t *testing.T) {
	_, h, _ := testServer(t, testConfig())

	for _, path := range []string{"/health", "/api/v1/health"} {
		rec, env := do(t, h, http.MethodGet, path, "", "")
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, string(env.Data), "healthy")
	}

	rec, env := do(t, h, http.MethodGet, "/api/v1/ready", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	ready := decodeData[map[string]any](t, env)
	assert.Equal(t, "ready", ready["status"])
	assert.EqualValues(t, 12, ready["products"])
}

func TestListProducts(t *testing.T) {
	_, h, _ := testServer(t, testConfig())

	type list struct {
		Products []struct {
			ID int `json:"id"`
		} `json:"products"`
		Count int    `json:"count"`
		Title string `json:"title"`
	}

	rec, env := do(t, h, http.MethodGet, "/api/v1/products", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	all := decodeData[list](t, env)
	assert.Equal(t, 12, all.Count)
	assert.Equal(t, "Shop All", all.Title)

	_, env = do(t, h, http.MethodGet, "/api/v1/products?sort=price-low", "", "")
	sorted := decodeData[list](t, env)
	ids := make([]int, 0, len(sorted.Products))
	for _, p := range sorted.Products {
		ids = append(ids, p.ID)
	}
	assert.Equal(t, []int{8, 2, 5, 9, 7, 12, 11, 3, 1, 6, 10, 4}, ids)

	_, env = do(t, h, http.MethodGet, "/api/v1/products?filter=new", "", "")
	fresh := decodeData[list](t, env)
	assert.Equal(t, 2, fresh.Count)
	assert.Equal(t, "New Arrivals", fresh.Title)

	// Unknown sorts and prices fall back to defaults instead of failing.
	rec, env = do(t, h, http.MethodGet, "/api/v1/products?sort=random&max_price=abc", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 12, decodeData[list](t, env).Count)

	// A tag no product carries shows nothing under the default heading.
	rec, env = do(t, h, http.MethodGet, "/api/v1/products?filter=bogus", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	unknown := decodeData[list](t, env)
	assert.Zero(t, unknown.Count)
	assert.Equal(t, "Shop All", unknown.Title)
}

func TestListProductsIsCached(t *testing.T) {
	srv, h, _ := testServer(t, testConfig())

	do(t, h, http.MethodGet, "/api/v1/products?category=Outerwear&sort=price-high", "", "")
	do(t, h, http.MethodGet, "/api/v1/products?sort=price-high&category=Outerwear", "", "")

	stats := srv.Cache().GetStats()
	assert.Equal(t, 1, stats.ItemCount)
	assert.Equal(t, int64(1), stats.Hits)
}

func TestGetProduct(t *testing.T) {
	_, h, _ := testServer(t, testConfig())

	rec, env := do(t, h, http.MethodGet, "/api/v1/products/7", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	p := decodeData[map[string]any](t, env)
	assert.Equal(t, "Slim Fit Denim", p["name"])
	assert.Equal(t, "₹119", p["formatted_price"])
	assert.Equal(t, false, p["in_wishlist"])
	assert.NotEmpty(t, p["gallery"])

	rec, env = do(t, h, http.MethodGet, "/api/v1/products/99", "", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "NOT_FOUND", env.Error.Code)

	rec, env = do(t, h, http.MethodGet, "/api/v1/products/seven", "", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "BAD_REQUEST", env.Error.Code)
}

func TestFacetsAndSearch(t *testing.T) {
	_, h, _ := testServer(t, testConfig())

	_, env := do(t, h, http.MethodGet, "/api/v1/facets", "", "")
	facets := decodeData[struct {
		Facets []struct {
			Name string `json:"name"`
		} `json:"facets"`
		Price struct {
			Min float64 `json:"min"`
			Max float64 `json:"max"`
		} `json:"price"`
	}](t, env)
	require.Len(t, facets.Facets, 4)
	assert.Equal(t, 59.0, facets.Price.Min)
	assert.Equal(t, 349.0, facets.Price.Max)

	type result struct {
		Products []struct {
			ID int `json:"id"`
		} `json:"products"`
		Default   bool `json:"default"`
		NoResults bool `json:"no_results"`
	}

	_, env = do(t, h, http.MethodGet, "/api/v1/search?q=JACKET", "", "")
	jackets := decodeData[result](t, env)
	require.Len(t, jackets.Products, 2)
	assert.Equal(t, 4, jackets.Products[0].ID)
	assert.False(t, jackets.Default)

	_, env = do(t, h, http.MethodGet, "/api/v1/search?q=", "", "")
	picks := decodeData[result](t, env)
	assert.Len(t, picks.Products, 6)
	assert.True(t, picks.Default)

	_, env = do(t, h, http.MethodGet, "/api/v1/search?q=zzzz", "", "")
	none := decodeData[result](t, env)
	assert.Empty(t, none.Products)
	assert.True(t, none.NoResults)
}

func TestCartFlow(t *testing.T) {
	_, h, medium := testServer(t, testConfig())

	rec, env := do(t, h, http.MethodPost, "/api/v1/cart", "alice", `{"product_id":1,"size":"M","color":"Black"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	summary := decodeData[cartSummary](t, env)
	assert.Equal(t, 1, summary.Count)
	assert.Equal(t, 189.0, summary.Total)

	// Same variant merges, quantity given as a string id still resolves.
	_, env = do(t, h, http.MethodPost, "/api/v1/cart", "alice", `{"product_id":"1","size":"M","color":"Black","qty":2}`)
	summary = decodeData[cartSummary](t, env)
	require.Len(t, summary.Items, 1)
	assert.Equal(t, 3, summary.Items[0].Qty)
	assert.Equal(t, 567.0, summary.Total)

	_, env = do(t, h, http.MethodPost, "/api/v1/cart", "alice", `{"product_id":2,"size":"S","color":"White"}`)
	summary = decodeData[cartSummary](t, env)
	assert.Len(t, summary.Items, 2)
	assert.Equal(t, 4, summary.Count)

	assert.Contains(t, medium.Keys(), "alice:elev_cart")

	// Another session sees its own empty cart.
	_, env = do(t, h, http.MethodGet, "/api/v1/cart", "bob", "")
	assert.Equal(t, 0, decodeData[cartSummary](t, env).Count)

	rec, env = do(t, h, http.MethodDelete, "/api/v1/cart/items/0", "alice", "")
	require.Equal(t, http.StatusOK, rec.Code)
	summary = decodeData[cartSummary](t, env)
	require.Len(t, summary.Items, 1)
	assert.Equal(t, "Essential White Tee", summary.Items[0].Name)

	rec, env = do(t, h, http.MethodDelete, "/api/v1/cart/items/5", "alice", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "NOT_FOUND", env.Error.Code)

	rec, _ = do(t, h, http.MethodDelete, "/api/v1/cart/items/first", "alice", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, env = do(t, h, http.MethodDelete, "/api/v1/cart", "alice", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 0, decodeData[cartSummary](t, env).Count)
}

func TestAddToCartValidation(t *testing.T) {
	_, h, _ := testServer(t, testConfig())

	tests := []struct {
		name string
		body string
		want int
	}{
		{"quantity too large", `{"product_id":1,"qty":11}`, http.StatusBadRequest},
		{"quantity zero", `{"product_id":1,"qty":0}`, http.StatusBadRequest},
		{"size not offered", `{"product_id":1,"size":"XXS"}`, http.StatusBadRequest},
		{"color not offered", `{"product_id":1,"color":"Purple"}`, http.StatusBadRequest},
		{"unknown product", `{"product_id":99}`, http.StatusNotFound},
		{"missing product", `{"size":"M"}`, http.StatusBadRequest},
		{"malformed body", `{"product_id":`, http.StatusBadRequest},
		{"unknown field", `{"product_id":1,"price":1}`, http.StatusBadRequest},
		{"empty body", ``, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, env := do(t, h, http.MethodPost, "/api/v1/cart", "alice", tt.body)
			assert.Equal(t, tt.want, rec.Code, rec.Body.String())
			require.NotNil(t, env.Error)
		})
	}

	_, env := do(t, h, http.MethodGet, "/api/v1/cart", "alice", "")
	assert.Equal(t, 0, decodeData[cartSummary](t, env).Count)
}

func TestWishlistFlow(t *testing.T) {
	_, h, _ := testServer(t, testConfig())

	rec, env := do(t, h, http.MethodPost, "/api/v1/wishlist", "alice", `{"product_id":6}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.True(t, decodeData[wishlistSummary](t, env).Added)

	rec, env = do(t, h, http.MethodPost, "/api/v1/wishlist", "alice", `{"product_id":6}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	dup := decodeData[wishlistSummary](t, env)
	assert.False(t, dup.Added)
	assert.Equal(t, 1, dup.Count)

	_, env = do(t, h, http.MethodGet, "/api/v1/products/6", "alice", "")
	assert.Equal(t, true, decodeData[map[string]any](t, env)["in_wishlist"])

	_, env = do(t, h, http.MethodPost, "/api/v1/wishlist/toggle", "alice", `{"product_id":6}`)
	toggled := decodeData[wishlistSummary](t, env)
	assert.False(t, toggled.Added)
	assert.Equal(t, 0, toggled.Count)

	_, env = do(t, h, http.MethodPost, "/api/v1/wishlist/toggle", "alice", `{"product_id":12}`)
	assert.True(t, decodeData[wishlistSummary](t, env).Added)

	rec, _ = do(t, h, http.MethodDelete, "/api/v1/wishlist/items/3", "alice", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec, env = do(t, h, http.MethodDelete, "/api/v1/wishlist/items/0", "alice", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 0, decodeData[wishlistSummary](t, env).Count)
}

func TestSessionIssued(t *testing.T) {
	_, h, _ := testServer(t, testConfig())

	rec, _ := do(t, h, http.MethodGet, "/api/v1/cart", "", "")
	id := rec.Header().Get(session.Header)
	require.True(t, session.Valid(id))

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, id, cookies[0].Value)
}

func TestUnknownRoute(t *testing.T) {
	_, h, _ := testServer(t, testConfig())

	rec, env := do(t, h, http.MethodGet, "/api/v1/models", "", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "NOT_FOUND", env.Error.Code)
}

func TestAuth(t *testing.T) {
	cfg := testConfig()
	cfg.AuthEnabled = true
	cfg.APIKey = "s3cret"
	_, h, _ := testServer(t, cfg)

	rec, _ := do(t, h, http.MethodGet, "/api/v1/products", "", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec, _ = do(t, h, http.MethodGet, "/api/v1/health", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/products", nil)
	req.Header.Set("X-API-Key", "s3cret")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRateLimit(t *testing.T) {
	cfg := testConfig()
	cfg.RateLimit = 1
	_, h, _ := testServer(t, cfg)

	rec, _ := do(t, h, http.MethodGet, "/api/v1/health", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	rec, _ = do(t, h, http.MethodGet, "/api/v1/health", "", "")
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
}

func TestMetricsAndOpenAPI(t *testing.T) {
	_, h, _ := testServer(t, testConfig())

	rec, _ := do(t, h, http.MethodGet, "/metrics", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "storefront_catalog_products 12")

	rec, _ = do(t, h, http.MethodGet, "/api/v1/openapi.json", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	var doc map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &doc))
	assert.Equal(t, "3.1.0", doc["openapi"])

	rec, _ = do(t, h, http.MethodGet, "/api/v1/openapi.yaml", "", "")
	assert.Equal(t, "application/x-yaml", rec.Header().Get("Content-Type"))
	assert.True(t, bytes.HasPrefix(rec.Body.Bytes(), []byte("openapi:")))
}

func TestStreamDeliversSessionEvents(t *testing.T) {
	srv, h, _ := testServer(t, testConfig())
	ts := httptest.NewServer(h)
	defer ts.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, ts.URL+"/api/v1/updates/stream", nil)
	require.NoError(t, err)
	req.Header.Set(session.Header, "alice")
	resp, err := ts.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, "text/event-stream", resp.Header.Get("Content-Type"))

	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(resp.Body)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
	}()

	waitFor := func(want string) {
		t.Helper()
		for {
			select {
			case line, ok := <-lines:
				require.True(t, ok, "stream closed before %q", want)
				if line == want {
					return
				}
			case <-ctx.Done():
				t.Fatalf("timed out waiting for %q", want)
			}
		}
	}
	waitFor("event: connected")
	require.Eventually(t, func() bool { return srv.SSEBroadcaster().ClientCount() == 1 },
		time.Second, 10*time.Millisecond)

	// A mutation in another session is not delivered; ours is.
	do(t, h, http.MethodPost, "/api/v1/wishlist", "bob", `{"product_id":4}`)
	do(t, h, http.MethodPost, "/api/v1/wishlist", "alice", `{"product_id":6}`)

	waitFor("event: wishlist.added")
	line := <-lines // id
	assert.True(t, strings.HasPrefix(line, "id: "))
	line = <-lines // data
	assert.Contains(t, line, "Navy Bomber Jacket")
	assert.NotContains(t, line, "Heritage Leather Jacket")
	waitFor("event: wishlist.changed")
}

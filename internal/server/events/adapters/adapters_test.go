package adapters_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/agentstation/utc"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/storefront/internal/server/events"
	"github.com/agentstation/storefront/internal/server/events/adapters"
	"github.com/agentstation/storefront/internal/server/session"
	"github.com/agentstation/storefront/internal/server/sse"
	ws "github.com/agentstation/storefront/internal/server/websocket"
	"github.com/agentstation/storefront/pkg/logging"
)

type flushBuffer struct {
	mu     sync.Mutex
	header http.Header
	buf    bytes.Buffer
}

func (f *flushBuffer) Header() http.Header { return f.header }
func (f *flushBuffer) WriteHeader(int)     {}
func (f *flushBuffer) Flush()              {}

func (f *flushBuffer) Write(p []byte) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.buf.Write(p)
}

func (f *flushBuffer) String() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.buf.String()
}

func TestSSESubscriberNumbersEvents(t *testing.T) {
	b := sse.NewBroadcaster(logging.Disabled())
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go b.Run(ctx)

	reqCtx, disconnect := context.WithCancel(session.WithID(context.Background(), "alice"))
	defer disconnect()
	w := &flushBuffer{header: make(http.Header)}
	go b.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil).WithContext(reqCtx))
	require.Eventually(t, func() bool { return b.ClientCount() == 1 }, time.Second, 5*time.Millisecond)

	sub := adapters.NewSSESubscriber(b)
	require.NoError(t, sub.Send(events.Event{Type: events.CartAdded, Session: "alice", Data: "a"}))
	require.NoError(t, sub.Send(events.Event{Type: events.CartChanged, Session: "alice", Data: "b"}))
	require.NoError(t, sub.Send(events.Event{Type: events.CartChanged, Session: "bob", Data: "c"}))
	require.NoError(t, sub.Close())

	require.Eventually(t, func() bool {
		return strings.Contains(w.String(), "event: cart.changed\nid: 2\n")
	}, time.Second, 5*time.Millisecond)
	assert.Contains(t, w.String(), "event: cart.added\nid: 1\ndata: \"a\"\n\n")
	assert.NotContains(t, w.String(), `"c"`)
}

func TestWebSocketSubscriberForwards(t *testing.T) {
	hub := ws.NewHub(logging.Disabled())
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go hub.Run(ctx)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = hub.Serve(websocket.Upgrader{}, w, r, "1", "alice")
	}))
	defer srv.Close()

	conn, resp, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http"), nil)
	require.NoError(t, err)
	defer resp.Body.Close()
	defer conn.Close()
	require.Eventually(t, func() bool { return hub.ClientCount() == 1 }, time.Second, 5*time.Millisecond)

	sub := adapters.NewWebSocketSubscriber(hub)
	now := utc.Now()
	require.NoError(t, sub.Send(events.Event{Type: events.WishlistChanged, Session: "alice", Timestamp: now, Data: map[string]int{"count": 1}}))
	require.NoError(t, sub.Close())

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, data, err := conn.ReadMessage()
	require.NoError(t, err)

	var got struct {
		Type string         `json:"type"`
		Data map[string]int `json:"data"`
	}
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, "wishlist.changed", got.Type)
	assert.Equal(t, 1, got.Data["count"])
}

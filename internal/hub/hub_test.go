package hub

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"Tunedeck/internal/event"
)

func newTestServer(t *testing.T, h *Hub) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h.ServeWS(w, r, r.URL.Query().Get("user"))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func dial(t *testing.T, srv *httptest.Server, userID string) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/?user=" + userID
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func readEvent(t *testing.T, conn *websocket.Conn) event.WsEvent {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var ev event.WsEvent
	require.NoError(t, conn.ReadJSON(&ev))
	return ev
}

func presenceUser(t *testing.T, ev event.WsEvent) string {
	t.Helper()
	var p event.PresencePayload
	require.NoError(t, json.Unmarshal(ev.Payload, &p))
	return p.UserID
}

func waitForOnline(t *testing.T, h *Hub, want int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for h.OnlineCount() != want {
		if time.Now().After(deadline) {
			t.Fatalf("timed out waiting for %d online users, have %d", want, h.OnlineCount())
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestHubBroadcastsPresenceOnline(t *testing.T) {
	h := NewHub(nil, zap.NewNop())
	defer h.Stop()
	srv := newTestServer(t, h)

	alice := dial(t, srv, "alice")
	waitForOnline(t, h, 1)

	bob := dial(t, srv, "bob")
	waitForOnline(t, h, 2)

	// bob's handle is seeded with the users already online
	seed := readEvent(t, bob)
	assert.Equal(t, event.EventPresenceOnline, seed.Event)
	assert.Equal(t, "alice", presenceUser(t, seed))

	// alice hears about bob coming online
	ev := readEvent(t, alice)
	assert.Equal(t, event.EventPresenceOnline, ev.Event)
	assert.Equal(t, "bob", presenceUser(t, ev))

	assert.ElementsMatch(t, []string{"alice", "bob"}, h.Online())
}

func TestHubBroadcastsPresenceOfflineOnLastDisconnect(t *testing.T) {
	h := NewHub(nil, zap.NewNop())
	defer h.Stop()
	srv := newTestServer(t, h)

	alice := dial(t, srv, "alice")
	waitForOnline(t, h, 1)

	bobTab1 := dial(t, srv, "bob")
	bobTab2 := dial(t, srv, "bob")
	waitForOnline(t, h, 2)

	// drain alice's single online broadcast for bob
	ev := readEvent(t, alice)
	require.Equal(t, event.EventPresenceOnline, ev.Event)
	require.Equal(t, "bob", presenceUser(t, ev))

	// closing one of two tabs must not take bob offline
	bobTab1.Close()
	time.Sleep(50 * time.Millisecond)
	assert.True(t, h.presence.IsOnline("bob"))

	bobTab2.Close()
	ev = readEvent(t, alice)
	assert.Equal(t, event.EventPresenceOffline, ev.Event)
	assert.Equal(t, "bob", presenceUser(t, ev))
	waitForOnline(t, h, 1)
}

func TestHubPushToUserReachesAllHandles(t *testing.T) {
	h := NewHub(nil, zap.NewNop())
	defer h.Stop()
	srv := newTestServer(t, h)

	bobTab1 := dial(t, srv, "bob")
	bobTab2 := dial(t, srv, "bob")
	waitForOnline(t, h, 1)

	ev, err := event.New(event.EventMessageNew, map[string]string{"content": "hi"})
	require.NoError(t, err)
	assert.True(t, h.PushToUser("bob", ev))

	for _, conn := range []*websocket.Conn{bobTab1, bobTab2} {
		got := readEvent(t, conn)
		assert.Equal(t, event.EventMessageNew, got.Event)
		assert.JSONEq(t, `{"content":"hi"}`, string(got.Payload))
	}
}

func TestHubPushToOfflineUserReturnsFalse(t *testing.T) {
	h := NewHub(nil, zap.NewNop())
	defer h.Stop()

	ev, err := event.New(event.EventMessageNew, map[string]string{"content": "hi"})
	require.NoError(t, err)
	assert.False(t, h.PushToUser("ghost", ev))
}

func TestOriginChecker(t *testing.T) {
	check := originChecker([]string{"https://app.tunedeck.io"})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	assert.True(t, check(req), "missing origin is allowed")

	req.Header.Set("Origin", "https://app.tunedeck.io")
	assert.True(t, check(req))

	req.Header.Set("Origin", "https://evil.example.com")
	assert.False(t, check(req))

	open := originChecker(nil)
	assert.True(t, open(req), "empty allowlist admits any origin")
}

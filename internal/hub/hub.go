package hub

import (
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"Tunedeck/internal/event"
)

// Hub owns the realtime channel: one registered Client per physical
// connection, presence keyed by user via the Tracker. All map mutations go
// through the run loop; pushes read under RLock.
type Hub struct {
	presence *Tracker
	clients  map[string]*Client

	register   chan *Client
	unregister chan *Client
	mu         sync.RWMutex
	logger     *zap.Logger
	upgrader   websocket.Upgrader

	stop     chan struct{}
	stopOnce sync.Once
}

func NewHub(allowedOrigins []string, logger *zap.Logger) *Hub {
	h := &Hub{
		presence:   NewTracker(),
		clients:    make(map[string]*Client),
		register:   make(chan *Client, 1024),
		unregister: make(chan *Client, 1024),
		logger:     logger,
		stop:       make(chan struct{}),
	}

	h.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     originChecker(allowedOrigins),
	}

	go h.run()
	return h
}

func originChecker(allowed []string) func(*http.Request) bool {
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" || len(allowed) == 0 {
			return true
		}
		for _, a := range allowed {
			if origin == a {
				return true
			}
		}
		return false
	}
}

func (h *Hub) run() {
	for {
		select {
		case <-h.stop:
			return
		case c := <-h.register:
			h.addClient(c)
		case c := <-h.unregister:
			h.removeClient(c)
		}
	}
}

func (h *Hub) addClient(c *Client) {
	h.mu.Lock()
	h.clients[c.ID] = c
	first := h.presence.Connect(c.userID, c.ID)
	h.mu.Unlock()

	onlineUsersGauge.Set(float64(h.presence.CountUsers()))
	openHandlesGauge.Set(float64(h.presence.CountHandles()))

	// Seed the new handle with the current presence set.
	for _, uid := range h.presence.Online() {
		if uid != c.userID {
			c.send(event.NewPresenceOnline(uid))
		}
	}

	if first {
		h.broadcastExcept(c.userID, event.NewPresenceOnline(c.userID))
	}

	h.logger.Debug("client registered",
		zap.String("client_id", c.ID),
		zap.String("user_id", c.userID),
		zap.Bool("first_handle", first),
	)
}

func (h *Hub) removeClient(c *Client) {
	h.mu.Lock()
	if _, ok := h.clients[c.ID]; !ok {
		h.mu.Unlock()
		return
	}
	delete(h.clients, c.ID)
	userID, last := h.presence.Disconnect(c.ID)
	h.mu.Unlock()

	c.Close()

	onlineUsersGauge.Set(float64(h.presence.CountUsers()))
	openHandlesGauge.Set(float64(h.presence.CountHandles()))

	if last {
		h.broadcastExcept(userID, event.NewPresenceOffline(userID))
	}

	h.logger.Debug("client removed",
		zap.String("client_id", c.ID),
		zap.String("user_id", userID),
		zap.Bool("last_handle", last),
	)
}

func (h *Hub) broadcastExcept(exceptUserID string, ev event.WsEvent) {
	h.mu.RLock()
	targets := make([]*Client, 0, len(h.clients))
	for _, c := range h.clients {
		if c.userID != exceptUserID {
			targets = append(targets, c)
		}
	}
	h.mu.RUnlock()

	for _, c := range targets {
		if c.send(ev) {
			pushedEvents.WithLabelValues(ev.Event).Inc()
		}
	}
}

// PushToUser delivers an event to every handle of a user, best effort,
// at most once per handle. Returns false when the user has no active
// connection; the event is then simply not delivered.
func (h *Hub) PushToUser(userID string, ev event.WsEvent) bool {
	h.mu.RLock()
	targets := make([]*Client, 0, 2)
	for _, handleID := range h.presence.Handles(userID) {
		if c, ok := h.clients[handleID]; ok {
			targets = append(targets, c)
		}
	}
	h.mu.RUnlock()

	if len(targets) == 0 {
		return false
	}

	for _, c := range targets {
		if c.send(ev) {
			pushedEvents.WithLabelValues(ev.Event).Inc()
		}
	}
	return true
}

// Online returns the current set of online user identifiers. Used to seed a
// newly connected client's view of presence and the stats endpoint.
func (h *Hub) Online() []string {
	return h.presence.Online()
}

func (h *Hub) OnlineCount() int {
	return h.presence.CountUsers()
}

// ServeWS upgrades the request and registers the connection under the
// already-verified user identifier.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request, userID string) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", zap.Error(err))
		return
	}

	register(userID, conn, h)
}

// Stop terminates the run loop and closes every client connection.
func (h *Hub) Stop() {
	h.stopOnce.Do(func() {
		close(h.stop)

		h.mu.Lock()
		for _, c := range h.clients {
			c.Close()
		}
		h.clients = make(map[string]*Client)
		h.mu.Unlock()
	})
}

package hub

import (
	"context"
	"net"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"Tunedeck/internal/event"
)

var (
	// tuning parameters
	writeWait         = 10 * time.Second    // time allowed to write a message to the peer
	pongWait          = 60 * time.Second    // time allowed to read the next pong from the peer
	pingInterval      = (pongWait * 9) / 10 // send pings with this period
	maxMessageSize    = 4 * 1024            // inbound frames carry no events, keep the limit small
	sendBufSize       = 256                 // per-connection outbound buffer size
	sendTimeout       = 2 * time.Second     // timeout for enqueuing outbound events
	registerTimeout   = 5 * time.Second     // timeout for handle registration
	unregisterTimeout = 5 * time.Second     // timeout for handle unregistration
)

// Client is one physical websocket connection (a presence handle). A user
// may hold several clients at once for multi-tab usage.
type Client struct {
	ID     string
	userID string
	conn   *websocket.Conn
	hub    *Hub
	egress chan event.WsEvent
	logger *zap.Logger

	ctx    context.Context
	cancel context.CancelFunc
	once   sync.Once
}

// register creates a client for an upgraded connection and hands it to the
// hub. Returns nil if the hub did not accept the registration in time.
func register(userID string, conn *websocket.Conn, h *Hub) *Client {
	ctx, cancel := context.WithCancel(context.Background())

	c := &Client{
		ID:     uuid.New().String(),
		userID: userID,
		conn:   conn,
		hub:    h,
		egress: make(chan event.WsEvent, sendBufSize),
		logger: h.logger,
		ctx:    ctx,
		cancel: cancel,
	}

	select {
	case h.register <- c:
		go c.readPump()
		go c.writePump()
		return c
	case <-time.After(registerTimeout):
		c.logger.Warn("client registration timed out", zap.String("user_id", userID))
		cancel()
		conn.Close()
		return nil
	}
}

// readPump drains the connection. The channel has no client-to-server event
// vocabulary; inbound frames are discarded, but the pump must keep reading
// to process control frames and detect the close.
func (c *Client) readPump() {
	defer func() {
		select {
		case c.hub.unregister <- c:
		case <-time.After(unregisterTimeout):
			c.logger.Warn("client unregistration timed out", zap.String("client_id", c.ID))
		}
		c.Close()
	}()

	c.conn.SetReadLimit(int64(maxMessageSize))
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsCloseError(err,
				websocket.CloseNormalClosure,
				websocket.CloseGoingAway,
				websocket.CloseAbnormalClosure,
			) {
				c.logger.Debug("client disconnected", zap.String("client_id", c.ID))
				return
			}
			if ne, ok := err.(net.Error); ok && ne.Timeout() {
				c.logger.Debug("client timed out", zap.String("client_id", c.ID))
				return
			}
			c.logger.Debug("read error", zap.String("client_id", c.ID), zap.Error(err))
			return
		}
		// inbound data frames are ignored
	}
}

func (c *Client) writePump() {
	ticker := time.NewTicker(pingInterval)
	defer func() {
		ticker.Stop()
		c.Close()
		_ = c.conn.Close()
	}()

	for {
		select {
		case <-c.ctx.Done():
			_ = c.conn.WriteMessage(websocket.CloseMessage, nil)
			return
		case ev := <-c.egress:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteJSON(ev); err != nil {
				c.logger.Debug("write error", zap.String("client_id", c.ID), zap.Error(err))
				return
			}
		case <-ticker.C:
			if err := c.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
				return
			}
		}
	}
}

// send enqueues an event for this handle. Delivery is at-most-once: when the
// egress buffer stays full past the timeout the event is dropped.
func (c *Client) send(ev event.WsEvent) bool {
	select {
	case c.egress <- ev:
		return true
	case <-time.After(sendTimeout):
		droppedEvents.Inc()
		c.logger.Warn("egress full, dropping event",
			zap.String("client_id", c.ID),
			zap.String("event", ev.Event),
		)
		return false
	case <-c.ctx.Done():
		return false
	}
}

// Close cancels the client's context, which stops both pumps. The egress
// channel is deliberately never closed so concurrent sends cannot panic; a
// cancelled client simply stops draining it.
func (c *Client) Close() {
	c.once.Do(func() {
		c.cancel()
	})
}

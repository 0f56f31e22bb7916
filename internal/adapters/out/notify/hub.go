package notify

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"production/internal/core/domain/model/alert"

	"github.com/gorilla/websocket"
)

const (
	writeWait = 5 * time.Second

	// sendBuffer is the number of frames queued per client before the client
	// counts as too slow and is disconnected.
	sendBuffer = 64
)

// client is one websocket connection and its outbound queue. Only writePump
// writes to conn.
type client struct {
	conn *websocket.Conn
	send chan []byte
}

// Hub keeps the connected websocket clients and pushes every notified batch
// of alerts to all of them. Clients only listen; anything they send is
// discarded.
type Hub struct {
	logger   *slog.Logger
	upgrader websocket.Upgrader

	mu      sync.Mutex
	clients map[*client]struct{}
}

func NewHub(logger *slog.Logger) *Hub {
	return &Hub{
		logger: logger.With("component", "alert_hub"),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(*http.Request) bool {
				return true
			},
		},
		clients: make(map[*client]struct{}),
	}
}

// ServeHTTP upgrades the request and registers the connection until the
// client goes away.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", "error", err)
		return
	}

	c := &client{conn: conn, send: make(chan []byte, sendBuffer)}
	h.mu.Lock()
	h.clients[c] = struct{}{}
	h.mu.Unlock()
	h.logger.Debug("client connected", "remote", conn.RemoteAddr().String())

	go h.writePump(c)
	go h.readPump(c)
}

// readPump drains incoming frames so close messages are processed.
func (h *Hub) readPump(c *client) {
	defer h.drop(c)
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

// writePump sends queued frames until the queue is closed by drop or Close,
// then closes the connection.
func (h *Hub) writePump(c *client) {
	defer func() {
		_ = c.conn.Close()
	}()

	for frame := range c.send {
		_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := c.conn.WriteMessage(websocket.TextMessage, frame); err != nil {
			h.logger.Warn("websocket write failed", "error", err)
			h.drop(c)
			return
		}
	}

	_ = c.conn.WriteControl(
		websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutdown"),
		time.Now().Add(writeWait),
	)
}

// drop unregisters c and closes its queue. It is safe to call more than once.
func (h *Hub) drop(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.remove(c)
}

// remove requires h.mu.
func (h *Hub) remove(c *client) {
	if _, ok := h.clients[c]; !ok {
		return
	}
	delete(h.clients, c)
	close(c.send)
}

// Clients returns the number of connected clients.
func (h *Hub) Clients() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// Notify implements ports.AlertNotifier. Each alert is queued as its own text
// frame and Notify never waits on the network. A client whose queue is full
// is disconnected.
func (h *Hub) Notify(_ context.Context, alerts []*alert.Alert) {
	frames := make([][]byte, 0, len(alerts))
	for _, a := range alerts {
		frame, err := json.Marshal(newAlertMessage(a))
		if err != nil {
			h.logger.Error("encode alert", "alert_id", a.ID().String(), "error", err)
			continue
		}
		frames = append(frames, frame)
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	for c := range h.clients {
		if !c.enqueue(frames) {
			h.logger.Warn("websocket client too slow, disconnecting", "remote", c.conn.RemoteAddr().String())
			h.remove(c)
		}
	}
}

// enqueue reports false when the queue fills before every frame fits.
func (c *client) enqueue(frames [][]byte) bool {
	for _, frame := range frames {
		select {
		case c.send <- frame:
		default:
			return false
		}
	}
	return true
}

// Close disconnects every client.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()

	for c := range h.clients {
		h.remove(c)
	}
}

package api

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/rmathes/todotrack/internal/events"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10
)

// WSHandler pushes change events to connected WebSocket clients. The feed
// is broadcast-only: clients receive every event and send nothing back.
type WSHandler struct {
	upgrader    websocket.Upgrader
	publisher   events.Publisher
	connections map[string]*wsConnection
	mu          sync.Mutex
	logger      *slog.Logger
}

// wsConnection tracks a single WebSocket connection.
type wsConnection struct {
	id        string
	conn      *websocket.Conn
	eventChan <-chan events.Event
	done      chan struct{}
}

// NewWSHandler creates a new WebSocket handler.
func NewWSHandler(pub events.Publisher, logger *slog.Logger) *WSHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &WSHandler{
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true // local single-user tool
			},
		},
		publisher:   pub,
		connections: make(map[string]*wsConnection),
		logger:      logger,
	}
}

// ServeHTTP handles WebSocket upgrade requests.
func (h *WSHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Error("websocket upgrade failed", "error", err)
		return
	}

	wsConn := &wsConnection{
		id:        uuid.NewString(),
		conn:      conn,
		eventChan: h.publisher.Subscribe(),
		done:      make(chan struct{}),
	}

	h.mu.Lock()
	h.connections[wsConn.id] = wsConn
	h.mu.Unlock()
	h.logger.Debug("websocket client connected", "client", wsConn.id)

	go h.readPump(wsConn)
	go h.writePump(wsConn)
}

// readPump drains client messages so pong handling works, and tears the
// connection down when the peer goes away.
func (h *WSHandler) readPump(c *wsConnection) {
	defer h.drop(c)

	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

// writePump forwards published events to the peer and keeps it alive with
// periodic pings.
func (h *WSHandler) writePump(c *wsConnection) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		h.drop(c)
	}()

	for {
		select {
		case ev, ok := <-c.eventChan:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			payload, err := json.Marshal(ev)
			if err != nil {
				h.logger.Error("marshal event", "error", err)
				continue
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-c.done:
			return
		}
	}
}

// drop unregisters and closes a connection. Safe to call twice.
func (h *WSHandler) drop(c *wsConnection) {
	h.mu.Lock()
	_, registered := h.connections[c.id]
	delete(h.connections, c.id)
	h.mu.Unlock()

	if registered {
		close(c.done)
		h.publisher.Unsubscribe(c.eventChan)
		_ = c.conn.Close()
		h.logger.Debug("websocket client disconnected", "client", c.id)
	}
}

// CloseAll disconnects every client, used during server shutdown.
func (h *WSHandler) CloseAll() {
	h.mu.Lock()
	conns := make([]*wsConnection, 0, len(h.connections))
	for _, c := range h.connections {
		conns = append(conns, c)
	}
	h.mu.Unlock()

	for _, c := range conns {
		h.drop(c)
	}
}

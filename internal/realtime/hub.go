// Package realtime pushes change notifications to connected browsers
// over WebSocket. Events are invalidation signals only: they name the
// collection that changed and clients refetch through the regular API,
// so a dropped connection can never leave a client with data it could
// not have fetched anyway.
package realtime

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/goodnessw/election-api/internal/logger"
)

// Collections that emit change events
const (
	CollectionContestants = "contestants"
	CollectionElections   = "elections"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Origin policy is enforced by the CORS layer; the hub accepts
	// any upgraded connection since events carry no private data
	CheckOrigin: func(r *http.Request) bool { return true },
}

// ChangeEvent is the wire format of an invalidation notification
type ChangeEvent struct {
	Type       string    `json:"type"`
	Collection string    `json:"collection"`
	Timestamp  time.Time `json:"timestamp"`
}

// Hub maintains the set of active clients and broadcasts events to them
type Hub struct {
	clients    map[*client]bool
	register   chan *client
	unregister chan *client
	broadcast  chan []byte
	log        *log.Logger
}

// NewHub creates a hub; call Run in a goroutine to start it
func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*client]bool),
		register:   make(chan *client),
		unregister: make(chan *client),
		broadcast:  make(chan []byte, 16),
		log:        logger.Realtime(),
	}
}

// Run owns the client set. All membership changes and broadcasts go
// through this loop, so no locking is needed anywhere else.
func (h *Hub) Run() {
	for {
		select {
		case c := <-h.register:
			h.clients[c] = true
			h.log.Debug("client connected", "clients", len(h.clients))
		case c := <-h.unregister:
			if _, ok := h.clients[c]; ok {
				delete(h.clients, c)
				close(c.send)
				h.log.Debug("client disconnected", "clients", len(h.clients))
			}
		case message := <-h.broadcast:
			for c := range h.clients {
				select {
				case c.send <- message:
				default:
					// Slow consumer: drop it rather than stall the hub
					delete(h.clients, c)
					close(c.send)
				}
			}
		}
	}
}

// NotifyChange broadcasts an invalidation event for a collection
func (h *Hub) NotifyChange(collection string) {
	event := ChangeEvent{
		Type:       "change",
		Collection: collection,
		Timestamp:  time.Now().UTC(),
	}

	payload, err := json.Marshal(event)
	if err != nil {
		h.log.Error("failed to encode change event", "collection", collection, "error", err)
		return
	}

	h.broadcast <- payload
	h.log.Debug("broadcast change event", "collection", collection)
}

// HandleWebSocket upgrades an HTTP request and attaches the client
func (h *Hub) HandleWebSocket(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.Error("websocket upgrade failed", "remote_addr", c.ClientIP(), "error", err)
		return
	}

	cl := &client{hub: h, conn: conn, send: make(chan []byte, 16)}
	h.register <- cl

	go cl.writePump()
	go cl.readPump()
}

// client is a single WebSocket connection
type client struct {
	hub  *Hub
	conn *websocket.Conn
	send chan []byte
}

// readPump drains inbound frames so ping/pong control messages are
// processed; clients never send application data
func (c *client) readPump() {
	defer func() {
		c.hub.unregister <- c
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			break
		}
	}
}

// writePump forwards broadcast events to the connection and keeps it
// alive with periodic pings
func (c *client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// Package websocket streams catalog change events to WebSocket clients.
package websocket

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/agentstation/coursemap/pkg/constants"
)

// Hub maintains active WebSocket connections and broadcasts messages.
// Registration is synchronous so it keeps working after Run has returned.
type Hub struct {
	clients   map[*Client]bool
	broadcast chan Message
	stopped   bool
	mu        sync.RWMutex
	logger    *zerolog.Logger
}

// NewHub creates a new WebSocket hub.
func NewHub(logger *zerolog.Logger) *Hub {
	return &Hub{
		clients:   make(map[*Client]bool),
		broadcast: make(chan Message, constants.ChannelBufferSize),
		logger:    logger,
	}
}

// Run delivers broadcasts until ctx is cancelled, then closes every client's
// send channel. Clients registered after that are closed immediately.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			h.mu.Lock()
			h.stopped = true
			for client := range h.clients {
				close(client.send)
				delete(h.clients, client)
			}
			h.mu.Unlock()
			h.logger.Info().Msg("WebSocket hub shut down")
			return

		case message := <-h.broadcast:
			h.mu.Lock()
			for client := range h.clients {
				select {
				case client.send <- message:
				default:
					// Slow consumer
					close(client.send)
					delete(h.clients, client)
					h.logger.Warn().Str("client_id", client.id).Msg("WebSocket client buffer full, disconnected")
				}
			}
			h.mu.Unlock()
		}
	}
}

// Register adds a client to the hub. On a stopped hub the client's send
// channel is closed at once, which ends its write pump.
func (h *Hub) Register(client *Client) {
	h.mu.Lock()
	if h.stopped {
		h.mu.Unlock()
		close(client.send)
		h.logger.Debug().Str("client_id", client.id).Msg("WebSocket client rejected, hub stopped")
		return
	}
	h.clients[client] = true
	n := len(h.clients)
	h.mu.Unlock()

	h.logger.Info().
		Str("client_id", client.id).
		Int("total_clients", n).
		Msg("WebSocket client connected")
}

// Unregister removes a client from the hub. It is safe to call more than
// once and after the hub has stopped.
func (h *Hub) Unregister(client *Client) {
	h.mu.Lock()
	_, ok := h.clients[client]
	if ok {
		delete(h.clients, client)
		close(client.send)
	}
	n := len(h.clients)
	h.mu.Unlock()

	if ok {
		h.logger.Info().
			Str("client_id", client.id).
			Int("total_clients", n).
			Msg("WebSocket client disconnected")
	}
}

// Broadcast sends a message to all connected clients. It never blocks.
func (h *Hub) Broadcast(message Message) {
	select {
	case h.broadcast <- message:
	default:
		h.logger.Warn().Msg("Broadcast channel full, message dropped")
	}
}

// ClientCount returns the number of connected clients.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Message represents a WebSocket message.
type Message struct {
	Type      string    `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	Data      any       `json:"data"`
}

// Client represents a WebSocket client connection.
type Client struct {
	id   string
	hub  *Hub
	conn *websocket.Conn
	send chan Message
}

// NewClient creates a new WebSocket client.
func NewClient(id string, hub *Hub, conn *websocket.Conn) *Client {
	return &Client{
		id:   id,
		hub:  hub,
		conn: conn,
		send: make(chan Message, constants.ChannelBufferSize),
	}
}

// ID returns the client identifier.
func (c *Client) ID() string {
	return c.id
}

// ReadPump reads from the connection until it fails, then unregisters the
// client. Inbound messages are discarded; reading keeps pong handling alive.
func (c *Client) ReadPump() {
	defer func() {
		c.hub.Unregister(c)
		_ = c.conn.Close()
	}()

	c.conn.SetReadLimit(constants.WebSocketMaxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(constants.WebSocketPongWait))
	c.conn.SetPongHandler(func(string) error {
		_ = c.conn.SetReadDeadline(time.Now().Add(constants.WebSocketPongWait))
		return nil
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.hub.logger.Error().Err(err).Str("client_id", c.id).Msg("WebSocket read error")
			}
			return
		}
	}
}

// WritePump writes queued messages and periodic pings to the connection.
func (c *Client) WritePump() {
	ticker := time.NewTicker(constants.WebSocketPingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(constants.WebSocketWriteWait))
			if !ok {
				// Hub closed the channel
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			data, err := json.Marshal(message)
			if err != nil {
				c.hub.logger.Error().Err(err).Msg("Failed to marshal WebSocket message")
				continue
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				return
			}

		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(constants.WebSocketWriteWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

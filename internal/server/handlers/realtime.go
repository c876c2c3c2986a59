package handlers

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/agentstation/coursemap/internal/server/events"
	ws "github.com/agentstation/coursemap/internal/server/websocket"
)

// HandleWebSocket handles WebSocket connections at /updates/ws. Each client
// receives a client.connected message followed by every catalog change.
func (h *Handlers) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Error().Err(err).Msg("WebSocket upgrade failed")
		return
	}

	client := ws.NewClient(uuid.New().String(), h.wsHub, conn)
	h.wsHub.Register(client)

	h.wsHub.Broadcast(ws.Message{
		Type:      string(events.ClientConnected),
		Timestamp: time.Now(),
		Data: map[string]any{
			"client_id": client.ID(),
			"message":   "Client connected to coursemap updates",
		},
	})

	go client.WritePump()
	go client.ReadPump()
}

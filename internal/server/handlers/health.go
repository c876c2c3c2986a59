package handlers

import (
	"net/http"

	"github.com/agentstation/coursemap"
	"github.com/agentstation/coursemap/internal/server/response"
	"github.com/agentstation/coursemap/pkg/constants"
)

// HandleIndex handles GET / and GET /index.
func (h *Handlers) HandleIndex(w http.ResponseWriter, _ *http.Request) {
	response.TextOK(w, constants.MsgWelcome)
}

// HandleHealth handles GET /health (liveness).
func (h *Handlers) HandleHealth(w http.ResponseWriter, _ *http.Request) {
	response.OK(w, map[string]any{
		"status":  "healthy",
		"service": "coursemap-api",
		"version": h.app.Version(),
	})
}

// HandleReady handles GET /ready. It answers 503 until the service is Ready.
func (h *Handlers) HandleReady(w http.ResponseWriter, _ *http.Request) {
	cm, err := h.app.Coursemap()
	if err != nil {
		response.ServiceUnavailable(w, "Coursemap service not configured")
		return
	}

	state := cm.State()
	if state != coursemap.StateReady {
		response.JSON(w, http.StatusServiceUnavailable, response.Response{
			Data: map[string]any{"state": state.String()},
			Error: &response.Error{
				Code:    "SERVICE_UNAVAILABLE",
				Message: "Service unavailable",
				Details: "Catalog not available",
			},
		})
		return
	}

	cat, err := cm.Catalog()
	if err != nil {
		response.ServiceUnavailable(w, "Catalog not available")
		return
	}

	response.OK(w, map[string]any{
		"status":      "ready",
		"state":       state.String(),
		"departments": cat.Len(),
		"revision":    cat.Revision(),
		"cache": map[string]any{
			"enabled": h.cache.Enabled(),
			"items":   h.cache.ItemCount(),
		},
		"websocket_clients": h.wsHub.ClientCount(),
	})
}

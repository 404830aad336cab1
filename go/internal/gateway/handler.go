package gateway

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog/log"
)

// Handler handles websocket upgrade requests.
type Handler struct {
	hub *Hub
}

// NewHandler creates a websocket handler.
func NewHandler(hub *Hub) *Handler {
	return &Handler{hub: hub}
}

// HandleSubscribe upgrades the connection and subscribes it to the
// broadcast channel. A display name may be passed for logging; there is
// no authentication.
func (h *Handler) HandleSubscribe(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("name")
	if name == "" {
		name = "anonymous"
	}

	if err := h.hub.Upgrade(w, r, name); err != nil {
		log.Error().
			Err(err).
			Str("name", name).
			Msg("failed to upgrade websocket connection")
		http.Error(w, "failed to upgrade connection", http.StatusInternalServerError)
		return
	}
}

// HandleStats returns statistics about active connections.
func (h *Handler) HandleStats(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(h.hub.Stats()); err != nil {
		log.Error().Err(err).Msg("failed to write stats response")
	}
}

// RegisterRoutes registers websocket routes with an HTTP mux.
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/ws", h.HandleSubscribe)
	mux.HandleFunc("/ws/stats", h.HandleStats)
}

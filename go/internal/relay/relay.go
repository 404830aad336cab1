// Package relay implements the stateless HTTP bridge between clients
// and the broadcast channel: POST /api/pusher takes a full game state
// snapshot and publishes it for fan-out. The relay holds no state.
package relay

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/mkobayashi/planning-poker/go/internal/models"
)

// Publisher publishes a payload on a broadcast channel. *nats.Conn
// satisfies this.
type Publisher interface {
	Publish(subject string, data []byte) error
}

// Handler serves the relay endpoint.
type Handler struct {
	publisher Publisher
	channel   string
}

// NewHandler creates a relay handler publishing on the given channel.
func NewHandler(publisher Publisher, channel string) *Handler {
	return &Handler{
		publisher: publisher,
		channel:   channel,
	}
}

type response struct {
	Message string `json:"message"`
}

// HandleTrigger handles POST /api/pusher. The request body carries the
// event name and the full snapshot; a successful call broadcasts the
// envelope on the fixed channel.
func (h *Handler) HandleTrigger(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, response{Message: "Method not allowed"})
		return
	}

	var req models.TriggerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error().Err(err).Msg("failed to decode trigger request")
		writeJSON(w, http.StatusBadRequest, response{Message: "Invalid request body"})
		return
	}

	envelope := models.Envelope{
		Event: req.Event,
		Data:  models.EventData{GameState: req.GameState},
	}
	data, err := json.Marshal(envelope)
	if err != nil {
		log.Error().Err(err).Msg("failed to marshal envelope")
		writeJSON(w, http.StatusInternalServerError, response{Message: "Internal server error"})
		return
	}

	if err := h.publisher.Publish(h.channel, data); err != nil {
		log.Error().Err(err).Str("channel", h.channel).Msg("failed to publish event")
		writeJSON(w, http.StatusInternalServerError, response{Message: "Internal server error"})
		return
	}

	log.Debug().
		Str("event", req.Event).
		Str("channel", h.channel).
		Int("players", len(req.GameState.Players)).
		Msg("event triggered")

	writeJSON(w, http.StatusOK, response{Message: "イベントがトリガーされました"})
}

// RegisterRoutes registers the relay route with an HTTP mux.
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/api/pusher", h.HandleTrigger)
}

func writeJSON(w http.ResponseWriter, status int, body response) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Error().Err(err).Msg("failed to write response")
	}
}

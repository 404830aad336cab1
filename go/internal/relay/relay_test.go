package relay

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mkobayashi/planning-poker/go/internal/models"
)

type fakePublisher struct {
	subject string
	data    []byte
	err     error
}

func (f *fakePublisher) Publish(subject string, data []byte) error {
	f.subject = subject
	f.data = data
	return f.err
}

func triggerBody(t *testing.T) *bytes.Buffer {
	t.Helper()
	req := models.TriggerRequest{
		Event: models.EventGameStateUpdated,
		GameState: models.GameState{
			Players: []models.Player{
				{ID: 1, Name: "プレイヤー1", Vote: models.NumericVote(5)},
				{ID: 2, Name: "プレイヤー 2", Vote: models.UnknownVote()},
			},
			UserStory:      "estimate the login flow",
			ShowResults:    true,
			RoundingMethod: models.RoundingStandard,
		},
	}
	data, err := json.Marshal(req)
	require.NoError(t, err)
	return bytes.NewBuffer(data)
}

func TestHandleTriggerPublishesEnvelope(t *testing.T) {
	pub := &fakePublisher{}
	handler := NewHandler(pub, models.ChannelName)

	r := httptest.NewRequest(http.MethodPost, "/api/pusher", triggerBody(t))
	w := httptest.NewRecorder()
	handler.HandleTrigger(w, r)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, models.ChannelName, pub.subject)

	var envelope models.Envelope
	require.NoError(t, json.Unmarshal(pub.data, &envelope))
	assert.Equal(t, models.EventGameStateUpdated, envelope.Event)
	require.Len(t, envelope.Data.GameState.Players, 2)
	assert.Equal(t, "estimate the login flow", envelope.Data.GameState.UserStory)
	assert.True(t, envelope.Data.GameState.ShowResults)
	require.NotNil(t, envelope.Data.GameState.Players[1].Vote)
	assert.True(t, envelope.Data.GameState.Players[1].Vote.Unknown)
}

func TestHandleTriggerMethodNotAllowed(t *testing.T) {
	for _, method := range []string{http.MethodGet, http.MethodPut, http.MethodDelete} {
		t.Run(method, func(t *testing.T) {
			pub := &fakePublisher{}
			handler := NewHandler(pub, models.ChannelName)

			r := httptest.NewRequest(method, "/api/pusher", nil)
			w := httptest.NewRecorder()
			handler.HandleTrigger(w, r)

			assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
			assert.Empty(t, pub.data, "nothing should be published")
		})
	}
}

func TestHandleTriggerInvalidBody(t *testing.T) {
	pub := &fakePublisher{}
	handler := NewHandler(pub, models.ChannelName)

	r := httptest.NewRequest(http.MethodPost, "/api/pusher", bytes.NewBufferString("{not json"))
	w := httptest.NewRecorder()
	handler.HandleTrigger(w, r)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Empty(t, pub.data)
}

func TestHandleTriggerPublishFailure(t *testing.T) {
	pub := &fakePublisher{err: errors.New("broker down")}
	handler := NewHandler(pub, models.ChannelName)

	r := httptest.NewRequest(http.MethodPost, "/api/pusher", triggerBody(t))
	w := httptest.NewRecorder()
	handler.HandleTrigger(w, r)

	assert.Equal(t, http.StatusInternalServerError, w.Code)

	var resp struct {
		Message string `json:"message"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Internal server error", resp.Message)
}

func TestNewConfigFromEnv(t *testing.T) {
	t.Setenv("PUSHER_APP_ID", "1890667")
	t.Setenv("PUSHER_KEY", "test-key")
	t.Setenv("NATS_URL", "nats://broker:4222")
	t.Setenv("CHANNEL_NAME", "")

	cfg := NewConfigFromEnv()
	assert.Equal(t, "1890667", cfg.AppID)
	assert.Equal(t, "test-key", cfg.Key)
	assert.Equal(t, "nats://broker:4222", cfg.NATSURL)
	assert.Equal(t, "planning-poker-channel", cfg.Channel, "empty env falls back to default")
}

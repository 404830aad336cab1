// Package statesync keeps a client's session state aligned with the shared
// channel: every local mutation is pushed as a full snapshot through
// the relay, and every received broadcast overwrites local state
// unconditionally. Last write observed wins; there is no merging,
// versioning or echo suppression.
package statesync

import (
	"context"
	"encoding/json"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/mkobayashi/planning-poker/go/internal/game"
	"github.com/mkobayashi/planning-poker/go/internal/mirror"
	"github.com/mkobayashi/planning-poker/go/internal/models"
)

// Synchronizer wires the state container to the relay and the
// broadcast channel.
type Synchronizer struct {
	app    *game.App
	client *Client
	cache  mirror.Mirror
	wsURL  string

	conn    *websocket.Conn
	onApply func(models.GameState)
}

// New creates a synchronizer. wsURL is the gateway subscription
// endpoint (ws://host/ws).
func New(app *game.App, client *Client, cache mirror.Mirror, wsURL string) *Synchronizer {
	return &Synchronizer{
		app:    app,
		client: client,
		cache:  cache,
		wsURL:  wsURL,
	}
}

// OnApply registers a callback invoked after a received snapshot has
// been applied. Set before Subscribe.
func (s *Synchronizer) OnApply(fn func(models.GameState)) {
	s.onApply = fn
}

// Restore loads the cached roster and story into the session. Called
// at startup, before the subscription is established. Best effort: a
// missing or unreadable cache leaves the defaults in place.
func (s *Synchronizer) Restore(ctx context.Context) {
	players, err := s.cache.LoadPlayers(ctx)
	if err != nil {
		if err != mirror.ErrNoSavedState {
			log.Warn().Err(err).Msg("failed to restore players from cache")
		}
		players = nil
	}

	story, err := s.cache.LoadUserStory(ctx)
	if err != nil {
		if err != mirror.ErrNoSavedState {
			log.Warn().Err(err).Msg("failed to restore user story from cache")
		}
		story = s.app.UserStory()
	}

	if players == nil {
		s.app.SetUserStory(story)
		return
	}
	if len(players) == 0 {
		// An empty cached roster would violate the one-player minimum.
		s.app.SetUserStory(story)
		return
	}

	s.app.Apply(models.GameState{
		Players:        players,
		UserStory:      story,
		ShowResults:    s.app.ShowResults(),
		RoundingMethod: s.app.RoundingMethod(),
	})
	log.Debug().Int("players", len(players)).Msg("state restored from cache")
}

// Subscribe dials the gateway and starts applying broadcasts. There is
// no reconnect: a dropped subscription stays dropped.
func (s *Synchronizer) Subscribe(ctx context.Context) error {
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, s.wsURL, nil)
	if err != nil {
		return err
	}
	s.conn = conn

	go s.readLoop()

	log.Info().Str("url", s.wsURL).Msg("subscribed to broadcast channel")
	return nil
}

func (s *Synchronizer) readLoop() {
	for {
		_, data, err := s.conn.ReadMessage()
		if err != nil {
			log.Error().Err(err).Msg("broadcast subscription closed")
			return
		}

		var envelope models.Envelope
		if err := json.Unmarshal(data, &envelope); err != nil {
			log.Error().Err(err).Msg("failed to decode broadcast")
			continue
		}
		if envelope.Event != models.EventGameStateUpdated {
			continue
		}

		// Unconditional clobber, self-originated echoes included.
		s.app.Apply(envelope.Data.GameState)
		s.saveToCache(context.Background(), envelope.Data.GameState)

		if s.onApply != nil {
			s.onApply(envelope.Data.GameState)
		}
	}
}

// PublishState snapshots the session and submits it to the relay.
// Fire-and-forget: the local mutation already happened, a failed
// submission is logged and never retried or rolled back.
func (s *Synchronizer) PublishState(ctx context.Context) {
	snapshot := s.app.Snapshot()
	s.saveToCache(ctx, snapshot)

	if err := s.client.TriggerGameState(ctx, models.EventGameStateUpdated, snapshot); err != nil {
		log.Error().Err(err).Msg("failed to submit game state")
	}
}

func (s *Synchronizer) saveToCache(ctx context.Context, state models.GameState) {
	if err := s.cache.SavePlayers(ctx, state.Players); err != nil {
		log.Warn().Err(err).Msg("failed to cache players")
	}
	if err := s.cache.SaveUserStory(ctx, state.UserStory); err != nil {
		log.Warn().Err(err).Msg("failed to cache user story")
	}
}

// Close tears down the subscription.
func (s *Synchronizer) Close() {
	if s.conn != nil {
		s.conn.Close()
	}
}

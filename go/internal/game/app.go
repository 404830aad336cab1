// Package game owns the session state: the player roster, the user
// story text, the reveal flag and the active rounding method. All
// mutations go through the App so the caller can snapshot and broadcast
// after each one.
package game

import (
	"fmt"
	"strings"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/mkobayashi/planning-poker/go/internal/models"
)

const defaultPlayerName = "プレイヤー1"

// App is the state container for one planning poker session.
//
// Selection and per-player edit mode are view concerns: they are held
// here so the view stays stateless, but they are never part of a
// snapshot and never leave the process.
type App struct {
	mu             sync.RWMutex
	players        []models.Player
	userStory      string
	showResults    bool
	roundingMethod models.RoundingMethod
	currentPlayer  int
	editing        map[int]bool
}

// NewApp creates a session with the single default player selected.
func NewApp() *App {
	return &App{
		players: []models.Player{
			{ID: 1, Name: defaultPlayerName},
		},
		roundingMethod: models.RoundingStandard,
		currentPlayer:  1,
		editing:        make(map[int]bool),
	}
}

// AddPlayer appends a participant with a fresh identity (max existing
// id plus one, never recycled) and a templated name.
func (a *App) AddPlayer() models.Player {
	a.mu.Lock()
	defer a.mu.Unlock()

	newID := 0
	for _, p := range a.players {
		if p.ID > newID {
			newID = p.ID
		}
	}
	newID++

	player := models.Player{
		ID:   newID,
		Name: fmt.Sprintf("プレイヤー %d", newID),
	}
	a.players = append(a.players, player)

	log.Debug().Int("player_id", newID).Msg("player added")
	return player
}

// RemovePlayer drops a participant. The request is silently ignored
// when only one player remains. If the removed player was selected the
// selection falls back to the first remaining player. Returns whether
// the roster changed.
func (a *App) RemovePlayer(id int) bool {
	a.mu.Lock()
	defer a.mu.Unlock()

	if len(a.players) <= 1 {
		log.Debug().Int("player_id", id).Msg("refusing to remove last player")
		return false
	}

	remaining := make([]models.Player, 0, len(a.players)-1)
	removed := false
	for _, p := range a.players {
		if p.ID == id {
			removed = true
			continue
		}
		remaining = append(remaining, p)
	}
	if !removed {
		return false
	}

	a.players = remaining
	delete(a.editing, id)
	if a.currentPlayer == id {
		a.currentPlayer = a.players[0].ID
	}

	log.Debug().Int("player_id", id).Msg("player removed")
	return true
}

// RenamePlayer sets a player's display name. The input is trimmed; an
// empty result cancels the rename, leaving the prior name. Either way
// the player leaves edit mode. Returns whether the name changed.
func (a *App) RenamePlayer(id int, name string) bool {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.editing[id] = false

	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return false
	}

	for i := range a.players {
		if a.players[i].ID == id {
			a.players[i].Name = trimmed
			return true
		}
	}
	return false
}

// ToggleEdit flips a player's edit-mode flag. Local-only: edit mode is
// never synchronized.
func (a *App) ToggleEdit(id int) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.editing[id] = !a.editing[id]
}

// IsEditing reports a player's edit-mode flag.
func (a *App) IsEditing(id int) bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.editing[id]
}

// SelectPlayer changes which participant the local view is acting as.
// Local-only, no broadcast.
func (a *App) SelectPlayer(id int) {
	a.mu.Lock()
	defer a.mu.Unlock()
	for _, p := range a.players {
		if p.ID == id {
			a.currentPlayer = id
			return
		}
	}
}

// CurrentPlayer returns the id of the locally selected participant.
func (a *App) CurrentPlayer() int {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.currentPlayer
}

// CastVote records a card for the selected participant.
func (a *App) CastVote(vote *models.Vote) bool {
	a.mu.Lock()
	defer a.mu.Unlock()

	for i := range a.players {
		if a.players[i].ID == a.currentPlayer {
			a.players[i].Vote = vote
			return true
		}
	}
	return false
}

// SetUserStory replaces the free-text story description.
func (a *App) SetUserStory(story string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.userStory = story
}

// ToggleShowResults flips the reveal flag.
func (a *App) ToggleShowResults() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.showResults = !a.showResults
	return a.showResults
}

// SetRoundingMethod switches the active rounding policy.
func (a *App) SetRoundingMethod(method models.RoundingMethod) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.roundingMethod = method
}

// ResetVotes clears every vote, hides results and clears the story.
func (a *App) ResetVotes() {
	a.mu.Lock()
	defer a.mu.Unlock()

	for i := range a.players {
		a.players[i].Vote = nil
	}
	a.showResults = false
	a.userStory = ""

	log.Debug().Msg("votes reset")
}

// Players returns a copy of the roster in display order.
func (a *App) Players() []models.Player {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return clonePlayers(a.players)
}

// UserStory returns the story text.
func (a *App) UserStory() string {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.userStory
}

// ShowResults reports the reveal flag.
func (a *App) ShowResults() bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.showResults
}

// RoundingMethod returns the active policy identifier.
func (a *App) RoundingMethod() models.RoundingMethod {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.roundingMethod
}

// Snapshot builds the full synchronized state. Selection and edit mode
// are excluded.
func (a *App) Snapshot() models.GameState {
	a.mu.RLock()
	defer a.mu.RUnlock()

	return models.GameState{
		Players:        clonePlayers(a.players),
		UserStory:      a.userStory,
		ShowResults:    a.showResults,
		RoundingMethod: a.roundingMethod,
	}
}

// Apply overwrites the session with a received snapshot. No merge, no
// version check: the last broadcast processed wins. A selection
// pointing at a player that no longer exists falls back to the first
// player of the new roster.
func (a *App) Apply(state models.GameState) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.players = clonePlayers(state.Players)
	a.userStory = state.UserStory
	a.showResults = state.ShowResults
	a.roundingMethod = state.RoundingMethod

	selected := false
	for _, p := range a.players {
		if p.ID == a.currentPlayer {
			selected = true
			break
		}
	}
	if !selected && len(a.players) > 0 {
		a.currentPlayer = a.players[0].ID
	}
}

func clonePlayers(players []models.Player) []models.Player {
	out := make([]models.Player, len(players))
	for i, p := range players {
		out[i] = p
		if p.Vote != nil {
			vote := *p.Vote
			out[i].Vote = &vote
		}
	}
	return out
}

// Package mirror is the best-effort local persistence layer: it caches
// the roster and story text so a restarted client comes back with the
// state it last saw. There is no expiration and no cross-client effect.
package mirror

import (
	"context"
	"errors"

	"github.com/mkobayashi/planning-poker/go/internal/models"
)

// ErrNoSavedState is returned when a key has never been written.
var ErrNoSavedState = errors.New("no saved state")

// Mirror persists and restores the locally cached session fields.
type Mirror interface {
	// SavePlayers writes the roster.
	SavePlayers(ctx context.Context, players []models.Player) error

	// LoadPlayers restores the roster, or ErrNoSavedState.
	LoadPlayers(ctx context.Context) ([]models.Player, error)

	// SaveUserStory writes the story text.
	SaveUserStory(ctx context.Context, story string) error

	// LoadUserStory restores the story text, or ErrNoSavedState.
	LoadUserStory(ctx context.Context) (string, error)
}

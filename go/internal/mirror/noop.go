package mirror

import (
	"context"

	"github.com/mkobayashi/planning-poker/go/internal/models"
)

// noopMirror is used when no cache is configured. Saves are discarded
// and loads report no saved state.
type noopMirror struct{}

// NewNoop returns a mirror that persists nothing.
func NewNoop() Mirror {
	return noopMirror{}
}

func (noopMirror) SavePlayers(ctx context.Context, players []models.Player) error {
	return nil
}

func (noopMirror) LoadPlayers(ctx context.Context) ([]models.Player, error) {
	return nil, ErrNoSavedState
}

func (noopMirror) SaveUserStory(ctx context.Context, story string) error {
	return nil
}

func (noopMirror) LoadUserStory(ctx context.Context) (string, error) {
	return "", ErrNoSavedState
}

// Package tui implements the terminal view: roster, voting grid,
// results and story input. It dispatches user intents into the game
// state container and asks the synchronizer to publish after every
// shared mutation.
package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/mkobayashi/planning-poker/go/internal/game"
	"github.com/mkobayashi/planning-poker/go/internal/models"
)

// Publisher pushes the current session state to the relay.
type Publisher interface {
	PublishState(ctx context.Context)
}

type mode int

const (
	modeNormal mode = iota
	modeEditName
	modeEditStory
)

// StateAppliedMsg is sent into the program when the synchronizer has
// applied a received broadcast.
type StateAppliedMsg struct {
	State models.GameState
}

type publishedMsg struct{}

// Model is the Bubble Tea model for the session view.
type Model struct {
	app       *game.App
	publisher Publisher

	mode       mode
	input      textinput.Model
	editingID  int
	cardCursor int
	width      int
}

// cards returns the deck in display order: the numeric values plus the
// "?" card at the end.
func cards() []*models.Vote {
	out := make([]*models.Vote, 0, len(models.CardValues)+1)
	for _, v := range models.CardValues {
		out = append(out, models.NumericVote(v))
	}
	return append(out, models.UnknownVote())
}

// New creates the view model.
func New(app *game.App, publisher Publisher) Model {
	input := textinput.New()
	input.CharLimit = 120

	return Model{
		app:       app,
		publisher: publisher,
		input:     input,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// publishCmd submits the snapshot off the render loop. Fire-and-forget,
// failures never reach the view.
func (m Model) publishCmd() tea.Cmd {
	publisher := m.publisher
	return func() tea.Msg {
		publisher.PublishState(context.Background())
		return publishedMsg{}
	}
}

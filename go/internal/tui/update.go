package tui

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/mkobayashi/planning-poker/go/internal/models"
	"github.com/mkobayashi/planning-poker/go/internal/rounding"
)

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case StateAppliedMsg:
		// State already lives in the app container; a re-render is all
		// that is needed. A vanished selection was handled by Apply.
		if m.mode == modeEditName && !m.app.IsEditing(m.editingID) {
			m.mode = modeNormal
			m.input.Blur()
		}
		return m, nil

	case publishedMsg:
		return m, nil

	case tea.KeyMsg:
		switch m.mode {
		case modeEditName:
			return m.updateEditName(msg)
		case modeEditStory:
			return m.updateEditStory(msg)
		default:
			return m.updateNormal(msg)
		}
	}

	return m, nil
}

func (m Model) updateNormal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit

	case "left", "h":
		if m.cardCursor > 0 {
			m.cardCursor--
		}
		return m, nil

	case "right", "l":
		if m.cardCursor < len(cards())-1 {
			m.cardCursor++
		}
		return m, nil

	case "enter", " ":
		if m.app.CastVote(cards()[m.cardCursor]) {
			return m, m.publishCmd()
		}
		return m, nil

	case "tab":
		m.selectNextPlayer()
		return m, nil

	case "a":
		m.app.AddPlayer()
		return m, m.publishCmd()

	case "x":
		if m.app.RemovePlayer(m.app.CurrentPlayer()) {
			return m, m.publishCmd()
		}
		return m, nil

	case "e":
		id := m.app.CurrentPlayer()
		m.app.ToggleEdit(id)
		if !m.app.IsEditing(id) {
			return m, nil
		}
		m.mode = modeEditName
		m.editingID = id
		m.input.Placeholder = "新しい名前"
		m.input.SetValue("")
		m.input.Focus()
		return m, textinput.Blink

	case "s":
		m.mode = modeEditStory
		m.input.Placeholder = "ユーザーストーリー"
		m.input.SetValue(m.app.UserStory())
		m.input.Focus()
		return m, textinput.Blink

	case "r":
		m.app.ToggleShowResults()
		return m, m.publishCmd()

	case "R":
		m.app.ResetVotes()
		return m, m.publishCmd()

	case "m":
		m.cycleRoundingMethod()
		return m, m.publishCmd()
	}

	return m, nil
}

func (m Model) updateEditName(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		changed := m.app.RenamePlayer(m.editingID, m.input.Value())
		m.mode = modeNormal
		m.input.Blur()
		if changed {
			return m, m.publishCmd()
		}
		return m, nil

	case "esc":
		// Same as submitting a blank name: keep the prior name, leave
		// edit mode.
		m.app.RenamePlayer(m.editingID, "")
		m.mode = modeNormal
		m.input.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) updateEditStory(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.app.SetUserStory(m.input.Value())
		m.mode = modeNormal
		m.input.Blur()
		return m, m.publishCmd()

	case "esc":
		m.mode = modeNormal
		m.input.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) selectNextPlayer() {
	players := m.app.Players()
	current := m.app.CurrentPlayer()
	for i, p := range players {
		if p.ID == current {
			m.app.SelectPlayer(players[(i+1)%len(players)].ID)
			return
		}
	}
}

func (m *Model) cycleRoundingMethod() {
	methods := rounding.Methods()
	current := m.app.RoundingMethod()
	for i, method := range methods {
		if method == current {
			m.app.SetRoundingMethod(methods[(i+1)%len(methods)])
			return
		}
	}
	m.app.SetRoundingMethod(models.RoundingStandard)
}

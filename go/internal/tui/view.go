package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/mkobayashi/planning-poker/go/internal/models"
	"github.com/mkobayashi/planning-poker/go/internal/rounding"
)

// View implements tea.Model.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("プランニングポーカー"))
	b.WriteString("\n")

	b.WriteString(m.viewStory())
	b.WriteString("\n\n")
	b.WriteString(m.viewRoster())
	b.WriteString("\n")
	b.WriteString(m.viewCards())
	b.WriteString("\n")
	b.WriteString(m.viewResults())

	if m.mode != modeNormal {
		b.WriteString("\n")
		b.WriteString(m.input.View())
	}

	b.WriteString(helpStyle.Render(m.helpLine()))
	return b.String()
}

func (m Model) viewStory() string {
	story := m.app.UserStory()
	if story == "" {
		story = "(未入力)"
	}
	return sectionStyle.Render("ストーリー: ") + story
}

func (m Model) viewRoster() string {
	var b strings.Builder
	b.WriteString(sectionStyle.Render("プレイヤー"))
	b.WriteString("\n")

	current := m.app.CurrentPlayer()
	reveal := m.app.ShowResults()
	for _, p := range m.app.Players() {
		line := fmt.Sprintf("%s  %s", p.Name, voteLabel(p.Vote, reveal))
		if m.app.IsEditing(p.ID) {
			line += " (編集中)"
		}
		if p.ID == current {
			line = selectedStyle.Render("> " + line)
		} else {
			line = "  " + line
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) viewCards() string {
	rendered := make([]string, 0, len(cards()))
	chosen := currentVote(m.app.Players(), m.app.CurrentPlayer())
	for i, card := range cards() {
		label := cardLabel(card)
		style := cardStyle
		if chosen != nil && *chosen == *card {
			style = cardChosenStyle
		}
		if i == m.cardCursor {
			style = cardCursorStyle
		}
		rendered = append(rendered, style.Render(label))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
}

func (m Model) viewResults() string {
	policy, ok := rounding.Lookup(m.app.RoundingMethod())
	name := string(m.app.RoundingMethod())
	if ok {
		name = policy.Name
	}

	if !m.app.ShowResults() {
		return fmt.Sprintf("結果: 非公開 (%s)", name)
	}
	return resultStyle.Render(fmt.Sprintf("平均: %g (%s)", m.app.Average(), name))
}

func (m Model) helpLine() string {
	switch m.mode {
	case modeEditName:
		return "enter: 確定 • esc: キャンセル"
	case modeEditStory:
		return "enter: 確定 • esc: キャンセル"
	default:
		return "←/→: カード選択 • enter: 投票 • tab: プレイヤー切替 • a: 追加 • x: 削除 • e: 名前変更 • s: ストーリー • r: 公開 • R: リセット • m: 丸め方式 • q: 終了"
	}
}

func cardLabel(v *models.Vote) string {
	if v.Unknown {
		return "?"
	}
	return fmt.Sprintf("%d", v.Points)
}

func voteLabel(v *models.Vote, reveal bool) string {
	if v == nil {
		return "未投票"
	}
	if !reveal {
		return "投票済"
	}
	return cardLabel(v)
}

func currentVote(players []models.Player, currentID int) *models.Vote {
	for _, p := range players {
		if p.ID == currentID {
			return p.Vote
		}
	}
	return nil
}

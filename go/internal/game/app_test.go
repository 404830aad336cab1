package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mkobayashi/planning-poker/go/internal/models"
)

func TestNewAppHasDefaultPlayer(t *testing.T) {
	app := NewApp()

	players := app.Players()
	require.Len(t, players, 1)
	assert.Equal(t, 1, players[0].ID)
	assert.Equal(t, "プレイヤー1", players[0].Name)
	assert.Nil(t, players[0].Vote)
	assert.Equal(t, 1, app.CurrentPlayer())
	assert.Equal(t, models.RoundingStandard, app.RoundingMethod())
}

func TestAddPlayerAssignsMaxPlusOne(t *testing.T) {
	app := NewApp()
	app.AddPlayer() // id 2
	app.AddPlayer() // id 3

	require.True(t, app.RemovePlayer(2))

	added := app.AddPlayer()
	assert.Equal(t, 4, added.ID, "ids are never recycled")
	assert.Equal(t, "プレイヤー 4", added.Name)
}

func TestRemoveLastPlayerIsIgnored(t *testing.T) {
	app := NewApp()

	assert.False(t, app.RemovePlayer(1))
	assert.Len(t, app.Players(), 1)
}

func TestRemoveSelectedPlayerFallsBackToFirst(t *testing.T) {
	app := NewApp()
	second := app.AddPlayer()
	app.SelectPlayer(second.ID)

	require.True(t, app.RemovePlayer(second.ID))
	assert.Equal(t, 1, app.CurrentPlayer())
}

func TestRemoveUnknownPlayer(t *testing.T) {
	app := NewApp()
	app.AddPlayer()

	assert.False(t, app.RemovePlayer(99))
	assert.Len(t, app.Players(), 2)
}

func TestRenamePlayer(t *testing.T) {
	app := NewApp()

	require.True(t, app.RenamePlayer(1, "  Alice  "))
	assert.Equal(t, "Alice", app.Players()[0].Name)
}

func TestRenameWithBlankNameCancels(t *testing.T) {
	app := NewApp()
	app.ToggleEdit(1)
	require.True(t, app.IsEditing(1))

	assert.False(t, app.RenamePlayer(1, "   "))
	assert.Equal(t, "プレイヤー1", app.Players()[0].Name, "prior name kept")
	assert.False(t, app.IsEditing(1), "edit mode exited even on cancel")
}

func TestToggleEditIsLocalOnly(t *testing.T) {
	app := NewApp()
	app.ToggleEdit(1)

	snapshot := app.Snapshot()
	require.Len(t, snapshot.Players, 1)
	// The snapshot carries no edit-mode field at all; the flag must not
	// survive a round trip through another client's Apply.
	other := NewApp()
	other.Apply(snapshot)
	assert.False(t, other.IsEditing(1))
}

func TestCastVote(t *testing.T) {
	app := NewApp()
	second := app.AddPlayer()
	app.SelectPlayer(second.ID)

	require.True(t, app.CastVote(models.NumericVote(8)))

	players := app.Players()
	assert.Nil(t, players[0].Vote)
	require.NotNil(t, players[1].Vote)
	assert.Equal(t, 8, players[1].Vote.Points)
}

func TestResetVotes(t *testing.T) {
	app := NewApp()
	app.AddPlayer()
	app.CastVote(models.NumericVote(5))
	app.SetUserStory("decide the API shape")
	app.ToggleShowResults()

	app.ResetVotes()

	for _, p := range app.Players() {
		assert.Nil(t, p.Vote)
	}
	assert.False(t, app.ShowResults())
	assert.Empty(t, app.UserStory())
}

func TestSnapshotIsACopy(t *testing.T) {
	app := NewApp()
	app.CastVote(models.NumericVote(3))

	snapshot := app.Snapshot()
	snapshot.Players[0].Name = "mutated"
	snapshot.Players[0].Vote.Points = 21

	players := app.Players()
	assert.Equal(t, "プレイヤー1", players[0].Name)
	assert.Equal(t, 3, players[0].Vote.Points)
}

func TestApplyClobbersLocalState(t *testing.T) {
	app := NewApp()
	app.SetUserStory("local draft, not yet sent")
	app.CastVote(models.NumericVote(13))

	incoming := models.GameState{
		Players: []models.Player{
			{ID: 1, Name: "Alice", Vote: models.NumericVote(5)},
			{ID: 2, Name: "Bob", Vote: models.UnknownVote()},
		},
		UserStory:      "estimate the login flow",
		ShowResults:    true,
		RoundingMethod: models.RoundingBankers,
	}
	app.Apply(incoming)

	players := app.Players()
	require.Len(t, players, 2)
	assert.Equal(t, "Alice", players[0].Name)
	assert.Equal(t, 5, players[0].Vote.Points)
	assert.True(t, players[1].Vote.Unknown)
	assert.Equal(t, "estimate the login flow", app.UserStory())
	assert.True(t, app.ShowResults())
	assert.Equal(t, models.RoundingBankers, app.RoundingMethod())
}

func TestApplyKeepsSelectionWhenPlayerSurvives(t *testing.T) {
	app := NewApp()
	second := app.AddPlayer()
	app.SelectPlayer(second.ID)

	app.Apply(models.GameState{
		Players: []models.Player{
			{ID: 1, Name: "プレイヤー1"},
			{ID: 2, Name: "プレイヤー 2"},
		},
		RoundingMethod: models.RoundingStandard,
	})
	assert.Equal(t, 2, app.CurrentPlayer())
}

func TestApplyMovesSelectionWhenPlayerGone(t *testing.T) {
	app := NewApp()
	second := app.AddPlayer()
	app.SelectPlayer(second.ID)

	app.Apply(models.GameState{
		Players: []models.Player{
			{ID: 5, Name: "プレイヤー 5"},
		},
		RoundingMethod: models.RoundingStandard,
	})
	assert.Equal(t, 5, app.CurrentPlayer())
}

func TestSelectUnknownPlayerIsIgnored(t *testing.T) {
	app := NewApp()
	app.SelectPlayer(42)
	assert.Equal(t, 1, app.CurrentPlayer())
}

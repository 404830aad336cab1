package mirror

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"

	"github.com/mkobayashi/planning-poker/go/internal/models"
)

type RedisMirrorTestSuite struct {
	suite.Suite
	mr     *miniredis.Miniredis
	client *redis.Client
	mirror Mirror
}

func (s *RedisMirrorTestSuite) SetupTest() {
	// Create a new miniredis server for each test
	mr, err := miniredis.Run()
	s.Require().NoError(err)
	s.mr = mr

	s.client = redis.NewClient(&redis.Options{
		Addr: s.mr.Addr(),
	})

	m, err := NewRedis(&Config{
		RedisClient: s.client,
	})
	s.Require().NoError(err)
	s.mirror = m
}

func (s *RedisMirrorTestSuite) TearDownTest() {
	s.client.Close()
	s.mr.Close()
}

func TestRedisMirrorTestSuite(t *testing.T) {
	suite.Run(t, new(RedisMirrorTestSuite))
}

func (s *RedisMirrorTestSuite) TestSaveAndLoadPlayers() {
	players := []models.Player{
		{ID: 1, Name: "プレイヤー1", Vote: models.NumericVote(5)},
		{ID: 2, Name: "Bob", Vote: models.UnknownVote()},
		{ID: 3, Name: "Carol", Vote: nil},
	}

	err := s.mirror.SavePlayers(context.Background(), players)
	s.Require().NoError(err)

	restored, err := s.mirror.LoadPlayers(context.Background())
	s.Require().NoError(err)
	s.Require().Len(restored, 3)

	s.Equal(1, restored[0].ID)
	s.Equal("プレイヤー1", restored[0].Name)
	s.Require().NotNil(restored[0].Vote)
	s.Equal(5, restored[0].Vote.Points)

	s.Require().NotNil(restored[1].Vote)
	s.True(restored[1].Vote.Unknown)

	s.Nil(restored[2].Vote)
}

func (s *RedisMirrorTestSuite) TestSavePlayersOverwrites() {
	err := s.mirror.SavePlayers(context.Background(), []models.Player{
		{ID: 1, Name: "before"},
	})
	s.Require().NoError(err)

	err = s.mirror.SavePlayers(context.Background(), []models.Player{
		{ID: 1, Name: "after"},
		{ID: 2, Name: "new"},
	})
	s.Require().NoError(err)

	restored, err := s.mirror.LoadPlayers(context.Background())
	s.Require().NoError(err)
	s.Require().Len(restored, 2)
	s.Equal("after", restored[0].Name)
}

func (s *RedisMirrorTestSuite) TestLoadPlayersWithoutSave() {
	_, err := s.mirror.LoadPlayers(context.Background())
	s.Require().Error(err)
	s.Equal(ErrNoSavedState, err)
}

func (s *RedisMirrorTestSuite) TestSaveAndLoadUserStory() {
	err := s.mirror.SaveUserStory(context.Background(), "estimate the login flow")
	s.Require().NoError(err)

	story, err := s.mirror.LoadUserStory(context.Background())
	s.Require().NoError(err)
	s.Equal("estimate the login flow", story)
}

func (s *RedisMirrorTestSuite) TestLoadUserStoryWithoutSave() {
	_, err := s.mirror.LoadUserStory(context.Background())
	s.Require().Error(err)
	s.Equal(ErrNoSavedState, err)
}

func (s *RedisMirrorTestSuite) TestSaveEmptyUserStory() {
	err := s.mirror.SaveUserStory(context.Background(), "cleared")
	s.Require().NoError(err)
	err = s.mirror.SaveUserStory(context.Background(), "")
	s.Require().NoError(err)

	story, err := s.mirror.LoadUserStory(context.Background())
	s.Require().NoError(err)
	s.Equal("", story)
}

func TestNewRedisValidatesConfig(t *testing.T) {
	if _, err := NewRedis(nil); err == nil {
		t.Error("expected error for nil config")
	}
	if _, err := NewRedis(&Config{}); err == nil {
		t.Error("expected error for nil client")
	}
}

func TestNoopMirror(t *testing.T) {
	m := NewNoop()
	ctx := context.Background()

	if err := m.SavePlayers(ctx, []models.Player{{ID: 1}}); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if _, err := m.LoadPlayers(ctx); err != ErrNoSavedState {
		t.Errorf("expected ErrNoSavedState, got %v", err)
	}
	if err := m.SaveUserStory(ctx, "story"); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if _, err := m.LoadUserStory(ctx); err != ErrNoSavedState {
		t.Errorf("expected ErrNoSavedState, got %v", err)
	}
}

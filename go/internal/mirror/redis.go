package mirror

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/mkobayashi/planning-poker/go/internal/models"
)

const (
	playersKey   = "planning-poker:players"
	userStoryKey = "planning-poker:user-story"
)

// Config holds configuration for the Redis mirror.
type Config struct {
	// Redis client
	RedisClient *redis.Client
}

// redisMirror implements Mirror using Redis.
type redisMirror struct {
	client *redis.Client
}

// NewRedis creates a Redis-backed mirror.
func NewRedis(cfg *Config) (*redisMirror, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}
	if cfg.RedisClient == nil {
		return nil, errors.New("redis client cannot be nil")
	}

	// Test connection
	if err := cfg.RedisClient.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &redisMirror{client: cfg.RedisClient}, nil
}

// SavePlayers persists the roster as a JSON array under a single key,
// with no expiration.
func (m *redisMirror) SavePlayers(ctx context.Context, players []models.Player) error {
	data, err := json.Marshal(players)
	if err != nil {
		return fmt.Errorf("failed to marshal players: %w", err)
	}

	if err := m.client.Set(ctx, playersKey, data, 0).Err(); err != nil {
		return fmt.Errorf("failed to save players: %w", err)
	}
	return nil
}

// LoadPlayers restores the roster.
func (m *redisMirror) LoadPlayers(ctx context.Context) ([]models.Player, error) {
	data, err := m.client.Get(ctx, playersKey).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, ErrNoSavedState
		}
		return nil, fmt.Errorf("failed to load players: %w", err)
	}

	var players []models.Player
	if err := json.Unmarshal([]byte(data), &players); err != nil {
		return nil, fmt.Errorf("failed to unmarshal players: %w", err)
	}
	return players, nil
}

// SaveUserStory persists the raw story text.
func (m *redisMirror) SaveUserStory(ctx context.Context, story string) error {
	if err := m.client.Set(ctx, userStoryKey, story, 0).Err(); err != nil {
		return fmt.Errorf("failed to save user story: %w", err)
	}
	return nil
}

// LoadUserStory restores the story text.
func (m *redisMirror) LoadUserStory(ctx context.Context) (string, error) {
	story, err := m.client.Get(ctx, userStoryKey).Result()
	if err != nil {
		if err == redis.Nil {
			return "", ErrNoSavedState
		}
		return "", fmt.Errorf("failed to load user story: %w", err)
	}
	return story, nil
}

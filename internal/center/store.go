package center

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// Store provides persistence for the center settings.
type Store struct {
	redis *redis.Client
	key   string
}

// NewStore creates a new settings store. key is the redis key the
// settings live under.
func NewStore(redisClient *redis.Client, key string) *Store {
	return &Store{redis: redisClient, key: key}
}

// Get retrieves the settings, returning defaults if none were saved yet.
func (s *Store) Get(ctx context.Context) (*Settings, error) {
	data, err := s.redis.Get(ctx, s.key).Bytes()
	if err == redis.Nil {
		return DefaultSettings(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("center: get settings: %w", err)
	}

	var settings Settings
	if err := json.Unmarshal(data, &settings); err != nil {
		return nil, fmt.Errorf("center: unmarshal settings: %w", err)
	}

	return &settings, nil
}

// Set saves the settings.
func (s *Store) Set(ctx context.Context, settings *Settings) error {
	data, err := json.Marshal(settings)
	if err != nil {
		return fmt.Errorf("center: marshal settings: %w", err)
	}

	if err := s.redis.Set(ctx, s.key, data, 0).Err(); err != nil {
		return fmt.Errorf("center: set settings: %w", err)
	}

	return nil
}

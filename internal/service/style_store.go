package service

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/brandwave/api/internal/model"
)

// StyleStore persists per-(platform, style) prompt overrides in Redis.
// Implements StyleResolver.
type StyleStore struct {
	redis *redis.Client
}

func NewStyleStore(redisClient *redis.Client) *StyleStore {
	return &StyleStore{redis: redisClient}
}

func styleKey(p model.Platform, styleID string) string {
	return fmt.Sprintf("style:%s:%s", p, styleID)
}

// Get returns the stored override, or nil when none exists.
func (s *StyleStore) Get(ctx context.Context, p model.Platform, styleID string) (*model.StyleOverride, error) {
	data, err := s.redis.Get(ctx, styleKey(p, styleID)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, err
	}

	var override model.StyleOverride
	if err := json.Unmarshal(data, &override); err != nil {
		return nil, fmt.Errorf("failed to unmarshal style override: %w", err)
	}
	return &override, nil
}

func (s *StyleStore) Set(ctx context.Context, p model.Platform, styleID string, override *model.StyleOverride) error {
	data, err := json.Marshal(override)
	if err != nil {
		return fmt.Errorf("failed to marshal style override: %w", err)
	}
	return s.redis.Set(ctx, styleKey(p, styleID), data, 0).Err()
}

func (s *StyleStore) Delete(ctx context.Context, p model.Platform, styleID string) error {
	return s.redis.Del(ctx, styleKey(p, styleID)).Err()
}

package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"go-jobportal-backend/internal/domain"

	"github.com/redis/go-redis/v9"
)

// suggestionCache stores suggest results as JSON values with a short TTL.
// Invalidation is time-based only; stale suggestions up to the TTL are fine.
type suggestionCache struct {
	client *redis.Client
}

func NewSuggestionCache(client *redis.Client) domain.SuggestionCache {
	return &suggestionCache{client: client}
}

func (c *suggestionCache) Get(ctx context.Context, key string) ([]domain.SkillSuggestion, error) {
	if c.client == nil {
		return nil, nil
	}
	raw, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}
	var suggestions []domain.SkillSuggestion
	if err := json.Unmarshal(raw, &suggestions); err != nil {
		// A corrupt entry is treated as a miss; it expires on its own.
		return nil, nil
	}
	return suggestions, nil
}

func (c *suggestionCache) Set(ctx context.Context, key string, value []domain.SkillSuggestion, ttl time.Duration) error {
	if c.client == nil {
		return nil
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, key, raw, ttl).Err()
}

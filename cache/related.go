// Package cache holds the Redis-backed cache for computed related-project
// rankings. The cache is an optimization only: a nil *RelatedCache is a
// valid, always-missing cache, so the site runs fine without Redis.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const relatedKeyPrefix = "related:"

type RelatedCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRelatedCache(client *redis.Client, ttl time.Duration) *RelatedCache {
	return &RelatedCache{client: client, ttl: ttl}
}

// Get returns the cached ranking for projectID, or ok=false on a miss.
// Redis errors count as misses so the caller recomputes.
func (c *RelatedCache) Get(ctx context.Context, projectID uuid.UUID) ([]uuid.UUID, bool) {
	if c == nil || c.client == nil {
		return nil, false
	}

	raw, err := c.client.Get(ctx, relatedKeyPrefix+projectID.String()).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			log.Warn().Err(err).Msg("Failed to read related-projects cache")
		}
		return nil, false
	}

	var ids []uuid.UUID
	if err := json.Unmarshal([]byte(raw), &ids); err != nil {
		log.Warn().Err(err).Msg("Corrupt related-projects cache entry, discarding")
		return nil, false
	}
	return ids, true
}

// Set stores the ranking for projectID. Failures are logged, not surfaced.
func (c *RelatedCache) Set(ctx context.Context, projectID uuid.UUID, ids []uuid.UUID) {
	if c == nil || c.client == nil {
		return
	}

	raw, err := json.Marshal(ids)
	if err != nil {
		log.Warn().Err(err).Msg("Failed to marshal related-projects cache entry")
		return
	}

	if err := c.client.Set(ctx, relatedKeyPrefix+projectID.String(), raw, c.ttl).Err(); err != nil {
		log.Warn().Err(err).Msg("Failed to write related-projects cache")
	}
}

// Invalidate drops the cached ranking for projectID, used after content
// edits.
func (c *RelatedCache) Invalidate(ctx context.Context, projectID uuid.UUID) {
	if c == nil || c.client == nil {
		return
	}
	if err := c.client.Del(ctx, relatedKeyPrefix+projectID.String()).Err(); err != nil {
		log.Warn().Err(err).Msg("Failed to invalidate related-projects cache")
	}
}

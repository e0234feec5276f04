package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCache(t *testing.T, ttl time.Duration) (*RelatedCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return NewRelatedCache(client, ttl), mr
}

func TestGetMiss(t *testing.T) {
	cache, _ := testCache(t, time.Minute)

	_, ok := cache.Get(context.Background(), uuid.New())
	assert.False(t, ok)
}

func TestSetThenGet(t *testing.T) {
	cache, _ := testCache(t, time.Minute)
	ctx := context.Background()

	projectID := uuid.New()
	ids := []uuid.UUID{uuid.New(), uuid.New()}

	cache.Set(ctx, projectID, ids)

	got, ok := cache.Get(ctx, projectID)
	require.True(t, ok)
	assert.Equal(t, ids, got)
}

func TestEntriesExpire(t *testing.T) {
	cache, mr := testCache(t, time.Minute)
	ctx := context.Background()

	projectID := uuid.New()
	cache.Set(ctx, projectID, []uuid.UUID{uuid.New()})

	mr.FastForward(2 * time.Minute)

	_, ok := cache.Get(ctx, projectID)
	assert.False(t, ok)
}

func TestInvalidate(t *testing.T) {
	cache, _ := testCache(t, time.Minute)
	ctx := context.Background()

	projectID := uuid.New()
	cache.Set(ctx, projectID, []uuid.UUID{uuid.New()})
	cache.Invalidate(ctx, projectID)

	_, ok := cache.Get(ctx, projectID)
	assert.False(t, ok)
}

func TestCorruptEntryIsAMiss(t *testing.T) {
	cache, mr := testCache(t, time.Minute)

	projectID := uuid.New()
	require.NoError(t, mr.Set(relatedKeyPrefix+projectID.String(), "not json"))

	_, ok := cache.Get(context.Background(), projectID)
	assert.False(t, ok)
}

func TestRedisDownIsAMiss(t *testing.T) {
	cache, mr := testCache(t, time.Minute)
	mr.Close()

	_, ok := cache.Get(context.Background(), uuid.New())
	assert.False(t, ok)
}

func TestNilCacheIsAlwaysMissing(t *testing.T) {
	var cache *RelatedCache
	ctx := context.Background()
	projectID := uuid.New()

	cache.Set(ctx, projectID, []uuid.UUID{uuid.New()})
	cache.Invalidate(ctx, projectID)

	_, ok := cache.Get(ctx, projectID)
	assert.False(t, ok)
}

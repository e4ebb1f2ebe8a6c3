package repositories

import (
	"context"
	"testing"
	"time"

	"github.com/sbilibin2017/foodgram/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTagCacheRepository(t *testing.T) {
	client, teardown := setupRedis(t)
	defer teardown()

	repo := NewTagCacheRepository(client, time.Minute)
	ctx := context.Background()

	_, err := repo.Get(ctx)
	assert.ErrorIs(t, err, ErrCacheMiss)

	tags := []models.Tag{
		{ID: 1, Name: "Breakfast", Color: "#E26C2D", Slug: "breakfast"},
		{ID: 2, Name: "Lunch", Color: "#49B64E", Slug: "lunch"},
	}
	require.NoError(t, repo.Set(ctx, tags))

	got, err := repo.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, tags, got)

	ttl, err := client.TTL(ctx, tagCacheKey).Result()
	require.NoError(t, err)
	assert.True(t, ttl > 0 && ttl <= time.Minute)

	require.NoError(t, repo.Invalidate(ctx))
	_, err = repo.Get(ctx)
	assert.ErrorIs(t, err, ErrCacheMiss)

	t.Run("corrupt entry is a miss", func(t *testing.T) {
		require.NoError(t, client.Set(ctx, tagCacheKey, "not json", 0).Err())
		_, err := repo.Get(ctx)
		assert.ErrorIs(t, err, ErrCacheMiss)
	})
}

func TestTokenBlacklistRepository(t *testing.T) {
	client, teardown := setupRedis(t)
	defer teardown()

	repo := NewTokenBlacklistRepository(client)
	ctx := context.Background()

	revoked, err := repo.IsRevoked(ctx, "token-1")
	require.NoError(t, err)
	assert.False(t, revoked)

	require.NoError(t, repo.Revoke(ctx, "token-1", time.Minute))
	revoked, err = repo.IsRevoked(ctx, "token-1")
	require.NoError(t, err)
	assert.True(t, revoked)

	revoked, err = repo.IsRevoked(ctx, "token-2")
	require.NoError(t, err)
	assert.False(t, revoked)

	t.Run("expired token is not stored", func(t *testing.T) {
		require.NoError(t, repo.Revoke(ctx, "token-3", 0))
		n, err := client.Exists(ctx, tokenKey("token-3")).Result()
		require.NoError(t, err)
		assert.Zero(t, n)
	})
}

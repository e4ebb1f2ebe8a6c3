package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sbilibin2017/foodgram/internal/logger"
	"github.com/sbilibin2017/foodgram/internal/models"
)

const tagCacheKey = "catalog:tags"

// ErrCacheMiss is returned by caches when the key is absent.
var ErrCacheMiss = errors.New("cache miss")

// TagCacheRepository caches the tag catalog in Redis.
type TagCacheRepository struct {
	client *redis.Client
	exp    time.Duration
}

// NewTagCacheRepository creates a cache whose entries live for expiration.
func NewTagCacheRepository(client *redis.Client, expiration time.Duration) *TagCacheRepository {
	return &TagCacheRepository{client: client, exp: expiration}
}

// Get returns the cached tag list or ErrCacheMiss.
func (r *TagCacheRepository) Get(ctx context.Context) ([]models.Tag, error) {
	val, err := r.client.Get(ctx, tagCacheKey).Bytes()
	if err != nil {
		logger.Log.Debugw("cache get", "key", tagCacheKey, "error", err)
		if errors.Is(err, redis.Nil) {
			return nil, ErrCacheMiss
		}
		return nil, err
	}

	var tags []models.Tag
	if err := json.Unmarshal(val, &tags); err != nil {
		logger.Log.Warnw("cache entry is corrupt", "key", tagCacheKey, "error", err)
		return nil, ErrCacheMiss
	}

	logger.Log.Debugw("cache get", "key", tagCacheKey, "result", len(tags))
	return tags, nil
}

// Set stores tags with the configured expiration.
func (r *TagCacheRepository) Set(ctx context.Context, tags []models.Tag) error {
	data, err := json.Marshal(tags)
	if err != nil {
		return err
	}

	err = r.client.Set(ctx, tagCacheKey, data, r.exp).Err()
	logger.Log.Debugw("cache set", "key", tagCacheKey, "result", len(tags), "error", err)
	return err
}

// Invalidate drops the cached list.
func (r *TagCacheRepository) Invalidate(ctx context.Context) error {
	err := r.client.Del(ctx, tagCacheKey).Err()
	logger.Log.Debugw("cache del", "key", tagCacheKey, "error", err)
	return err
}

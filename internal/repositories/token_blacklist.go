package repositories

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sbilibin2017/foodgram/internal/logger"
)

// TokenBlacklistRepository remembers revoked token ids in Redis until the
// tokens would have expired anyway.
type TokenBlacklistRepository struct {
	client *redis.Client
}

func NewTokenBlacklistRepository(client *redis.Client) *TokenBlacklistRepository {
	return &TokenBlacklistRepository{client: client}
}

func tokenKey(tokenID string) string {
	return "revoked_token:" + tokenID
}

// Revoke marks tokenID as revoked for ttl. A non-positive ttl is a no-op,
// the token has already expired.
func (r *TokenBlacklistRepository) Revoke(ctx context.Context, tokenID string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	key := tokenKey(tokenID)
	err := r.client.Set(ctx, key, "1", ttl).Err()
	logger.Log.Debugw("token revoke", "key", key, "ttl", ttl, "error", err)
	return err
}

// IsRevoked reports whether tokenID was revoked.
func (r *TokenBlacklistRepository) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	key := tokenKey(tokenID)
	n, err := r.client.Exists(ctx, key).Result()
	logger.Log.Debugw("token check", "key", key, "result", n, "error", err)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

package repositories

import (
	"context"
	"strings"
	"time"

	lru "github.com/hashicorp/golang-lru"
	"github.com/sbilibin2017/foodgram/internal/logger"
	"github.com/sbilibin2017/foodgram/internal/models"
)

// IngredientCacheRepository keeps recent ingredient search results in
// process memory. The catalog is loaded by a separate process, so entries
// expire after a fixed time instead of being invalidated.
type IngredientCacheRepository struct {
	cache *lru.Cache
	ttl   time.Duration
	now   func() time.Time
}

type ingredientCacheEntry struct {
	ingredients []models.Ingredient
	expiresAt   time.Time
}

// NewIngredientCacheRepository creates a cache holding up to size prefixes
// for ttl each. A non-positive ttl keeps entries until they are evicted.
func NewIngredientCacheRepository(size int, ttl time.Duration) (*IngredientCacheRepository, error) {
	cache, err := lru.New(size)
	if err != nil {
		return nil, err
	}
	return &IngredientCacheRepository{cache: cache, ttl: ttl, now: time.Now}, nil
}

func ingredientCacheKey(prefix string) string {
	return strings.ToLower(prefix)
}

// Get returns the cached result for prefix or ErrCacheMiss.
func (r *IngredientCacheRepository) Get(ctx context.Context, prefix string) ([]models.Ingredient, error) {
	key := ingredientCacheKey(prefix)
	val, ok := r.cache.Get(key)
	if ok {
		entry := val.(ingredientCacheEntry)
		if !entry.expiresAt.IsZero() && !r.now().Before(entry.expiresAt) {
			r.cache.Remove(key)
			ok = false
		}
	}
	logger.Log.Debugw("ingredient cache get", "key", key, "hit", ok)
	if !ok {
		return nil, ErrCacheMiss
	}
	return val.(ingredientCacheEntry).ingredients, nil
}

// Set stores the result for prefix, evicting the least recently used entry
// when full.
func (r *IngredientCacheRepository) Set(ctx context.Context, prefix string, ingredients []models.Ingredient) error {
	key := ingredientCacheKey(prefix)
	entry := ingredientCacheEntry{ingredients: ingredients}
	if r.ttl > 0 {
		entry.expiresAt = r.now().Add(r.ttl)
	}
	evicted := r.cache.Add(key, entry)
	logger.Log.Debugw("ingredient cache set", "key", key, "result", len(ingredients), "evicted", evicted)
	return nil
}

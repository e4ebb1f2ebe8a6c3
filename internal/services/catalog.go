package services

import (
	"context"
	"errors"

	"github.com/sbilibin2017/foodgram/internal/logger"
	"github.com/sbilibin2017/foodgram/internal/models"
	"github.com/sbilibin2017/foodgram/internal/repositories"
)

//go:generate mockgen -source=catalog.go -destination=catalog_mock.go -package=services

// TagRepository defines tag catalog storage.
type TagRepository interface {
	List(ctx context.Context) ([]models.Tag, error)
	GetByID(ctx context.Context, id int64) (*models.Tag, error)
	Import(ctx context.Context, tags []models.Tag) (int, error)
}

// TagCache caches the full tag list.
type TagCache interface {
	Get(ctx context.Context) ([]models.Tag, error)
	Set(ctx context.Context, tags []models.Tag) error
	Invalidate(ctx context.Context) error
}

// IngredientRepository defines ingredient catalog storage.
type IngredientRepository interface {
	Search(ctx context.Context, prefix string) ([]models.Ingredient, error)
	GetByID(ctx context.Context, id int64) (*models.Ingredient, error)
	Import(ctx context.Context, items []models.Ingredient) (int, error)
}

// IngredientCache caches ingredient search results by prefix.
type IngredientCache interface {
	Get(ctx context.Context, prefix string) ([]models.Ingredient, error)
	Set(ctx context.Context, prefix string, items []models.Ingredient) error
}

// CatalogService serves the tag and ingredient catalogs.
type CatalogService struct {
	tags            TagRepository
	tagCache        TagCache
	ingredients     IngredientRepository
	ingredientCache IngredientCache
}

func NewCatalogService(
	tags TagRepository,
	tagCache TagCache,
	ingredients IngredientRepository,
	ingredientCache IngredientCache,
) *CatalogService {
	return &CatalogService{
		tags:            tags,
		tagCache:        tagCache,
		ingredients:     ingredients,
		ingredientCache: ingredientCache,
	}
}

// ListTags returns every tag, from the cache when possible.
func (s *CatalogService) ListTags(ctx context.Context) ([]models.Tag, error) {
	tags, err := s.tagCache.Get(ctx)
	if err == nil {
		return tags, nil
	}
	if !errors.Is(err, repositories.ErrCacheMiss) {
		logger.Log.Warnw("tag cache unavailable", "error", err)
	}

	tags, err = s.tags.List(ctx)
	if err != nil {
		logger.Log.Errorw("failed to list tags", "error", err)
		return nil, err
	}
	tags = nonNil(tags)

	if err := s.tagCache.Set(ctx, tags); err != nil {
		logger.Log.Warnw("failed to cache tags", "error", err)
	}
	return tags, nil
}

func (s *CatalogService) GetTag(ctx context.Context, id int64) (*models.Tag, error) {
	tag, err := s.tags.GetByID(ctx, id)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, ErrTagNotFound
	}
	if err != nil {
		logger.Log.Errorw("failed to get tag", "tag_id", id, "error", err)
		return nil, err
	}
	return tag, nil
}

// SearchIngredients returns ingredients whose name starts with prefix,
// ignoring case.
func (s *CatalogService) SearchIngredients(ctx context.Context, prefix string) ([]models.Ingredient, error) {
	if items, err := s.ingredientCache.Get(ctx, prefix); err == nil {
		return items, nil
	}

	items, err := s.ingredients.Search(ctx, prefix)
	if err != nil {
		logger.Log.Errorw("failed to search ingredients", "prefix", prefix, "error", err)
		return nil, err
	}
	items = nonNil(items)
	if len(items) == 0 {
		// Not cached: the catalog may still be loading.
		return items, nil
	}

	if err := s.ingredientCache.Set(ctx, prefix, items); err != nil {
		logger.Log.Warnw("failed to cache ingredients", "prefix", prefix, "error", err)
	}
	return items, nil
}

func (s *CatalogService) GetIngredient(ctx context.Context, id int64) (*models.Ingredient, error) {
	item, err := s.ingredients.GetByID(ctx, id)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, ErrIngredientNotFound
	}
	if err != nil {
		logger.Log.Errorw("failed to get ingredient", "ingredient_id", id, "error", err)
		return nil, err
	}
	return item, nil
}

// ImportTags adds the tags missing from the catalog and drops the cached list.
func (s *CatalogService) ImportTags(ctx context.Context, tags []models.Tag) (int, error) {
	added, err := s.tags.Import(ctx, tags)
	if err != nil {
		logger.Log.Errorw("failed to import tags", "error", err)
		return 0, err
	}
	if err := s.tagCache.Invalidate(ctx); err != nil {
		logger.Log.Warnw("failed to invalidate tag cache", "error", err)
	}
	return added, nil
}

// ImportIngredients adds the ingredients missing from the catalog.
func (s *CatalogService) ImportIngredients(ctx context.Context, items []models.Ingredient) (int, error) {
	added, err := s.ingredients.Import(ctx, items)
	if err != nil {
		logger.Log.Errorw("failed to import ingredients", "error", err)
		return 0, err
	}
	return added, nil
}

package services

import (
	"context"
	"errors"

	"github.com/sbilibin2017/foodgram/internal/logger"
	"github.com/sbilibin2017/foodgram/internal/models"
	"github.com/sbilibin2017/foodgram/internal/repositories"
)

//go:generate mockgen -source=recipe_list.go -destination=recipe_list_mock.go -package=services

// RecipeListWriter adds and removes (user, recipe) pairs of one list.
type RecipeListWriter interface {
	Add(ctx context.Context, userID, recipeID int64) error
	Remove(ctx context.Context, userID, recipeID int64) (bool, error)
}

// RecipeGetter reads a single recipe.
type RecipeGetter interface {
	GetByID(ctx context.Context, id int64) (*models.RecipeDB, error)
}

// RecipeListService toggles recipes in a per-user list. Adding a present
// recipe and removing an absent one both fail.
type RecipeListService struct {
	name         string
	lists        RecipeListWriter
	recipes      RecipeGetter
	events       EventPublisher
	errAlready   error
	errAbsent    error
	eventAdded   string
	eventRemoved string
}

// NewFavoriteService creates the service for the favorites list.
func NewFavoriteService(lists RecipeListWriter, recipes RecipeGetter, events EventPublisher) *RecipeListService {
	return &RecipeListService{
		name:         "favorites",
		lists:        lists,
		recipes:      recipes,
		events:       events,
		errAlready:   ErrAlreadyFavorited,
		errAbsent:    ErrNotFavorited,
		eventAdded:   models.EventFavoriteAdded,
		eventRemoved: models.EventFavoriteRemoved,
	}
}

// NewShoppingCartService creates the service for the shopping cart.
func NewShoppingCartService(lists RecipeListWriter, recipes RecipeGetter, events EventPublisher) *RecipeListService {
	return &RecipeListService{
		name:         "shopping_cart",
		lists:        lists,
		recipes:      recipes,
		events:       events,
		errAlready:   ErrAlreadyInCart,
		errAbsent:    ErrNotInCart,
		eventAdded:   models.EventShoppingCartAdded,
		eventRemoved: models.EventShoppingCartRemoved,
	}
}

// Add puts recipeID into the list of userID and returns its short form.
func (s *RecipeListService) Add(ctx context.Context, userID, recipeID int64) (*models.RecipeShort, error) {
	recipe, err := s.getRecipe(ctx, recipeID)
	if err != nil {
		return nil, err
	}

	if err := s.lists.Add(ctx, userID, recipeID); err != nil {
		switch {
		case errors.Is(err, repositories.ErrDuplicate):
			return nil, s.errAlready
		case errors.Is(err, repositories.ErrReferenceNotFound):
			// the recipe was deleted after the lookup
			return nil, ErrRecipeNotFound
		}
		logger.Log.Errorw("failed to add recipe to list", "list", s.name, "user_id", userID, "recipe_id", recipeID, "error", err)
		return nil, err
	}

	s.events.Publish(ctx, models.Event{Type: s.eventAdded, UserID: userID, RecipeID: recipeID})

	short := models.NewRecipeShort(*recipe)
	return &short, nil
}

// Remove takes recipeID out of the list of userID.
func (s *RecipeListService) Remove(ctx context.Context, userID, recipeID int64) error {
	if _, err := s.getRecipe(ctx, recipeID); err != nil {
		return err
	}

	removed, err := s.lists.Remove(ctx, userID, recipeID)
	if err != nil {
		logger.Log.Errorw("failed to remove recipe from list", "list", s.name, "user_id", userID, "recipe_id", recipeID, "error", err)
		return err
	}
	if !removed {
		return s.errAbsent
	}

	s.events.Publish(ctx, models.Event{Type: s.eventRemoved, UserID: userID, RecipeID: recipeID})
	return nil
}

func (s *RecipeListService) getRecipe(ctx context.Context, id int64) (*models.RecipeDB, error) {
	recipe, err := s.recipes.GetByID(ctx, id)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, ErrRecipeNotFound
	}
	if err != nil {
		logger.Log.Errorw("failed to get recipe", "recipe_id", id, "error", err)
		return nil, err
	}
	return recipe, nil
}

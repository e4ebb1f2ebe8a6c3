package handlers

import (
	"context"
	"net/http"

	"github.com/sbilibin2017/foodgram/internal/middlewares"
	"github.com/sbilibin2017/foodgram/internal/models"
)

//go:generate mockgen -source=recipe_list.go -destination=recipe_list_mock.go -package=handlers

// RecipeListToggler adds recipes to and removes them from a per-user list
// such as favorites or the shopping cart.
type RecipeListToggler interface {
	Add(ctx context.Context, userID, recipeID int64) (*models.RecipeShort, error)
	Remove(ctx context.Context, userID, recipeID int64) error
}

// NewAddToListHandler returns an HTTP handler adding the recipe to the caller's list.
// @Summary Add recipe to favorites or shopping cart
// @Tags recipes
// @Produce json
// @Param id path int true "Recipe ID"
// @Success 201 {object} models.RecipeShort
// @Failure 400 {object} models.ErrorResponse "Already in the list"
// @Failure 401 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /recipes/{id}/favorite/ [post]
// @Router /recipes/{id}/shopping_cart/ [post]
// @Security TokenAuth
func NewAddToListHandler(svc RecipeListToggler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r)
		if err != nil {
			writeError(w, r, err)
			return
		}

		recipe, err := svc.Add(r.Context(), middlewares.GetUserIDFromContext(r.Context()), id)
		if err != nil {
			writeError(w, r, err)
			return
		}

		writeJSON(w, http.StatusCreated, recipe)
	}
}

// NewRemoveFromListHandler returns an HTTP handler removing the recipe from the caller's list.
// @Summary Remove recipe from favorites or shopping cart
// @Tags recipes
// @Param id path int true "Recipe ID"
// @Success 204
// @Failure 400 {object} models.ErrorResponse "Not in the list"
// @Failure 401 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /recipes/{id}/favorite/ [delete]
// @Router /recipes/{id}/shopping_cart/ [delete]
// @Security TokenAuth
func NewRemoveFromListHandler(svc RecipeListToggler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r)
		if err != nil {
			writeError(w, r, err)
			return
		}

		if err := svc.Remove(r.Context(), middlewares.GetUserIDFromContext(r.Context()), id); err != nil {
			writeError(w, r, err)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

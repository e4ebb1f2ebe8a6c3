package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/sbilibin2017/foodgram/internal/middlewares"
	"github.com/sbilibin2017/foodgram/internal/models"
	"github.com/sbilibin2017/foodgram/internal/services"
)

//go:generate mockgen -source=recipes.go -destination=recipes_mock.go -package=handlers

// RecipeReader returns recipes as seen by the viewer.
type RecipeReader interface {
	List(ctx context.Context, viewerID int64, q models.RecipeQuery) ([]models.Recipe, int, error)
	Get(ctx context.Context, viewerID, id int64) (*models.Recipe, error)
}

// RecipeWriter changes recipes on behalf of a user.
type RecipeWriter interface {
	Create(ctx context.Context, authorID int64, req models.RecipeWriteRequest) (*models.Recipe, error)
	Update(ctx context.Context, userID, id int64, req models.RecipeWriteRequest) (*models.Recipe, error)
	Delete(ctx context.Context, userID, id int64) error
}

// parseRecipeQuery reads the recipe list filters.
func parseRecipeQuery(r *http.Request) (models.RecipeQuery, error) {
	q := r.URL.Query()
	verr := &services.ValidationError{Fields: map[string]string{}}
	var query models.RecipeQuery

	if raw := q.Get("author"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			verr.Fields["author"] = "select a valid choice"
		} else {
			query.AuthorID = &id
		}
	}

	for _, slug := range q["tags"] {
		if slug != "" {
			query.Tags = append(query.Tags, slug)
		}
	}

	for field, dst := range map[string]*bool{
		"is_favorited":        &query.IsFavorited,
		"is_in_shopping_cart": &query.IsInShoppingCart,
	} {
		raw := q.Get(field)
		if raw == "" {
			continue
		}
		v, err := strconv.ParseBool(raw)
		if err != nil {
			verr.Fields[field] = "enter a valid boolean"
			continue
		}
		*dst = v
	}

	if len(verr.Fields) > 0 {
		return query, verr
	}
	return query, nil
}

// NewListRecipesHandler returns an HTTP handler listing recipes newest first.
// @Summary List recipes
// @Description Filters: author id, tags (repeatable slug, any of), is_favorited, is_in_shopping_cart.
// @Tags recipes
// @Produce json
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Param author query int false "Author ID"
// @Param tags query []string false "Tag slugs" collectionFormat(multi)
// @Param is_favorited query bool false "Only the caller's favorites"
// @Param is_in_shopping_cart query bool false "Only recipes in the caller's cart"
// @Success 200 {object} models.Page[models.Recipe]
// @Failure 400 {object} map[string]string "Invalid filter"
// @Failure 404 {object} models.ErrorResponse "Invalid page"
// @Router /recipes/ [get]
func NewListRecipesHandler(svc RecipeReader, pageSize int) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, err := parsePagination(r, pageSize)
		if err != nil {
			writeError(w, r, err)
			return
		}

		query, err := parseRecipeQuery(r)
		if err != nil {
			writeError(w, r, err)
			return
		}
		query.Limit = p.limit
		query.Offset = p.offset()

		recipes, count, err := svc.List(r.Context(), middlewares.GetUserIDFromContext(r.Context()), query)
		if err != nil {
			writeError(w, r, err)
			return
		}
		if err := p.check(count); err != nil {
			writeError(w, r, err)
			return
		}

		writeJSON(w, http.StatusOK, newPage(r, p, recipes, count))
	}
}

// NewGetRecipeHandler returns an HTTP handler for a single recipe.
// @Summary Get recipe
// @Tags recipes
// @Produce json
// @Param id path int true "Recipe ID"
// @Success 200 {object} models.Recipe
// @Failure 404 {object} models.ErrorResponse
// @Router /recipes/{id}/ [get]
func NewGetRecipeHandler(svc RecipeReader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r)
		if err != nil {
			writeError(w, r, err)
			return
		}

		recipe, err := svc.Get(r.Context(), middlewares.GetUserIDFromContext(r.Context()), id)
		if err != nil {
			writeError(w, r, err)
			return
		}

		writeJSON(w, http.StatusOK, recipe)
	}
}

// NewCreateRecipeHandler returns an HTTP handler creating a recipe authored by the caller.
// @Summary Create recipe
// @Tags recipes
// @Accept json
// @Produce json
// @Param recipe body models.RecipeWriteRequest true "Recipe"
// @Success 201 {object} models.Recipe
// @Failure 400 {object} map[string]string "Field errors"
// @Failure 401 {object} models.ErrorResponse
// @Router /recipes/ [post]
// @Security TokenAuth
func NewCreateRecipeHandler(svc RecipeWriter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req models.RecipeWriteRequest
		if err := decodeJSON(w, r, &req); err != nil {
			writeError(w, r, err)
			return
		}

		recipe, err := svc.Create(r.Context(), middlewares.GetUserIDFromContext(r.Context()), req)
		if err != nil {
			writeError(w, r, err)
			return
		}

		writeJSON(w, http.StatusCreated, recipe)
	}
}

// NewUpdateRecipeHandler returns an HTTP handler updating a recipe of the caller.
// @Summary Update recipe
// @Description Replaces ingredients and tags; the image is kept unless a new one is sent.
// @Tags recipes
// @Accept json
// @Produce json
// @Param id path int true "Recipe ID"
// @Param recipe body models.RecipeWriteRequest true "Recipe"
// @Success 200 {object} models.Recipe
// @Failure 400 {object} map[string]string "Field errors"
// @Failure 401 {object} models.ErrorResponse
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /recipes/{id}/ [patch]
// @Security TokenAuth
func NewUpdateRecipeHandler(svc RecipeWriter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r)
		if err != nil {
			writeError(w, r, err)
			return
		}

		var req models.RecipeWriteRequest
		if err := decodeJSON(w, r, &req); err != nil {
			writeError(w, r, err)
			return
		}

		recipe, err := svc.Update(r.Context(), middlewares.GetUserIDFromContext(r.Context()), id, req)
		if err != nil {
			writeError(w, r, err)
			return
		}

		writeJSON(w, http.StatusOK, recipe)
	}
}

// NewDeleteRecipeHandler returns an HTTP handler deleting a recipe of the caller.
// @Summary Delete recipe
// @Tags recipes
// @Param id path int true "Recipe ID"
// @Success 204
// @Failure 401 {object} models.ErrorResponse
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /recipes/{id}/ [delete]
// @Security TokenAuth
func NewDeleteRecipeHandler(svc RecipeWriter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r)
		if err != nil {
			writeError(w, r, err)
			return
		}

		if err := svc.Delete(r.Context(), middlewares.GetUserIDFromContext(r.Context()), id); err != nil {
			writeError(w, r, err)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

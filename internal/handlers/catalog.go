package handlers

import (
	"context"
	"net/http"

	"github.com/sbilibin2017/foodgram/internal/models"
)

//go:generate mockgen -source=catalog.go -destination=catalog_mock.go -package=handlers

// TagReader reads the tag catalog.
type TagReader interface {
	ListTags(ctx context.Context) ([]models.Tag, error)
	GetTag(ctx context.Context, id int64) (*models.Tag, error)
}

// IngredientReader reads the ingredient catalog.
type IngredientReader interface {
	SearchIngredients(ctx context.Context, prefix string) ([]models.Ingredient, error)
	GetIngredient(ctx context.Context, id int64) (*models.Ingredient, error)
}

// NewListTagsHandler returns an HTTP handler listing all tags.
// @Summary List tags
// @Tags catalog
// @Produce json
// @Success 200 {array} models.Tag
// @Router /tags/ [get]
func NewListTagsHandler(svc TagReader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tags, err := svc.ListTags(r.Context())
		if err != nil {
			writeError(w, r, err)
			return
		}
		if tags == nil {
			tags = []models.Tag{}
		}
		writeJSON(w, http.StatusOK, tags)
	}
}

// NewGetTagHandler returns an HTTP handler for a single tag.
// @Summary Get tag
// @Tags catalog
// @Produce json
// @Param id path int true "Tag ID"
// @Success 200 {object} models.Tag
// @Failure 404 {object} models.ErrorResponse
// @Router /tags/{id}/ [get]
func NewGetTagHandler(svc TagReader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r)
		if err != nil {
			writeError(w, r, err)
			return
		}

		tag, err := svc.GetTag(r.Context(), id)
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, tag)
	}
}

// NewListIngredientsHandler returns an HTTP handler searching ingredients by name prefix.
// @Summary Search ingredients
// @Tags catalog
// @Produce json
// @Param name query string false "Case-insensitive name prefix"
// @Success 200 {array} models.Ingredient
// @Router /ingredients/ [get]
func NewListIngredientsHandler(svc IngredientReader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ingredients, err := svc.SearchIngredients(r.Context(), r.URL.Query().Get("name"))
		if err != nil {
			writeError(w, r, err)
			return
		}
		if ingredients == nil {
			ingredients = []models.Ingredient{}
		}
		writeJSON(w, http.StatusOK, ingredients)
	}
}

// NewGetIngredientHandler returns an HTTP handler for a single ingredient.
// @Summary Get ingredient
// @Tags catalog
// @Produce json
// @Param id path int true "Ingredient ID"
// @Success 200 {object} models.Ingredient
// @Failure 404 {object} models.ErrorResponse
// @Router /ingredients/{id}/ [get]
func NewGetIngredientHandler(svc IngredientReader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r)
		if err != nil {
			writeError(w, r, err)
			return
		}

		ingredient, err := svc.GetIngredient(r.Context(), id)
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, ingredient)
	}
}

package models

import (
	"math"
	"time"
)

// Cooking time bounds, minutes.
const (
	MinCookingTime = 1
	MaxCookingTime = 1440
)

// MaxIngredientAmount is the largest amount the amount column holds.
const MaxIngredientAmount = math.MaxInt32

// RecipeDB represents a recipe row in the database
type RecipeDB struct {
	ID          int64     `db:"id"`
	AuthorID    int64     `db:"author_id"`
	Name        string    `db:"name"`
	Text        string    `db:"text"`
	Image       string    `db:"image"` // public URL of the stored image
	CookingTime int       `db:"cooking_time"`
	PubDate     time.Time `db:"pub_date"`
}

// RecipeIngredientDB is a recipe_ingredients row joined with its ingredient.
type RecipeIngredientDB struct {
	RecipeID        int64  `db:"recipe_id"`
	IngredientID    int64  `db:"ingredient_id"`
	Name            string `db:"name"`
	MeasurementUnit string `db:"measurement_unit"`
	Amount          int    `db:"amount"`
}

// RecipeTagDB is a recipe_tags row joined with its tag.
type RecipeTagDB struct {
	RecipeID int64  `db:"recipe_id"`
	ID       int64  `db:"id"`
	Name     string `db:"name"`
	Color    string `db:"color"`
	Slug     string `db:"slug"`
}

// IngredientAmount references a catalog ingredient with a quantity.
// swagger:model IngredientAmount
type IngredientAmount struct {
	// required: true
	// example: 1123
	ID int64 `json:"id"`

	// required: true
	// example: 10
	Amount int `json:"amount"`
}

// RecipeWriteRequest is the body of recipe create and update requests
// swagger:model RecipeWriteRequest
type RecipeWriteRequest struct {
	// required: true
	Ingredients []IngredientAmount `json:"ingredients"`

	// Tag ids
	// required: true
	// example: [1, 2]
	Tags []int64 `json:"tags"`

	// Base64 data URI. Required on create, optional on update.
	// example: data:image/png;base64,iVBORw0KGgoAAAANSUhEUgAAAAEAAAABAgMAAABieywaAAAACVBMVEUAAAD///9fX1/S0ecCAAAACXBIWXMAAA7EAAAOxAGVKw4bAAAACklEQVQImWNoAAAAggCByxOyYQAAAABJRU5ErkJggg==
	Image string `json:"image"`

	// required: true
	// example: Нечто съедобное (это не точно)
	Name string `json:"name" validate:"required,max=200"`

	// required: true
	// example: Приготовьте как нибудь эти ингредиеты
	Text string `json:"text" validate:"required"`

	// required: true
	// example: 5
	CookingTime int `json:"cooking_time"`
}

// RecipeIngredient is an ingredient line in a recipe representation.
type RecipeIngredient struct {
	ID              int64  `json:"id"`
	Name            string `json:"name"`
	MeasurementUnit string `json:"measurement_unit"`
	Amount          int    `json:"amount"`
}

// Recipe is the full recipe representation
// swagger:model Recipe
type Recipe struct {
	ID               int64              `json:"id"`
	Tags             []Tag              `json:"tags"`
	Author           User               `json:"author"`
	Ingredients      []RecipeIngredient `json:"ingredients"`
	IsFavorited      bool               `json:"is_favorited"`
	IsInShoppingCart bool               `json:"is_in_shopping_cart"`
	Name             string             `json:"name"`
	Image            string             `json:"image"`
	Text             string             `json:"text"`
	CookingTime      int                `json:"cooking_time"`
}

// RecipeShort is the compact representation used by favorites, carts and
// subscription previews
// swagger:model RecipeShort
type RecipeShort struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Image       string `json:"image"`
	CookingTime int    `json:"cooking_time"`
}

// NewRecipeShort builds the compact representation of r.
func NewRecipeShort(r RecipeDB) RecipeShort {
	return RecipeShort{
		ID:          r.ID,
		Name:        r.Name,
		Image:       r.Image,
		CookingTime: r.CookingTime,
	}
}

// RecipeFilter selects recipes. Nil and empty fields do not filter.
type RecipeFilter struct {
	AuthorID         *int64
	TagSlugs         []string // any of
	FavoritedBy      *int64
	InShoppingCartOf *int64
	Limit            int // 0 means no limit
	Offset           int
}

// RecipeQuery holds the list filters taken from a request. IsFavorited and
// IsInShoppingCart only apply when the caller is authenticated.
type RecipeQuery struct {
	AuthorID         *int64
	Tags             []string
	IsFavorited      bool
	IsInShoppingCart bool
	Limit            int
	Offset           int
}

package models

// Subscription is a followed author together with a preview of their recipes
// swagger:model Subscription
type Subscription struct {
	User
	Recipes      []RecipeShort `json:"recipes"`
	RecipesCount int           `json:"recipes_count"`
}

package models

// Event types published to the event stream.
const (
	EventRecipeCreated       = "recipe_created"
	EventRecipeUpdated       = "recipe_updated"
	EventRecipeDeleted       = "recipe_deleted"
	EventFavoriteAdded       = "favorite_added"
	EventFavoriteRemoved     = "favorite_removed"
	EventShoppingCartAdded   = "shopping_cart_added"
	EventShoppingCartRemoved = "shopping_cart_removed"
	EventSubscriptionAdded   = "subscription_added"
	EventSubscriptionRemoved = "subscription_removed"
)

// Event describes a state change made by a user.
type Event struct {
	EventID   string `json:"event_id"`            // EventID is a unique identifier for the event.
	Timestamp int64  `json:"timestamp"`           // Timestamp is the Unix time (seconds) of the change.
	Type      string `json:"type"`                // Type is one of the Event* constants.
	UserID    int64  `json:"user_id"`             // UserID is the acting user.
	RecipeID  int64  `json:"recipe_id,omitempty"` // RecipeID is set for recipe, favorite and cart events.
	AuthorID  int64  `json:"author_id,omitempty"` // AuthorID is set for subscription events.
}

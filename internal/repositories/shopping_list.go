package repositories

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/sbilibin2017/foodgram/internal/models"
)

// ShoppingListRepository reads the ingredient lines of a user's cart.
type ShoppingListRepository struct {
	db       *sqlx.DB
	txGetter TxGetter
}

func NewShoppingListRepository(db *sqlx.DB, txGetter TxGetter) *ShoppingListRepository {
	return &ShoppingListRepository{db: db, txGetter: txGetter}
}

// GetItems returns one line per ingredient row of every recipe currently in
// the user's cart, ungrouped. Recipe composition is read at call time.
func (r *ShoppingListRepository) GetItems(ctx context.Context, userID int64) ([]models.ShoppingListItem, error) {
	const query = `
		SELECT i.name, i.measurement_unit, ri.amount
		FROM shopping_carts c
		JOIN recipe_ingredients ri ON ri.recipe_id = c.recipe_id
		JOIN ingredients i ON i.id = ri.ingredient_id
		WHERE c.user_id = $1
	`

	var items []models.ShoppingListItem
	err := sqlx.SelectContext(ctx, executor(ctx, r.db, r.txGetter), &items, query, userID)
	logQuery(query, []any{userID}, len(items), err)

	return items, translateError(err)
}

package repositories

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// RecipeListRepository stores (user, recipe) association rows in one table.
// The favorites and the shopping cart share this shape.
type RecipeListRepository struct {
	db       *sqlx.DB
	txGetter TxGetter
	table    string
}

// NewFavoriteRepository returns a repository over the favorites table.
func NewFavoriteRepository(db *sqlx.DB, txGetter TxGetter) *RecipeListRepository {
	return &RecipeListRepository{db: db, txGetter: txGetter, table: "favorites"}
}

// NewShoppingCartRepository returns a repository over the shopping_carts table.
func NewShoppingCartRepository(db *sqlx.DB, txGetter TxGetter) *RecipeListRepository {
	return &RecipeListRepository{db: db, txGetter: txGetter, table: "shopping_carts"}
}

// Add inserts the pair. An existing pair yields ErrDuplicate,
// a missing user or recipe yields ErrReferenceNotFound.
func (r *RecipeListRepository) Add(ctx context.Context, userID, recipeID int64) error {
	query := fmt.Sprintf(`INSERT INTO %s (user_id, recipe_id) VALUES ($1, $2)`, r.table)
	args := []any{userID, recipeID}

	res, err := executor(ctx, r.db, r.txGetter).ExecContext(ctx, query, args...)
	logQuery(query, args, affected(res), err)

	return translateError(err)
}

// Remove deletes the pair and reports whether it existed.
func (r *RecipeListRepository) Remove(ctx context.Context, userID, recipeID int64) (bool, error) {
	query := fmt.Sprintf(`DELETE FROM %s WHERE user_id = $1 AND recipe_id = $2`, r.table)
	args := []any{userID, recipeID}

	res, err := executor(ctx, r.db, r.txGetter).ExecContext(ctx, query, args...)
	rowsAffected := affected(res)
	logQuery(query, args, rowsAffected, err)

	if err != nil {
		return false, translateError(err)
	}
	return rowsAffected > 0, nil
}

// MarkedAmong returns which of recipeIDs the user has in this list.
func (r *RecipeListRepository) MarkedAmong(ctx context.Context, userID int64, recipeIDs []int64) (map[int64]bool, error) {
	marked := make(map[int64]bool, len(recipeIDs))
	if len(recipeIDs) == 0 {
		return marked, nil
	}
	query := fmt.Sprintf(`SELECT recipe_id FROM %s WHERE user_id = $1 AND recipe_id = ANY($2)`, r.table)
	args := []any{userID, recipeIDs}

	var ids []int64
	err := sqlx.SelectContext(ctx, executor(ctx, r.db, r.txGetter), &ids, query, args...)
	for _, id := range ids {
		marked[id] = true
	}
	logQuery(query, args, ids, err)

	return marked, translateError(err)
}

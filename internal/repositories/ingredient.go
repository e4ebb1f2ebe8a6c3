package repositories

import (
	"context"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/sbilibin2017/foodgram/internal/models"
)

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// IngredientRepository reads and loads the ingredient catalog.
type IngredientRepository struct {
	db       *sqlx.DB
	txGetter TxGetter
}

func NewIngredientRepository(db *sqlx.DB, txGetter TxGetter) *IngredientRepository {
	return &IngredientRepository{db: db, txGetter: txGetter}
}

// Search returns ingredients whose name starts with prefix, ignoring case,
// ordered by name. An empty prefix returns the whole catalog.
func (r *IngredientRepository) Search(ctx context.Context, prefix string) ([]models.Ingredient, error) {
	const query = `
		SELECT id, name, measurement_unit
		FROM ingredients
		WHERE lower(name) LIKE lower($1) || '%'
		ORDER BY name, id
	`
	pattern := likeEscaper.Replace(prefix)

	var ingredients []models.Ingredient
	err := sqlx.SelectContext(ctx, executor(ctx, r.db, r.txGetter), &ingredients, query, pattern)
	logQuery(query, []any{pattern}, len(ingredients), err)

	return ingredients, translateError(err)
}

func (r *IngredientRepository) GetByID(ctx context.Context, id int64) (*models.Ingredient, error) {
	const query = `SELECT id, name, measurement_unit FROM ingredients WHERE id = $1`

	var ingredient models.Ingredient
	err := sqlx.GetContext(ctx, executor(ctx, r.db, r.txGetter), &ingredient, query, id)
	logQuery(query, []any{id}, ingredient.Name, err)

	if err != nil {
		return nil, translateError(err)
	}
	return &ingredient, nil
}

// Import inserts the ingredients that are not in the catalog yet and
// returns how many were added.
func (r *IngredientRepository) Import(ctx context.Context, items []models.Ingredient) (int, error) {
	const query = `
		INSERT INTO ingredients (name, measurement_unit)
		SELECT u.name, u.measurement_unit
		FROM unnest($1::TEXT[], $2::TEXT[]) AS u(name, measurement_unit)
		ON CONFLICT ON CONSTRAINT ingredients_unique DO NOTHING
	`
	names := make([]string, len(items))
	units := make([]string, len(items))
	for i, item := range items {
		names[i] = item.Name
		units[i] = item.MeasurementUnit
	}

	res, err := executor(ctx, r.db, r.txGetter).ExecContext(ctx, query, names, units)
	added := affected(res)
	logQuery(query, []any{len(items)}, added, err)

	return int(added), translateError(err)
}

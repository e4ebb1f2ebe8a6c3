package repositories

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/sbilibin2017/foodgram/internal/models"
)

const recipeColumns = `r.id, r.author_id, r.name, r.text, r.image, r.cooking_time, r.pub_date`

// RecipeRepository stores recipes together with their ingredient and tag rows.
type RecipeRepository struct {
	db       *sqlx.DB
	txGetter TxGetter
}

func NewRecipeRepository(db *sqlx.DB, txGetter TxGetter) *RecipeRepository {
	return &RecipeRepository{db: db, txGetter: txGetter}
}

// recipeFilterClause renders f as a WHERE clause over the alias r.
// Tag slugs match any of; all other criteria are combined with AND.
func recipeFilterClause(f models.RecipeFilter) (string, []any) {
	var (
		conds []string
		args  []any
	)
	add := func(cond string, arg any) {
		args = append(args, arg)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}

	if f.AuthorID != nil {
		add(`r.author_id = $%d`, *f.AuthorID)
	}
	if len(f.TagSlugs) > 0 {
		add(`EXISTS (
			SELECT 1 FROM recipe_tags rt JOIN tags t ON t.id = rt.tag_id
			WHERE rt.recipe_id = r.id AND t.slug = ANY($%d)
		)`, f.TagSlugs)
	}
	if f.FavoritedBy != nil {
		add(`EXISTS (
			SELECT 1 FROM favorites f WHERE f.recipe_id = r.id AND f.user_id = $%d
		)`, *f.FavoritedBy)
	}
	if f.InShoppingCartOf != nil {
		add(`EXISTS (
			SELECT 1 FROM shopping_carts c WHERE c.recipe_id = r.id AND c.user_id = $%d
		)`, *f.InShoppingCartOf)
	}

	if len(conds) == 0 {
		return "", args
	}
	return "WHERE " + strings.Join(conds, " AND "), args
}

// List returns the recipes matching f, newest first.
func (r *RecipeRepository) List(ctx context.Context, f models.RecipeFilter) ([]models.RecipeDB, error) {
	where, args := recipeFilterClause(f)
	args = append(args, nullableLimit(f.Limit), f.Offset)
	query := fmt.Sprintf(`
		SELECT %s
		FROM recipes r
		%s
		ORDER BY r.pub_date DESC, r.id DESC
		LIMIT $%d OFFSET $%d
	`, recipeColumns, where, len(args)-1, len(args))

	var recipes []models.RecipeDB
	err := sqlx.SelectContext(ctx, executor(ctx, r.db, r.txGetter), &recipes, query, args...)
	logQuery(query, args, len(recipes), err)

	return recipes, translateError(err)
}

// Count returns how many recipes match f, ignoring its limit and offset.
func (r *RecipeRepository) Count(ctx context.Context, f models.RecipeFilter) (int, error) {
	where, args := recipeFilterClause(f)
	query := `SELECT COUNT(*) FROM recipes r ` + where

	var count int
	err := sqlx.GetContext(ctx, executor(ctx, r.db, r.txGetter), &count, query, args...)
	logQuery(query, args, count, err)

	return count, translateError(err)
}

func (r *RecipeRepository) GetByID(ctx context.Context, id int64) (*models.RecipeDB, error) {
	query := `SELECT ` + recipeColumns + ` FROM recipes r WHERE r.id = $1`

	var recipe models.RecipeDB
	err := sqlx.GetContext(ctx, executor(ctx, r.db, r.txGetter), &recipe, query, id)
	logQuery(query, []any{id}, recipe.Name, err)

	if err != nil {
		return nil, translateError(err)
	}
	return &recipe, nil
}

// Create inserts the scalar fields of recipe and fills its ID and PubDate.
func (r *RecipeRepository) Create(ctx context.Context, recipe *models.RecipeDB) error {
	const query = `
		INSERT INTO recipes (author_id, name, text, image, cooking_time)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, pub_date
	`
	args := []any{recipe.AuthorID, recipe.Name, recipe.Text, recipe.Image, recipe.CookingTime}

	err := executor(ctx, r.db, r.txGetter).
		QueryRowxContext(ctx, query, args...).
		Scan(&recipe.ID, &recipe.PubDate)
	logQuery(query, args, recipe.ID, err)

	return translateError(err)
}

// Update overwrites name, text, image and cooking time.
// Author and publish date are never changed.
func (r *RecipeRepository) Update(ctx context.Context, recipe *models.RecipeDB) error {
	const query = `
		UPDATE recipes
		SET name = $2, text = $3, image = $4, cooking_time = $5
		WHERE id = $1
	`
	args := []any{recipe.ID, recipe.Name, recipe.Text, recipe.Image, recipe.CookingTime}

	res, err := executor(ctx, r.db, r.txGetter).ExecContext(ctx, query, args...)
	rowsAffected := affected(res)
	logQuery(query, args, rowsAffected, err)

	if err != nil {
		return translateError(err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes the recipe; its ingredient, tag, favorite and cart rows
// go with it.
func (r *RecipeRepository) Delete(ctx context.Context, id int64) error {
	const query = `DELETE FROM recipes WHERE id = $1`

	res, err := executor(ctx, r.db, r.txGetter).ExecContext(ctx, query, id)
	rowsAffected := affected(res)
	logQuery(query, []any{id}, rowsAffected, err)

	if err != nil {
		return translateError(err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// ReplaceIngredients deletes every ingredient row of the recipe and inserts items.
// Run it inside a transaction so a failed insert does not leave the recipe empty.
func (r *RecipeRepository) ReplaceIngredients(ctx context.Context, recipeID int64, items []models.IngredientAmount) error {
	const deleteQuery = `DELETE FROM recipe_ingredients WHERE recipe_id = $1`
	const insertQuery = `
		INSERT INTO recipe_ingredients (recipe_id, ingredient_id, amount)
		SELECT $1, u.ingredient_id, u.amount
		FROM unnest($2::BIGINT[], $3::INTEGER[]) AS u(ingredient_id, amount)
	`
	exec := executor(ctx, r.db, r.txGetter)

	res, err := exec.ExecContext(ctx, deleteQuery, recipeID)
	logQuery(deleteQuery, []any{recipeID}, affected(res), err)
	if err != nil {
		return translateError(err)
	}

	ids := make([]int64, len(items))
	amounts := make([]int64, len(items))
	for i, item := range items {
		ids[i] = item.ID
		amounts[i] = int64(item.Amount)
	}
	args := []any{recipeID, ids, amounts}

	res, err = exec.ExecContext(ctx, insertQuery, args...)
	logQuery(insertQuery, args, affected(res), err)

	return translateError(err)
}

// SetTags makes tagIDs the exact tag set of the recipe.
func (r *RecipeRepository) SetTags(ctx context.Context, recipeID int64, tagIDs []int64) error {
	const deleteQuery = `DELETE FROM recipe_tags WHERE recipe_id = $1`
	const insertQuery = `
		INSERT INTO recipe_tags (recipe_id, tag_id)
		SELECT $1, u.tag_id FROM unnest($2::BIGINT[]) AS u(tag_id)
	`
	exec := executor(ctx, r.db, r.txGetter)

	res, err := exec.ExecContext(ctx, deleteQuery, recipeID)
	logQuery(deleteQuery, []any{recipeID}, affected(res), err)
	if err != nil {
		return translateError(err)
	}

	args := []any{recipeID, tagIDs}
	res, err = exec.ExecContext(ctx, insertQuery, args...)
	logQuery(insertQuery, args, affected(res), err)

	return translateError(err)
}

// GetIngredients returns the ingredient rows of the given recipes.
func (r *RecipeRepository) GetIngredients(ctx context.Context, recipeIDs []int64) ([]models.RecipeIngredientDB, error) {
	if len(recipeIDs) == 0 {
		return nil, nil
	}
	const query = `
		SELECT ri.recipe_id, ri.ingredient_id, i.name, i.measurement_unit, ri.amount
		FROM recipe_ingredients ri
		JOIN ingredients i ON i.id = ri.ingredient_id
		WHERE ri.recipe_id = ANY($1)
		ORDER BY ri.recipe_id, ri.id
	`

	var rows []models.RecipeIngredientDB
	err := sqlx.SelectContext(ctx, executor(ctx, r.db, r.txGetter), &rows, query, recipeIDs)
	logQuery(query, []any{recipeIDs}, len(rows), err)

	return rows, translateError(err)
}

// GetTags returns the tag rows of the given recipes.
func (r *RecipeRepository) GetTags(ctx context.Context, recipeIDs []int64) ([]models.RecipeTagDB, error) {
	if len(recipeIDs) == 0 {
		return nil, nil
	}
	const query = `
		SELECT rt.recipe_id, t.id, t.name, t.color, t.slug
		FROM recipe_tags rt
		JOIN tags t ON t.id = rt.tag_id
		WHERE rt.recipe_id = ANY($1)
		ORDER BY rt.recipe_id, t.id
	`

	var rows []models.RecipeTagDB
	err := sqlx.SelectContext(ctx, executor(ctx, r.db, r.txGetter), &rows, query, recipeIDs)
	logQuery(query, []any{recipeIDs}, len(rows), err)

	return rows, translateError(err)
}

// CountByAuthors returns the number of recipes of each author.
// Authors without recipes are absent from the map.
func (r *RecipeRepository) CountByAuthors(ctx context.Context, authorIDs []int64) (map[int64]int, error) {
	counts := make(map[int64]int, len(authorIDs))
	if len(authorIDs) == 0 {
		return counts, nil
	}
	const query = `
		SELECT author_id, COUNT(*) AS count
		FROM recipes
		WHERE author_id = ANY($1)
		GROUP BY author_id
	`

	var rows []struct {
		AuthorID int64 `db:"author_id"`
		Count    int   `db:"count"`
	}
	err := sqlx.SelectContext(ctx, executor(ctx, r.db, r.txGetter), &rows, query, authorIDs)
	for _, row := range rows {
		counts[row.AuthorID] = row.Count
	}
	logQuery(query, []any{authorIDs}, counts, err)

	return counts, translateError(err)
}

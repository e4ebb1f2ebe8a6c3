package repositories

import (
	"context"
	"sort"
	"testing"

	"github.com/sbilibin2017/foodgram/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShoppingListRepository_GetItems(t *testing.T) {
	db, teardown := setupPostgres(t)
	defer teardown()

	ctx := context.Background()
	repo := NewShoppingListRepository(db, nil)
	cart := NewShoppingCartRepository(db, nil)

	userID := seedUser(t, db, "user")
	flour := seedIngredient(t, db, "flour", "g")
	eggs := seedIngredient(t, db, "eggs", "pcs")

	cake := seedRecipe(t, db, userID, "cake", nil, []models.IngredientAmount{{ID: flour, Amount: 200}, {ID: eggs, Amount: 3}})
	bread := seedRecipe(t, db, userID, "bread", nil, []models.IngredientAmount{{ID: flour, Amount: 500}})

	t.Run("empty cart", func(t *testing.T) {
		items, err := repo.GetItems(ctx, userID)
		require.NoError(t, err)
		assert.Empty(t, items)
	})

	require.NoError(t, cart.Add(ctx, userID, cake))
	require.NoError(t, cart.Add(ctx, userID, bread))

	t.Run("ungrouped rows", func(t *testing.T) {
		items, err := repo.GetItems(ctx, userID)
		require.NoError(t, err)
		sort.Slice(items, func(i, j int) bool { return items[i].Amount < items[j].Amount })
		assert.Equal(t, []models.ShoppingListItem{
			{Name: "eggs", MeasurementUnit: "pcs", Amount: 3},
			{Name: "flour", MeasurementUnit: "g", Amount: 200},
			{Name: "flour", MeasurementUnit: "g", Amount: 500},
		}, items)
	})

	t.Run("reflects current composition", func(t *testing.T) {
		require.NoError(t, NewRecipeRepository(db, nil).ReplaceIngredients(ctx, bread, []models.IngredientAmount{{ID: flour, Amount: 700}}))
		removed, err := cart.Remove(ctx, userID, cake)
		require.NoError(t, err)
		require.True(t, removed)

		items, err := repo.GetItems(ctx, userID)
		require.NoError(t, err)
		assert.Equal(t, []models.ShoppingListItem{{Name: "flour", MeasurementUnit: "g", Amount: 700}}, items)
	})
}

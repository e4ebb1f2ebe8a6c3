package repositories

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecipeListRepository(t *testing.T) {
	db, teardown := setupPostgres(t)
	defer teardown()

	ctx := context.Background()
	userID := seedUser(t, db, "user")
	authorID := seedUser(t, db, "author")
	recipeID := seedRecipe(t, db, authorID, "cake", nil, nil)
	otherID := seedRecipe(t, db, authorID, "pie", nil, nil)

	for name, repo := range map[string]*RecipeListRepository{
		"favorites":     NewFavoriteRepository(db, nil),
		"shopping cart": NewShoppingCartRepository(db, nil),
	} {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, repo.Add(ctx, userID, recipeID))

			err := repo.Add(ctx, userID, recipeID)
			assert.ErrorIs(t, err, ErrDuplicate)

			err = repo.Add(ctx, userID, 999)
			assert.ErrorIs(t, err, ErrReferenceNotFound)

			marked, err := repo.MarkedAmong(ctx, userID, []int64{recipeID, otherID})
			require.NoError(t, err)
			assert.True(t, marked[recipeID])
			assert.False(t, marked[otherID])

			removed, err := repo.Remove(ctx, userID, recipeID)
			require.NoError(t, err)
			assert.True(t, removed)

			removed, err = repo.Remove(ctx, userID, recipeID)
			require.NoError(t, err)
			assert.False(t, removed)
		})
	}

	t.Run("lists are independent", func(t *testing.T) {
		favorites := NewFavoriteRepository(db, nil)
		cart := NewShoppingCartRepository(db, nil)

		require.NoError(t, favorites.Add(ctx, userID, otherID))
		marked, err := cart.MarkedAmong(ctx, userID, []int64{otherID})
		require.NoError(t, err)
		assert.False(t, marked[otherID])

		var n int
		require.NoError(t, db.Get(&n, `SELECT COUNT(*) FROM favorites WHERE user_id = $1 AND recipe_id = $2`, userID, otherID))
		assert.Equal(t, 1, n)
	})
}

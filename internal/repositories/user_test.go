package repositories

import (
	"context"
	"errors"
	"testing"

	"github.com/sbilibin2017/foodgram/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserRepository(t *testing.T) {
	db, teardown := setupPostgres(t)
	defer teardown()

	repo := NewUserRepository(db, nil)
	ctx := context.Background()

	alice := &models.UserDB{
		Email:        "alice@example.com",
		Username:     "alice",
		FirstName:    "Alice",
		LastName:     "Liddell",
		PasswordHash: "hash1",
	}
	require.NoError(t, repo.Create(ctx, alice))
	assert.NotZero(t, alice.ID)
	assert.False(t, alice.CreatedAt.IsZero())

	t.Run("duplicate email", func(t *testing.T) {
		err := repo.Create(ctx, &models.UserDB{
			Email: "alice@example.com", Username: "alice2", FirstName: "A", LastName: "B", PasswordHash: "h",
		})
		var cErr *ConstraintError
		require.True(t, errors.As(err, &cErr))
		assert.ErrorIs(t, err, ErrDuplicate)
		assert.Equal(t, ConstraintUserEmail, cErr.Constraint)
	})

	t.Run("duplicate username", func(t *testing.T) {
		err := repo.Create(ctx, &models.UserDB{
			Email: "other@example.com", Username: "alice", FirstName: "A", LastName: "B", PasswordHash: "h",
		})
		var cErr *ConstraintError
		require.True(t, errors.As(err, &cErr))
		assert.Equal(t, ConstraintUserUsername, cErr.Constraint)
	})

	t.Run("get by id and email", func(t *testing.T) {
		got, err := repo.GetByID(ctx, alice.ID)
		require.NoError(t, err)
		assert.Equal(t, "alice", got.Username)
		assert.Equal(t, "hash1", got.PasswordHash)

		got, err = repo.GetByEmail(ctx, "alice@example.com")
		require.NoError(t, err)
		assert.Equal(t, alice.ID, got.ID)

		_, err = repo.GetByID(ctx, 999)
		assert.ErrorIs(t, err, ErrNotFound)

		_, err = repo.GetByEmail(ctx, "nobody@example.com")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("list and count", func(t *testing.T) {
		bobID := seedUser(t, db, "bob")
		seedUser(t, db, "aaron")

		users, err := repo.List(ctx, 2, 0)
		require.NoError(t, err)
		require.Len(t, users, 2)
		assert.Equal(t, "aaron", users[0].Username)
		assert.Equal(t, "alice", users[1].Username)

		users, err = repo.List(ctx, 0, 2)
		require.NoError(t, err)
		require.Len(t, users, 1)
		assert.Equal(t, bobID, users[0].ID)

		count, err := repo.Count(ctx)
		require.NoError(t, err)
		assert.Equal(t, 3, count)

		byIDs, err := repo.GetByIDs(ctx, []int64{alice.ID, bobID, 12345})
		require.NoError(t, err)
		assert.Len(t, byIDs, 2)
	})

	t.Run("update password", func(t *testing.T) {
		require.NoError(t, repo.UpdatePassword(ctx, alice.ID, "hash2"))
		got, err := repo.GetByID(ctx, alice.ID)
		require.NoError(t, err)
		assert.Equal(t, "hash2", got.PasswordHash)

		assert.ErrorIs(t, repo.UpdatePassword(ctx, 999, "x"), ErrNotFound)
	})
}

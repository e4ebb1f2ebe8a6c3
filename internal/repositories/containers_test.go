package repositories

import (
	"context"
	"fmt"
	"testing"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
	"github.com/sbilibin2017/foodgram/internal/models"
	"github.com/stretchr/testify/require"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// setupPostgres starts a PostgreSQL container and applies the schema.
func setupPostgres(t *testing.T) (*sqlx.DB, func()) {
	t.Helper()
	ctx := context.Background()

	req := tc.ContainerRequest{
		Image:        "postgres:15-alpine",
		Env:          map[string]string{"POSTGRES_PASSWORD": "secret", "POSTGRES_DB": "testdb", "POSTGRES_USER": "postgres"},
		ExposedPorts: []string{"5432/tcp"},
		WaitingFor: wait.ForAll(
			wait.ForListeningPort("5432/tcp"),
			wait.ForLog("database system is ready to accept connections").WithOccurrence(2),
		).WithDeadline(60 * time.Second),
	}

	container, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "5432")
	require.NoError(t, err)

	dsn := fmt.Sprintf("postgres://postgres:secret@%s:%s/testdb?sslmode=disable", host, port.Port())

	var db *sqlx.DB
	for i := 0; i < 10; i++ {
		db, err = sqlx.Connect("pgx", dsn)
		if err == nil {
			break
		}
		time.Sleep(time.Second)
	}
	require.NoError(t, err)

	require.NoError(t, Migrate(ctx, db))

	return db, func() {
		db.Close()
		container.Terminate(ctx)
	}
}

// setupRedis starts a Redis container.
func setupRedis(t *testing.T) (*redis.Client, func()) {
	t.Helper()
	ctx := context.Background()

	req := tc.ContainerRequest{
		Image:        "redis:7-alpine",
		ExposedPorts: []string{"6379/tcp"},
		WaitingFor:   wait.ForListeningPort("6379/tcp"),
	}

	container, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "6379")
	require.NoError(t, err)

	client := redis.NewClient(&redis.Options{Addr: fmt.Sprintf("%s:%s", host, port.Port())})
	require.NoError(t, client.Ping(ctx).Err())

	return client, func() {
		client.Close()
		container.Terminate(ctx)
	}
}

// --- Seed helpers ---

func seedUser(t *testing.T, db *sqlx.DB, username string) int64 {
	t.Helper()
	u := &models.UserDB{
		Email:        username + "@example.com",
		Username:     username,
		FirstName:    "First",
		LastName:     "Last",
		PasswordHash: "hash",
	}
	require.NoError(t, NewUserRepository(db, nil).Create(context.Background(), u))
	return u.ID
}

func seedIngredient(t *testing.T, db *sqlx.DB, name, unit string) int64 {
	t.Helper()
	var id int64
	err := db.Get(&id, `INSERT INTO ingredients (name, measurement_unit) VALUES ($1, $2) RETURNING id`, name, unit)
	require.NoError(t, err)
	return id
}

func seedTag(t *testing.T, db *sqlx.DB, slug string) int64 {
	t.Helper()
	var id int64
	err := db.Get(&id, `INSERT INTO tags (name, color, slug) VALUES ($1, '#FFFFFF', $2) RETURNING id`, "Tag "+slug, slug)
	require.NoError(t, err)
	return id
}

func seedRecipe(t *testing.T, db *sqlx.DB, authorID int64, name string, tagIDs []int64, items []models.IngredientAmount) int64 {
	t.Helper()
	ctx := context.Background()
	repo := NewRecipeRepository(db, nil)

	recipe := &models.RecipeDB{
		AuthorID:    authorID,
		Name:        name,
		Text:        "text",
		Image:       "http://media/" + name + ".png",
		CookingTime: 10,
	}
	require.NoError(t, repo.Create(ctx, recipe))
	if len(items) > 0 {
		require.NoError(t, repo.ReplaceIngredients(ctx, recipe.ID, items))
	}
	if len(tagIDs) > 0 {
		require.NoError(t, repo.SetTags(ctx, recipe.ID, tagIDs))
	}
	return recipe.ID
}

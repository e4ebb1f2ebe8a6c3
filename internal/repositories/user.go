package repositories

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/sbilibin2017/foodgram/internal/models"
)

const userColumns = `id, email, username, first_name, last_name, password_hash, created_at`

// UserRepository stores users.
type UserRepository struct {
	db       *sqlx.DB
	txGetter TxGetter
}

func NewUserRepository(db *sqlx.DB, txGetter TxGetter) *UserRepository {
	return &UserRepository{db: db, txGetter: txGetter}
}

// Create inserts u and fills its ID and CreatedAt.
// A taken email or username yields a *ConstraintError wrapping ErrDuplicate.
func (r *UserRepository) Create(ctx context.Context, u *models.UserDB) error {
	const query = `
		INSERT INTO users (email, username, first_name, last_name, password_hash)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`
	args := []any{u.Email, u.Username, u.FirstName, u.LastName, "***"}

	err := executor(ctx, r.db, r.txGetter).
		QueryRowxContext(ctx, query, u.Email, u.Username, u.FirstName, u.LastName, u.PasswordHash).
		Scan(&u.ID, &u.CreatedAt)
	logQuery(query, args, u.ID, err)

	return translateError(err)
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (*models.UserDB, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`

	var user models.UserDB
	err := sqlx.GetContext(ctx, executor(ctx, r.db, r.txGetter), &user, query, id)
	logQuery(query, []any{id}, user.Username, err)

	if err != nil {
		return nil, translateError(err)
	}
	return &user, nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.UserDB, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`

	var user models.UserDB
	err := sqlx.GetContext(ctx, executor(ctx, r.db, r.txGetter), &user, query, email)
	logQuery(query, []any{email}, user.ID, err)

	if err != nil {
		return nil, translateError(err)
	}
	return &user, nil
}

// GetByIDs returns the users with the given ids, in no particular order.
// Unknown ids are skipped.
func (r *UserRepository) GetByIDs(ctx context.Context, ids []int64) ([]models.UserDB, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	query := `SELECT ` + userColumns + ` FROM users WHERE id = ANY($1)`

	var users []models.UserDB
	err := sqlx.SelectContext(ctx, executor(ctx, r.db, r.txGetter), &users, query, ids)
	logQuery(query, []any{ids}, len(users), err)

	return users, translateError(err)
}

// List returns users ordered by username. limit 0 means no limit.
func (r *UserRepository) List(ctx context.Context, limit, offset int) ([]models.UserDB, error) {
	query := `
		SELECT ` + userColumns + `
		FROM users
		ORDER BY username
		LIMIT $1 OFFSET $2
	`
	args := []any{nullableLimit(limit), offset}

	var users []models.UserDB
	err := sqlx.SelectContext(ctx, executor(ctx, r.db, r.txGetter), &users, query, args...)
	logQuery(query, args, len(users), err)

	return users, translateError(err)
}

func (r *UserRepository) Count(ctx context.Context) (int, error) {
	const query = `SELECT COUNT(*) FROM users`

	var count int
	err := sqlx.GetContext(ctx, executor(ctx, r.db, r.txGetter), &count, query)
	logQuery(query, nil, count, err)

	return count, translateError(err)
}

// UpdatePassword replaces the password hash of user id.
func (r *UserRepository) UpdatePassword(ctx context.Context, id int64, passwordHash string) error {
	const query = `UPDATE users SET password_hash = $2 WHERE id = $1`

	res, err := executor(ctx, r.db, r.txGetter).ExecContext(ctx, query, id, passwordHash)
	rowsAffected := affected(res)
	logQuery(query, []any{id, "***"}, rowsAffected, err)

	if err != nil {
		return translateError(err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// nullableLimit turns "no limit" into a NULL so that LIMIT NULL returns all rows.
func nullableLimit(limit int) any {
	if limit <= 0 {
		return nil
	}
	return limit
}

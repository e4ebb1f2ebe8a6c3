package repositories

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/sbilibin2017/foodgram/internal/models"
)

// SubscriptionRepository stores directed follower → author edges.
type SubscriptionRepository struct {
	db       *sqlx.DB
	txGetter TxGetter
}

func NewSubscriptionRepository(db *sqlx.DB, txGetter TxGetter) *SubscriptionRepository {
	return &SubscriptionRepository{db: db, txGetter: txGetter}
}

// Add creates the edge userID → authorID. An existing edge yields ErrDuplicate.
func (r *SubscriptionRepository) Add(ctx context.Context, userID, authorID int64) error {
	const query = `INSERT INTO subscriptions (user_id, author_id) VALUES ($1, $2)`
	args := []any{userID, authorID}

	res, err := executor(ctx, r.db, r.txGetter).ExecContext(ctx, query, args...)
	logQuery(query, args, affected(res), err)

	return translateError(err)
}

// Remove deletes the edge and reports whether it existed.
func (r *SubscriptionRepository) Remove(ctx context.Context, userID, authorID int64) (bool, error) {
	const query = `DELETE FROM subscriptions WHERE user_id = $1 AND author_id = $2`
	args := []any{userID, authorID}

	res, err := executor(ctx, r.db, r.txGetter).ExecContext(ctx, query, args...)
	rowsAffected := affected(res)
	logQuery(query, args, rowsAffected, err)

	if err != nil {
		return false, translateError(err)
	}
	return rowsAffected > 0, nil
}

// FollowedAmong returns which of authorIDs userID follows.
func (r *SubscriptionRepository) FollowedAmong(ctx context.Context, userID int64, authorIDs []int64) (map[int64]bool, error) {
	followed := make(map[int64]bool, len(authorIDs))
	if len(authorIDs) == 0 {
		return followed, nil
	}
	const query = `SELECT author_id FROM subscriptions WHERE user_id = $1 AND author_id = ANY($2)`
	args := []any{userID, authorIDs}

	var ids []int64
	err := sqlx.SelectContext(ctx, executor(ctx, r.db, r.txGetter), &ids, query, args...)
	for _, id := range ids {
		followed[id] = true
	}
	logQuery(query, args, ids, err)

	return followed, translateError(err)
}

// ListAuthors returns the users followed by userID ordered by username.
// limit 0 means no limit.
func (r *SubscriptionRepository) ListAuthors(ctx context.Context, userID int64, limit, offset int) ([]models.UserDB, error) {
	const query = `
		SELECT u.id, u.email, u.username, u.first_name, u.last_name, u.password_hash, u.created_at
		FROM subscriptions s
		JOIN users u ON u.id = s.author_id
		WHERE s.user_id = $1
		ORDER BY u.username
		LIMIT $2 OFFSET $3
	`
	args := []any{userID, nullableLimit(limit), offset}

	var users []models.UserDB
	err := sqlx.SelectContext(ctx, executor(ctx, r.db, r.txGetter), &users, query, args...)
	logQuery(query, args, len(users), err)

	return users, translateError(err)
}

func (r *SubscriptionRepository) CountAuthors(ctx context.Context, userID int64) (int, error) {
	const query = `SELECT COUNT(*) FROM subscriptions WHERE user_id = $1`

	var count int
	err := sqlx.GetContext(ctx, executor(ctx, r.db, r.txGetter), &count, query, userID)
	logQuery(query, []any{userID}, count, err)

	return count, translateError(err)
}

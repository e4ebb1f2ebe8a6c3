package repositories

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"
	"github.com/sbilibin2017/foodgram/internal/logger"
)

// Constraint names from schema.sql that callers may need to tell apart.
const (
	ConstraintUserEmail    = "users_email_unique"
	ConstraintUserUsername = "users_username_unique"
)

var (
	// ErrNotFound is returned when a row looked up by key does not exist.
	ErrNotFound = errors.New("not found")
	// ErrDuplicate is returned when an insert violates a unique constraint.
	ErrDuplicate = errors.New("duplicate entry")
	// ErrReferenceNotFound is returned when an insert references a missing row.
	ErrReferenceNotFound = errors.New("referenced row not found")
	// ErrOutOfRange is returned when a value does not fit its column.
	ErrOutOfRange = errors.New("value out of range")
)

//go:embed schema.sql
var schema string

// Migrate creates the schema. It is safe to run on every start.
func Migrate(ctx context.Context, db *sqlx.DB) error {
	_, err := db.ExecContext(ctx, schema)
	logger.Log.Infow("schema migration", "error", err)
	return err
}

// TxGetter returns the transaction bound to ctx, or nil.
type TxGetter func(ctx context.Context) *sqlx.Tx

// ConstraintError wraps ErrDuplicate or ErrReferenceNotFound with the name
// of the violated constraint.
type ConstraintError struct {
	Err        error
	Constraint string
}

func (e *ConstraintError) Error() string {
	return e.Err.Error() + ": " + e.Constraint
}

func (e *ConstraintError) Unwrap() error {
	return e.Err
}

// executor returns the request transaction if there is one, otherwise db.
func executor(ctx context.Context, db *sqlx.DB, txGetter TxGetter) sqlx.ExtContext {
	if txGetter != nil {
		if tx := txGetter(ctx); tx != nil {
			return tx
		}
	}
	return db
}

// translateError maps driver errors to the package errors.
func translateError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505":
			return &ConstraintError{Err: ErrDuplicate, Constraint: pgErr.ConstraintName}
		case "23503":
			return &ConstraintError{Err: ErrReferenceNotFound, Constraint: pgErr.ConstraintName}
		case "22003":
			return fmt.Errorf("%w: %s", ErrOutOfRange, pgErr.Message)
		}
	}
	return err
}

func logQuery(query string, args []any, result any, err error) {
	logger.Log.Debugw("query",
		"sql", strings.Join(strings.Fields(query), " "),
		"args", args,
		"result", result,
		"error", err,
	)
}

// affected returns the affected row count of res, or 0.
func affected(res sql.Result) int64 {
	if res == nil {
		return 0
	}
	n, _ := res.RowsAffected()
	return n
}

package repositories

import (
	"database/sql"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestTranslateError(t *testing.T) {
	other := errors.New("connection reset")

	tests := []struct {
		name       string
		err        error
		want       error
		constraint string
	}{
		{name: "nil", err: nil, want: nil},
		{name: "no rows", err: sql.ErrNoRows, want: ErrNotFound},
		{
			name:       "unique violation",
			err:        &pgconn.PgError{Code: "23505", ConstraintName: ConstraintUserEmail},
			want:       ErrDuplicate,
			constraint: ConstraintUserEmail,
		},
		{
			name:       "foreign key violation",
			err:        &pgconn.PgError{Code: "23503", ConstraintName: "recipe_tags_tag_id_fkey"},
			want:       ErrReferenceNotFound,
			constraint: "recipe_tags_tag_id_fkey",
		},
		{name: "numeric out of range", err: &pgconn.PgError{Code: "22003", Message: "integer out of range"}, want: ErrOutOfRange},
		{name: "other", err: other, want: other},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := translateError(tt.err)
			if tt.want == nil {
				assert.NoError(t, got)
				return
			}
			assert.ErrorIs(t, got, tt.want)

			var cErr *ConstraintError
			if tt.constraint != "" && assert.True(t, errors.As(got, &cErr)) {
				assert.Equal(t, tt.constraint, cErr.Constraint)
			}
		})
	}
}

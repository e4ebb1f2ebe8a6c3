package repositories

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/sbilibin2017/foodgram/internal/models"
)

// TagRepository reads and loads the tag catalog.
type TagRepository struct {
	db       *sqlx.DB
	txGetter TxGetter
}

func NewTagRepository(db *sqlx.DB, txGetter TxGetter) *TagRepository {
	return &TagRepository{db: db, txGetter: txGetter}
}

func (r *TagRepository) List(ctx context.Context) ([]models.Tag, error) {
	const query = `SELECT id, name, color, slug FROM tags ORDER BY id`

	var tags []models.Tag
	err := sqlx.SelectContext(ctx, executor(ctx, r.db, r.txGetter), &tags, query)
	logQuery(query, nil, len(tags), err)

	return tags, translateError(err)
}

func (r *TagRepository) GetByID(ctx context.Context, id int64) (*models.Tag, error) {
	const query = `SELECT id, name, color, slug FROM tags WHERE id = $1`

	var tag models.Tag
	err := sqlx.GetContext(ctx, executor(ctx, r.db, r.txGetter), &tag, query, id)
	logQuery(query, []any{id}, tag.Slug, err)

	if err != nil {
		return nil, translateError(err)
	}
	return &tag, nil
}

// Import inserts tags whose name and slug are both unused and returns how
// many were added.
func (r *TagRepository) Import(ctx context.Context, tags []models.Tag) (int, error) {
	const query = `
		INSERT INTO tags (name, color, slug)
		SELECT u.name, u.color, u.slug
		FROM unnest($1::TEXT[], $2::TEXT[], $3::TEXT[]) AS u(name, color, slug)
		ON CONFLICT DO NOTHING
	`
	names := make([]string, len(tags))
	colors := make([]string, len(tags))
	slugs := make([]string, len(tags))
	for i, tag := range tags {
		names[i], colors[i], slugs[i] = tag.Name, tag.Color, tag.Slug
	}

	res, err := executor(ctx, r.db, r.txGetter).ExecContext(ctx, query, names, colors, slugs)
	added := affected(res)
	logQuery(query, []any{len(tags)}, added, err)

	return int(added), translateError(err)
}

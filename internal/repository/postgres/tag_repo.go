package postgres

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/karan-lumetium/portfolio-website/internal/domain/tag"
)

type TagRepo struct {
	db *sql.DB
}

func NewTagRepo(db *sql.DB) *TagRepo {
	return &TagRepo{db: db}
}

func (r *TagRepo) Create(ctx context.Context, t *tag.Tag) error {
	t.ID = uuid.NewString()
	query := `
        INSERT INTO tags (id, name, slug)
        VALUES ($1, $2, $3)
        RETURNING created_at
    `
	err := r.db.QueryRowContext(ctx, query, t.ID, t.Name, t.Slug).Scan(&t.CreatedAt)
	if isUniqueViolation(err) {
		return tag.ErrAlreadyExists
	}
	return err
}

func (r *TagRepo) List(ctx context.Context) ([]tag.Tag, error) {
	rows, err := r.db.QueryContext(ctx, `
        SELECT t.id, t.name, t.slug, t.created_at, COUNT(pt.post_id)
        FROM tags t
        LEFT JOIN post_tags pt ON pt.tag_id = t.id
        GROUP BY t.id, t.name, t.slug, t.created_at
        ORDER BY t.name ASC
    `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tags []tag.Tag
	for rows.Next() {
		var t tag.Tag
		if err := rows.Scan(&t.ID, &t.Name, &t.Slug, &t.CreatedAt, &t.PostCount); err != nil {
			return nil, err
		}
		tags = append(tags, t)
	}
	return tags, rows.Err()
}

func (r *TagRepo) SlugExists(ctx context.Context, slug string) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM tags WHERE slug = $1)`, slug).Scan(&exists)
	return exists, err
}

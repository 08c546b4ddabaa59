package postgres

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/karan-lumetium/portfolio-website/internal/domain/category"
)

type CategoryRepo struct {
	db *sql.DB
}

func NewCategoryRepo(db *sql.DB) *CategoryRepo {
	return &CategoryRepo{db: db}
}

func (r *CategoryRepo) Create(ctx context.Context, c *category.Category) error {
	c.ID = uuid.NewString()
	query := `
        INSERT INTO categories (id, name, slug, description)
        VALUES ($1, $2, $3, $4)
        RETURNING created_at
    `
	err := r.db.QueryRowContext(ctx, query, c.ID, c.Name, c.Slug, c.Description).
		Scan(&c.CreatedAt)
	if isUniqueViolation(err) {
		return category.ErrAlreadyExists
	}
	return err
}

func (r *CategoryRepo) List(ctx context.Context) ([]category.Category, error) {
	rows, err := r.db.QueryContext(ctx, `
        SELECT c.id, c.name, c.slug, c.description, c.created_at, COUNT(p.id)
        FROM categories c
        LEFT JOIN posts p ON p.category_id = c.id
        GROUP BY c.id, c.name, c.slug, c.description, c.created_at
        ORDER BY c.name ASC
    `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var categories []category.Category
	for rows.Next() {
		var c category.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Slug, &c.Description, &c.CreatedAt, &c.PostCount); err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

func (r *CategoryRepo) SlugExists(ctx context.Context, slug string) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM categories WHERE slug = $1)`, slug).Scan(&exists)
	return exists, err
}

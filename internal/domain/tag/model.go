package tag

import (
	"context"
	"time"
)

type Tag struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	PostCount int64     `json:"postCount"`
	CreatedAt time.Time `json:"createdAt"`
}

type Repository interface {
	Create(ctx context.Context, t *Tag) error
	List(ctx context.Context) ([]Tag, error)
	SlugExists(ctx context.Context, slug string) (bool, error)
}

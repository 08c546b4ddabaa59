package blog

import (
	"context"
	"time"
)

type Author struct {
	ID        string  `json:"id"`
	Username  string  `json:"username"`
	FirstName *string `json:"firstName"`
	LastName  *string `json:"lastName"`
	Avatar    *string `json:"avatar,omitempty"`
	Bio       *string `json:"bio,omitempty"`
}

type CategoryRef struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Slug        string  `json:"slug"`
	Description *string `json:"description,omitempty"`
}

type TagRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

type Post struct {
	ID            string       `json:"id"`
	Title         string       `json:"title"`
	Slug          string       `json:"slug"`
	Content       string       `json:"content"`
	Excerpt       *string      `json:"excerpt,omitempty"`
	FeaturedImage *string      `json:"featuredImage,omitempty"`
	Published     bool         `json:"published"`
	PublishedAt   *time.Time   `json:"publishedAt,omitempty"`
	ViewCount     int64        `json:"viewCount"`
	AuthorID      string       `json:"authorId"`
	CategoryID    *string      `json:"categoryId,omitempty"`
	Author        *Author      `json:"author,omitempty"`
	Category      *CategoryRef `json:"category,omitempty"`
	Tags          []TagRef     `json:"tags"`
	CreatedAt     time.Time    `json:"createdAt"`
	UpdatedAt     time.Time    `json:"updatedAt"`
}

// ListFilter narrows the public listing. Category and Tag hold slugs.
type ListFilter struct {
	Page     int
	Limit    int
	Category string
	Tag      string
	Search   string
}

type CreateInput struct {
	Title         string
	Content       string
	Excerpt       *string
	FeaturedImage *string
	Published     bool
	CategoryID    *string
	TagIDs        []string
}

// UpdateInput leaves nil fields untouched. TagIDs always replaces the tag
// set, mirroring how the admin UI submits the full selection.
type UpdateInput struct {
	Title         *string
	Content       *string
	Excerpt       *string
	FeaturedImage *string
	Published     *bool
	PublishedAt   *time.Time
	CategoryID    *string
	TagIDs        []string
}

type Repository interface {
	Create(ctx context.Context, p *Post, tagIDs []string) error
	GetByID(ctx context.Context, id string) (*Post, error)
	GetBySlug(ctx context.Context, slug string) (*Post, error)
	List(ctx context.Context, f ListFilter) ([]Post, int64, error)
	Update(ctx context.Context, id string, in UpdateInput) error
	Delete(ctx context.Context, id string) error
	SlugExists(ctx context.Context, slug string) (bool, error)
	IncrementViewCount(ctx context.Context, id string) error
}

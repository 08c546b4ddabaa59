package blog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/karan-lumetium/portfolio-website/internal/platform/slug"
)

var (
	ErrMissingFields = errors.New("title and content are required")
	ErrPostNotFound  = errors.New("post not found")
)

const (
	defaultPage  = 1
	defaultLimit = 10
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(ctx context.Context, f ListFilter) ([]Post, int64, error) {
	if f.Page <= 0 {
		f.Page = defaultPage
	}
	if f.Limit <= 0 {
		f.Limit = defaultLimit
	}
	return s.repo.List(ctx, f)
}

func (s *Service) GetBySlug(ctx context.Context, postSlug string) (*Post, error) {
	p, err := s.repo.GetBySlug(ctx, postSlug)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}
	return p, nil
}

func (s *Service) Create(ctx context.Context, authorID string, in CreateInput) (*Post, error) {
	if in.Title == "" || in.Content == "" {
		return nil, ErrMissingFields
	}

	postSlug, err := s.uniqueSlug(ctx, slug.Make(in.Title))
	if err != nil {
		return nil, err
	}

	p := &Post{
		Title:         in.Title,
		Slug:          postSlug,
		Content:       in.Content,
		Excerpt:       in.Excerpt,
		FeaturedImage: in.FeaturedImage,
		Published:     in.Published,
		AuthorID:      authorID,
		CategoryID:    in.CategoryID,
	}
	if in.Published {
		now := time.Now()
		p.PublishedAt = &now
	}

	if err := s.repo.Create(ctx, p, in.TagIDs); err != nil {
		return nil, err
	}

	return s.repo.GetByID(ctx, p.ID)
}

func (s *Service) Update(ctx context.Context, id string, in UpdateInput) (*Post, error) {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}

	// publishedAt is set once, on the draft-to-published transition.
	if in.Published != nil && *in.Published && !existing.Published {
		now := time.Now()
		in.PublishedAt = &now
	}

	if err := s.repo.Update(ctx, id, in); err != nil {
		return nil, err
	}

	return s.repo.GetByID(ctx, id)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrPostNotFound
		}
		return err
	}
	return nil
}

// uniqueSlug appends -1, -2, ... until the slug is free. Two concurrent
// creates with the same title can still collide; the posts.slug unique
// constraint is the final arbiter and surfaces as an error.
func (s *Service) uniqueSlug(ctx context.Context, base string) (string, error) {
	candidate := base
	for counter := 1; ; counter++ {
		exists, err := s.repo.SlugExists(ctx, candidate)
		if err != nil {
			return "", err
		}
		if !exists {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s-%d", base, counter)
	}
}

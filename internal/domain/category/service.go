package category

import (
	"context"
	"errors"

	"github.com/karan-lumetium/portfolio-website/internal/platform/slug"
)

var (
	ErrNameRequired  = errors.New("category name is required")
	ErrAlreadyExists = errors.New("category already exists")
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(ctx context.Context) ([]Category, error) {
	return s.repo.List(ctx)
}

func (s *Service) Create(ctx context.Context, name string, description *string) (*Category, error) {
	if name == "" {
		return nil, ErrNameRequired
	}

	categorySlug := slug.Make(name)

	exists, err := s.repo.SlugExists(ctx, categorySlug)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrAlreadyExists
	}

	c := &Category{
		Name:        name,
		Slug:        categorySlug,
		Description: description,
	}
	if err := s.repo.Create(ctx, c); err != nil {
		return nil, err
	}

	return c, nil
}

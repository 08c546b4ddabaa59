package tag

import (
	"context"
	"errors"

	"github.com/karan-lumetium/portfolio-website/internal/platform/slug"
)

var (
	ErrNameRequired  = errors.New("tag name is required")
	ErrAlreadyExists = errors.New("tag already exists")
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(ctx context.Context) ([]Tag, error) {
	return s.repo.List(ctx)
}

func (s *Service) Create(ctx context.Context, name string) (*Tag, error) {
	if name == "" {
		return nil, ErrNameRequired
	}

	tagSlug := slug.Make(name)

	exists, err := s.repo.SlugExists(ctx, tagSlug)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrAlreadyExists
	}

	t := &Tag{
		Name: name,
		Slug: tagSlug,
	}
	if err := s.repo.Create(ctx, t); err != nil {
		return nil, err
	}

	return t, nil
}

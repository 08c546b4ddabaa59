package category

import (
	"context"
	"errors"
	"fmt"
	"testing"
)

type memoryRepo struct {
	categories []Category
	nextID     int
}

func (r *memoryRepo) Create(_ context.Context, c *Category) error {
	r.nextID++
	c.ID = fmt.Sprintf("c%d", r.nextID)
	r.categories = append(r.categories, *c)
	return nil
}

func (r *memoryRepo) List(_ context.Context) ([]Category, error) {
	return r.categories, nil
}

func (r *memoryRepo) SlugExists(_ context.Context, slug string) (bool, error) {
	for _, c := range r.categories {
		if c.Slug == slug {
			return true, nil
		}
	}
	return false, nil
}

func TestCreate(t *testing.T) {
	svc := NewService(&memoryRepo{})

	desc := "All things web"
	c, err := svc.Create(context.Background(), "Web Development", &desc)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if c.Slug != "web-development" {
		t.Errorf("slug = %q", c.Slug)
	}
	if c.Description == nil || *c.Description != desc {
		t.Errorf("description = %v", c.Description)
	}
}

func TestCreateEmptyName(t *testing.T) {
	svc := NewService(&memoryRepo{})

	if _, err := svc.Create(context.Background(), "", nil); !errors.Is(err, ErrNameRequired) {
		t.Errorf("Create = %v, want ErrNameRequired", err)
	}
}

func TestCreateDuplicateSlug(t *testing.T) {
	svc := NewService(&memoryRepo{})
	ctx := context.Background()

	if _, err := svc.Create(ctx, "DevOps", nil); err != nil {
		t.Fatalf("Create: %v", err)
	}
	// Different casing, same slug.
	if _, err := svc.Create(ctx, "devops", nil); !errors.Is(err, ErrAlreadyExists) {
		t.Errorf("duplicate = %v, want ErrAlreadyExists", err)
	}
}

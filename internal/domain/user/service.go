package user

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/karan-lumetium/portfolio-website/internal/platform/password"
)

var (
	ErrMissingFields      = errors.New("email, username, and password are required")
	ErrMissingCredentials = errors.New("email and password are required")
	ErrAlreadyExists      = errors.New("user with this email or username already exists")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInactiveUser       = errors.New("account is deactivated")
	ErrNotFound           = errors.New("user not found")
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type RegisterInput struct {
	Email     string
	Username  string
	Password  string
	FirstName *string
	LastName  *string
}

func (s *Service) Register(ctx context.Context, in RegisterInput) (*User, error) {
	if in.Email == "" || in.Username == "" || in.Password == "" {
		return nil, ErrMissingFields
	}

	email := strings.ToLower(in.Email)
	username := strings.ToLower(in.Username)

	if _, err := s.repo.GetByEmailOrUsername(ctx, email, username); err == nil {
		return nil, ErrAlreadyExists
	}

	hash, err := password.Hash(in.Password)
	if err != nil {
		return nil, err
	}

	u := &User{
		Email:        email,
		Username:     username,
		PasswordHash: hash,
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		Role:         RoleUser,
		IsActive:     true,
	}

	// Two concurrent registrations can both pass the lookup above; the
	// unique constraints settle it and the repo reports ErrAlreadyExists.
	if err := s.repo.Create(ctx, u); err != nil {
		return nil, err
	}

	return u, nil
}

// Login deliberately returns the same ErrInvalidCredentials for an unknown
// email and a wrong password. Only a deactivated account is told apart.
func (s *Service) Login(ctx context.Context, email, pass string) (*User, error) {
	if email == "" || pass == "" {
		return nil, ErrMissingCredentials
	}

	u, err := s.repo.GetByEmail(ctx, strings.ToLower(email))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if !u.IsActive {
		return nil, ErrInactiveUser
	}

	if !password.Verify(pass, u.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	return u, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (*User, error) {
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return u, nil
}

// UpdateProfile changes first name, last name and bio only. Role, email,
// username and activation state have no mutation path here.
func (s *Service) UpdateProfile(ctx context.Context, id string, upd ProfileUpdate) (*User, error) {
	u, err := s.repo.UpdateProfile(ctx, id, upd)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return u, nil
}

package postgres

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/karan-lumetium/portfolio-website/internal/domain/user"
)

const userColumns = `id, email, username, password_hash, first_name, last_name, bio, avatar, role, is_active, is_email_verified, created_at, updated_at`

type UserRepo struct {
	db *sql.DB
}

func NewUserRepo(db *sql.DB) *UserRepo {
	return &UserRepo{db: db}
}

func (r *UserRepo) Create(ctx context.Context, u *user.User) error {
	u.ID = uuid.NewString()
	query := `
        INSERT INTO users (id, email, username, password_hash, first_name, last_name, role)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
        RETURNING is_active, is_email_verified, created_at, updated_at
    `
	err := r.db.QueryRowContext(ctx, query,
		u.ID, u.Email, u.Username, u.PasswordHash, u.FirstName, u.LastName, u.Role).
		Scan(&u.IsActive, &u.IsEmailVerified, &u.CreatedAt, &u.UpdatedAt)
	if isUniqueViolation(err) {
		return user.ErrAlreadyExists
	}
	return err
}

func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	return r.scanUser(r.db.QueryRowContext(ctx, query, email))
}

func (r *UserRepo) GetByEmailOrUsername(ctx context.Context, email, username string) (*user.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1 OR username = $2`
	return r.scanUser(r.db.QueryRowContext(ctx, query, email, username))
}

func (r *UserRepo) GetByID(ctx context.Context, id string) (*user.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return r.scanUser(r.db.QueryRowContext(ctx, query, id))
}

func (r *UserRepo) UpdateProfile(ctx context.Context, id string, upd user.ProfileUpdate) (*user.User, error) {
	query := `
        UPDATE users
        SET first_name = COALESCE($2, first_name),
            last_name  = COALESCE($3, last_name),
            bio        = COALESCE($4, bio),
            updated_at = now()
        WHERE id = $1
        RETURNING ` + userColumns
	return r.scanUser(r.db.QueryRowContext(ctx, query, id, upd.FirstName, upd.LastName, upd.Bio))
}

func (r *UserRepo) scanUser(row *sql.Row) (*user.User, error) {
	u := &user.User{}
	err := row.Scan(
		&u.ID, &u.Email, &u.Username, &u.PasswordHash,
		&u.FirstName, &u.LastName, &u.Bio, &u.Avatar,
		&u.Role, &u.IsActive, &u.IsEmailVerified,
		&u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return u, nil
}

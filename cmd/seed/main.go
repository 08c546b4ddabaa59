// Command seed provisions the initial data set: the admin account, default
// categories and tags, and one sample post. Every insert is idempotent, so
// the command is safe to re-run.
package main

import (
	"context"
	"database/sql"
	"log"

	"github.com/google/uuid"

	"github.com/karan-lumetium/portfolio-website/internal/config"
	"github.com/karan-lumetium/portfolio-website/internal/domain/user"
	"github.com/karan-lumetium/portfolio-website/internal/platform/database"
	"github.com/karan-lumetium/portfolio-website/internal/platform/password"
)

const (
	adminEmail    = "admin@portfolio.com"
	adminPassword = "Admin@123456"
)

func main() {
	cfg := config.Load()

	db, err := database.NewPostgres(cfg.DB_DSN)
	if err != nil {
		log.Fatalf("db connect error: %v", err)
	}
	defer db.Close()

	ctx := context.Background()

	if err := database.Migrate(ctx, db); err != nil {
		log.Fatalf("db migrate error: %v", err)
	}

	adminID, err := seedAdmin(ctx, db)
	if err != nil {
		log.Fatalf("seed admin: %v", err)
	}
	log.Printf("admin user ready: %s", adminEmail)

	if err := seedCategories(ctx, db); err != nil {
		log.Fatalf("seed categories: %v", err)
	}
	if err := seedTags(ctx, db); err != nil {
		log.Fatalf("seed tags: %v", err)
	}
	if err := seedSamplePost(ctx, db, adminID); err != nil {
		log.Fatalf("seed sample post: %v", err)
	}

	log.Println("seed completed")
}

func seedAdmin(ctx context.Context, db *sql.DB) (string, error) {
	var id string
	err := db.QueryRowContext(ctx, `SELECT id FROM users WHERE email = $1`, adminEmail).Scan(&id)
	if err == nil {
		return id, nil
	}
	if err != sql.ErrNoRows {
		return "", err
	}

	hash, err := password.Hash(adminPassword)
	if err != nil {
		return "", err
	}

	id = uuid.NewString()
	_, err = db.ExecContext(ctx, `
        INSERT INTO users (id, email, username, password_hash, first_name, last_name, bio, role, is_active, is_email_verified)
        VALUES ($1, $2, 'admin', $3, 'Admin', 'User', 'Portfolio site administrator', $4, TRUE, TRUE)
    `, id, adminEmail, hash, user.RoleAdmin)
	return id, err
}

func seedCategories(ctx context.Context, db *sql.DB) error {
	categories := []struct {
		name, slug, description string
	}{
		{"Web Development", "web-development", "Web application development"},
		{"Mobile Apps", "mobile-apps", "Mobile application development"},
		{"DevOps", "devops", "DevOps and infrastructure"},
		{"UI/UX Design", "ui-ux-design", "User interface and experience design"},
	}

	for _, c := range categories {
		_, err := db.ExecContext(ctx, `
            INSERT INTO categories (id, name, slug, description)
            VALUES ($1, $2, $3, $4)
            ON CONFLICT (slug) DO NOTHING
        `, uuid.NewString(), c.name, c.slug, c.description)
		if err != nil {
			return err
		}
	}
	log.Printf("created %d categories", len(categories))
	return nil
}

func seedTags(ctx context.Context, db *sql.DB) error {
	tags := []struct {
		name, slug string
	}{
		{"React", "react"},
		{"Node.js", "nodejs"},
		{"TypeScript", "typescript"},
		{"PostgreSQL", "postgresql"},
		{"Docker", "docker"},
		{"TailwindCSS", "tailwindcss"},
	}

	for _, t := range tags {
		_, err := db.ExecContext(ctx, `
            INSERT INTO tags (id, name, slug)
            VALUES ($1, $2, $3)
            ON CONFLICT (slug) DO NOTHING
        `, uuid.NewString(), t.name, t.slug)
		if err != nil {
			return err
		}
	}
	log.Printf("created %d tags", len(tags))
	return nil
}

func seedSamplePost(ctx context.Context, db *sql.DB, authorID string) error {
	var categoryID string
	err := db.QueryRowContext(ctx,
		`SELECT id FROM categories WHERE slug = 'web-development'`).Scan(&categoryID)
	if err != nil {
		return err
	}

	_, err = db.ExecContext(ctx, `
        INSERT INTO posts (id, title, slug, content, excerpt, published, published_at, author_id, category_id)
        VALUES ($1, 'Welcome to My Portfolio', 'welcome-to-my-portfolio',
                '# Welcome!' || chr(10) || chr(10) || 'This is my professional portfolio website where I share my projects and blog posts about web development.',
                'This is my first blog post on my new portfolio website.',
                TRUE, now(), $2, $3)
        ON CONFLICT (slug) DO NOTHING
    `, uuid.NewString(), authorID, categoryID)
	if err == nil {
		log.Println("sample blog post ready")
	}
	return err
}

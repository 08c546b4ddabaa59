package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/karan-lumetium/portfolio-website/internal/domain/blog"
)

const postSelect = `
    SELECT p.id, p.title, p.slug, p.content, p.excerpt, p.featured_image,
           p.published, p.published_at, p.view_count, p.author_id, p.category_id,
           p.created_at, p.updated_at,
           u.username, u.first_name, u.last_name, u.avatar, u.bio,
           c.name, c.slug, c.description
    FROM posts p
    JOIN users u ON u.id = p.author_id
    LEFT JOIN categories c ON c.id = p.category_id
`

type PostRepo struct {
	db *sql.DB
}

func NewPostRepo(db *sql.DB) *PostRepo {
	return &PostRepo{db: db}
}

func (r *PostRepo) Create(ctx context.Context, p *blog.Post, tagIDs []string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	p.ID = uuid.NewString()
	query := `
        INSERT INTO posts (id, title, slug, content, excerpt, featured_image,
                           published, published_at, author_id, category_id)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
        RETURNING view_count, created_at, updated_at
    `
	err = tx.QueryRowContext(ctx, query,
		p.ID, p.Title, p.Slug, p.Content, p.Excerpt, p.FeaturedImage,
		p.Published, p.PublishedAt, p.AuthorID, p.CategoryID,
	).Scan(&p.ViewCount, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return err
	}

	for _, tagID := range tagIDs {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO post_tags (post_id, tag_id) VALUES ($1, $2)`, p.ID, tagID); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (r *PostRepo) GetByID(ctx context.Context, id string) (*blog.Post, error) {
	return r.getOne(ctx, postSelect+` WHERE p.id = $1`, id)
}

func (r *PostRepo) GetBySlug(ctx context.Context, slug string) (*blog.Post, error) {
	return r.getOne(ctx, postSelect+` WHERE p.slug = $1`, slug)
}

func (r *PostRepo) getOne(ctx context.Context, query string, arg any) (*blog.Post, error) {
	p, err := scanPost(r.db.QueryRowContext(ctx, query, arg))
	if err != nil {
		return nil, err
	}

	tags, err := r.loadTags(ctx, []string{p.ID})
	if err != nil {
		return nil, err
	}
	p.Tags = tags[p.ID]
	if p.Tags == nil {
		p.Tags = []blog.TagRef{}
	}
	return p, nil
}

func (r *PostRepo) List(ctx context.Context, f blog.ListFilter) ([]blog.Post, int64, error) {
	conds := []string{"p.published = TRUE"}
	args := []any{}

	if f.Category != "" {
		args = append(args, f.Category)
		conds = append(conds, fmt.Sprintf("c.slug = $%d", len(args)))
	}
	if f.Tag != "" {
		args = append(args, f.Tag)
		conds = append(conds, fmt.Sprintf(
			"EXISTS (SELECT 1 FROM post_tags pt JOIN tags t ON t.id = pt.tag_id WHERE pt.post_id = p.id AND t.slug = $%d)",
			len(args)))
	}
	if f.Search != "" {
		args = append(args, "%"+f.Search+"%")
		conds = append(conds, fmt.Sprintf("(p.title ILIKE $%d OR p.content ILIKE $%d)", len(args), len(args)))
	}

	where := " WHERE " + strings.Join(conds, " AND ")

	countQuery := `
        SELECT COUNT(*)
        FROM posts p
        JOIN users u ON u.id = p.author_id
        LEFT JOIN categories c ON c.id = p.category_id
    ` + where

	var total int64
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	args = append(args, f.Limit)
	limitIdx := len(args)
	args = append(args, (f.Page-1)*f.Limit)
	offsetIdx := len(args)

	listQuery := postSelect + where +
		fmt.Sprintf(" ORDER BY p.published_at DESC LIMIT $%d OFFSET $%d", limitIdx, offsetIdx)

	rows, err := r.db.QueryContext(ctx, listQuery, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var posts []blog.Post
	var ids []string
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, 0, err
		}
		posts = append(posts, *p)
		ids = append(ids, p.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	tags, err := r.loadTags(ctx, ids)
	if err != nil {
		return nil, 0, err
	}
	for i := range posts {
		posts[i].Tags = tags[posts[i].ID]
		if posts[i].Tags == nil {
			posts[i].Tags = []blog.TagRef{}
		}
	}

	return posts, total, nil
}

func (r *PostRepo) Update(ctx context.Context, id string, in blog.UpdateInput) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	query := `
        UPDATE posts
        SET title          = COALESCE($2, title),
            content        = COALESCE($3, content),
            excerpt        = COALESCE($4, excerpt),
            featured_image = COALESCE($5, featured_image),
            published      = COALESCE($6, published),
            published_at   = COALESCE($7, published_at),
            category_id    = COALESCE($8, category_id),
            updated_at     = now()
        WHERE id = $1
    `
	res, err := tx.ExecContext(ctx, query,
		id, in.Title, in.Content, in.Excerpt, in.FeaturedImage,
		in.Published, in.PublishedAt, in.CategoryID)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err != nil {
		return err
	} else if n == 0 {
		return sql.ErrNoRows
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM post_tags WHERE post_id = $1`, id); err != nil {
		return err
	}
	for _, tagID := range in.TagIDs {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO post_tags (post_id, tag_id) VALUES ($1, $2)`, id, tagID); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (r *PostRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM posts WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err != nil {
		return err
	} else if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (r *PostRepo) SlugExists(ctx context.Context, slug string) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM posts WHERE slug = $1)`, slug).Scan(&exists)
	return exists, err
}

func (r *PostRepo) IncrementViewCount(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE posts SET view_count = view_count + 1 WHERE id = $1`, id)
	return err
}

func (r *PostRepo) loadTags(ctx context.Context, postIDs []string) (map[string][]blog.TagRef, error) {
	res := make(map[string][]blog.TagRef)
	if len(postIDs) == 0 {
		return res, nil
	}

	rows, err := r.db.QueryContext(ctx, `
        SELECT pt.post_id, t.id, t.name, t.slug
        FROM post_tags pt
        JOIN tags t ON t.id = pt.tag_id
        WHERE pt.post_id = ANY($1)
        ORDER BY t.name
    `, postIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var postID string
		var t blog.TagRef
		if err := rows.Scan(&postID, &t.ID, &t.Name, &t.Slug); err != nil {
			return nil, err
		}
		res[postID] = append(res[postID], t)
	}
	return res, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPost(row rowScanner) (*blog.Post, error) {
	p := &blog.Post{Author: &blog.Author{}}
	var catName, catSlug sql.NullString
	var catDescription *string

	err := row.Scan(
		&p.ID, &p.Title, &p.Slug, &p.Content, &p.Excerpt, &p.FeaturedImage,
		&p.Published, &p.PublishedAt, &p.ViewCount, &p.AuthorID, &p.CategoryID,
		&p.CreatedAt, &p.UpdatedAt,
		&p.Author.Username, &p.Author.FirstName, &p.Author.LastName, &p.Author.Avatar, &p.Author.Bio,
		&catName, &catSlug, &catDescription,
	)
	if err != nil {
		return nil, err
	}

	p.Author.ID = p.AuthorID
	if p.CategoryID != nil {
		p.Category = &blog.CategoryRef{
			ID:          *p.CategoryID,
			Name:        catName.String,
			Slug:        catSlug.String,
			Description: catDescription,
		}
	}
	return p, nil
}

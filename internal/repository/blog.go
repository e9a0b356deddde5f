package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/bloglist/bloglist/internal/model"
)

// ErrBlogNotFound is returned when a well-formed identifier matches no row.
var ErrBlogNotFound = errors.New("blog not found")

// CreateBlog inserts a new blog entry.
func (r *Repository) CreateBlog(ctx context.Context, blog *model.Blog) error {
	query := `
		INSERT INTO blogs (id, title, author, url, likes, owner_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.pool.Exec(ctx, query,
		blog.ID,
		blog.Title,
		blog.Author,
		blog.URL,
		blog.Likes,
		blog.OwnerID,
		blog.CreatedAt,
		blog.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create blog: %w", err)
	}

	return nil
}

// GetBlogByID retrieves a single blog with its owner's display name.
func (r *Repository) GetBlogByID(ctx context.Context, id string) (*model.Blog, error) {
	query := `
		SELECT b.id, b.title, b.author, b.url, b.likes, b.owner_id, u.name, b.created_at, b.updated_at
		FROM blogs b
		JOIN users u ON u.id = b.owner_id
		WHERE b.id = $1
	`

	var blog model.Blog
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&blog.ID,
		&blog.Title,
		&blog.Author,
		&blog.URL,
		&blog.Likes,
		&blog.OwnerID,
		&blog.OwnerName,
		&blog.CreatedAt,
		&blog.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrBlogNotFound
		}
		return nil, fmt.Errorf("failed to get blog: %w", err)
	}

	return &blog, nil
}

// ListBlogs retrieves all blogs, newest first, each enriched with the
// owner's display name.
func (r *Repository) ListBlogs(ctx context.Context) ([]model.Blog, error) {
	query := `
		SELECT b.id, b.title, b.author, b.url, b.likes, b.owner_id, u.name, b.created_at, b.updated_at
		FROM blogs b
		JOIN users u ON u.id = b.owner_id
		ORDER BY b.created_at DESC
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list blogs: %w", err)
	}
	defer rows.Close()

	var blogs []model.Blog
	for rows.Next() {
		var blog model.Blog
		if err := rows.Scan(
			&blog.ID,
			&blog.Title,
			&blog.Author,
			&blog.URL,
			&blog.Likes,
			&blog.OwnerID,
			&blog.OwnerName,
			&blog.CreatedAt,
			&blog.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan blog row: %w", err)
		}
		blogs = append(blogs, blog)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate blogs: %w", err)
	}

	return blogs, nil
}

// UpdateBlog replaces the mutable fields of an existing blog.
// The owner is never touched.
func (r *Repository) UpdateBlog(ctx context.Context, blog *model.Blog) error {
	query := `
		UPDATE blogs
		SET title = $2, author = $3, url = $4, likes = $5, updated_at = $6
		WHERE id = $1
	`

	tag, err := r.pool.Exec(ctx, query,
		blog.ID,
		blog.Title,
		blog.Author,
		blog.URL,
		blog.Likes,
		blog.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update blog: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrBlogNotFound
	}

	return nil
}

// DeleteBlog removes a blog by its identifier.
func (r *Repository) DeleteBlog(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM blogs WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete blog: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrBlogNotFound
	}

	return nil
}

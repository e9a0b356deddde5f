package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"

	"github.com/bloglist/bloglist/internal/model"
)

// Common errors for user repository operations.
var (
	ErrUserNotFound  = errors.New("user not found")
	ErrUsernameTaken = errors.New("username already taken")
)

// CreateUser inserts a new user into the database.
func (r *Repository) CreateUser(ctx context.Context, user *model.User) error {
	query := `
		INSERT INTO users (id, username, name, password_hash, blog_ids, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.pool.Exec(ctx, query,
		user.ID,
		user.Username,
		user.Name,
		user.PasswordHash,
		pq.Array(user.BlogIDs),
		user.CreatedAt,
	)

	if err != nil {
		if isUniqueViolation(err) {
			return ErrUsernameTaken
		}
		return fmt.Errorf("failed to create user: %w", err)
	}

	return nil
}

// GetUserByID retrieves a user by their ID.
func (r *Repository) GetUserByID(ctx context.Context, id string) (*model.User, error) {
	query := `
		SELECT id, username, name, password_hash, blog_ids, created_at
		FROM users
		WHERE id = $1
	`
	return r.scanUser(r.pool.QueryRow(ctx, query, id))
}

// GetUserByUsername retrieves a user by their unique username.
func (r *Repository) GetUserByUsername(ctx context.Context, username string) (*model.User, error) {
	query := `
		SELECT id, username, name, password_hash, blog_ids, created_at
		FROM users
		WHERE username = $1
	`
	return r.scanUser(r.pool.QueryRow(ctx, query, username))
}

// ListUsers retrieves all users ordered by registration time.
func (r *Repository) ListUsers(ctx context.Context) ([]model.User, error) {
	query := `
		SELECT id, username, name, password_hash, blog_ids, created_at
		FROM users
		ORDER BY created_at
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	var users []model.User
	for rows.Next() {
		var (
			user    model.User
			blogIDs []string
		)
		if err := rows.Scan(
			&user.ID,
			&user.Username,
			&user.Name,
			&user.PasswordHash,
			pq.Array(&blogIDs),
			&user.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan user row: %w", err)
		}
		user.BlogIDs = blogIDs
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate users: %w", err)
	}

	return users, nil
}

// AppendBlogID appends a blog identifier to the user's authored list.
// This is the second, independent write of blog creation; entries are never
// removed from the list on delete.
func (r *Repository) AppendBlogID(ctx context.Context, userID, blogID string) error {
	query := `
		UPDATE users
		SET blog_ids = array_append(blog_ids, $2)
		WHERE id = $1
	`

	tag, err := r.pool.Exec(ctx, query, userID, blogID)
	if err != nil {
		return fmt.Errorf("failed to append blog id: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrUserNotFound
	}

	return nil
}

func (r *Repository) scanUser(row pgx.Row) (*model.User, error) {
	var (
		user    model.User
		blogIDs []string
	)
	err := row.Scan(
		&user.ID,
		&user.Username,
		&user.Name,
		&user.PasswordHash,
		pq.Array(&blogIDs),
		&user.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	user.BlogIDs = blogIDs

	return &user, nil
}

// isUniqueViolation reports whether err is a Postgres unique constraint
// violation (SQLSTATE 23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

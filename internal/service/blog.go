// Package service provides business logic for the application.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/bloglist/bloglist/internal/auth"
	"github.com/bloglist/bloglist/internal/metrics"
	"github.com/bloglist/bloglist/internal/model"
	"github.com/bloglist/bloglist/internal/repository"
	"github.com/bloglist/bloglist/internal/stats"
)

// Blog service errors. Handlers map these to HTTP status codes.
var (
	ErrUnauthenticated = errors.New("token missing or invalid")
	ErrNotOwner        = errors.New("only the blog's creator may delete it")
	ErrUpdateForbidden = errors.New("only the blog's creator may update it")
	ErrTitleRequired   = errors.New("title is required")
	ErrURLRequired     = errors.New("url is required")
	ErrNegativeLikes   = errors.New("likes must not be negative")
	ErrInvalidBlogID   = errors.New("malformed blog id")
	ErrBlogNotFound    = errors.New("blog not found")
)

// BlogStore is the persistence capability the blog service needs.
// *repository.Repository satisfies it; tests substitute an in-memory fake.
type BlogStore interface {
	CreateBlog(ctx context.Context, blog *model.Blog) error
	GetBlogByID(ctx context.Context, id string) (*model.Blog, error)
	ListBlogs(ctx context.Context) ([]model.Blog, error)
	UpdateBlog(ctx context.Context, blog *model.Blog) error
	DeleteBlog(ctx context.Context, id string) error
	AppendBlogID(ctx context.Context, userID, blogID string) error
}

// BlogCache is the read-cache capability for the enriched blog list.
type BlogCache interface {
	GetBlogList(ctx context.Context) ([]model.Blog, error)
	SetBlogList(ctx context.Context, blogs []model.Blog) error
	InvalidateBlogList(ctx context.Context) error
}

// BlogService handles blog business logic: authenticated creation,
// owner-guarded deletion, the (intentionally) permissive update, and the
// statistics aggregations.
type BlogService struct {
	store            BlogStore
	cache            BlogCache
	metrics          metrics.Recorder
	logger           *slog.Logger
	enforceOwnership bool
}

// NewBlogService creates a BlogService. enforceOwnershipOnUpdate switches
// update from the compatible permissive behavior to the owner-only mode.
func NewBlogService(store BlogStore, cache BlogCache, rec metrics.Recorder, logger *slog.Logger, enforceOwnershipOnUpdate bool) *BlogService {
	return &BlogService{
		store:            store,
		cache:            cache,
		metrics:          rec,
		logger:           logger,
		enforceOwnership: enforceOwnershipOnUpdate,
	}
}

// CreateBlogInput is the explicit create payload schema. Likes is a pointer
// so "absent" and "null" both default to zero.
type CreateBlogInput struct {
	Title  string
	Author string
	URL    string
	Likes  *int
}

// UpdateBlogInput carries the fields present in an update payload.
// Nil fields are left unchanged.
type UpdateBlogInput struct {
	Title  *string
	Author *string
	URL    *string
	Likes  *int
}

// BlogStats is the aggregate view served by the stats endpoint. The
// per-author and favorite fields are nil when the collection is empty.
type BlogStats struct {
	Count      int                `json:"count"`
	TotalLikes int                `json:"totalLikes"`
	Favorite   *stats.Entry       `json:"favorite"`
	MostBlogs  *stats.AuthorCount `json:"mostBlogs"`
	MostLikes  *stats.AuthorLikes `json:"mostLikes"`
}

// List returns all blogs enriched with their owner's display name.
// Reads go through the cache; a miss falls back to the store and refills.
func (s *BlogService) List(ctx context.Context) ([]model.Blog, error) {
	if blogs, err := s.cache.GetBlogList(ctx); err == nil {
		s.metrics.IncListCacheHit()
		return blogs, nil
	}
	s.metrics.IncListCacheMiss()

	blogs, err := s.store.ListBlogs(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing blogs: %w", err)
	}

	if err := s.cache.SetBlogList(ctx, blogs); err != nil {
		s.logger.Warn("failed to cache blog list", slog.String("error", err.Error()))
	}

	return blogs, nil
}

// Create persists a new blog owned by the authenticated caller and appends
// its identifier to the caller's authored list. The second write is
// independent: if it fails the entry stays persisted without the
// back-reference, which is logged and accepted rather than rolled back.
func (s *BlogService) Create(ctx context.Context, identity *model.Identity, input CreateBlogInput) (*model.Blog, error) {
	if identity == nil || identity.UserID == "" {
		s.metrics.IncAuthFailure(metrics.ReasonToken)
		return nil, ErrUnauthenticated
	}

	if input.Title == "" {
		return nil, ErrTitleRequired
	}
	if input.URL == "" {
		return nil, ErrURLRequired
	}

	likes := 0
	if input.Likes != nil {
		if *input.Likes < 0 {
			return nil, ErrNegativeLikes
		}
		likes = *input.Likes
	}

	now := time.Now().UTC()
	blog := &model.Blog{
		ID:        ulid.Make().String(),
		Title:     input.Title,
		Author:    input.Author,
		URL:       input.URL,
		Likes:     likes,
		OwnerID:   identity.UserID,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.store.CreateBlog(ctx, blog); err != nil {
		return nil, fmt.Errorf("creating blog: %w", err)
	}

	if err := s.store.AppendBlogID(ctx, identity.UserID, blog.ID); err != nil {
		// Known inconsistency window: the entry exists without the owner's
		// denormalized back-reference.
		s.logger.Warn("blog created without user back-reference",
			slog.String("blog_id", blog.ID),
			slog.String("user_id", identity.UserID),
			slog.String("error", err.Error()),
		)
	}

	s.invalidateList(ctx)
	s.metrics.IncBlogCreated()
	s.logger.Info("blog created",
		slog.String("blog_id", blog.ID),
		slog.String("owner_id", identity.UserID),
	)

	created, err := s.store.GetBlogByID(ctx, blog.ID)
	if err != nil {
		return nil, fmt.Errorf("reading back created blog: %w", err)
	}
	return created, nil
}

// Update replaces the mutable fields of an existing blog. By default any
// caller, authenticated or not, may update any entry; strict mode applies
// the ownership guard first.
func (s *BlogService) Update(ctx context.Context, identity *model.Identity, id string, input UpdateBlogInput) (*model.Blog, error) {
	blog, err := s.getBlog(ctx, id)
	if err != nil {
		return nil, err
	}

	if s.enforceOwnership {
		if identity == nil || identity.UserID == "" {
			s.metrics.IncAuthFailure(metrics.ReasonToken)
			return nil, ErrUnauthenticated
		}
		if auth.Authorize(identity, blog.OwnerID) == auth.Deny {
			s.metrics.IncAuthFailure(metrics.ReasonOwnership)
			return nil, ErrUpdateForbidden
		}
	}

	if input.Title != nil {
		if *input.Title == "" {
			return nil, ErrTitleRequired
		}
		blog.Title = *input.Title
	}
	if input.Author != nil {
		blog.Author = *input.Author
	}
	if input.URL != nil {
		if *input.URL == "" {
			return nil, ErrURLRequired
		}
		blog.URL = *input.URL
	}
	if input.Likes != nil {
		if *input.Likes < 0 {
			return nil, ErrNegativeLikes
		}
		blog.Likes = *input.Likes
	}
	blog.UpdatedAt = time.Now().UTC()

	if err := s.store.UpdateBlog(ctx, blog); err != nil {
		if errors.Is(err, repository.ErrBlogNotFound) {
			return nil, ErrBlogNotFound
		}
		return nil, fmt.Errorf("updating blog: %w", err)
	}

	s.invalidateList(ctx)
	s.metrics.IncBlogUpdated()
	s.logger.Info("blog updated", slog.String("blog_id", blog.ID))

	return blog, nil
}

// Delete removes a blog. It requires a verified identity before even
// consulting ownership, and only the recorded owner passes the guard.
func (s *BlogService) Delete(ctx context.Context, identity *model.Identity, id string) error {
	if identity == nil || identity.UserID == "" {
		s.metrics.IncAuthFailure(metrics.ReasonToken)
		return ErrUnauthenticated
	}

	blog, err := s.getBlog(ctx, id)
	if err != nil {
		return err
	}

	if auth.Authorize(identity, blog.OwnerID) == auth.Deny {
		s.metrics.IncAuthFailure(metrics.ReasonOwnership)
		return ErrNotOwner
	}

	if err := s.store.DeleteBlog(ctx, id); err != nil {
		if errors.Is(err, repository.ErrBlogNotFound) {
			return ErrBlogNotFound
		}
		return fmt.Errorf("deleting blog: %w", err)
	}

	s.invalidateList(ctx)
	s.metrics.IncBlogDeleted()
	s.logger.Info("blog deleted",
		slog.String("blog_id", id),
		slog.String("owner_id", identity.UserID),
	)

	return nil
}

// Stats aggregates the full collection with the pure statistics functions.
func (s *BlogService) Stats(ctx context.Context) (*BlogStats, error) {
	blogs, err := s.List(ctx)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	entries := make([]stats.Entry, len(blogs))
	for i, b := range blogs {
		entries[i] = stats.Entry{Title: b.Title, Author: b.Author, Likes: b.Likes}
	}

	result := &BlogStats{
		Count:      len(entries),
		TotalLikes: stats.TotalLikes(entries),
	}
	if len(entries) > 0 {
		fav, _ := stats.FavoriteBlog(entries)
		mostBlogs, _ := stats.MostBlogs(entries)
		mostLikes, _ := stats.MostLikes(entries)
		result.Favorite = &fav
		result.MostBlogs = &mostBlogs
		result.MostLikes = &mostLikes
	}
	s.metrics.ObserveStatsDuration(time.Since(start))

	return result, nil
}

// getBlog validates the identifier and fetches the entry, translating
// storage errors into service errors. A malformed identifier is a
// validation failure, distinct from not-found.
func (s *BlogService) getBlog(ctx context.Context, id string) (*model.Blog, error) {
	if _, err := ulid.Parse(id); err != nil {
		return nil, ErrInvalidBlogID
	}

	blog, err := s.store.GetBlogByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrBlogNotFound) {
			return nil, ErrBlogNotFound
		}
		return nil, fmt.Errorf("getting blog: %w", err)
	}
	return blog, nil
}

func (s *BlogService) invalidateList(ctx context.Context) {
	if err := s.cache.InvalidateBlogList(ctx); err != nil {
		s.logger.Warn("failed to invalidate blog list cache", slog.String("error", err.Error()))
	}
}

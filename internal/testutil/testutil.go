// Package testutil provides shared fakes and factories for tests.
package testutil

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/bloglist/bloglist/internal/model"
	"github.com/bloglist/bloglist/internal/repository"
)

// FakeStore is an in-memory substitute for *repository.Repository.
// It implements the store interfaces consumed by the service layer and
// returns the same sentinel errors as the real repository.
type FakeStore struct {
	mu    sync.Mutex
	blogs map[string]model.Blog
	users map[string]model.User
	order []string

	// FailAppend makes AppendBlogID fail, for exercising the dual-write
	// inconsistency window.
	FailAppend bool
}

// NewFakeStore creates an empty FakeStore.
func NewFakeStore() *FakeStore {
	return &FakeStore{
		blogs: make(map[string]model.Blog),
		users: make(map[string]model.User),
	}
}

// CreateBlog stores a blog.
func (f *FakeStore) CreateBlog(_ context.Context, blog *model.Blog) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.blogs[blog.ID] = *blog
	f.order = append(f.order, blog.ID)
	return nil
}

// GetBlogByID returns a blog enriched with the owner's display name.
func (f *FakeStore) GetBlogByID(_ context.Context, id string) (*model.Blog, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	blog, ok := f.blogs[id]
	if !ok {
		return nil, repository.ErrBlogNotFound
	}
	f.enrich(&blog)
	return &blog, nil
}

// ListBlogs returns all blogs in insertion order, enriched.
func (f *FakeStore) ListBlogs(_ context.Context) ([]model.Blog, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	blogs := make([]model.Blog, 0, len(f.blogs))
	for _, id := range f.order {
		if blog, ok := f.blogs[id]; ok {
			f.enrich(&blog)
			blogs = append(blogs, blog)
		}
	}
	return blogs, nil
}

// UpdateBlog replaces a stored blog.
func (f *FakeStore) UpdateBlog(_ context.Context, blog *model.Blog) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.blogs[blog.ID]; !ok {
		return repository.ErrBlogNotFound
	}
	f.blogs[blog.ID] = *blog
	return nil
}

// DeleteBlog removes a stored blog.
func (f *FakeStore) DeleteBlog(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.blogs[id]; !ok {
		return repository.ErrBlogNotFound
	}
	delete(f.blogs, id)
	return nil
}

// AppendBlogID appends to the user's authored list.
func (f *FakeStore) AppendBlogID(_ context.Context, userID, blogID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.FailAppend {
		return fmt.Errorf("append failed")
	}
	user, ok := f.users[userID]
	if !ok {
		return repository.ErrUserNotFound
	}
	user.BlogIDs = append(user.BlogIDs, blogID)
	f.users[userID] = user
	return nil
}

// CreateUser stores a user, enforcing username uniqueness.
func (f *FakeStore) CreateUser(_ context.Context, user *model.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.users {
		if existing.Username == user.Username {
			return repository.ErrUsernameTaken
		}
	}
	f.users[user.ID] = *user
	return nil
}

// GetUserByUsername looks up a user by username.
func (f *FakeStore) GetUserByUsername(_ context.Context, username string) (*model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, user := range f.users {
		if user.Username == username {
			u := user
			return &u, nil
		}
	}
	return nil, repository.ErrUserNotFound
}

// ListUsers returns all users.
func (f *FakeStore) ListUsers(_ context.Context) ([]model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	users := make([]model.User, 0, len(f.users))
	for _, user := range f.users {
		users = append(users, user)
	}
	return users, nil
}

// BlogCount returns the number of stored blogs.
func (f *FakeStore) BlogCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.blogs)
}

// User returns a stored user by ID.
func (f *FakeStore) User(id string) (model.User, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	user, ok := f.users[id]
	return user, ok
}

func (f *FakeStore) enrich(blog *model.Blog) {
	if owner, ok := f.users[blog.OwnerID]; ok {
		blog.OwnerName = owner.Name
	}
}

// FakeCache is an in-memory BlogCache.
type FakeCache struct {
	mu     sync.Mutex
	blogs  []model.Blog
	cached bool
}

// NewFakeCache creates an empty FakeCache.
func NewFakeCache() *FakeCache {
	return &FakeCache{}
}

// GetBlogList returns the cached list or an error on miss.
func (c *FakeCache) GetBlogList(_ context.Context) ([]model.Blog, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.cached {
		return nil, fmt.Errorf("cache miss")
	}
	return c.blogs, nil
}

// SetBlogList caches the list.
func (c *FakeCache) SetBlogList(_ context.Context, blogs []model.Blog) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.blogs = blogs
	c.cached = true
	return nil
}

// InvalidateBlogList drops the cached list.
func (c *FakeCache) InvalidateBlogList(_ context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.blogs = nil
	c.cached = false
	return nil
}

// Cached reports whether a list is currently cached.
func (c *FakeCache) Cached() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cached
}

// NewTestUser creates a registered user with sensible defaults and stores it.
func NewTestUser(t testing.TB, store *FakeStore, username, name string) *model.User {
	t.Helper()
	user := &model.User{
		ID:        ulid.Make().String(),
		Username:  username,
		Name:      name,
		BlogIDs:   []string{},
		CreatedAt: time.Now().UTC(),
	}
	if err := store.CreateUser(context.Background(), user); err != nil {
		t.Fatalf("creating test user: %v", err)
	}
	return user
}

// NewTestBlog creates a blog owned by ownerID and stores it.
func NewTestBlog(t testing.TB, store *FakeStore, ownerID, title string) *model.Blog {
	t.Helper()
	now := time.Now().UTC()
	blog := &model.Blog{
		ID:        ulid.Make().String(),
		Title:     title,
		Author:    "Test Author",
		URL:       "https://example.com/" + title,
		Likes:     0,
		OwnerID:   ownerID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := store.CreateBlog(context.Background(), blog); err != nil {
		t.Fatalf("creating test blog: %v", err)
	}
	return blog
}

package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/bloglist/bloglist/internal/model"
)

const (
	// blogListKey holds the serialized enriched blog list.
	blogListKey = "blogs:list"

	// BlogListTTL bounds staleness when an invalidation is lost.
	BlogListTTL = 60 * time.Second
)

// ErrCacheMiss is returned when a key is not present.
var ErrCacheMiss = errors.New("cache miss")

// GetBlogList retrieves the cached enriched blog list.
// Returns ErrCacheMiss if not cached.
func (c *Cache) GetBlogList(ctx context.Context) ([]model.Blog, error) {
	data, err := c.client.Get(ctx, blogListKey).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrCacheMiss
		}
		return nil, fmt.Errorf("redis get failed: %w", err)
	}

	var blogs []model.Blog
	if err := json.Unmarshal(data, &blogs); err != nil {
		// A corrupt entry behaves like a miss; the next write replaces it.
		return nil, ErrCacheMiss
	}

	return blogs, nil
}

// SetBlogList stores the enriched blog list.
func (c *Cache) SetBlogList(ctx context.Context, blogs []model.Blog) error {
	data, err := json.Marshal(blogs)
	if err != nil {
		return fmt.Errorf("marshal blog list: %w", err)
	}

	if err := c.client.Set(ctx, blogListKey, data, BlogListTTL).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}

	return nil
}

// InvalidateBlogList drops the cached list. Called after every mutation.
func (c *Cache) InvalidateBlogList(ctx context.Context) error {
	if err := c.client.Del(ctx, blogListKey).Err(); err != nil {
		return fmt.Errorf("redis del failed: %w", err)
	}
	return nil
}

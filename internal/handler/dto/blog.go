// Package dto provides Data Transfer Objects for API requests and responses.
package dto

import (
	"time"

	"github.com/bloglist/bloglist/internal/model"
)

// CreateBlogRequest represents the request body for creating a blog.
// Likes is a pointer so that both an absent field and an explicit null
// default to zero.
type CreateBlogRequest struct {
	Title  string `json:"title"`
	Author string `json:"author,omitempty"`
	URL    string `json:"url"`
	Likes  *int   `json:"likes,omitempty"`
}

// UpdateBlogRequest represents the request body for updating a blog.
// Absent fields are left unchanged.
type UpdateBlogRequest struct {
	Title  *string `json:"title,omitempty"`
	Author *string `json:"author,omitempty"`
	URL    *string `json:"url,omitempty"`
	Likes  *int    `json:"likes,omitempty"`
}

// OwnerRef is the embedded owner reference on blog responses.
type OwnerRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// BlogResponse represents a blog in API responses. The persistence
// identifier is exposed as "id"; the raw store key never leaves the
// repository layer.
type BlogResponse struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Author    string    `json:"author"`
	URL       string    `json:"url"`
	Likes     int       `json:"likes"`
	User      OwnerRef  `json:"user"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ToBlogResponse converts a Blog model to BlogResponse DTO.
func ToBlogResponse(blog *model.Blog) *BlogResponse {
	return &BlogResponse{
		ID:        blog.ID,
		Title:     blog.Title,
		Author:    blog.Author,
		URL:       blog.URL,
		Likes:     blog.Likes,
		User:      OwnerRef{ID: blog.OwnerID, Name: blog.OwnerName},
		CreatedAt: blog.CreatedAt,
		UpdatedAt: blog.UpdatedAt,
	}
}

// ToBlogListResponse converts a slice of blogs.
func ToBlogListResponse(blogs []model.Blog) []BlogResponse {
	out := make([]BlogResponse, 0, len(blogs))
	for i := range blogs {
		out = append(out, *ToBlogResponse(&blogs[i]))
	}
	return out
}

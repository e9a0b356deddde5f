package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/bloglist/bloglist/internal/auth"
	"github.com/bloglist/bloglist/internal/handler/dto"
	"github.com/bloglist/bloglist/internal/service"
)

// BlogHandler manages blog HTTP endpoints.
type BlogHandler struct {
	blogs  *service.BlogService
	logger *slog.Logger
}

// NewBlogHandler creates a new BlogHandler.
func NewBlogHandler(blogs *service.BlogService, logger *slog.Logger) *BlogHandler {
	return &BlogHandler{
		blogs:  blogs,
		logger: logger,
	}
}

// List returns all blogs with their owner embedded.
//
// GET /api/blogs
func (h *BlogHandler) List(w http.ResponseWriter, r *http.Request) {
	blogs, err := h.blogs.List(r.Context())
	if err != nil {
		h.logger.Error("failed to list blogs", "error", err)
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ToBlogListResponse(blogs))
}

// Create creates a new blog owned by the authenticated user.
//
// POST /api/blogs
func (h *BlogHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateBlogRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_REQUEST", "invalid JSON body")
		return
	}

	identity := auth.IdentityFromContext(r.Context())

	blog, err := h.blogs.Create(r.Context(), identity, service.CreateBlogInput{
		Title:  req.Title,
		Author: req.Author,
		URL:    req.URL,
		Likes:  req.Likes,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, dto.ToBlogResponse(blog))
}

// Update applies a partial update to a blog.
//
// PUT /api/blogs/{id}
func (h *BlogHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req dto.UpdateBlogRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_REQUEST", "invalid JSON body")
		return
	}

	identity := auth.IdentityFromContext(r.Context())

	blog, err := h.blogs.Update(r.Context(), identity, id, service.UpdateBlogInput{
		Title:  req.Title,
		Author: req.Author,
		URL:    req.URL,
		Likes:  req.Likes,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ToBlogResponse(blog))
}

// Delete removes a blog. Only the owner may delete it.
//
// DELETE /api/blogs/{id}
func (h *BlogHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	identity := auth.IdentityFromContext(r.Context())

	if err := h.blogs.Delete(r.Context(), identity, id); err != nil {
		writeServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Stats returns aggregate statistics over the current blog list.
//
// GET /api/blogs/stats
func (h *BlogHandler) Stats(w http.ResponseWriter, r *http.Request) {
	result, err := h.blogs.Stats(r.Context())
	if err != nil {
		h.logger.Error("failed to compute blog stats", "error", err)
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// Package handler provides HTTP request handlers.
package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/bloglist/bloglist/internal/service"
)

// NotFound handles 404 responses for unmatched routes.
func NotFound(w http.ResponseWriter, r *http.Request) {
	writeError(w, http.StatusNotFound, "NOT_FOUND", "resource not found")
}

// MethodNotAllowed handles 405 responses.
func MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	writeError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "method not allowed")
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	// The status line is already sent; an encode failure here cannot
	// be surfaced to the client.
	_ = json.NewEncoder(w).Encode(data)
}

// writeError writes a JSON error body with the given status code.
func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, map[string]any{
		"error": map[string]string{
			"code":    code,
			"message": message,
		},
	})
}

// writeServiceError translates service-layer errors into client responses.
// The error messages are part of the API contract and pass through as-is.
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrUnauthenticated),
		errors.Is(err, service.ErrInvalidCredentials):
		writeError(w, http.StatusUnauthorized, "UNAUTHORIZED", err.Error())
	case errors.Is(err, service.ErrNotOwner),
		errors.Is(err, service.ErrUpdateForbidden):
		writeError(w, http.StatusForbidden, "FORBIDDEN", err.Error())
	case errors.Is(err, service.ErrTitleRequired),
		errors.Is(err, service.ErrURLRequired),
		errors.Is(err, service.ErrNegativeLikes),
		errors.Is(err, service.ErrInvalidBlogID),
		errors.Is(err, service.ErrUsernameTooShort),
		errors.Is(err, service.ErrPasswordTooShort):
		writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
	case errors.Is(err, service.ErrUsernameTaken):
		writeError(w, http.StatusConflict, "CONFLICT", err.Error())
	case errors.Is(err, service.ErrBlogNotFound):
		writeError(w, http.StatusNotFound, "NOT_FOUND", err.Error())
	default:
		writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
	}
}

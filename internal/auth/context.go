package auth

import (
	"context"

	"github.com/bloglist/bloglist/internal/model"
)

// contextKey is a custom type for context keys to avoid collisions.
type contextKey string

// identityKey is the context key for storing the caller identity.
const identityKey contextKey = "identity"

// ContextWithIdentity adds the verified caller identity to the context.
func ContextWithIdentity(ctx context.Context, id *model.Identity) context.Context {
	return context.WithValue(ctx, identityKey, id)
}

// IdentityFromContext retrieves the caller identity from the context.
// Returns nil for anonymous requests.
func IdentityFromContext(ctx context.Context) *model.Identity {
	id, ok := ctx.Value(identityKey).(*model.Identity)
	if !ok {
		return nil
	}
	return id
}

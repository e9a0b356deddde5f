package auth

import "github.com/bloglist/bloglist/internal/model"

// Decision is the outcome of an ownership check.
type Decision int

const (
	// Deny blocks the requested mutation.
	Deny Decision = iota
	// Permit allows it.
	Permit
)

// Authorize decides whether the caller may mutate a blog recorded as owned
// by ownerID. It is a pure comparison: no identity denies outright, and an
// entry with no recorded owner can never match, so it denies too. Callers
// run this before any destructive action.
func Authorize(identity *model.Identity, ownerID string) Decision {
	if identity == nil || identity.UserID == "" {
		return Deny
	}
	if ownerID == "" || identity.UserID != ownerID {
		return Deny
	}
	return Permit
}

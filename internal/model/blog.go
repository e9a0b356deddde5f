// Package model defines domain entities for the application.
package model

import "time"

// Blog represents a blog entry owned by a registered user.
// OwnerID is set at creation time from the authenticated caller and never
// changes afterwards. OwnerName is read-enrichment populated by the
// repository on reads; it is not stored on the blogs row itself.
type Blog struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Author    string    `json:"author"`
	URL       string    `json:"url"`
	Likes     int       `json:"likes"`
	OwnerID   string    `json:"owner_id"`
	OwnerName string    `json:"owner_name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Identity is the authenticated caller, reconstructed per request from a
// verified token. It is never persisted.
type Identity struct {
	UserID   string
	Username string
}

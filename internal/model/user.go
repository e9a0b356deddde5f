// Package model defines domain entities for the application.
package model

import "time"

// User represents a registered user account.
// PasswordHash is opaque to everything except the auth package and is never
// serialized. BlogIDs is the denormalized list of entries the user has
// authored, appended on each successful creation; it is not reconciled on
// delete and may drift from the true owning set.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Name         string    `json:"name"`
	PasswordHash string    `json:"-"`
	BlogIDs      []string  `json:"blogs"`
	CreatedAt    time.Time `json:"created_at"`
}

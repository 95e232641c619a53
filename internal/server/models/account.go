// Package models defines server-side data models for the auth backend.
package models

import "time"

// Account is a registered user's stored credentials and identity.
// PasswordHash is a bcrypt hash; the plain password never reaches storage.
type Account struct {
	ID           string
	Username     string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}

// Package models contains the client-side data structures for accounts
// and sessions. JSON tags match the wire format of the auth backend.
package models

import "time"

// Account is a locally stored credential record used by the mock backend.
// Unlike the server, the mock keeps the password in the clear; the store
// is a development fixture, not a vault.
type Account struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Password  string    `json:"password"`
	CreatedAt time.Time `json:"createdAt"`
}

// User is the public projection of an account, as returned by the backend.
type User struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// Session is the authenticated state held by the client after a successful
// registration or sign-in.
type Session struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken,omitempty"`
	User         User   `json:"user"`
}

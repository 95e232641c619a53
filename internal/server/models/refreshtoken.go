package models

import "time"

// RefreshToken is a server-stored, expiring token that can be exchanged for
// a fresh token pair. Rotated (deleted and re-created) on every refresh.
type RefreshToken struct {
	AccountID string
	Token     string
	Expires   time.Time
	CreatedAt time.Time
}

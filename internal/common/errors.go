// Package common defines shared constants and sentinel errors used across
// client and server layers of the auth screens. Callers should use errors.Is
// to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Service-level errors (generic/internal flow control).
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("unauthorized")

	// Classified authentication failures. Each of these maps to a wire code
	// (see codes.go) carried in the JSON error body of the HTTP transport and
	// thrown by the mock backend.
	ErrEmailExists        = errors.New("email already registered")
	ErrUsernameTaken      = errors.New("username already taken")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidPassword    = errors.New("invalid password")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAccountLocked      = errors.New("account locked")
	ErrTooManyAttempts    = errors.New("too many attempts")

	// Auth errors (invalid or malformed token).
	ErrInvalidToken = errors.New("invalid token")

	// Token lifecycle errors.
	ErrRefreshTokenExpired = errors.New("refresh token expired")
)

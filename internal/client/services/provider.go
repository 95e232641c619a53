// Package services contains the client's authentication providers: an
// in-process mock that keeps accounts in local storage, and an HTTP
// provider that talks to the real auth backend. The form controllers
// program against AuthProvider and never see which one they got.
package services

import (
	"context"

	"github.com/dmitrijs2005/dashauth/internal/client/models"
)

// AuthProvider defines the authentication operations the screens need.
//
// Contract:
//   - Register: create an account and return a fresh session.
//   - SignIn: authenticate an existing account and return a session.
//
// Failures are reported through the sentinel errors in internal/common
// (ErrEmailExists, ErrUserNotFound, ErrInvalidPassword, ...), matched
// with errors.Is. Both methods must honor context cancellation.
type AuthProvider interface {
	Register(ctx context.Context, username, email, password string) (*models.Session, error)
	SignIn(ctx context.Context, email, password string) (*models.Session, error)
}

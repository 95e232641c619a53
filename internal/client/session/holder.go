// Package session keeps the client's authenticated state in local storage
// and provides the guards the screens use to decide who may see them.
package session

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/dmitrijs2005/dashauth/internal/client/localstore"
	"github.com/dmitrijs2005/dashauth/internal/client/models"
	"github.com/dmitrijs2005/dashauth/internal/common"
)

const (
	accessTokenKey  = "accessToken"
	refreshTokenKey = "refreshToken"
	userKey         = "user"
)

type Holder struct {
	storage localstore.Repository
}

func NewHolder(storage localstore.Repository) *Holder {
	return &Holder{storage: storage}
}

// Set stores the session. The refresh token key is removed when the
// session has none, so a stale token from an earlier sign-in cannot
// outlive it.
func (h *Holder) Set(ctx context.Context, s *models.Session) error {
	if err := h.storage.Set(ctx, accessTokenKey, []byte(s.AccessToken)); err != nil {
		return err
	}

	if s.RefreshToken != "" {
		if err := h.storage.Set(ctx, refreshTokenKey, []byte(s.RefreshToken)); err != nil {
			return err
		}
	} else {
		if err := h.storage.Delete(ctx, refreshTokenKey); err != nil {
			return err
		}
	}

	user, err := json.Marshal(s.User)
	if err != nil {
		return fmt.Errorf("failed to marshal user: %w", err)
	}
	return h.storage.Set(ctx, userKey, user)
}

// Clear removes the session. Clearing an absent session is a no-op.
func (h *Holder) Clear(ctx context.Context) error {
	for _, key := range []string{accessTokenKey, refreshTokenKey, userKey} {
		if err := h.storage.Delete(ctx, key); err != nil {
			return err
		}
	}
	return nil
}

// Current returns the stored session, or (nil, nil) when no user is signed
// in. A session missing its token or with an unreadable user record counts
// as absent.
func (h *Holder) Current(ctx context.Context) (*models.Session, error) {
	token, err := h.storage.Get(ctx, accessTokenKey)
	if err != nil {
		return nil, err
	}
	if len(token) == 0 {
		return nil, nil
	}

	userData, err := h.storage.Get(ctx, userKey)
	if err != nil {
		return nil, err
	}
	var user models.User
	if len(userData) == 0 || json.Unmarshal(userData, &user) != nil {
		return nil, nil
	}

	refresh, err := h.storage.Get(ctx, refreshTokenKey)
	if err != nil {
		return nil, err
	}

	return &models.Session{
		AccessToken:  string(token),
		RefreshToken: string(refresh),
		User:         user,
	}, nil
}

// RequireAuth is the guard for signed-in screens. It returns the current
// session, or common.ErrorUnauthorized when nobody is signed in.
func (h *Holder) RequireAuth(ctx context.Context) (*models.Session, error) {
	s, err := h.Current(ctx)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, common.ErrorUnauthorized
	}
	return s, nil
}

// RequireAnon is the guard for the registration and sign-in screens.
// It reports whether no user is signed in; callers redirect to the
// dashboard when it returns false.
func (h *Holder) RequireAnon(ctx context.Context) (bool, error) {
	s, err := h.Current(ctx)
	if err != nil {
		return false, err
	}
	return s == nil, nil
}

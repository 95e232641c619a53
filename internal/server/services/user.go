// Package services contains server-side business logic. This file implements
// UserService, which handles registration, sign-in, and issuing/refreshing
// JWTs plus server-stored refresh tokens.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/dashauth/internal/common"
	"github.com/dmitrijs2005/dashauth/internal/dbx"
	"github.com/dmitrijs2005/dashauth/internal/server/auth"
	"github.com/dmitrijs2005/dashauth/internal/server/config"
	"github.com/dmitrijs2005/dashauth/internal/server/models"
	"github.com/dmitrijs2005/dashauth/internal/server/repositories/repomanager"
	"github.com/google/uuid"
)

// TokenPair bundles a short-lived access token and a long-lived refresh token.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// AuthResult is what a successful register or sign-in produces: the account
// and a fresh token pair.
type AuthResult struct {
	Account *models.Account
	Tokens  TokenPair
}

// RegisterInput carries the fields of the registration form.
type RegisterInput struct {
	Username string
	Email    string
	Password string
}

// LoginInput carries the fields of the sign-in form.
type LoginInput struct {
	Email    string
	Password string
}

// UserService provides authentication-related operations:
// - Register: create accounts (unique email and username)
// - Login: verify credentials and mint tokens
// - RefreshToken: rotate refresh tokens and mint new access tokens
type UserService struct {
	db                           *sql.DB
	repomanager                  repomanager.RepositoryManager
	hasher                       auth.PasswordHasher
	throttle                     *loginThrottle
	jwtSecret                    []byte
	accessTokenValidityDuration  time.Duration
	refreshTokenValidityDuration time.Duration
}

// NewUserService constructs a UserService using repositories, a password
// hasher, and server config.
func NewUserService(db *sql.DB, m repomanager.RepositoryManager, hasher auth.PasswordHasher, cfg *config.Config) *UserService {
	return &UserService{
		db:                           db,
		repomanager:                  m,
		hasher:                       hasher,
		throttle:                     newLoginThrottle(cfg.LoginMaxAttempts, cfg.LoginAttemptWindow, cfg.LoginMaxFailures, cfg.LoginLockDuration),
		jwtSecret:                    []byte(cfg.SecretKey),
		accessTokenValidityDuration:  cfg.AccessTokenValidityDuration,
		refreshTokenValidityDuration: cfg.RefreshTokenValidityDuration,
	}
}

// Register creates a new account. Emails and usernames are unique; conflicts
// yield common.ErrEmailExists / common.ErrUsernameTaken.
func (s *UserService) Register(ctx context.Context, in RegisterInput) (*AuthResult, error) {
	repo := s.repomanager.Accounts(s.db)

	if _, err := repo.GetByEmail(ctx, in.Email); err == nil {
		return nil, common.ErrEmailExists
	} else if !errors.Is(err, common.ErrorNotFound) {
		return nil, fmt.Errorf("error checking email: %w", err)
	}

	if _, err := repo.GetByUsername(ctx, in.Username); err == nil {
		return nil, common.ErrUsernameTaken
	} else if !errors.Is(err, common.ErrorNotFound) {
		return nil, fmt.Errorf("error checking username: %w", err)
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, common.ErrorInternal
	}

	account := &models.Account{
		ID:           uuid.NewString(),
		Username:     in.Username,
		Email:        in.Email,
		PasswordHash: hash,
	}

	created, err := repo.Create(ctx, account)
	if err != nil {
		return nil, fmt.Errorf("error creating account: %w", err)
	}

	pair, err := s.generateTokenPair(ctx, created.ID, s.db)
	if err != nil {
		return nil, err
	}
	return &AuthResult{Account: created, Tokens: *pair}, nil
}

// Login verifies the provided credentials and, on success, returns the
// account with a new token pair. Failures are classified: unknown email is
// common.ErrUserNotFound, a password mismatch is common.ErrInvalidCredentials.
// The per-email throttle can short-circuit with common.ErrTooManyAttempts or
// common.ErrAccountLocked before any credential check happens.
func (s *UserService) Login(ctx context.Context, in LoginInput) (*AuthResult, error) {
	if err := s.throttle.Allow(in.Email); err != nil {
		return nil, err
	}

	repo := s.repomanager.Accounts(s.db)
	account, err := repo.GetByEmail(ctx, in.Email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrUserNotFound
		}
		return nil, common.ErrorInternal
	}

	if !s.hasher.Verify(account.PasswordHash, in.Password) {
		s.throttle.RecordFailure(in.Email)
		return nil, common.ErrInvalidCredentials
	}
	s.throttle.Reset(in.Email)

	pair, err := s.generateTokenPair(ctx, account.ID, s.db)
	if err != nil {
		return nil, err
	}
	return &AuthResult{Account: account, Tokens: *pair}, nil
}

// RefreshToken validates a refresh token, rotates it transactionally, and
// returns a fresh TokenPair. Expired tokens yield ErrRefreshTokenExpired.
func (s *UserService) RefreshToken(ctx context.Context, refreshToken string) (*TokenPair, error) {
	repo := s.repomanager.RefreshTokens(s.db)

	token, err := repo.Find(ctx, refreshToken)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrInvalidToken
		}
		return nil, fmt.Errorf("error searching refresh token: %w", err)
	}
	if token.Expires.Before(time.Now()) {
		return nil, common.ErrRefreshTokenExpired
	}

	var pair *TokenPair
	if err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repoTx := s.repomanager.RefreshTokens(tx)
		if err := repoTx.Delete(ctx, refreshToken); err != nil {
			return fmt.Errorf("error deleting refresh token: %w", err)
		}
		var genErr error
		pair, genErr = s.generateTokenPair(ctx, token.AccountID, tx)
		return genErr
	}); err != nil {
		return nil, err
	}
	return pair, nil
}

// --- helpers below ---

func (s *UserService) generateAccessToken(accountID string) (string, error) {
	return auth.GenerateToken(accountID, s.jwtSecret, s.accessTokenValidityDuration)
}

func (s *UserService) generateRefreshToken() (string, error) {
	return common.MakeRandHexString(32)
}

func (s *UserService) generateTokenPair(ctx context.Context, accountID string, tx dbx.DBTX) (*TokenPair, error) {
	access, err := s.generateAccessToken(accountID)
	if err != nil {
		return nil, common.ErrorInternal
	}
	refresh, err := s.generateRefreshToken()
	if err != nil {
		return nil, common.ErrorInternal
	}
	refreshRepo := s.repomanager.RefreshTokens(tx)
	if err := refreshRepo.Create(ctx, accountID, refresh, s.refreshTokenValidityDuration); err != nil {
		return nil, common.ErrorInternal
	}
	return &TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

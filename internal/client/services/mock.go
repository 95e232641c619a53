package services

import (
	"context"
	"strconv"
	"time"

	"github.com/dmitrijs2005/dashauth/internal/client/credstore"
	"github.com/dmitrijs2005/dashauth/internal/client/models"
	"github.com/dmitrijs2005/dashauth/internal/common"
)

// DefaultMockDelay approximates the latency of a real backend so the
// screens exercise their pending states.
const DefaultMockDelay = 800 * time.Millisecond

// MockAuthService is an AuthProvider backed by the local credential store.
// It issues fake tokens and never talks to the network.
type MockAuthService struct {
	accounts      *credstore.Store
	delay         time.Duration
	usernameTaken bool
	now           func() time.Time
}

type MockOption func(*MockAuthService)

// WithDelay overrides the artificial latency. Zero disables it.
func WithDelay(d time.Duration) MockOption {
	return func(m *MockAuthService) { m.delay = d }
}

// WithUsernameTaken makes Register reject duplicate usernames, not just
// duplicate emails.
func WithUsernameTaken() MockOption {
	return func(m *MockAuthService) { m.usernameTaken = true }
}

func NewMockAuthService(accounts *credstore.Store, opts ...MockOption) *MockAuthService {
	m := &MockAuthService{
		accounts: accounts,
		delay:    DefaultMockDelay,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// sleep waits out the artificial delay, returning early if ctx is cancelled.
func (m *MockAuthService) sleep(ctx context.Context) error {
	if m.delay <= 0 {
		return nil
	}
	timer := time.NewTimer(m.delay)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (m *MockAuthService) newSession(account *models.Account) (*models.Session, error) {
	suffix, err := common.MakeRandHexString(16)
	if err != nil {
		return nil, err
	}
	return &models.Session{
		AccessToken: "mock-jwt-token-" + suffix,
		User: models.User{
			ID:       account.ID,
			Username: account.Username,
			Email:    account.Email,
		},
	}, nil
}

func (m *MockAuthService) Register(ctx context.Context, username, email, password string) (*models.Session, error) {
	if err := m.sleep(ctx); err != nil {
		return nil, err
	}

	if _, err := m.accounts.FindByEmail(ctx, email); err == nil {
		return nil, common.ErrEmailExists
	}
	if m.usernameTaken {
		if _, err := m.accounts.FindByUsername(ctx, username); err == nil {
			return nil, common.ErrUsernameTaken
		}
	}

	now := m.now().UTC()
	account := models.Account{
		ID:        strconv.FormatInt(now.UnixMilli(), 10),
		Username:  username,
		Email:     email,
		Password:  password,
		CreatedAt: now,
	}
	if err := m.accounts.Add(ctx, account); err != nil {
		return nil, err
	}

	return m.newSession(&account)
}

func (m *MockAuthService) SignIn(ctx context.Context, email, password string) (*models.Session, error) {
	if err := m.sleep(ctx); err != nil {
		return nil, err
	}

	account, err := m.accounts.FindByEmail(ctx, email)
	if err != nil {
		return nil, common.ErrUserNotFound
	}
	if account.Password != password {
		return nil, common.ErrInvalidPassword
	}

	return m.newSession(account)
}

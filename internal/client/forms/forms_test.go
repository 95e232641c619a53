package forms

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/dashauth/internal/client/models"
	"github.com/dmitrijs2005/dashauth/internal/common"
)

// ---- fakes ----

type fakeProvider struct {
	session *models.Session
	err     error

	registerCalls int
	signInCalls   int
}

func (f *fakeProvider) Register(ctx context.Context, username, email, password string) (*models.Session, error) {
	f.registerCalls++
	return f.session, f.err
}

func (f *fakeProvider) SignIn(ctx context.Context, email, password string) (*models.Session, error) {
	f.signInCalls++
	return f.session, f.err
}

type fakeSessions struct {
	stored *models.Session
	err    error
}

func (f *fakeSessions) Set(ctx context.Context, s *models.Session) error {
	if f.err != nil {
		return f.err
	}
	f.stored = s
	return nil
}

func okSession() *models.Session {
	return &models.Session{
		AccessToken: "at",
		User:        models.User{ID: "1", Username: "alice", Email: "a@x.com"},
	}
}

// ---- validation ----

func TestRegisterForm_Validate(t *testing.T) {
	tests := []struct {
		name  string
		form  RegisterForm
		field string
		msg   string
	}{
		{"missing username", RegisterForm{Email: "a@x.com", Password: "secret1"}, FieldUsername, "Username is required"},
		{"missing email", RegisterForm{Username: "alice", Password: "secret1"}, FieldEmail, "Email is required"},
		{"bad email", RegisterForm{Username: "alice", Email: "not-an-email", Password: "secret1"}, FieldEmail, "Please enter a valid email address"},
		{"email with spaces", RegisterForm{Username: "alice", Email: "a b@x.com", Password: "secret1"}, FieldEmail, "Please enter a valid email address"},
		{"missing password", RegisterForm{Username: "alice", Email: "a@x.com"}, FieldPassword, "Password is required"},
		{"short password", RegisterForm{Username: "alice", Email: "a@x.com", Password: "12345"}, FieldPassword, "Password must be at least 6 characters"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := tt.form.Validate()
			assert.Equal(t, tt.msg, errs[tt.field])
		})
	}
}

func TestRegisterForm_Validate_OK(t *testing.T) {
	form := RegisterForm{Username: "alice", Email: "a@x.com", Password: "secret1"}
	assert.Empty(t, form.Validate())
}

func TestSignInForm_Validate(t *testing.T) {
	form := SignInForm{}
	errs := form.Validate()
	assert.Equal(t, "Email is required", errs[FieldEmail])
	assert.Equal(t, "Password is required", errs[FieldPassword])

	form = SignInForm{Email: "a@x.com", Password: "secret1"}
	assert.Empty(t, form.Validate())
}

// ---- register controller ----

func TestRegisterController_Success_StoresSession(t *testing.T) {
	provider := &fakeProvider{session: okSession()}
	sessions := &fakeSessions{}
	c := NewRegisterController(provider, sessions)

	errs, err := c.Submit(context.Background(), RegisterForm{Username: "alice", Email: "a@x.com", Password: "secret1"})
	require.NoError(t, err)
	assert.Empty(t, errs)
	assert.Equal(t, okSession(), sessions.stored)
}

func TestRegisterController_InvalidForm_SkipsProvider(t *testing.T) {
	provider := &fakeProvider{session: okSession()}
	c := NewRegisterController(provider, &fakeSessions{})

	errs, err := c.Submit(context.Background(), RegisterForm{Email: "bad"})
	require.NoError(t, err)
	assert.NotEmpty(t, errs)
	assert.Zero(t, provider.registerCalls)
}

func TestRegisterController_FailureMapping(t *testing.T) {
	tests := []struct {
		name  string
		err   error
		field string
		msg   string
	}{
		{"email exists", common.ErrEmailExists, FieldEmail, "An account with this email already exists"},
		{"username taken", common.ErrUsernameTaken, FieldUsername, "Username is already taken"},
		{"unclassified", errors.New("connection refused"), FieldNotice, "connection refused"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sessions := &fakeSessions{}
			c := NewRegisterController(&fakeProvider{err: tt.err}, sessions)

			errs, err := c.Submit(context.Background(), RegisterForm{Username: "alice", Email: "a@x.com", Password: "secret1"})
			require.NoError(t, err)
			assert.Equal(t, tt.msg, errs[tt.field])
			assert.Nil(t, sessions.stored, "no session on failure")
		})
	}
}

func TestRegisterController_SessionWriteFailure(t *testing.T) {
	boom := errors.New("disk full")
	c := NewRegisterController(&fakeProvider{session: okSession()}, &fakeSessions{err: boom})

	errs, err := c.Submit(context.Background(), RegisterForm{Username: "alice", Email: "a@x.com", Password: "secret1"})
	require.True(t, errors.Is(err, boom))
	assert.Empty(t, errs)
}

// ---- sign-in controller ----

func TestSignInController_Success_StoresSession(t *testing.T) {
	sessions := &fakeSessions{}
	c := NewSignInController(&fakeProvider{session: okSession()}, sessions)

	errs, err := c.Submit(context.Background(), SignInForm{Email: "a@x.com", Password: "secret1"})
	require.NoError(t, err)
	assert.Empty(t, errs)
	assert.Equal(t, okSession(), sessions.stored)
}

func TestSignInController_FailureMapping(t *testing.T) {
	tests := []struct {
		name  string
		err   error
		field string
		msg   string
	}{
		{"user not found", common.ErrUserNotFound, FieldEmail, "No account found with this email"},
		{"invalid password", common.ErrInvalidPassword, FieldPassword, "Incorrect password"},
		{"invalid credentials", common.ErrInvalidCredentials, FieldPassword, "Invalid email or password"},
		{"account locked", common.ErrAccountLocked, FieldNotice, "Account locked. Please contact support."},
		{"too many attempts", common.ErrTooManyAttempts, FieldNotice, "Too many attempts. Please try again later."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewSignInController(&fakeProvider{err: tt.err}, &fakeSessions{})

			errs, err := c.Submit(context.Background(), SignInForm{Email: "a@x.com", Password: "secret1"})
			require.NoError(t, err)
			assert.Equal(t, tt.msg, errs[tt.field])
		})
	}
}

func TestSignInController_InvalidForm_SkipsProvider(t *testing.T) {
	provider := &fakeProvider{session: okSession()}
	c := NewSignInController(provider, &fakeSessions{})

	errs, err := c.Submit(context.Background(), SignInForm{Email: "a@x.com", Password: "12345"})
	require.NoError(t, err)
	assert.NotEmpty(t, errs)
	assert.Zero(t, provider.signInCalls)
}

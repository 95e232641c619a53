// Package forms implements the registration and sign-in forms: field
// validation, submission through an AuthProvider, and mapping of
// classified failures back onto the fields that caused them.
package forms

import (
	"context"
	"errors"
	"regexp"

	"github.com/dmitrijs2005/dashauth/internal/client/models"
	"github.com/dmitrijs2005/dashauth/internal/client/services"
	"github.com/dmitrijs2005/dashauth/internal/common"
)

// FieldErrors maps a field name ("username", "email", "password") to a
// user-facing message. Failures not tied to a single field go under
// FieldNotice.
type FieldErrors map[string]string

const (
	FieldUsername = "username"
	FieldEmail    = "email"
	FieldPassword = "password"
	FieldNotice   = "notice"
)

const MinPasswordLength = 6

var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

type RegisterForm struct {
	Username string
	Email    string
	Password string
}

// Validate checks the form locally; an empty result means the form may be
// submitted.
func (f *RegisterForm) Validate() FieldErrors {
	errs := FieldErrors{}
	if f.Username == "" {
		errs[FieldUsername] = "Username is required"
	}
	validateEmail(f.Email, errs)
	validatePassword(f.Password, errs)
	return errs
}

type SignInForm struct {
	Email    string
	Password string
}

func (f *SignInForm) Validate() FieldErrors {
	errs := FieldErrors{}
	validateEmail(f.Email, errs)
	validatePassword(f.Password, errs)
	return errs
}

func validateEmail(email string, errs FieldErrors) {
	if email == "" {
		errs[FieldEmail] = "Email is required"
	} else if !emailRe.MatchString(email) {
		errs[FieldEmail] = "Please enter a valid email address"
	}
}

func validatePassword(password string, errs FieldErrors) {
	if password == "" {
		errs[FieldPassword] = "Password is required"
	} else if len(password) < MinPasswordLength {
		errs[FieldPassword] = "Password must be at least 6 characters"
	}
}

// fieldErrorsFor maps a classified authentication failure to the field it
// belongs on. Unclassified failures surface as a notice with the raw message.
func fieldErrorsFor(err error) FieldErrors {
	switch {
	case errors.Is(err, common.ErrEmailExists):
		return FieldErrors{FieldEmail: "An account with this email already exists"}
	case errors.Is(err, common.ErrUsernameTaken):
		return FieldErrors{FieldUsername: "Username is already taken"}
	case errors.Is(err, common.ErrUserNotFound):
		return FieldErrors{FieldEmail: "No account found with this email"}
	case errors.Is(err, common.ErrInvalidPassword):
		return FieldErrors{FieldPassword: "Incorrect password"}
	case errors.Is(err, common.ErrInvalidCredentials):
		return FieldErrors{FieldPassword: "Invalid email or password"}
	case errors.Is(err, common.ErrAccountLocked):
		return FieldErrors{FieldNotice: "Account locked. Please contact support."}
	case errors.Is(err, common.ErrTooManyAttempts):
		return FieldErrors{FieldNotice: "Too many attempts. Please try again later."}
	default:
		return FieldErrors{FieldNotice: err.Error()}
	}
}

// SessionHolder is the slice of the session package the controllers need.
type SessionHolder interface {
	Set(ctx context.Context, s *models.Session) error
}

// RegisterController drives the registration form: validate, submit,
// store the session.
type RegisterController struct {
	auth     services.AuthProvider
	sessions SessionHolder
}

func NewRegisterController(auth services.AuthProvider, sessions SessionHolder) *RegisterController {
	return &RegisterController{auth: auth, sessions: sessions}
}

// Submit validates the form and registers the account. A non-empty
// FieldErrors means the form stays on screen with the messages shown;
// a non-nil error is an infrastructure fault (failed session write).
// On success both are nil and the session is stored.
func (c *RegisterController) Submit(ctx context.Context, form RegisterForm) (FieldErrors, error) {
	if errs := form.Validate(); len(errs) > 0 {
		return errs, nil
	}

	s, err := c.auth.Register(ctx, form.Username, form.Email, form.Password)
	if err != nil {
		return fieldErrorsFor(err), nil
	}

	if err := c.sessions.Set(ctx, s); err != nil {
		return nil, err
	}
	return nil, nil
}

// SignInController drives the sign-in form.
type SignInController struct {
	auth     services.AuthProvider
	sessions SessionHolder
}

func NewSignInController(auth services.AuthProvider, sessions SessionHolder) *SignInController {
	return &SignInController{auth: auth, sessions: sessions}
}

func (c *SignInController) Submit(ctx context.Context, form SignInForm) (FieldErrors, error) {
	if errs := form.Validate(); len(errs) > 0 {
		return errs, nil
	}

	s, err := c.auth.SignIn(ctx, form.Email, form.Password)
	if err != nil {
		return fieldErrorsFor(err), nil
	}

	if err := c.sessions.Set(ctx, s); err != nil {
		return nil, err
	}
	return nil, nil
}

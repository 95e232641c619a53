package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/dashauth/internal/client/forms"
	"github.com/dmitrijs2005/dashauth/internal/common"
)

// Dashboard shows the signed-in user's details. An anonymous user is sent
// back to the sign-in screen.
func (a *App) Dashboard(ctx context.Context) error {
	s, err := a.sessions.RequireAuth(ctx)
	if errors.Is(err, common.ErrorUnauthorized) {
		printlnFn("Please sign in first.")
		return nil
	}
	if err != nil {
		printlnFn(err.Error())
		return err
	}

	printlnFn(fmt.Sprintf("Welcome, %s!", s.User.Username))
	printlnFn("Email:   " + s.User.Email)
	printlnFn("User ID: " + s.User.ID)
	return nil
}

// Logout clears the session. Logging out while signed out is harmless.
func (a *App) Logout(ctx context.Context) error {
	if err := a.sessions.Clear(ctx); err != nil {
		printlnFn(err.Error())
		return err
	}
	printlnFn("Signed out.")
	return nil
}

// printFieldErrors reports validation and submission failures next to the
// fields they belong to, with notices first.
func printFieldErrors(errs forms.FieldErrors) {
	if msg, ok := errs[forms.FieldNotice]; ok {
		printlnFn(msg)
	}
	for _, field := range []string{forms.FieldUsername, forms.FieldEmail, forms.FieldPassword} {
		if msg, ok := errs[field]; ok {
			printlnFn(fmt.Sprintf("%s: %s", field, msg))
		}
	}
}

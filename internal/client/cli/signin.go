package cli

import (
	"context"

	"github.com/dmitrijs2005/dashauth/internal/client/forms"
	"github.com/dmitrijs2005/dashauth/internal/common"
)

// SignIn shows the sign-in screen. A signed-in user is redirected to the
// dashboard instead.
func (a *App) SignIn(ctx context.Context) error {
	anon, err := a.sessions.RequireAnon(ctx)
	if err != nil {
		printlnFn(err.Error())
		return err
	}
	if !anon {
		printlnFn("Already signed in.")
		return a.Dashboard(ctx)
	}

	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		printlnFn(err.Error())
		return err
	}
	password, err := getPassword(a.out)
	if err != nil {
		printlnFn(err.Error())
		return err
	}
	defer common.WipeByteArray(password)

	printlnFn("Signing in...")

	fieldErrs, err := a.signIn.Submit(ctx, forms.SignInForm{
		Email:    email,
		Password: string(password),
	})
	if err != nil {
		printlnFn(err.Error())
		return err
	}
	if len(fieldErrs) > 0 {
		printFieldErrors(fieldErrs)
		return nil
	}

	return a.Dashboard(ctx)
}

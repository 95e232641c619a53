package cli

import (
	"context"

	"github.com/dmitrijs2005/dashauth/internal/client/forms"
	"github.com/dmitrijs2005/dashauth/internal/common"
)

// Register shows the registration screen. A signed-in user is redirected
// to the dashboard instead.
func (a *App) Register(ctx context.Context) error {
	anon, err := a.sessions.RequireAnon(ctx)
	if err != nil {
		printlnFn(err.Error())
		return err
	}
	if !anon {
		printlnFn("Already signed in.")
		return a.Dashboard(ctx)
	}

	username, err := getSimpleText(a.reader, "Enter username", a.out)
	if err != nil {
		printlnFn(err.Error())
		return err
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

	printlnFn("Creating account...")

	fieldErrs, err := a.register.Submit(ctx, forms.RegisterForm{
		Username: username,
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

	printlnFn("Account created!")
	return a.Dashboard(ctx)
}

package cli

import (
	"context"

	"github.com/dmitrijs2005/arcanedex/internal/client/models"
	"github.com/dmitrijs2005/arcanedex/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

const termsText = `ArcaneDex terms of use

ArcaneDex stores your session and a small copy of the catalog on this
device so it can be browsed offline. Favorites, backgrounds and profile
data are kept on the ArcaneDex server and deleted with your account.`

// Terms shows the terms of use and records the answer.
func (a *App) Terms(ctx context.Context) error {
	a.println(termsText)
	if a.auth.TermsAccepted() {
		a.println("You have already accepted the terms.")
	}
	ok, err := Confirm(a.reader, "Do you accept the terms of use?", a.out)
	if err != nil {
		return err
	}
	if ok {
		a.auth.AcceptTerms(ctx)
		a.println("Terms accepted.")
	} else {
		a.auth.ResetTerms(ctx)
		a.println("Terms not accepted, login is disabled.")
	}
	return nil
}

// Register prompts for the account fields and creates the account. The
// password buffer is wiped before returning.
func (a *App) Register(ctx context.Context) error {
	var reg models.Registration
	fields := []struct {
		prompt string
		dst    *string
	}{
		{"First name", &reg.FirstName},
		{"Last name", &reg.LastName},
		{"Email", &reg.Email},
		{"Gender", &reg.Genero},
		{"Username", &reg.Username},
	}
	for _, f := range fields {
		v, err := getSimpleText(a.reader, f.prompt, a.out)
		if err != nil {
			return err
		}
		*f.dst = v
	}

	password, err := getPassword("Password", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)
	reg.Password = string(password)

	if err := a.auth.Register(ctx, reg); err != nil {
		return err
	}
	a.println("Account created, you can now log in.")
	return nil
}

// Login prompts for credentials and authenticates. On success the
// availability controller switches to the live catalog.
func (a *App) Login(ctx context.Context) error {
	if !a.auth.TermsAccepted() {
		return common.ErrTermsNotAccept
	}

	userName, err := getSimpleText(a.reader, "Username", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword("Password", a.out)
	if err != nil {
		return err
	}

	if err := a.auth.Login(ctx, userName, password); err != nil {
		a.log.Info(ctx, "login failed", "user", userName, "error", err)
		return err
	}
	a.printf("Welcome, %s! Type 'list' to browse creatures.\n", userName)
	return nil
}

func (a *App) Logout(ctx context.Context) error {
	a.auth.Logout(ctx)
	a.println("Logged out.")
	return nil
}

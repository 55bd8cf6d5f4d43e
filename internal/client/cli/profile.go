package cli

import (
	"context"

	"github.com/dmitrijs2005/arcanedex/internal/client/models"
	"github.com/dmitrijs2005/arcanedex/internal/common"
)

func (a *App) Profile(ctx context.Context) error {
	p, err := a.profile.Get(ctx)
	if err != nil {
		return a.fetchFailed(ctx, err)
	}
	a.printf("Username:   %s\n", p.Username)
	a.printf("Name:       %s %s\n", p.FirstName, p.LastName)
	a.printf("Email:      %s\n", p.Email)
	a.printf("Gender:     %s\n", p.Genero)
	return nil
}

// EditProfile prompts for each field showing the current value; an empty
// answer keeps it. An empty password keeps the current password.
func (a *App) EditProfile(ctx context.Context) error {
	p, err := a.profile.Get(ctx)
	if err != nil {
		return a.fetchFailed(ctx, err)
	}

	upd := models.ProfileUpdate{}
	fields := []struct {
		prompt  string
		current string
		dst     *string
	}{
		{"First name", p.FirstName, &upd.FirstName},
		{"Last name", p.LastName, &upd.LastName},
		{"Email", p.Email, &upd.Email},
		{"Gender", p.Genero, &upd.Genero},
	}
	for _, f := range fields {
		v, err := GetWithDefault(a.reader, f.prompt, f.current, a.out)
		if err != nil {
			return err
		}
		*f.dst = v
	}

	password, err := getPassword("New password (leave empty to keep)", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)
	if len(password) > 0 {
		pw := string(password)
		upd.Password = &pw
	}

	if err := a.profile.Update(ctx, upd); err != nil {
		return a.fetchFailed(ctx, err)
	}
	a.println("Profile updated.")
	return nil
}

func (a *App) DeleteAccount(ctx context.Context) error {
	ok, err := Confirm(a.reader, "Delete your account permanently?", a.out)
	if err != nil {
		return err
	}
	if !ok {
		a.println("Cancelled.")
		return nil
	}
	if err := a.profile.DeleteAccount(ctx); err != nil {
		return a.fetchFailed(ctx, err)
	}
	a.println("Account deleted.")
	return nil
}

// Package services contains the application services behind the ArcaneDex
// CLI commands. Each service validates input, picks the bearer token from the
// session and delegates to the api.Client.
package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/arcanedex/internal/client/api"
	"github.com/dmitrijs2005/arcanedex/internal/client/models"
	"github.com/dmitrijs2005/arcanedex/internal/common"
)

// Session is the part of session.Store the services read and write.
type Session interface {
	ValidToken() (string, error)
	HasAcceptedTerms() bool
	SetHasAcceptedTerms(ctx context.Context, v bool)
	IsAdmin(ctx context.Context) bool
}

// Navigator receives session changes that move the client between screens.
type Navigator interface {
	LoginSucceeded(ctx context.Context, token string) error
	Logout(ctx context.Context)
}

// AuthService defines authentication operations for the CLI.
//
// Contract:
//   - Login: requires accepted terms, authenticates and hands the token to
//     the Navigator.
//   - Register: validates the password rule and creates the account.
//   - Logout: ends the session locally.
//   - AcceptTerms / ResetTerms: manage the terms-of-service gate.
type AuthService interface {
	Login(ctx context.Context, username string, password []byte) error
	Register(ctx context.Context, reg models.Registration) error
	Logout(ctx context.Context)
	TermsAccepted() bool
	AcceptTerms(ctx context.Context)
	ResetTerms(ctx context.Context)
}

type authService struct {
	client  api.Client
	session Session
	nav     Navigator
}

func NewAuthService(client api.Client, session Session, nav Navigator) AuthService {
	return &authService{client: client, session: session, nav: nav}
}

// Login authenticates against the server. The password buffer is wiped
// before returning.
func (a *authService) Login(ctx context.Context, username string, password []byte) error {
	defer common.WipeByteArray(password)

	if !a.session.HasAcceptedTerms() {
		return common.ErrTermsNotAccept
	}
	if strings.TrimSpace(username) == "" || len(password) == 0 {
		return common.ErrEmptyField
	}

	token, err := a.client.Login(ctx, models.Credentials{Username: username, Password: string(password)})
	if err != nil {
		return fmt.Errorf("login error: %w", err)
	}
	if err := a.nav.LoginSucceeded(ctx, token); err != nil {
		return fmt.Errorf("login error: %w", err)
	}
	return nil
}

func (a *authService) Register(ctx context.Context, reg models.Registration) error {
	for _, f := range []string{reg.FirstName, reg.LastName, reg.Email, reg.Username} {
		if strings.TrimSpace(f) == "" {
			return common.ErrEmptyField
		}
	}
	if err := common.ValidatePassword(reg.Password); err != nil {
		return err
	}
	if reg.Role == "" {
		reg.Role = common.RoleUser
	}

	if err := a.client.Register(ctx, reg); err != nil {
		return fmt.Errorf("register error: %w", err)
	}
	return nil
}

func (a *authService) Logout(ctx context.Context) {
	a.nav.Logout(ctx)
}

func (a *authService) TermsAccepted() bool {
	return a.session.HasAcceptedTerms()
}

func (a *authService) AcceptTerms(ctx context.Context) {
	a.session.SetHasAcceptedTerms(ctx, true)
}

func (a *authService) ResetTerms(ctx context.Context) {
	a.session.SetHasAcceptedTerms(ctx, false)
}

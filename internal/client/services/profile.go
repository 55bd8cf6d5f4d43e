package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/arcanedex/internal/client/api"
	"github.com/dmitrijs2005/arcanedex/internal/client/models"
	"github.com/dmitrijs2005/arcanedex/internal/common"
)

type ProfileService interface {
	Get(ctx context.Context) (*models.Profile, error)
	Update(ctx context.Context, upd models.ProfileUpdate) error
	// DeleteAccount removes the account on the server and logs out.
	DeleteAccount(ctx context.Context) error
}

type profileService struct {
	client  api.Client
	session Session
	nav     Navigator
}

func NewProfileService(client api.Client, session Session, nav Navigator) ProfileService {
	return &profileService{client: client, session: session, nav: nav}
}

func (p *profileService) Get(ctx context.Context) (*models.Profile, error) {
	token, err := p.session.ValidToken()
	if err != nil {
		return nil, err
	}
	profile, err := p.client.GetProfile(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("get profile error: %w", err)
	}
	return profile, nil
}

func (p *profileService) Update(ctx context.Context, upd models.ProfileUpdate) error {
	if strings.TrimSpace(upd.FirstName) == "" || strings.TrimSpace(upd.Email) == "" {
		return common.ErrEmptyField
	}
	if upd.Password != nil {
		if err := common.ValidatePassword(*upd.Password); err != nil {
			return err
		}
	}

	token, err := p.session.ValidToken()
	if err != nil {
		return err
	}
	if err := p.client.UpdateProfile(ctx, token, upd); err != nil {
		return fmt.Errorf("update profile error: %w", err)
	}
	return nil
}

func (p *profileService) DeleteAccount(ctx context.Context) error {
	token, err := p.session.ValidToken()
	if err != nil {
		return err
	}
	if err := p.client.DeleteAccount(ctx, token); err != nil {
		return fmt.Errorf("delete account error: %w", err)
	}
	p.nav.Logout(ctx)
	return nil
}

package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/arcanedex/internal/client/api"
	"github.com/dmitrijs2005/arcanedex/internal/client/models"
	"github.com/dmitrijs2005/arcanedex/internal/common"
)

// AdminService manages the catalog. Every call requires a token with the
// admin role; the check is local and only spares a doomed round trip.
type AdminService interface {
	List(ctx context.Context, page, limit int, name string) (*models.CreaturePage, error)
	Add(ctx context.Context, in models.CreatureInput) (*models.Creature, error)
	Edit(ctx context.Context, id int64, in models.CreatureInput) error
}

type adminService struct {
	client  api.Client
	session Session
}

func NewAdminService(client api.Client, session Session) AdminService {
	return &adminService{client: client, session: session}
}

func (a *adminService) token(ctx context.Context) (string, error) {
	if !a.session.IsAdmin(ctx) {
		return "", common.ErrNotAdmin
	}
	return a.session.ValidToken()
}

func validateInput(in models.CreatureInput) error {
	if strings.TrimSpace(in.Name) == "" {
		return common.ErrEmptyField
	}
	if _, err := models.ParseImageRef(in.Img); err != nil {
		return err
	}
	return nil
}

func (a *adminService) List(ctx context.Context, page, limit int, name string) (*models.CreaturePage, error) {
	token, err := a.token(ctx)
	if err != nil {
		return nil, err
	}
	res, err := a.client.ListAdminCreatures(ctx, token, api.PageQuery{Page: page, PageSize: limit, Name: name})
	if err != nil {
		return nil, fmt.Errorf("admin list error: %w", err)
	}
	return res, nil
}

func (a *adminService) Add(ctx context.Context, in models.CreatureInput) (*models.Creature, error) {
	if err := validateInput(in); err != nil {
		return nil, err
	}
	token, err := a.token(ctx)
	if err != nil {
		return nil, err
	}
	c, err := a.client.AddCreature(ctx, token, in)
	if err != nil {
		return nil, fmt.Errorf("add creature error: %w", err)
	}
	return c, nil
}

func (a *adminService) Edit(ctx context.Context, id int64, in models.CreatureInput) error {
	if err := validateInput(in); err != nil {
		return err
	}
	token, err := a.token(ctx)
	if err != nil {
		return err
	}
	if err := a.client.EditCreature(ctx, token, id, in); err != nil {
		return fmt.Errorf("edit creature error: %w", err)
	}
	return nil
}

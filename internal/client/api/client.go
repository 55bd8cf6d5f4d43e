// Package api is the HTTP client of the ArcaneDex catalog service.
//
// Every remote failure is returned as *Error. Transport failures have
// KindUnavailable; HTTP failures are classified from the error code in the
// body, falling back to known server messages and then to the status code.
// Nothing is retried.
package api

import (
	"context"

	"github.com/dmitrijs2005/arcanedex/internal/client/models"
)

// PageQuery selects one page of the catalog.
type PageQuery struct {
	Page          int
	PageSize      int
	Name          string
	FavoritesOnly bool
	// ForOfflineSave tells the server the page is being mirrored locally.
	ForOfflineSave bool
}

type Client interface {
	Login(ctx context.Context, creds models.Credentials) (string, error)
	Register(ctx context.Context, reg models.Registration) error

	FetchPage(ctx context.Context, token string, q PageQuery) (*models.CreaturePage, error)
	AddFavorite(ctx context.Context, token string, creatureID int64) error
	RemoveFavorite(ctx context.Context, token string, creatureID int64) error

	GetCreatureDetails(ctx context.Context, token string, creatureID int64) (*models.CreatureDetails, error)
	ChangeFavoriteBackground(ctx context.Context, token string, creatureID int64, image string) error
	ResetFavoriteBackground(ctx context.Context, token string, creatureID int64) error

	GetProfile(ctx context.Context, token string) (*models.Profile, error)
	UpdateProfile(ctx context.Context, token string, upd models.ProfileUpdate) error
	DeleteAccount(ctx context.Context, token string) error

	ListAdminCreatures(ctx context.Context, token string, q PageQuery) (*models.CreaturePage, error)
	AddCreature(ctx context.Context, token string, in models.CreatureInput) (*models.Creature, error)
	EditCreature(ctx context.Context, token string, creatureID int64, in models.CreatureInput) error
}

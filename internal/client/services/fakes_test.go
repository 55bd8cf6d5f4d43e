package services

import (
	"context"

	"github.com/dmitrijs2005/arcanedex/internal/client/api"
	"github.com/dmitrijs2005/arcanedex/internal/client/models"
	"github.com/dmitrijs2005/arcanedex/internal/common"
)

// fakeClient implements api.Client with preset results and records the last
// arguments it saw.
type fakeClient struct {
	LoginRet    string
	LoginErr    error
	RegisterErr error

	DetailsRet    *models.CreatureDetails
	DetailsErr    error
	BackgroundErr error

	ProfileRet *models.Profile
	ProfileErr error
	UpdateErr  error
	DeleteErr  error

	AdminListRet *models.CreaturePage
	AddRet       *models.Creature
	AdminErr     error

	LastToken    string
	LastCreds    models.Credentials
	LastReg      models.Registration
	LastImage    string
	LastID       int64
	LastUpdate   models.ProfileUpdate
	LastQuery    api.PageQuery
	LastInput    models.CreatureInput
	ResetBGCalls int
	DeleteCalls  int
}

func (f *fakeClient) Login(ctx context.Context, creds models.Credentials) (string, error) {
	f.LastCreds = creds
	return f.LoginRet, f.LoginErr
}

func (f *fakeClient) Register(ctx context.Context, reg models.Registration) error {
	f.LastReg = reg
	return f.RegisterErr
}

func (f *fakeClient) FetchPage(ctx context.Context, token string, q api.PageQuery) (*models.CreaturePage, error) {
	f.LastToken, f.LastQuery = token, q
	return &models.CreaturePage{}, nil
}

func (f *fakeClient) AddFavorite(ctx context.Context, token string, id int64) error {
	f.LastToken, f.LastID = token, id
	return nil
}

func (f *fakeClient) RemoveFavorite(ctx context.Context, token string, id int64) error {
	f.LastToken, f.LastID = token, id
	return nil
}

func (f *fakeClient) GetCreatureDetails(ctx context.Context, token string, id int64) (*models.CreatureDetails, error) {
	f.LastToken, f.LastID = token, id
	return f.DetailsRet, f.DetailsErr
}

func (f *fakeClient) ChangeFavoriteBackground(ctx context.Context, token string, id int64, image string) error {
	f.LastToken, f.LastID, f.LastImage = token, id, image
	return f.BackgroundErr
}

func (f *fakeClient) ResetFavoriteBackground(ctx context.Context, token string, id int64) error {
	f.LastToken, f.LastID = token, id
	f.ResetBGCalls++
	return f.BackgroundErr
}

func (f *fakeClient) GetProfile(ctx context.Context, token string) (*models.Profile, error) {
	f.LastToken = token
	return f.ProfileRet, f.ProfileErr
}

func (f *fakeClient) UpdateProfile(ctx context.Context, token string, upd models.ProfileUpdate) error {
	f.LastToken, f.LastUpdate = token, upd
	return f.UpdateErr
}

func (f *fakeClient) DeleteAccount(ctx context.Context, token string) error {
	f.LastToken = token
	f.DeleteCalls++
	return f.DeleteErr
}

func (f *fakeClient) ListAdminCreatures(ctx context.Context, token string, q api.PageQuery) (*models.CreaturePage, error) {
	f.LastToken, f.LastQuery = token, q
	return f.AdminListRet, f.AdminErr
}

func (f *fakeClient) AddCreature(ctx context.Context, token string, in models.CreatureInput) (*models.Creature, error) {
	f.LastToken, f.LastInput = token, in
	return f.AddRet, f.AdminErr
}

func (f *fakeClient) EditCreature(ctx context.Context, token string, id int64, in models.CreatureInput) error {
	f.LastToken, f.LastID, f.LastInput = token, id, in
	return f.AdminErr
}

var _ api.Client = (*fakeClient)(nil)

type fakeSession struct {
	token    string
	tokenErr error
	terms    bool
	admin    bool
}

func (f *fakeSession) ValidToken() (string, error) {
	if f.tokenErr != nil {
		return "", f.tokenErr
	}
	if f.token == "" {
		return "", common.ErrNotLoggedIn
	}
	return f.token, nil
}

func (f *fakeSession) HasAcceptedTerms() bool { return f.terms }

func (f *fakeSession) SetHasAcceptedTerms(_ context.Context, v bool) { f.terms = v }

func (f *fakeSession) IsAdmin(context.Context) bool { return f.admin }

type fakeNav struct {
	LoginErr  error
	LastToken string
	LoggedOut int
}

func (f *fakeNav) LoginSucceeded(_ context.Context, token string) error {
	f.LastToken = token
	return f.LoginErr
}

func (f *fakeNav) Logout(context.Context) { f.LoggedOut++ }

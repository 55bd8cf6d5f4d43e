package services

import (
	"context"
	"errors"
	"testing"

	"github.com/dmitrijs2005/arcanedex/internal/client/api"
	"github.com/dmitrijs2005/arcanedex/internal/client/models"
	"github.com/dmitrijs2005/arcanedex/internal/common"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

func TestLogin_RequiresTerms(t *testing.T) {
	fc := &fakeClient{LoginRet: "tok"}
	nav := &fakeNav{}
	svc := NewAuthService(fc, &fakeSession{}, nav)

	err := svc.Login(context.Background(), "bob", []byte("secret@12"))
	require.ErrorIs(t, err, common.ErrTermsNotAccept)
	require.Empty(t, fc.LastCreds.Username)
	require.Empty(t, nav.LastToken)
}

func TestLogin_Success_WipesPassword(t *testing.T) {
	fc := &fakeClient{LoginRet: "tok"}
	nav := &fakeNav{}
	sess := &fakeSession{}
	svc := NewAuthService(fc, sess, nav)
	svc.AcceptTerms(context.Background())
	require.True(t, svc.TermsAccepted())

	pw := []byte("secret@12")
	require.NoError(t, svc.Login(context.Background(), "bob", pw))

	require.Equal(t, models.Credentials{Username: "bob", Password: "secret@12"}, fc.LastCreds)
	require.Equal(t, "tok", nav.LastToken)
	require.Equal(t, make([]byte, len(pw)), pw)
}

func TestLogin_Errors(t *testing.T) {
	cases := []struct {
		name    string
		user    string
		pw      string
		client  *fakeClient
		nav     *fakeNav
		wantErr error
	}{
		{"empty user", " ", "x", &fakeClient{}, &fakeNav{}, common.ErrEmptyField},
		{"empty password", "bob", "", &fakeClient{}, &fakeNav{}, common.ErrEmptyField},
		{"bad credentials", "bob", "x", &fakeClient{LoginErr: &api.Error{Kind: api.KindInvalidCredentials}}, &fakeNav{}, api.ErrInvalidCredentials},
		{"expired token issued", "bob", "x", &fakeClient{LoginRet: "old"}, &fakeNav{LoginErr: common.ErrInvalidToken}, common.ErrInvalidToken},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc := NewAuthService(tc.client, &fakeSession{terms: true}, tc.nav)
			err := svc.Login(context.Background(), tc.user, []byte(tc.pw))
			require.ErrorIs(t, err, tc.wantErr)
		})
	}
}

func TestRegister(t *testing.T) {
	valid := models.Registration{
		FirstName: "Ana", LastName: "Lima", Email: "ana@example.com",
		Genero: "F", Username: "ana", Password: "segredo#1",
	}

	t.Run("ok defaults role", func(t *testing.T) {
		fc := &fakeClient{}
		svc := NewAuthService(fc, &fakeSession{}, &fakeNav{})
		require.NoError(t, svc.Register(context.Background(), valid))
		require.Equal(t, common.RoleUser, fc.LastReg.Role)
		require.Equal(t, "ana", fc.LastReg.Username)
	})

	t.Run("weak password", func(t *testing.T) {
		fc := &fakeClient{}
		svc := NewAuthService(fc, &fakeSession{}, &fakeNav{})
		r := valid
		r.Password = "short"
		require.ErrorIs(t, svc.Register(context.Background(), r), common.ErrWeakPassword)
		require.Empty(t, fc.LastReg.Username)
	})

	t.Run("missing field", func(t *testing.T) {
		svc := NewAuthService(&fakeClient{}, &fakeSession{}, &fakeNav{})
		r := valid
		r.Email = ""
		require.ErrorIs(t, svc.Register(context.Background(), r), common.ErrEmptyField)
	})

	t.Run("username taken", func(t *testing.T) {
		fc := &fakeClient{RegisterErr: &api.Error{Kind: api.KindUsernameTaken}}
		svc := NewAuthService(fc, &fakeSession{}, &fakeNav{})
		err := svc.Register(context.Background(), valid)
		require.Equal(t, api.KindUsernameTaken, api.KindOf(err))
	})
}

func TestLogoutAndTerms(t *testing.T) {
	nav := &fakeNav{}
	sess := &fakeSession{terms: true}
	svc := NewAuthService(&fakeClient{}, sess, nav)

	svc.Logout(context.Background())
	require.Equal(t, 1, nav.LoggedOut)

	svc.ResetTerms(context.Background())
	require.False(t, svc.TermsAccepted())
}

func TestProfile(t *testing.T) {
	ctx := context.Background()

	t.Run("get", func(t *testing.T) {
		fc := &fakeClient{ProfileRet: &models.Profile{Username: "ana"}}
		svc := NewProfileService(fc, &fakeSession{token: "tok"}, &fakeNav{})
		p, err := svc.Get(ctx)
		require.NoError(t, err)
		require.Equal(t, "ana", p.Username)
		require.Equal(t, "tok", fc.LastToken)
	})

	t.Run("get without session", func(t *testing.T) {
		svc := NewProfileService(&fakeClient{}, &fakeSession{}, &fakeNav{})
		_, err := svc.Get(ctx)
		require.ErrorIs(t, err, common.ErrNotLoggedIn)
	})

	t.Run("update validates new password", func(t *testing.T) {
		fc := &fakeClient{}
		svc := NewProfileService(fc, &fakeSession{token: "tok"}, &fakeNav{})
		upd := models.ProfileUpdate{FirstName: "Ana", Email: "a@b.c", Password: ptr("weak")}
		require.ErrorIs(t, svc.Update(ctx, upd), common.ErrWeakPassword)

		upd.Password = nil
		require.NoError(t, svc.Update(ctx, upd))
		require.Equal(t, upd, fc.LastUpdate)
	})

	t.Run("update requires fields", func(t *testing.T) {
		svc := NewProfileService(&fakeClient{}, &fakeSession{token: "tok"}, &fakeNav{})
		require.ErrorIs(t, svc.Update(ctx, models.ProfileUpdate{Email: "a@b.c"}), common.ErrEmptyField)
	})

	t.Run("delete logs out", func(t *testing.T) {
		fc := &fakeClient{}
		nav := &fakeNav{}
		svc := NewProfileService(fc, &fakeSession{token: "tok"}, nav)
		require.NoError(t, svc.DeleteAccount(ctx))
		require.Equal(t, 1, fc.DeleteCalls)
		require.Equal(t, 1, nav.LoggedOut)
	})

	t.Run("delete failure keeps session", func(t *testing.T) {
		fc := &fakeClient{DeleteErr: &api.Error{Kind: api.KindServer}}
		nav := &fakeNav{}
		svc := NewProfileService(fc, &fakeSession{token: "tok"}, nav)
		require.Error(t, svc.DeleteAccount(ctx))
		require.Zero(t, nav.LoggedOut)
	})
}

func TestCreatureService(t *testing.T) {
	ctx := context.Background()

	t.Run("details", func(t *testing.T) {
		bg := "https://img.example/bg.png"
		fc := &fakeClient{DetailsRet: &models.CreatureDetails{BackgroundImg: &bg}}
		svc := NewCreatureService(fc, &fakeSession{token: "tok"})
		d, err := svc.Details(ctx, 4)
		require.NoError(t, err)
		require.Equal(t, &bg, d.BackgroundImg)
		require.Equal(t, int64(4), fc.LastID)
	})

	t.Run("change background encodes file", func(t *testing.T) {
		fc := &fakeClient{}
		svc := NewCreatureService(fc, &fakeSession{token: "tok"}).(*creatureService)
		svc.encode = func(path string) (string, error) { return "data:image/png;base64,AA==", nil }

		require.NoError(t, svc.ChangeBackground(ctx, 2, "bg.png"))
		require.Equal(t, "data:image/png;base64,AA==", fc.LastImage)
	})

	t.Run("change background bad file", func(t *testing.T) {
		fc := &fakeClient{}
		svc := NewCreatureService(fc, &fakeSession{token: "tok"}).(*creatureService)
		svc.encode = func(string) (string, error) { return "", common.ErrNotImageRef }

		require.ErrorIs(t, svc.ChangeBackground(ctx, 2, "notes.txt"), common.ErrNotImageRef)
		require.Empty(t, fc.LastImage)
	})

	t.Run("reset background", func(t *testing.T) {
		fc := &fakeClient{}
		svc := NewCreatureService(fc, &fakeSession{token: "tok"})
		require.NoError(t, svc.ResetBackground(ctx, 7))
		require.Equal(t, 1, fc.ResetBGCalls)
	})

	t.Run("expired session", func(t *testing.T) {
		svc := NewCreatureService(&fakeClient{}, &fakeSession{tokenErr: common.ErrTokenExpired})
		_, err := svc.Details(ctx, 1)
		require.ErrorIs(t, err, common.ErrTokenExpired)
	})
}

func TestAdminService(t *testing.T) {
	ctx := context.Background()

	t.Run("non admin rejected locally", func(t *testing.T) {
		fc := &fakeClient{}
		svc := NewAdminService(fc, &fakeSession{token: "tok"})
		_, err := svc.List(ctx, 1, 10, "")
		require.ErrorIs(t, err, common.ErrNotAdmin)
		require.Empty(t, fc.LastToken)
	})

	t.Run("list", func(t *testing.T) {
		fc := &fakeClient{AdminListRet: &models.CreaturePage{Count: 3}}
		svc := NewAdminService(fc, &fakeSession{token: "tok", admin: true})
		res, err := svc.List(ctx, 2, 5, "drag")
		require.NoError(t, err)
		require.Equal(t, 3, res.Count)
		require.Equal(t, api.PageQuery{Page: 2, PageSize: 5, Name: "drag"}, fc.LastQuery)
	})

	t.Run("add validates", func(t *testing.T) {
		fc := &fakeClient{AddRet: &models.Creature{ID: 14, Name: "Hydra"}}
		svc := NewAdminService(fc, &fakeSession{token: "tok", admin: true})

		_, err := svc.Add(ctx, models.CreatureInput{Name: ""})
		require.ErrorIs(t, err, common.ErrEmptyField)

		_, err = svc.Add(ctx, models.CreatureInput{Name: "Hydra", Img: ptr("not a url")})
		require.ErrorIs(t, err, common.ErrNotImageRef)

		c, err := svc.Add(ctx, models.CreatureInput{Name: "Hydra", Img: ptr("https://img.example/h.png")})
		require.NoError(t, err)
		require.Equal(t, int64(14), c.ID)
	})

	t.Run("edit", func(t *testing.T) {
		fc := &fakeClient{}
		svc := NewAdminService(fc, &fakeSession{token: "tok", admin: true})
		require.ErrorIs(t, svc.Edit(ctx, 3, models.CreatureInput{Lore: ptr("x")}), common.ErrEmptyField)

		in := models.CreatureInput{Name: "Sphinx", Lore: ptr("old and wise")}
		require.NoError(t, svc.Edit(ctx, 3, in))
		require.Equal(t, int64(3), fc.LastID)
		require.Equal(t, in, fc.LastInput)
	})

	t.Run("server failure wrapped", func(t *testing.T) {
		fc := &fakeClient{AdminErr: &api.Error{Kind: api.KindForbidden}}
		svc := NewAdminService(fc, &fakeSession{token: "tok", admin: true})
		err := svc.Edit(ctx, 3, models.CreatureInput{Name: "X"})
		require.True(t, errors.Is(err, api.ErrForbidden))
	})
}

package mockserver

import (
	"testing"

	"github.com/dmitrijs2005/arcanedex/internal/client/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func seededStore(t *testing.T) *Store {
	t.Helper()
	s := NewStore(bcrypt.MinCost)
	require.NoError(t, s.SeedCreatures(DefaultCreatures))
	return s
}

func TestListCreatures(t *testing.T) {
	s := seededStore(t)

	tests := []struct {
		name      string
		q         ListQuery
		wantCount int
		wantLen   int
		wantErr   bool
	}{
		{name: "first page", q: ListQuery{Page: 1, Limit: 6}, wantCount: 13, wantLen: 6},
		{name: "last partial page", q: ListQuery{Page: 3, Limit: 6}, wantCount: 13, wantLen: 1},
		{name: "past the end", q: ListQuery{Page: 4, Limit: 6}, wantCount: 13, wantLen: 0},
		{name: "name filter is case-insensitive", q: ListQuery{Page: 1, Limit: 6, Name: "WY"}, wantCount: 1, wantLen: 1},
		{name: "favorites only, none", q: ListQuery{Page: 1, Limit: 6, FavoritesOnly: true}, wantCount: 0, wantLen: 0},
		{name: "page zero", q: ListQuery{Page: 0, Limit: 6}, wantErr: true},
		{name: "limit zero", q: ListQuery{Page: 1, Limit: 0}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page, err := s.ListCreatures(tt.q)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidPagination)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantCount, page.Count)
			assert.Len(t, page.Data, tt.wantLen)
		})
	}
}

func TestFavoriteFlagIsPerUser(t *testing.T) {
	s := seededStore(t)
	require.NoError(t, s.AddFavorite(1, 3))

	p, err := s.ListCreatures(ListQuery{UserID: 1, Page: 1, Limit: 6})
	require.NoError(t, err)
	assert.True(t, p.Data[2].IsFavoriteToUser)

	p, err = s.ListCreatures(ListQuery{UserID: 2, Page: 1, Limit: 6})
	require.NoError(t, err)
	assert.False(t, p.Data[2].IsFavoriteToUser)

	require.ErrorIs(t, s.AddFavorite(1, 999), ErrCreatureNotFound)
}

func TestUpdateProfile(t *testing.T) {
	s := NewStore(bcrypt.MinCost)
	id, err := s.CreateUser(models.Registration{Email: "a@a.a", Username: "a", Password: "secret!12"})
	require.NoError(t, err)
	_, err = s.CreateUser(models.Registration{Email: "b@b.b", Username: "b", Password: "secret!12"})
	require.NoError(t, err)

	require.ErrorIs(t, s.UpdateProfile(id, models.ProfileUpdate{Email: "B@b.b"}), ErrEmailTaken)

	pw := "newpass!99"
	require.NoError(t, s.UpdateProfile(id, models.ProfileUpdate{FirstName: "Ann", Email: "a@a.a", Password: &pw}))

	p, err := s.Profile(id)
	require.NoError(t, err)
	assert.Equal(t, "Ann", p.FirstName)

	_, _, err = s.Authenticate("a", "secret!12")
	require.ErrorIs(t, err, ErrInvalidPassword)
	_, _, err = s.Authenticate("a", pw)
	require.NoError(t, err)
}

package catalog

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dmitrijs2005/arcanedex/internal/client/api"
	"github.com/dmitrijs2005/arcanedex/internal/client/models"
	"github.com/dmitrijs2005/arcanedex/internal/client/session"
	"github.com/dmitrijs2005/arcanedex/internal/client/storage"
	"github.com/dmitrijs2005/arcanedex/internal/logging"
	"github.com/dmitrijs2005/arcanedex/internal/mockserver"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// newLivePager wires a Pager to the mock API through the real HTTP client
// and session store, logged in as a seeded admin.
func newLivePager(t *testing.T) (*Pager, *storage.Repositories) {
	t.Helper()
	ctx := context.Background()
	log := logging.NewDiscard()

	opts := mockserver.DefaultOptions()
	opts.BcryptCost = bcrypt.MinCost
	opts.RequestsPerSecond = 0
	srv := mockserver.New(opts, log)
	require.NoError(t, srv.Store().SeedAdmin("admin", "Admin@123"))
	require.NoError(t, srv.Store().SeedCreatures(mockserver.DefaultCreatures))

	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)

	client, err := api.NewHTTPClient(ts.URL, api.WithTimeout(5*time.Second))
	require.NoError(t, err)

	repos, err := storage.InitDatabase(ctx, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = repos.Close() })

	store := session.NewStore(ctx, repos.Preferences, log)
	token, err := client.Login(ctx, models.Credentials{Username: "admin", Password: "Admin@123"})
	require.NoError(t, err)
	store.SaveToken(ctx, token)

	return NewPager(client, store, repos.Arcanes, 6, 10, log), repos
}

func TestLive_PaginationAgainstServer(t *testing.T) {
	p, _ := newLivePager(t)
	ctx := context.Background()

	_, err := p.LoadMore(ctx)
	require.NoError(t, err)
	assert.Equal(t, 13, p.Cursor().TotalCount)

	_, err = p.LoadMore(ctx)
	require.NoError(t, err)
	assert.Equal(t, 12, p.Cursor().Loaded)
	assert.True(t, p.HasMore())

	_, err = p.LoadMore(ctx)
	require.NoError(t, err)
	assert.Equal(t, 13, p.Cursor().Loaded)
	assert.False(t, p.HasMore())
}

func TestLive_FavoriteSurvivesRefresh(t *testing.T) {
	p, _ := newLivePager(t)
	ctx := context.Background()

	_, err := p.LoadMore(ctx)
	require.NoError(t, err)
	first := p.Items()[0]

	now, err := p.ToggleFavorite(ctx, first.ID)
	require.NoError(t, err)
	require.True(t, now)

	p.Reset("", true)
	_, err = p.LoadMore(ctx)
	require.NoError(t, err)
	require.Len(t, p.Items(), 1)
	assert.Equal(t, first.ID, p.Items()[0].ID)
	assert.True(t, p.Items()[0].IsFavoriteToUser)
}

func TestLive_SaveOfflineMirrorsFirstPage(t *testing.T) {
	p, repos := newLivePager(t)
	ctx := context.Background()

	n, err := p.SaveOffline(ctx)
	require.NoError(t, err)
	assert.Equal(t, 10, n)

	rows, err := repos.Arcanes.GetAll(ctx)
	require.NoError(t, err)
	assert.Len(t, rows, 10)

	cached, err := p.Cached(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Basilisk", cached[0].Name)
}

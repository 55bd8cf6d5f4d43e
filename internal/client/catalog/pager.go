// Package catalog drives the paged creature listing: pagination state, the
// in-flight guard for "load more", favorite toggling and the offline mirror.
package catalog

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/dmitrijs2005/arcanedex/internal/client/api"
	"github.com/dmitrijs2005/arcanedex/internal/client/models"
	"github.com/dmitrijs2005/arcanedex/internal/client/repositories/arcanes"
	"github.com/dmitrijs2005/arcanedex/internal/common"
	"github.com/dmitrijs2005/arcanedex/internal/logging"
)

// Remote is the part of api.Client the pager needs.
type Remote interface {
	FetchPage(ctx context.Context, token string, q api.PageQuery) (*models.CreaturePage, error)
	AddFavorite(ctx context.Context, token string, creatureID int64) error
	RemoveFavorite(ctx context.Context, token string, creatureID int64) error
}

// TokenSource hands out the current bearer token.
type TokenSource interface {
	ValidToken() (string, error)
}

type Pager struct {
	remote          Remote
	tokens          TokenSource
	cache           arcanes.Repository
	log             logging.Logger
	offlinePageSize int

	mu           sync.Mutex
	loading      bool
	generation   uint64
	cursor       models.PageCursor
	filter       string
	favOnly      bool
	items        []models.Creature
	offlineSaved bool
}

func NewPager(remote Remote, tokens TokenSource, cache arcanes.Repository, pageSize, offlinePageSize int, log logging.Logger) *Pager {
	return &Pager{
		remote:          remote,
		tokens:          tokens,
		cache:           cache,
		log:             log,
		offlinePageSize: offlinePageSize,
		cursor:          models.NewPageCursor(pageSize),
	}
}

// Reset starts the listing over with a new filter. A fetch still in flight
// is discarded when it completes.
func (p *Pager) Reset(filter string, favoritesOnly bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.generation++
	p.loading = false
	p.cursor.Reset()
	p.items = nil
	p.filter = filter
	p.favOnly = favoritesOnly
}

func (p *Pager) Filter() (string, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.filter, p.favOnly
}

func (p *Pager) Items() []models.Creature {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]models.Creature(nil), p.items...)
}

func (p *Pager) Cursor() models.PageCursor {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.cursor
}

// HasMore reports whether "load more" should be offered.
func (p *Pager) HasMore() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.cursor.HasMore()
}

func (p *Pager) IsLoading() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.loading
}

// LoadMore fetches the next page and appends it. While another fetch is in
// flight it returns common.ErrBusy without doing anything; once every row has
// been loaded it returns (nil, nil).
func (p *Pager) LoadMore(ctx context.Context) ([]models.Creature, error) {
	p.mu.Lock()
	if p.loading {
		p.mu.Unlock()
		return nil, common.ErrBusy
	}
	if p.cursor.CurrentPage > 1 && !p.cursor.HasMore() {
		p.mu.Unlock()
		return nil, nil
	}
	p.loading = true
	gen := p.generation
	q := api.PageQuery{
		Page:          p.cursor.CurrentPage,
		PageSize:      p.cursor.PageSize,
		Name:          p.filter,
		FavoritesOnly: p.favOnly,
	}
	p.mu.Unlock()

	page, err := p.fetch(ctx, q)

	p.mu.Lock()
	defer p.mu.Unlock()
	if gen != p.generation {
		// reset while fetching; the result belongs to a stale listing
		return nil, nil
	}
	p.loading = false
	if err != nil {
		return nil, err
	}

	p.items = append(p.items, page.Data...)
	p.cursor.Advance(len(page.Data), page.Count)
	p.log.Debug(ctx, "page loaded", "page", q.Page, "rows", len(page.Data), "loaded", p.cursor.Loaded, "total", page.Count)
	return page.Data, nil
}

func (p *Pager) fetch(ctx context.Context, q api.PageQuery) (*models.CreaturePage, error) {
	token, err := p.tokens.ValidToken()
	if err != nil {
		return nil, err
	}
	page, err := p.remote.FetchPage(ctx, token, q)
	if err != nil {
		return nil, fmt.Errorf("fetch page %d: %w", q.Page, err)
	}
	return page, nil
}

// Refresh reloads the listing from page 1 with the current filter.
func (p *Pager) Refresh(ctx context.Context) error {
	filter, favOnly := p.Filter()
	p.Reset(filter, favOnly)
	_, err := p.LoadMore(ctx)
	return err
}

func (p *Pager) setFavorite(id int64, v bool) (found bool, previous bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	for i := range p.items {
		if p.items[i].ID == id {
			previous = p.items[i].IsFavoriteToUser
			p.items[i].IsFavoriteToUser = v
			return true, previous
		}
	}
	return false, false
}

// ToggleFavorite flips the favorite flag of a loaded creature immediately,
// confirms it with the server and then refreshes from page 1 so the server's
// view replaces the local one. On failure the flag is restored.
func (p *Pager) ToggleFavorite(ctx context.Context, id int64) (bool, error) {
	p.mu.Lock()
	var (
		current bool
		found   bool
	)
	for _, it := range p.items {
		if it.ID == id {
			current, found = it.IsFavoriteToUser, true
			break
		}
	}
	p.mu.Unlock()
	if !found {
		return false, fmt.Errorf("creature %d is not in the current listing", id)
	}

	token, err := p.tokens.ValidToken()
	if err != nil {
		return current, err
	}

	want := !current
	p.setFavorite(id, want)

	if want {
		err = p.remote.AddFavorite(ctx, token, id)
	} else {
		err = p.remote.RemoveFavorite(ctx, token, id)
	}
	if err != nil {
		p.setFavorite(id, current)
		return current, fmt.Errorf("toggle favorite %d: %w", id, err)
	}

	if err := p.Refresh(ctx); err != nil {
		return want, fmt.Errorf("refresh after favorite: %w", err)
	}
	return want, nil
}

// SaveOffline mirrors the first page of the catalog into the local cache.
// It runs at most once per session; see ResetSession.
func (p *Pager) SaveOffline(ctx context.Context) (int, error) {
	p.mu.Lock()
	if p.offlineSaved {
		p.mu.Unlock()
		return 0, nil
	}
	p.mu.Unlock()

	page, err := p.fetch(ctx, api.PageQuery{Page: 1, PageSize: p.offlinePageSize, ForOfflineSave: true})
	if err != nil {
		return 0, err
	}
	if err := p.cache.InsertAll(ctx, models.Rows(page.Data)); err != nil {
		return 0, fmt.Errorf("save offline: %w", err)
	}

	p.mu.Lock()
	p.offlineSaved = true
	p.mu.Unlock()

	p.log.Info(ctx, "catalog saved for offline use", "rows", len(page.Data))
	return len(page.Data), nil
}

// ResetSession forgets per-session state: the listing and the save-offline
// guard.
func (p *Pager) ResetSession() {
	p.Reset("", false)
	p.mu.Lock()
	p.offlineSaved = false
	p.mu.Unlock()
}

// Cached returns the offline mirror ordered by id.
func (p *Pager) Cached(ctx context.Context) ([]models.Creature, error) {
	rows, err := p.cache.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].ID < rows[j].ID })

	out := make([]models.Creature, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.Creature())
	}
	return out, nil
}

// CachedByID returns one row of the offline copy, or (nil, nil) when it was
// never saved.
func (p *Pager) CachedByID(ctx context.Context, id int64) (*models.Creature, error) {
	row, err := p.cache.GetByID(ctx, id)
	if err != nil || row == nil {
		return nil, err
	}
	c := row.Creature()
	return &c, nil
}

func (p *Pager) CachedCount(ctx context.Context) (int, error) {
	return p.cache.Count(ctx)
}

func (p *Pager) ClearCache(ctx context.Context) error {
	if err := p.cache.Clear(ctx); err != nil {
		return err
	}
	p.mu.Lock()
	p.offlineSaved = false
	p.mu.Unlock()
	return nil
}

package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/arcanedex/internal/client/availability"
	"github.com/dmitrijs2005/arcanedex/internal/client/models"
	"github.com/dmitrijs2005/arcanedex/internal/common"
)

// requireLive runs the foreground check and fails unless the live catalog
// is available.
func (a *App) requireLive(ctx context.Context) error {
	switch a.controller.Foreground(ctx) {
	case availability.StateLive:
		return nil
	case availability.StateOfflineCached, availability.StateTransitioning:
		return common.ErrOffline
	default:
		return common.ErrNotLoggedIn
	}
}

// fetchFailed lets the controller react to a failed catalog call and returns
// the error to show.
func (a *App) fetchFailed(ctx context.Context, err error) error {
	if errors.Is(err, common.ErrBusy) {
		return err
	}
	switch a.controller.FetchFailed(ctx, err) {
	case availability.NoticeSessionExpired, availability.NoticeWentOffline:
		// the state listener has already printed the notice
		return nil
	}
	return err
}

func (a *App) printPage(items []models.Creature) {
	if len(items) == 0 {
		a.println("No creatures found.")
		return
	}
	for _, c := range items {
		a.println(formatCreature(c))
	}
	cur := a.pager.Cursor()
	if a.pager.HasMore() {
		a.printf("Showing %d of %d, type 'more' for the next page.\n", cur.Loaded, cur.TotalCount)
	} else {
		a.printf("Showing all %d.\n", cur.Loaded)
	}
}

func (a *App) printCached(ctx context.Context) error {
	rows, err := a.pager.Cached(ctx)
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		a.println("No creatures saved for offline use.")
		return nil
	}
	for _, c := range rows {
		a.println(formatCreature(c))
	}
	a.printf("%d creatures saved for offline use.\n", len(rows))
	return nil
}

// List shows the catalog screen for the current availability state: the
// first live page, the offline copy, or a login hint.
func (a *App) List(ctx context.Context) error {
	switch a.controller.Foreground(ctx) {
	case availability.StateLive:
		if err := a.pager.Refresh(ctx); err != nil {
			return a.fetchFailed(ctx, err)
		}
		a.printPage(a.pager.Items())
		return nil
	case availability.StateOfflineCached, availability.StateTransitioning:
		a.println("Offline, showing saved creatures:")
		return a.printCached(ctx)
	default:
		return common.ErrNotLoggedIn
	}
}

func (a *App) More(ctx context.Context) error {
	if err := a.requireLive(ctx); err != nil {
		return err
	}
	if a.pager.Cursor().Loaded > 0 && !a.pager.HasMore() {
		a.println("No more creatures.")
		return nil
	}
	rows, err := a.pager.LoadMore(ctx)
	if err != nil {
		return a.fetchFailed(ctx, err)
	}
	for _, c := range rows {
		a.println(formatCreature(c))
	}
	if !a.pager.HasMore() {
		a.println("End of list.")
	}
	return nil
}

// Search restarts the listing filtered by name; an empty name clears the
// filter.
func (a *App) Search(ctx context.Context, name string) error {
	if err := a.requireLive(ctx); err != nil {
		return err
	}
	_, favOnly := a.pager.Filter()
	a.pager.Reset(name, favOnly)
	if _, err := a.pager.LoadMore(ctx); err != nil {
		return a.fetchFailed(ctx, err)
	}
	a.printPage(a.pager.Items())
	return nil
}

// Favorites toggles the favorites-only filter.
func (a *App) Favorites(ctx context.Context) error {
	if err := a.requireLive(ctx); err != nil {
		return err
	}
	filter, favOnly := a.pager.Filter()
	a.pager.Reset(filter, !favOnly)
	if favOnly {
		a.println("Showing all creatures.")
	} else {
		a.println("Showing favorites only.")
	}
	if _, err := a.pager.LoadMore(ctx); err != nil {
		return a.fetchFailed(ctx, err)
	}
	a.printPage(a.pager.Items())
	return nil
}

func (a *App) ToggleFavorite(ctx context.Context, args []string) error {
	id, err := parseID(args, "fav <id>")
	if err != nil {
		return err
	}
	if err := a.requireLive(ctx); err != nil {
		return err
	}
	now, err := a.pager.ToggleFavorite(ctx, id)
	if err != nil {
		return a.fetchFailed(ctx, err)
	}
	if now {
		a.printf("#%d added to favorites.\n", id)
	} else {
		a.printf("#%d removed from favorites.\n", id)
	}
	return nil
}

func (a *App) find(ctx context.Context, id int64) (*models.Creature, error) {
	if a.controller.State() != availability.StateLive {
		c, err := a.pager.CachedByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if c == nil {
			return nil, fmt.Errorf("creature #%d is not saved offline", id)
		}
		return c, nil
	}
	items := a.pager.Items()
	for i := range items {
		if items[i].ID == id {
			return &items[i], nil
		}
	}
	return nil, fmt.Errorf("creature #%d is not in the current list", id)
}

// Show prints one creature from the current listing (or the offline copy).
// Favorites also show their custom background when online.
func (a *App) Show(ctx context.Context, args []string) error {
	id, err := parseID(args, "show <id>")
	if err != nil {
		return err
	}
	c, err := a.find(ctx, id)
	if err != nil {
		return err
	}
	a.println(formatDetails(*c))

	if !c.IsFavoriteToUser || a.controller.State() != availability.StateLive {
		return nil
	}
	d, err := a.creatures.Details(ctx, id)
	if err != nil {
		return a.fetchFailed(ctx, err)
	}
	a.printf("Background: %s\n", describeImage(d.BackgroundImg))
	return nil
}

func (a *App) Background(ctx context.Context, args []string) error {
	const usage = "background <id> <image file>"
	id, err := parseID(args, usage)
	if err != nil {
		return err
	}
	if len(args) < 2 {
		return usageError(usage)
	}
	if err := a.requireLive(ctx); err != nil {
		return err
	}
	if err := a.creatures.ChangeBackground(ctx, id, args[1]); err != nil {
		return a.fetchFailed(ctx, err)
	}
	a.printf("Background of #%d updated.\n", id)
	return nil
}

func (a *App) ResetBackground(ctx context.Context, args []string) error {
	id, err := parseID(args, "resetbg <id>")
	if err != nil {
		return err
	}
	if err := a.requireLive(ctx); err != nil {
		return err
	}
	if err := a.creatures.ResetBackground(ctx, id); err != nil {
		return a.fetchFailed(ctx, err)
	}
	a.printf("Background of #%d reset.\n", id)
	return nil
}

// Cache lists the creatures saved for offline use regardless of state.
func (a *App) Cache(ctx context.Context) error {
	return a.printCached(ctx)
}

func (a *App) ClearCache(ctx context.Context) error {
	if err := a.pager.ClearCache(ctx); err != nil {
		return err
	}
	a.println("Offline copy cleared.")
	return nil
}

func (a *App) Status(ctx context.Context) error {
	a.printf("State: %s\n", a.controller.State())
	a.printf("Logged in: %t\n", a.isLoggedIn())
	a.printf("Offline flag: %t\n", a.session.IsOffline())
	a.printf("Terms accepted: %t\n", a.session.HasAcceptedTerms())
	if filter, favOnly := a.pager.Filter(); filter != "" || favOnly {
		a.printf("Filter: %q, favorites only: %t\n", filter, favOnly)
	}
	if cur := a.pager.Cursor(); cur.Loaded > 0 {
		a.printf("Loaded: %d of %d\n", cur.Loaded, cur.TotalCount)
	}
	n, err := a.pager.CachedCount(ctx)
	if err != nil {
		return err
	}
	a.printf("Saved offline: %d\n", n)
	return nil
}

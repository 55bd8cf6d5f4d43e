package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/dmitrijs2005/arcanedex/internal/client/api"
	"github.com/dmitrijs2005/arcanedex/internal/client/availability"
	"github.com/dmitrijs2005/arcanedex/internal/client/catalog"
	"github.com/dmitrijs2005/arcanedex/internal/client/config"
	"github.com/dmitrijs2005/arcanedex/internal/client/connectivity"
	"github.com/dmitrijs2005/arcanedex/internal/client/models"
	"github.com/dmitrijs2005/arcanedex/internal/client/services"
	"github.com/dmitrijs2005/arcanedex/internal/client/session"
	"github.com/dmitrijs2005/arcanedex/internal/client/storage"
	"github.com/dmitrijs2005/arcanedex/internal/logging"
)

type sessionView interface {
	HasValidToken() bool
	HasAcceptedTerms() bool
	IsOffline() bool
	IsAdmin(ctx context.Context) bool
}

type availabilityView interface {
	State() availability.State
	Foreground(ctx context.Context) availability.State
	FetchFailed(ctx context.Context, err error) availability.Notice
	OnChange(fn func(availability.Event)) func()
	Close()
}

type catalogView interface {
	Reset(filter string, favoritesOnly bool)
	Filter() (string, bool)
	Items() []models.Creature
	Cursor() models.PageCursor
	HasMore() bool
	LoadMore(ctx context.Context) ([]models.Creature, error)
	Refresh(ctx context.Context) error
	ToggleFavorite(ctx context.Context, id int64) (bool, error)
	Cached(ctx context.Context) ([]models.Creature, error)
	CachedByID(ctx context.Context, id int64) (*models.Creature, error)
	CachedCount(ctx context.Context) (int, error)
	ClearCache(ctx context.Context) error
}

type App struct {
	config       *config.Config
	log          logging.Logger
	session      sessionView
	controller   availabilityView
	pager        catalogView
	auth         services.AuthService
	profile      services.ProfileService
	creatures    services.CreatureService
	admin        services.AdminService
	reader       *bufio.Reader
	out          io.Writer
	startWatcher func(ctx context.Context)
	closers      []func() error
}

// NewApp opens the local database and wires every client component.
func NewApp(ctx context.Context, c *config.Config, log logging.Logger) (*App, error) {
	repos, err := storage.InitDatabase(ctx, c.DatabasePath)
	if err != nil {
		log.Error(ctx, "error initializing database", "error", err)
		return nil, err
	}

	apiClient, err := api.NewHTTPClient(c.ServerBaseURL,
		api.WithTimeout(c.RequestTimeout),
		api.WithRateLimit(c.RequestsPerSecond),
		api.WithLogger(log),
	)
	if err != nil {
		_ = repos.Close()
		return nil, err
	}

	store := session.NewStore(ctx, repos.Preferences, log)

	probe := connectivity.All{connectivity.NewInterfaceProbe()}
	if c.ProbeAddr != "" {
		probe = append(probe, connectivity.NewDialProbe(c.ProbeAddr, 3*time.Second))
	}
	watcher := connectivity.NewWatcher(probe, c.OnlineCheckInterval, log)

	pager := catalog.NewPager(apiClient, store, repos.Arcanes, c.PageSize, c.OfflinePageSize, log)

	validToken := func(t string) bool { return session.IsTokenValid(t, time.Now()) }
	controller := availability.New(store, watcher, pager, validToken, log, availability.Options{
		PollInterval:           c.OnlineCheckInterval,
		ClearTokenOnDisconnect: c.ClearTokenOnDisconnect,
	})

	return &App{
		config:     c,
		log:        log,
		session:    store,
		controller: controller,
		pager:      pager,
		auth:       services.NewAuthService(apiClient, store, controller),
		profile:    services.NewProfileService(apiClient, store, controller),
		creatures:  services.NewCreatureService(apiClient, store),
		admin:      services.NewAdminService(apiClient, store),
		reader:     bufio.NewReader(os.Stdin),
		out:        os.Stdout,
		startWatcher: func(ctx context.Context) {
			watcher.Check(ctx)
			go watcher.Run(ctx)
		},
		closers: []func() error{repos.Close},
	}, nil
}

// Run starts the connectivity watcher and blocks in the REPL until the user
// exits or ctx is cancelled.
func (a *App) Run(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	defer a.Close()

	if a.startWatcher != nil {
		a.startWatcher(ctx)
	}
	unsubscribe := a.controller.OnChange(a.onStateChange)
	defer unsubscribe()

	printlnFn("Welcome to ArcaneDex CLI (type 'help' for commands)")
	if !a.session.HasAcceptedTerms() {
		printlnFn("Type 'terms' to review and accept the terms of use before logging in.")
	}
	a.controller.Foreground(ctx)

	runREPL(ctx, a, a.getStatus, a.reader)
}

func (a *App) Close() {
	a.controller.Close()
	for _, c := range a.closers {
		if err := c(); err != nil {
			a.log.Warn(context.Background(), "close failed", "error", err)
		}
	}
	a.closers = nil
}

func (a *App) onStateChange(ev availability.Event) {
	if ev.Notice != availability.NoticeNone {
		printlnFn("*", string(ev.Notice))
	}
}

func (a *App) isLoggedIn() bool {
	return a.session.HasValidToken()
}

func (a *App) isAdmin(ctx context.Context) bool {
	return a.session.IsAdmin(ctx)
}

func (a *App) getStatus() string {
	switch a.controller.State() {
	case availability.StateLive:
		return "online"
	case availability.StateOfflineCached:
		return "offline"
	case availability.StateTransitioning:
		return "reconnecting"
	default:
		return "logged out"
	}
}

func (a *App) println(args ...any) {
	fmt.Fprintln(a.out, args...)
}

func (a *App) printf(format string, args ...any) {
	fmt.Fprintf(a.out, format, args...)
}

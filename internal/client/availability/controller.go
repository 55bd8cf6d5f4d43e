// Package availability decides which screen the client should be on: the
// live paginated catalog, the cached offline catalog or the login screen. It
// reacts to connectivity transitions, token expiry, logout and fetch
// failures, and owns the reachability poll that runs while offline.
package availability

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/dmitrijs2005/arcanedex/internal/client/api"
	"github.com/dmitrijs2005/arcanedex/internal/client/connectivity"
	"github.com/dmitrijs2005/arcanedex/internal/common"
	"github.com/dmitrijs2005/arcanedex/internal/logging"
)

type State string

const (
	StateLogin         State = "LOGIN"
	StateLive          State = "LIVE"
	StateOfflineCached State = "OFFLINE_CACHED"
	StateTransitioning State = "TRANSITIONING"
)

const DefaultPollInterval = 5 * time.Second

// Notice is a user-facing message raised alongside a transition.
type Notice string

const (
	NoticeNone           Notice = ""
	NoticeSessionExpired Notice = "session expired, please log in again"
	NoticeWentOffline    Notice = "connection lost, showing saved creatures"
	NoticeBackOnline     Notice = "connection restored, please log in"
	NoticeFetchFailed    Notice = "could not load creatures"
)

// Event is delivered to listeners on every state change.
type Event struct {
	From   State
	To     State
	Notice Notice
}

// Session is the subset of session.Store the controller drives.
type Session interface {
	Token() (string, bool)
	SaveToken(ctx context.Context, token string)
	ClearToken(ctx context.Context)
	SetOffline(ctx context.Context, v bool)
	WasLoggedOut() bool
	SetLoggedOut(ctx context.Context, v bool)
	HasValidToken() bool
}

// OfflineSaver mirrors the catalog into the local cache.
type OfflineSaver interface {
	SaveOffline(ctx context.Context) (int, error)
	ResetSession()
}

type Options struct {
	PollInterval           time.Duration
	ClearTokenOnDisconnect bool
}

type Controller struct {
	session Session
	monitor connectivity.Monitor
	saver   OfflineSaver
	log     logging.Logger
	opts    Options

	validToken func(token string) bool

	baseCtx    context.Context
	baseCancel context.CancelFunc
	wg         sync.WaitGroup

	mu          sync.Mutex
	state       State
	listeners   map[int]func(Event)
	nextID      int
	stopPoll    context.CancelFunc
	navigating  bool
	unsubscribe func()
	closeOnce   sync.Once
	closed      bool
}

// New builds a controller in the LOGIN state and subscribes it to monitor.
// validToken decides whether a freshly issued token has a future expiry.
func New(s Session, monitor connectivity.Monitor, saver OfflineSaver, validToken func(string) bool, log logging.Logger, opts Options) *Controller {
	if opts.PollInterval <= 0 {
		opts.PollInterval = DefaultPollInterval
	}
	ctx, cancel := context.WithCancel(context.Background())
	c := &Controller{
		session:    s,
		monitor:    monitor,
		saver:      saver,
		log:        log,
		opts:       opts,
		validToken: validToken,
		baseCtx:    ctx,
		baseCancel: cancel,
		state:      StateLogin,
		listeners:  make(map[int]func(Event)),
	}
	c.unsubscribe = monitor.Subscribe(c.onConnectivity)
	return c
}

func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Polling reports whether the offline reachability poll is running.
func (c *Controller) Polling() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stopPoll != nil
}

// OnChange registers fn for state changes. The returned func unregisters it.
func (c *Controller) OnChange(fn func(Event)) func() {
	c.mu.Lock()
	id := c.nextID
	c.nextID++
	c.listeners[id] = fn
	c.mu.Unlock()

	return func() {
		c.mu.Lock()
		delete(c.listeners, id)
		c.mu.Unlock()
	}
}

// transition must be called with c.mu held; it returns the listeners to
// notify once the lock is released.
func (c *Controller) transition(to State, notice Notice) (Event, []func(Event)) {
	ev := Event{From: c.state, To: to, Notice: notice}
	c.state = to
	fns := make([]func(Event), 0, len(c.listeners))
	for _, fn := range c.listeners {
		fns = append(fns, fn)
	}
	return ev, fns
}

func (c *Controller) emit(ctx context.Context, ev Event, fns []func(Event)) {
	if ev.From != ev.To {
		c.log.Info(ctx, "availability changed", "from", ev.From, "to", ev.To)
	}
	for _, fn := range fns {
		fn(ev)
	}
}

func (c *Controller) moveTo(ctx context.Context, to State, notice Notice) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	ev, fns := c.transition(to, notice)
	c.mu.Unlock()
	c.emit(ctx, ev, fns)
}

// Foreground runs the check made whenever the catalog screen is shown.
func (c *Controller) Foreground(ctx context.Context) State {
	state := c.State()
	if state == StateOfflineCached || state == StateTransitioning {
		return state
	}

	if !c.monitor.IsReachable(ctx) {
		c.goOffline(ctx)
		return c.State()
	}

	if c.session.HasValidToken() {
		c.enterLive(ctx)
		return c.State()
	}

	c.toLogin(ctx)
	return c.State()
}

// toLogin moves to LOGIN because the session is unusable. The expiry notice
// is suppressed exactly once after an explicit logout.
func (c *Controller) toLogin(ctx context.Context) {
	_, hadToken := c.session.Token()
	if hadToken {
		c.session.ClearToken(ctx)
	}

	notice := NoticeNone
	switch {
	case c.session.WasLoggedOut():
		c.session.SetLoggedOut(ctx, false)
	case hadToken || c.State() == StateLive:
		notice = NoticeSessionExpired
	}
	c.moveTo(ctx, StateLogin, notice)
}

func (c *Controller) enterLive(ctx context.Context) {
	c.mu.Lock()
	was := c.state
	c.mu.Unlock()

	c.session.SetOffline(ctx, false)
	c.moveTo(ctx, StateLive, NoticeNone)
	if was == StateLive {
		return
	}

	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		if _, err := c.saver.SaveOffline(c.baseCtx); err != nil {
			c.log.Warn(c.baseCtx, "offline save failed", "error", err)
		}
	}()
}

// LoginSucceeded stores a freshly issued token and enters LIVE.
func (c *Controller) LoginSucceeded(ctx context.Context, token string) error {
	if !c.validToken(token) {
		return common.ErrInvalidToken
	}
	c.stop()
	c.session.SaveToken(ctx, token)
	c.session.SetLoggedOut(ctx, false)
	c.enterLive(ctx)
	return nil
}

// Logout clears the session and returns to LOGIN without the expiry notice.
func (c *Controller) Logout(ctx context.Context) {
	c.session.ClearToken(ctx)
	c.session.SetLoggedOut(ctx, true)
	c.saver.ResetSession()
	c.stop()
	c.moveTo(ctx, StateLogin, NoticeNone)
}

// FetchFailed reacts to a failed catalog call. Auth failures end the session.
// A transport failure falls back to the cache only when the monitor confirms
// the network is gone; anything else keeps the current state and yields a
// transient notice.
func (c *Controller) FetchFailed(ctx context.Context, err error) Notice {
	if err == nil {
		return NoticeNone
	}
	kind := api.KindOf(err)
	if kind.IsAuth() || errors.Is(err, common.ErrTokenExpired) || errors.Is(err, common.ErrNotLoggedIn) {
		c.log.Warn(ctx, "session rejected", "error", err)
		c.toLogin(ctx)
		return NoticeSessionExpired
	}
	if kind == api.KindUnavailable && c.State() == StateLive && !c.monitor.IsReachable(ctx) {
		c.log.Warn(ctx, "fetch failed without network", "error", err)
		c.goOffline(ctx)
		return NoticeWentOffline
	}
	c.log.Warn(ctx, "fetch failed", "error", err)
	return NoticeFetchFailed
}

func (c *Controller) onConnectivity(connected bool) {
	ctx := c.baseCtx
	switch state := c.State(); {
	case !connected && state == StateLive:
		c.goOffline(ctx)
	case connected && state == StateOfflineCached:
		c.tryRecover(ctx)
	}
}

func (c *Controller) goOffline(ctx context.Context) {
	if c.opts.ClearTokenOnDisconnect {
		c.session.ClearToken(ctx)
	}
	c.session.SetOffline(ctx, true)
	c.moveTo(ctx, StateOfflineCached, NoticeWentOffline)
	c.startPoll()
}

func (c *Controller) startPoll() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed || c.stopPoll != nil {
		return
	}

	ctx, cancel := context.WithCancel(c.baseCtx)
	c.stopPoll = cancel
	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		ticker := time.NewTicker(c.opts.PollInterval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				c.tryRecover(ctx)
			case <-ctx.Done():
				return
			}
		}
	}()
}

// stop cancels the poll if one is running. Safe to call repeatedly.
func (c *Controller) stop() {
	c.mu.Lock()
	cancel := c.stopPoll
	c.stopPoll = nil
	c.mu.Unlock()
	if cancel != nil {
		cancel()
	}
}

// tryRecover is one poll tick. Only one tick may navigate at a time, and only
// out of OFFLINE_CACHED.
func (c *Controller) tryRecover(ctx context.Context) {
	c.mu.Lock()
	if c.navigating || c.closed || c.state != StateOfflineCached {
		c.mu.Unlock()
		return
	}
	c.navigating = true
	c.mu.Unlock()

	defer func() {
		c.mu.Lock()
		c.navigating = false
		c.mu.Unlock()
	}()

	if !c.monitor.IsReachable(ctx) {
		return
	}

	c.moveTo(ctx, StateTransitioning, NoticeNone)
	c.session.SetOffline(c.baseCtx, false)
	c.stop()
	c.moveTo(c.baseCtx, StateLogin, NoticeBackOnline)
}

// Close stops the poll and detaches from the monitor. Later calls are no-ops.
func (c *Controller) Close() {
	c.closeOnce.Do(func() {
		c.stop()
		c.unsubscribe()

		c.mu.Lock()
		c.closed = true
		c.mu.Unlock()

		c.baseCancel()
		c.wg.Wait()
	})
}

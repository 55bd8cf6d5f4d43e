// Package connectivity watches network reachability and pushes
// connected/disconnected transitions to subscribers.
package connectivity

import (
	"context"
	"sync"
	"time"

	"github.com/dmitrijs2005/arcanedex/internal/logging"
)

// Monitor is the reachability signal consumed by the availability controller.
type Monitor interface {
	// IsReachable samples reachability now.
	IsReachable(ctx context.Context) bool
	// Subscribe registers fn for transitions. The returned func unsubscribes.
	Subscribe(fn func(connected bool)) (unsubscribe func())
}

// Watcher samples a Probe on a ticker and notifies subscribers only when the
// sampled value differs from the previous one.
type Watcher struct {
	probe    Probe
	interval time.Duration
	timeout  time.Duration
	log      logging.Logger

	mu     sync.Mutex
	subs   map[int]func(bool)
	nextID int
	known  bool
	last   bool
}

func NewWatcher(probe Probe, interval time.Duration, log logging.Logger) *Watcher {
	return &Watcher{
		probe:    probe,
		interval: interval,
		timeout:  3 * time.Second,
		log:      log,
		subs:     make(map[int]func(bool)),
	}
}

func (w *Watcher) IsReachable(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, w.timeout)
	defer cancel()
	return w.probe.Reachable(ctx)
}

func (w *Watcher) Subscribe(fn func(connected bool)) func() {
	w.mu.Lock()
	id := w.nextID
	w.nextID++
	w.subs[id] = fn
	w.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			w.mu.Lock()
			delete(w.subs, id)
			w.mu.Unlock()
		})
	}
}

// Check samples the probe once and notifies on a transition. The first
// sample only sets the baseline.
func (w *Watcher) Check(ctx context.Context) {
	connected := w.IsReachable(ctx)

	w.mu.Lock()
	changed := w.known && connected != w.last
	w.known = true
	w.last = connected
	subs := make([]func(bool), 0, len(w.subs))
	if changed {
		for _, fn := range w.subs {
			subs = append(subs, fn)
		}
	}
	w.mu.Unlock()

	if !changed {
		return
	}
	w.log.Info(ctx, "connectivity changed", "connected", connected)
	for _, fn := range subs {
		fn(connected)
	}
}

// Run samples until ctx is done.
func (w *Watcher) Run(ctx context.Context) {
	w.Check(ctx)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			w.Check(ctx)
		case <-ctx.Done():
			return
		}
	}
}

package screen

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
)

var (
	// ErrNotFound is returned for screen IDs that are not mounted.
	ErrNotFound = errors.New("screen not found")
	// ErrTooManyScreens is returned by Mount when the registry is full.
	ErrTooManyScreens = errors.New("too many mounted screens")
)

// Limits bound the screens a Registry keeps. Zero values disable a limit.
type Limits struct {
	MaxScreens int
	// IdleTTL is how long a screen may go without a Get before Reap unmounts it.
	IdleTTL time.Duration
}

type entry struct {
	screen   *Screen
	lastSeen time.Time
}

// Registry tracks the mounted screens served by one process.
type Registry struct {
	ctx    context.Context
	source LaunchSource
	opts   Options
	limits Limits
	now    func() time.Time

	mu      sync.Mutex
	screens map[uuid.UUID]*entry
}

// NewRegistry creates a registry whose screens fetch from source. Pending
// fetches are cancelled when ctx ends.
func NewRegistry(ctx context.Context, source LaunchSource, opts Options, limits Limits) *Registry {
	return &Registry{
		ctx:     ctx,
		source:  source,
		opts:    opts,
		limits:  limits,
		now:     time.Now,
		screens: make(map[uuid.UUID]*entry),
	}
}

// Mount creates and mounts a new screen.
func (r *Registry) Mount() (*Screen, error) {
	r.mu.Lock()
	if r.limits.MaxScreens > 0 && len(r.screens) >= r.limits.MaxScreens {
		r.mu.Unlock()
		if r.opts.Metrics != nil {
			r.opts.Metrics.ScreensRejected.Inc()
		}
		return nil, fmt.Errorf("%w: limit %d", ErrTooManyScreens, r.limits.MaxScreens)
	}
	s := New(r.source, r.opts)
	r.screens[s.ID()] = &entry{screen: s, lastSeen: r.now()}
	r.mu.Unlock()

	s.Mount(r.ctx)
	return s, nil
}

// Get returns a mounted screen by its string ID and marks it as in use.
func (r *Registry) Get(id string) (*Screen, error) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrNotFound, id)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.screens[parsed]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, parsed)
	}
	e.lastSeen = r.now()
	return e.screen, nil
}

// Unmount discards a screen.
func (r *Registry) Unmount(id string) error {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return fmt.Errorf("%w: %q", ErrNotFound, id)
	}

	r.mu.Lock()
	e, ok := r.screens[parsed]
	delete(r.screens, parsed)
	r.mu.Unlock()
	if !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, parsed)
	}

	e.screen.Unmount()
	return nil
}

// Reap unmounts every screen idle for longer than the TTL and returns how
// many were removed.
func (r *Registry) Reap() int {
	if r.limits.IdleTTL <= 0 {
		return 0
	}
	cutoff := r.now().Add(-r.limits.IdleTTL)

	r.mu.Lock()
	var idle []*Screen
	for id, e := range r.screens {
		if e.lastSeen.Before(cutoff) {
			idle = append(idle, e.screen)
			delete(r.screens, id)
		}
	}
	r.mu.Unlock()

	for _, s := range idle {
		s.Unmount()
	}
	if len(idle) > 0 {
		if r.opts.Metrics != nil {
			r.opts.Metrics.ScreensReaped.Add(float64(len(idle)))
		}
		slog.Info("reaped idle screens", "count", len(idle), "ttl", r.limits.IdleTTL)
	}
	return len(idle)
}

// Len returns the number of mounted screens.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.screens)
}

// Close unmounts every screen.
func (r *Registry) Close() {
	r.mu.Lock()
	screens := r.screens
	r.screens = make(map[uuid.UUID]*entry)
	r.mu.Unlock()

	for _, e := range screens {
		e.screen.Unmount()
	}
}

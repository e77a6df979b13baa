package screen

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/backyonatan-alt/launchboard/internal/clock"
	"github.com/backyonatan-alt/launchboard/internal/country"
	"github.com/backyonatan-alt/launchboard/internal/metrics"
	"github.com/backyonatan-alt/launchboard/internal/model"
	"github.com/backyonatan-alt/launchboard/internal/scheduler"
)

var (
	// ErrNotMounted is returned when waiting on a screen that was never mounted.
	ErrNotMounted = errors.New("screen not mounted")
	// ErrUnmounted is returned for interactions with a discarded screen.
	ErrUnmounted = errors.New("screen unmounted")
)

// LaunchSource delivers the launch records shown on a screen.
type LaunchSource interface {
	FetchLaunches(ctx context.Context) ([]model.LaunchRecord, error)
}

// Options configure a Screen. Zero values fall back to defaults.
type Options struct {
	Countries *country.Registry
	Clock     *clock.Clock
	// FetchDelay is the pause between Mount and the launch request.
	FetchDelay time.Duration
	Metrics    *metrics.Metrics
}

// Screen is one mounted country/time/launch view.
type Screen struct {
	id        uuid.UUID
	source    LaunchSource
	countries *country.Registry
	clock     *clock.Clock
	delay     time.Duration
	metrics   *metrics.Metrics

	mountOnce sync.Once

	mu        sync.Mutex
	state     State
	task      *scheduler.Task
	unmounted bool
}

func New(source LaunchSource, opts Options) *Screen {
	if opts.Countries == nil {
		opts.Countries = country.Default()
	}
	if opts.Clock == nil {
		opts.Clock = clock.New()
	}
	return &Screen{
		id:        uuid.New(),
		source:    source,
		countries: opts.Countries,
		clock:     opts.Clock,
		delay:     opts.FetchDelay,
		metrics:   opts.Metrics,
		state:     Initial(),
	}
}

// ID returns the screen's identifier.
func (s *Screen) ID() uuid.UUID {
	return s.id
}

// Mount schedules the screen's single launch fetch. Later calls do nothing.
func (s *Screen) Mount(ctx context.Context) {
	s.mountOnce.Do(func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if s.unmounted {
			return
		}
		s.task = scheduler.After(ctx, "launches:"+s.id.String(), s.delay, s.load)
		if s.metrics != nil {
			s.metrics.IncrementMounted()
		}
		slog.Info("screen mounted", "screen", s.id, "fetch_delay", s.delay)
	})
}

func (s *Screen) load(ctx context.Context) error {
	records, err := s.source.FetchLaunches(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.unmounted {
		return nil
	}
	if err != nil {
		s.state = s.state.LaunchesFailed(err)
		return fmt.Errorf("load launches: %w", err)
	}
	s.state = s.state.LaunchesLoaded(records)
	if s.metrics != nil {
		s.metrics.LaunchesLoaded.Add(float64(len(records)))
	}
	slog.Info("screen launches loaded", "screen", s.id, "count", len(records))
	return nil
}

// Wait blocks until the launch fetch has completed and returns its error.
func (s *Screen) Wait(ctx context.Context) error {
	s.mu.Lock()
	task := s.task
	s.mu.Unlock()
	if task == nil {
		return ErrNotMounted
	}
	return task.Wait(ctx)
}

// ToggleDropdown handles a press of the location button.
func (s *Screen) ToggleDropdown() (State, error) {
	return s.apply(State.ToggleDropdown)
}

// DismissDropdown closes the dropdown without a selection.
func (s *Screen) DismissDropdown() (State, error) {
	return s.apply(State.DismissDropdown)
}

// SelectCountry updates the time label for the named country and closes the
// dropdown.
func (s *Screen) SelectCountry(name string) (State, error) {
	c, err := s.countries.Lookup(name)
	if err != nil {
		return s.State(), err
	}
	label := s.clock.CurrentTimeAt(c)
	st, err := s.apply(func(st State) State { return st.SelectCountry(label) })
	if err == nil && s.metrics != nil {
		s.metrics.IncrementSelection(c.Name)
	}
	return st, err
}

func (s *Screen) apply(transition func(State) State) (State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.unmounted {
		return s.state, ErrUnmounted
	}
	s.state = transition(s.state)
	return s.state, nil
}

// State returns a snapshot of the current view state.
func (s *Screen) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// View renders the current state.
func (s *Screen) View() View {
	return Render(s.id.String(), s.State(), s.countries.List())
}

// Unmount cancels a pending fetch and discards the launch list.
func (s *Screen) Unmount() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.unmounted {
		return
	}
	s.unmounted = true
	if s.task != nil {
		s.task.Stop()
		if s.metrics != nil {
			s.metrics.DecrementActive()
		}
	}
	s.state.Launches = nil
	slog.Info("screen unmounted", "screen", s.id)
}

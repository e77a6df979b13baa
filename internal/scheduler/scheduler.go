package scheduler

import (
	"context"
	"log/slog"
	"time"
)

// Task is a single delayed run of a function. It never repeats.
type Task struct {
	name   string
	delay  time.Duration
	cancel context.CancelFunc
	done   chan struct{}
	err    error
}

// After starts fn once, delay after the call, on its own goroutine.
// Cancelling ctx before the delay elapses skips the run.
func After(ctx context.Context, name string, delay time.Duration, fn func(context.Context) error) *Task {
	ctx, cancel := context.WithCancel(ctx)
	t := &Task{
		name:   name,
		delay:  delay,
		cancel: cancel,
		done:   make(chan struct{}),
	}
	go t.run(ctx, fn)
	return t
}

func (t *Task) run(ctx context.Context, fn func(context.Context) error) {
	defer close(t.done)
	defer t.cancel()

	timer := time.NewTimer(t.delay)
	defer timer.Stop()

	slog.Debug("task scheduled", "task", t.name, "delay", t.delay)

	select {
	case <-timer.C:
	case <-ctx.Done():
		t.err = ctx.Err()
		slog.Info("task cancelled before start", "task", t.name)
		return
	}

	slog.Debug("task starting", "task", t.name)
	if err := fn(ctx); err != nil {
		t.err = err
		slog.Error("task failed", "task", t.name, "error", err)
		return
	}
	slog.Debug("task finished", "task", t.name)
}

// Done is closed once the task has run or was cancelled.
func (t *Task) Done() <-chan struct{} {
	return t.done
}

// Err returns the task's failure. It is only meaningful after Done is closed.
func (t *Task) Err() error {
	select {
	case <-t.done:
		return t.err
	default:
		return nil
	}
}

// Wait blocks until the task completes or ctx ends.
func (t *Task) Wait(ctx context.Context) error {
	select {
	case <-t.done:
		return t.err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Stop cancels the task. A task already running sees its context cancelled.
func (t *Task) Stop() {
	t.cancel()
}

// Every runs fn on a fixed interval. Blocks until ctx is done.
func Every(ctx context.Context, name string, interval time.Duration, fn func(context.Context)) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	slog.Info("scheduler started", "task", name, "interval", interval)

	for {
		select {
		case <-ticker.C:
			fn(ctx)
		case <-ctx.Done():
			slog.Info("scheduler stopped", "task", name)
			return
		}
	}
}

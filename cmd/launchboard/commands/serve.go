package commands

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/backyonatan-alt/launchboard/internal/clock"
	"github.com/backyonatan-alt/launchboard/internal/country"
	"github.com/backyonatan-alt/launchboard/internal/fetcher"
	"github.com/backyonatan-alt/launchboard/internal/metrics"
	"github.com/backyonatan-alt/launchboard/internal/scheduler"
	"github.com/backyonatan-alt/launchboard/internal/screen"
	"github.com/backyonatan-alt/launchboard/internal/server"
)

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server hosting launch screens",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(cmd.Context())
		},
	}
}

func serve(parent context.Context) error {
	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(reg)

	countries := country.Default()
	clk := clock.New()
	f := fetcher.New(cfg, m)

	screens := screen.NewRegistry(ctx, f, screen.Options{
		Countries:  countries,
		Clock:      clk,
		FetchDelay: cfg.FetchDelay,
		Metrics:    m,
	}, screen.Limits{
		MaxScreens: cfg.MaxScreens,
		IdleTTL:    cfg.ScreenIdleTTL,
	})
	defer screens.Close()

	srv := server.New(cfg, screens, countries, clk, reg)
	httpServer := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      srv.Router(),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		slog.Info("server starting", "port", cfg.Port, "launch_api", f.URL())
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		scheduler.Every(gctx, "screen-reaper", reapInterval(cfg.ScreenIdleTTL), func(context.Context) {
			screens.Reap()
		})
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		slog.Info("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			slog.Error("server shutdown error", "error", err)
			return err
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		slog.Error("server error", "error", err)
		return err
	}
	slog.Info("shutdown complete")
	return nil
}

// reapInterval checks for idle screens a few times per TTL.
func reapInterval(ttl time.Duration) time.Duration {
	interval := ttl / 4
	if interval < time.Second {
		return time.Second
	}
	if interval > time.Minute {
		return time.Minute
	}
	return interval
}

package commands

import (
	"fmt"
	"io"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/backyonatan-alt/launchboard/internal/fetcher"
	"github.com/backyonatan-alt/launchboard/internal/metrics"
	"github.com/backyonatan-alt/launchboard/internal/screen"
)

func launchesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "launches",
		Short: "Fetch the launch feed through a screen and print its cards",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			f := fetcher.New(cfg, metrics.New(prometheus.NewRegistry()))
			scr := screen.New(f, screen.Options{FetchDelay: cfg.FetchDelay})
			scr.Mount(ctx)
			defer scr.Unmount()

			if err := scr.Wait(ctx); err != nil {
				return err
			}
			printView(cmd.OutOrStdout(), scr.View())
			return nil
		},
	}
}

func printView(w io.Writer, v screen.View) {
	fmt.Fprintln(w, v.TimeLabel)
	fmt.Fprintln(w)
	for _, c := range v.Cards {
		fmt.Fprintln(w, c.MissionName)
		fmt.Fprintln(w, c.LaunchYear)
		fmt.Fprintln(w, c.Details)
		fmt.Fprintln(w, c.Outcome)
		fmt.Fprintln(w)
	}
}


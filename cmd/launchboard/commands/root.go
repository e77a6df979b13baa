package commands

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/backyonatan-alt/launchboard/internal/config"
)

var cfg *config.Config

func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "launchboard",
		Short:         "Country clocks and rocket launch screens",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			loaded, err := config.Load()
			if err != nil {
				slog.Error("failed to load config", "error", err)
				return err
			}
			cfg = loaded
			slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel(cfg.LogLevel)})))
			return nil
		},
	}

	root.AddCommand(serveCmd(), countriesCmd(), timeCmd(), launchesCmd())
	return root
}

func logLevel(s string) slog.Level {
	switch s {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

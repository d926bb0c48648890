package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/fr0stylo/ghevents/internal/config"
	"github.com/fr0stylo/ghevents/internal/observability"
)

type rootOptions struct {
	dbPath string
}

// NewRootCommand builds the ghevents command tree.
func NewRootCommand() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:          "ghevents",
		Short:        "GitHub webhook receiver that records push, pull request and merge events",
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			if err := godotenv.Load(); err != nil {
				slog.Debug("No .env file loaded", "error", err)
			}
		},
	}
	cmd.PersistentFlags().StringVar(&opts.dbPath, "db", "", "SQLite database path (overrides GHEVENTS_DB_PATH)")

	cmd.AddCommand(
		newServeCommand(opts),
		newEventsCommand(opts),
		newStatsCommand(opts),
		newSendCommand(),
	)
	return cmd
}

// Execute runs the root command with ctx.
func Execute(ctx context.Context) error {
	return NewRootCommand().ExecuteContext(ctx)
}

func (o *rootOptions) loadConfig() (config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return config.Config{}, fmt.Errorf("failed to load configuration: %w", err)
	}
	if o != nil && o.dbPath != "" {
		cfg.Database.Path = o.dbPath
	}
	return cfg, nil
}

func newLogger(w io.Writer, cfg config.LoggingConfig) *slog.Logger {
	handlerOpts := &slog.HandlerOptions{Level: cfg.Level}
	var base slog.Handler
	if cfg.Format == "json" {
		base = slog.NewJSONHandler(w, handlerOpts)
	} else {
		base = slog.NewTextHandler(w, handlerOpts)
	}
	return slog.New(observability.WrapSlogHandler(base))
}

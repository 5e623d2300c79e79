package commands

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"tableflip.dev/noter/pkg/app"
	"tableflip.dev/noter/pkg/store"
)

type sessionOptions struct {
	Verbose   bool
	Ephemeral bool
}

func addSessionArgs(cmd *cobra.Command, o *sessionOptions) {
	cmd.PersistentFlags().BoolVarP(&o.Verbose, "verbose", "v", false,
		"Log debug output to stderr.")
	cmd.PersistentFlags().BoolVar(&o.Ephemeral, "ephemeral", false,
		"Keep everything in memory; nothing is read from or written to disk.")
}

// openSession loads the config, the store and a logger, and opens the app
// service shared by every command.
func openSession() (*app.Service, error) {
	cfg, err := store.LoadConfig()
	if err != nil {
		return nil, err
	}

	level := cfg.Level()
	if global.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	var p store.Persistence
	if global.Ephemeral {
		p = store.NewMemory()
	} else if p, err = store.Load(cfg); err != nil {
		return nil, err
	}
	logger.Debug("session opened", "path", cfg.BasePath(), "ephemeral", global.Ephemeral)
	return app.Open(p, cfg, app.WithLogger(logger))
}

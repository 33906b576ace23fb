// Package commands implements the leapview subcommands.
package commands

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/leapview/internal/cli/output"
	"github.com/leapstack-labs/leapview/internal/config"
	"github.com/leapstack-labs/leapview/internal/engine"
	"github.com/leapstack-labs/leapview/internal/state"
)

// CommandContext bundles everything a command needs at run time.
type CommandContext struct {
	Config *config.Config
	Logger *slog.Logger
	Store  *state.SQLiteStore
	Engine *engine.Engine
	Styles *output.Styles
}

// NewCommandContext resolves configuration from flags, builds the
// logger, opens the state store, and constructs the engine. The returned
// cleanup function closes the store.
func NewCommandContext(cmd *cobra.Command) (*CommandContext, func(), error) {
	// cmd.Flags() carries the command's own flags plus the inherited
	// persistent ones after parsing.
	flags := cmd.Flags()
	cfgFile, _ := flags.GetString("config")

	cfg, err := config.Load(cfgFile, flags)
	if err != nil {
		return nil, nil, err
	}

	level := slog.LevelInfo
	if cfg.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))

	store := state.NewSQLiteStore()
	if err := store.Open(cfg.StatePath); err != nil {
		return nil, nil, fmt.Errorf("opening state store: %w", err)
	}
	if err := store.Migrate(); err != nil {
		store.Close()
		return nil, nil, fmt.Errorf("migrating state store: %w", err)
	}

	eng, err := engine.New(engine.Options{Config: cfg, Store: store, Logger: logger})
	if err != nil {
		store.Close()
		return nil, nil, err
	}

	cleanup := func() { _ = store.Close() }
	return &CommandContext{
		Config: cfg,
		Logger: logger,
		Store:  store,
		Engine: eng,
		Styles: output.NewStyles(),
	}, cleanup, nil
}

// fileExists reports whether path exists.
func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

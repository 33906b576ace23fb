// Package engine orchestrates project builds: it discovers compilation
// units, compiles them in parallel, writes scenario documents to the
// output directory, and records results in the state store.
package engine

import (
	"fmt"
	"log/slog"

	"github.com/leapstack-labs/leapview/internal/config"
	"github.com/leapstack-labs/leapview/internal/state"
	"github.com/leapstack-labs/leapview/pkg/catalogue"
	"github.com/leapstack-labs/leapview/pkg/compiler"
)

// Engine drives compilation for one project.
type Engine struct {
	cfg      *config.Config
	store    *state.SQLiteStore
	registry *compiler.Registry
	logger   *slog.Logger
}

// Options configures a new Engine.
type Options struct {
	Config *config.Config
	// Store is optional; without it results are not persisted.
	Store  *state.SQLiteStore
	Logger *slog.Logger
}

// New creates an engine, loading the component catalogue configured for
// the project.
func New(opts Options) (*Engine, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	components, err := catalogue.Load(opts.Config.Catalogue)
	if err != nil {
		return nil, fmt.Errorf("loading component catalogue: %w", err)
	}

	return &Engine{
		cfg:      opts.Config,
		store:    opts.Store,
		registry: compiler.NewRegistry(components),
		logger:   logger,
	}, nil
}

// Registry exposes the engine's base component registry.
func (e *Engine) Registry() *compiler.Registry {
	return e.registry
}

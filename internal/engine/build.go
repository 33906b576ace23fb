package engine

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/leapstack-labs/leapview/internal/state"
	"github.com/leapstack-labs/leapview/pkg/compiler"
	"github.com/leapstack-labs/leapview/pkg/scenario"
)

// BuildOptions configures one build run.
type BuildOptions struct {
	// Write controls whether compiled documents are written to the
	// output directory and recorded in the state store. Validation runs
	// set it to false.
	Write bool
}

// UnitResult is the outcome of compiling one unit.
type UnitResult struct {
	Path       string
	Key        string
	OutputPath string
	Warnings   []string
	Duration   time.Duration
	Err        error

	meta compiler.Metadata
}

// BuildResult aggregates one build run.
type BuildResult struct {
	Units    []UnitResult
	Duration time.Duration
}

// Failed returns the number of units that failed to compile.
func (r *BuildResult) Failed() int {
	n := 0
	for _, u := range r.Units {
		if u.Err != nil {
			n++
		}
	}
	return n
}

// Succeeded returns the number of units that compiled cleanly.
func (r *BuildResult) Succeeded() int {
	return len(r.Units) - r.Failed()
}

// Summary returns a one-line human-readable summary.
func (r *BuildResult) Summary() string {
	return fmt.Sprintf("%d compiled, %d failed in %s",
		r.Succeeded(), r.Failed(), r.Duration.Round(time.Millisecond))
}

// Build discovers every unit under the source directory and compiles it.
func (e *Engine) Build(ctx context.Context, opts BuildOptions) (*BuildResult, error) {
	units, err := e.DiscoverUnits()
	if err != nil {
		return nil, err
	}
	return e.BuildPaths(ctx, units, opts)
}

// BuildPaths compiles the given units in parallel. Per-unit failures are
// recorded in the result, not returned; the error return covers
// infrastructure failures only.
func (e *Engine) BuildPaths(ctx context.Context, paths []string, opts BuildOptions) (*BuildResult, error) {
	start := time.Now()
	result := &BuildResult{Units: make([]UnitResult, len(paths))}

	if opts.Write && len(paths) > 0 {
		if err := os.MkdirAll(e.cfg.OutDir, 0o755); err != nil {
			return nil, fmt.Errorf("creating output directory: %w", err)
		}
	}

	eg, egctx := errgroup.WithContext(ctx)
	eg.SetLimit(runtime.NumCPU())
	for i, path := range paths {
		eg.Go(func() error {
			result.Units[i] = e.buildUnit(egctx, path, opts)
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	// State writes happen sequentially after the parallel phase; the
	// store serializes on one connection anyway.
	if opts.Write && e.store != nil {
		for _, u := range result.Units {
			if u.Err != nil {
				continue
			}
			if err := e.recordUnit(u); err != nil {
				e.logger.Error("failed to record scenario", "key", u.Key, "error", err)
			}
		}
	}

	result.Duration = time.Since(start)
	e.logger.Info("build completed",
		"units", len(result.Units),
		"failed", result.Failed(),
		"duration_ms", result.Duration.Milliseconds())
	return result, nil
}

// buildUnit compiles one unit and, when requested, writes its document.
func (e *Engine) buildUnit(ctx context.Context, path string, opts BuildOptions) UnitResult {
	start := time.Now()
	out := UnitResult{Path: path}

	if err := ctx.Err(); err != nil {
		out.Err = err
		return out
	}

	src, err := os.ReadFile(path)
	if err != nil {
		out.Err = scenario.NewIOError("read unit", err)
		return out
	}

	collector := newWarningCollector(e.logger.Handler())
	comp := compiler.New(compiler.Config{
		Registry: e.registry,
		Logger:   slog.New(collector).With("unit", path),
	})

	res, err := comp.CompileSource(string(src), path)
	out.Warnings = collector.Warnings()
	out.Duration = time.Since(start)
	if err != nil {
		out.Err = err
		return out
	}
	out.Key = res.Scenario.Key
	out.meta = res.Metadata

	if opts.Write {
		doc, err := res.Scenario.MarshalIndent()
		if err != nil {
			out.Err = scenario.NewIOError("marshal scenario", err)
			return out
		}
		outputPath := filepath.Join(e.cfg.OutDir, res.Scenario.Key+".json")
		if err := os.WriteFile(outputPath, append(doc, '\n'), 0o644); err != nil {
			out.Err = scenario.NewIOError("write scenario", err)
			return out
		}
		out.OutputPath = outputPath
	}

	return out
}

// recordUnit persists one successful unit result.
func (e *Engine) recordUnit(u UnitResult) error {
	return e.store.RecordScenario(&state.ScenarioRecord{
		Key:         u.Key,
		Name:        u.meta.Name,
		Description: u.meta.Description,
		Version:     scenario.SchemaVersion,
		SourcePath:  u.Path,
		OutputPath:  u.OutputPath,
		CompiledAt:  time.Now().UTC(),
		Duration:    u.Duration,
	}, u.Warnings)
}

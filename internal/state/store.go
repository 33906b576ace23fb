// Package state records compilation results in a SQLite database so the
// CLI can list and serve previously compiled scenarios without
// recompiling.
package state

import "time"

// ScenarioRecord is one compiled scenario as persisted.
type ScenarioRecord struct {
	Key         string
	Name        string
	Description string
	Version     string
	SourcePath  string
	OutputPath  string
	CompiledAt  time.Time
	Duration    time.Duration
}

// WarningRecord is one non-fatal diagnostic emitted during compilation.
type WarningRecord struct {
	ScenarioKey string
	Message     string
	CreatedAt   time.Time
}

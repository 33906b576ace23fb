package state

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// SQLiteStore persists scenario records in a SQLite database.
type SQLiteStore struct {
	db   *sql.DB
	path string
}

// NewSQLiteStore creates an unopened store.
func NewSQLiteStore() *SQLiteStore {
	return &SQLiteStore{}
}

// Open opens the database at path, creating parent directories as
// needed. Use ":memory:" for an in-memory database.
func (s *SQLiteStore) Open(path string) error {
	dsn := path
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return fmt.Errorf("failed to create state directory: %w", err)
		}
		dsn = fmt.Sprintf("file:%s?_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)", path)
	} else {
		dsn = ":memory:?_pragma=foreign_keys(1)"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return fmt.Errorf("failed to open sqlite database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return fmt.Errorf("failed to ping sqlite database: %w", err)
	}

	s.db = db
	s.path = path
	return nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// RecordScenario upserts a compiled scenario and replaces its warnings.
func (s *SQLiteStore) RecordScenario(rec *ScenarioRecord, warnings []string) error {
	if s.db == nil {
		return fmt.Errorf("database not opened")
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(
		`INSERT INTO scenarios (key, name, description, version, source_path, output_path, compiled_at, duration_ms)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET
		   name = excluded.name,
		   description = excluded.description,
		   version = excluded.version,
		   source_path = excluded.source_path,
		   output_path = excluded.output_path,
		   compiled_at = excluded.compiled_at,
		   duration_ms = excluded.duration_ms`,
		rec.Key, rec.Name, rec.Description, rec.Version,
		rec.SourcePath, rec.OutputPath, rec.CompiledAt.UTC(), rec.Duration.Milliseconds(),
	)
	if err != nil {
		return fmt.Errorf("failed to record scenario: %w", err)
	}

	if _, err := tx.Exec(`DELETE FROM warnings WHERE scenario_key = ?`, rec.Key); err != nil {
		return fmt.Errorf("failed to clear warnings: %w", err)
	}
	now := time.Now().UTC()
	for _, msg := range warnings {
		if _, err := tx.Exec(
			`INSERT INTO warnings (scenario_key, message, created_at) VALUES (?, ?, ?)`,
			rec.Key, msg, now,
		); err != nil {
			return fmt.Errorf("failed to record warning: %w", err)
		}
	}

	return tx.Commit()
}

// GetScenario retrieves one scenario record by key.
func (s *SQLiteStore) GetScenario(key string) (*ScenarioRecord, error) {
	if s.db == nil {
		return nil, fmt.Errorf("database not opened")
	}

	rec := &ScenarioRecord{}
	var durationMs int64
	err := s.db.QueryRow(
		`SELECT key, name, description, version, source_path, output_path, compiled_at, duration_ms
		 FROM scenarios WHERE key = ?`, key,
	).Scan(&rec.Key, &rec.Name, &rec.Description, &rec.Version,
		&rec.SourcePath, &rec.OutputPath, &rec.CompiledAt, &durationMs)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("scenario not found: %s", key)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get scenario: %w", err)
	}
	rec.Duration = time.Duration(durationMs) * time.Millisecond
	return rec, nil
}

// ListScenarios returns all scenario records ordered by key.
func (s *SQLiteStore) ListScenarios() ([]*ScenarioRecord, error) {
	if s.db == nil {
		return nil, fmt.Errorf("database not opened")
	}

	rows, err := s.db.Query(
		`SELECT key, name, description, version, source_path, output_path, compiled_at, duration_ms
		 FROM scenarios ORDER BY key`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list scenarios: %w", err)
	}
	defer rows.Close()

	var out []*ScenarioRecord
	for rows.Next() {
		rec := &ScenarioRecord{}
		var durationMs int64
		if err := rows.Scan(&rec.Key, &rec.Name, &rec.Description, &rec.Version,
			&rec.SourcePath, &rec.OutputPath, &rec.CompiledAt, &durationMs); err != nil {
			return nil, fmt.Errorf("failed to scan scenario: %w", err)
		}
		rec.Duration = time.Duration(durationMs) * time.Millisecond
		out = append(out, rec)
	}
	return out, rows.Err()
}

// DeleteScenario removes a scenario and its warnings.
func (s *SQLiteStore) DeleteScenario(key string) error {
	if s.db == nil {
		return fmt.Errorf("database not opened")
	}
	if _, err := s.db.Exec(`DELETE FROM scenarios WHERE key = ?`, key); err != nil {
		return fmt.Errorf("failed to delete scenario: %w", err)
	}
	return nil
}

// ListWarnings returns the warnings recorded for a scenario.
func (s *SQLiteStore) ListWarnings(key string) ([]*WarningRecord, error) {
	if s.db == nil {
		return nil, fmt.Errorf("database not opened")
	}

	rows, err := s.db.Query(
		`SELECT scenario_key, message, created_at FROM warnings WHERE scenario_key = ? ORDER BY id`, key,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list warnings: %w", err)
	}
	defer rows.Close()

	var out []*WarningRecord
	for rows.Next() {
		w := &WarningRecord{}
		if err := rows.Scan(&w.ScenarioKey, &w.Message, &w.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan warning: %w", err)
		}
		out = append(out, w)
	}
	return out, rows.Err()
}

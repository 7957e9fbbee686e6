package migration

import (
	"context"

	"pbihub/internal/errors"

	"github.com/jmoiron/sqlx"
)

// Migrator defines the interface for database migration operations
type Migrator interface {
	Run(ctx context.Context, db *sqlx.DB) error
	Version() string
}

// MigrationRunner creates the record store schema. The DDL sticks to types both
// sqlite3 and postgres accept so one runner serves either driver.
type MigrationRunner struct {
	version string
}

// NewRunner creates a new migration runner
func NewRunner() *MigrationRunner {
	return &MigrationRunner{
		version: "1.0.0",
	}
}

// Version returns the migration version
func (r *MigrationRunner) Version() string {
	return r.version
}

// Run executes all database migrations in the correct order
func (r *MigrationRunner) Run(ctx context.Context, db *sqlx.DB) error {
	steps := []struct {
		name string
		ddl  string
	}{
		{"learners table", `
			CREATE TABLE IF NOT EXISTS learners (
				id TEXT PRIMARY KEY,
				username VARCHAR(100) NOT NULL,
				accent VARCHAR(20) NOT NULL,
				created_at TIMESTAMP NOT NULL
			)`},
		{"quiz_results table", `
			CREATE TABLE IF NOT EXISTS quiz_results (
				id TEXT PRIMARY KEY,
				learner_id TEXT NOT NULL REFERENCES learners(id) ON DELETE CASCADE,
				quiz_key VARCHAR(50) NOT NULL,
				score INTEGER NOT NULL,
				total INTEGER NOT NULL,
				percentage DOUBLE PRECISION NOT NULL,
				passed BOOLEAN NOT NULL,
				threshold DOUBLE PRECISION NOT NULL,
				taken_at TIMESTAMP NOT NULL
			)`},
		{"notes table", `
			CREATE TABLE IF NOT EXISTS notes (
				id TEXT PRIMARY KEY,
				learner_id TEXT NOT NULL REFERENCES learners(id) ON DELETE CASCADE,
				tab VARCHAR(50) NOT NULL,
				body TEXT NOT NULL,
				created_at TIMESTAMP NOT NULL
			)`},
		{"session_state table", `
			CREATE TABLE IF NOT EXISTS session_state (
				learner_id TEXT PRIMARY KEY REFERENCES learners(id) ON DELETE CASCADE,
				state TEXT NOT NULL,
				updated_at TIMESTAMP NOT NULL
			)`},
		{"quiz_results index", `CREATE INDEX IF NOT EXISTS idx_quiz_results_learner ON quiz_results(learner_id, taken_at)`},
		{"notes index", `CREATE INDEX IF NOT EXISTS idx_notes_learner ON notes(learner_id, created_at)`},
	}

	for _, step := range steps {
		if _, err := db.ExecContext(ctx, step.ddl); err != nil {
			return errors.Wrapf(err, "failed to create %s", step.name)
		}
	}
	return nil
}

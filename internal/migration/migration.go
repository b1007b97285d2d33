package migration

import (
	"context"

	"dqlens/internal/errors"

	"github.com/jmoiron/sqlx"
)

// MigrationRunner handles database schema migrations
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
	if err := r.createAnalysesTable(ctx, db); err != nil {
		return errors.Wrap(err, "failed to create analyses table")
	}

	if err := r.createCategoryScoresTable(ctx, db); err != nil {
		return errors.Wrap(err, "failed to create category_scores table")
	}

	if err := r.createIndexes(ctx, db); err != nil {
		return errors.Wrap(err, "failed to create indexes")
	}

	return nil
}

func (r *MigrationRunner) createAnalysesTable(ctx context.Context, db *sqlx.DB) error {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS analyses (
			id UUID PRIMARY KEY,
			created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
			dataset_name VARCHAR(255) NOT NULL,
			row_count INTEGER NOT NULL,
			column_count INTEGER NOT NULL,
			global_score DECIMAL(5,2) NOT NULL,
			fingerprint VARCHAR(64) NOT NULL,
			report JSONB NOT NULL
		)
	`)
	return err
}

func (r *MigrationRunner) createCategoryScoresTable(ctx context.Context, db *sqlx.DB) error {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS category_scores (
			analysis_id UUID NOT NULL REFERENCES analyses(id) ON DELETE CASCADE,
			category VARCHAR(50) NOT NULL,
			score DECIMAL(5,2) NOT NULL,
			PRIMARY KEY (analysis_id, category)
		)
	`)
	return err
}

func (r *MigrationRunner) createIndexes(ctx context.Context, db *sqlx.DB) error {
	_, err := db.ExecContext(ctx, `
		CREATE INDEX IF NOT EXISTS idx_analyses_dataset_name ON analyses(dataset_name, created_at DESC);
		CREATE INDEX IF NOT EXISTS idx_analyses_created_at ON analyses(created_at DESC);
	`)
	return err
}

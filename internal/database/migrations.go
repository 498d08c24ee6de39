package database

import (
	"database/sql"
	"fmt"
)

// Schema creates the run history tables
const Schema = `
	CREATE TABLE IF NOT EXISTS runs (
		id UUID PRIMARY KEY,
		scenario VARCHAR(255) NOT NULL,
		status VARCHAR(50) NOT NULL,
		evidence_path TEXT,
		log_path TEXT,
		error TEXT,
		started_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		finished_at TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_runs_scenario ON runs(scenario);
	CREATE INDEX IF NOT EXISTS idx_runs_started_at ON runs(started_at DESC);
	`

// RunMigrations creates the necessary database tables
func RunMigrations() error {
	if DB == nil {
		return fmt.Errorf("database connection not initialized")
	}
	return Migrate(DB)
}

// Migrate applies Schema on db
func Migrate(db *sql.DB) error {
	if _, err := db.Exec(Schema); err != nil {
		return fmt.Errorf("failed to create runs table: %w", err)
	}
	return nil
}

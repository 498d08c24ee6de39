package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/casadoconstrutor/storefront-acceptance/internal/database"
	"github.com/casadoconstrutor/storefront-acceptance/internal/models"
)

// ErrRunNotFound is returned when no run matches the given ID
var ErrRunNotFound = errors.New("run not found")

// RunRepository handles database operations for scenario runs
type RunRepository struct {
	db *sql.DB
}

// NewRunRepository creates a new run repository on the shared connection
func NewRunRepository() *RunRepository {
	return &RunRepository{
		db: database.DB,
	}
}

// NewRunRepositoryWithDB creates a new run repository with a specific database connection
func NewRunRepositoryWithDB(db *sql.DB) *RunRepository {
	return &RunRepository{
		db: db,
	}
}

// CreateRun inserts a new run
func (r *RunRepository) CreateRun(run *models.Run) error {
	query := `
		INSERT INTO runs (id, scenario, status, evidence_path, log_path, error, started_at, finished_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.db.Exec(query,
		run.ID,
		run.Scenario,
		run.Status,
		nullString(run.EvidencePath),
		nullString(run.LogPath),
		nullString(run.Error),
		run.StartedAt,
		nullTime(run),
	)
	if err != nil {
		return fmt.Errorf("failed to create run: %w", err)
	}

	return nil
}

// GetRun retrieves a run by its ID
func (r *RunRepository) GetRun(id string) (*models.Run, error) {
	query := `
		SELECT id, scenario, status, COALESCE(evidence_path, ''), COALESCE(log_path, ''),
		       COALESCE(error, ''), started_at, finished_at
		FROM runs
		WHERE id = $1
	`

	run, err := scanRun(r.db.QueryRow(query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrRunNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get run: %w", err)
	}

	return run, nil
}

// UpdateRun stores the outcome of a finished run
func (r *RunRepository) UpdateRun(run *models.Run) error {
	query := `
		UPDATE runs
		SET status = $1, evidence_path = $2, log_path = $3, error = $4, finished_at = $5
		WHERE id = $6
	`

	result, err := r.db.Exec(query,
		run.Status,
		nullString(run.EvidencePath),
		nullString(run.LogPath),
		nullString(run.Error),
		nullTime(run),
		run.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update run: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return ErrRunNotFound
	}

	return nil
}

// ListRecentRuns returns up to limit runs, newest first
func (r *RunRepository) ListRecentRuns(limit int) ([]*models.Run, error) {
	query := `
		SELECT id, scenario, status, COALESCE(evidence_path, ''), COALESCE(log_path, ''),
		       COALESCE(error, ''), started_at, finished_at
		FROM runs
		ORDER BY started_at DESC
		LIMIT $1
	`

	rows, err := r.db.Query(query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	var runs []*models.Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}

	return runs, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(row scanner) (*models.Run, error) {
	run := &models.Run{}
	var finishedAt sql.NullTime
	err := row.Scan(
		&run.ID,
		&run.Scenario,
		&run.Status,
		&run.EvidencePath,
		&run.LogPath,
		&run.Error,
		&run.StartedAt,
		&finishedAt,
	)
	if err != nil {
		return nil, err
	}
	if finishedAt.Valid {
		run.FinishedAt = finishedAt.Time
	}
	return run, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func nullTime(run *models.Run) sql.NullTime {
	return sql.NullTime{Time: run.FinishedAt, Valid: !run.FinishedAt.IsZero()}
}

package models

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// RunStatus represents valid scenario run states
type RunStatus string

// Run statuses
const (
	RunStatusRunning RunStatus = "running"
	RunStatusPassed  RunStatus = "passed"
	RunStatusFailed  RunStatus = "failed"
)

// Run is one execution of a scenario
type Run struct {
	ID           string
	Scenario     string
	Status       RunStatus
	EvidencePath string
	LogPath      string
	Error        string
	StartedAt    time.Time
	FinishedAt   time.Time
}

// Domain errors
var (
	ErrInvalidScenario         = errors.New("scenario name cannot be empty")
	ErrMissingEvidence         = errors.New("a passed run requires an evidence path")
	ErrInvalidStatusTransition = errors.New("invalid run status transition")
)

// NewRun starts a run of scenario
func NewRun(scenario string) (*Run, error) {
	if scenario == "" {
		return nil, ErrInvalidScenario
	}

	return &Run{
		ID:        uuid.New().String(),
		Scenario:  scenario,
		Status:    RunStatusRunning,
		StartedAt: time.Now(),
	}, nil
}

// Pass marks the run as passed with its evidence and log file
func (r *Run) Pass(evidencePath, logPath string) error {
	if r.Status != RunStatusRunning {
		return fmt.Errorf("%w: cannot pass run with status %s", ErrInvalidStatusTransition, r.Status)
	}
	if evidencePath == "" {
		return ErrMissingEvidence
	}

	r.Status = RunStatusPassed
	r.EvidencePath = evidencePath
	r.LogPath = logPath
	r.FinishedAt = time.Now()
	return nil
}

// Fail marks the run as failed with the cause
func (r *Run) Fail(cause error) error {
	if r.Status != RunStatusRunning {
		return fmt.Errorf("%w: cannot fail run with status %s", ErrInvalidStatusTransition, r.Status)
	}

	r.Status = RunStatusFailed
	if cause != nil {
		r.Error = cause.Error()
	}
	r.FinishedAt = time.Now()
	return nil
}

// IsRunning returns true while the scenario is executing
func (r *Run) IsRunning() bool {
	return r.Status == RunStatusRunning
}

// IsPassed returns true if every step and the evidence capture succeeded
func (r *Run) IsPassed() bool {
	return r.Status == RunStatusPassed
}

// IsFailed returns true if the run stopped on an error
func (r *Run) IsFailed() bool {
	return r.Status == RunStatusFailed
}

// Duration returns how long the run took, zero while running
func (r *Run) Duration() time.Duration {
	if r.FinishedAt.IsZero() {
		return 0
	}
	return r.FinishedAt.Sub(r.StartedAt)
}

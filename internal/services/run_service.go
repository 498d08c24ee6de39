package services

import (
	"fmt"

	"github.com/casadoconstrutor/storefront-acceptance/internal/models"
)

// RunRepository defines the interface for run persistence
type RunRepository interface {
	CreateRun(run *models.Run) error
	GetRun(id string) (*models.Run, error)
	UpdateRun(run *models.Run) error
	ListRecentRuns(limit int) ([]*models.Run, error)
}

// RunService records the lifecycle of scenario runs
type RunService interface {
	Start(scenario string) (*models.Run, error)
	Pass(run *models.Run, evidencePath, logPath string) error
	Fail(run *models.Run, cause error) error
	Recent(limit int) ([]*models.Run, error)
}

// RunServiceImpl implements RunService
type RunServiceImpl struct {
	runRepo RunRepository
}

// NewRunService creates a new run service
func NewRunService(runRepo RunRepository) RunService {
	return &RunServiceImpl{
		runRepo: runRepo,
	}
}

// Start creates and persists a running run of scenario
func (s *RunServiceImpl) Start(scenario string) (*models.Run, error) {
	run, err := models.NewRun(scenario)
	if err != nil {
		return nil, fmt.Errorf("invalid run: %w", err)
	}

	if err := s.runRepo.CreateRun(run); err != nil {
		return nil, fmt.Errorf("failed to record run start: %w", err)
	}

	return run, nil
}

// Pass marks run as passed and persists it
func (s *RunServiceImpl) Pass(run *models.Run, evidencePath, logPath string) error {
	if err := run.Pass(evidencePath, logPath); err != nil {
		return err
	}
	if err := s.runRepo.UpdateRun(run); err != nil {
		return fmt.Errorf("failed to record run result: %w", err)
	}
	return nil
}

// Fail marks run as failed and persists it
func (s *RunServiceImpl) Fail(run *models.Run, cause error) error {
	if err := run.Fail(cause); err != nil {
		return err
	}
	if err := s.runRepo.UpdateRun(run); err != nil {
		return fmt.Errorf("failed to record run result: %w", err)
	}
	return nil
}

// Recent returns the newest runs
func (s *RunServiceImpl) Recent(limit int) ([]*models.Run, error) {
	if limit <= 0 {
		limit = 50
	}
	runs, err := s.runRepo.ListRecentRuns(limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	return runs, nil
}

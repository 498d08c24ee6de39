package services

import (
	"errors"
	"testing"

	"github.com/casadoconstrutor/storefront-acceptance/internal/models"
)

// MockRunRepository is a mock implementation of RunRepository for testing
type MockRunRepository struct {
	CreateRunFunc      func(*models.Run) error
	GetRunFunc         func(string) (*models.Run, error)
	UpdateRunFunc      func(*models.Run) error
	ListRecentRunsFunc func(int) ([]*models.Run, error)
}

func (m *MockRunRepository) CreateRun(run *models.Run) error {
	if m.CreateRunFunc != nil {
		return m.CreateRunFunc(run)
	}
	return nil
}

func (m *MockRunRepository) GetRun(id string) (*models.Run, error) {
	if m.GetRunFunc != nil {
		return m.GetRunFunc(id)
	}
	return &models.Run{ID: id}, nil
}

func (m *MockRunRepository) UpdateRun(run *models.Run) error {
	if m.UpdateRunFunc != nil {
		return m.UpdateRunFunc(run)
	}
	return nil
}

func (m *MockRunRepository) ListRecentRuns(limit int) ([]*models.Run, error) {
	if m.ListRecentRunsFunc != nil {
		return m.ListRecentRunsFunc(limit)
	}
	return nil, nil
}

func TestRunService_Start(t *testing.T) {
	tests := []struct {
		name      string
		scenario  string
		mockError error
		wantErr   bool
	}{
		{name: "successful start", scenario: "busca-betoneira"},
		{name: "empty scenario", scenario: "", wantErr: true},
		{name: "repository error", scenario: "busca-betoneira", mockError: errors.New("database error"), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var created *models.Run
			mockRepo := &MockRunRepository{
				CreateRunFunc: func(run *models.Run) error {
					created = run
					return tt.mockError
				},
			}

			run, err := NewRunService(mockRepo).Start(tt.scenario)
			if tt.wantErr {
				if err == nil {
					t.Error("Expected error, got nil")
				}
				if run != nil {
					t.Error("Expected nil run on error")
				}
				return
			}

			if err != nil {
				t.Fatalf("Start() unexpected error = %v", err)
			}
			if created != run {
				t.Error("Expected the started run to be persisted")
			}
			if run.Status != models.RunStatusRunning {
				t.Errorf("Expected status %s, got %s", models.RunStatusRunning, run.Status)
			}
		})
	}
}

func TestRunService_Pass(t *testing.T) {
	var updated *models.Run
	mockRepo := &MockRunRepository{
		UpdateRunFunc: func(run *models.Run) error {
			updated = run
			return nil
		},
	}
	service := NewRunService(mockRepo)

	run, _ := models.NewRun("busca-betoneira")
	if err := service.Pass(run, "/evidencias/a.png", "/logs/test-log-1.txt"); err != nil {
		t.Fatalf("Pass() unexpected error = %v", err)
	}
	if updated == nil || updated.Status != models.RunStatusPassed {
		t.Errorf("Expected passed run to be persisted, got %+v", updated)
	}

	updated = nil
	if err := service.Pass(run, "/evidencias/b.png", ""); !errors.Is(err, models.ErrInvalidStatusTransition) {
		t.Errorf("Pass() twice error = %v, want %v", err, models.ErrInvalidStatusTransition)
	}
	if updated != nil {
		t.Error("Invalid transition should not be persisted")
	}
}

func TestRunService_Fail(t *testing.T) {
	repoErr := errors.New("database error")
	mockRepo := &MockRunRepository{
		UpdateRunFunc: func(run *models.Run) error {
			if run.Status != models.RunStatusFailed {
				t.Errorf("Expected status %s, got %s", models.RunStatusFailed, run.Status)
			}
			return repoErr
		},
	}

	run, _ := models.NewRun("busca-limpeza")
	err := NewRunService(mockRepo).Fail(run, errors.New("assertion failed"))
	if !errors.Is(err, repoErr) {
		t.Errorf("Fail() error = %v, want %v", err, repoErr)
	}
	if run.Error != "assertion failed" {
		t.Errorf("Expected cause to be kept, got %q", run.Error)
	}
}

func TestRunService_Recent(t *testing.T) {
	var gotLimit int
	mockRepo := &MockRunRepository{
		ListRecentRunsFunc: func(limit int) ([]*models.Run, error) {
			gotLimit = limit
			return []*models.Run{{Scenario: "busca-betoneira"}}, nil
		},
	}

	runs, err := NewRunService(mockRepo).Recent(0)
	if err != nil {
		t.Fatalf("Recent() unexpected error = %v", err)
	}
	if gotLimit != 50 {
		t.Errorf("Expected default limit 50, got %d", gotLimit)
	}
	if len(runs) != 1 {
		t.Errorf("Expected 1 run, got %d", len(runs))
	}
}

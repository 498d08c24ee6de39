package handlers

import (
	"fmt"
	"html/template"
	"net/http"
	"path"
	"path/filepath"
	"strconv"

	"github.com/sirupsen/logrus"

	"github.com/casadoconstrutor/storefront-acceptance/internal/models"
)

// EvidencePrefix is the URL prefix evidence files are served under
const EvidencePrefix = "/evidencias/"

// RunLister provides the most recent runs
type RunLister interface {
	Recent(limit int) ([]*models.Run, error)
}

// RunsHandler renders the run history page
type RunsHandler struct {
	template *template.Template
	runs     RunLister
	logger   logrus.FieldLogger
}

// RunsData is the data for the runs template
type RunsData struct {
	Runs []*models.Run
}

// NewRunsHandler creates a new RunsHandler
func NewRunsHandler(templatePath string, runs RunLister, logger logrus.FieldLogger) (*RunsHandler, error) {
	tmpl, err := template.New(filepath.Base(templatePath)).Funcs(template.FuncMap{
		"evidenceURL": EvidenceURL,
	}).ParseFiles(templatePath)
	if err != nil {
		return nil, fmt.Errorf("failed to parse template: %w", err)
	}

	return &RunsHandler{
		template: tmpl,
		runs:     runs,
		logger:   logger,
	}, nil
}

// EvidenceURL maps an evidence file path to its URL on the report server
func EvidenceURL(evidencePath string) string {
	if evidencePath == "" {
		return ""
	}
	return path.Join(EvidencePrefix, filepath.Base(evidencePath))
}

// ServeHTTP handles GET /?limit=N
func (h *RunsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	limit := 50
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			http.Error(w, "Invalid limit", http.StatusBadRequest)
			return
		}
		limit = n
	}

	runs, err := h.runs.Recent(limit)
	if err != nil {
		h.logger.WithError(err).Error("failed to list runs")
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.template.Execute(w, RunsData{Runs: runs}); err != nil {
		h.logger.WithError(err).Error("failed to render runs")
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
}

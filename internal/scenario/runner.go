package scenario

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/casadoconstrutor/storefront-acceptance/internal/browser"
	"github.com/casadoconstrutor/storefront-acceptance/internal/config"
	"github.com/casadoconstrutor/storefront-acceptance/internal/evidence"
	"github.com/casadoconstrutor/storefront-acceptance/internal/models"
	"github.com/casadoconstrutor/storefront-acceptance/internal/pages"
	"github.com/casadoconstrutor/storefront-acceptance/internal/runlog"
	"github.com/casadoconstrutor/storefront-acceptance/internal/services"
)

// Result is the outcome of one scenario run
type Result struct {
	Scenario     string
	Title        string
	RunID        string
	EvidencePath string
	LogPath      string
	Duration     time.Duration
	Err          error
}

// Passed reports whether the scenario finished without error
func (r Result) Passed() bool {
	return r.Err == nil
}

// Runner executes scenarios, each in its own browser session
type Runner struct {
	sessions browser.SessionFactory
	evidence *evidence.Store
	logs     *runlog.Writer
	runs     services.RunService
	pageOpts []pages.Option
	logger   logrus.FieldLogger
}

// RunnerOption configures a Runner
type RunnerOption func(*Runner)

// WithRunService records every run through service
func WithRunService(service services.RunService) RunnerOption {
	return func(r *Runner) {
		r.runs = service
	}
}

// WithLogger sets the runner logger
func WithLogger(logger logrus.FieldLogger) RunnerOption {
	return func(r *Runner) {
		r.logger = logger
	}
}

// WithPageOptions adds options applied to every page object
func WithPageOptions(opts ...pages.Option) RunnerOption {
	return func(r *Runner) {
		r.pageOpts = append(r.pageOpts, opts...)
	}
}

// NewRunner creates a runner writing evidence and logs where cfg says
func NewRunner(sessions browser.SessionFactory, cfg *config.StorefrontConfig, opts ...RunnerOption) *Runner {
	r := &Runner{
		sessions: sessions,
		evidence: evidence.NewStore(cfg.EvidenceDir),
		logs:     runlog.NewWriter(cfg.LogDir),
		pageOpts: []pages.Option{
			pages.WithURL(cfg.URL),
			pages.WithTimeouts(cfg.WaitTimeout, cfg.ScreenshotTimeout),
		},
		logger: logrus.StandardLogger(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run executes sc in a fresh session. Evidence and the run log are only
// written when every step passed.
func (r *Runner) Run(sc Scenario) Result {
	logger := r.logger.WithField("scenario", sc.Name)
	result := Result{Scenario: sc.Name, Title: sc.Title}
	start := time.Now()

	var run *models.Run
	if r.runs != nil {
		var err error
		if run, err = r.runs.Start(sc.Name); err != nil {
			logger.WithError(err).Warn("run history unavailable")
		} else {
			result.RunID = run.ID
		}
	}

	logger.Info("scenario started")
	result.Err = r.execute(sc, logger, &result)
	result.Duration = time.Since(start)

	if result.Err != nil {
		logger.WithError(result.Err).WithField("duration", result.Duration).Error("scenario failed")
	} else {
		logger.WithFields(logrus.Fields{
			"duration": result.Duration,
			"evidence": result.EvidencePath,
			"log":      result.LogPath,
		}).Info("scenario passed")
	}

	if run != nil {
		var err error
		if result.Err != nil {
			err = r.runs.Fail(run, result.Err)
		} else {
			err = r.runs.Pass(run, result.EvidencePath, result.LogPath)
		}
		if err != nil {
			logger.WithError(err).Warn("failed to record run result")
		}
	}

	return result
}

func (r *Runner) execute(sc Scenario, logger logrus.FieldLogger, result *Result) error {
	session, err := r.sessions.NewSession()
	if err != nil {
		return fmt.Errorf("failed to open session: %w", err)
	}
	defer func() {
		if err := session.Close(); err != nil {
			logger.WithError(err).Warn("failed to close session")
		}
	}()

	opts := append(append([]pages.Option(nil), r.pageOpts...), pages.WithLogger(logger))
	page := pages.NewStorefrontPage(session, r.evidence, opts...)

	if err := sc.Execute(page); err != nil {
		return err
	}

	evidencePath, err := page.CaptureEvidence(sc.EvidenceLabel)
	if err != nil {
		return err
	}
	result.EvidencePath = evidencePath

	logPath, err := r.logs.Write(runlog.Entry{
		Time:         time.Now(),
		Scenario:     sc.Title,
		EvidencePath: evidencePath,
		Status:       runlog.StatusPassed,
	})
	if err != nil {
		return fmt.Errorf("failed to write run log: %w", err)
	}
	result.LogPath = logPath

	return nil
}

// RunAll runs scenarios with at most parallel of them at once. Results keep
// the order of scenarios. A failing scenario does not stop the others; a
// cancelled ctx keeps scenarios not yet started from starting.
func (r *Runner) RunAll(ctx context.Context, scenarios []Scenario, parallel int) []Result {
	if parallel < 1 {
		parallel = 1
	}

	results := make([]Result, len(scenarios))
	g := new(errgroup.Group)
	g.SetLimit(parallel)

	for i, sc := range scenarios {
		i, sc := i, sc
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				results[i] = Result{Scenario: sc.Name, Title: sc.Title, Err: fmt.Errorf("not started: %w", err)}
				return nil
			}
			results[i] = r.Run(sc)
			return nil
		})
	}

	g.Wait()
	return results
}

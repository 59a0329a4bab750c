package app

import (
	"context"
	"fmt"
	"time"

	"sheetops/domain/core"
	"sheetops/internal"
)

// StageRunner runs the named steps of one walkthrough in order, checking for
// cancellation between steps
type StageRunner struct {
	runID  core.RunID
	logger *internal.Logger
}

// NewStageRunner creates a stage runner for a fresh run and logs its ID
func NewStageRunner(walkthrough string, logger *internal.Logger) *StageRunner {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	r := &StageRunner{runID: core.NewRunID(), logger: logger.With(walkthrough)}
	r.logger.Info("run %s started", r.runID.Short())
	return r
}

// RunID identifies this run in logs
func (r *StageRunner) RunID() core.RunID {
	return r.runID
}

// Run executes one stage. A failed stage stops the walkthrough.
func (r *StageRunner) Run(ctx context.Context, stage string, fn func() error) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w", stage, err)
	}
	startTime := time.Now()
	if err := fn(); err != nil {
		r.logger.Error("run %s: %s failed: %v", r.runID.Short(), stage, err)
		return fmt.Errorf("%s: %w", stage, err)
	}
	r.logger.Debug("run %s: %s done in %s", r.runID.Short(), stage, time.Since(startTime))
	return nil
}

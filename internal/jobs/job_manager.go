package jobs

import (
	"fmt"
	"log/slog"
)

// Schedules holds the cron expressions of the jobs. Empty values select the
// job defaults.
type Schedules struct {
	Reconcile string
	LineLoad  string
}

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	reconciliationJob *OrderReconciliationJob
	lineLoadJob       *LineLoadJob
}

// NewJobManager creates a new job manager with all required jobs.
func NewJobManager(
	reconciler OrderReconciler,
	reader LineOccupancyReader,
	recorder LineLoadRecorder,
	schedules Schedules,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		reconciliationJob: NewOrderReconciliationJob(reconciler, schedules.Reconcile, logger),
		lineLoadJob:       NewLineLoadJob(reader, recorder, schedules.LineLoad, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.reconciliationJob.Start(); err != nil {
		return fmt.Errorf("failed to start order reconciliation job: %w", err)
	}

	if err := jm.lineLoadJob.Start(); err != nil {
		// Stop already started jobs if this one fails
		jm.reconciliationJob.Stop()
		return fmt.Errorf("failed to start line load job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.lineLoadJob.Stop()
	jm.reconciliationJob.Stop()
}

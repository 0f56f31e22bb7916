package jobs

import (
	"context"
	"log/slog"

	"production/internal/core/application/usecases/commands"
	"production/internal/core/domain/model/kernel"

	"github.com/robfig/cron/v3"
)

// DefaultReconcileSchedule runs the reconciliation every five minutes.
const DefaultReconcileSchedule = "0 */5 * * * *"

// OrderReconciler is satisfied by commands.ReconcileOrdersCommandHandler.
type OrderReconciler interface {
	Handle(ctx context.Context, cmd commands.ReconcileOrdersCommand) ([]kernel.UUID, error)
}

// OrderReconciliationJob completes orders whose steps are all done but whose
// status never reached completed, e.g. after a crash between the step write
// and the cascade.
type OrderReconciliationJob struct {
	reconciler OrderReconciler
	schedule   string
	cron       *cron.Cron
	logger     *slog.Logger
}

// NewOrderReconciliationJob creates the job. schedule is a six-field cron
// expression with seconds; an empty one falls back to DefaultReconcileSchedule.
func NewOrderReconciliationJob(reconciler OrderReconciler, schedule string, logger *slog.Logger) *OrderReconciliationJob {
	if schedule == "" {
		schedule = DefaultReconcileSchedule
	}
	return &OrderReconciliationJob{
		reconciler: reconciler,
		schedule:   schedule,
		cron:       cron.New(cron.WithSeconds()),
		logger:     logger.With("component", "order_reconciliation_job"),
	}
}

// Run performs one reconciliation pass and returns the repaired orders.
func (j *OrderReconciliationJob) Run(ctx context.Context) ([]kernel.UUID, error) {
	repaired, err := j.reconciler.Handle(ctx, commands.NewReconcileOrdersCommand())
	if err != nil {
		j.logger.ErrorContext(ctx, "Order reconciliation failed", "error", err)
		return nil, err
	}

	if len(repaired) > 0 {
		ids := make([]string, len(repaired))
		for i, id := range repaired {
			ids[i] = id.String()
		}
		j.logger.InfoContext(ctx, "Orders reconciled", "count", len(repaired), "orders", ids)
	}
	return repaired, nil
}

// Start schedules Run.
func (j *OrderReconciliationJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, func() {
		_, _ = j.Run(context.Background())
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Order reconciliation job started", "schedule", j.schedule)
	return nil
}

// Stop stops the scheduler and waits for a running pass to finish.
func (j *OrderReconciliationJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Order reconciliation job stopped")
}

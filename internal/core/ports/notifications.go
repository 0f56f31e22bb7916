package ports

import (
	"context"

	"production/internal/core/domain/model/alert"
)

// AlertNotifier delivers newly created alerts to interested parties. It is
// called only after the alerts are committed; delivery failures are the
// notifier's concern and never undo the allocation.
type AlertNotifier interface {
	Notify(ctx context.Context, alerts []*alert.Alert)
}

// AllocationOutcome labels the result of an allocation request.
type AllocationOutcome string

const (
	OutcomeAssigned          AllocationOutcome = "assigned"
	OutcomeCapacityExhausted AllocationOutcome = "capacity_exhausted"
	OutcomeRejected          AllocationOutcome = "rejected"
	OutcomeFailed            AllocationOutcome = "failed"
)

// AllocationRecorder receives allocation telemetry.
type AllocationRecorder interface {
	RecordAllocation(outcome AllocationOutcome)
	RecordLineLoad(lineName string, occupancy, capacity int)
	RecordAlert(severity alert.Severity)
}

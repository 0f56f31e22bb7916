package ports

import (
	"context"

	"production/internal/core/domain/model/alert"
	"production/internal/core/domain/model/history"
	"production/internal/core/domain/model/kernel"
)

// AlertRepository defines the persistence contract for alerts.
type AlertRepository interface {
	Add(ctx context.Context, aggregate *alert.Alert) error
	Update(ctx context.Context, aggregate *alert.Alert) error
	Get(ctx context.Context, id kernel.UUID) (*alert.Alert, error)
}

// HistoryRepository is the append-only audit ledger. Entries are never
// updated or removed.
type HistoryRepository interface {
	Append(ctx context.Context, entries ...*history.Entry) error
}

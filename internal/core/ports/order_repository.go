package ports

import (
	"context"

	"production/internal/core/domain/model/kernel"
	"production/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for work orders.
type OrderRepository interface {
	// Add persists a new work order.
	Add(ctx context.Context, aggregate *order.WorkOrder) error

	// Update persists status, timestamps and planning hints of an existing order.
	// It never writes the line assignment; use AssignLine for that.
	Update(ctx context.Context, aggregate *order.WorkOrder) error

	// Get retrieves a work order by id or returns errs.ErrObjectNotFound.
	Get(ctx context.Context, id kernel.UUID) (*order.WorkOrder, error)

	// AssignLine writes the order's line assignment only if the stored order
	// is still unassigned. Losing that race is a precondition failure and
	// nothing is written.
	AssignLine(ctx context.Context, aggregate *order.WorkOrder) error

	// CountOccupancy returns, per line, the number of orders in a status that
	// occupies the line (pending or in_process). Lines without such orders
	// are absent from the map.
	CountOccupancy(ctx context.Context) (map[kernel.UUID]int, error)

	// GetAllWithFinishedSteps returns orders short of completed whose steps
	// are all done.
	GetAllWithFinishedSteps(ctx context.Context) ([]*order.WorkOrder, error)
}

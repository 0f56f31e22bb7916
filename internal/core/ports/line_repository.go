// Package ports defines the contracts between the production core and its
// infrastructure: repositories, the unit of work and outbound notifications.
package ports

import (
	"context"

	"production/internal/core/domain/model/kernel"
	"production/internal/core/domain/model/line"
)

// LineRepository defines the persistence contract for production lines.
type LineRepository interface {
	// Add persists a new line. Line names are unique; a duplicate name is a
	// precondition failure.
	Add(ctx context.Context, aggregate *line.Line) error

	// Update persists status changes of an existing line.
	Update(ctx context.Context, aggregate *line.Line) error

	// Get retrieves a line by id or returns errs.ErrObjectNotFound.
	Get(ctx context.Context, id kernel.UUID) (*line.Line, error)

	// GetAllForAllocation returns every line ordered by name, then id, and holds
	// a write lock on each of them until the surrounding unit of work ends.
	// Concurrent allocations therefore serialize on the line set, and the
	// fixed lock order keeps them deadlock free.
	//
	// Example:
	//   lines, err := uow.LineRepository().GetAllForAllocation(ctx)
	//   if err != nil {
	//       return err
	//   }
	//   occupancy, err := uow.OrderRepository().CountOccupancy(ctx)
	GetAllForAllocation(ctx context.Context) ([]*line.Line, error)
}

package ports

import (
	"context"

	"production/internal/core/domain/model/kernel"
	"production/internal/core/domain/model/step"
)

// StepRepository defines the persistence contract for process steps.
type StepRepository interface {
	// AddAll persists the full step set of a newly created order.
	AddAll(ctx context.Context, steps []*step.ProcessStep) error

	// Update persists status, operator, data and photos of a step.
	Update(ctx context.Context, aggregate *step.ProcessStep) error

	// Get retrieves a step by id or returns errs.ErrObjectNotFound.
	Get(ctx context.Context, id kernel.UUID) (*step.ProcessStep, error)

	// GetAllByOrder returns the steps of an order ordered by step number.
	GetAllByOrder(ctx context.Context, orderID kernel.UUID) ([]*step.ProcessStep, error)
}

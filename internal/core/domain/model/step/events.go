package step

import "production/internal/core/domain/model/kernel"

// Completed is raised when a step transitions to Done.
type Completed struct {
	StepID  kernel.UUID
	OrderID kernel.UUID
	Number  int
}

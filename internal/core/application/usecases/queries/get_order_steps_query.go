package queries

import (
	"errors"
	"time"

	"production/internal/core/domain/model/kernel"
	"production/internal/pkg/guard"
)

var ErrGetOrderStepsQueryIsNotConstructed = errors.New(
	"GetOrderStepsQuery must be created via NewGetOrderStepsQuery constructor",
)

// GetOrderStepsQuery reads the pipeline progress of one order.
type GetOrderStepsQuery struct {
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

func NewGetOrderStepsQuery(orderID kernel.UUID) (GetOrderStepsQuery, error) {
	if err := orderID.Validate(); err != nil {
		return GetOrderStepsQuery{}, err
	}
	return GetOrderStepsQuery{orderID: orderID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetOrderStepsQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderStepsQueryIsNotConstructed)
}

func (q GetOrderStepsQuery) OrderID() kernel.UUID {
	return q.orderID
}

type StepResponse struct {
	ID          kernel.UUID
	Number      int
	Name        string
	Status      string
	Operator    *string
	Data        map[string]any
	Photos      []string
	StartedAt   *time.Time
	CompletedAt *time.Time
}

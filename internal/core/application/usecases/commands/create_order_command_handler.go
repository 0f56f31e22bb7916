package commands

import (
	"context"
	"time"

	"production/internal/core/domain/model/history"
	"production/internal/core/domain/model/kernel"
	"production/internal/core/domain/model/order"
	"production/internal/core/domain/model/pipeline"
)

// CreateOrderCommandHandler creates a work order together with its steps,
// built from the configured pipeline, and logs the creation.
//
// Example:
//
//	handler := NewCreateOrderCommandHandler(uowFactory, pipeline.Default())
//	cmd, _ := NewCreateOrderCommand("OF-1", "Acme", 0, "u-1")
//
//	orderID, err := handler.Handle(ctx, cmd)
//	if err != nil {
//	    return fmt.Errorf("order creation failed: %w", err)
//	}
//	// order is pending and waits for allocation
type CreateOrderCommandHandler struct {
	uowFactory UoWFactory
	pipeline   pipeline.Pipeline
}

func NewCreateOrderCommandHandler(uowFactory UoWFactory, p pipeline.Pipeline) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
		pipeline:   p,
	}
}

// Handle returns the id of the new order.
func (h CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) (kernel.UUID, error) {
	if err := cmd.Validate(); err != nil {
		return kernel.UUID{}, err
	}

	now := time.Now().UTC()
	o, err := order.NewWorkOrder(kernel.NewUUID(), cmd.ExternalRef(), cmd.Customer(), cmd.Priority(), now)
	if err != nil {
		return kernel.UUID{}, err
	}

	steps, err := h.pipeline.BuildSteps(o.ID())
	if err != nil {
		return kernel.UUID{}, err
	}

	status := o.Status().String()
	created, err := history.NewEntry(history.EntityOrder, o.ID(), o.ID(), history.ActionCreated, nil, &status, cmd.Actor(), now)
	if err != nil {
		return kernel.UUID{}, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return kernel.UUID{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.OrderRepository().Add(ctx, o); err != nil {
		return kernel.UUID{}, err
	}

	if err = uow.StepRepository().AddAll(ctx, steps); err != nil {
		return kernel.UUID{}, err
	}

	if err = uow.HistoryRepository().Append(ctx, created); err != nil {
		return kernel.UUID{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return kernel.UUID{}, err
	}

	return o.ID(), nil
}

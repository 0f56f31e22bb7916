package commands

import (
	"context"
	"time"

	"production/internal/core/domain/model/order"
)

// AdvanceOrderStatusResult carries the order as persisted and the transition
// applied to it.
type AdvanceOrderStatusResult struct {
	Order      *order.WorkOrder
	Transition order.Transition
}

// AdvanceOrderStatusCommandHandler applies one forward transition and logs it.
// Advancing a delivered order fails with a precondition error.
type AdvanceOrderStatusCommandHandler struct {
	uowFactory UoWFactory
}

func NewAdvanceOrderStatusCommandHandler(uowFactory UoWFactory) AdvanceOrderStatusCommandHandler {
	return AdvanceOrderStatusCommandHandler{uowFactory: uowFactory}
}

func (h AdvanceOrderStatusCommandHandler) Handle(ctx context.Context, cmd AdvanceOrderStatusCommand) (AdvanceOrderStatusResult, error) {
	if err := cmd.Validate(); err != nil {
		return AdvanceOrderStatusResult{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return AdvanceOrderStatusResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	o, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return AdvanceOrderStatusResult{}, err
	}

	now := time.Now().UTC()
	tr, err := o.Advance(now)
	if err != nil {
		return AdvanceOrderStatusResult{}, err
	}

	entries, err := orderTransitionEntries(o, []order.Transition{tr}, cmd.Actor(), now)
	if err != nil {
		return AdvanceOrderStatusResult{}, err
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return AdvanceOrderStatusResult{}, err
	}

	if err = uow.HistoryRepository().Append(ctx, entries...); err != nil {
		return AdvanceOrderStatusResult{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return AdvanceOrderStatusResult{}, err
	}

	return AdvanceOrderStatusResult{Order: o, Transition: tr}, nil
}

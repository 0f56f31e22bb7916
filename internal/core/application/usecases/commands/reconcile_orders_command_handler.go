package commands

import (
	"context"
	"time"

	"production/internal/core/domain/model/history"
	"production/internal/core/domain/model/kernel"
	"production/internal/core/domain/services"
)

// ReconcileOrdersCommandHandler completes every order the step cascade missed.
// The repairs are logged with history.SystemActor.
type ReconcileOrdersCommandHandler struct {
	uowFactory UoWFactory
	lifecycle  services.OrderLifecycle
}

func NewReconcileOrdersCommandHandler(uowFactory UoWFactory) ReconcileOrdersCommandHandler {
	return ReconcileOrdersCommandHandler{
		uowFactory: uowFactory,
		lifecycle:  services.NewOrderLifecycle(),
	}
}

// Handle returns the ids of the repaired orders.
func (h ReconcileOrdersCommandHandler) Handle(ctx context.Context, cmd ReconcileOrdersCommand) ([]kernel.UUID, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	stepRepo := uow.StepRepository()
	historyRepo := uow.HistoryRepository()

	candidates, err := orderRepo.GetAllWithFinishedSteps(ctx)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	repaired := make([]kernel.UUID, 0, len(candidates))
	for _, o := range candidates {
		steps, stepsErr := stepRepo.GetAllByOrder(ctx, o.ID())
		if stepsErr != nil {
			return nil, stepsErr
		}

		transitions, repairErr := h.lifecycle.Repair(o, steps, now)
		if repairErr != nil {
			return nil, repairErr
		}
		if len(transitions) == 0 {
			continue
		}

		entries, entriesErr := orderTransitionEntries(o, transitions, history.SystemActor, now)
		if entriesErr != nil {
			return nil, entriesErr
		}
		if err = orderRepo.Update(ctx, o); err != nil {
			return nil, err
		}
		if err = historyRepo.Append(ctx, entries...); err != nil {
			return nil, err
		}
		repaired = append(repaired, o.ID())
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return repaired, nil
}

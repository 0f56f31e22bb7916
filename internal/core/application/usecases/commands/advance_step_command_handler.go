package commands

import (
	"context"
	"time"

	"production/internal/core/domain/model/history"
	"production/internal/core/domain/model/order"
	"production/internal/core/domain/model/step"
	"production/internal/core/domain/services"
)

// AdvanceStepResult reports the updated step and its transition. When the step
// was the last one, UpdatedOrder is the completed order and Order lists the
// transitions applied to it.
type AdvanceStepResult struct {
	UpdatedStep  *step.ProcessStep
	Step         step.Transition
	UpdatedOrder *order.WorkOrder
	Order        []order.Transition
}

// AdvanceStepCommandHandler enforces step gating and dispatches the step's
// completion events to the OrderCompletionListener in the same unit of work.
//
// Example:
//
//	res, err := handler.Handle(ctx, cmd)
//	if errors.Is(err, errs.ErrPreconditionFailed) {
//	    // previous step is not done yet
//	}
//	if len(res.Order) > 0 {
//	    // the order reached completed
//	}
type AdvanceStepCommandHandler struct {
	uowFactory UoWFactory
	lifecycle  services.OrderLifecycle
	listener   OrderCompletionListener
}

func NewAdvanceStepCommandHandler(uowFactory UoWFactory) AdvanceStepCommandHandler {
	lifecycle := services.NewOrderLifecycle()
	return AdvanceStepCommandHandler{
		uowFactory: uowFactory,
		lifecycle:  lifecycle,
		listener:   NewOrderCompletionListener(lifecycle),
	}
}

func (h AdvanceStepCommandHandler) Handle(ctx context.Context, cmd AdvanceStepCommand) (AdvanceStepResult, error) {
	if err := cmd.Validate(); err != nil {
		return AdvanceStepResult{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return AdvanceStepResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	stepRepo := uow.StepRepository()
	target, err := stepRepo.Get(ctx, cmd.StepID())
	if err != nil {
		return AdvanceStepResult{}, err
	}

	siblings, err := stepRepo.GetAllByOrder(ctx, target.OrderID())
	if err != nil {
		return AdvanceStepResult{}, err
	}

	now := time.Now().UTC()
	tr, err := h.lifecycle.AdvanceStep(target, siblings, now)
	if err != nil {
		return AdvanceStepResult{}, err
	}

	if err = stepRepo.Update(ctx, target); err != nil {
		return AdvanceStepResult{}, err
	}

	from, to := tr.From.String(), tr.To.String()
	entry, err := stepEntry(target, history.ActionStatusChanged, &from, &to, cmd.Actor(), now)
	if err != nil {
		return AdvanceStepResult{}, err
	}
	if err = uow.HistoryRepository().Append(ctx, entry); err != nil {
		return AdvanceStepResult{}, err
	}

	res := AdvanceStepResult{UpdatedStep: target, Step: tr}
	for _, event := range target.PullEvents() {
		o, transitions, listenerErr := h.listener.Handle(ctx, uow, event, siblings, cmd.Actor(), now)
		if listenerErr != nil {
			return AdvanceStepResult{}, listenerErr
		}
		if o != nil {
			res.UpdatedOrder = o
		}
		res.Order = append(res.Order, transitions...)
	}

	if err = uow.Commit(ctx); err != nil {
		return AdvanceStepResult{}, err
	}

	return res, nil
}

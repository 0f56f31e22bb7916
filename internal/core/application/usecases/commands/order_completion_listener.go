package commands

import (
	"context"
	"time"

	"production/internal/core/domain/model/order"
	"production/internal/core/domain/model/step"
	"production/internal/core/domain/services"
)

// OrderCompletionListener consumes step.Completed events. When the completed
// step is the last of its order, the order is advanced to completed and every
// transition is logged. It writes through the caller's unit of work, so the
// step and the order commit or roll back together.
type OrderCompletionListener struct {
	lifecycle services.OrderLifecycle
}

func NewOrderCompletionListener(lifecycle services.OrderLifecycle) OrderCompletionListener {
	return OrderCompletionListener{lifecycle: lifecycle}
}

// Handle returns the updated order and the transitions applied to it. Both
// are empty when the completed step was not the last one.
func (l OrderCompletionListener) Handle(
	ctx context.Context,
	uow UoW,
	event step.Completed,
	steps []*step.ProcessStep,
	actor string,
	now time.Time,
) (*order.WorkOrder, []order.Transition, error) {
	orderRepo := uow.OrderRepository()
	o, err := orderRepo.Get(ctx, event.OrderID)
	if err != nil {
		return nil, nil, err
	}

	transitions, err := l.lifecycle.OnStepCompleted(event, o, steps, now)
	if err != nil || len(transitions) == 0 {
		return nil, nil, err
	}

	entries, err := orderTransitionEntries(o, transitions, actor, now)
	if err != nil {
		return nil, nil, err
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return nil, nil, err
	}

	if err = uow.HistoryRepository().Append(ctx, entries...); err != nil {
		return nil, nil, err
	}

	return o, transitions, nil
}

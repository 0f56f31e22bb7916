package services

import (
	"fmt"
	"time"

	"production/internal/core/domain/model/order"
	"production/internal/core/domain/model/step"
	"production/internal/pkg/errs"
)

// OrderLifecycle holds the rules that span a work order and its steps.
type OrderLifecycle struct{}

func NewOrderLifecycle() OrderLifecycle {
	return OrderLifecycle{}
}

// AdvanceStep moves target one status forward. siblings are all steps of the
// same order, target included; the predecessor used for gating is looked up there.
func (l OrderLifecycle) AdvanceStep(target *step.ProcessStep, siblings []*step.ProcessStep, now time.Time) (step.Transition, error) {
	if err := target.Validate(); err != nil {
		return step.Transition{}, err
	}

	var previous *step.ProcessStep
	for _, s := range siblings {
		if s.Number() == target.Number()-1 && s.OrderID().IsEqual(target.OrderID()) {
			previous = s
			break
		}
	}
	return target.Advance(previous, now)
}

// OnStepCompleted completes o when the finished step is the highest numbered
// one of the order. It returns the order transitions made, possibly none.
func (l OrderLifecycle) OnStepCompleted(
	event step.Completed,
	o *order.WorkOrder,
	steps []*step.ProcessStep,
	now time.Time,
) ([]order.Transition, error) {
	if !o.ID().IsEqual(event.OrderID) {
		return nil, errs.NewPreconditionFailedError(
			"complete order",
			fmt.Sprintf("step %s belongs to order %s, not %s", event.StepID, event.OrderID, o.ID()),
		)
	}
	if event.Number != lastNumber(steps) {
		return nil, nil
	}
	return o.AdvanceToCompleted(now)
}

// NeedsRepair reports whether every step is done while o is still short of
// Completed, which happens when a crash interrupted the cascade.
func (l OrderLifecycle) NeedsRepair(o *order.WorkOrder, steps []*step.ProcessStep) bool {
	if len(steps) == 0 || o.Status() >= order.Completed {
		return false
	}
	for _, s := range steps {
		if !s.IsDone() {
			return false
		}
	}
	return true
}

// Repair completes o if NeedsRepair holds.
func (l OrderLifecycle) Repair(o *order.WorkOrder, steps []*step.ProcessStep, now time.Time) ([]order.Transition, error) {
	if !l.NeedsRepair(o, steps) {
		return nil, nil
	}
	return o.AdvanceToCompleted(now)
}

func lastNumber(steps []*step.ProcessStep) int {
	last := 0
	for _, s := range steps {
		last = max(last, s.Number())
	}
	return last
}

package memory

import (
	"context"
	"fmt"
	"slices"

	"production/internal/core/domain/model/alert"
	"production/internal/core/domain/model/history"
	"production/internal/core/domain/model/kernel"
	"production/internal/core/domain/model/line"
	"production/internal/core/domain/model/order"
	"production/internal/core/domain/model/step"
	"production/internal/pkg/errs"
)

type lineRepository struct {
	uow *UnitOfWork
}

func (r *lineRepository) Add(_ context.Context, aggregate *line.Line) error {
	st, err := r.uow.current()
	if err != nil {
		return err
	}
	if err = aggregate.Validate(); err != nil {
		return err
	}

	for _, existing := range st.lines {
		if existing.name == aggregate.Name() {
			return errs.NewPreconditionFailedError("add line", fmt.Sprintf("line name %q is taken", aggregate.Name()))
		}
	}
	if _, ok := st.lines[aggregate.ID()]; ok {
		return errs.NewPreconditionFailedError("add line", fmt.Sprintf("line %s already exists", aggregate.ID()))
	}

	st.lines[aggregate.ID()] = lineToRecord(aggregate)
	return nil
}

func (r *lineRepository) Update(_ context.Context, aggregate *line.Line) error {
	st, err := r.uow.current()
	if err != nil {
		return err
	}
	if err = aggregate.Validate(); err != nil {
		return err
	}
	if _, ok := st.lines[aggregate.ID()]; !ok {
		return errs.NewObjectNotFoundError("line", aggregate.ID())
	}

	st.lines[aggregate.ID()] = lineToRecord(aggregate)
	return nil
}

func (r *lineRepository) Get(_ context.Context, id kernel.UUID) (*line.Line, error) {
	st, err := r.uow.current()
	if err != nil {
		return nil, err
	}
	rec, ok := st.lines[id]
	if !ok {
		return nil, errs.NewObjectNotFoundError("line", id)
	}
	return line.RestoreLine(rec.id, rec.name, rec.capacity, rec.status)
}

// GetAllForAllocation needs no extra locking: the unit of work already holds
// the store's only writer slot.
func (r *lineRepository) GetAllForAllocation(_ context.Context) ([]*line.Line, error) {
	st, err := r.uow.current()
	if err != nil {
		return nil, err
	}

	lines := make([]*line.Line, 0, len(st.lines))
	for _, rec := range st.lines {
		l, restoreErr := line.RestoreLine(rec.id, rec.name, rec.capacity, rec.status)
		if restoreErr != nil {
			return nil, restoreErr
		}
		lines = append(lines, l)
	}
	slices.SortFunc(lines, func(a, b *line.Line) int {
		if a.Less(b) {
			return -1
		}
		if b.Less(a) {
			return 1
		}
		return 0
	})
	return lines, nil
}

type orderRepository struct {
	uow *UnitOfWork
}

func (r *orderRepository) Add(_ context.Context, aggregate *order.WorkOrder) error {
	st, err := r.uow.current()
	if err != nil {
		return err
	}
	if err = aggregate.Validate(); err != nil {
		return err
	}
	if _, ok := st.orders[aggregate.ID()]; ok {
		return errs.NewPreconditionFailedError("add order", fmt.Sprintf("order %s already exists", aggregate.ID()))
	}

	st.orders[aggregate.ID()] = orderToRecord(aggregate)
	return nil
}

func (r *orderRepository) Update(_ context.Context, aggregate *order.WorkOrder) error {
	st, err := r.uow.current()
	if err != nil {
		return err
	}
	if err = aggregate.Validate(); err != nil {
		return err
	}
	stored, ok := st.orders[aggregate.ID()]
	if !ok {
		return errs.NewObjectNotFoundError("order", aggregate.ID())
	}

	rec := orderToRecord(aggregate)
	rec.LineID = stored.LineID
	st.orders[aggregate.ID()] = rec
	return nil
}

func (r *orderRepository) Get(_ context.Context, id kernel.UUID) (*order.WorkOrder, error) {
	st, err := r.uow.current()
	if err != nil {
		return nil, err
	}
	rec, ok := st.orders[id]
	if !ok {
		return nil, errs.NewObjectNotFoundError("order", id)
	}
	return order.RestoreWorkOrder(rec)
}

func (r *orderRepository) AssignLine(_ context.Context, aggregate *order.WorkOrder) error {
	st, err := r.uow.current()
	if err != nil {
		return err
	}
	if aggregate.LineID() == nil {
		return errs.NewValueIsRequiredError("line id")
	}
	stored, ok := st.orders[aggregate.ID()]
	if !ok {
		return errs.NewObjectNotFoundError("order", aggregate.ID())
	}
	if stored.LineID != nil {
		return errs.NewPreconditionFailedError(
			"assign line",
			fmt.Sprintf("order %s was assigned to line %s concurrently", aggregate.ID(), stored.LineID),
		)
	}

	lineID := *aggregate.LineID()
	stored.LineID = &lineID
	stored.UpdatedAt = aggregate.UpdatedAt()
	st.orders[aggregate.ID()] = stored
	return nil
}

func (r *orderRepository) CountOccupancy(_ context.Context) (map[kernel.UUID]int, error) {
	st, err := r.uow.current()
	if err != nil {
		return nil, err
	}

	occupancy := make(map[kernel.UUID]int)
	for _, rec := range st.orders {
		if rec.LineID != nil && rec.Status.IsOccupying() {
			occupancy[*rec.LineID]++
		}
	}
	return occupancy, nil
}

func (r *orderRepository) GetAllWithFinishedSteps(_ context.Context) ([]*order.WorkOrder, error) {
	st, err := r.uow.current()
	if err != nil {
		return nil, err
	}

	total := make(map[kernel.UUID]int)
	done := make(map[kernel.UUID]int)
	for _, rec := range st.steps {
		total[rec.OrderID]++
		if rec.Status == step.Done {
			done[rec.OrderID]++
		}
	}

	var orders []*order.WorkOrder
	for id, rec := range st.orders {
		if rec.Status >= order.Completed || total[id] == 0 || done[id] != total[id] {
			continue
		}
		o, restoreErr := order.RestoreWorkOrder(rec)
		if restoreErr != nil {
			return nil, restoreErr
		}
		orders = append(orders, o)
	}
	slices.SortFunc(orders, func(a, b *order.WorkOrder) int {
		return a.ID().Compare(b.ID())
	})
	return orders, nil
}

type stepRepository struct {
	uow *UnitOfWork
}

func (r *stepRepository) AddAll(_ context.Context, steps []*step.ProcessStep) error {
	st, err := r.uow.current()
	if err != nil {
		return err
	}
	for _, s := range steps {
		if err = s.Validate(); err != nil {
			return err
		}
		if _, ok := st.steps[s.ID()]; ok {
			return errs.NewPreconditionFailedError("add step", fmt.Sprintf("step %s already exists", s.ID()))
		}
	}
	for _, s := range steps {
		st.steps[s.ID()] = stepToRecord(s)
	}
	return nil
}

func (r *stepRepository) Update(_ context.Context, aggregate *step.ProcessStep) error {
	st, err := r.uow.current()
	if err != nil {
		return err
	}
	if err = aggregate.Validate(); err != nil {
		return err
	}
	if _, ok := st.steps[aggregate.ID()]; !ok {
		return errs.NewObjectNotFoundError("step", aggregate.ID())
	}

	st.steps[aggregate.ID()] = stepToRecord(aggregate)
	return nil
}

func (r *stepRepository) Get(_ context.Context, id kernel.UUID) (*step.ProcessStep, error) {
	st, err := r.uow.current()
	if err != nil {
		return nil, err
	}
	rec, ok := st.steps[id]
	if !ok {
		return nil, errs.NewObjectNotFoundError("step", id)
	}
	return step.RestoreProcessStep(rec)
}

func (r *stepRepository) GetAllByOrder(_ context.Context, orderID kernel.UUID) ([]*step.ProcessStep, error) {
	st, err := r.uow.current()
	if err != nil {
		return nil, err
	}

	var steps []*step.ProcessStep
	for _, rec := range st.steps {
		if !rec.OrderID.IsEqual(orderID) {
			continue
		}
		s, restoreErr := step.RestoreProcessStep(rec)
		if restoreErr != nil {
			return nil, restoreErr
		}
		steps = append(steps, s)
	}
	slices.SortFunc(steps, func(a, b *step.ProcessStep) int {
		return a.Number() - b.Number()
	})
	return steps, nil
}

type alertRepository struct {
	uow *UnitOfWork
}

func (r *alertRepository) Add(_ context.Context, aggregate *alert.Alert) error {
	st, err := r.uow.current()
	if err != nil {
		return err
	}
	if err = aggregate.Validate(); err != nil {
		return err
	}
	if _, ok := st.alerts[aggregate.ID()]; ok {
		return errs.NewPreconditionFailedError("add alert", fmt.Sprintf("alert %s already exists", aggregate.ID()))
	}

	st.alerts[aggregate.ID()] = alertToRecord(aggregate)
	return nil
}

func (r *alertRepository) Update(_ context.Context, aggregate *alert.Alert) error {
	st, err := r.uow.current()
	if err != nil {
		return err
	}
	if err = aggregate.Validate(); err != nil {
		return err
	}
	if _, ok := st.alerts[aggregate.ID()]; !ok {
		return errs.NewObjectNotFoundError("alert", aggregate.ID())
	}

	st.alerts[aggregate.ID()] = alertToRecord(aggregate)
	return nil
}

func (r *alertRepository) Get(_ context.Context, id kernel.UUID) (*alert.Alert, error) {
	st, err := r.uow.current()
	if err != nil {
		return nil, err
	}
	rec, ok := st.alerts[id]
	if !ok {
		return nil, errs.NewObjectNotFoundError("alert", id)
	}
	return alert.RestoreAlert(rec)
}

type historyRepository struct {
	uow *UnitOfWork
}

func (r *historyRepository) Append(_ context.Context, entries ...*history.Entry) error {
	st, err := r.uow.current()
	if err != nil {
		return err
	}
	for _, e := range entries {
		if err = e.Validate(); err != nil {
			return err
		}
		st.history = append(st.history, historyToRecord(e))
	}
	return nil
}

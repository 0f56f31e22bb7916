package commands

import (
	"context"
	"errors"
	"time"

	"production/internal/core/domain/model/alert"
	"production/internal/core/domain/model/history"
	"production/internal/core/domain/model/kernel"
	"production/internal/core/domain/services"
	"production/internal/core/ports"
	"production/internal/pkg/errs"
)

// AssignedLine summarizes the chosen line after the placement.
type AssignedLine struct {
	ID        kernel.UUID
	Name      string
	Occupancy int
	Capacity  int
	Score     float64
}

// LineOccupancy is one entry of the post-assignment snapshot.
type LineOccupancy struct {
	ID        kernel.UUID
	Name      string
	Occupancy int
	Capacity  int
	Rate      float64
}

// AllocateOrderResult is returned by a successful allocation.
type AllocateOrderResult struct {
	AssignedLine AssignedLine
	AllLines     []LineOccupancy
	Alerts       []*alert.Alert
}

// SnapshotOf converts allocator loads to LineOccupancy entries.
func SnapshotOf(loads []services.LineLoad) []LineOccupancy {
	lines := make([]LineOccupancy, 0, len(loads))
	for _, load := range loads {
		lines = append(lines, LineOccupancy{
			ID:        load.Line.ID(),
			Name:      load.Line.Name(),
			Occupancy: load.Occupancy,
			Capacity:  load.Line.Capacity(),
			Rate:      load.Rate(),
		})
	}
	return lines
}

// AllocateOrderCommandHandler runs the capacity allocator and the saturation
// monitor inside one unit of work.
//
// The unit of work locks every line before occupancy is counted, so two
// concurrent allocations never see the same free slot. The final write is
// conditional on the order still being unassigned.
//
// Example:
//
//	res, err := handler.Handle(ctx, cmd)
//	var exhausted *services.CapacityExhaustedError
//	switch {
//	case errors.As(err, &exhausted):
//	    // bottleneck: every active line is full
//	case err != nil:
//	    return err
//	default:
//	    log.Printf("order placed on %s", res.AssignedLine.Name)
//	}
type AllocateOrderCommandHandler struct {
	uowFactory UoWFactory
	allocator  services.CapacityAllocator
	monitor    services.SaturationMonitor
	notifier   ports.AlertNotifier
	recorder   ports.AllocationRecorder
}

func NewAllocateOrderCommandHandler(
	uowFactory UoWFactory,
	monitor services.SaturationMonitor,
	notifier ports.AlertNotifier,
	recorder ports.AllocationRecorder,
) AllocateOrderCommandHandler {
	return AllocateOrderCommandHandler{
		uowFactory: uowFactory,
		allocator:  services.NewCapacityAllocator(),
		monitor:    monitor,
		notifier:   notifier,
		recorder:   recorder,
	}
}

func (h AllocateOrderCommandHandler) Handle(ctx context.Context, cmd AllocateOrderCommand) (AllocateOrderResult, error) {
	if err := cmd.Validate(); err != nil {
		return AllocateOrderResult{}, err
	}

	res, err := h.allocate(ctx, cmd)
	switch {
	case err == nil:
		h.recorder.RecordAllocation(ports.OutcomeAssigned)
	case errors.Is(err, errs.ErrCapacityExhausted):
		h.recorder.RecordAllocation(ports.OutcomeCapacityExhausted)
		return AllocateOrderResult{}, err
	case errs.KindOf(err) == errs.KindPersistence || errs.KindOf(err) == errs.KindUnknown:
		h.recorder.RecordAllocation(ports.OutcomeFailed)
		return AllocateOrderResult{}, err
	default:
		h.recorder.RecordAllocation(ports.OutcomeRejected)
		return AllocateOrderResult{}, err
	}

	for _, l := range res.AllLines {
		h.recorder.RecordLineLoad(l.Name, l.Occupancy, l.Capacity)
	}
	for _, a := range res.Alerts {
		h.recorder.RecordAlert(a.Severity())
	}
	if len(res.Alerts) > 0 {
		h.notifier.Notify(ctx, res.Alerts)
	}

	return res, nil
}

func (h AllocateOrderCommandHandler) allocate(ctx context.Context, cmd AllocateOrderCommand) (AllocateOrderResult, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return AllocateOrderResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	o, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return AllocateOrderResult{}, err
	}
	if err = o.ValidateAssign(); err != nil {
		return AllocateOrderResult{}, err
	}

	lines, err := uow.LineRepository().GetAllForAllocation(ctx)
	if err != nil {
		return AllocateOrderResult{}, err
	}

	occupancy, err := orderRepo.CountOccupancy(ctx)
	if err != nil {
		return AllocateOrderResult{}, err
	}

	loads := make([]services.LineLoad, 0, len(lines))
	for _, l := range lines {
		loads = append(loads, services.LineLoad{Line: l, Occupancy: occupancy[l.ID()]})
	}

	if err = o.Plan(cmd.MaterialType(), cmd.EstimatedHours()); err != nil {
		return AllocateOrderResult{}, err
	}

	now := time.Now().UTC()
	allocation, err := h.allocator.Allocate(o, loads, cmd.Priority(), now)
	if err != nil {
		return AllocateOrderResult{}, err
	}

	if err = orderRepo.AssignLine(ctx, o); err != nil {
		return AllocateOrderResult{}, err
	}
	if err = orderRepo.Update(ctx, o); err != nil {
		return AllocateOrderResult{}, err
	}

	assigned, err := history.NewEntry(
		history.EntityOrder, o.ID(), o.ID(), history.ActionLineAssigned,
		nil, uuidOrNil(o.LineID()), cmd.Actor(), now,
	)
	if err != nil {
		return AllocateOrderResult{}, err
	}
	if err = uow.HistoryRepository().Append(ctx, assigned); err != nil {
		return AllocateOrderResult{}, err
	}

	alerts, err := h.monitor.Evaluate(allocation.Snapshot, o.ID(), now)
	if err != nil {
		return AllocateOrderResult{}, err
	}
	alertRepo := uow.AlertRepository()
	for _, a := range alerts {
		if err = alertRepo.Add(ctx, a); err != nil {
			return AllocateOrderResult{}, err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return AllocateOrderResult{}, err
	}

	return AllocateOrderResult{
		AssignedLine: AssignedLine{
			ID:        allocation.Line.ID(),
			Name:      allocation.Line.Name(),
			Occupancy: allocation.Occupancy,
			Capacity:  allocation.Line.Capacity(),
			Score:     allocation.Score,
		},
		AllLines: SnapshotOf(allocation.Snapshot),
		Alerts:   alerts,
	}, nil
}

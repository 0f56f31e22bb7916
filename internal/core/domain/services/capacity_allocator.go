package services

import (
	"fmt"
	"slices"
	"time"

	"production/internal/core/domain/model/line"
	"production/internal/core/domain/model/order"
	"production/internal/pkg/errs"
)

// LineLoad pairs a line with the number of orders currently occupying it.
type LineLoad struct {
	Line      *line.Line
	Occupancy int
}

// Rate returns occupancy/capacity.
func (l LineLoad) Rate() float64 {
	return l.Line.OccupancyRate(l.Occupancy)
}

// Allocation is the result of a successful placement.
type Allocation struct {
	// Line is the chosen line; Occupancy already counts the placed order.
	Line      *line.Line
	Occupancy int
	Score     float64

	// Snapshot holds every line after the placement, sorted by name then id.
	Snapshot []LineLoad
}

// CapacityExhaustedError is returned when no active line has free capacity.
// It carries the occupancy snapshot that led to the decision.
type CapacityExhaustedError struct {
	Snapshot []LineLoad
}

func (e *CapacityExhaustedError) Error() string {
	return fmt.Sprintf("%s: no active line has free capacity (%d lines inspected)", errs.ErrCapacityExhausted, len(e.Snapshot))
}

func (e *CapacityExhaustedError) Unwrap() error {
	return errs.ErrCapacityExhausted
}

// Score rates a candidate line as
// (capacity-occupancy)*10 + (1-occupancy/capacity)*5 + priority*2.
func Score(capacity, occupancy, priority int) float64 {
	free := float64(capacity - occupancy)
	return free*10 + (1-float64(occupancy)/float64(capacity))*5 + float64(priority)*2
}

// CapacityAllocator selects a production line for an unassigned work order.
//
// Business rules:
//   - only active lines with occupancy < capacity are candidates
//   - the highest Score wins, ties go to the lowest name, then the lowest id
//   - the order is assigned in place; persisting it is the caller's job
//
// Example:
//
//	allocator := services.NewCapacityAllocator()
//	res, err := allocator.Allocate(o, loads, priority, time.Now())
//	var exhausted *services.CapacityExhaustedError
//	if errors.As(err, &exhausted) {
//	    // bottleneck, show exhausted.Snapshot
//	}
type CapacityAllocator struct{}

func NewCapacityAllocator() CapacityAllocator {
	return CapacityAllocator{}
}

// Allocate places o on the best line among loads. loads must describe every
// known line with occupancy counted before the placement.
func (a CapacityAllocator) Allocate(o *order.WorkOrder, loads []LineLoad, priority int, now time.Time) (Allocation, error) {
	if err := o.Validate(); err != nil {
		return Allocation{}, err
	}
	if err := o.ValidateAssign(); err != nil {
		return Allocation{}, err
	}

	snapshot, err := sortedSnapshot(loads)
	if err != nil {
		return Allocation{}, err
	}

	best := -1
	var bestScore float64
	for i, load := range snapshot {
		if !load.Line.IsActive() || !load.Line.HasFreeCapacity(load.Occupancy) {
			continue
		}

		score := Score(load.Line.Capacity(), load.Occupancy, priority)
		// snapshot is name/id ordered, so a strictly greater score is the only way to displace
		if best == -1 || score > bestScore {
			best = i
			bestScore = score
		}
	}

	if best == -1 {
		return Allocation{}, &CapacityExhaustedError{Snapshot: snapshot}
	}

	chosen := snapshot[best].Line
	if err = o.AssignLine(chosen.ID(), now); err != nil {
		return Allocation{}, err
	}
	snapshot[best].Occupancy++

	return Allocation{
		Line:      chosen,
		Occupancy: snapshot[best].Occupancy,
		Score:     bestScore,
		Snapshot:  snapshot,
	}, nil
}

func sortedSnapshot(loads []LineLoad) ([]LineLoad, error) {
	snapshot := slices.Clone(loads)
	for _, load := range snapshot {
		if err := load.Line.Validate(); err != nil {
			return nil, err
		}
		if load.Occupancy < 0 {
			return nil, errs.NewValueIsInvalidErrorWithCause(
				"occupancy",
				fmt.Errorf("line %s has negative occupancy %d", load.Line.Name(), load.Occupancy),
			)
		}
	}

	slices.SortFunc(snapshot, func(x, y LineLoad) int {
		switch {
		case x.Line.Less(y.Line):
			return -1
		case y.Line.Less(x.Line):
			return 1
		default:
			return 0
		}
	})
	return snapshot, nil
}

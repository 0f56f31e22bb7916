// Package queries contains read operations for retrieving system state.
// Implements the Query pattern for read operations in the CQRS architecture.
// Queries return read models built with plain SQL and never lock rows.
package queries

import (
	"errors"

	"production/internal/core/domain/model/kernel"
	"production/internal/pkg/guard"
)

var ErrGetLineOccupancyQueryIsNotConstructed = errors.New(
	"GetLineOccupancyQuery must be created via NewGetLineOccupancyQuery constructor",
)

// GetLineOccupancyQuery lists every line with its derived occupancy.
//
// Example:
//
//	lines, err := handler.Handle(ctx, NewGetLineOccupancyQuery())
//	if err != nil {
//	    return err
//	}
//	for _, l := range lines {
//	    fmt.Printf("%s %d/%d\n", l.Name, l.Occupancy, l.Capacity)
//	}
type GetLineOccupancyQuery struct {
	guard guard.ConstructorGuard
}

func NewGetLineOccupancyQuery() GetLineOccupancyQuery {
	return GetLineOccupancyQuery{guard: guard.NewConstructorGuard()}
}

func (q GetLineOccupancyQuery) Validate() error {
	return q.guard.Validate(ErrGetLineOccupancyQueryIsNotConstructed)
}

// LineOccupancyResponse is one line of the occupancy board. Occupancy counts
// the pending and in-process orders on the line.
type LineOccupancyResponse struct {
	ID            kernel.UUID
	Name          string
	Status        string
	Capacity      int
	Occupancy     int
	OccupancyRate float64
}

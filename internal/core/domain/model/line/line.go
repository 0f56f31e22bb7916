package line

import (
	"errors"
	"fmt"
	"strings"

	"production/internal/core/domain/model/kernel"
	"production/internal/pkg/errs"
	"production/internal/pkg/guard"
)

var (
	ErrNameIsRequired       = errs.NewValueIsRequiredError("line name")
	ErrLineIsNotConstructed = errors.New("Line must be created via NewLine or RestoreLine")
)

// Line is the ProductionLine aggregate root.
//
// Invariants:
//   - id is a valid identifier
//   - name is not blank
//   - capacity is greater than 0
//   - status is a valid Status
type Line struct {
	id       kernel.UUID
	name     string
	capacity int
	status   Status
	guard    guard.ConstructorGuard
}

// NewLine creates an Active line.
//
// Example:
//
//	l, err := line.NewLine(kernel.NewUUID(), "Nave 1", 10)
//	if err != nil {
//	    return err
//	}
func NewLine(id kernel.UUID, name string, capacity int) (*Line, error) {
	return RestoreLine(id, name, capacity, Active)
}

// RestoreLine rebuilds a line from persistence with the same validation as NewLine.
func RestoreLine(id kernel.UUID, name string, capacity int, status Status) (*Line, error) {
	l := &Line{guard: guard.NewConstructorGuard()}

	if err := errors.Join(
		l.setID(id),
		l.setName(name),
		l.setCapacity(capacity),
		l.setStatus(status),
	); err != nil {
		return nil, err
	}

	return l, nil
}

// Validate ensures the line was built through NewLine or RestoreLine.
//
// Returns:
//   - nil if the line is valid
//   - ErrLineIsNotConstructed for a nil or zero-value line
func (l *Line) Validate() error {
	if l == nil {
		return ErrLineIsNotConstructed
	}
	return l.guard.Validate(ErrLineIsNotConstructed)
}

// IsEqual compares two lines by identifier.
func (l *Line) IsEqual(other *Line) bool {
	return other != nil && l.id.IsEqual(other.id)
}

// ID returns the line's unique identifier.
func (l *Line) ID() kernel.UUID {
	return l.id
}

// Name returns the unique, trimmed display name.
func (l *Line) Name() string {
	return l.name
}

// Capacity returns the maximum number of orders the line holds at once.
func (l *Line) Capacity() int {
	return l.capacity
}

// Status returns the administrative status.
func (l *Line) Status() Status {
	return l.status
}

// IsActive reports whether the allocator may place new orders on the line.
func (l *Line) IsActive() bool {
	return l.status == Active
}

// HasFreeCapacity reports whether one more order fits next to occupancy orders.
func (l *Line) HasFreeCapacity(occupancy int) bool {
	return occupancy < l.capacity
}

// OccupancyRate returns occupancy/capacity.
func (l *Line) OccupancyRate(occupancy int) float64 {
	return float64(occupancy) / float64(l.capacity)
}

// ChangeStatus sets the administrative status. Setting the current status again is allowed.
// Orders already on the line are not reassigned.
//
// Parameters:
//   - status: The new status (must be a valid Status)
//
// Returns:
//   - nil on success
//   - a validation error for an unknown status
//
// Example:
//
//	status, _ := line.ParseStatus("paused")
//	if err := l.ChangeStatus(status); err != nil {
//	    return err
//	}
func (l *Line) ChangeStatus(status Status) error {
	return l.setStatus(status)
}

// Less is the tie-break order between lines: name ascending, then id ascending.
func (l *Line) Less(other *Line) bool {
	if l.name != other.name {
		return l.name < other.name
	}
	return l.id.Compare(other.id) < 0
}

func (l *Line) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	l.id = id
	return nil
}

func (l *Line) setName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrNameIsRequired
	}
	l.name = name
	return nil
}

func (l *Line) setCapacity(capacity int) error {
	if capacity <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("capacity", fmt.Errorf("%d is not greater than 0", capacity))
	}
	l.capacity = capacity
	return nil
}

func (l *Line) setStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	l.status = status
	return nil
}

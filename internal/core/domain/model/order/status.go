package order

import (
	"fmt"
	"strings"

	"production/internal/pkg/errs"
)

// Status represents a work order's position in its lifecycle.
// Values are ordered, so later statuses compare greater than earlier ones.
type Status int

const (
	Unknown Status = iota

	// Pending orders are accepted but not yet worked on.
	Pending

	// InProcess orders are being worked on by the pipeline steps.
	InProcess

	// Completed orders have every pipeline step done.
	Completed

	// Validated orders passed final validation.
	Validated

	// Delivered is the terminal status.
	Delivered
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:   "unknown",
		Pending:   "pending",
		InProcess: "in_process",
		Completed: "completed",
		Validated: "validated",
		Delivered: "delivered",
	}
}

// ParseStatus maps a wire name such as "in_process" to a Status.
func ParseStatus(s string) (Status, error) {
	for status, name := range getStatusStrings() {
		if status != Unknown && name == strings.ToLower(strings.TrimSpace(s)) {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("order status", fmt.Errorf("%q is not a valid order status", s))
}

func (s Status) Validate() error {
	if s <= Unknown || s > Delivered {
		return errs.NewValueIsInvalidErrorWithCause("order status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// IsOccupying reports whether an order in this status counts toward its
// line's occupancy. The same statuses are the ones an order may be
// allocated from.
func (s Status) IsOccupying() bool {
	return s == Pending || s == InProcess
}

// IsTerminal reports whether no further transition exists.
func (s Status) IsTerminal() bool {
	return s == Delivered
}

// Next returns the status that follows s.
//
// Returns a precondition error for Delivered and a validation error for
// values outside the lifecycle.
func (s Status) Next() (Status, error) {
	if err := s.Validate(); err != nil {
		return Unknown, err
	}
	if s.IsTerminal() {
		return Unknown, errs.NewPreconditionFailedError(
			"advance order",
			fmt.Sprintf("%s is a terminal status", s),
		)
	}
	return s + 1, nil
}

// ValidateAssign checks that an order in this status may receive a line.
func (s Status) ValidateAssign() error {
	if !s.IsOccupying() {
		return errs.NewPreconditionFailedError(
			"assign line",
			fmt.Sprintf("%s is not a valid status to assign", s),
		)
	}
	return nil
}

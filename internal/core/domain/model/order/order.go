package order

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"production/internal/core/domain/model/kernel"
	"production/internal/pkg/errs"
	"production/internal/pkg/guard"
)

var (
	ErrExternalRefIsRequired     = errs.NewValueIsRequiredError("external reference")
	ErrCustomerIsRequired        = errs.NewValueIsRequiredError("customer")
	ErrWorkOrderIsNotConstructed = errors.New("WorkOrder must be created via NewWorkOrder or RestoreWorkOrder")
)

// Transition describes one forward move of a work order.
type Transition struct {
	From Status
	To   Status
}

// WorkOrder is the aggregate root of the order lifecycle.
//
// Invariants:
//   - id is valid, external reference and customer are not blank
//   - status is a valid Status and only advances forward
//   - lineID is set at most once
//   - estimatedHours is never negative
type WorkOrder struct {
	id             kernel.UUID
	externalRef    string
	customer       string
	priority       int
	status         Status
	lineID         *kernel.UUID
	materialType   string
	estimatedHours float64
	createdAt      time.Time
	updatedAt      time.Time
	startedAt      *time.Time
	completedAt    *time.Time
	guard          guard.ConstructorGuard
}

// NewWorkOrder creates a Pending, unassigned work order.
//
// Example:
//
//	o, err := order.NewWorkOrder(kernel.NewUUID(), "OF-2024-0017", "Acme", 2, time.Now())
//	if err != nil {
//	    return err
//	}
func NewWorkOrder(id kernel.UUID, externalRef, customer string, priority int, now time.Time) (*WorkOrder, error) {
	return RestoreWorkOrder(Record{
		ID:          id,
		ExternalRef: externalRef,
		Customer:    customer,
		Priority:    priority,
		Status:      Pending,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
}

// Record carries the persisted state of a work order for RestoreWorkOrder.
type Record struct {
	ID             kernel.UUID
	ExternalRef    string
	Customer       string
	Priority       int
	Status         Status
	LineID         *kernel.UUID
	MaterialType   string
	EstimatedHours float64
	CreatedAt      time.Time
	UpdatedAt      time.Time
	StartedAt      *time.Time
	CompletedAt    *time.Time
}

// RestoreWorkOrder rebuilds a work order from persistence with the same
// validation as NewWorkOrder.
//
// Parameters:
//   - r: The persisted state, typically mapped from a database row
//
// Returns:
//   - *WorkOrder: The restored order
//   - error: Joined validation errors for every invalid field
func RestoreWorkOrder(r Record) (*WorkOrder, error) {
	o := &WorkOrder{
		priority:    r.Priority,
		createdAt:   r.CreatedAt,
		updatedAt:   r.UpdatedAt,
		startedAt:   r.StartedAt,
		completedAt: r.CompletedAt,
		guard:       guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		o.setID(r.ID),
		o.setExternalRef(r.ExternalRef),
		o.setCustomer(r.Customer),
		o.setStatus(r.Status),
		o.setLineID(r.LineID),
		o.setPlanning(r.MaterialType, r.EstimatedHours),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// Validate ensures the work order was built through NewWorkOrder or
// RestoreWorkOrder. Repositories call it before persisting.
//
// Returns:
//   - nil if the order is valid
//   - ErrWorkOrderIsNotConstructed for a nil or zero-value order
func (o *WorkOrder) Validate() error {
	if o == nil {
		return ErrWorkOrderIsNotConstructed
	}
	return o.guard.Validate(ErrWorkOrderIsNotConstructed)
}

// IsEqual compares two work orders by identifier. A nil other is never equal.
func (o *WorkOrder) IsEqual(other *WorkOrder) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the work order's unique identifier.
func (o *WorkOrder) ID() kernel.UUID {
	return o.id
}

// ExternalRef returns the reference the order carries in the ERP, e.g. "OF-2024-0017".
func (o *WorkOrder) ExternalRef() string {
	return o.externalRef
}

// Customer returns the name of the customer the order is produced for.
func (o *WorkOrder) Customer() string {
	return o.customer
}

// Priority returns the scheduling priority. Higher values are more urgent.
func (o *WorkOrder) Priority() int {
	return o.priority
}

// Status returns the current lifecycle status.
func (o *WorkOrder) Status() Status {
	return o.status
}

// LineID returns the assigned line, or nil while unassigned.
func (o *WorkOrder) LineID() *kernel.UUID {
	return o.lineID
}

// MaterialType returns the planning hint recorded by Plan, or "" when none was given.
func (o *WorkOrder) MaterialType() string {
	return o.materialType
}

// EstimatedHours returns the planned effort in hours. Zero means unknown.
func (o *WorkOrder) EstimatedHours() float64 {
	return o.estimatedHours
}

// CreatedAt returns when the order was registered.
func (o *WorkOrder) CreatedAt() time.Time {
	return o.createdAt
}

// UpdatedAt returns when the order last changed line or status.
func (o *WorkOrder) UpdatedAt() time.Time {
	return o.updatedAt
}

// StartedAt returns when the order first entered InProcess.
// Returns nil while the order is Pending.
func (o *WorkOrder) StartedAt() *time.Time {
	return o.startedAt
}

// CompletedAt returns when the order reached Completed, or nil before that.
func (o *WorkOrder) CompletedAt() *time.Time {
	return o.completedAt
}

// ValidateAssign checks, without changing the order, that AssignLine would succeed.
func (o *WorkOrder) ValidateAssign() error {
	if o.lineID != nil {
		return errs.NewPreconditionFailedError(
			"assign line",
			fmt.Sprintf("order %s is already assigned to line %s", o.id, o.lineID),
		)
	}
	return o.status.ValidateAssign()
}

// AssignLine places the order on a line and stamps updatedAt.
//
// Parameters:
//   - lineID: The line chosen by the allocator (must be valid)
//   - now: The assignment time
//
// Returns:
//   - nil on success
//   - a precondition error when the order already has a line or its status
//     does not count toward occupancy
//
// Example:
//
//	if err := o.AssignLine(l.ID(), time.Now()); err != nil {
//	    return err
//	}
func (o *WorkOrder) AssignLine(lineID kernel.UUID, now time.Time) error {
	if err := lineID.Validate(); err != nil {
		return err
	}
	if err := o.ValidateAssign(); err != nil {
		return err
	}

	o.lineID = &lineID
	o.updatedAt = now
	return nil
}

// Plan records the optional planning hints supplied with an allocation request.
// Empty material type and zero hours leave the current values untouched.
func (o *WorkOrder) Plan(materialType string, estimatedHours float64) error {
	if strings.TrimSpace(materialType) == "" {
		materialType = o.materialType
	}
	if estimatedHours == 0 {
		estimatedHours = o.estimatedHours
	}
	return o.setPlanning(materialType, estimatedHours)
}

// Advance moves the order one status forward.
//
// Example:
//
//	tr, err := o.Advance(time.Now())
//	if errors.Is(err, errs.ErrPreconditionFailed) {
//	    // order already delivered
//	}
//	log.Printf("%s -> %s", tr.From, tr.To)
func (o *WorkOrder) Advance(now time.Time) (Transition, error) {
	next, err := o.status.Next()
	if err != nil {
		return Transition{}, err
	}

	tr := Transition{From: o.status, To: next}
	switch next {
	case InProcess:
		if o.startedAt == nil {
			o.startedAt = &now
		}
	case Completed:
		if o.completedAt == nil {
			o.completedAt = &now
		}
	}

	o.status = next
	o.updatedAt = now
	return tr, nil
}

// AdvanceToCompleted advances the order one status at a time until it is
// Completed. It returns every transition made, or none when the order is
// already Completed or later.
func (o *WorkOrder) AdvanceToCompleted(now time.Time) ([]Transition, error) {
	transitions := make([]Transition, 0, 2)
	for o.status < Completed {
		tr, err := o.Advance(now)
		if err != nil {
			return nil, err
		}
		transitions = append(transitions, tr)
	}
	return transitions, nil
}

func (o *WorkOrder) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *WorkOrder) setExternalRef(ref string) error {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return ErrExternalRefIsRequired
	}
	o.externalRef = ref
	return nil
}

func (o *WorkOrder) setCustomer(customer string) error {
	customer = strings.TrimSpace(customer)
	if customer == "" {
		return ErrCustomerIsRequired
	}
	o.customer = customer
	return nil
}

func (o *WorkOrder) setStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	o.status = status
	return nil
}

func (o *WorkOrder) setLineID(lineID *kernel.UUID) error {
	if lineID == nil {
		o.lineID = nil
		return nil
	}
	if err := lineID.Validate(); err != nil {
		return err
	}
	id := *lineID
	o.lineID = &id
	return nil
}

func (o *WorkOrder) setPlanning(materialType string, estimatedHours float64) error {
	if estimatedHours < 0 {
		return errs.NewValueIsInvalidErrorWithCause(
			"estimated hours",
			fmt.Errorf("%g is negative", estimatedHours),
		)
	}
	o.materialType = strings.TrimSpace(materialType)
	o.estimatedHours = estimatedHours
	return nil
}

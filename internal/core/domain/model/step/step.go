package step

import (
	"errors"
	"fmt"
	"maps"
	"net/url"
	"strings"
	"time"

	"production/internal/core/domain/model/kernel"
	"production/internal/pkg/errs"
	"production/internal/pkg/guard"
)

var (
	ErrNameIsRequired       = errs.NewValueIsRequiredError("step name")
	ErrOperatorIsRequired   = errs.NewValueIsRequiredError("operator id")
	ErrStepIsNotConstructed = errors.New("ProcessStep must be created via NewProcessStep or RestoreProcessStep")
)

// Transition describes one status change of a step.
type Transition struct {
	From Status
	To   Status
}

// ProcessStep is one numbered stage of a work order's pipeline.
type ProcessStep struct {
	id          kernel.UUID
	orderID     kernel.UUID
	number      int
	name        string
	status      Status
	operator    *string
	data        map[string]any
	photos      []string
	startedAt   *time.Time
	completedAt *time.Time
	events      []Completed
	guard       guard.ConstructorGuard
}

// NewProcessStep creates a Pending step with no operator, data or photos.
func NewProcessStep(id, orderID kernel.UUID, number int, name string) (*ProcessStep, error) {
	return RestoreProcessStep(Record{
		ID:      id,
		OrderID: orderID,
		Number:  number,
		Name:    name,
		Status:  Pending,
	})
}

// Record carries the persisted state of a step for RestoreProcessStep.
type Record struct {
	ID          kernel.UUID
	OrderID     kernel.UUID
	Number      int
	Name        string
	Status      Status
	Operator    *string
	Data        map[string]any
	Photos      []string
	StartedAt   *time.Time
	CompletedAt *time.Time
}

// RestoreProcessStep rebuilds a step from persistence. Data and photos are
// copied, so later changes to r do not leak into the step.
//
// Parameters:
//   - r: The persisted state of the step
//
// Returns:
//   - *ProcessStep: The restored step with no pending events
//   - error: Joined validation errors for every invalid field
func RestoreProcessStep(r Record) (*ProcessStep, error) {
	s := &ProcessStep{
		data:        make(map[string]any, len(r.Data)),
		photos:      make([]string, 0, len(r.Photos)),
		startedAt:   r.StartedAt,
		completedAt: r.CompletedAt,
		guard:       guard.NewConstructorGuard(),
	}
	maps.Copy(s.data, r.Data)
	s.photos = append(s.photos, r.Photos...)

	if err := errors.Join(
		s.setID(r.ID),
		s.setOrderID(r.OrderID),
		s.setNumber(r.Number),
		s.setName(r.Name),
		s.setStatus(r.Status),
		s.setOperator(r.Operator),
	); err != nil {
		return nil, err
	}

	return s, nil
}

// Validate ensures the step was built through NewProcessStep or RestoreProcessStep.
func (s *ProcessStep) Validate() error {
	if s == nil {
		return ErrStepIsNotConstructed
	}
	return s.guard.Validate(ErrStepIsNotConstructed)
}

// ID returns the step's unique identifier.
func (s *ProcessStep) ID() kernel.UUID {
	return s.id
}

// OrderID returns the work order the step belongs to.
func (s *ProcessStep) OrderID() kernel.UUID {
	return s.orderID
}

// Number returns the 1-based position of the step in its order's pipeline.
func (s *ProcessStep) Number() int {
	return s.number
}

func (s *ProcessStep) Name() string {
	return s.name
}

// Status returns the current step status.
func (s *ProcessStep) Status() Status {
	return s.status
}

// Operator returns the assigned operator id, or nil when unassigned.
func (s *ProcessStep) Operator() *string {
	return s.operator
}

// Data returns a copy of the captured key/value payload.
func (s *ProcessStep) Data() map[string]any {
	return maps.Clone(s.data)
}

// Photos returns the photo URLs in the order they were recorded.
func (s *ProcessStep) Photos() []string {
	return append([]string(nil), s.photos...)
}

// StartedAt returns when the step entered InProcess, or nil while Pending.
func (s *ProcessStep) StartedAt() *time.Time {
	return s.startedAt
}

// CompletedAt returns when the step reached Done, or nil before that.
func (s *ProcessStep) CompletedAt() *time.Time {
	return s.completedAt
}

// IsDone reports whether the step has reached its terminal status.
func (s *ProcessStep) IsDone() bool {
	return s.status == Done
}

// Advance moves the step one status forward.
// previous must be the step numbered Number()-1 of the same order, or nil for step 1.
// Reaching Done records a Completed event, collected with PullEvents.
//
// Parameters:
//   - previous: The preceding step, consulted only when leaving Pending
//   - now: The transition time
//
// Returns:
//   - Transition: The status change that was applied
//   - error: A precondition error when gating forbids the start or the step is already Done
//
// Example:
//
//	tr, err := steps[2].Advance(steps[1], time.Now())
//	if errors.Is(err, errs.ErrPreconditionFailed) {
//	    // step 2 is not done yet
//	}
func (s *ProcessStep) Advance(previous *ProcessStep, now time.Time) (Transition, error) {
	switch s.status {
	case Pending:
		return s.start(previous, now)
	case InProcess:
		return s.finish(now)
	default:
		return Transition{}, errs.NewPreconditionFailedError(
			"advance step",
			fmt.Sprintf("step %d is already %s", s.number, s.status),
		)
	}
}

// CanStart reports whether the gating rule allows this step to start after previous.
func (s *ProcessStep) CanStart(previous *ProcessStep) error {
	if s.status != Pending {
		return errs.NewPreconditionFailedError(
			"start step",
			fmt.Sprintf("step %d is %s", s.number, s.status),
		)
	}
	if s.number == 1 {
		return nil
	}
	if previous == nil || previous.number != s.number-1 || !previous.orderID.IsEqual(s.orderID) {
		return errs.NewPreconditionFailedError(
			"start step",
			fmt.Sprintf("step %d has no preceding step %d", s.number, s.number-1),
		)
	}
	if !previous.IsDone() {
		return errs.NewPreconditionFailedError(
			"start step",
			fmt.Sprintf("step %d is %s, it must be done before step %d starts", previous.number, previous.status, s.number),
		)
	}
	return nil
}

// AssignOperator sets or, with nil, clears the operator. It is allowed in any status.
// The previous operator is returned for the audit trail.
//
// Parameters:
//   - operatorID: The new operator, or nil to unassign (must not be blank)
//
// Returns:
//   - *string: The operator before the change, nil if none was assigned
//   - error: ErrOperatorIsRequired for a blank operator id
//
// Example:
//
//	op := "emp-42"
//	previous, err := s.AssignOperator(&op)
func (s *ProcessStep) AssignOperator(operatorID *string) (*string, error) {
	previous := s.operator
	if err := s.setOperator(operatorID); err != nil {
		return nil, err
	}
	return previous, nil
}

// RecordData merges data into the payload and appends photo URLs. Only
// absolute http(s) URLs are accepted since the binaries live in object storage.
func (s *ProcessStep) RecordData(data map[string]any, photoURLs []string) error {
	for _, raw := range photoURLs {
		if err := validatePhotoURL(raw); err != nil {
			return err
		}
	}

	maps.Copy(s.data, data)
	s.photos = append(s.photos, photoURLs...)
	return nil
}

// PullEvents returns and clears the domain events recorded since the last call.
func (s *ProcessStep) PullEvents() []Completed {
	events := s.events
	s.events = nil
	return events
}

func (s *ProcessStep) start(previous *ProcessStep, now time.Time) (Transition, error) {
	if err := s.CanStart(previous); err != nil {
		return Transition{}, err
	}

	s.status = InProcess
	if s.startedAt == nil {
		s.startedAt = &now
	}
	return Transition{From: Pending, To: InProcess}, nil
}

func (s *ProcessStep) finish(now time.Time) (Transition, error) {
	s.status = Done
	s.completedAt = &now
	s.events = append(s.events, Completed{
		StepID:  s.id,
		OrderID: s.orderID,
		Number:  s.number,
	})
	return Transition{From: InProcess, To: Done}, nil
}

func validatePhotoURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return errs.NewValueIsInvalidErrorWithCause("photo url", err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return errs.NewValueIsInvalidErrorWithCause("photo url", fmt.Errorf("%q is not an absolute http(s) URL", raw))
	}
	return nil
}

func (s *ProcessStep) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	s.id = id
	return nil
}

func (s *ProcessStep) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	s.orderID = orderID
	return nil
}

func (s *ProcessStep) setNumber(number int) error {
	if number < 1 {
		return errs.NewValueIsInvalidErrorWithCause("step number", fmt.Errorf("%d is less than 1", number))
	}
	s.number = number
	return nil
}

func (s *ProcessStep) setName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrNameIsRequired
	}
	s.name = name
	return nil
}

func (s *ProcessStep) setStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	s.status = status
	return nil
}

func (s *ProcessStep) setOperator(operatorID *string) error {
	if operatorID == nil {
		s.operator = nil
		return nil
	}
	op := strings.TrimSpace(*operatorID)
	if op == "" {
		return ErrOperatorIsRequired
	}
	s.operator = &op
	return nil
}

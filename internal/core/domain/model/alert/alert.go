// Package alert provides the Alert entity raised when a production line
// approaches saturation. Alerts are resolved only by explicit operator action.
package alert

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"production/internal/core/domain/model/kernel"
	"production/internal/pkg/errs"
	"production/internal/pkg/guard"
)

// TypeLineSaturation is the alert type raised by the saturation monitor.
const TypeLineSaturation = "line_saturation"

var (
	ErrTypeIsRequired        = errs.NewValueIsRequiredError("alert type")
	ErrMessageIsRequired     = errs.NewValueIsRequiredError("alert message")
	ErrAlertIsNotConstructed = errors.New("Alert must be created via NewAlert, NewSaturationAlert or RestoreAlert")
)

// Alert records a condition that needs a human decision.
type Alert struct {
	id             kernel.UUID
	alertType      string
	severity       Severity
	message        string
	lineID         *kernel.UUID
	lineName       string
	relatedOrderID *kernel.UUID
	occupancy      int
	capacity       int
	createdAt      time.Time
	resolvedAt     *time.Time
	guard          guard.ConstructorGuard
}

// Record carries the persisted state of an alert.
type Record struct {
	ID             kernel.UUID
	Type           string
	Severity       Severity
	Message        string
	LineID         *kernel.UUID
	LineName       string
	RelatedOrderID *kernel.UUID
	Occupancy      int
	Capacity       int
	CreatedAt      time.Time
	ResolvedAt     *time.Time
}

// NewAlert creates an unresolved alert.
func NewAlert(id kernel.UUID, alertType string, severity Severity, message string, now time.Time) (*Alert, error) {
	return RestoreAlert(Record{
		ID:        id,
		Type:      alertType,
		Severity:  severity,
		Message:   message,
		CreatedAt: now,
	})
}

// NewSaturationAlert creates an unresolved line saturation alert for the
// order whose allocation brought the line to occupancy/capacity.
func NewSaturationAlert(
	id kernel.UUID,
	severity Severity,
	lineID kernel.UUID,
	lineName string,
	orderID kernel.UUID,
	occupancy, capacity int,
	now time.Time,
) (*Alert, error) {
	if capacity <= 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause("capacity", fmt.Errorf("%d is not greater than 0", capacity))
	}
	message := fmt.Sprintf("line %s at %d/%d (%.0f%% occupied)",
		lineName, occupancy, capacity, 100*float64(occupancy)/float64(capacity))

	return RestoreAlert(Record{
		ID:             id,
		Type:           TypeLineSaturation,
		Severity:       severity,
		Message:        message,
		LineID:         &lineID,
		LineName:       lineName,
		RelatedOrderID: &orderID,
		Occupancy:      occupancy,
		Capacity:       capacity,
		CreatedAt:      now,
	})
}

// RestoreAlert rebuilds an alert from persistence with the same validation
// as NewAlert. A non-nil ResolvedAt restores a resolved alert.
//
// Returns:
//   - *Alert: The restored alert
//   - error: Joined validation errors for every invalid field
func RestoreAlert(r Record) (*Alert, error) {
	a := &Alert{
		lineID:         r.LineID,
		lineName:       r.LineName,
		relatedOrderID: r.RelatedOrderID,
		occupancy:      r.Occupancy,
		capacity:       r.Capacity,
		createdAt:      r.CreatedAt,
		resolvedAt:     r.ResolvedAt,
		guard:          guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		a.setID(r.ID),
		a.setType(r.Type),
		a.setMessage(r.Message),
		a.setSeverity(r.Severity),
	); err != nil {
		return nil, err
	}

	return a, nil
}

// Validate ensures the alert was built through one of its constructors.
func (a *Alert) Validate() error {
	if a == nil {
		return ErrAlertIsNotConstructed
	}
	return a.guard.Validate(ErrAlertIsNotConstructed)
}

// ID returns the alert's unique identifier.
func (a *Alert) ID() kernel.UUID {
	return a.id
}

// Type returns the alert category, e.g. TypeLineSaturation.
func (a *Alert) Type() string {
	return a.alertType
}

func (a *Alert) Severity() Severity {
	return a.severity
}

// Message returns the human readable description shown on the dashboard.
func (a *Alert) Message() string {
	return a.message
}

// LineID returns the saturated line, or nil for alerts not tied to a line.
func (a *Alert) LineID() *kernel.UUID {
	return a.lineID
}

// LineName returns the line name as it was when the alert was raised.
func (a *Alert) LineName() string {
	return a.lineName
}

// RelatedOrderID returns the order whose allocation raised the alert, if any.
func (a *Alert) RelatedOrderID() *kernel.UUID {
	return a.relatedOrderID
}

// Occupancy returns the line occupancy right after the triggering allocation.
func (a *Alert) Occupancy() int {
	return a.occupancy
}

// Capacity returns the line capacity at the time of the alert.
func (a *Alert) Capacity() int {
	return a.capacity
}

func (a *Alert) CreatedAt() time.Time {
	return a.createdAt
}

// ResolvedAt returns when an operator resolved the alert, or nil while open.
func (a *Alert) ResolvedAt() *time.Time {
	return a.resolvedAt
}

// Rate returns occupancy/capacity, or 0 for alerts not tied to a line.
func (a *Alert) Rate() float64 {
	if a.capacity <= 0 {
		return 0
	}
	return float64(a.occupancy) / float64(a.capacity)
}

// IsResolved reports whether Resolve has been called.
func (a *Alert) IsResolved() bool {
	return a.resolvedAt != nil
}

// Resolve marks the alert as handled. Resolving twice is a precondition failure.
//
// Parameters:
//   - now: The resolution time
//
// Returns:
//   - nil on success
//   - a precondition error when the alert is already resolved
//
// Example:
//
//	if err := a.Resolve(time.Now()); errors.Is(err, errs.ErrPreconditionFailed) {
//	    // someone resolved it first
//	}
func (a *Alert) Resolve(now time.Time) error {
	if a.resolvedAt != nil {
		return errs.NewPreconditionFailedError(
			"resolve alert",
			fmt.Sprintf("alert %s was resolved at %s", a.id, a.resolvedAt.Format(time.RFC3339)),
		)
	}
	a.resolvedAt = &now
	return nil
}

func (a *Alert) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	a.id = id
	return nil
}

func (a *Alert) setType(alertType string) error {
	alertType = strings.TrimSpace(alertType)
	if alertType == "" {
		return ErrTypeIsRequired
	}
	a.alertType = alertType
	return nil
}

func (a *Alert) setMessage(message string) error {
	message = strings.TrimSpace(message)
	if message == "" {
		return ErrMessageIsRequired
	}
	a.message = message
	return nil
}

func (a *Alert) setSeverity(severity Severity) error {
	if err := severity.Validate(); err != nil {
		return err
	}
	a.severity = severity
	return nil
}

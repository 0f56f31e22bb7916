// Package history holds the append-only audit trail of order and step changes.
package history

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"production/internal/core/domain/model/kernel"
	"production/internal/pkg/errs"
	"production/internal/pkg/guard"
)

// EntityType names the kind of object an entry is about.
type EntityType string

const (
	EntityOrder EntityType = "order"
	EntityStep  EntityType = "step"
)

// Action names what happened to the entity.
type Action string

const (
	ActionCreated          Action = "created"
	ActionStatusChanged    Action = "status_changed"
	ActionLineAssigned     Action = "line_assigned"
	ActionOperatorAssigned Action = "operator_assigned"
	ActionDataRecorded     Action = "data_recorded"
)

// SystemActor is recorded for changes made by background repair.
const SystemActor = "system"

var (
	ErrActorIsRequired       = errs.NewValueIsRequiredError("acting user")
	ErrEntryIsNotConstructed = errors.New("Entry must be created via NewEntry or RestoreEntry")
)

// Entry is one immutable audit record.
type Entry struct {
	id         kernel.UUID
	entityType EntityType
	entityID   kernel.UUID
	orderID    kernel.UUID
	action     Action
	oldValue   *string
	newValue   *string
	actor      string
	at         time.Time
	guard      guard.ConstructorGuard
}

// Record carries the persisted state of an entry.
type Record struct {
	ID         kernel.UUID
	EntityType EntityType
	EntityID   kernel.UUID
	OrderID    kernel.UUID
	Action     Action
	OldValue   *string
	NewValue   *string
	Actor      string
	At         time.Time
}

// NewEntry builds an entry with a fresh id.
//
// Example:
//
//	from, to := tr.From.String(), tr.To.String()
//	e, err := history.NewEntry(history.EntityOrder, o.ID(), o.ID(),
//	    history.ActionStatusChanged, &from, &to, actor, now)
func NewEntry(
	entityType EntityType,
	entityID, orderID kernel.UUID,
	action Action,
	oldValue, newValue *string,
	actor string,
	at time.Time,
) (*Entry, error) {
	return RestoreEntry(Record{
		ID:         kernel.NewUUID(),
		EntityType: entityType,
		EntityID:   entityID,
		OrderID:    orderID,
		Action:     action,
		OldValue:   oldValue,
		NewValue:   newValue,
		Actor:      actor,
		At:         at,
	})
}

func RestoreEntry(r Record) (*Entry, error) {
	e := &Entry{
		oldValue: r.OldValue,
		newValue: r.NewValue,
		at:       r.At,
		guard:    guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		e.setID(r.ID),
		e.setEntity(r.EntityType, r.EntityID),
		e.setOrderID(r.OrderID),
		e.setAction(r.Action),
		e.setActor(r.Actor),
	); err != nil {
		return nil, err
	}

	return e, nil
}

func (e *Entry) Validate() error {
	if e == nil {
		return ErrEntryIsNotConstructed
	}
	return e.guard.Validate(ErrEntryIsNotConstructed)
}

func (e *Entry) ID() kernel.UUID {
	return e.id
}

func (e *Entry) EntityType() EntityType {
	return e.entityType
}

func (e *Entry) EntityID() kernel.UUID {
	return e.entityID
}

func (e *Entry) OrderID() kernel.UUID {
	return e.orderID
}

func (e *Entry) Action() Action {
	return e.action
}

func (e *Entry) OldValue() *string {
	return e.oldValue
}

func (e *Entry) NewValue() *string {
	return e.newValue
}

func (e *Entry) Actor() string {
	return e.actor
}

func (e *Entry) At() time.Time {
	return e.at
}

func (e *Entry) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	e.id = id
	return nil
}

func (e *Entry) setEntity(entityType EntityType, entityID kernel.UUID) error {
	if entityType != EntityOrder && entityType != EntityStep {
		return errs.NewValueIsInvalidErrorWithCause("entity type", fmt.Errorf("%q is not order or step", entityType))
	}
	if err := entityID.Validate(); err != nil {
		return err
	}
	e.entityType = entityType
	e.entityID = entityID
	return nil
}

func (e *Entry) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	e.orderID = orderID
	return nil
}

func (e *Entry) setAction(action Action) error {
	switch action {
	case ActionCreated, ActionStatusChanged, ActionLineAssigned, ActionOperatorAssigned, ActionDataRecorded:
		e.action = action
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("history action", fmt.Errorf("%q is not a known action", action))
	}
}

func (e *Entry) setActor(actor string) error {
	actor = strings.TrimSpace(actor)
	if actor == "" {
		return ErrActorIsRequired
	}
	e.actor = actor
	return nil
}

package commands

import (
	"errors"
	"strings"

	"production/internal/core/domain/model/kernel"
	"production/internal/core/domain/model/step"
	"production/internal/pkg/guard"
)

var ErrAssignOperatorCommandIsNotConstructed = errors.New(
	"AssignOperatorCommand must be created via NewAssignOperatorCommand constructor",
)

// AssignOperatorCommand sets or clears the operator of a step. A nil
// operator id unassigns.
type AssignOperatorCommand struct { //nolint:recvcheck //using for validation
	stepID     kernel.UUID
	operatorID *string
	actor      string

	guard guard.ConstructorGuard
}

func NewAssignOperatorCommand(stepID kernel.UUID, operatorID *string, actor string) (AssignOperatorCommand, error) {
	cmd := AssignOperatorCommand{guard: guard.NewConstructorGuard()}

	if err := errors.Join(
		cmd.setStepID(stepID),
		cmd.setOperatorID(operatorID),
		cmd.setActor(actor),
	); err != nil {
		return AssignOperatorCommand{}, err
	}

	return cmd, nil
}

func (c AssignOperatorCommand) Validate() error {
	return c.guard.Validate(ErrAssignOperatorCommandIsNotConstructed)
}

func (c AssignOperatorCommand) StepID() kernel.UUID {
	return c.stepID
}

// OperatorID returns nil for an unassignment.
func (c AssignOperatorCommand) OperatorID() *string {
	return c.operatorID
}

func (c AssignOperatorCommand) Actor() string {
	return c.actor
}

func (c *AssignOperatorCommand) setStepID(stepID kernel.UUID) error {
	if err := stepID.Validate(); err != nil {
		return err
	}
	c.stepID = stepID
	return nil
}

func (c *AssignOperatorCommand) setOperatorID(operatorID *string) error {
	if operatorID == nil {
		c.operatorID = nil
		return nil
	}
	id := strings.TrimSpace(*operatorID)
	if id == "" {
		return step.ErrOperatorIsRequired
	}
	c.operatorID = &id
	return nil
}

func (c *AssignOperatorCommand) setActor(actor string) error {
	a, err := normalizeActor(actor)
	if err != nil {
		return err
	}
	c.actor = a
	return nil
}

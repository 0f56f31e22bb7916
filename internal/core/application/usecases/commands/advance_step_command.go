package commands

import (
	"errors"

	"production/internal/core/domain/model/kernel"
	"production/internal/pkg/guard"
)

var ErrAdvanceStepCommandIsNotConstructed = errors.New(
	"AdvanceStepCommand must be created via NewAdvanceStepCommand constructor",
)

// AdvanceStepCommand starts a pending step or finishes an in-process one.
type AdvanceStepCommand struct { //nolint:recvcheck //using for validation
	stepID kernel.UUID
	actor  string

	guard guard.ConstructorGuard
}

func NewAdvanceStepCommand(stepID kernel.UUID, actor string) (AdvanceStepCommand, error) {
	cmd := AdvanceStepCommand{guard: guard.NewConstructorGuard()}

	if err := errors.Join(
		cmd.setStepID(stepID),
		cmd.setActor(actor),
	); err != nil {
		return AdvanceStepCommand{}, err
	}

	return cmd, nil
}

func (c AdvanceStepCommand) Validate() error {
	return c.guard.Validate(ErrAdvanceStepCommandIsNotConstructed)
}

func (c AdvanceStepCommand) StepID() kernel.UUID {
	return c.stepID
}

func (c AdvanceStepCommand) Actor() string {
	return c.actor
}

func (c *AdvanceStepCommand) setStepID(stepID kernel.UUID) error {
	if err := stepID.Validate(); err != nil {
		return err
	}
	c.stepID = stepID
	return nil
}

func (c *AdvanceStepCommand) setActor(actor string) error {
	a, err := normalizeActor(actor)
	if err != nil {
		return err
	}
	c.actor = a
	return nil
}

package commands

import (
	"errors"

	"production/internal/core/domain/model/kernel"
	"production/internal/core/domain/model/line"
	"production/internal/pkg/guard"
)

var ErrChangeLineStatusCommandIsNotConstructed = errors.New(
	"ChangeLineStatusCommand must be created via NewChangeLineStatusCommand constructor",
)

// ChangeLineStatusCommand pauses, resumes or faults a line. Orders already on
// the line stay where they are.
type ChangeLineStatusCommand struct { //nolint:recvcheck //using for validation
	lineID kernel.UUID
	status line.Status

	guard guard.ConstructorGuard
}

// NewChangeLineStatusCommand accepts the wire names "active", "paused" and "error".
func NewChangeLineStatusCommand(lineID kernel.UUID, status string) (ChangeLineStatusCommand, error) {
	cmd := ChangeLineStatusCommand{guard: guard.NewConstructorGuard()}

	if err := errors.Join(
		cmd.setLineID(lineID),
		cmd.setStatus(status),
	); err != nil {
		return ChangeLineStatusCommand{}, err
	}

	return cmd, nil
}

func (c ChangeLineStatusCommand) Validate() error {
	return c.guard.Validate(ErrChangeLineStatusCommandIsNotConstructed)
}

func (c ChangeLineStatusCommand) LineID() kernel.UUID {
	return c.lineID
}

func (c ChangeLineStatusCommand) Status() line.Status {
	return c.status
}

func (c *ChangeLineStatusCommand) setLineID(lineID kernel.UUID) error {
	if err := lineID.Validate(); err != nil {
		return err
	}
	c.lineID = lineID
	return nil
}

func (c *ChangeLineStatusCommand) setStatus(status string) error {
	s, err := line.ParseStatus(status)
	if err != nil {
		return err
	}
	c.status = s
	return nil
}

package commands

import (
	"errors"
	"fmt"
	"strings"

	"production/internal/core/domain/model/line"
	"production/internal/pkg/errs"
	"production/internal/pkg/guard"
)

var ErrCreateLineCommandIsNotConstructed = errors.New(
	"CreateLineCommand must be created via NewCreateLineCommand constructor",
)

// CreateLineCommand registers a new production line.
//
// Example:
//
//	cmd, err := NewCreateLineCommand("Nave 1", 10)
//	if err != nil {
//	    return err
//	}
//	id, err := handler.Handle(ctx, cmd)
type CreateLineCommand struct { //nolint:recvcheck //using for validation
	name     string
	capacity int

	guard guard.ConstructorGuard
}

func NewCreateLineCommand(name string, capacity int) (CreateLineCommand, error) {
	cmd := CreateLineCommand{guard: guard.NewConstructorGuard()}

	if err := errors.Join(
		cmd.setName(name),
		cmd.setCapacity(capacity),
	); err != nil {
		return CreateLineCommand{}, err
	}

	return cmd, nil
}

func (c CreateLineCommand) Validate() error {
	return c.guard.Validate(ErrCreateLineCommandIsNotConstructed)
}

func (c CreateLineCommand) Name() string {
	return c.name
}

func (c CreateLineCommand) Capacity() int {
	return c.capacity
}

func (c *CreateLineCommand) setName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return line.ErrNameIsRequired
	}
	c.name = name
	return nil
}

func (c *CreateLineCommand) setCapacity(capacity int) error {
	if capacity <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("capacity", fmt.Errorf("%d is not greater than 0", capacity))
	}
	c.capacity = capacity
	return nil
}

package commands

import (
	"errors"
	"fmt"
	"strings"

	"production/internal/core/domain/model/kernel"
	"production/internal/pkg/errs"
	"production/internal/pkg/guard"
)

var ErrAllocateOrderCommandIsNotConstructed = errors.New(
	"AllocateOrderCommand must be created via NewAllocateOrderCommand constructor",
)

// AllocateOrderCommand asks the core to place an unassigned work order on the
// best production line.
//
// Example:
//
//	priority := 2
//	cmd, err := NewAllocateOrderCommand(orderID, &priority, "steel", 6.5, userID)
//	if err != nil {
//	    return err
//	}
//	res, err := handler.Handle(ctx, cmd)
type AllocateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID        kernel.UUID
	priority       int
	materialType   string
	estimatedHours float64
	actor          string

	guard guard.ConstructorGuard
}

// NewAllocateOrderCommand treats a nil priority as 0. materialType and
// estimatedHours are optional planning hints stored on the order.
func NewAllocateOrderCommand(
	orderID kernel.UUID,
	priority *int,
	materialType string,
	estimatedHours float64,
	actor string,
) (AllocateOrderCommand, error) {
	cmd := AllocateOrderCommand{
		materialType: strings.TrimSpace(materialType),
		guard:        guard.NewConstructorGuard(),
	}
	if priority != nil {
		cmd.priority = *priority
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setEstimatedHours(estimatedHours),
		cmd.setActor(actor),
	); err != nil {
		return AllocateOrderCommand{}, err
	}

	return cmd, nil
}

func (c AllocateOrderCommand) Validate() error {
	return c.guard.Validate(ErrAllocateOrderCommandIsNotConstructed)
}

func (c AllocateOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c AllocateOrderCommand) Priority() int {
	return c.priority
}

func (c AllocateOrderCommand) MaterialType() string {
	return c.materialType
}

func (c AllocateOrderCommand) EstimatedHours() float64 {
	return c.estimatedHours
}

func (c AllocateOrderCommand) Actor() string {
	return c.actor
}

func (c *AllocateOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}

func (c *AllocateOrderCommand) setEstimatedHours(hours float64) error {
	if hours < 0 {
		return errs.NewValueIsInvalidErrorWithCause("estimated hours", fmt.Errorf("%g is negative", hours))
	}
	c.estimatedHours = hours
	return nil
}

func (c *AllocateOrderCommand) setActor(actor string) error {
	a, err := normalizeActor(actor)
	if err != nil {
		return err
	}
	c.actor = a
	return nil
}

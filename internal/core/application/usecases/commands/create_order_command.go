package commands

import (
	"errors"
	"strings"

	"production/internal/core/domain/model/order"
	"production/internal/pkg/guard"
)

var ErrCreateOrderCommandIsNotConstructed = errors.New(
	"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
)

// CreateOrderCommand represents a request to register a new work order.
// The order starts pending and unassigned with one pending step per pipeline stage.
//
// Example:
//
//	cmd, err := NewCreateOrderCommand("OF-2024-0017", "Acme", 2, userID)
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
//
//	orderID, err := handler.Handle(ctx, cmd)
//	if err != nil {
//	    return fmt.Errorf("failed to create order: %w", err)
//	}
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	externalRef string
	customer    string
	priority    int
	actor       string

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand validates the reference, the customer and the acting user.
func NewCreateOrderCommand(externalRef, customer string, priority int, actor string) (CreateOrderCommand, error) {
	orderCommand := CreateOrderCommand{
		priority: priority,
		guard:    guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		orderCommand.setExternalRef(externalRef),
		orderCommand.setCustomer(customer),
		orderCommand.setActor(actor),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return orderCommand, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

func (c CreateOrderCommand) ExternalRef() string {
	return c.externalRef
}

func (c CreateOrderCommand) Customer() string {
	return c.customer
}

func (c CreateOrderCommand) Priority() int {
	return c.priority
}

func (c CreateOrderCommand) Actor() string {
	return c.actor
}

func (c *CreateOrderCommand) setExternalRef(ref string) error {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return order.ErrExternalRefIsRequired
	}
	c.externalRef = ref
	return nil
}

func (c *CreateOrderCommand) setCustomer(customer string) error {
	customer = strings.TrimSpace(customer)
	if customer == "" {
		return order.ErrCustomerIsRequired
	}
	c.customer = customer
	return nil
}

func (c *CreateOrderCommand) setActor(actor string) error {
	a, err := normalizeActor(actor)
	if err != nil {
		return err
	}
	c.actor = a
	return nil
}

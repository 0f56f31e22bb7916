package commands

import (
	"errors"

	"production/internal/core/domain/model/kernel"
	"production/internal/pkg/guard"
)

var ErrResolveAlertCommandIsNotConstructed = errors.New(
	"ResolveAlertCommand must be created via NewResolveAlertCommand constructor",
)

// ResolveAlertCommand records the operator decision that closes an alert.
type ResolveAlertCommand struct { //nolint:recvcheck //using for validation
	alertID kernel.UUID

	guard guard.ConstructorGuard
}

func NewResolveAlertCommand(alertID kernel.UUID) (ResolveAlertCommand, error) {
	if err := alertID.Validate(); err != nil {
		return ResolveAlertCommand{}, err
	}
	return ResolveAlertCommand{alertID: alertID, guard: guard.NewConstructorGuard()}, nil
}

func (c ResolveAlertCommand) Validate() error {
	return c.guard.Validate(ErrResolveAlertCommandIsNotConstructed)
}

func (c ResolveAlertCommand) AlertID() kernel.UUID {
	return c.alertID
}

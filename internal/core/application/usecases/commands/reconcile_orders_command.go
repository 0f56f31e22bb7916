package commands

import (
	"errors"

	"production/internal/pkg/guard"
)

var ErrReconcileOrdersCommandIsNotConstructed = errors.New(
	"ReconcileOrdersCommand must be created via NewReconcileOrdersCommand constructor",
)

// ReconcileOrdersCommand repairs orders whose steps are all done but whose
// status never reached completed, for example after a crash.
type ReconcileOrdersCommand struct {
	guard guard.ConstructorGuard
}

func NewReconcileOrdersCommand() ReconcileOrdersCommand {
	return ReconcileOrdersCommand{guard: guard.NewConstructorGuard()}
}

func (c ReconcileOrdersCommand) Validate() error {
	return c.guard.Validate(ErrReconcileOrdersCommandIsNotConstructed)
}

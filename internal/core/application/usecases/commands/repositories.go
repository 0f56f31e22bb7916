// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS architecture.
// All commands follow a consistent pattern: validation, transaction management, and persistence.
package commands

import (
	"context"

	"production/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
// These abstractions ensure data consistency across aggregate boundaries.
type (
	// TxManager handles database transaction lifecycle.
	// Ensures atomic operations across multiple repository calls.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// LineRepoFactory provides access to the line repository within a transaction.
	LineRepoFactory interface {
		LineRepository() ports.LineRepository
	}

	// OrderRepoFactory provides access to the order repository within a transaction.
	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	// StepRepoFactory provides access to the step repository within a transaction.
	StepRepoFactory interface {
		StepRepository() ports.StepRepository
	}

	// AlertRepoFactory provides access to the alert repository within a transaction.
	AlertRepoFactory interface {
		AlertRepository() ports.AlertRepository
	}

	// HistoryRepoFactory provides access to the history ledger within a transaction.
	HistoryRepoFactory interface {
		HistoryRepository() ports.HistoryRepository
	}

	// LineUoW manages transactions for line administration.
	LineUoW interface {
		TxManager
		LineRepoFactory
	}

	// LineUoWFactory creates new line unit of work instances.
	LineUoWFactory interface {
		Create() LineUoW
	}

	// AlertUoW manages transactions for alert-only operations.
	AlertUoW interface {
		TxManager
		AlertRepoFactory
	}

	// AlertUoWFactory creates new alert unit of work instances.
	AlertUoWFactory interface {
		Create() AlertUoW
	}

	// UoW manages transactions that span lines, orders, steps, alerts and the
	// history ledger. Allocation and the order lifecycle use it.
	//
	// Example:
	//   uow := factory.Create()
	//   err := uow.Begin(ctx)
	//   defer uow.Rollback(ctx)
	//
	//   lines, err := uow.LineRepository().GetAllForAllocation(ctx)
	//   // ... perform operations
	//
	//   err = uow.Commit(ctx)
	UoW interface {
		TxManager
		LineRepoFactory
		OrderRepoFactory
		StepRepoFactory
		AlertRepoFactory
		HistoryRepoFactory
	}

	// UoWFactory creates new unit of work instances for cross-aggregate operations.
	UoWFactory interface {
		Create() UoW
	}
)

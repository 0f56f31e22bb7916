package commands

import (
	"context"
	"time"

	"production/internal/core/domain/model/history"
	"production/internal/core/domain/model/step"
)

// AssignOperatorCommandHandler changes a step's operator in any step status
// and logs the previous and new operator. It returns the updated step.
type AssignOperatorCommandHandler struct {
	uowFactory UoWFactory
}

func NewAssignOperatorCommandHandler(uowFactory UoWFactory) AssignOperatorCommandHandler {
	return AssignOperatorCommandHandler{uowFactory: uowFactory}
}

func (h AssignOperatorCommandHandler) Handle(ctx context.Context, cmd AssignOperatorCommand) (*step.ProcessStep, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	stepRepo := uow.StepRepository()
	s, err := stepRepo.Get(ctx, cmd.StepID())
	if err != nil {
		return nil, err
	}

	previous, err := s.AssignOperator(cmd.OperatorID())
	if err != nil {
		return nil, err
	}

	if err = stepRepo.Update(ctx, s); err != nil {
		return nil, err
	}

	entry, err := stepEntry(s, history.ActionOperatorAssigned, previous, cmd.OperatorID(), cmd.Actor(), time.Now().UTC())
	if err != nil {
		return nil, err
	}
	if err = uow.HistoryRepository().Append(ctx, entry); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return s, nil
}

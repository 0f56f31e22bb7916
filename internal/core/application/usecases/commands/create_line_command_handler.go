package commands

import (
	"context"

	"production/internal/core/domain/model/kernel"
	"production/internal/core/domain/model/line"
)

// CreateLineCommandHandler persists a new active line.
type CreateLineCommandHandler struct {
	uowFactory LineUoWFactory
}

func NewCreateLineCommandHandler(uowFactory LineUoWFactory) CreateLineCommandHandler {
	return CreateLineCommandHandler{uowFactory: uowFactory}
}

// Handle returns the id of the created line.
func (h CreateLineCommandHandler) Handle(ctx context.Context, cmd CreateLineCommand) (kernel.UUID, error) {
	if err := cmd.Validate(); err != nil {
		return kernel.UUID{}, err
	}

	l, err := line.NewLine(kernel.NewUUID(), cmd.Name(), cmd.Capacity())
	if err != nil {
		return kernel.UUID{}, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return kernel.UUID{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.LineRepository().Add(ctx, l); err != nil {
		return kernel.UUID{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return kernel.UUID{}, err
	}

	return l.ID(), nil
}

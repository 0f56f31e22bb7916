package commands

import (
	"context"
)

type ChangeLineStatusCommandHandler struct {
	uowFactory LineUoWFactory
}

func NewChangeLineStatusCommandHandler(uowFactory LineUoWFactory) ChangeLineStatusCommandHandler {
	return ChangeLineStatusCommandHandler{uowFactory: uowFactory}
}

func (h ChangeLineStatusCommandHandler) Handle(ctx context.Context, cmd ChangeLineStatusCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.LineRepository()
	l, err := repo.Get(ctx, cmd.LineID())
	if err != nil {
		return err
	}

	if err = l.ChangeStatus(cmd.Status()); err != nil {
		return err
	}

	if err = repo.Update(ctx, l); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

package commands

import (
	"context"
	"time"
)

type ResolveAlertCommandHandler struct {
	uowFactory AlertUoWFactory
}

func NewResolveAlertCommandHandler(uowFactory AlertUoWFactory) ResolveAlertCommandHandler {
	return ResolveAlertCommandHandler{uowFactory: uowFactory}
}

func (h ResolveAlertCommandHandler) Handle(ctx context.Context, cmd ResolveAlertCommand) error {
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

	repo := uow.AlertRepository()
	a, err := repo.Get(ctx, cmd.AlertID())
	if err != nil {
		return err
	}

	if err = a.Resolve(time.Now().UTC()); err != nil {
		return err
	}

	if err = repo.Update(ctx, a); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

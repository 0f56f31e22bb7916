package commands

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"strings"
	"time"

	"production/internal/core/domain/model/history"
)

type RecordStepDataCommandHandler struct {
	uowFactory UoWFactory
}

func NewRecordStepDataCommandHandler(uowFactory UoWFactory) RecordStepDataCommandHandler {
	return RecordStepDataCommandHandler{uowFactory: uowFactory}
}

// Handle records the data regardless of the step status. The history entry
// lists the keys written and the number of photos added.
func (h RecordStepDataCommandHandler) Handle(ctx context.Context, cmd RecordStepDataCommand) error {
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

	stepRepo := uow.StepRepository()
	s, err := stepRepo.Get(ctx, cmd.StepID())
	if err != nil {
		return err
	}

	data, photos := cmd.Data(), cmd.PhotoURLs()
	if err = s.RecordData(data, photos); err != nil {
		return err
	}

	if err = stepRepo.Update(ctx, s); err != nil {
		return err
	}

	summary := fmt.Sprintf("keys=[%s] photos=%d", strings.Join(slices.Sorted(maps.Keys(data)), ","), len(photos))
	entry, err := stepEntry(s, history.ActionDataRecorded, nil, &summary, cmd.Actor(), time.Now().UTC())
	if err != nil {
		return err
	}
	if err = uow.HistoryRepository().Append(ctx, entry); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

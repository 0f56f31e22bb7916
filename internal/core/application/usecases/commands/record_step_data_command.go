package commands

import (
	"errors"
	"maps"
	"slices"

	"production/internal/core/domain/model/kernel"
	"production/internal/pkg/errs"
	"production/internal/pkg/guard"
)

var ErrRecordStepDataCommandIsNotConstructed = errors.New(
	"RecordStepDataCommand must be created via NewRecordStepDataCommand constructor",
)

// RecordStepDataCommand merges measurements into a step and attaches photo
// URLs. The photos themselves live in object storage.
type RecordStepDataCommand struct { //nolint:recvcheck //using for validation
	stepID    kernel.UUID
	data      map[string]any
	photoURLs []string
	actor     string

	guard guard.ConstructorGuard
}

func NewRecordStepDataCommand(
	stepID kernel.UUID,
	data map[string]any,
	photoURLs []string,
	actor string,
) (RecordStepDataCommand, error) {
	cmd := RecordStepDataCommand{
		data:      maps.Clone(data),
		photoURLs: slices.Clone(photoURLs),
		guard:     guard.NewConstructorGuard(),
	}

	var empty error
	if len(data) == 0 && len(photoURLs) == 0 {
		empty = errs.NewValueIsRequiredError("step data or photo urls")
	}

	if err := errors.Join(
		cmd.setStepID(stepID),
		empty,
		cmd.setActor(actor),
	); err != nil {
		return RecordStepDataCommand{}, err
	}

	return cmd, nil
}

func (c RecordStepDataCommand) Validate() error {
	return c.guard.Validate(ErrRecordStepDataCommandIsNotConstructed)
}

func (c RecordStepDataCommand) StepID() kernel.UUID {
	return c.stepID
}

func (c RecordStepDataCommand) Data() map[string]any {
	return maps.Clone(c.data)
}

func (c RecordStepDataCommand) PhotoURLs() []string {
	return slices.Clone(c.photoURLs)
}

func (c RecordStepDataCommand) Actor() string {
	return c.actor
}

func (c *RecordStepDataCommand) setStepID(stepID kernel.UUID) error {
	if err := stepID.Validate(); err != nil {
		return err
	}
	c.stepID = stepID
	return nil
}

func (c *RecordStepDataCommand) setActor(actor string) error {
	a, err := normalizeActor(actor)
	if err != nil {
		return err
	}
	c.actor = a
	return nil
}

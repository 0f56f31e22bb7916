package commands

import (
	"strings"
	"time"

	"production/internal/core/domain/model/history"
	"production/internal/core/domain/model/kernel"
	"production/internal/core/domain/model/order"
	"production/internal/core/domain/model/step"
)

func normalizeActor(actor string) (string, error) {
	actor = strings.TrimSpace(actor)
	if actor == "" {
		return "", history.ErrActorIsRequired
	}
	return actor, nil
}

func orderTransitionEntries(o *order.WorkOrder, transitions []order.Transition, actor string, now time.Time) ([]*history.Entry, error) {
	entries := make([]*history.Entry, 0, len(transitions))
	for _, tr := range transitions {
		from, to := tr.From.String(), tr.To.String()
		e, err := history.NewEntry(history.EntityOrder, o.ID(), o.ID(), history.ActionStatusChanged, &from, &to, actor, now)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, nil
}

func stepEntry(
	s *step.ProcessStep,
	action history.Action,
	oldValue, newValue *string,
	actor string,
	now time.Time,
) (*history.Entry, error) {
	return history.NewEntry(history.EntityStep, s.ID(), s.OrderID(), action, oldValue, newValue, actor, now)
}

func uuidOrNil(id *kernel.UUID) *string {
	if id == nil {
		return nil
	}
	s := id.String()
	return &s
}

package queries

import (
	"errors"
	"time"

	"production/internal/core/domain/model/kernel"
	"production/internal/pkg/guard"
)

var ErrGetUnresolvedAlertsQueryIsNotConstructed = errors.New(
	"GetUnresolvedAlertsQuery must be created via NewGetUnresolvedAlertsQuery constructor",
)

// GetUnresolvedAlertsQuery lists alerts nobody has resolved yet, newest first.
type GetUnresolvedAlertsQuery struct {
	guard guard.ConstructorGuard
}

func NewGetUnresolvedAlertsQuery() GetUnresolvedAlertsQuery {
	return GetUnresolvedAlertsQuery{guard: guard.NewConstructorGuard()}
}

func (q GetUnresolvedAlertsQuery) Validate() error {
	return q.guard.Validate(ErrGetUnresolvedAlertsQueryIsNotConstructed)
}

type AlertResponse struct {
	ID             kernel.UUID
	Type           string
	Severity       string
	Message        string
	LineID         *kernel.UUID
	LineName       string
	RelatedOrderID *kernel.UUID
	Occupancy      int
	Capacity       int
	Rate           float64
	CreatedAt      time.Time
}

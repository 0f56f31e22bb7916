package queries

import (
	"context"

	"production/internal/core/domain/model/alert"
	"production/internal/core/domain/model/kernel"
	"production/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type GetUnresolvedAlertsQueryHandler struct {
	db *gorm.DB
}

func NewGetUnresolvedAlertsQueryHandler(db *gorm.DB) GetUnresolvedAlertsQueryHandler {
	return GetUnresolvedAlertsQueryHandler{db: db}
}

func (h GetUnresolvedAlertsQueryHandler) Handle(
	ctx context.Context,
	query GetUnresolvedAlertsQuery,
) ([]AlertResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	alerts := make([]AlertResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			type,
			severity,
			message,
			line_id,
			line_name,
			related_order_id,
			occupancy,
			capacity,
			created_at
		FROM alerts
		WHERE resolved_at IS NULL
		ORDER BY created_at DESC, id
	`).Rows()
	if err != nil {
		return nil, errs.NewPersistenceError("query unresolved alerts", err)
	}
	defer rows.Close()

	for rows.Next() {
		var resp AlertResponse
		var id uuid.UUID
		var lineID, orderID uuid.NullUUID
		var severity int

		err = rows.Scan(
			&id,
			&resp.Type,
			&severity,
			&resp.Message,
			&lineID,
			&resp.LineName,
			&orderID,
			&resp.Occupancy,
			&resp.Capacity,
			&resp.CreatedAt,
		)
		if err != nil {
			return nil, errs.NewPersistenceError("scan unresolved alerts", err)
		}

		if resp.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return nil, err
		}
		if resp.LineID, err = nullableUUID(lineID); err != nil {
			return nil, err
		}
		if resp.RelatedOrderID, err = nullableUUID(orderID); err != nil {
			return nil, err
		}
		resp.Severity = alert.Severity(severity).String()
		if resp.Capacity > 0 {
			resp.Rate = float64(resp.Occupancy) / float64(resp.Capacity)
		}
		alerts = append(alerts, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, errs.NewPersistenceError("query unresolved alerts", err)
	}

	return alerts, nil
}

func nullableUUID(v uuid.NullUUID) (*kernel.UUID, error) {
	if !v.Valid {
		return nil, nil //nolint:nilnil // NULL column
	}
	id, err := kernel.UUIDFromBytes(v.UUID[:])
	if err != nil {
		return nil, err
	}
	return &id, nil
}

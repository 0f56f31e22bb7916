package queries

import (
	"context"

	"production/internal/core/domain/model/kernel"
	"production/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type GetOrderHistoryQueryHandler struct {
	db *gorm.DB
}

func NewGetOrderHistoryQueryHandler(db *gorm.DB) GetOrderHistoryQueryHandler {
	return GetOrderHistoryQueryHandler{db: db}
}

// Handle returns the entries in the order they were written. An unknown
// order is reported as errs.ErrObjectNotFound.
func (h GetOrderHistoryQueryHandler) Handle(
	ctx context.Context,
	query GetOrderHistoryQuery,
) ([]HistoryEntryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	entries := make([]HistoryEntryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			entity_type,
			entity_id,
			action,
			old_value,
			new_value,
			actor,
			at
		FROM history_entries
		WHERE order_id = ?
		ORDER BY seq
	`, query.OrderID().Bytes()).Rows()
	if err != nil {
		return nil, errs.NewPersistenceError("query order history", err)
	}
	defer rows.Close()

	for rows.Next() {
		var entry HistoryEntryResponse
		var id, entityID uuid.UUID

		err = rows.Scan(
			&id,
			&entry.EntityType,
			&entityID,
			&entry.Action,
			&entry.OldValue,
			&entry.NewValue,
			&entry.Actor,
			&entry.At,
		)
		if err != nil {
			return nil, errs.NewPersistenceError("scan order history", err)
		}

		if entry.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return nil, err
		}
		if entry.EntityID, err = kernel.UUIDFromBytes(entityID[:]); err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}

	if err = rows.Err(); err != nil {
		return nil, errs.NewPersistenceError("query order history", err)
	}

	if len(entries) == 0 {
		if err = orderExists(ctx, h.db, query.OrderID()); err != nil {
			return nil, err
		}
	}

	return entries, nil
}

func orderExists(ctx context.Context, db *gorm.DB, id kernel.UUID) error {
	var count int64
	if err := db.WithContext(ctx).Raw(`SELECT COUNT(*) FROM orders WHERE id = ?`, id.Bytes()).Scan(&count).Error; err != nil {
		return errs.NewPersistenceError("find order", err)
	}
	if count == 0 {
		return errs.NewObjectNotFoundError("order", id)
	}
	return nil
}

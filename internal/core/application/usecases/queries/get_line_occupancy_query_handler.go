package queries

import (
	"context"

	"production/internal/core/domain/model/kernel"
	"production/internal/core/domain/model/line"
	"production/internal/core/domain/model/order"
	"production/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type GetLineOccupancyQueryHandler struct {
	db *gorm.DB
}

func NewGetLineOccupancyQueryHandler(db *gorm.DB) GetLineOccupancyQueryHandler {
	return GetLineOccupancyQueryHandler{db: db}
}

// Handle returns the lines sorted by name, then id.
func (h GetLineOccupancyQueryHandler) Handle(
	ctx context.Context,
	query GetLineOccupancyQuery,
) ([]LineOccupancyResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	lines := make([]LineOccupancyResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			l.id,
			l.name,
			l.status,
			l.capacity,
			COUNT(o.id) AS occupancy
		FROM lines l
		LEFT JOIN orders o
			ON o.line_id = l.id AND o.status IN (?, ?)
		GROUP BY l.id, l.name, l.status, l.capacity
		ORDER BY l.name, l.id
	`, int(order.Pending), int(order.InProcess)).Rows()
	if err != nil {
		return nil, errs.NewPersistenceError("query line occupancy", err)
	}
	defer rows.Close()

	for rows.Next() {
		var resp LineOccupancyResponse
		var id uuid.UUID
		var status int

		if err = rows.Scan(&id, &resp.Name, &status, &resp.Capacity, &resp.Occupancy); err != nil {
			return nil, errs.NewPersistenceError("scan line occupancy", err)
		}

		lineID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		resp.ID = lineID
		resp.Status = line.Status(status).String()
		if resp.Capacity > 0 {
			resp.OccupancyRate = float64(resp.Occupancy) / float64(resp.Capacity)
		}
		lines = append(lines, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, errs.NewPersistenceError("query line occupancy", err)
	}

	return lines, nil
}

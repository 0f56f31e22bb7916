package queries

import (
	"context"
	"encoding/json"

	"production/internal/core/domain/model/kernel"
	"production/internal/core/domain/model/step"
	"production/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

type GetOrderStepsQueryHandler struct {
	db *gorm.DB
}

func NewGetOrderStepsQueryHandler(db *gorm.DB) GetOrderStepsQueryHandler {
	return GetOrderStepsQueryHandler{db: db}
}

// Handle returns the steps sorted by step number.
func (h GetOrderStepsQueryHandler) Handle(ctx context.Context, query GetOrderStepsQuery) ([]StepResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	steps := make([]StepResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			number,
			name,
			status,
			operator,
			data,
			photos,
			started_at,
			completed_at
		FROM process_steps
		WHERE order_id = ?
		ORDER BY number
	`, query.OrderID().Bytes()).Rows()
	if err != nil {
		return nil, errs.NewPersistenceError("query order steps", err)
	}
	defer rows.Close()

	for rows.Next() {
		var resp StepResponse
		var id uuid.UUID
		var status int
		var data []byte
		var photos pq.StringArray

		err = rows.Scan(
			&id,
			&resp.Number,
			&resp.Name,
			&status,
			&resp.Operator,
			&data,
			&photos,
			&resp.StartedAt,
			&resp.CompletedAt,
		)
		if err != nil {
			return nil, errs.NewPersistenceError("scan order steps", err)
		}

		if resp.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return nil, err
		}
		resp.Status = step.Status(status).String()
		resp.Data = make(map[string]any)
		if len(data) > 0 {
			if err = json.Unmarshal(data, &resp.Data); err != nil {
				return nil, errs.NewPersistenceError("decode step data", err)
			}
		}
		resp.Photos = []string(photos)
		if resp.Photos == nil {
			resp.Photos = []string{}
		}
		steps = append(steps, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, errs.NewPersistenceError("query order steps", err)
	}

	if len(steps) == 0 {
		if err = orderExists(ctx, h.db, query.OrderID()); err != nil {
			return nil, err
		}
	}

	return steps, nil
}

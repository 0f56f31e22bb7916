// Package orderrepo persists work orders and answers the occupancy and
// crash-repair lookups the allocator and the reconciler rely on.
package orderrepo

import (
	"time"

	"production/internal/core/domain/model/kernel"
	"production/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderDTO is the row of the orders table. Timestamps are owned by the
// domain, so GORM's automatic time tracking is off.
type OrderDTO struct {
	ID             uuid.UUID  `gorm:"type:uuid;primaryKey"`
	ExternalRef    string     `gorm:"not null;index"`
	Customer       string     `gorm:"not null"`
	Priority       int        `gorm:"not null;default:0"`
	Status         int        `gorm:"not null;index"`
	LineID         *uuid.UUID `gorm:"type:uuid;index"`
	MaterialType   string
	EstimatedHours float64
	CreatedAt      time.Time `gorm:"not null;autoCreateTime:false"`
	UpdatedAt      time.Time `gorm:"not null;autoUpdateTime:false"`
	StartedAt      *time.Time
	CompletedAt    *time.Time
}

func (OrderDTO) TableName() string {
	return "orders"
}

func fromDomain(o *order.WorkOrder) OrderDTO {
	var lineID *uuid.UUID
	if id := o.LineID(); id != nil {
		raw := id.Bytes()
		lineID = &raw
	}

	return OrderDTO{
		ID:             o.ID().Bytes(),
		ExternalRef:    o.ExternalRef(),
		Customer:       o.Customer(),
		Priority:       o.Priority(),
		Status:         int(o.Status()),
		LineID:         lineID,
		MaterialType:   o.MaterialType(),
		EstimatedHours: o.EstimatedHours(),
		CreatedAt:      o.CreatedAt(),
		UpdatedAt:      o.UpdatedAt(),
		StartedAt:      o.StartedAt(),
		CompletedAt:    o.CompletedAt(),
	}
}

func toDomain(dto OrderDTO) (*order.WorkOrder, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	var lineID *kernel.UUID
	if dto.LineID != nil {
		lID, lineErr := kernel.UUIDFromBytes((*dto.LineID)[:])
		if lineErr != nil {
			return nil, lineErr
		}
		lineID = &lID
	}

	return order.RestoreWorkOrder(order.Record{
		ID:             id,
		ExternalRef:    dto.ExternalRef,
		Customer:       dto.Customer,
		Priority:       dto.Priority,
		Status:         order.Status(dto.Status),
		LineID:         lineID,
		MaterialType:   dto.MaterialType,
		EstimatedHours: dto.EstimatedHours,
		CreatedAt:      dto.CreatedAt,
		UpdatedAt:      dto.UpdatedAt,
		StartedAt:      dto.StartedAt,
		CompletedAt:    dto.CompletedAt,
	})
}

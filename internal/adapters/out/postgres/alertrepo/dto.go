// Package alertrepo persists saturation alerts.
package alertrepo

import (
	"time"

	"production/internal/core/domain/model/alert"
	"production/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

type AlertDTO struct {
	ID             uuid.UUID  `gorm:"type:uuid;primaryKey"`
	Type           string     `gorm:"not null"`
	Severity       int        `gorm:"not null"`
	Message        string     `gorm:"not null"`
	LineID         *uuid.UUID `gorm:"type:uuid;index"`
	LineName       string
	RelatedOrderID *uuid.UUID `gorm:"type:uuid;index"`
	Occupancy      int
	Capacity       int
	CreatedAt      time.Time  `gorm:"not null;autoCreateTime:false;index"`
	ResolvedAt     *time.Time `gorm:"index"`
}

func (AlertDTO) TableName() string {
	return "alerts"
}

func optionalBytes(id *kernel.UUID) *uuid.UUID {
	if id == nil {
		return nil
	}
	raw := id.Bytes()
	return &raw
}

func optionalUUID(raw *uuid.UUID) (*kernel.UUID, error) {
	if raw == nil {
		return nil, nil //nolint:nilnil // absent reference
	}
	id, err := kernel.UUIDFromBytes(raw[:])
	if err != nil {
		return nil, err
	}
	return &id, nil
}

func fromDomain(a *alert.Alert) AlertDTO {
	return AlertDTO{
		ID:             a.ID().Bytes(),
		Type:           a.Type(),
		Severity:       int(a.Severity()),
		Message:        a.Message(),
		LineID:         optionalBytes(a.LineID()),
		LineName:       a.LineName(),
		RelatedOrderID: optionalBytes(a.RelatedOrderID()),
		Occupancy:      a.Occupancy(),
		Capacity:       a.Capacity(),
		CreatedAt:      a.CreatedAt(),
		ResolvedAt:     a.ResolvedAt(),
	}
}

func toDomain(dto AlertDTO) (*alert.Alert, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	lineID, err := optionalUUID(dto.LineID)
	if err != nil {
		return nil, err
	}

	orderID, err := optionalUUID(dto.RelatedOrderID)
	if err != nil {
		return nil, err
	}

	return alert.RestoreAlert(alert.Record{
		ID:             id,
		Type:           dto.Type,
		Severity:       alert.Severity(dto.Severity),
		Message:        dto.Message,
		LineID:         lineID,
		LineName:       dto.LineName,
		RelatedOrderID: orderID,
		Occupancy:      dto.Occupancy,
		Capacity:       dto.Capacity,
		CreatedAt:      dto.CreatedAt,
		ResolvedAt:     dto.ResolvedAt,
	})
}

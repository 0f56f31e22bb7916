// Package steprepo persists process steps. Step data is stored as jsonb and
// photo URLs as a text[] column.
package steprepo

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"production/internal/core/domain/model/kernel"
	"production/internal/core/domain/model/step"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

type StepDTO struct {
	ID          uuid.UUID      `gorm:"type:uuid;primaryKey"`
	OrderID     uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex:idx_process_steps_order_number"`
	Number      int            `gorm:"not null;uniqueIndex:idx_process_steps_order_number"`
	Name        string         `gorm:"not null"`
	Status      int            `gorm:"not null;index"`
	Operator    *string
	Data        StepData       `gorm:"type:jsonb;not null;default:'{}'"`
	Photos      pq.StringArray `gorm:"type:text[];not null;default:'{}'"`
	StartedAt   *time.Time
	CompletedAt *time.Time
}

func (StepDTO) TableName() string {
	return "process_steps"
}

// StepData is the free-form key/value payload of a step.
type StepData map[string]any

func (d StepData) Value() (driver.Value, error) {
	if d == nil {
		return "{}", nil
	}
	raw, err := json.Marshal(map[string]any(d))
	if err != nil {
		return nil, err
	}
	return string(raw), nil
}

func (d *StepData) Scan(src any) error {
	var raw []byte
	switch v := src.(type) {
	case nil:
		*d = StepData{}
		return nil
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("cannot scan %T into StepData", src)
	}

	m := make(map[string]any)
	if err := json.Unmarshal(raw, &m); err != nil {
		return err
	}
	*d = m
	return nil
}

func fromDomain(s *step.ProcessStep) StepDTO {
	photos := s.Photos()
	if photos == nil {
		photos = []string{}
	}

	return StepDTO{
		ID:          s.ID().Bytes(),
		OrderID:     s.OrderID().Bytes(),
		Number:      s.Number(),
		Name:        s.Name(),
		Status:      int(s.Status()),
		Operator:    s.Operator(),
		Data:        StepData(s.Data()),
		Photos:      pq.StringArray(photos),
		StartedAt:   s.StartedAt(),
		CompletedAt: s.CompletedAt(),
	}
}

func toDomain(dto StepDTO) (*step.ProcessStep, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}

	return step.RestoreProcessStep(step.Record{
		ID:          id,
		OrderID:     orderID,
		Number:      dto.Number,
		Name:        dto.Name,
		Status:      step.Status(dto.Status),
		Operator:    dto.Operator,
		Data:        dto.Data,
		Photos:      dto.Photos,
		StartedAt:   dto.StartedAt,
		CompletedAt: dto.CompletedAt,
	})
}

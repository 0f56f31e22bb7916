// Package historyrepo stores the append-only audit trail of orders and steps.
package historyrepo

import (
	"time"

	"production/internal/core/domain/model/history"

	"github.com/google/uuid"
)

// EntryDTO is one audit row. Seq is assigned by the database in insert
// order and gives entries written in the same instant a stable order.
type EntryDTO struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	Seq        int64     `gorm:"autoIncrement;not null;uniqueIndex"`
	EntityType string    `gorm:"not null"`
	EntityID   uuid.UUID `gorm:"type:uuid;not null;index"`
	OrderID    uuid.UUID `gorm:"type:uuid;not null;index"`
	Action     string    `gorm:"not null"`
	OldValue   *string
	NewValue   *string
	Actor      string    `gorm:"not null"`
	At         time.Time `gorm:"not null;index"`
}

func (EntryDTO) TableName() string {
	return "history_entries"
}

func fromDomain(e *history.Entry) EntryDTO {
	return EntryDTO{
		ID:         e.ID().Bytes(),
		EntityType: string(e.EntityType()),
		EntityID:   e.EntityID().Bytes(),
		OrderID:    e.OrderID().Bytes(),
		Action:     string(e.Action()),
		OldValue:   e.OldValue(),
		NewValue:   e.NewValue(),
		Actor:      e.Actor(),
		At:         e.At(),
	}
}

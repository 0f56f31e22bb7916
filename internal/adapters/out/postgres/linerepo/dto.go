// Package linerepo persists production lines.
package linerepo

import (
	"production/internal/core/domain/model/kernel"
	"production/internal/core/domain/model/line"

	"github.com/google/uuid"
)

// LineDTO is the row of the lines table. Occupancy is never stored; it is
// counted from orders.
type LineDTO struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name     string    `gorm:"not null;uniqueIndex"`
	Capacity int       `gorm:"not null;check:capacity > 0"`
	Status   int       `gorm:"not null;index"`
}

func (LineDTO) TableName() string {
	return "lines"
}

func fromDomain(l *line.Line) LineDTO {
	return LineDTO{
		ID:       l.ID().Bytes(),
		Name:     l.Name(),
		Capacity: l.Capacity(),
		Status:   int(l.Status()),
	}
}

func toDomain(dto LineDTO) (*line.Line, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	return line.RestoreLine(id, dto.Name, dto.Capacity, line.Status(dto.Status))
}

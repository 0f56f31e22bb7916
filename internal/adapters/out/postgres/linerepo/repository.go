package linerepo

import (
	"context"
	"fmt"

	"production/internal/adapters/out/postgres/dberr"
	"production/internal/core/domain/model/kernel"
	"production/internal/core/domain/model/line"
	"production/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormLineRepository implements ports.LineRepository using GORM.
type GormLineRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

func NewGormLineRepository(db *gorm.DB, tracker aggregateTracker) *GormLineRepository {
	return &GormLineRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add inserts a new line. A taken name is reported as a precondition failure;
// the unique index backs that check up under concurrent inserts.
func (r *GormLineRepository) Add(ctx context.Context, aggregate *line.Line) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	var taken int64
	if err := r.db.WithContext(ctx).Model(&LineDTO{}).Where("name = ?", aggregate.Name()).Count(&taken).Error; err != nil {
		return dberr.Wrap("add line", err)
	}
	if taken > 0 {
		return errs.NewPreconditionFailedError("add line", fmt.Sprintf("line name %q is taken", aggregate.Name()))
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return dberr.Wrap("add line", err)
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves the status of an existing line.
func (r *GormLineRepository) Update(ctx context.Context, aggregate *line.Line) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&LineDTO{}).Where("id = ?", dto.ID).Updates(map[string]any{
		"name":     dto.Name,
		"capacity": dto.Capacity,
		"status":   dto.Status,
	})
	if result.Error != nil {
		return dberr.Wrap("update line", result.Error)
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("line", aggregate.ID())
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

func (r *GormLineRepository) Get(ctx context.Context, id kernel.UUID) (*line.Line, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto LineDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		return nil, dberr.NotFound("get line", "line", id, err)
	}

	return toDomain(dto)
}

// GetAllForAllocation locks every line row with SELECT ... FOR UPDATE in
// name, id order. The locks are held until the transaction behind r.db ends,
// so it must run inside a unit of work.
func (r *GormLineRepository) GetAllForAllocation(ctx context.Context) ([]*line.Line, error) {
	var dtos []LineDTO
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Order("name, id").
		Find(&dtos).Error
	if err != nil {
		return nil, dberr.Wrap("lock lines", err)
	}

	lines := make([]*line.Line, 0, len(dtos))
	for _, dto := range dtos {
		l, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		lines = append(lines, l)
	}

	return lines, nil
}

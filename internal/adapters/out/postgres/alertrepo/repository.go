package alertrepo

import (
	"context"

	"production/internal/adapters/out/postgres/dberr"
	"production/internal/core/domain/model/alert"
	"production/internal/core/domain/model/kernel"
	"production/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormAlertRepository implements ports.AlertRepository using GORM.
type GormAlertRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

func NewGormAlertRepository(db *gorm.DB, tracker aggregateTracker) *GormAlertRepository {
	return &GormAlertRepository{
		db:      db,
		tracker: tracker,
	}
}

func (r *GormAlertRepository) Add(ctx context.Context, aggregate *alert.Alert) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return dberr.Wrap("add alert", err)
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update only writes the resolution; the rest of an alert never changes.
func (r *GormAlertRepository) Update(ctx context.Context, aggregate *alert.Alert) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).Model(&AlertDTO{}).
		Where("id = ?", aggregate.ID().Bytes()).
		Update("resolved_at", aggregate.ResolvedAt())
	if result.Error != nil {
		return dberr.Wrap("update alert", result.Error)
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("alert", aggregate.ID())
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

func (r *GormAlertRepository) Get(ctx context.Context, id kernel.UUID) (*alert.Alert, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto AlertDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		return nil, dberr.NotFound("get alert", "alert", id, err)
	}

	return toDomain(dto)
}

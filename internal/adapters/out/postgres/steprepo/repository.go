package steprepo

import (
	"context"

	"production/internal/adapters/out/postgres/dberr"
	"production/internal/core/domain/model/kernel"
	"production/internal/core/domain/model/step"
	"production/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormStepRepository implements ports.StepRepository using GORM.
type GormStepRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

func NewGormStepRepository(db *gorm.DB, tracker aggregateTracker) *GormStepRepository {
	return &GormStepRepository{
		db:      db,
		tracker: tracker,
	}
}

// AddAll inserts the step set of an order in one statement.
func (r *GormStepRepository) AddAll(ctx context.Context, steps []*step.ProcessStep) error {
	if len(steps) == 0 {
		return nil
	}

	dtos := make([]StepDTO, 0, len(steps))
	for _, s := range steps {
		if err := s.Validate(); err != nil {
			return err
		}
		dtos = append(dtos, fromDomain(s))
	}

	if err := r.db.WithContext(ctx).Create(&dtos).Error; err != nil {
		return dberr.Wrap("add steps", err)
	}

	for _, s := range steps {
		r.tracker.TrackAggregate(s.ID(), s)
	}
	return nil
}

func (r *GormStepRepository) Update(ctx context.Context, aggregate *step.ProcessStep) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&StepDTO{}).Where("id = ?", dto.ID).Updates(map[string]any{
		"status":       dto.Status,
		"operator":     dto.Operator,
		"data":         dto.Data,
		"photos":       dto.Photos,
		"started_at":   dto.StartedAt,
		"completed_at": dto.CompletedAt,
	})
	if result.Error != nil {
		return dberr.Wrap("update step", result.Error)
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("step", aggregate.ID())
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

func (r *GormStepRepository) Get(ctx context.Context, id kernel.UUID) (*step.ProcessStep, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto StepDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		return nil, dberr.NotFound("get step", "step", id, err)
	}

	return toDomain(dto)
}

func (r *GormStepRepository) GetAllByOrder(ctx context.Context, orderID kernel.UUID) ([]*step.ProcessStep, error) {
	if err := orderID.Validate(); err != nil {
		return nil, err
	}

	var dtos []StepDTO
	if err := r.db.WithContext(ctx).Where("order_id = ?", orderID.Bytes()).Order("number").Find(&dtos).Error; err != nil {
		return nil, dberr.Wrap("get steps", err)
	}

	steps := make([]*step.ProcessStep, 0, len(dtos))
	for _, dto := range dtos {
		s, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		steps = append(steps, s)
	}

	return steps, nil
}

package orderrepo

import (
	"context"
	"fmt"

	"production/internal/adapters/out/postgres/dberr"
	"production/internal/core/domain/model/kernel"
	"production/internal/core/domain/model/order"
	"production/internal/core/domain/model/step"
	"production/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormOrderRepository implements ports.OrderRepository using GORM.
type GormOrderRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

func NewGormOrderRepository(db *gorm.DB, tracker aggregateTracker) *GormOrderRepository {
	return &GormOrderRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new order to the database.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.WorkOrder) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return dberr.Wrap("add order", err)
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update writes every column except line_id, which only AssignLine touches.
func (r *GormOrderRepository) Update(ctx context.Context, aggregate *order.WorkOrder) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&OrderDTO{}).Where("id = ?", dto.ID).Updates(map[string]any{
		"external_ref":    dto.ExternalRef,
		"customer":        dto.Customer,
		"priority":        dto.Priority,
		"status":          dto.Status,
		"material_type":   dto.MaterialType,
		"estimated_hours": dto.EstimatedHours,
		"updated_at":      dto.UpdatedAt,
		"started_at":      dto.StartedAt,
		"completed_at":    dto.CompletedAt,
	})
	if result.Error != nil {
		return dberr.Wrap("update order", result.Error)
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("order", aggregate.ID())
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

func (r *GormOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.WorkOrder, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto OrderDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		return nil, dberr.NotFound("get order", "order", id, err)
	}

	return toDomain(dto)
}

// AssignLine runs UPDATE orders SET line_id = ? WHERE id = ? AND line_id IS NULL.
// No affected row means the order vanished or somebody else assigned it first.
func (r *GormOrderRepository) AssignLine(ctx context.Context, aggregate *order.WorkOrder) error {
	lineID := aggregate.LineID()
	if lineID == nil {
		return errs.NewValueIsRequiredError("line id")
	}

	result := r.db.WithContext(ctx).Model(&OrderDTO{}).
		Where("id = ? AND line_id IS NULL", aggregate.ID().Bytes()).
		Updates(map[string]any{
			"line_id":    lineID.Bytes(),
			"updated_at": aggregate.UpdatedAt(),
		})
	if result.Error != nil {
		return dberr.Wrap("assign line", result.Error)
	}

	if result.RowsAffected == 0 {
		var found int64
		if err := r.db.WithContext(ctx).Model(&OrderDTO{}).Where("id = ?", aggregate.ID().Bytes()).Count(&found).Error; err != nil {
			return dberr.Wrap("assign line", err)
		}
		if found == 0 {
			return errs.NewObjectNotFoundError("order", aggregate.ID())
		}
		return errs.NewPreconditionFailedError(
			"assign line",
			fmt.Sprintf("order %s was assigned to a line concurrently", aggregate.ID()),
		)
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

type occupancyRow struct {
	LineID    uuid.UUID
	Occupancy int
}

func (r *GormOrderRepository) CountOccupancy(ctx context.Context) (map[kernel.UUID]int, error) {
	var rows []occupancyRow
	err := r.db.WithContext(ctx).Model(&OrderDTO{}).
		Select("line_id, COUNT(*) AS occupancy").
		Where("line_id IS NOT NULL AND status IN ?", []int{int(order.Pending), int(order.InProcess)}).
		Group("line_id").
		Scan(&rows).Error
	if err != nil {
		return nil, dberr.Wrap("count occupancy", err)
	}

	occupancy := make(map[kernel.UUID]int, len(rows))
	for _, row := range rows {
		id, idErr := kernel.UUIDFromBytes(row.LineID[:])
		if idErr != nil {
			return nil, idErr
		}
		occupancy[id] = row.Occupancy
	}

	return occupancy, nil
}

// GetAllWithFinishedSteps selects orders short of completed that have at
// least one step and no step outside done.
func (r *GormOrderRepository) GetAllWithFinishedSteps(ctx context.Context) ([]*order.WorkOrder, error) {
	var dtos []OrderDTO
	err := r.db.WithContext(ctx).
		Where("status < ?", int(order.Completed)).
		Where("EXISTS (SELECT 1 FROM process_steps s WHERE s.order_id = orders.id)").
		Where("NOT EXISTS (SELECT 1 FROM process_steps s WHERE s.order_id = orders.id AND s.status <> ?)", int(step.Done)).
		Order("id").
		Find(&dtos).Error
	if err != nil {
		return nil, dberr.Wrap("find orders with finished steps", err)
	}

	orders := make([]*order.WorkOrder, 0, len(dtos))
	for _, dto := range dtos {
		o, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}

	return orders, nil
}

package historyrepo

import (
	"context"

	"production/internal/adapters/out/postgres/dberr"
	"production/internal/core/domain/model/history"

	"gorm.io/gorm"
)

// GormHistoryRepository implements ports.HistoryRepository. Entries are only
// ever inserted; reading them back is the job of the history query.
type GormHistoryRepository struct {
	db *gorm.DB
}

func NewGormHistoryRepository(db *gorm.DB) *GormHistoryRepository {
	return &GormHistoryRepository{db: db}
}

func (r *GormHistoryRepository) Append(ctx context.Context, entries ...*history.Entry) error {
	if len(entries) == 0 {
		return nil
	}

	dtos := make([]EntryDTO, 0, len(entries))
	for _, e := range entries {
		if err := e.Validate(); err != nil {
			return err
		}
		dtos = append(dtos, fromDomain(e))
	}

	if err := r.db.WithContext(ctx).Create(&dtos).Error; err != nil {
		return dberr.Wrap("append history", err)
	}
	return nil
}

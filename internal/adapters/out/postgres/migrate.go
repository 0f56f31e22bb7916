package postgres

import (
	"production/internal/adapters/out/postgres/alertrepo"
	"production/internal/adapters/out/postgres/historyrepo"
	"production/internal/adapters/out/postgres/linerepo"
	"production/internal/adapters/out/postgres/orderrepo"
	"production/internal/adapters/out/postgres/steprepo"

	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Tables lists every table Migrate creates, in dependency-free order.
// Tests truncate them between cases.
var Tables = []string{"history_entries", "alerts", "process_steps", "orders", "lines"}

// Open connects with the settings the repositories rely on: unique
// violations are translated to gorm.ErrDuplicatedKey.
func Open(dsn string, logLevel logger.LogLevel) (*gorm.DB, error) {
	return gorm.Open(gormpostgres.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logLevel),
	})
}

// Migrate creates or updates the schema.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&linerepo.LineDTO{},
		&orderrepo.OrderDTO{},
		&steprepo.StepDTO{},
		&alertrepo.AlertDTO{},
		&historyrepo.EntryDTO{},
	)
}

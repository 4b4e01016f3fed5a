// Package gormstore persists item parameters and the fiche journal with gorm.
package gormstore

import (
	"fmt"

	"github.com/vsinha/ropfeed/pkg/infrastructure/config"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlserver"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Open connects to the configured database and applies the pool settings
func Open(cfg config.DatabaseConfig, logLevel logger.LogLevel) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.Driver {
	case "", "postgres":
		dialector = postgres.Open(cfg.DSN())
	case "sqlserver":
		dialector = sqlserver.Open(cfg.DSN())
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", cfg.Driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database instance: %w", err)
	}
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	sqlDB.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)
	return db, nil
}

// AutoMigrate creates or updates the tables owned by this service
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&ItemParameterModel{},
		&FicheJournalModel{},
	)
}

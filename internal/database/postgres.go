package database

import (
	"fmt"
	"time"

	"github.com/vladimiradmaev/sugar-guidance/internal/config"
	"github.com/vladimiradmaev/sugar-guidance/internal/database/migrations"
	"github.com/vladimiradmaev/sugar-guidance/internal/logger"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// BloodSugarRecord is one row of the reading history
type BloodSugarRecord struct {
	ID          uint      `gorm:"primaryKey"`
	Timestamp   time.Time `gorm:"index;not null"`
	ReadingType string    `gorm:"size:32;not null;default:random;index"`
	Value       int       `gorm:"not null"`
	CreatedAt   time.Time
}

func (BloodSugarRecord) TableName() string {
	return "blood_sugar_records"
}

func NewPostgresDB(cfg config.DBConfig) (*gorm.DB, error) {
	db, err := connect(postgres.Open(cfg.DSN()))
	if err != nil {
		return nil, err
	}

	logger.Info("Database connection established and migrations completed", "host", cfg.Host, "db", cfg.DBName)
	return db, nil
}

// connect opens the pool and migrates it. The pool is closed again if migration fails.
func connect(dialector gorm.Dialector) (*gorm.DB, error) {
	db, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := Migrate(db); err != nil {
		if sqlDB, dbErr := db.DB(); dbErr == nil {
			sqlDB.Close()
		}
		return nil, err
	}
	return db, nil
}

// Migrate brings the schema up to date. The table is auto-migrated first so the
// registered data migrations can rely on the reading_type column existing.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&BloodSugarRecord{}); err != nil {
		return fmt.Errorf("failed to auto-migrate database: %w", err)
	}

	if err := migrations.LoadSQLMigrations(migrations.Files); err != nil {
		return fmt.Errorf("failed to load migrations: %w", err)
	}

	if err := migrations.RunMigrations(db); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}

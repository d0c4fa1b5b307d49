package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/vladimiradmaev/sugar-guidance/internal/database"
	"github.com/vladimiradmaev/sugar-guidance/internal/domain"
	"gorm.io/gorm"
)

// PostgresStore keeps the history in the blood_sugar_records table
type PostgresStore struct {
	db *gorm.DB
}

// NewPostgresStore wraps an open, migrated connection
func NewPostgresStore(db *gorm.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Append(ctx context.Context, reading domain.Reading) error {
	record := database.BloodSugarRecord{
		Timestamp:   reading.Timestamp,
		ReadingType: string(reading.Context),
		Value:       reading.Value,
	}
	if err := s.db.WithContext(ctx).Create(&record).Error; err != nil {
		return fmt.Errorf("failed to create blood sugar record: %w", err)
	}
	return nil
}

func (s *PostgresStore) All(ctx context.Context) ([]domain.Reading, error) {
	var records []database.BloodSugarRecord
	if err := s.db.WithContext(ctx).Order("id").Find(&records).Error; err != nil {
		return nil, fmt.Errorf("failed to get blood sugar records: %w", err)
	}
	return toReadings(records), nil
}

func (s *PostgresStore) Tail(ctx context.Context, n int) ([]domain.Reading, error) {
	if n <= 0 {
		return []domain.Reading{}, nil
	}

	var records []database.BloodSugarRecord
	if err := s.db.WithContext(ctx).Order("id DESC").Limit(n).Find(&records).Error; err != nil {
		return nil, fmt.Errorf("failed to get blood sugar records: %w", err)
	}
	for i, j := 0, len(records)-1; i < j; i, j = i+1, j-1 {
		records[i], records[j] = records[j], records[i]
	}
	return toReadings(records), nil
}

func (s *PostgresStore) FilterByContext(ctx context.Context, readingCtx domain.ReadingContext) ([]domain.Reading, error) {
	readings, err := s.All(ctx)
	if err != nil {
		return nil, err
	}
	return filterByContext(readings, readingCtx), nil
}

// Close releases the connection pool
func (s *PostgresStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func toReadings(records []database.BloodSugarRecord) []domain.Reading {
	readings := make([]domain.Reading, 0, len(records))
	for _, r := range records {
		readingCtx := domain.ReadingContext(r.ReadingType)
		if !readingCtx.Valid() {
			readingCtx = domain.ContextRandom
		}
		readings = append(readings, domain.Reading{
			Timestamp: r.Timestamp.Local().Truncate(time.Second),
			Context:   readingCtx,
			Value:     r.Value,
		})
	}
	return readings
}

var _ domain.HistoryStore = (*PostgresStore)(nil)

package services

import (
	"context"

	"github.com/vladimiradmaev/sugar-guidance/internal/domain"
	apperrors "github.com/vladimiradmaev/sugar-guidance/internal/errors"
	"github.com/vladimiradmaev/sugar-guidance/internal/glucose"
)

// RecentHistoryRows is how many rows the history views show
const RecentHistoryRows = 10

type HistoryService struct {
	store domain.HistoryStore
}

func NewHistoryService(store domain.HistoryStore) *HistoryService {
	return &HistoryService{store: store}
}

func (s *HistoryService) Recent(ctx context.Context, n int) ([]domain.HistoryRow, error) {
	readings, err := s.store.Tail(ctx, n)
	if err != nil {
		return nil, apperrors.NewStorageError(err, "tail")
	}

	rows := make([]domain.HistoryRow, 0, len(readings))
	for _, r := range readings {
		rows = append(rows, domain.HistoryRow{Reading: r, Severity: glucose.SeverityFor(r.Value)})
	}
	return rows, nil
}

package services

import (
	"context"
	"log/slog"

	"github.com/vladimiradmaev/sugar-guidance/internal/domain"
	apperrors "github.com/vladimiradmaev/sugar-guidance/internal/errors"
	"github.com/vladimiradmaev/sugar-guidance/internal/glucose"
	"github.com/vladimiradmaev/sugar-guidance/internal/logger"
)

const (
	// TrendWindow is the number of most recent readings in a trend
	TrendWindow      = 7
	// TrendMinReadings is the least number of readings a trend is drawn from
	TrendMinReadings = 2

	MsgInsufficientTrend = "Add more daily entries to see your sugar trend."
)

type TrendService struct {
	store  domain.HistoryStore
	logger *slog.Logger
}

func NewTrendService(store domain.HistoryStore, log *slog.Logger) *TrendService {
	if log == nil {
		log = logger.Component("trend_service")
	}
	return &TrendService{store: store, logger: log}
}

// Trend returns the last readings, optionally of one context, each with its
// fixed-band severity. Too few readings yield an Insufficient trend, not an error.
func (s *TrendService) Trend(ctx context.Context, filter *domain.ReadingContext) (domain.Trend, error) {
	var (
		readings []domain.Reading
		err      error
	)
	if filter != nil {
		readings, err = s.store.FilterByContext(ctx, *filter)
	} else {
		readings, err = s.store.All(ctx)
	}
	if err != nil {
		return domain.Trend{}, apperrors.NewStorageError(err, "trend")
	}

	trend := domain.Trend{Filter: filter}
	if len(readings) < TrendMinReadings {
		trend.Insufficient = true
		return trend, nil
	}

	if len(readings) > TrendWindow {
		readings = readings[len(readings)-TrendWindow:]
	}
	trend.Points = make([]domain.TrendPoint, 0, len(readings))
	for _, r := range readings {
		trend.Points = append(trend.Points, domain.TrendPoint{
			Reading:  r,
			Severity: glucose.SeverityFor(r.Value),
		})
	}
	return trend, nil
}

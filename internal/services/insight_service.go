package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/vladimiradmaev/sugar-guidance/internal/config"
	"github.com/vladimiradmaev/sugar-guidance/internal/domain"
	apperrors "github.com/vladimiradmaev/sugar-guidance/internal/errors"
	"github.com/vladimiradmaev/sugar-guidance/internal/logger"
)

// Insight texts
const (
	InsightNoHistory  = "No history available yet."
	InsightFirstEntry = "This is your first entry. Add more daily values to see comparisons."
	InsightLower      = "Good progress. Today's sugar is lower than yesterday by %d mg/dL."
	InsightHigher     = "Attention needed. Today's sugar is higher than yesterday by %d mg/dL."
	InsightSame       = "Your sugar level is the same as yesterday. Maintain your routine."
)

type InsightService struct {
	store  domain.HistoryStore
	scope  string
	logger *slog.Logger
}

// NewInsightService creates the service. scope is config.InsightScopeContext
// (compare readings of the requested context) or config.InsightScopeGlobal
// (compare the last two readings of the whole log).
func NewInsightService(store domain.HistoryStore, scope string, log *slog.Logger) *InsightService {
	if log == nil {
		log = logger.Component("insight_service")
	}
	if scope == "" {
		scope = config.InsightScopeContext
	}
	return &InsightService{store: store, scope: scope, logger: log}
}

func (s *InsightService) Insight(ctx context.Context, readingCtx domain.ReadingContext) (string, error) {
	var (
		readings []domain.Reading
		err      error
	)
	if s.scope == config.InsightScopeGlobal {
		readings, err = s.store.Tail(ctx, 2)
	} else {
		readings, err = s.store.FilterByContext(ctx, readingCtx)
	}
	if err != nil {
		return "", apperrors.NewStorageError(err, "insight")
	}

	insight := CompareLatest(readings)
	s.logger.Debug("Insight generated", "scope", s.scope, "context", string(readingCtx), "readings", len(readings))
	return insight, nil
}

// CompareLatest phrases the change between the last two readings
func CompareLatest(readings []domain.Reading) string {
	switch len(readings) {
	case 0:
		return InsightNoHistory
	case 1:
		return InsightFirstEntry
	}

	previous := readings[len(readings)-2].Value
	latest := readings[len(readings)-1].Value
	switch {
	case latest < previous:
		return fmt.Sprintf(InsightLower, previous-latest)
	case latest > previous:
		return fmt.Sprintf(InsightHigher, latest-previous)
	default:
		return InsightSame
	}
}

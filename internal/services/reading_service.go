package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/vladimiradmaev/sugar-guidance/internal/domain"
	apperrors "github.com/vladimiradmaev/sugar-guidance/internal/errors"
	"github.com/vladimiradmaev/sugar-guidance/internal/glucose"
	"github.com/vladimiradmaev/sugar-guidance/internal/logger"
	"github.com/vladimiradmaev/sugar-guidance/internal/utils"
)

// MaxReadingValue is the largest value accepted from the user, in mg/dL
const MaxReadingValue = 600

// Validation messages shown to the user
const (
	MsgNonPositiveValue = "Blood sugar must be a positive value."
	MsgValueTooHigh     = "Blood sugar must be at most 600 mg/dL."
	MsgUnknownContext   = "Please choose a reading type."
)

type ReadingService struct {
	store      domain.HistoryStore
	classifier *glucose.Classifier
	now        func() time.Time
	logger     *slog.Logger
}

func NewReadingService(store domain.HistoryStore, classifier *glucose.Classifier, log *slog.Logger) *ReadingService {
	if log == nil {
		log = logger.Component("reading_service")
	}
	return &ReadingService{
		store:      store,
		classifier: classifier,
		now:        utils.NowSeconds,
		logger:     log,
	}
}

// Submit validates, persists and assesses one reading. Emergency readings are
// stored too, but they return an advisory instead of the normal guidance.
func (s *ReadingService) Submit(ctx context.Context, value int, readingCtx domain.ReadingContext) (*domain.Assessment, error) {
	switch {
	case value <= 0:
		return nil, apperrors.NewValidationError(MsgNonPositiveValue).WithContext("value", value)
	case value > MaxReadingValue:
		return nil, apperrors.NewValidationError(MsgValueTooHigh).WithContext("value", value)
	case !readingCtx.Valid():
		return nil, apperrors.NewValidationError(MsgUnknownContext).WithContext("context", string(readingCtx))
	}

	reading := domain.Reading{
		Timestamp: s.now().Truncate(time.Second),
		Context:   readingCtx,
		Value:     value,
	}
	if err := s.store.Append(ctx, reading); err != nil {
		return nil, apperrors.NewStorageError(err, "append")
	}

	assessment := &domain.Assessment{
		Reading:   reading,
		Emergency: glucose.CheckEmergency(value),
	}

	switch assessment.Emergency {
	case domain.EmergencyExtremelyHigh:
		assessment.Advisory = glucose.EmergencyAdvisory(assessment.Emergency)
	case domain.EmergencyCriticalLow:
		assessment.Advisory = glucose.EmergencyAdvisory(assessment.Emergency)
		result := s.classifier.Classify(value, readingCtx)
		assessment.Result = &result
	default:
		result := s.classifier.Classify(value, readingCtx)
		assessment.Result = &result
	}

	s.logger.Info("Reading submitted",
		"value", value,
		"context", string(readingCtx),
		"emergency", string(assessment.Emergency),
		"status", statusOf(assessment))

	return assessment, nil
}

func statusOf(a *domain.Assessment) string {
	if a.Result == nil {
		return string(a.Emergency)
	}
	return string(a.Result.Status)
}

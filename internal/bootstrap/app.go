// Package bootstrap wires configuration, storage and services for the entry points.
package bootstrap

import (
	"context"
	"errors"
	"log/slog"

	"github.com/vladimiradmaev/sugar-guidance/internal/config"
	"github.com/vladimiradmaev/sugar-guidance/internal/domain"
	apperrors "github.com/vladimiradmaev/sugar-guidance/internal/errors"
	"github.com/vladimiradmaev/sugar-guidance/internal/glucose"
	"github.com/vladimiradmaev/sugar-guidance/internal/logger"
	"github.com/vladimiradmaev/sugar-guidance/internal/repository"
	"github.com/vladimiradmaev/sugar-guidance/internal/services"
)

// App holds everything the bot and the CLI need
type App struct {
	Config     *config.Config
	Store      domain.HistoryStore
	Classifier *glucose.Classifier
	Readings   *services.ReadingService
	Insights   *services.InsightService
	Trends     *services.TrendService
	History    *services.HistoryService
	// Summary is nil when GEMINI_API_KEY is unset
	Summary    *services.AIService

	logger *slog.Logger
}

func New(ctx context.Context, cfg *config.Config) (*App, error) {
	log := logger.Component("bootstrap")

	thresholds := glucose.DefaultThresholds()
	if cfg.ThresholdsPath != "" {
		loaded, err := glucose.LoadThresholds(cfg.ThresholdsPath)
		if err != nil {
			return nil, apperrors.NewConfigError(err, "THRESHOLDS_PATH")
		}
		thresholds = loaded
		log.Info("Threshold overrides loaded", "path", cfg.ThresholdsPath)
	}

	store, err := repository.Open(cfg)
	if err != nil {
		return nil, apperrors.NewStorageError(err, "open")
	}
	log.Info("History store opened", "driver", cfg.Store.Driver)

	classifier := glucose.NewClassifier(thresholds)
	app := &App{
		Config:     cfg,
		Store:      store,
		Classifier: classifier,
		Readings:   services.NewReadingService(store, classifier, logger.Component("reading_service")),
		Insights:   services.NewInsightService(store, cfg.InsightScope, logger.Component("insight_service")),
		Trends:     services.NewTrendService(store, logger.Component("trend_service")),
		History:    services.NewHistoryService(store),
		logger:     log,
	}

	if cfg.GeminiAPIKey != "" {
		summary, err := services.NewAIService(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
		if err != nil {
			store.Close()
			return nil, err
		}
		app.Summary = summary
	} else {
		log.Info("GEMINI_API_KEY is not set, summaries are disabled")
	}

	return app, nil
}

// SummaryService returns the summary service, or a nil interface when summaries are disabled
func (a *App) SummaryService() domain.SummaryService {
	if a.Summary == nil {
		return nil
	}
	return a.Summary
}

// Close releases the store and the Gemini client
func (a *App) Close() error {
	var errs []error
	if a.Summary != nil {
		errs = append(errs, a.Summary.Close())
	}
	errs = append(errs, a.Store.Close())
	return errors.Join(errs...)
}

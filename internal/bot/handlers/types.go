package handlers

import (
	"github.com/vladimiradmaev/sugar-guidance/internal/domain"
)

// Dependencies holds all service dependencies for handlers
type Dependencies struct {
	Readings domain.ReadingService
	Insights domain.InsightService
	Trends   domain.TrendService
	History  domain.HistoryService
	// Summary is nil when no Gemini key is configured
	Summary  domain.SummaryService
}

package domain

import (
	"context"
)

// HistoryStore is the append-only log of past readings
type HistoryStore interface {
	Append(ctx context.Context, reading Reading) error
	// Tail returns the most recent n readings in stored order
	Tail(ctx context.Context, n int) ([]Reading, error)
	FilterByContext(ctx context.Context, readingCtx ReadingContext) ([]Reading, error)
	All(ctx context.Context) ([]Reading, error)
	Close() error
}

// ReadingService handles reading submissions
type ReadingService interface {
	Submit(ctx context.Context, value int, readingCtx ReadingContext) (*Assessment, error)
}

// InsightService compares the latest readings
type InsightService interface {
	Insight(ctx context.Context, readingCtx ReadingContext) (string, error)
}

// TrendService builds the recent trend view
type TrendService interface {
	Trend(ctx context.Context, filter *ReadingContext) (Trend, error)
}

// HistoryService serves the recent history table
type HistoryService interface {
	Recent(ctx context.Context, n int) ([]HistoryRow, error)
}

// SummaryService produces a narrative summary of recent readings
type SummaryService interface {
	Summarize(ctx context.Context, readings []Reading) (string, error)
}

package repository

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/vladimiradmaev/sugar-guidance/internal/domain"
	"github.com/vladimiradmaev/sugar-guidance/internal/utils"
)

// Column names of the tabular history log
const (
	ColumnDatetime    = "datetime"
	ColumnReadingType = "reading_type"
	ColumnSugar       = "sugar"
)

// RawRecord is a history row as read from storage, before migration
type RawRecord struct {
	Datetime    string
	ReadingType string
	Sugar       string
}

// Normalize migrates a stored row into a Reading. Rows written before reading
// contexts existed (or with an unrecognised one) are treated as random readings.
func Normalize(raw RawRecord) (domain.Reading, error) {
	ts, err := utils.ParseTimestamp(strings.TrimSpace(raw.Datetime))
	if err != nil {
		return domain.Reading{}, fmt.Errorf("invalid datetime %q: %w", raw.Datetime, err)
	}

	value, err := parseSugar(raw.Sugar)
	if err != nil {
		return domain.Reading{}, err
	}

	readingCtx := domain.ReadingContext(strings.TrimSpace(raw.ReadingType))
	if !readingCtx.Valid() {
		readingCtx = domain.ContextRandom
	}

	return domain.Reading{Timestamp: ts, Context: readingCtx, Value: value}, nil
}

func parseSugar(s string) (int, error) {
	s = strings.TrimSpace(s)
	if v, err := strconv.Atoi(s); err == nil {
		return v, nil
	}
	// spreadsheet tools sometimes write whole numbers as "120.0"
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f != float64(int(f)) {
		return 0, fmt.Errorf("invalid sugar value %q", s)
	}
	return int(f), nil
}

// tailOf returns the last n readings, keeping their order
func tailOf(readings []domain.Reading, n int) []domain.Reading {
	if n <= 0 {
		return []domain.Reading{}
	}
	if len(readings) > n {
		readings = readings[len(readings)-n:]
	}
	return readings
}

func filterByContext(readings []domain.Reading, readingCtx domain.ReadingContext) []domain.Reading {
	filtered := make([]domain.Reading, 0, len(readings))
	for _, r := range readings {
		if r.Context == readingCtx {
			filtered = append(filtered, r)
		}
	}
	return filtered
}

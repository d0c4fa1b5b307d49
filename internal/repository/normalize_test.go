package repository

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vladimiradmaev/sugar-guidance/internal/domain"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name    string
		raw     RawRecord
		wantCtx domain.ReadingContext
		wantVal int
	}{
		{"known context", RawRecord{"2024-05-01 08:00:00", "fasting", "92"}, domain.ContextFasting, 92},
		{"legacy row without context", RawRecord{"2024-05-01 08:00:00", "", "110"}, domain.ContextRandom, 110},
		{"unknown context", RawRecord{"2024-05-01 08:00:00", "bedtime", "130"}, domain.ContextRandom, 130},
		{"float sugar", RawRecord{"2024-05-01 08:00:00", "post_lunch", "120.0"}, domain.ContextPostLunch, 120},
		{"padded fields", RawRecord{" 2024-05-01 08:00:00 ", " post_dinner ", " 99 "}, domain.ContextPostDinner, 99},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reading, err := Normalize(tt.raw)
			require.NoError(t, err)
			assert.Equal(t, tt.wantCtx, reading.Context)
			assert.Equal(t, tt.wantVal, reading.Value)
			assert.True(t, reading.Timestamp.Equal(time.Date(2024, 5, 1, 8, 0, 0, 0, time.Local)))
		})
	}
}

func TestNormalizeRejectsBadRows(t *testing.T) {
	tests := []struct {
		name string
		raw  RawRecord
	}{
		{"bad datetime", RawRecord{"yesterday", "random", "100"}},
		{"bad sugar", RawRecord{"2024-05-01 08:00:00", "random", "high"}},
		{"fractional sugar", RawRecord{"2024-05-01 08:00:00", "random", "100.5"}},
		{"empty sugar", RawRecord{"2024-05-01 08:00:00", "random", ""}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Normalize(tt.raw)
			assert.Error(t, err)
		})
	}
}

func TestTailOf(t *testing.T) {
	readings := []domain.Reading{{Value: 1}, {Value: 2}, {Value: 3}}

	assert.Equal(t, []domain.Reading{{Value: 2}, {Value: 3}}, tailOf(readings, 2))
	assert.Equal(t, readings, tailOf(readings, 10))
	assert.Empty(t, tailOf(readings, 0))
	assert.Empty(t, tailOf(readings, -1))
}

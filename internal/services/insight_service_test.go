package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vladimiradmaev/sugar-guidance/internal/config"
	"github.com/vladimiradmaev/sugar-guidance/internal/domain"
	apperrors "github.com/vladimiradmaev/sugar-guidance/internal/errors"
)

func TestCompareLatest(t *testing.T) {
	tests := []struct {
		name   string
		values []int
		want   string
	}{
		{"empty", nil, InsightNoHistory},
		{"first entry", []int{120}, InsightFirstEntry},
		{"lower", []int{100, 90}, "Good progress. Today's sugar is lower than yesterday by 10 mg/dL."},
		{"higher", []int{90, 131}, "Attention needed. Today's sugar is higher than yesterday by 41 mg/dL."},
		{"same", []int{150, 110, 110}, InsightSame},
		{"only last two count", []int{300, 100, 90}, "Good progress. Today's sugar is lower than yesterday by 10 mg/dL."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CompareLatest(seed(tt.values...).readings))
		})
	}
}

func mixedStore() *memStore {
	base := time.Date(2024, 5, 1, 8, 0, 0, 0, time.Local)
	return &memStore{readings: []domain.Reading{
		{Timestamp: base, Context: domain.ContextFasting, Value: 100},
		{Timestamp: base.Add(time.Hour), Context: domain.ContextPostLunch, Value: 160},
		{Timestamp: base.Add(24 * time.Hour), Context: domain.ContextFasting, Value: 90},
		{Timestamp: base.Add(25 * time.Hour), Context: domain.ContextPostLunch, Value: 150},
	}}
}

func TestInsightContextScope(t *testing.T) {
	svc := NewInsightService(mixedStore(), config.InsightScopeContext, quietLogger())

	got, err := svc.Insight(context.Background(), domain.ContextFasting)
	require.NoError(t, err)
	assert.Equal(t, "Good progress. Today's sugar is lower than yesterday by 10 mg/dL.", got)

	got, err = svc.Insight(context.Background(), domain.ContextPostDinner)
	require.NoError(t, err)
	assert.Equal(t, InsightNoHistory, got)
}

func TestInsightGlobalScope(t *testing.T) {
	svc := NewInsightService(mixedStore(), config.InsightScopeGlobal, quietLogger())

	got, err := svc.Insight(context.Background(), domain.ContextFasting)
	require.NoError(t, err)
	assert.Equal(t, "Attention needed. Today's sugar is higher than yesterday by 60 mg/dL.", got)
}

func TestInsightDefaultsToContextScope(t *testing.T) {
	svc := NewInsightService(mixedStore(), "", nil)

	got, err := svc.Insight(context.Background(), domain.ContextPostLunch)
	require.NoError(t, err)
	assert.Equal(t, "Good progress. Today's sugar is lower than yesterday by 10 mg/dL.", got)
}

func TestInsightStorageError(t *testing.T) {
	svc := NewInsightService(&memStore{readErr: assert.AnError}, config.InsightScopeContext, quietLogger())

	_, err := svc.Insight(context.Background(), domain.ContextFasting)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeStorage))
}

package glucose

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vladimiradmaev/sugar-guidance/internal/domain"
)

func TestClassifyFastingBoundaries(t *testing.T) {
	c := NewClassifier(DefaultThresholds())

	tests := []struct {
		value    int
		expected domain.Status
	}{
		{39, domain.StatusCriticalLow},
		{40, domain.StatusLow},
		{69, domain.StatusLow},
		{70, domain.StatusNormal},
		{100, domain.StatusNormal},
		{101, domain.StatusBorderline},
		{125, domain.StatusBorderline},
		{126, domain.StatusHigh},
		{400, domain.StatusHigh},
	}

	for _, tt := range tests {
		result := c.Classify(tt.value, domain.ContextFasting)
		if result.Status != tt.expected {
			t.Errorf("Classify(%d, fasting) = %s, want %s", tt.value, result.Status, tt.expected)
		}
	}
}

func TestClassifyPostMealBoundaries(t *testing.T) {
	c := NewClassifier(DefaultThresholds())

	for _, readingCtx := range []domain.ReadingContext{
		domain.ContextPostBreakfast, domain.ContextPostLunch, domain.ContextPostDinner,
	} {
		assert.Equal(t, domain.StatusLow, c.Status(79, readingCtx))
		assert.Equal(t, domain.StatusNormal, c.Status(80, readingCtx))
		assert.Equal(t, domain.StatusNormal, c.Status(140, readingCtx))
		assert.Equal(t, domain.StatusBorderline, c.Status(141, readingCtx))
		assert.Equal(t, domain.StatusBorderline, c.Status(160, readingCtx))
		assert.Equal(t, domain.StatusHigh, c.Status(161, readingCtx))
	}
}

func TestClassifyRandomBoundaries(t *testing.T) {
	c := NewClassifier(DefaultThresholds())

	assert.Equal(t, domain.StatusLow, c.Status(69, domain.ContextRandom))
	assert.Equal(t, domain.StatusNormal, c.Status(120, domain.ContextRandom))
	assert.Equal(t, domain.StatusBorderline, c.Status(121, domain.ContextRandom))
	assert.Equal(t, domain.StatusBorderline, c.Status(140, domain.ContextRandom))
	assert.Equal(t, domain.StatusHigh, c.Status(141, domain.ContextRandom))
}

func TestClassifyCriticalLowForEveryContext(t *testing.T) {
	c := NewClassifier(DefaultThresholds())

	for _, readingCtx := range domain.AllContexts {
		result := c.Classify(39, readingCtx)
		assert.Equal(t, domain.StatusCriticalLow, result.Status)
		assert.Equal(t, "Your blood sugar is dangerously low. Seek immediate medical help.", result.Meaning)
		assert.Equal(t, []string{"Take a fast-acting sugar source immediately."}, result.DietDo)
		assert.Empty(t, result.DietAvoid)
	}
}

func TestClassifyNonEmergencyRangeIsBanded(t *testing.T) {
	c := NewClassifier(DefaultThresholds())
	banded := map[domain.Status]bool{
		domain.StatusLow:        true,
		domain.StatusNormal:     true,
		domain.StatusBorderline: true,
		domain.StatusHigh:       true,
	}

	for _, readingCtx := range domain.AllContexts {
		for v := 40; v <= 400; v++ {
			first := c.Classify(v, readingCtx)
			if !banded[first.Status] {
				t.Fatalf("Classify(%d, %s) = %s, want a banded status", v, readingCtx, first.Status)
			}
			assert.Equal(t, first, c.Classify(v, readingCtx))
		}
	}
}

func TestClassifyMeaningUsesContextLabel(t *testing.T) {
	c := NewClassifier(DefaultThresholds())

	result := c.Classify(90, domain.ContextFasting)
	assert.Equal(t, "Your blood sugar is within the healthy range for fasting (empty stomach).", result.Meaning)
	assert.Equal(t, "🟢", result.Indicator)
	assert.Equal(t, "Maintain a healthy routine.", result.Focus)

	result = c.Classify(200, domain.ContextPostLunch)
	assert.Equal(t, "Your blood sugar is high for after lunch. Medical attention may be needed if this persists.", result.Meaning)
	assert.Equal(t, []string{"Avoid sweets, sugary drinks, and high-carb foods."}, result.DietAvoid)
	assert.Equal(t, "25–30 minutes of light to moderate walking.", result.Activity)
}

func TestClassifyResultDoesNotShareSlices(t *testing.T) {
	c := NewClassifier(DefaultThresholds())

	first := c.Classify(90, domain.ContextRandom)
	first.DietDo[0] = "changed"

	second := c.Classify(90, domain.ContextRandom)
	assert.Equal(t, "Continue balanced home-cooked meals.", second.DietDo[0])
}

func TestCheckEmergency(t *testing.T) {
	tests := []struct {
		value    int
		expected domain.Emergency
	}{
		{1, domain.EmergencyCriticalLow},
		{39, domain.EmergencyCriticalLow},
		{40, domain.EmergencyNone},
		{400, domain.EmergencyNone},
		{401, domain.EmergencyExtremelyHigh},
		{600, domain.EmergencyExtremelyHigh},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, CheckEmergency(tt.value), "value %d", tt.value)
	}
}

func TestEmergencyAdvisory(t *testing.T) {
	assert.Equal(t, CriticalLowAdvisory, EmergencyAdvisory(domain.EmergencyCriticalLow))
	assert.Equal(t, ExtremelyHighAdvice, EmergencyAdvisory(domain.EmergencyExtremelyHigh))
	assert.Empty(t, EmergencyAdvisory(domain.EmergencyNone))
}

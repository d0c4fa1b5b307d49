package glucose

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSeverityFor(t *testing.T) {
	tests := []struct {
		value int
		color string
		label string
	}{
		{39, ColorRed, "Low"},
		{69, ColorRed, "Low"},
		{70, ColorGreen, "Normal"},
		{100, ColorGreen, "Normal"},
		{101, ColorOrange, "Borderline"},
		{125, ColorOrange, "Borderline"},
		{126, ColorRed, "High"},
		{450, ColorRed, "High"},
	}

	for _, tt := range tests {
		s := SeverityFor(tt.value)
		assert.Equal(t, tt.color, s.Color, "value %d", tt.value)
		assert.Equal(t, tt.label, s.Label, "value %d", tt.value)
	}
}

func TestSeverityIgnoresContextBands(t *testing.T) {
	// 130 is NORMAL after a meal but the chart band still paints it red
	c := NewClassifier(DefaultThresholds())
	assert.Equal(t, "NORMAL", string(c.Status(130, "post_lunch")))
	assert.Equal(t, ColorRed, SeverityFor(130).Color)
}

// Package glucose holds the blood sugar threshold bands and the reading classifier.
package glucose

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/vladimiradmaev/sugar-guidance/internal/domain"
)

// ThresholdTable maps each reading context to its band. It is read-only after construction.
type ThresholdTable struct {
	bands map[domain.ReadingContext]domain.ThresholdBand
}

var postMealBand = domain.ThresholdBand{Low: 80, NormalMax: 140, BorderlineMax: 160, Warning: 161}

// DefaultThresholds returns the medical thresholds in mg/dL
func DefaultThresholds() *ThresholdTable {
	return &ThresholdTable{
		bands: map[domain.ReadingContext]domain.ThresholdBand{
			domain.ContextFasting:       {Low: 70, NormalMax: 100, BorderlineMax: 125, Warning: 126},
			domain.ContextPostBreakfast: postMealBand,
			domain.ContextPostLunch:     postMealBand,
			domain.ContextPostDinner:    postMealBand,
			domain.ContextRandom:        {Low: 70, NormalMax: 120, BorderlineMax: 140, Warning: 141},
		},
	}
}

// NewThresholdTable builds a table from explicit bands. Contexts not present keep their defaults.
func NewThresholdTable(overrides map[domain.ReadingContext]domain.ThresholdBand) (*ThresholdTable, error) {
	table := DefaultThresholds()
	for c, band := range overrides {
		if !c.Valid() {
			return nil, fmt.Errorf("unknown reading context %q in thresholds", c)
		}
		if err := band.Validate(); err != nil {
			return nil, fmt.Errorf("thresholds for %s: %w", c, err)
		}
		table.bands[c] = band
	}
	return table, nil
}

// LoadThresholds reads band overrides from a YAML file keyed by context
func LoadThresholds(path string) (*ThresholdTable, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read thresholds file: %w", err)
	}

	var overrides map[domain.ReadingContext]domain.ThresholdBand
	if err := yaml.Unmarshal(data, &overrides); err != nil {
		return nil, fmt.Errorf("parse thresholds file: %w", err)
	}
	return NewThresholdTable(overrides)
}

// Lookup returns the band for a context. An unknown context is a programming error.
func (t *ThresholdTable) Lookup(c domain.ReadingContext) domain.ThresholdBand {
	band, ok := t.bands[c]
	if !ok {
		panic(fmt.Sprintf("glucose: no thresholds for reading context %q", c))
	}
	return band
}

package domain

import (
	"fmt"
	"strings"
	"time"
)

// ReadingContext is the time-of-day tag a reading was taken under
type ReadingContext string

const (
	ContextFasting       ReadingContext = "fasting"
	ContextPostBreakfast ReadingContext = "post_breakfast"
	ContextPostLunch     ReadingContext = "post_lunch"
	ContextPostDinner    ReadingContext = "post_dinner"
	ContextRandom        ReadingContext = "random"
)

// AllContexts lists the reading contexts in display order
var AllContexts = []ReadingContext{
	ContextFasting,
	ContextPostBreakfast,
	ContextPostLunch,
	ContextPostDinner,
	ContextRandom,
}

var contextLabels = map[ReadingContext]string{
	ContextFasting:       "Fasting (Empty Stomach)",
	ContextPostBreakfast: "After Breakfast",
	ContextPostLunch:     "After Lunch",
	ContextPostDinner:    "After Dinner",
	ContextRandom:        "Random",
}

// Label returns the human-readable name of the context
func (c ReadingContext) Label() string {
	if label, ok := contextLabels[c]; ok {
		return label
	}
	return string(c)
}

// Valid reports whether c is one of the fixed contexts
func (c ReadingContext) Valid() bool {
	_, ok := contextLabels[c]
	return ok
}

// ParseReadingContext accepts a context key ("post_lunch") or its label ("After Lunch")
func ParseReadingContext(s string) (ReadingContext, error) {
	s = strings.TrimSpace(s)
	if c := ReadingContext(strings.ToLower(s)); c.Valid() {
		return c, nil
	}
	for c, label := range contextLabels {
		if strings.EqualFold(label, s) {
			return c, nil
		}
	}
	return "", fmt.Errorf("unknown reading context %q", s)
}

// Reading is one persisted blood sugar measurement (mg/dL)
type Reading struct {
	Timestamp time.Time
	Context   ReadingContext
	Value     int
}

// ThresholdBand holds the clinical band boundaries for one context, in mg/dL
type ThresholdBand struct {
	Low           int `yaml:"low"`
	NormalMax     int `yaml:"normal_max"`
	BorderlineMax int `yaml:"borderline_max"`
	Warning       int `yaml:"warning"`
}

// Validate checks low < normal_max < borderline_max <= warning
func (b ThresholdBand) Validate() error {
	if !(b.Low < b.NormalMax && b.NormalMax < b.BorderlineMax && b.BorderlineMax <= b.Warning) {
		return fmt.Errorf("band must satisfy low < normal_max < borderline_max <= warning, got %d/%d/%d/%d",
			b.Low, b.NormalMax, b.BorderlineMax, b.Warning)
	}
	return nil
}

// Status is the clinical classification of a reading
type Status string

const (
	StatusCriticalLow Status = "CRITICAL_LOW"
	StatusLow         Status = "LOW"
	StatusNormal      Status = "NORMAL"
	StatusBorderline  Status = "BORDERLINE"
	StatusHigh        Status = "HIGH"
)

// Display returns the status as shown to the user ("CRITICAL LOW")
func (s Status) Display() string {
	return strings.ReplaceAll(string(s), "_", " ")
}

// ClassificationResult is the guidance derived from a single reading
type ClassificationResult struct {
	Status    Status
	Indicator string
	Meaning   string
	DietDo    []string
	DietAvoid []string
	Activity  string
	Focus     string
}

// Emergency marks readings that bypass normal guidance
type Emergency string

const (
	EmergencyNone          Emergency = ""
	EmergencyCriticalLow   Emergency = "CRITICAL_LOW"
	EmergencyExtremelyHigh Emergency = "EXTREMELY_HIGH"
)

// Assessment is the outcome of one submission
type Assessment struct {
	Reading   Reading
	Emergency Emergency
	Advisory  string
	// Result is nil for the extremely high emergency
	Result    *ClassificationResult
}

// IsEmergency reports whether the normal guidance flow was skipped
func (a *Assessment) IsEmergency() bool {
	return a.Emergency != EmergencyNone
}

// Severity is the coarse, context-free colour band used for charts and history
type Severity struct {
	Color string
	Label string
}

// TrendPoint pairs a reading with its severity colour
type TrendPoint struct {
	Reading  Reading
	Severity Severity
}

// Trend is the recent-readings view, or an insufficient-data marker
type Trend struct {
	Filter       *ReadingContext
	Points       []TrendPoint
	Insufficient bool
}

// HistoryRow is one line of the recent history table
type HistoryRow struct {
	Reading  Reading
	Severity Severity
}

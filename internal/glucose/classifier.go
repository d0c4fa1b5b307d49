package glucose

import (
	"fmt"
	"strings"

	"github.com/vladimiradmaev/sugar-guidance/internal/domain"
)

// Hard emergency limits in mg/dL. These are not part of the per-context bands.
const (
	CriticalLowBelow    = 40
	ExtremelyHighAbove  = 400
	CriticalLowAdvisory = "Take a fast-acting sugar source immediately and seek medical help."
	ExtremelyHighAdvice = "Seek medical attention immediately."
)

// guidance is the static recommendation set for one status.
// meaning may contain a single %s for the context label.
type guidance struct {
	indicator string
	meaning   string
	dietDo    []string
	dietAvoid []string
	activity  string
	focus     string
}

var guidanceByStatus = map[domain.Status]guidance{
	domain.StatusCriticalLow: {
		indicator: "🔴",
		meaning:   "Your blood sugar is dangerously low. Seek immediate medical help.",
		dietDo:    []string{"Take a fast-acting sugar source immediately."},
		activity:  "Avoid any physical activity.",
		focus:     "Restore blood sugar immediately.",
	},
	domain.StatusLow: {
		indicator: "🔴",
		meaning:   "Your blood sugar is below the normal range for %s.",
		dietDo:    []string{"Take a quick sugar source such as juice or glucose."},
		activity:  "Avoid physical activity.",
		focus:     "Restore blood sugar safely.",
	},
	domain.StatusNormal: {
		indicator: "🟢",
		meaning:   "Your blood sugar is within the healthy range for %s.",
		dietDo:    []string{"Continue balanced home-cooked meals."},
		dietAvoid: []string{"Avoid excess sugar."},
		activity:  "15–20 minutes of light walking.",
		focus:     "Maintain a healthy routine.",
	},
	domain.StatusBorderline: {
		indicator: "🟡",
		meaning:   "Your blood sugar is slightly elevated for %s.",
		dietDo:    []string{"Prefer light meals."},
		dietAvoid: []string{"Reduce sugar and refined carbohydrates."},
		activity:  "20 minutes of walking.",
		focus:     "Improve sugar control.",
	},
	domain.StatusHigh: {
		indicator: "🔴",
		meaning:   "Your blood sugar is high for %s. Medical attention may be needed if this persists.",
		dietDo:    []string{"Eat light, home-cooked meals."},
		dietAvoid: []string{"Avoid sweets, sugary drinks, and high-carb foods."},
		activity:  "25–30 minutes of light to moderate walking.",
		focus:     "Reduce sugar levels safely.",
	},
}

// Classifier turns a reading into a clinical status and guidance. It has no state besides the table.
type Classifier struct {
	thresholds *ThresholdTable
}

// NewClassifier creates a classifier over the given thresholds
func NewClassifier(thresholds *ThresholdTable) *Classifier {
	return &Classifier{thresholds: thresholds}
}

// Status returns the status for value under readingCtx. Rules are checked in order.
func (c *Classifier) Status(value int, readingCtx domain.ReadingContext) domain.Status {
	if value < CriticalLowBelow {
		return domain.StatusCriticalLow
	}

	band := c.thresholds.Lookup(readingCtx)
	switch {
	case value < band.Low:
		return domain.StatusLow
	case value <= band.NormalMax:
		return domain.StatusNormal
	case value <= band.BorderlineMax:
		return domain.StatusBorderline
	default:
		return domain.StatusHigh
	}
}

// Classify returns the full guidance for a reading
func (c *Classifier) Classify(value int, readingCtx domain.ReadingContext) domain.ClassificationResult {
	status := c.Status(value, readingCtx)
	g := guidanceByStatus[status]

	meaning := g.meaning
	if strings.Contains(meaning, "%s") {
		meaning = fmt.Sprintf(meaning, strings.ToLower(readingCtx.Label()))
	}

	return domain.ClassificationResult{
		Status:    status,
		Indicator: g.indicator,
		Meaning:   meaning,
		DietDo:    append([]string(nil), g.dietDo...),
		DietAvoid: append([]string(nil), g.dietAvoid...),
		Activity:  g.activity,
		Focus:     g.focus,
	}
}

// CheckEmergency applies the hard floor and ceiling before any band logic
func CheckEmergency(value int) domain.Emergency {
	switch {
	case value < CriticalLowBelow:
		return domain.EmergencyCriticalLow
	case value > ExtremelyHighAbove:
		return domain.EmergencyExtremelyHigh
	default:
		return domain.EmergencyNone
	}
}

// EmergencyAdvisory returns the terminal advisory text for an emergency
func EmergencyAdvisory(e domain.Emergency) string {
	switch e {
	case domain.EmergencyCriticalLow:
		return CriticalLowAdvisory
	case domain.EmergencyExtremelyHigh:
		return ExtremelyHighAdvice
	default:
		return ""
	}
}

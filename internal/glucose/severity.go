package glucose

import "github.com/vladimiradmaev/sugar-guidance/internal/domain"

// Severity colours for charts and the history table
const (
	ColorRed    = "red"
	ColorGreen  = "green"
	ColorOrange = "orange"
)

// Fixed chart band in mg/dL, independent of the reading context.
const (
	SeverityLowBelow      = 70
	SeverityNormalMax     = 100
	SeverityBorderlineMax = 125
)

// SeverityFor buckets a value into the coarse visualization band
func SeverityFor(value int) domain.Severity {
	switch {
	case value < SeverityLowBelow:
		return domain.Severity{Color: ColorRed, Label: "Low"}
	case value <= SeverityNormalMax:
		return domain.Severity{Color: ColorGreen, Label: "Normal"}
	case value <= SeverityBorderlineMax:
		return domain.Severity{Color: ColorOrange, Label: "Borderline"}
	default:
		return domain.Severity{Color: ColorRed, Label: "High"}
	}
}

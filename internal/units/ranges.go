package units

import (
	"math"

	"github.com/claude/bodyfat/internal/models"
)

// Range is an inclusive plausible interval for a measurement.
type Range struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// reasonableRanges holds the soft ranges used for input hints. Skinfold and
// age ranges are the same in both systems.
var reasonableRanges = map[models.ConversionType]map[models.MeasurementSystem]Range{
	models.ConversionWeight: {
		models.SystemMetric:   {20, 300},
		models.SystemImperial: {44, 660},
	},
	models.ConversionLength: {
		models.SystemMetric:   {1, 300},
		models.SystemImperial: {0.4, 118},
	},
	models.ConversionSkinfold: {
		models.SystemMetric:   {1, 100},
		models.SystemImperial: {1, 100},
	},
	models.ConversionNone: {
		models.SystemMetric:   {0, 120},
		models.SystemImperial: {0, 120},
	},
}

// ReasonableRange returns the soft range for t in system.
func ReasonableRange(t models.ConversionType, system models.MeasurementSystem) (Range, bool) {
	r, ok := reasonableRanges[t][system]
	return r, ok
}

// IsReasonableMeasurement reports whether value falls in the plausible range
// for its type. It never fails: invalid numbers simply yield false.
func IsReasonableMeasurement(value float64, t models.ConversionType, system models.MeasurementSystem) bool {
	if math.IsNaN(value) || math.IsInf(value, 0) || value < 0 {
		return false
	}
	r, ok := ReasonableRange(t, system)
	if !ok {
		return false
	}
	return value >= r.Min && value <= r.Max
}

// Package units converts measurements between the metric and imperial systems.
package units

import (
	"errors"
	"fmt"
	"math"
	"strconv"

	"github.com/claude/bodyfat/internal/models"
)

// Conversion factors. Length uses 0.393701 imperial-ward and exactly 2.54
// metric-ward; the two are not exact inverses and must stay that way so
// results match previously recorded values.
const (
	PoundsPerKilogram   = 2.20462
	InchesPerCentimeter = 0.393701
	CentimetersPerInch  = 2.54
)

// ErrInvalidInput is returned for negative, NaN or infinite values.
var ErrInvalidInput = errors.New("invalid measurement value")

// ErrUnknownType is returned for conversion types outside the known set.
var ErrUnknownType = errors.New("unknown conversion type")

// Precision returns the number of decimals kept for a conversion type.
func Precision(t models.ConversionType) int {
	switch t {
	case models.ConversionWeight, models.ConversionLength:
		return 2
	default:
		return 0
	}
}

// Round rounds half away from zero to the given number of decimals.
func Round(value float64, decimals int) float64 {
	p := math.Pow(10, float64(decimals))
	return math.Round(value*p) / p
}

// Validate returns ErrInvalidInput unless value is finite and non-negative.
func Validate(value float64) error {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return fmt.Errorf("%w: %v is not a finite number", ErrInvalidInput, value)
	}
	if value < 0 {
		return fmt.Errorf("%w: %v is negative", ErrInvalidInput, value)
	}
	return nil
}

// Convert converts value of the given type from one system to another and
// rounds it to the type's precision. Converting within the same system
// still rounds.
func Convert(value float64, t models.ConversionType, from, to models.MeasurementSystem) (float64, error) {
	if err := Validate(value); err != nil {
		return 0, err
	}
	precision := Precision(t)
	if from == to {
		return Round(value, precision), nil
	}

	var converted float64
	switch t {
	case models.ConversionWeight:
		if to == models.SystemImperial {
			converted = value * PoundsPerKilogram
		} else {
			converted = value / PoundsPerKilogram
		}
	case models.ConversionLength:
		if to == models.SystemImperial {
			converted = value * InchesPerCentimeter
		} else {
			converted = value * CentimetersPerInch
		}
	case models.ConversionSkinfold, models.ConversionNone:
		converted = value
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownType, t)
	}
	return Round(converted, precision), nil
}

// Unit returns the canonical unit label for a type in a system.
func Unit(t models.ConversionType, system models.MeasurementSystem) string {
	imperial := system == models.SystemImperial
	switch t {
	case models.ConversionWeight:
		if imperial {
			return "lb"
		}
		return "kg"
	case models.ConversionLength:
		if imperial {
			return "in"
		}
		return "cm"
	case models.ConversionSkinfold:
		return "mm"
	default:
		return "years"
	}
}

// FormatMeasurement renders value rounded to the type's precision followed
// by its unit, e.g. "80.5 kg".
func FormatMeasurement(value float64, t models.ConversionType, system models.MeasurementSystem) (string, error) {
	if err := Validate(value); err != nil {
		return "", err
	}
	rounded := Round(value, Precision(t))
	return strconv.FormatFloat(rounded, 'f', -1, 64) + " " + Unit(t, system), nil
}

// NeedsConversion reports whether values of t change between systems.
func NeedsConversion(t models.ConversionType) bool {
	return t == models.ConversionWeight || t == models.ConversionLength
}

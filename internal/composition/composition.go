// Package composition derives fat and lean mass from a body-fat percentage
// and classifies the percentage into named bands.
package composition

import (
	"math"

	"github.com/claude/bodyfat/internal/models"
)

// Unknown is returned by Classify for values outside every band.
const Unknown = "Unknown"

// MassMetrics splits a body weight into fat and lean mass.
type MassMetrics struct {
	FatMass  float64 `json:"fat_mass"`
	LeanMass float64 `json:"lean_mass"`
}

// CalculateMassMetrics expects weight in kilograms. The percentage is not
// range-checked; validate it with ValidateBodyFat first.
func CalculateMassMetrics(bodyFatPercentage, weightKg float64) MassMetrics {
	fat := weightKg * bodyFatPercentage / 100
	return MassMetrics{FatMass: fat, LeanMass: weightKg - fat}
}

// Band is a classification interval. Min is inclusive; Max is inclusive
// only when MaxInclusive is set.
type Band struct {
	Label        string  `json:"label"`
	Min          float64 `json:"min"`
	Max          float64 `json:"max"`
	MaxInclusive bool    `json:"max_inclusive"`
}

func (b Band) contains(v float64) bool {
	if v < b.Min {
		return false
	}
	if b.MaxInclusive {
		return v <= b.Max
	}
	return v < b.Max
}

// Bands are matched in order, so the obese band only sees values above the
// acceptable band's inclusive upper bound.
var (
	maleBands = []Band{
		{Label: "Essential fat (2-5%)", Min: 2, Max: 6},
		{Label: "Athletic (6-13%)", Min: 6, Max: 14},
		{Label: "Fitness (14-17%)", Min: 14, Max: 18},
		{Label: "Acceptable (18-25%)", Min: 18, Max: 25, MaxInclusive: true},
		{Label: "Obese (> 25%)", Min: 25, Max: math.Inf(1)},
	}
	femaleBands = []Band{
		{Label: "Essential fat (10-13%)", Min: 10, Max: 14},
		{Label: "Athletic (14-20%)", Min: 14, Max: 21},
		{Label: "Fitness (21-24%)", Min: 21, Max: 25},
		{Label: "Acceptable (25-31%)", Min: 25, Max: 31, MaxInclusive: true},
		{Label: "Obese (> 31%)", Min: 31, Max: math.Inf(1)},
	}
)

// Bands returns the classification table for a gender.
func Bands(gender models.Gender) []Band {
	var src []Band
	switch gender {
	case models.GenderMale:
		src = maleBands
	case models.GenderFemale:
		src = femaleBands
	}
	out := make([]Band, len(src))
	copy(out, src)
	return out
}

// Classify returns the named band for a body-fat percentage.
func Classify(bodyFat float64, gender models.Gender) string {
	var bands []Band
	switch gender {
	case models.GenderMale:
		bands = maleBands
	case models.GenderFemale:
		bands = femaleBands
	default:
		return Unknown
	}
	for _, b := range bands {
		if b.contains(bodyFat) {
			return b.Label
		}
	}
	return Unknown
}

// Check is the outcome of ValidateBodyFat.
type Check struct {
	IsValid bool   `json:"is_valid"`
	Message string `json:"message,omitempty"`
}

// ValidateBodyFat rejects non-finite, negative and above-100 percentages.
func ValidateBodyFat(value float64) Check {
	switch {
	case math.IsNaN(value) || math.IsInf(value, 0):
		return Check{Message: "Invalid body fat percentage value"}
	case value < 0:
		return Check{Message: "Body fat percentage cannot be negative"}
	case value > 100:
		return Check{Message: "Body fat percentage cannot exceed 100%"}
	}
	return Check{IsValid: true}
}

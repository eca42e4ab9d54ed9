package models

import (
	"fmt"
	"strings"
)

// MeasurementSystem tags the unit system a set of measurements is expressed in.
type MeasurementSystem string

const (
	SystemMetric   MeasurementSystem = "metric"
	SystemImperial MeasurementSystem = "imperial"
)

// ParseMeasurementSystem accepts "metric" or "imperial" in any casing.
func ParseMeasurementSystem(raw string) (MeasurementSystem, error) {
	switch MeasurementSystem(strings.ToLower(strings.TrimSpace(raw))) {
	case SystemMetric:
		return SystemMetric, nil
	case SystemImperial:
		return SystemImperial, nil
	}
	return "", fmt.Errorf("unknown measurement system %q", raw)
}

// Valid reports whether s is one of the known systems.
func (s MeasurementSystem) Valid() bool {
	return s == SystemMetric || s == SystemImperial
}

// Gender selects the gender-specific equations and classification bands.
type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
)

// ParseGender accepts "male" or "female" in any casing.
func ParseGender(raw string) (Gender, error) {
	switch Gender(strings.ToLower(strings.TrimSpace(raw))) {
	case GenderMale:
		return GenderMale, nil
	case GenderFemale:
		return GenderFemale, nil
	}
	return "", fmt.Errorf("unknown gender %q", raw)
}

// Valid reports whether g is one of the known genders.
func (g Gender) Valid() bool {
	return g == GenderMale || g == GenderFemale
}

// ConversionType determines conversion factor, rounding precision and
// plausible range of a measurement.
type ConversionType string

const (
	ConversionWeight   ConversionType = "weight"
	ConversionLength   ConversionType = "length"
	ConversionSkinfold ConversionType = "skinfold"
	ConversionNone     ConversionType = "none"
)

// ParseConversionType accepts one of weight, length, skinfold or none.
func ParseConversionType(raw string) (ConversionType, error) {
	switch ConversionType(strings.ToLower(strings.TrimSpace(raw))) {
	case ConversionWeight:
		return ConversionWeight, nil
	case ConversionLength:
		return ConversionLength, nil
	case ConversionSkinfold:
		return ConversionSkinfold, nil
	case ConversionNone:
		return ConversionNone, nil
	}
	return "", fmt.Errorf("unknown conversion type %q", raw)
}

// FormulaID identifies one of the supported body-fat formulas.
type FormulaID string

const (
	FormulaYMCA     FormulaID = "ymca"
	FormulaMYMCA    FormulaID = "mymca"
	FormulaNavy     FormulaID = "navy"
	FormulaCovert   FormulaID = "covert"
	FormulaJack3    FormulaID = "jack3"
	FormulaDurnin   FormulaID = "durnin"
	FormulaJack4    FormulaID = "jack4"
	FormulaJack7    FormulaID = "jack7"
	FormulaParrillo FormulaID = "parrillo"
)

// FormulaResult is the raw output of a formula. Masses are in kilograms.
type FormulaResult struct {
	BodyFatPercentage float64 `json:"body_fat_percentage"`
	FatMass           float64 `json:"fat_mass"`
	LeanMass          float64 `json:"lean_mass"`
}

// CalculationResult is a validated FormulaResult with its classification band.
type CalculationResult struct {
	FormulaResult
	Classification string `json:"classification"`
}

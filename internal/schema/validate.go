package schema

import (
	"fmt"
	"math"
	"strconv"

	"github.com/claude/bodyfat/internal/models"
	"github.com/claude/bodyfat/internal/units"
)

// FieldFormula keys the error reported for an unknown formula ID.
const FieldFormula models.Field = "formula"

// Bounds is an inclusive numeric interval for one field.
type Bounds struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

type systemBounds map[models.MeasurementSystem]Bounds

var (
	weightBounds        = systemBounds{models.SystemMetric: {20, 300}, models.SystemImperial: {44, 661}}
	heightBounds        = systemBounds{models.SystemMetric: {100, 250}, models.SystemImperial: {39.4, 98.4}}
	circumferenceBounds = systemBounds{models.SystemMetric: {1, 200}, models.SystemImperial: {0.4, 78.7}}
	wristBounds         = systemBounds{models.SystemMetric: {1, 50}, models.SystemImperial: {0.4, 19.7}}
	skinfoldBounds      = systemBounds{models.SystemMetric: {1, 100}, models.SystemImperial: {0.04, 3.94}}
	ageBounds           = systemBounds{models.SystemMetric: {0, 120}, models.SystemImperial: {0, 120}}
)

// BoundsFor returns the hard bounds for f in system.
//
// Imperial skinfold bounds are 0.04 to 3.94 in, but the skinfold formulas read
// every skinfold as millimetres in both systems. An imperial request carrying
// realistic millimetre skinfolds (e.g. 15) therefore fails validation; send
// skinfold formulas in the metric system.
func BoundsFor(f models.Field, system models.MeasurementSystem) (Bounds, bool) {
	var table systemBounds
	switch f {
	case models.FieldWeight:
		table = weightBounds
	case models.FieldHeight:
		table = heightBounds
	case models.FieldWrist:
		table = wristBounds
	case models.FieldAge:
		table = ageBounds
	default:
		switch models.FieldConversion(f) {
		case models.ConversionLength:
			table = circumferenceBounds
		case models.ConversionSkinfold:
			table = skinfoldBounds
		default:
			return Bounds{}, false
		}
	}
	b, ok := table[system]
	return b, ok
}

// boundsUnit labels bounds in messages. Imperial skinfold bounds are quoted
// in inches.
func boundsUnit(f models.Field, system models.MeasurementSystem) string {
	t := models.FieldConversion(f)
	if t == models.ConversionSkinfold && system == models.SystemImperial {
		return "in"
	}
	return units.Unit(t, system)
}

// FieldSpec describes one input a formula needs, ready for form rendering.
type FieldSpec struct {
	Field      models.Field          `json:"field"`
	Label      string                `json:"label"`
	Conversion models.ConversionType `json:"conversion"`
	Unit       string                `json:"unit"`
	Min        float64               `json:"min"`
	Max        float64               `json:"max"`
}

// FieldSpecs builds the input schema of a formula for a gender and system.
func FieldSpecs(id models.FormulaID, gender models.Gender, system models.MeasurementSystem) ([]FieldSpec, error) {
	if _, ok := descriptors[id]; !ok {
		return nil, fmt.Errorf("unknown formula %q", id)
	}
	if !system.Valid() {
		return nil, fmt.Errorf("unknown measurement system %q", system)
	}
	fields := RequiredFields(id, gender)
	specs := make([]FieldSpec, 0, len(fields))
	for _, f := range fields {
		info, _ := models.LookupField(f)
		b, _ := BoundsFor(f, system)
		specs = append(specs, FieldSpec{
			Field:      f,
			Label:      info.Label,
			Conversion: info.Conversion,
			Unit:       units.Unit(info.Conversion, system),
			Min:        b.Min,
			Max:        b.Max,
		})
	}
	return specs, nil
}

// Result is the outcome of ValidateInputs. Errors maps each rejected field
// to a message suitable for display next to that field.
type Result struct {
	Success bool                    `json:"success"`
	Errors  map[models.Field]string `json:"errors"`
}

// ValidateInputs checks that every field id needs for gender is present,
// finite and within its bounds. Fields the formula does not read are ignored.
func ValidateInputs(id models.FormulaID, in models.Inputs, gender models.Gender, system models.MeasurementSystem) Result {
	res := Result{Errors: map[models.Field]string{}}
	if _, ok := descriptors[id]; !ok {
		res.Errors[FieldFormula] = fmt.Sprintf("Unknown formula %q", id)
		return res
	}

	for _, f := range RequiredFields(id, gender) {
		info, _ := models.LookupField(f)
		v, ok := in.Lookup(f)
		if !ok {
			res.Errors[f] = info.Label + " is required"
			continue
		}
		if math.IsNaN(v) || math.IsInf(v, 0) {
			res.Errors[f] = info.Label + " must be a valid number"
			continue
		}
		b, ok := BoundsFor(f, system)
		if !ok {
			continue
		}
		if v < b.Min || v > b.Max {
			res.Errors[f] = fmt.Sprintf("%s must be between %s and %s %s",
				info.Label, formatBound(b.Min), formatBound(b.Max), boundsUnit(f, system))
		}
	}

	res.Success = len(res.Errors) == 0
	return res
}

func formatBound(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

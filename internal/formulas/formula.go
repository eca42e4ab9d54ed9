// Package formulas implements the published body-fat equations and the
// registry that resolves them by ID.
//
// Formulas do not validate their inputs. A field that was not supplied is
// read as zero, which yields a finite but meaningless estimate; callers must
// run schema.ValidateInputs first.
package formulas

import (
	"fmt"

	"github.com/claude/bodyfat/internal/composition"
	"github.com/claude/bodyfat/internal/models"
	"github.com/claude/bodyfat/internal/units"
)

// Formula computes a body-fat estimate from standardized inputs expressed
// in the given measurement system.
type Formula interface {
	Calculate(in models.Inputs, system models.MeasurementSystem) (models.FormulaResult, error)
}

// equation computes a body-fat percentage from a measurement reader.
type equation func(r *reader) float64

// Calculate runs the equation and derives fat and lean mass from the
// metric body weight.
func (eq equation) Calculate(in models.Inputs, system models.MeasurementSystem) (models.FormulaResult, error) {
	r := &reader{in: in, system: system}
	pct := eq(r)
	weightKg := r.kilograms()
	if r.err != nil {
		return models.FormulaResult{}, r.err
	}
	m := composition.CalculateMassMetrics(pct, weightKg)
	return models.FormulaResult{
		BodyFatPercentage: pct,
		FatMass:           m.FatMass,
		LeanMass:          m.LeanMass,
	}, nil
}

// reader pulls fields out of an input record in the units an equation
// expects. The first conversion error is kept and later reads return 0.
type reader struct {
	in     models.Inputs
	system models.MeasurementSystem
	err    error
}

func (r *reader) female() bool {
	return r.in.Gender == models.GenderFemale
}

func (r *reader) convert(f models.Field, to models.MeasurementSystem) float64 {
	if r.err != nil {
		return 0
	}
	v, err := units.Convert(r.in.Get(f), models.FieldConversion(f), r.system, to)
	if err != nil {
		r.err = fmt.Errorf("%s: %w", f, err)
		return 0
	}
	return v
}

// inches returns a circumference or height field in inches.
func (r *reader) inches(f models.Field) float64 {
	return r.convert(f, models.SystemImperial)
}

func (r *reader) pounds() float64 {
	return r.convert(models.FieldWeight, models.SystemImperial)
}

func (r *reader) kilograms() float64 {
	return r.convert(models.FieldWeight, models.SystemMetric)
}

// raw returns a field as entered. Used for skinfolds (always millimeters)
// and age.
func (r *reader) raw(f models.Field) float64 {
	if r.err != nil {
		return 0
	}
	v := r.in.Get(f)
	if err := units.Validate(v); err != nil {
		r.err = fmt.Errorf("%s: %w", f, err)
		return 0
	}
	return v
}

func (r *reader) age() float64 {
	return r.raw(models.FieldAge)
}

// sum adds the raw values of the given skinfold sites.
func (r *reader) sum(fields ...models.Field) float64 {
	var total float64
	for _, f := range fields {
		total += r.raw(f)
	}
	return total
}

// siri converts body density (g/cm³) to a body-fat percentage.
func siri(density float64) float64 {
	return 495/density - 450
}

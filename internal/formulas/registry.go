package formulas

import (
	"errors"
	"fmt"

	"github.com/claude/bodyfat/internal/composition"
	"github.com/claude/bodyfat/internal/models"
)

// ErrUnknownFormula is returned when a formula ID is not registered.
var ErrUnknownFormula = errors.New("unknown formula")

// ErrInvalidResult is returned when a formula produces a percentage that is
// not finite or falls outside [0, 100].
var ErrInvalidResult = errors.New("invalid body fat result")

// ResultError carries the user-facing message for an invalid computed
// percentage.
type ResultError struct {
	Formula    models.FormulaID
	Percentage float64
	Message    string
}

func (e *ResultError) Error() string { return e.Message }

func (e *ResultError) Unwrap() error { return ErrInvalidResult }

var registry = map[models.FormulaID]Formula{
	models.FormulaYMCA:     equation(ymca),
	models.FormulaMYMCA:    equation(modifiedYMCA),
	models.FormulaNavy:     equation(navy),
	models.FormulaCovert:   equation(covertBailey),
	models.FormulaJack3:    equation(jacksonPollock3),
	models.FormulaDurnin:   equation(durninWomersley),
	models.FormulaJack4:    equation(jacksonPollock4),
	models.FormulaJack7:    equation(jacksonPollock7),
	models.FormulaParrillo: equation(parrillo),
}

// available is the enumeration order shown to users.
var available = []models.FormulaID{
	models.FormulaYMCA,
	models.FormulaMYMCA,
	models.FormulaNavy,
	models.FormulaCovert,
	models.FormulaJack3,
	models.FormulaDurnin,
	models.FormulaJack4,
	models.FormulaJack7,
	models.FormulaParrillo,
}

// Available returns every formula ID in display order.
func Available() []models.FormulaID {
	out := make([]models.FormulaID, len(available))
	copy(out, available)
	return out
}

// IsAvailable reports whether id names a registered formula.
func IsAvailable(id models.FormulaID) bool {
	_, ok := registry[id]
	return ok
}

// Get resolves a formula by ID.
func Get(id models.FormulaID) (Formula, error) {
	f, ok := registry[id]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormula, id)
	}
	return f, nil
}

// CalculateResults runs a formula for the given gender, rejects impossible
// percentages and attaches the classification band. Inputs must already have
// passed schema validation.
func CalculateResults(id models.FormulaID, gender models.Gender, in models.Inputs, system models.MeasurementSystem) (*models.CalculationResult, error) {
	f, err := Get(id)
	if err != nil {
		return nil, err
	}

	raw, err := f.Calculate(in.WithGender(gender), system)
	if err != nil {
		return nil, fmt.Errorf("calculating %s: %w", id, err)
	}

	if check := composition.ValidateBodyFat(raw.BodyFatPercentage); !check.IsValid {
		return nil, &ResultError{Formula: id, Percentage: raw.BodyFatPercentage, Message: check.Message}
	}

	return &models.CalculationResult{
		FormulaResult:  raw,
		Classification: composition.Classify(raw.BodyFatPercentage, gender),
	}, nil
}

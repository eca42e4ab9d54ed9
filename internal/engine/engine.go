// Package engine is the single entry point the HTTP and MCP surfaces use to
// validate measurements, run formulas and convert units.
package engine

import (
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/claude/bodyfat/internal/composition"
	"github.com/claude/bodyfat/internal/formulas"
	"github.com/claude/bodyfat/internal/models"
	"github.com/claude/bodyfat/internal/schema"
	"github.com/claude/bodyfat/internal/units"
)

// ErrValidation is wrapped by every ValidationError.
var ErrValidation = errors.New("validation failed")

// ValidationError carries the per-field messages of a rejected request.
type ValidationError struct {
	Fields map[models.Field]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for f := range e.Fields {
		keys = append(keys, string(f))
	}
	sort.Strings(keys)
	return fmt.Sprintf("validation failed: %s", strings.Join(keys, ", "))
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// CalculateRequest is the wire shape shared by calculate and validate.
// Input keys may use canonical field names or their short aliases.
type CalculateRequest struct {
	Formula models.FormulaID         `json:"formula"`
	Gender  models.Gender            `json:"gender"`
	System  models.MeasurementSystem `json:"system"`
	Inputs  map[string]float64       `json:"inputs"`
}

// FormulaInfo is a catalog entry for one formula.
type FormulaInfo struct {
	ID          models.FormulaID `json:"id"`
	Name        string           `json:"name"`
	Description string           `json:"description"`
	Accuracy    string           `json:"accuracy"`
}

// Conversion is the result of Convert.
type Conversion struct {
	Value      float64 `json:"value"`
	Unit       string  `json:"unit"`
	Formatted  string  `json:"formatted"`
	Reasonable bool    `json:"reasonable"`
}

// Classification is the result of Classify.
type Classification struct {
	Classification string `json:"classification"`
	Valid          bool   `json:"valid"`
	Message        string `json:"message,omitempty"`
}

// Engine is stateless and safe for concurrent use.
type Engine struct {
	logger *slog.Logger
}

// New creates an Engine that logs through logger.
func New(logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{logger: logger}
}

// canonical lowercases the enum fields so callers may send "Male" or
// "METRIC".
func (r CalculateRequest) canonical() CalculateRequest {
	r.Formula = models.FormulaID(strings.ToLower(strings.TrimSpace(string(r.Formula))))
	r.Gender = models.Gender(strings.ToLower(strings.TrimSpace(string(r.Gender))))
	r.System = models.MeasurementSystem(strings.ToLower(strings.TrimSpace(string(r.System))))
	return r
}

// normalize resolves input keys to canonical fields. Unrecognized keys and
// fields named by more than one key are returned as field errors.
func normalize(raw map[string]float64, gender models.Gender) (models.Inputs, map[models.Field]string) {
	values := make(map[models.Field]float64, len(raw))
	keys := make(map[models.Field][]string, len(raw))
	problems := map[models.Field]string{}
	for k, v := range raw {
		f, ok := models.NormalizeField(k)
		if !ok {
			problems[models.Field(k)] = fmt.Sprintf("Unknown measurement %q", k)
			continue
		}
		values[f] = v
		keys[f] = append(keys[f], k)
	}
	for f, ks := range keys {
		if len(ks) < 2 {
			continue
		}
		sort.Strings(ks)
		problems[f] = fmt.Sprintf("%s given more than once (%s)", f, strings.Join(ks, ", "))
		delete(values, f)
	}
	return models.NewInputs(gender, values), problems
}

// Validate checks a request without running the formula.
func (e *Engine) Validate(req CalculateRequest) schema.Result {
	req = req.canonical()
	res := schema.Result{Errors: map[models.Field]string{}}
	if !req.Gender.Valid() {
		res.Errors["gender"] = fmt.Sprintf("Unknown gender %q", req.Gender)
	}
	if !req.System.Valid() {
		res.Errors["system"] = fmt.Sprintf("Unknown measurement system %q", req.System)
	}

	in, problems := normalize(req.Inputs, req.Gender)
	if req.System.Valid() {
		for f, msg := range schema.ValidateInputs(req.Formula, in, req.Gender, req.System).Errors {
			res.Errors[f] = msg
		}
	}
	// Key problems replace the "is required" message for a dropped duplicate.
	for f, msg := range problems {
		res.Errors[f] = msg
	}

	res.Success = len(res.Errors) == 0
	if !res.Success {
		e.logger.Debug("measurements rejected",
			"formula", req.Formula, "gender", req.Gender, "system", req.System, "fields", len(res.Errors))
	}
	return res
}

// Calculate validates the request and runs its formula.
func (e *Engine) Calculate(req CalculateRequest) (*models.CalculationResult, error) {
	req = req.canonical()
	if res := e.Validate(req); !res.Success {
		return nil, &ValidationError{Fields: res.Errors}
	}
	in, _ := normalize(req.Inputs, req.Gender)

	result, err := formulas.CalculateResults(req.Formula, req.Gender, in, req.System)
	if err != nil {
		var re *formulas.ResultError
		if errors.As(err, &re) {
			e.logger.Warn("formula produced invalid result",
				"formula", re.Formula, "percentage", re.Percentage, "reason", re.Message)
		}
		return nil, err
	}
	return result, nil
}

// Formulas returns the catalog in display order.
func (e *Engine) Formulas() []FormulaInfo {
	ids := formulas.Available()
	out := make([]FormulaInfo, 0, len(ids))
	for _, id := range ids {
		d, ok := schema.Lookup(id)
		if !ok {
			continue
		}
		out = append(out, FormulaInfo{ID: d.ID, Name: d.Name, Description: d.Description, Accuracy: d.Accuracy})
	}
	return out
}

// Formula returns the full descriptor for id.
func (e *Engine) Formula(id models.FormulaID) (schema.Descriptor, error) {
	d, ok := schema.Lookup(id)
	if !ok {
		return schema.Descriptor{}, fmt.Errorf("%w: %q", formulas.ErrUnknownFormula, id)
	}
	return d, nil
}

// Fields returns the inputs id needs for gender, labelled for system.
func (e *Engine) Fields(id models.FormulaID, gender models.Gender, system models.MeasurementSystem) ([]schema.FieldSpec, error) {
	if !formulas.IsAvailable(id) {
		return nil, fmt.Errorf("%w: %q", formulas.ErrUnknownFormula, id)
	}
	if !gender.Valid() {
		return nil, fmt.Errorf("%w: unknown gender %q", units.ErrInvalidInput, gender)
	}
	if !system.Valid() {
		return nil, fmt.Errorf("%w: unknown measurement system %q", units.ErrInvalidInput, system)
	}
	return schema.FieldSpecs(id, gender, system)
}

// Convert converts value between systems and reports whether the converted
// value is plausible in the target system.
func (e *Engine) Convert(value float64, t models.ConversionType, from, to models.MeasurementSystem) (Conversion, error) {
	if !from.Valid() || !to.Valid() {
		return Conversion{}, fmt.Errorf("%w: unknown measurement system", units.ErrInvalidInput)
	}
	v, err := units.Convert(value, t, from, to)
	if err != nil {
		return Conversion{}, err
	}
	formatted, err := units.FormatMeasurement(v, t, to)
	if err != nil {
		return Conversion{}, err
	}
	return Conversion{
		Value:      v,
		Unit:       units.Unit(t, to),
		Formatted:  formatted,
		Reasonable: units.IsReasonableMeasurement(v, t, to),
	}, nil
}

// Classify validates and classifies a percentage. An invalid percentage is
// reported with Valid unset rather than as an error.
func (e *Engine) Classify(percentage float64, gender models.Gender) Classification {
	check := composition.ValidateBodyFat(percentage)
	if !check.IsValid {
		return Classification{Classification: composition.Unknown, Message: check.Message}
	}
	return Classification{Classification: composition.Classify(percentage, gender), Valid: true}
}

// CheckBodyFat reports whether percentage is a usable result.
func (e *Engine) CheckBodyFat(percentage float64) composition.Check {
	return composition.ValidateBodyFat(percentage)
}

// Mass splits weightKg into fat and lean mass.
func (e *Engine) Mass(percentage, weightKg float64) composition.MassMetrics {
	return composition.CalculateMassMetrics(percentage, weightKg)
}

// Bands returns the classification table for gender.
func (e *Engine) Bands(gender models.Gender) []composition.Band {
	return composition.Bands(gender)
}

// Units returns the unit label of every conversion type in system.
func (e *Engine) Units(system models.MeasurementSystem) (map[models.ConversionType]string, error) {
	if !system.Valid() {
		return nil, fmt.Errorf("%w: unknown measurement system %q", units.ErrInvalidInput, system)
	}
	out := map[models.ConversionType]string{}
	for _, t := range []models.ConversionType{
		models.ConversionWeight, models.ConversionLength, models.ConversionSkinfold, models.ConversionNone,
	} {
		out[t] = units.Unit(t, system)
	}
	return out, nil
}

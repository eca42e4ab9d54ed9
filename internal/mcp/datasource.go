package mcp

import (
	"context"

	"github.com/claude/bodyfat/internal/engine"
	"github.com/claude/bodyfat/internal/models"
	"github.com/claude/bodyfat/internal/schema"
)

// Calculator abstracts the engine for MCP tools. Local (in-process engine)
// and HTTPClient (remote via REST API) satisfy this interface.
type Calculator interface {
	Formulas(ctx context.Context) ([]engine.FormulaInfo, error)
	Formula(ctx context.Context, id models.FormulaID) (*schema.Descriptor, error)
	Fields(ctx context.Context, id models.FormulaID, gender models.Gender, system models.MeasurementSystem) ([]schema.FieldSpec, error)
	Calculate(ctx context.Context, req engine.CalculateRequest) (*models.CalculationResult, error)
	Validate(ctx context.Context, req engine.CalculateRequest) (*schema.Result, error)
	Convert(ctx context.Context, value float64, t models.ConversionType, from, to models.MeasurementSystem) (*engine.Conversion, error)
	Classify(ctx context.Context, percentage float64, gender models.Gender) (*engine.Classification, error)
}

// Local runs calculations in-process.
type Local struct {
	Engine *engine.Engine
}

// Compile-time check: Local satisfies Calculator.
var _ Calculator = Local{}

func (l Local) Formulas(context.Context) ([]engine.FormulaInfo, error) {
	return l.Engine.Formulas(), nil
}

func (l Local) Formula(_ context.Context, id models.FormulaID) (*schema.Descriptor, error) {
	d, err := l.Engine.Formula(id)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (l Local) Fields(_ context.Context, id models.FormulaID, gender models.Gender, system models.MeasurementSystem) ([]schema.FieldSpec, error) {
	return l.Engine.Fields(id, gender, system)
}

func (l Local) Calculate(_ context.Context, req engine.CalculateRequest) (*models.CalculationResult, error) {
	return l.Engine.Calculate(req)
}

func (l Local) Validate(_ context.Context, req engine.CalculateRequest) (*schema.Result, error) {
	res := l.Engine.Validate(req)
	return &res, nil
}

func (l Local) Convert(_ context.Context, value float64, t models.ConversionType, from, to models.MeasurementSystem) (*engine.Conversion, error) {
	c, err := l.Engine.Convert(value, t, from, to)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (l Local) Classify(_ context.Context, percentage float64, gender models.Gender) (*engine.Classification, error) {
	c := l.Engine.Classify(percentage, gender)
	return &c, nil
}

package mcp

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/claude/bodyfat/internal/engine"
	"github.com/claude/bodyfat/internal/models"
)

// measurements reads the "measurements" object argument. Every value must
// be a JSON number.
func measurements(req mcp.CallToolRequest) (map[string]float64, error) {
	raw, ok := req.GetArguments()["measurements"]
	if !ok || raw == nil {
		return nil, errors.New("measurements parameter is required")
	}
	obj, ok := raw.(map[string]any)
	if !ok {
		return nil, errors.New("measurements must be an object of field name to number")
	}
	out := make(map[string]float64, len(obj))
	for k, v := range obj {
		f, ok := v.(float64)
		if !ok {
			return nil, fmt.Errorf("measurement %q must be a number", k)
		}
		out[k] = f
	}
	return out, nil
}

// calculateRequest builds an engine request from the shared tool arguments.
func calculateRequest(req mcp.CallToolRequest) (engine.CalculateRequest, error) {
	formula, err := req.RequireString("formula")
	if err != nil {
		return engine.CalculateRequest{}, errors.New("formula parameter is required")
	}
	gender, err := req.RequireString("gender")
	if err != nil {
		return engine.CalculateRequest{}, errors.New("gender parameter is required")
	}
	inputs, err := measurements(req)
	if err != nil {
		return engine.CalculateRequest{}, err
	}
	return engine.CalculateRequest{
		Formula: models.FormulaID(formula),
		Gender:  models.Gender(gender),
		System:  models.MeasurementSystem(req.GetString("system", string(models.SystemMetric))),
		Inputs:  inputs,
	}, nil
}

// fieldErrors renders a validation field map one message per line, sorted
// by field.
func fieldErrors(fields map[models.Field]string) string {
	keys := make([]string, 0, len(fields))
	for f := range fields {
		keys = append(keys, string(f))
	}
	sort.Strings(keys)
	lines := make([]string, 0, len(keys))
	for _, k := range keys {
		lines = append(lines, k+": "+fields[models.Field(k)])
	}
	return strings.Join(lines, "\n")
}

// --- Tool definitions ---

var toolListFormulas = mcp.NewTool("list_formulas",
	mcp.WithDescription("List every supported body fat formula with its description and typical accuracy."),
)

var toolGetFormulaFields = mcp.NewTool("get_formula_fields",
	mcp.WithDescription("List the measurements a formula needs for a gender, with unit labels and accepted bounds for the chosen measurement system."),
	mcp.WithString("formula", mcp.Required(), mcp.Description("Formula ID"),
		mcp.Enum("ymca", "mymca", "navy", "covert", "jack3", "durnin", "jack4", "jack7", "parrillo")),
	mcp.WithString("gender", mcp.Required(), mcp.Enum("male", "female")),
	mcp.WithString("system", mcp.Description("Measurement system. Defaults to metric."), mcp.Enum("metric", "imperial")),
)

var toolCalculateBodyFat = mcp.NewTool("calculate_body_fat",
	mcp.WithDescription("Calculate body fat percentage, fat mass and lean mass (kg) and the classification band. "+
		"Weights are kg or lb and circumferences cm or in depending on system; skinfolds are always mm and age is years."),
	mcp.WithString("formula", mcp.Required(), mcp.Description("Formula ID"),
		mcp.Enum("ymca", "mymca", "navy", "covert", "jack3", "durnin", "jack4", "jack7", "parrillo")),
	mcp.WithString("gender", mcp.Required(), mcp.Enum("male", "female")),
	mcp.WithString("system", mcp.Description("Measurement system. Defaults to metric."), mcp.Enum("metric", "imperial")),
	mcp.WithObject("measurements", mcp.Required(),
		mcp.Description("Field name to value, e.g. {\"weight\": 80, \"waistCircumference\": 85}. Short names like \"waist\" are accepted.")),
)

var toolValidateMeasurements = mcp.NewTool("validate_measurements",
	mcp.WithDescription("Check measurements against a formula without calculating. Returns a message for every missing or out-of-range field."),
	mcp.WithString("formula", mcp.Required(), mcp.Description("Formula ID")),
	mcp.WithString("gender", mcp.Required(), mcp.Enum("male", "female")),
	mcp.WithString("system", mcp.Description("Measurement system. Defaults to metric."), mcp.Enum("metric", "imperial")),
	mcp.WithObject("measurements", mcp.Required(), mcp.Description("Field name to value")),
)

var toolConvertMeasurement = mcp.NewTool("convert_measurement",
	mcp.WithDescription("Convert a weight or length between metric and imperial. Skinfold and age values are only rounded."),
	mcp.WithNumber("value", mcp.Required(), mcp.Description("Non-negative value to convert")),
	mcp.WithString("type", mcp.Required(), mcp.Enum("weight", "length", "skinfold", "none")),
	mcp.WithString("from", mcp.Required(), mcp.Enum("metric", "imperial")),
	mcp.WithString("to", mcp.Required(), mcp.Enum("metric", "imperial")),
)

var toolClassifyBodyFat = mcp.NewTool("classify_body_fat",
	mcp.WithDescription("Name the band (essential, athletic, fitness, acceptable, obese) a body fat percentage falls in."),
	mcp.WithNumber("percentage", mcp.Required(), mcp.Description("Body fat percentage, 0-100")),
	mcp.WithString("gender", mcp.Required(), mcp.Enum("male", "female")),
)

// --- Tool handlers ---

func (h *handlers) listFormulas(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	formulas, err := h.calc.Formulas(ctx)
	if err != nil {
		h.log.Error("mcp list_formulas", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(formulas)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getFormulaFields(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	formula, err := req.RequireString("formula")
	if err != nil {
		return mcp.NewToolResultError("formula parameter is required"), nil
	}
	gender, err := models.ParseGender(req.GetString("gender", ""))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	system, err := models.ParseMeasurementSystem(req.GetString("system", string(models.SystemMetric)))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	fields, err := h.calc.Fields(ctx, models.FormulaID(formula), gender, system)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(map[string]any{
		"formula": formula,
		"gender":  gender,
		"system":  system,
		"fields":  fields,
	})
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) calculateBodyFat(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	creq, err := calculateRequest(req)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	res, err := h.calc.Calculate(ctx, creq)
	if err != nil {
		var ve *engine.ValidationError
		if errors.As(err, &ve) {
			return mcp.NewToolResultError("invalid measurements:\n" + fieldErrors(ve.Fields)), nil
		}
		return mcp.NewToolResultError(err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(res)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) validateMeasurements(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	creq, err := calculateRequest(req)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	res, err := h.calc.Validate(ctx, creq)
	if err != nil {
		h.log.Error("mcp validate_measurements", "error", err)
		return mcp.NewToolResultError("validation failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(res)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) convertMeasurement(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	value, err := req.RequireFloat("value")
	if err != nil {
		return mcp.NewToolResultError("value parameter is required"), nil
	}
	t, err := models.ParseConversionType(req.GetString("type", ""))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	from, err := models.ParseMeasurementSystem(req.GetString("from", ""))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	to, err := models.ParseMeasurementSystem(req.GetString("to", ""))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	conv, err := h.calc.Convert(ctx, value, t, from, to)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(conv)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) classifyBodyFat(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	pct, err := req.RequireFloat("percentage")
	if err != nil {
		return mcp.NewToolResultError("percentage parameter is required"), nil
	}
	gender, err := models.ParseGender(req.GetString("gender", ""))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	c, err := h.calc.Classify(ctx, pct, gender)
	if err != nil {
		h.log.Error("mcp classify_body_fat", "error", err)
		return mcp.NewToolResultError("classification failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(c)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

package mcp

import (
	"context"
	"encoding/json"
	"math"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/claude/bodyfat/internal/composition"
	"github.com/claude/bodyfat/internal/models"
	"github.com/claude/bodyfat/internal/schema"
	"github.com/claude/bodyfat/internal/units"
)

func jsonResource(uri string, v any) ([]mcp.ResourceContents, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}

// formulaCatalog lists every formula with its field requirements, as
// reported by the calculator (the remote server in -url mode).
func (h *handlers) formulaCatalog(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	infos, err := h.calc.Formulas(ctx)
	if err != nil {
		return nil, err
	}

	catalog := make([]schema.Descriptor, 0, len(infos))
	for _, info := range infos {
		d, err := h.calc.Formula(ctx, info.ID)
		if err != nil {
			return nil, err
		}
		catalog = append(catalog, *d)
	}
	return jsonResource(req.Params.URI, catalog)
}

// band mirrors composition.Band with an open upper bound encoded as null,
// since JSON has no infinity.
type band struct {
	Label        string   `json:"label"`
	Min          float64  `json:"min"`
	Max          *float64 `json:"max"`
	MaxInclusive bool     `json:"max_inclusive"`
}

func bandsFor(gender models.Gender) []band {
	src := composition.Bands(gender)
	out := make([]band, 0, len(src))
	for _, b := range src {
		v := band{Label: b.Label, Min: b.Min, MaxInclusive: b.MaxInclusive}
		if !math.IsInf(b.Max, 1) {
			upper := b.Max
			v.Max = &upper
		}
		out = append(out, v)
	}
	return out
}

func (h *handlers) classificationBands(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	return jsonResource(req.Params.URI, map[models.Gender][]band{
		models.GenderMale:   bandsFor(models.GenderMale),
		models.GenderFemale: bandsFor(models.GenderFemale),
	})
}

func (h *handlers) unitLabels(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	types := []models.ConversionType{
		models.ConversionWeight, models.ConversionLength, models.ConversionSkinfold, models.ConversionNone,
	}
	out := map[models.MeasurementSystem]map[models.ConversionType]string{}
	for _, system := range []models.MeasurementSystem{models.SystemMetric, models.SystemImperial} {
		labels := map[models.ConversionType]string{}
		for _, t := range types {
			labels[t] = units.Unit(t, system)
		}
		out[system] = labels
	}
	return jsonResource(req.Params.URI, out)
}

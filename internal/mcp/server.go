package mcp

import (
	"log/slog"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// New creates an MCP server with all tools and resources registered.
func New(calc Calculator, version string, log *slog.Logger) *server.MCPServer {
	s := server.NewMCPServer("bodyfat", version,
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
		server.WithInstructions("Body fat calculator. List formulas, fetch the measurements a formula needs, "+
			"then calculate body fat percentage, fat mass and lean mass from metric or imperial measurements."),
	)

	h := &handlers{calc: calc, log: log}

	// Tools
	s.AddTools(
		server.ServerTool{Tool: toolListFormulas, Handler: h.listFormulas},
		server.ServerTool{Tool: toolGetFormulaFields, Handler: h.getFormulaFields},
		server.ServerTool{Tool: toolCalculateBodyFat, Handler: h.calculateBodyFat},
		server.ServerTool{Tool: toolValidateMeasurements, Handler: h.validateMeasurements},
		server.ServerTool{Tool: toolConvertMeasurement, Handler: h.convertMeasurement},
		server.ServerTool{Tool: toolClassifyBodyFat, Handler: h.classifyBodyFat},
	)

	// Resources
	s.AddResources(
		server.ServerResource{Resource: resFormulaCatalog, Handler: h.formulaCatalog},
		server.ServerResource{Resource: resClassificationBands, Handler: h.classificationBands},
		server.ServerResource{Resource: resUnits, Handler: h.unitLabels},
	)

	return s
}

// handlers holds dependencies for MCP tool/resource handlers.
type handlers struct {
	calc Calculator
	log  *slog.Logger
}

// --- Resource definitions ---

var resFormulaCatalog = mcp.NewResource(
	"bodyfat://formula_catalog",
	"Formula Catalog",
	mcp.WithResourceDescription("Every supported formula with description, accuracy and required measurements"),
	mcp.WithMIMEType("application/json"),
)

var resClassificationBands = mcp.NewResource(
	"bodyfat://classification_bands",
	"Classification Bands",
	mcp.WithResourceDescription("Body fat percentage bands for men and women"),
	mcp.WithMIMEType("application/json"),
)

var resUnits = mcp.NewResource(
	"bodyfat://units",
	"Units",
	mcp.WithResourceDescription("Unit label of each measurement type in the metric and imperial systems"),
	mcp.WithMIMEType("application/json"),
)

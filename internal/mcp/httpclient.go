package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/claude/bodyfat/internal/engine"
	"github.com/claude/bodyfat/internal/formulas"
	"github.com/claude/bodyfat/internal/models"
	"github.com/claude/bodyfat/internal/schema"
)

// HTTPClient implements Calculator by calling the bodyfat REST API.
// Used for remote MCP mode where the binary runs locally (stdio) but
// the engine runs on the remote server (accessed over Tailscale).
type HTTPClient struct {
	baseURL    string
	httpClient *http.Client
}

// Compile-time check: HTTPClient satisfies Calculator.
var _ Calculator = (*HTTPClient)(nil)

// NewHTTPClient creates an HTTPClient targeting the given base URL.
func NewHTTPClient(baseURL string) *HTTPClient {
	return &HTTPClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// apiError is the decoded error body of a non-200 response.
type apiError struct {
	Status int                     `json:"-"`
	Path   string                  `json:"-"`
	Error  string                  `json:"error"`
	Fields map[models.Field]string `json:"fields"`
}

func (c *HTTPClient) do(ctx context.Context, method, path string, params url.Values, in, out any) error {
	u := c.baseURL + path
	if len(params) > 0 {
		u += "?" + params.Encode()
	}

	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("httpclient: encode request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return fmt.Errorf("httpclient: create request: %w", err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("httpclient: %s: %w", path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("httpclient: read body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		apiErr := &apiError{Status: resp.StatusCode, Path: path}
		if json.Unmarshal(data, apiErr) != nil || apiErr.Error == "" {
			apiErr.Error = strings.TrimSpace(string(data))
		}
		return apiErr.asError()
	}

	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("httpclient: decode %s: %w", path, err)
	}
	return nil
}

// asError restores the domain error the server encoded, so callers can
// match it the same way as a local engine error.
func (e *apiError) asError() error {
	switch {
	case e.Status == http.StatusUnprocessableEntity && len(e.Fields) > 0:
		return &engine.ValidationError{Fields: e.Fields}
	case e.Status == http.StatusUnprocessableEntity:
		return fmt.Errorf("%w: %s", formulas.ErrInvalidResult, e.Error)
	case e.Status == http.StatusNotFound:
		return fmt.Errorf("%w: %s", formulas.ErrUnknownFormula, e.Error)
	}
	return fmt.Errorf("httpclient: %s returned %d: %s", e.Path, e.Status, e.Error)
}

func (c *HTTPClient) Formulas(ctx context.Context) ([]engine.FormulaInfo, error) {
	var out []engine.FormulaInfo
	if err := c.do(ctx, http.MethodGet, "/api/v1/formulas", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *HTTPClient) Formula(ctx context.Context, id models.FormulaID) (*schema.Descriptor, error) {
	var out schema.Descriptor
	if err := c.do(ctx, http.MethodGet, "/api/v1/formulas/"+url.PathEscape(string(id)), nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) Fields(ctx context.Context, id models.FormulaID, gender models.Gender, system models.MeasurementSystem) ([]schema.FieldSpec, error) {
	params := url.Values{}
	params.Set("gender", string(gender))
	params.Set("system", string(system))

	var out struct {
		Fields []schema.FieldSpec `json:"fields"`
	}
	path := "/api/v1/formulas/" + url.PathEscape(string(id)) + "/fields"
	if err := c.do(ctx, http.MethodGet, path, params, nil, &out); err != nil {
		return nil, err
	}
	return out.Fields, nil
}

func (c *HTTPClient) Calculate(ctx context.Context, req engine.CalculateRequest) (*models.CalculationResult, error) {
	var out models.CalculationResult
	if err := c.do(ctx, http.MethodPost, "/api/v1/calculate", nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) Validate(ctx context.Context, req engine.CalculateRequest) (*schema.Result, error) {
	var out schema.Result
	if err := c.do(ctx, http.MethodPost, "/api/v1/validate", nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) Convert(ctx context.Context, value float64, t models.ConversionType, from, to models.MeasurementSystem) (*engine.Conversion, error) {
	in := map[string]any{"value": value, "type": t, "from": from, "to": to}
	var out engine.Conversion
	if err := c.do(ctx, http.MethodPost, "/api/v1/convert", nil, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) Classify(ctx context.Context, percentage float64, gender models.Gender) (*engine.Classification, error) {
	params := url.Values{}
	params.Set("percentage", strconv.FormatFloat(percentage, 'f', -1, 64))
	params.Set("gender", string(gender))

	var out engine.Classification
	if err := c.do(ctx, http.MethodGet, "/api/v1/classify", params, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/claude/bodyfat/internal/engine"
	"github.com/claude/bodyfat/internal/formulas"
	"github.com/claude/bodyfat/internal/models"
	"github.com/claude/bodyfat/internal/prefs"
	"github.com/claude/bodyfat/internal/units"
)

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleListFormulas(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.engine.Formulas())
}

func (s *Server) handleGetFormula(w http.ResponseWriter, r *http.Request) {
	d, err := s.engine.Formula(models.FormulaID(chi.URLParam(r, "id")))
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, d)
}

func (s *Server) handleFormulaFields(w http.ResponseWriter, r *http.Request) {
	id := models.FormulaID(chi.URLParam(r, "id"))

	gender := s.defaults.Gender
	if g := r.URL.Query().Get("gender"); g != "" {
		parsed, err := models.ParseGender(g)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
			return
		}
		gender = parsed
	}
	system, ok := s.systemParam(w, r)
	if !ok {
		return
	}

	specs, err := s.engine.Fields(id, gender, system)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"formula": id,
		"gender":  gender,
		"system":  system,
		"fields":  specs,
	})
}

func (s *Server) handleCalculate(w http.ResponseWriter, r *http.Request) {
	var req engine.CalculateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}

	result, err := s.engine.Calculate(req)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleValidate(w http.ResponseWriter, r *http.Request) {
	var req engine.CalculateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, s.engine.Validate(req))
}

type convertRequest struct {
	Value float64 `json:"value"`
	Type  string  `json:"type"`
	From  string  `json:"from"`
	To    string  `json:"to"`
}

func (s *Server) handleConvert(w http.ResponseWriter, r *http.Request) {
	var req convertRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}
	t, err := models.ParseConversionType(req.Type)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	from, err := models.ParseMeasurementSystem(req.From)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	to, err := models.ParseMeasurementSystem(req.To)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	conv, err := s.engine.Convert(req.Value, t, from, to)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, conv)
}

func (s *Server) handleClassify(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get("percentage")
	if raw == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "percentage parameter required"})
		return
	}
	pct, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "percentage must be a number"})
		return
	}
	gender, err := models.ParseGender(r.URL.Query().Get("gender"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, s.engine.Classify(pct, gender))
}

func (s *Server) handleUnits(w http.ResponseWriter, r *http.Request) {
	system, ok := s.systemParam(w, r)
	if !ok {
		return
	}
	labels, err := s.engine.Units(system)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"system": system, "units": labels})
}

// systemParam reads the optional system query parameter, defaulting to the
// configured system. It writes a 400 and returns false when unparseable.
func (s *Server) systemParam(w http.ResponseWriter, r *http.Request) (models.MeasurementSystem, bool) {
	raw := r.URL.Query().Get("system")
	if raw == "" {
		return s.defaults.System, true
	}
	system, err := models.ParseMeasurementSystem(raw)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return "", false
	}
	return system, true
}

// writeError maps domain errors to status codes. Anything unrecognized is
// logged and reported as 500.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	var ve *engine.ValidationError
	switch {
	case errors.As(err, &ve):
		writeJSON(w, http.StatusUnprocessableEntity, map[string]any{"error": "validation failed", "fields": ve.Fields})
	case errors.Is(err, formulas.ErrInvalidResult):
		writeJSON(w, http.StatusUnprocessableEntity, map[string]string{"error": err.Error()})
	case errors.Is(err, formulas.ErrUnknownFormula):
		writeJSON(w, http.StatusNotFound, map[string]string{"error": err.Error()})
	case errors.Is(err, units.ErrInvalidInput), errors.Is(err, units.ErrUnknownType), errors.Is(err, prefs.ErrInvalid):
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
	default:
		s.log.Error("request failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

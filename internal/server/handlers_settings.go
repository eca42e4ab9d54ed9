package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/claude/bodyfat/internal/models"
	"github.com/claude/bodyfat/internal/prefs"
)

// preferencesResponse adds whether the selection was saved or falls back to
// the server defaults.
type preferencesResponse struct {
	prefs.Preferences
	Saved bool `json:"saved"`
}

func (s *Server) handleGetPreferences(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r)
	p, err := s.prefs.Get(r.Context(), user)
	if errors.Is(err, prefs.ErrNotFound) {
		writeJSON(w, http.StatusOK, preferencesResponse{Preferences: prefs.Preferences{
			User:    user,
			Formula: s.defaults.Formula,
			System:  s.defaults.System,
			Gender:  s.defaults.Gender,
		}})
		return
	}
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, preferencesResponse{Preferences: *p, Saved: true})
}

type preferencesRequest struct {
	Formula string `json:"formula"`
	System  string `json:"system"`
	Gender  string `json:"gender"`
}

func (s *Server) handlePutPreferences(w http.ResponseWriter, r *http.Request) {
	var req preferencesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}

	p := prefs.Preferences{
		User:    userFromContext(r),
		Formula: models.FormulaID(strings.ToLower(strings.TrimSpace(req.Formula))),
		System:  models.MeasurementSystem(req.System),
		Gender:  models.Gender(req.Gender),
	}
	// Enums are case-insensitive on input; unparseable values are left as
	// sent so the store reports them.
	if sys, err := models.ParseMeasurementSystem(req.System); err == nil {
		p.System = sys
	}
	if g, err := models.ParseGender(req.Gender); err == nil {
		p.Gender = g
	}

	saved, err := s.prefs.Put(r.Context(), p)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.log.Info("preferences saved", "user", saved.User, "formula", saved.Formula, "system", saved.System)
	writeJSON(w, http.StatusOK, preferencesResponse{Preferences: *saved, Saved: true})
}

package server

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/claude/bodyfat/internal/engine"
	"github.com/claude/bodyfat/internal/models"
	"github.com/claude/bodyfat/internal/prefs"
)

// PreferenceStore persists each user's current selections.
type PreferenceStore interface {
	Get(ctx context.Context, user string) (*prefs.Preferences, error)
	Put(ctx context.Context, p prefs.Preferences) (*prefs.Preferences, error)
}

// Defaults are the selections reported for users who have saved none.
type Defaults struct {
	Formula models.FormulaID
	System  models.MeasurementSystem
	Gender  models.Gender
}

// Server holds dependencies for HTTP handlers.
type Server struct {
	engine   *engine.Engine
	prefs    PreferenceStore
	defaults Defaults
	log      *slog.Logger
	apiKey   string
	whois    WhoIser
	router   chi.Router
}

// New creates a new Server with all routes configured.
func New(eng *engine.Engine, store PreferenceStore, defaults Defaults, apiKey string, log *slog.Logger) *Server {
	if defaults.Formula == "" {
		defaults.Formula = models.FormulaNavy
	}
	if defaults.System == "" {
		defaults.System = models.SystemMetric
	}
	if defaults.Gender == "" {
		defaults.Gender = models.GenderMale
	}
	s := &Server{
		engine:   eng,
		prefs:    store,
		defaults: defaults,
		log:      log,
		apiKey:   apiKey,
		router:   chi.NewRouter(),
	}
	s.routes()
	return s
}

// SetTailscale makes the identity middleware resolve users from tailnet
// peers instead of the X-User header. Must be called before serving.
func (s *Server) SetTailscale(w WhoIser) {
	s.whois = w
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() {
	s.router.Use(RequestID)
	s.router.Use(RequestLogging(s.log))
	s.router.Use(CORS)

	s.router.Get("/healthz", s.handleHealth)

	s.router.Route("/api/v1", func(r chi.Router) {
		r.Get("/formulas", s.handleListFormulas)
		r.Get("/formulas/{id}", s.handleGetFormula)
		r.Get("/formulas/{id}/fields", s.handleFormulaFields)
		r.Post("/calculate", s.handleCalculate)
		r.Post("/validate", s.handleValidate)
		r.Post("/convert", s.handleConvert)
		r.Get("/classify", s.handleClassify)
		r.Get("/units", s.handleUnits)

		// Preferences (API key required)
		r.Group(func(r chi.Router) {
			r.Use(APIKeyAuth(s.apiKey))
			r.Use(Identity(func() WhoIser { return s.whois }))
			r.Get("/preferences", s.handleGetPreferences)
			r.Put("/preferences", s.handlePutPreferences)
		})
	})
}

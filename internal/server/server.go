package server

import (
	"io/fs"
	"log/slog"
	"net/http"

	"github.com/claude/restbell/internal/plan"
	"github.com/claude/restbell/internal/preset"
	"github.com/claude/restbell/internal/timer"
	"github.com/go-chi/chi/v5"
)

// Server holds dependencies for HTTP handlers. Every surface it serves
// talks to the one shared timer service; the server itself keeps no timer
// state.
type Server struct {
	timer   *timer.Service
	week    *plan.Week
	presets []preset.Preset
	log     *slog.Logger
	apiKey  string
	router  chi.Router
}

// New creates a new Server with all routes configured.
func New(t *timer.Service, week *plan.Week, presets []preset.Preset, apiKey string, log *slog.Logger) *Server {
	s := &Server{
		timer:   t,
		week:    week,
		presets: presets,
		log:     log,
		apiKey:  apiKey,
		router:  chi.NewRouter(),
	}
	s.routes()
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() {
	s.router.Use(RequestLogging(s.log))
	s.router.Use(CORS)

	s.router.Get("/api/v1/healthz", s.handleHealthz)

	// Timer: reads and the event stream are open, mutations need the key.
	s.router.Route("/api/v1/timer", func(r chi.Router) {
		r.Get("/", s.handleTimerState)
		r.Get("/events", s.handleTimerEvents)

		r.Group(func(r chi.Router) {
			r.Use(APIKeyAuth(s.apiKey))
			r.Post("/start", s.handleTimerStart)
			r.Post("/pause", s.handleTimerPause)
			r.Post("/stop", s.handleTimerStop)
			r.Post("/duration", s.handleTimerDuration)
			r.Post("/quickstart", s.handleTimerQuickStart)
			r.Post("/panel", s.handleTimerPanel)
		})
	})

	// Static content: the weekly plan and its lookups.
	s.router.Get("/api/v1/plan", s.handlePlan)
	s.router.Get("/api/v1/plan/{day}", s.handlePlanDay)
	s.router.Get("/api/v1/exercises/search", s.handleExerciseSearch)
	s.router.Get("/api/v1/presets", s.handlePresets)
	s.router.Get("/api/v1/video/embed", s.handleVideoEmbed)
}

// SetMCP mounts the Model Context Protocol endpoint. MCP clients talk to
// the same timer service as every other surface.
func (s *Server) SetMCP(h http.Handler) {
	s.router.Mount("/mcp", h)
}

// SetFrontend mounts the embedded SPA filesystem.
// Unmatched routes serve index.html for client-side routing.
func (s *Server) SetFrontend(webFS fs.FS) {
	fileServer := http.FileServerFS(webFS)

	s.router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		// Try to serve the exact file first
		f, err := webFS.Open(r.URL.Path[1:]) // strip leading /
		if err == nil {
			f.Close()
			fileServer.ServeHTTP(w, r)
			return
		}
		// Fallback to index.html for SPA routing
		r.URL.Path = "/"
		fileServer.ServeHTTP(w, r)
	})
}

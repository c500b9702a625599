package server

import (
	"encoding/json"
	"math"
	"net/http"

	"github.com/claude/restbell/internal/plan"
	"github.com/claude/restbell/internal/timer"
	"github.com/claude/restbell/internal/video"
	"github.com/go-chi/chi/v5"
)

// timerResponse is the state snapshot every surface renders from.
type timerResponse struct {
	timer.State
	Display string `json:"display"`
}

func (s *Server) timerSnapshot() timerResponse {
	st := s.timer.State()
	return timerResponse{State: st, Display: st.Display()}
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleTimerState(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.timerSnapshot())
}

func (s *Server) handleTimerStart(w http.ResponseWriter, r *http.Request) {
	s.timer.Start()
	writeJSON(w, http.StatusOK, s.timerSnapshot())
}

func (s *Server) handleTimerPause(w http.ResponseWriter, r *http.Request) {
	s.timer.Pause()
	writeJSON(w, http.StatusOK, s.timerSnapshot())
}

func (s *Server) handleTimerStop(w http.ResponseWriter, r *http.Request) {
	s.timer.Stop()
	writeJSON(w, http.StatusOK, s.timerSnapshot())
}

// durationRequest accepts fractional seconds so sloppy clients are clamped
// to the nearest whole second instead of rejected.
type durationRequest struct {
	Seconds float64 `json:"seconds"`
}

func (r durationRequest) wholeSeconds() int {
	return int(math.Round(r.Seconds))
}

func (s *Server) handleTimerDuration(w http.ResponseWriter, r *http.Request) {
	var req durationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}
	s.timer.SetDuration(req.wholeSeconds())
	writeJSON(w, http.StatusOK, s.timerSnapshot())
}

func (s *Server) handleTimerQuickStart(w http.ResponseWriter, r *http.Request) {
	var req durationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}
	s.timer.QuickStart(req.wholeSeconds())
	writeJSON(w, http.StatusOK, s.timerSnapshot())
}

func (s *Server) handleTimerPanel(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Visible bool `json:"visible"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}
	if req.Visible {
		s.timer.ShowPanel()
	} else {
		s.timer.HidePanel()
	}
	writeJSON(w, http.StatusOK, s.timerSnapshot())
}

func (s *Server) handlePlan(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.week)
}

func (s *Server) handlePlanDay(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "day")
	day, ok := s.week.Day(key)
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "unknown day: " + key})
		return
	}
	writeJSON(w, http.StatusOK, day)
}

func (s *Server) handleExerciseSearch(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	if q == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "q parameter required"})
		return
	}
	hits := s.week.Search(q)
	if hits == nil {
		hits = []plan.Match{}
	}
	writeJSON(w, http.StatusOK, hits)
}

func (s *Server) handlePresets(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.presets)
}

// handleVideoEmbed resolves a reference link to a player reference. A link
// we cannot parse is a placeholder, not an error.
func (s *Server) handleVideoEmbed(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get("url")
	if raw == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "url parameter required"})
		return
	}
	emb := video.Parse(raw)
	if !emb.Playable {
		s.log.Info("unparseable video url", "url", raw)
	}
	writeJSON(w, http.StatusOK, emb)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

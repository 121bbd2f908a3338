package server

import (
	"net/http"
	"strings"
	"sync"

	"github.com/patii/workcity/internal/log"
	"github.com/patii/workcity/internal/theme"
)

// health holds the latest result of checking style.css against the
// registrar's constants.
type health struct {
	mu       sync.RWMutex
	problems []theme.Problem
	err      error
}

func (h *health) set(problems []theme.Problem, err error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.problems = problems
	h.err = err
}

// report returns the lines describing what is wrong, or nil when healthy.
func (h *health) report() []string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if h.err != nil {
		return []string{"stylesheet: " + h.err.Error()}
	}
	if len(h.problems) == 0 {
		return nil
	}
	lines := make([]string, 0, len(h.problems))
	for _, p := range h.problems {
		lines = append(lines, p.String())
	}
	return lines
}

// recheck re-reads style.css and records any header mismatch.
func (s *Server) recheck() {
	problems, err := theme.Check(s.themeFS)
	s.health.set(problems, err)
	if err != nil {
		log.Warn(log.CatTheme, "stylesheet check failed", "error", err.Error())
		return
	}
	for _, p := range problems {
		log.Warn(log.CatTheme, "stylesheet header mismatch", "field", p.Field, "want", p.Want, "got", p.Got)
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	if lines := s.health.report(); len(lines) > 0 {
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte(strings.Join(lines, "\n") + "\n"))
		return
	}
	_, _ = w.Write([]byte("ok"))
}

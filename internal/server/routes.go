package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/leapstack-labs/leapview/pkg/scenario"
)

// routes mounts the API surface.
func (s *Server) routes(r chi.Router) {
	r.Route("/api", func(r chi.Router) {
		r.Get("/scenarios", s.handleListScenarios)
		r.Get("/scenarios/{key}", s.handleGetScenario)
		r.Get("/events", s.handleEvents)
	})
}

// scenarioSummary is the list-endpoint projection of a state record.
type scenarioSummary struct {
	Key         string    `json:"key"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Version     string    `json:"version"`
	CompiledAt  time.Time `json:"compiledAt"`
}

func (s *Server) handleListScenarios(w http.ResponseWriter, r *http.Request) {
	records, err := s.store.ListScenarios()
	if err != nil {
		s.jsonError(w, http.StatusInternalServerError, err)
		return
	}

	out := make([]scenarioSummary, 0, len(records))
	for _, rec := range records {
		out = append(out, scenarioSummary{
			Key:         rec.Key,
			Name:        rec.Name,
			Description: rec.Description,
			Version:     rec.Version,
			CompiledAt:  rec.CompiledAt,
		})
	}
	s.json(w, http.StatusOK, map[string]any{"scenarios": out})
}

func (s *Server) handleGetScenario(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")
	if !scenario.KeyPattern.MatchString(key) {
		s.jsonError(w, http.StatusBadRequest, fmt.Errorf("invalid scenario key %q", key))
		return
	}

	rec, err := s.store.GetScenario(key)
	if err != nil {
		s.jsonError(w, http.StatusNotFound, err)
		return
	}

	doc, err := os.ReadFile(rec.OutputPath)
	if err != nil {
		s.jsonError(w, http.StatusInternalServerError, fmt.Errorf("reading compiled scenario: %w", err))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-cache")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(doc)
}

// handleEvents streams rebuild notifications as server-sent events.
func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("Access-Control-Allow-Origin", "*")

	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "SSE not supported", http.StatusInternalServerError)
		return
	}

	ch := s.notifier.Subscribe()
	defer s.notifier.Unsubscribe(ch)

	_, _ = fmt.Fprintf(w, "data: connected\n\n")
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			return
		case <-ch:
			_, _ = fmt.Fprintf(w, "data: updated\n\n")
			flusher.Flush()
		}
	}
}

func (s *Server) json(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("failed to encode response", "error", err)
	}
}

func (s *Server) jsonError(w http.ResponseWriter, status int, err error) {
	s.json(w, status, map[string]string{"error": err.Error()})
}

package server

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
)

// respondJSON writes a JSON response
func (s *Server) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.log.Error().Err(err).Msg("Failed to encode response")
	}
}

// respondError writes a JSON error response
func (s *Server) respondError(w http.ResponseWriter, status int, message string) {
	s.respondJSON(w, status, map[string]string{"error": message})
}

// handleHealth reports liveness.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleReport returns the full report of the current run.
func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	running, _, rep, _ := s.state.Snapshot()
	if rep == nil {
		if running {
			s.respondError(w, http.StatusConflict, "evaluation still running")
			return
		}
		s.respondError(w, http.StatusNotFound, "no completed run")
		return
	}
	s.respondJSON(w, http.StatusOK, rep)
}

// handleSummary returns only the summary statistics of the current run.
func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	_, _, rep, _ := s.state.Snapshot()
	if rep == nil {
		s.respondError(w, http.StatusNotFound, "no completed run")
		return
	}
	s.respondJSON(w, http.StatusOK, rep.Summary)
}

// handleEpisodes returns the per-episode records of the current run.
func (s *Server) handleEpisodes(w http.ResponseWriter, r *http.Request) {
	_, _, _, records := s.state.Snapshot()
	if records == nil {
		s.respondError(w, http.StatusNotFound, "no completed run")
		return
	}
	s.respondJSON(w, http.StatusOK, records)
}

// handleProgress returns the latest batch progress snapshot.
func (s *Server) handleProgress(w http.ResponseWriter, r *http.Request) {
	running, progress, _, _ := s.state.Snapshot()
	s.respondJSON(w, http.StatusOK, map[string]interface{}{
		"running":  running,
		"progress": progress,
	})
}

// handleListRuns returns stored runs, newest first.
func (s *Server) handleListRuns(w http.ResponseWriter, r *http.Request) {
	runs, err := s.results.ListRuns()
	if err != nil {
		s.log.Error().Err(err).Msg("Failed to list runs")
		s.respondError(w, http.StatusInternalServerError, "failed to list runs")
		return
	}
	s.respondJSON(w, http.StatusOK, runs)
}

// handleGetRun returns the episode records of a stored run.
func (s *Server) handleGetRun(w http.ResponseWriter, r *http.Request) {
	runID := chi.URLParam(r, "runID")

	rs, err := s.results.GetRun(runID)
	if err != nil {
		s.respondError(w, http.StatusNotFound, err.Error())
		return
	}
	s.respondJSON(w, http.StatusOK, rs.Records())
}

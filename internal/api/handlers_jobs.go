package api

import (
	"encoding/json"
	"net/http"

	"github.com/dgallion1/specgest/internal/pipeline"
	"github.com/go-chi/chi/v5"
)

func (s *Server) handleJobStatus(w http.ResponseWriter, r *http.Request) {
	job := s.orchestrator.GetJob(chi.URLParam(r, "jobID"))
	if job == nil {
		jsonError(w, "job not found", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(job.Snapshot())
}

// handleJobRecords returns the records of a completed job.
func (s *Server) handleJobRecords(w http.ResponseWriter, r *http.Request) {
	job := s.orchestrator.GetJob(chi.URLParam(r, "jobID"))
	if job == nil {
		jsonError(w, "job not found", http.StatusNotFound)
		return
	}
	res, done := job.Result()
	if !done {
		snap := job.Snapshot()
		if snap.Status == pipeline.StatusFailed {
			jsonError(w, "job failed", http.StatusUnprocessableEntity)
			return
		}
		jsonError(w, "job is "+string(snap.Status), http.StatusConflict)
		return
	}
	writeRecords(w, res.Document)
}

package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dgallion1/markdownql/internal/pipeline"
)

const maxQueryBodyBytes = 1 << 20

type queryRequest struct {
	Query string `json:"query"`
}

func (s *Server) handleQuery(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxQueryBodyBytes)

	var req queryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}
	if req.Query == "" {
		jsonError(w, "query is required", http.StatusBadRequest)
		return
	}

	run, err := s.runner.Run(r.Context(), req.Query)
	if s.runs != nil {
		s.runs.Put(run)
	}
	if err != nil {
		var stageErr *pipeline.StageError
		if !errors.As(err, &stageErr) {
			jsonError(w, err.Error(), http.StatusInternalServerError)
			return
		}
		code := http.StatusBadRequest
		if stageErr.Stage == pipeline.StageExecute {
			code = http.StatusUnprocessableEntity
		}
		writeJSON(w, code, map[string]any{
			"query_id": run.ID,
			"stage":    stageErr.Stage,
			"error":    stageErr.Err.Error(),
		})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"query_id": run.ID,
		"query":    run.Query,
		"result":   run.Result,
	})
}

func (s *Server) handleGetQuery(w http.ResponseWriter, r *http.Request) {
	queryID := chi.URLParam(r, "queryID")
	if s.runs == nil {
		jsonError(w, "query not found", http.StatusNotFound)
		return
	}
	run := s.runs.Get(queryID)
	if run == nil {
		jsonError(w, "query not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, run)
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v)
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	writeJSON(w, code, map[string]string{"error": msg})
}

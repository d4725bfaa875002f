package search

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
)

// Recorder receives one record per completed search for the history log.
// Recording is best effort and never fails the search itself.
type Recorder interface {
	RecordSearch(ctx context.Context, query, agentID string, productCount int, duration time.Duration, outcome string) error
}

type errorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// RegisterRoutes mounts POST /api/v1/letta/search. recorder may be nil.
func RegisterRoutes(r chi.Router, svc *Service, recorder Recorder) {
	r.Post("/api/v1/letta/search", handleSearch(svc, recorder))
}

func handleSearch(svc *Service, recorder Recorder) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req Request
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body", Details: err.Error()})
			return
		}
		if strings.TrimSpace(req.Query) == "" {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "query is required"})
			return
		}

		start := time.Now()
		resp, err := svc.Search(r.Context(), req.Query)
		duration := time.Since(start)

		if err != nil {
			log.Printf("search: query %q failed: %v", req.Query, err)
			record(recorder, r.Context(), req.Query, "", 0, duration, "error")
			writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "failed to perform search", Details: err.Error()})
			return
		}

		record(recorder, r.Context(), req.Query, resp.AgentID, len(resp.Products), duration, "success")
		writeJSON(w, http.StatusOK, resp)
	}
}

func record(recorder Recorder, ctx context.Context, query, agentID string, products int, duration time.Duration, outcome string) {
	if recorder == nil {
		return
	}
	if err := recorder.RecordSearch(ctx, query, agentID, products, duration, outcome); err != nil {
		log.Printf("search: recording history: %v", err)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

package letta

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
)

// agentCreateRequest is the inbound body for creating an agent.
type agentCreateRequest struct {
	Name         string `json:"name"`
	Description  string `json:"description"`
	Instructions string `json:"instructions"`
}

type chatRequest struct {
	Message string `json:"message"`
}

type agentListResponse struct {
	Agents []Agent `json:"agents"`
	Total  int     `json:"total"`
}

type messageListResponse struct {
	Messages []Message `json:"messages"`
	Total    int       `json:"total"`
}

type errorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// RegisterRoutes mounts the Letta proxy endpoints under /api/v1/letta.
func RegisterRoutes(r chi.Router, client *Client) {
	r.Route("/api/v1/letta/agents", func(r chi.Router) {
		r.Post("/", handleCreateAgent(client))
		r.Get("/", handleListAgents(client))
		r.Get("/{agentID}", handleGetAgent(client))
		r.Delete("/{agentID}", handleDeleteAgent(client))
		r.Post("/{agentID}/chat", handleChat(client))
		r.Get("/{agentID}/messages", handleListMessages(client))
		r.Delete("/{agentID}/messages", handleClearMessages(client))
	})
}

func handleCreateAgent(client *Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req agentCreateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body", err)
			return
		}
		if req.Name == "" || req.Description == "" || req.Instructions == "" {
			writeError(w, http.StatusBadRequest, "name, description, and instructions are required", nil)
			return
		}

		agent, err := client.CreateAgent(r.Context(), req.Name, req.Description, req.Instructions)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "failed to create agent", err)
			return
		}
		writeJSON(w, http.StatusCreated, agent)
	}
}

func handleListAgents(client *Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		agents, err := client.ListAgents(r.Context())
		if err != nil {
			writeError(w, http.StatusInternalServerError, "failed to list agents", err)
			return
		}
		writeJSON(w, http.StatusOK, agentListResponse{Agents: agents, Total: len(agents)})
	}
}

func handleGetAgent(client *Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		agent, err := client.GetAgent(r.Context(), chi.URLParam(r, "agentID"))
		if err != nil {
			status := http.StatusInternalServerError
			if errors.Is(err, ErrNotFound) {
				status = http.StatusNotFound
			}
			writeError(w, status, "agent not found", err)
			return
		}
		writeJSON(w, http.StatusOK, agent)
	}
}

func handleDeleteAgent(client *Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := client.DeleteAgent(r.Context(), chi.URLParam(r, "agentID")); err != nil {
			status := http.StatusInternalServerError
			if errors.Is(err, ErrNotFound) {
				status = http.StatusNotFound
			}
			writeError(w, status, "failed to delete agent", err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func handleChat(client *Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req chatRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body", err)
			return
		}
		if req.Message == "" {
			writeError(w, http.StatusBadRequest, "message is required", nil)
			return
		}

		result, err := client.Chat(r.Context(), chi.URLParam(r, "agentID"), req.Message)
		if err != nil {
			status := http.StatusInternalServerError
			if errors.Is(err, ErrNotFound) {
				status = http.StatusNotFound
			}
			writeError(w, status, "failed to chat with agent", err)
			return
		}
		writeJSON(w, http.StatusOK, result)
	}
}

func handleListMessages(client *Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		msgs, err := client.Messages(r.Context(), chi.URLParam(r, "agentID"))
		if err != nil {
			status := http.StatusInternalServerError
			if errors.Is(err, ErrNotFound) {
				status = http.StatusNotFound
			}
			writeError(w, status, "failed to get agent messages", err)
			return
		}
		writeJSON(w, http.StatusOK, messageListResponse{Messages: msgs, Total: len(msgs)})
	}
}

func handleClearMessages(client *Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := client.ClearMessages(r.Context(), chi.URLParam(r, "agentID")); err != nil {
			status := http.StatusInternalServerError
			if errors.Is(err, ErrNotFound) {
				status = http.StatusNotFound
			}
			writeError(w, status, "failed to clear agent messages", err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string, err error) {
	resp := errorResponse{Error: msg}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}

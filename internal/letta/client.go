package letta

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// Agent describes an agent hosted on the Letta platform.
type Agent struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Description  string `json:"description"`
	Instructions string `json:"instructions"`
	CreatedAt    string `json:"created_at,omitempty"`
	UpdatedAt    string `json:"updated_at,omitempty"`
}

// Message is a single entry in an agent's conversation history.
type Message struct {
	ID        string `json:"id"`
	Content   string `json:"content"`
	Role      string `json:"role"`
	Timestamp string `json:"timestamp,omitempty"`
}

// ChatResult is the agent's reply to a chat message.
type ChatResult struct {
	AgentID   string         `json:"agent_id"`
	Message   string         `json:"message"`
	Timestamp string         `json:"timestamp,omitempty"`
	Metadata  map[string]any `json:"metadata,omitempty"`
}

// Client talks to a hosted Letta instance over its REST API. A self-hosted
// instance needs no credentials; the optional token is sent as a bearer
// header when set.
type Client struct {
	baseURL string
	token   string
	client  *http.Client
}

// NewClient creates a client for the Letta instance at baseURL.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		client:  &http.Client{Timeout: 30 * time.Second},
	}
}

// WithToken sets a bearer token for hosted Letta deployments.
func (c *Client) WithToken(token string) *Client {
	c.token = token
	return c
}

func (c *Client) do(ctx context.Context, method, path string, body any, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshalling request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("letta request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading letta response: %w", err)
	}

	if resp.StatusCode == http.StatusNotFound {
		return ErrNotFound
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("letta returned status %d: %s", resp.StatusCode, truncate(string(respBody), 200))
	}

	if out != nil && len(respBody) > 0 {
		if err := json.Unmarshal(respBody, out); err != nil {
			return fmt.Errorf("decoding letta response: %w", err)
		}
	}
	return nil
}

// CreateAgent creates a new agent with the given name, description, and instructions.
func (c *Client) CreateAgent(ctx context.Context, name, description, instructions string) (*Agent, error) {
	req := map[string]string{
		"name":         name,
		"description":  description,
		"instructions": instructions,
	}
	var agent Agent
	if err := c.do(ctx, http.MethodPost, "/v1/agents", req, &agent); err != nil {
		return nil, fmt.Errorf("creating agent: %w", err)
	}
	return &agent, nil
}

// ListAgents returns all agents on the platform.
func (c *Client) ListAgents(ctx context.Context) ([]Agent, error) {
	// The Letta API returns either a bare array or a {data: [...]} envelope
	// depending on version; accept both.
	var raw json.RawMessage
	if err := c.do(ctx, http.MethodGet, "/v1/agents", nil, &raw); err != nil {
		return nil, fmt.Errorf("listing agents: %w", err)
	}

	var agents []Agent
	if err := json.Unmarshal(raw, &agents); err == nil {
		return agents, nil
	}
	var envelope struct {
		Data []Agent `json:"data"`
	}
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return nil, fmt.Errorf("decoding agent list: %w", err)
	}
	return envelope.Data, nil
}

// GetAgent retrieves a single agent by ID.
func (c *Client) GetAgent(ctx context.Context, agentID string) (*Agent, error) {
	var agent Agent
	if err := c.do(ctx, http.MethodGet, "/v1/agents/"+url.PathEscape(agentID), nil, &agent); err != nil {
		return nil, err
	}
	return &agent, nil
}

// DeleteAgent removes an agent by ID.
func (c *Client) DeleteAgent(ctx context.Context, agentID string) error {
	return c.do(ctx, http.MethodDelete, "/v1/agents/"+url.PathEscape(agentID), nil, nil)
}

// Chat sends a message to an agent and returns its reply.
func (c *Client) Chat(ctx context.Context, agentID, message string) (*ChatResult, error) {
	req := map[string]string{"content": message}
	var result ChatResult
	if err := c.do(ctx, http.MethodPost, "/v1/agents/"+url.PathEscape(agentID)+"/messages", req, &result); err != nil {
		return nil, err
	}
	if result.AgentID == "" {
		result.AgentID = agentID
	}
	return &result, nil
}

// Messages returns the conversation history for an agent.
func (c *Client) Messages(ctx context.Context, agentID string) ([]Message, error) {
	var raw json.RawMessage
	if err := c.do(ctx, http.MethodGet, "/v1/agents/"+url.PathEscape(agentID)+"/messages", nil, &raw); err != nil {
		return nil, err
	}

	var msgs []Message
	if err := json.Unmarshal(raw, &msgs); err == nil {
		return msgs, nil
	}
	var envelope struct {
		Data []Message `json:"data"`
	}
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return nil, fmt.Errorf("decoding message list: %w", err)
	}
	return envelope.Data, nil
}

// ClearMessages resets the conversation history for an agent.
func (c *Client) ClearMessages(ctx context.Context, agentID string) error {
	return c.do(ctx, http.MethodPatch, "/v1/agents/"+url.PathEscape(agentID)+"/reset-messages", nil, nil)
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}

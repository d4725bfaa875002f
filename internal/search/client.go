package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// DefaultTimeout bounds one search request so the widget can never sit in
// a loading state indefinitely.
const DefaultTimeout = 15 * time.Second

// Client is the widget-side consumer of the search contract: one POST to
// {apiURL}/api/v1/letta/search per query.
type Client struct {
	apiURL string
	http   *http.Client
}

// NewClient creates a search client against the given API base URL.
func NewClient(apiURL string) *Client {
	return &Client{
		apiURL: strings.TrimRight(apiURL, "/"),
		http:   &http.Client{Timeout: DefaultTimeout},
	}
}

// Search issues the query and decodes the response. Any non-2xx status or
// undecodable body is an error; the caller treats every error uniformly as
// a failed search.
func (c *Client) Search(ctx context.Context, query string) (*Response, error) {
	body, err := json.Marshal(Request{Query: query})
	if err != nil {
		return nil, fmt.Errorf("marshalling search request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL+"/api/v1/letta/search", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("creating search request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("search request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("search returned status %d", resp.StatusCode)
	}

	var result Response
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decoding search response: %w", err)
	}
	return &result, nil
}

package search

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/noli-ai/liz-widget/internal/config"
	"github.com/noli-ai/liz-widget/internal/letta"
)

// fallbackExplanation is shown when the agent response yields no usable
// first line.
const fallbackExplanation = "Based on your query, here are personalized recommendations from our AI beauty consultant."

// AgentSearcher runs one query against the beauty agent.
// *letta.BeautyAgent satisfies this.
type AgentSearcher interface {
	Search(ctx context.Context, query string) (*letta.SearchResult, error)
}

// Service turns raw beauty-agent output into the wire Response consumed by
// the widget.
type Service struct {
	beauty AgentSearcher
	quiz   config.QuizConfig
}

// NewService creates a search service backed by the given beauty agent.
func NewService(beauty AgentSearcher, quiz config.QuizConfig) *Service {
	if quiz.CTA == "" {
		quiz.CTA = config.DefaultQuizCTA
	}
	if quiz.URL == "" {
		quiz.URL = config.DefaultQuizURL
	}
	return &Service{beauty: beauty, quiz: quiz}
}

// Search runs the query against the beauty agent and assembles the response.
func (s *Service) Search(ctx context.Context, query string) (*Response, error) {
	result, err := s.beauty.Search(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("beauty search: %w", err)
	}

	return &Response{
		Query:         query,
		Explanation:   ExtractExplanation(result.AgentResponse),
		AgentResponse: result.AgentResponse,
		AgentID:       result.AgentID,
		Products:      ExtractProducts(result.AgentResponse),
		QuizCTA:       s.quiz.CTA,
		QuizURL:       s.quiz.URL,
	}, nil
}

// ExtractExplanation returns the first non-empty line of the agent response
// as a brief explanation for the UI, skipping markdown headings and fenced
// blocks. Falls back to a generic sentence.
func ExtractExplanation(agentResponse string) string {
	for _, line := range strings.Split(agentResponse, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, "```") {
			continue
		}
		return line
	}
	return fallbackExplanation
}

// jsonFence matches a fenced ```json block in the agent response.
var jsonFence = regexp.MustCompile("(?s)```json\\s*(.*?)```")

// ExtractProducts pulls structured product recommendations out of the agent
// response. The agent is prompted to include a fenced JSON block holding a
// products array; responses without one yield an empty (not nil) slice so
// the wire format stays `"products": []`.
func ExtractProducts(agentResponse string) []ProductRecommendation {
	products := []ProductRecommendation{}

	match := jsonFence.FindStringSubmatch(agentResponse)
	if match == nil {
		return products
	}

	// Accept either a bare array or a {products: [...]} object.
	blob := strings.TrimSpace(match[1])
	var parsed []ProductRecommendation
	if err := json.Unmarshal([]byte(blob), &parsed); err != nil {
		var envelope struct {
			Products []ProductRecommendation `json:"products"`
		}
		if err := json.Unmarshal([]byte(blob), &envelope); err != nil {
			return products
		}
		parsed = envelope.Products
	}

	for _, p := range parsed {
		if p.Name == "" {
			continue
		}
		if p.Currency == "" {
			p.Currency = "USD"
		}
		if p.Rating < 0 {
			p.Rating = 0
		}
		if p.Rating > 5 {
			p.Rating = 5
		}
		if p.ReviewCount < 0 {
			p.ReviewCount = 0
		}
		products = append(products, p)
	}
	return products
}

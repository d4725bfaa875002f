package letta

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
)

// ErrNotFound is returned when the platform reports a missing agent or resource.
var ErrNotFound = errors.New("letta: not found")

// lizInstructions is the system prompt for the dedicated beauty search agent.
const lizInstructions = `You are Liz, an expert AI beauty consultant for Noli.com, specializing in personalized skincare and beauty product recommendations.

Your expertise includes:
- Analyzing skin types, concerns, and conditions
- Recommending products based on ingredients and formulations
- Understanding beauty brands, product lines, and price points
- Providing educational information about skincare ingredients
- Suggesting complete beauty routines

When users ask questions, you should:
1. Understand their specific skin concerns or beauty needs
2. Provide thoughtful, personalized recommendations
3. Explain WHY you recommend specific products or ingredients
4. Consider their budget constraints when mentioned
5. Suggest 3-4 specific products when appropriate
6. Include educational context about ingredients or routines

Response format:
- Start with a brief explanation addressing their concern
- Recommend 3-4 specific products with:
  - Product name and brand
  - Why it's recommended for their concern
  - Key ingredients that help
  - Approximate price range
- End with any additional tips or routine suggestions

Be conversational, helpful, and educational. Focus on evidence-based recommendations.`

// BeautyAgent finds or creates the dedicated beauty search agent and runs
// search queries against it. The resolved agent ID is cached for the life
// of the process.
type BeautyAgent struct {
	client    *Client
	agentName string

	mu      sync.Mutex
	agentID string
}

// NewBeautyAgent wraps the given client with beauty-search helpers.
// agentName is the well-known name of the dedicated agent.
func NewBeautyAgent(client *Client, agentName string) *BeautyAgent {
	return &BeautyAgent{client: client, agentName: agentName}
}

// AgentID returns the ID of the beauty search agent, creating the agent on
// the platform if it does not exist yet.
func (b *BeautyAgent) AgentID(ctx context.Context) (string, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.agentID != "" {
		return b.agentID, nil
	}

	agents, err := b.client.ListAgents(ctx)
	if err != nil {
		return "", fmt.Errorf("finding beauty search agent: %w", err)
	}
	for _, agent := range agents {
		if agent.Name == b.agentName {
			b.agentID = agent.ID
			return b.agentID, nil
		}
	}

	agent, err := b.client.CreateAgent(ctx, b.agentName,
		"AI beauty consultant specializing in personalized product recommendations",
		lizInstructions)
	if err != nil {
		return "", fmt.Errorf("creating beauty search agent: %w", err)
	}
	log.Printf("letta: created beauty search agent %s", agent.ID)

	b.agentID = agent.ID
	return b.agentID, nil
}

// SearchResult is the raw agent output for one beauty search query.
type SearchResult struct {
	AgentResponse string
	AgentID       string
	Timestamp     string
	Metadata      map[string]any
}

// Search runs a beauty product query against the dedicated agent.
func (b *BeautyAgent) Search(ctx context.Context, query string) (*SearchResult, error) {
	agentID, err := b.AgentID(ctx)
	if err != nil {
		return nil, err
	}

	prompt := fmt.Sprintf("User query: %s\n\nPlease provide personalized beauty product recommendations based on this query. Format your response with clear explanations and specific product suggestions.", query)

	reply, err := b.client.Chat(ctx, agentID, prompt)
	if err != nil {
		return nil, fmt.Errorf("beauty search chat: %w", err)
	}

	return &SearchResult{
		AgentResponse: reply.Message,
		AgentID:       agentID,
		Timestamp:     reply.Timestamp,
		Metadata:      reply.Metadata,
	}, nil
}

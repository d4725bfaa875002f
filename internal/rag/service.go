package rag

import (
	"context"
	"fmt"
	"strings"
)

// BeautyConcerns are the concern types the knowledge base is partitioned by.
var BeautyConcerns = []string{"acne", "dryness", "aging", "sensitivity", "pigmentation", "general_beauty"}

// knownBrands and knownIngredients drive the heuristic recommendation
// extraction applied to knowledge hits.
var knownBrands = []string{
	"The Ordinary", "CeraVe", "Neutrogena", "Paula's Choice", "SkinCeuticals", "Vanicream",
}

var knownIngredients = []string{
	"salicylic acid", "benzoyl peroxide", "niacinamide", "retinoids", "retinol",
	"vitamin c", "peptides", "ceramides", "hyaluronic acid", "glycerin",
	"kojic acid", "arbutin", "hydroquinone", "oat extract", "fragrance-free",
}

// Recommendation is one item extracted from knowledge search hits: either
// a concrete product mention or general ingredient information.
type Recommendation struct {
	Type           string   `json:"type"`
	SourceInfo     string   `json:"source_info"`
	ExtractedBrand string   `json:"extracted_brand,omitempty"`
	KeyIngredients []string `json:"key_ingredients"`
}

// SearchRequest is the body of POST /api/v1/rag/search.
type SearchRequest struct {
	Query       string `json:"query"`
	ConcernType string `json:"concern_type,omitempty"`
	MaxResults  int    `json:"max_results,omitempty"`
}

// SearchResponse is the RAG search result.
type SearchResponse struct {
	Query           string           `json:"query"`
	ConcernFocus    string           `json:"concern_focus,omitempty"`
	KnowledgeItems  []string         `json:"knowledge_items"`
	Recommendations []Recommendation `json:"recommendations"`
	Confidence      float64          `json:"confidence"`
	Source          string           `json:"source"`
}

// Service answers RAG search requests from the knowledge store.
type Service struct {
	store *Store
}

// NewService creates a RAG search service.
func NewService(store *Store) *Service {
	return &Service{store: store}
}

// Search runs a semantic query over the knowledge base. An unrecognised
// concern type is ignored rather than rejected.
func (s *Service) Search(ctx context.Context, req SearchRequest) (*SearchResponse, error) {
	concern := req.ConcernType
	if concern != "" && !validConcern(concern) {
		concern = ""
	}

	limit := req.MaxResults
	if limit <= 0 {
		limit = 5
	}
	if limit > 20 {
		limit = 20
	}

	hits, err := s.store.Search(ctx, req.Query, limit, concern)
	if err != nil {
		return nil, fmt.Errorf("knowledge search: %w", err)
	}

	items := make([]string, len(hits))
	var confidence float64
	for i, h := range hits {
		items[i] = h.Document.Content
		if sim := float64(h.Similarity); sim > confidence {
			confidence = sim
		}
	}

	return &SearchResponse{
		Query:           req.Query,
		ConcernFocus:    concern,
		KnowledgeItems:  items,
		Recommendations: ExtractRecommendations(items),
		Confidence:      confidence,
		Source:          "beauty_knowledge_base",
	}, nil
}

func validConcern(concern string) bool {
	for _, c := range BeautyConcerns {
		if c == concern {
			return true
		}
	}
	return false
}

// ExtractRecommendations classifies knowledge items into product
// recommendations (a known brand is mentioned) or ingredient information.
func ExtractRecommendations(items []string) []Recommendation {
	recs := make([]Recommendation, 0, len(items))
	for _, item := range items {
		rec := Recommendation{
			Type:           "ingredient_info",
			SourceInfo:     item,
			KeyIngredients: extractIngredients(item),
		}
		if brand := extractBrand(item); brand != "" {
			rec.Type = "product_recommendation"
			rec.ExtractedBrand = brand
		}
		recs = append(recs, rec)
	}
	return recs
}

func extractBrand(text string) string {
	for _, brand := range knownBrands {
		if strings.Contains(text, brand) {
			return brand
		}
	}
	return ""
}

func extractIngredients(text string) []string {
	lower := strings.ToLower(text)
	found := []string{}
	for _, ing := range knownIngredients {
		if strings.Contains(lower, ing) {
			found = append(found, ing)
		}
	}
	return found
}

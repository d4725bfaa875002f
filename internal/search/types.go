package search

// Request is the body of POST /api/v1/letta/search.
type Request struct {
	Query string `json:"query"`
}

// ProductRecommendation is one recommended product, received whole from the
// agent and never mutated client-side.
type ProductRecommendation struct {
	ID             string  `json:"id"`
	Name           string  `json:"name"`
	Brand          string  `json:"brand"`
	Price          float64 `json:"price"`
	Currency       string  `json:"currency"`
	Rating         float64 `json:"rating"`
	ReviewCount    int     `json:"review_count"`
	ImageURL       string  `json:"image_url"`
	Description    string  `json:"description"`
	WhyRecommended string  `json:"why_recommended"`
	LearnMoreURL   string  `json:"learn_more_url"`
}

// Response is the search result rendered by the widget: a short explanation,
// the full markdown agent response, an ordered product list, and the quiz
// call-to-action.
type Response struct {
	Query         string                  `json:"query"`
	Explanation   string                  `json:"explanation"`
	AgentResponse string                  `json:"agent_response"`
	AgentID       string                  `json:"agent_id"`
	Products      []ProductRecommendation `json:"products"`
	QuizCTA       string                  `json:"quiz_cta"`
	QuizURL       string                  `json:"quiz_url"`
}

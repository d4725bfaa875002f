package widget

import (
	"strings"
	"testing"

	"github.com/noli-ai/liz-widget/internal/config"
	"github.com/noli-ai/liz-widget/internal/search"
	"github.com/noli-ai/liz-widget/internal/session"
)

func TestRenderTriggerVariants(t *testing.T) {
	tests := []struct {
		variant config.Variant
		want    string
	}{
		{config.VariantDefault, "liz-trigger"},
		{config.VariantFloating, "liz-trigger--floating"},
		{config.VariantMinimal, "liz-trigger--minimal"},
	}

	for _, tt := range tests {
		html, err := RenderTrigger(Config{Variant: tt.variant})
		if err != nil {
			t.Fatalf("RenderTrigger(%s): %v", tt.variant, err)
		}
		if !strings.Contains(html, tt.want) {
			t.Errorf("variant %s: output missing %q: %s", tt.variant, tt.want, html)
		}
	}
}

func TestRenderOverlayIdle(t *testing.T) {
	ctrl := session.New(&blockedSearcher{}, config.VariantDefault)
	html, err := RenderOverlay(ctrl)
	if err != nil {
		t.Fatalf("RenderOverlay: %v", err)
	}
	if !strings.Contains(html, "liz-search-form") {
		t.Error("idle overlay missing search form")
	}
	if strings.Contains(html, "liz-loading") || strings.Contains(html, "liz-error") {
		t.Errorf("idle overlay shows state it should not: %s", html)
	}
}

func TestRenderOverlayLoadingDisablesSubmit(t *testing.T) {
	gate := make(chan struct{})
	defer close(gate)
	ctrl := session.New(&blockedSearcher{gate: gate}, config.VariantDefault)
	ctrl.Submit("serum")

	html, err := RenderOverlay(ctrl)
	if err != nil {
		t.Fatalf("RenderOverlay: %v", err)
	}
	if !strings.Contains(html, "liz-loading") {
		t.Error("loading overlay missing loading indicator")
	}
	if !strings.Contains(html, "disabled") {
		t.Error("submit button not disabled while loading")
	}
	if !strings.Contains(html, `value="serum"`) {
		t.Error("query not echoed into the input")
	}
}

func TestRenderOverlaySuccess(t *testing.T) {
	resp := &search.Response{
		Query:         "moisturizer",
		AgentResponse: "Here are my picks for **dry skin**.",
		Products: []search.ProductRecommendation{
			{Name: "First Cream", Brand: "BrandA", Price: 10, Rating: 4.5, ReviewCount: 100},
			{Name: "Second Serum", Brand: "BrandB", Price: 20, Currency: "EUR", Rating: 3, ReviewCount: 50},
			{Name: "Third Oil", Brand: "BrandC", Price: 30, Currency: "GBP", Rating: 5},
		},
		QuizCTA: "Want more precise recommendations? Do the quiz!",
		QuizURL: "/quiz",
	}
	ctrl := newSettledController(t, resp)

	html, err := RenderOverlay(ctrl)
	if err != nil {
		t.Fatalf("RenderOverlay: %v", err)
	}

	// Markdown rendered, not echoed raw.
	if !strings.Contains(html, "<strong>dry skin</strong>") {
		t.Error("agent markdown not rendered to HTML")
	}

	// Products appear in backend order.
	first := strings.Index(html, "First Cream")
	second := strings.Index(html, "Second Serum")
	third := strings.Index(html, "Third Oil")
	if first < 0 || second < 0 || third < 0 {
		t.Fatalf("products missing from overlay: %s", html)
	}
	if !(first < second && second < third) {
		t.Errorf("product order not preserved: positions %d, %d, %d", first, second, third)
	}

	// Currency-aware price labels.
	for _, want := range []string{"$10.00", "€20.00", "£30.00"} {
		if !strings.Contains(html, want) {
			t.Errorf("overlay missing price %q", want)
		}
	}

	// Star ratings.
	if !strings.Contains(html, "★★★★⯪") {
		t.Error("overlay missing 4.5-star rendering")
	}

	// Quiz call-to-action.
	if !strings.Contains(html, "Do the quiz!") || !strings.Contains(html, `href="/quiz"`) {
		t.Error("overlay missing quiz call-to-action")
	}
}

func TestRenderOverlayEscapesAgentHTML(t *testing.T) {
	resp := &search.Response{
		Query:         "q",
		AgentResponse: `Hello <script>alert("x")</script>`,
		Products:      []search.ProductRecommendation{},
	}
	ctrl := newSettledController(t, resp)

	html, err := RenderOverlay(ctrl)
	if err != nil {
		t.Fatalf("RenderOverlay: %v", err)
	}
	if strings.Contains(html, "<script>") {
		t.Error("raw script tag passed through markdown rendering")
	}
}

func TestRenderOverlayError(t *testing.T) {
	ctrl := newErroredController(t)

	html, err := RenderOverlay(ctrl)
	if err != nil {
		t.Fatalf("RenderOverlay: %v", err)
	}
	if !strings.Contains(html, session.GenericErrorMessage) {
		t.Error("error overlay missing generic message")
	}
	if strings.Contains(html, "liz-loading") {
		t.Error("error overlay still shows loading state")
	}
}

func TestRenderInlineError(t *testing.T) {
	html := RenderInlineError(`widget <broke>`)
	if !strings.Contains(html, "liz-inline-error") {
		t.Errorf("missing inline error class: %s", html)
	}
	if strings.Contains(html, "<broke>") {
		t.Error("message not HTML-escaped")
	}
}

func TestFormatPrice(t *testing.T) {
	tests := []struct {
		price    float64
		currency string
		want     string
	}{
		{16.99, "", "$16.99"},
		{16.99, "USD", "$16.99"},
		{8.9, "EUR", "€8.90"},
		{21, "GBP", "£21.00"},
		{99.5, "SEK", "99.50 SEK"},
	}
	for _, tt := range tests {
		if got := formatPrice(tt.price, tt.currency); got != tt.want {
			t.Errorf("formatPrice(%v, %q) = %q, want %q", tt.price, tt.currency, got, tt.want)
		}
	}
}

package widget

import (
	"fmt"
	"html/template"
	"strings"

	"github.com/noli-ai/liz-widget/internal/search"
	"github.com/noli-ai/liz-widget/internal/session"
)

var triggerTmpl = template.Must(template.New("trigger").Parse(`<button type="button" class="liz-trigger{{if eq .Variant "floating"}} liz-trigger--floating{{else if eq .Variant "minimal"}} liz-trigger--minimal{{end}}" data-liz-action="open" aria-haspopup="dialog">
{{- if eq .Variant "minimal"}}Search{{else}}✨ Beauty search{{end -}}
</button>`))

var overlayTmpl = template.Must(template.New("overlay").Parse(`<div class="liz-overlay" role="dialog" aria-modal="true">
<div class="liz-panel">
<form class="liz-search-form" data-liz-action="submit">
<input class="liz-search-input" type="text" name="query" value="{{.Query}}" placeholder="Ask about skincare, makeup, routines…" autofocus>
<button class="liz-search-submit" type="submit"{{if .Loading}} disabled{{end}}>Search</button>
</form>
{{- if .Loading}}
<div class="liz-loading">Asking our AI beauty consultant…</div>
{{- else if .ErrMessage}}
<div class="liz-error" role="alert">{{.ErrMessage}}</div>
{{- else if .Result}}
<div class="liz-explanation">{{.Result.AgentHTML}}</div>
{{- if .Result.Products}}
<div class="liz-carousel">
{{- range .Result.Products}}
<div class="liz-product">
{{- if .ImageURL}}
<img class="liz-product-image" src="{{.ImageURL}}" alt="{{.Name}}">
{{- end}}
<div class="liz-product-name">{{.Name}}</div>
<div class="liz-product-brand">{{.Brand}}</div>
<div class="liz-product-price">{{.PriceLabel}}</div>
<div class="liz-product-rating">{{.Stars}} ({{.ReviewCount}})</div>
<div class="liz-product-why">{{.WhyRecommended}}</div>
{{- if .LearnMoreURL}}
<a href="{{.LearnMoreURL}}" target="_blank" rel="noopener">Learn more</a>
{{- end}}
</div>
{{- end}}
</div>
{{- end}}
<a class="liz-quiz-cta" href="{{.Result.QuizURL}}">{{.Result.QuizCTA}}</a>
{{- end}}
</div>
</div>`))

var inlineErrorTmpl = template.Must(template.New("inlineError").Parse(`<div class="liz-inline-error" role="alert">{{.}}</div>`))

// productView is one product card prepared for the carousel template.
type productView struct {
	Name           string
	Brand          string
	PriceLabel     string
	Stars          string
	ReviewCount    int
	ImageURL       string
	Description    string
	WhyRecommended string
	LearnMoreURL   string
}

// resultView is a search result prepared for rendering: the agent response
// converted to sanitized HTML and products in backend order.
type resultView struct {
	AgentHTML template.HTML
	Products  []productView
	QuizCTA   string
	QuizURL   string
}

type overlayView struct {
	Query      string
	Loading    bool
	ErrMessage string
	Result     *resultView
}

// RenderTrigger renders the trigger control for the given config.
func RenderTrigger(cfg Config) (string, error) {
	var sb strings.Builder
	data := struct{ Variant string }{Variant: string(cfg.Variant)}
	if err := triggerTmpl.Execute(&sb, data); err != nil {
		return "", fmt.Errorf("rendering trigger: %w", err)
	}
	return sb.String(), nil
}

// RenderOverlay renders the overlay for the controller's current state.
// The product carousel preserves backend order; no client-side re-sorting.
func RenderOverlay(ctrl *session.Controller) (string, error) {
	snap := ctrl.Snapshot()
	view := overlayView{
		Query:      snap.Query,
		Loading:    snap.Status == session.StatusLoading,
		ErrMessage: snap.ErrMessage,
	}

	if snap.Status == session.StatusSuccess && snap.Result != nil {
		rv, err := buildResultView(snap.Result)
		if err != nil {
			return "", err
		}
		view.Result = rv
	}

	var sb strings.Builder
	if err := overlayTmpl.Execute(&sb, view); err != nil {
		return "", fmt.Errorf("rendering overlay: %w", err)
	}
	return sb.String(), nil
}

// RenderInlineError renders the single inline error shown when the mount
// pipeline fails; the host page stays untouched.
func RenderInlineError(message string) string {
	var sb strings.Builder
	if err := inlineErrorTmpl.Execute(&sb, message); err != nil {
		// Template takes a plain string; execution cannot realistically
		// fail, but never propagate from the error path.
		return ""
	}
	return sb.String()
}

func buildResultView(result *search.Response) (*resultView, error) {
	agentHTML, err := RenderMarkdown(result.AgentResponse)
	if err != nil {
		return nil, err
	}

	products := make([]productView, 0, len(result.Products))
	for _, p := range result.Products {
		products = append(products, productView{
			Name:           p.Name,
			Brand:          p.Brand,
			PriceLabel:     formatPrice(p.Price, p.Currency),
			Stars:          Stars(p.Rating),
			ReviewCount:    p.ReviewCount,
			ImageURL:       p.ImageURL,
			Description:    p.Description,
			WhyRecommended: p.WhyRecommended,
			LearnMoreURL:   p.LearnMoreURL,
		})
	}

	return &resultView{
		AgentHTML: agentHTML,
		Products:  products,
		QuizCTA:   result.QuizCTA,
		QuizURL:   result.QuizURL,
	}, nil
}

func formatPrice(price float64, currency string) string {
	switch currency {
	case "", "USD":
		return fmt.Sprintf("$%.2f", price)
	case "EUR":
		return fmt.Sprintf("€%.2f", price)
	case "GBP":
		return fmt.Sprintf("£%.2f", price)
	default:
		return fmt.Sprintf("%.2f %s", price, currency)
	}
}

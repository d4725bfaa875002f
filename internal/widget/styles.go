package widget

import (
	"context"
	_ "embed"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

//go:embed assets/widget.css
var inlineCSS string

// InlineCSS returns the build-time inlined widget stylesheet, as served at
// the well-known stylesheet paths.
func InlineCSS() string { return inlineCSS }

// WellKnownStylesheetPaths are the built stylesheet locations tried, in
// order, when no inlined CSS is available.
var WellKnownStylesheetPaths = []string{
	"/widget/widget.css",
	"/assets/widget.css",
	"/static/liz-widget.css",
}

// StyleSource identifies which fallback step produced the applied styles.
type StyleSource string

const (
	StyleInline StyleSource = "inline"
	StyleFetch  StyleSource = "fetch"
	StyleCloned StyleSource = "cloned"
	StyleNone   StyleSource = "none"
)

// StyleOutcome is the transient result of one resolution run: at most one
// outcome is applied to the boundary, at mount time.
type StyleOutcome struct {
	Source StyleSource
	CSS    string   // inline or fetched stylesheet text
	Links  []string // hrefs of cloned <link rel="stylesheet"> nodes
}

// StyleResources are the inputs available to the resolution chain. The
// zero value uses the embedded stylesheet and no host document.
type StyleResources struct {
	// InlineCSS overrides the embedded stylesheet; used by tests and by
	// hosts that bundle their own build.
	InlineCSS *string

	// BaseURL prefixes the well-known fetch paths.
	BaseURL string

	// HostHTML is the host document to clone styles from, when available.
	HostHTML string

	// HTTPClient used for fetch attempts; defaults to a 5s-timeout client.
	HTTPClient *http.Client
}

func (r StyleResources) inline() string {
	if r.InlineCSS != nil {
		return *r.InlineCSS
	}
	return inlineCSS
}

func (r StyleResources) client() *http.Client {
	if r.HTTPClient != nil {
		return r.HTTPClient
	}
	return &http.Client{Timeout: 5 * time.Second}
}

// ResolveStyles obtains CSS for the isolated boundary via the ordered
// fallback chain: inlined text, fetched built stylesheet, styles cloned
// from the host document. Each step absorbs its own failure; the terminal
// fallback is unstyled rendering. ResolveStyles never returns an error.
func ResolveStyles(ctx context.Context, res StyleResources) StyleOutcome {
	// Step 1: build-time inlined CSS is authoritative when present.
	if css := res.inline(); strings.TrimSpace(css) != "" {
		return StyleOutcome{Source: StyleInline, CSS: css}
	}

	// Step 2: fetch well-known built stylesheet paths, first 200 wins.
	if res.BaseURL != "" {
		if css, ok := fetchStylesheet(ctx, res); ok {
			return StyleOutcome{Source: StyleFetch, CSS: css}
		}
	}

	// Step 3: clone host document styles as a last-resort compatibility path.
	if res.HostHTML != "" {
		if outcome, ok := cloneHostStyles(res.HostHTML); ok {
			return outcome
		}
	}

	log.Printf("widget: style resolution exhausted all fallbacks, rendering unstyled")
	return StyleOutcome{Source: StyleNone}
}

func fetchStylesheet(ctx context.Context, res StyleResources) (string, bool) {
	client := res.client()
	base := strings.TrimRight(res.BaseURL, "/")

	for _, path := range WellKnownStylesheetPaths {
		css, err := fetchOne(ctx, client, base+path)
		if err != nil {
			log.Printf("widget: stylesheet fetch %s: %v", path, err)
			continue
		}
		return css, true
	}
	return "", false
}

func fetchOne(ctx context.Context, client *http.Client, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}
	resp, err := client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("status %d", resp.StatusCode)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	return string(body), nil
}

// linkAllowed is the heuristic allow-list for cloning host stylesheets:
// hrefs mentioning index, style, or tailwind, or ending in .css.
func linkAllowed(href string) bool {
	lower := strings.ToLower(href)
	return strings.Contains(lower, "index") ||
		strings.Contains(lower, "style") ||
		strings.Contains(lower, "tailwind") ||
		strings.HasSuffix(lower, ".css")
}

func cloneHostStyles(hostHTML string) (StyleOutcome, bool) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(hostHTML))
	if err != nil {
		log.Printf("widget: parsing host document for style cloning: %v", err)
		return StyleOutcome{}, false
	}

	var sb strings.Builder
	doc.Find("style").Each(func(_ int, s *goquery.Selection) {
		sb.WriteString(s.Text())
		sb.WriteString("\n")
	})

	var links []string
	doc.Find(`link[rel="stylesheet"]`).Each(func(_ int, s *goquery.Selection) {
		href, ok := s.Attr("href")
		if ok && linkAllowed(href) {
			links = append(links, href)
		}
	})

	css := strings.TrimSpace(sb.String())
	if css == "" && len(links) == 0 {
		return StyleOutcome{}, false
	}
	return StyleOutcome{Source: StyleCloned, CSS: css, Links: links}, true
}

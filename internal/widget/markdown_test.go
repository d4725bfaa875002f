package widget

import (
	"strings"
	"testing"
)

func TestRenderMarkdown(t *testing.T) {
	html, err := RenderMarkdown("**Bold** advice with a [link](https://example.com).")
	if err != nil {
		t.Fatalf("RenderMarkdown: %v", err)
	}
	out := string(html)
	if !strings.Contains(out, "<strong>Bold</strong>") {
		t.Errorf("bold not rendered: %s", out)
	}
	if !strings.Contains(out, `href="https://example.com"`) {
		t.Errorf("link not rendered: %s", out)
	}
}

func TestRenderMarkdownEscapesRawHTML(t *testing.T) {
	html, err := RenderMarkdown(`before <img src=x onerror=alert(1)> after`)
	if err != nil {
		t.Fatalf("RenderMarkdown: %v", err)
	}
	if strings.Contains(string(html), "<img") {
		t.Errorf("raw HTML passed through: %s", html)
	}
}

func TestRenderMarkdownTables(t *testing.T) {
	src := "| Product | Price |\n|---------|-------|\n| Serum | $10 |\n"
	html, err := RenderMarkdown(src)
	if err != nil {
		t.Fatalf("RenderMarkdown: %v", err)
	}
	if !strings.Contains(string(html), "<table>") {
		t.Errorf("GFM table not rendered: %s", html)
	}
}

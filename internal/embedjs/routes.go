package embedjs

import (
	"fmt"
	"html/template"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/noli-ai/liz-widget/internal/config"
	"github.com/noli-ai/liz-widget/internal/widget"
)

var previewTmpl = template.Must(template.New("preview").Parse(`<!doctype html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Liz widget preview</title>
<style>{{.CSS}}</style>
</head>
<body>
<h1>Widget preview</h1>
<p>variant={{.Variant}} theme={{.Theme}} container={{.ContainerID}} styles={{.StyleSource}}</p>
<div id="{{.ContainerID}}" class="liz-widget{{if eq .Theme "dark"}} liz-widget--dark{{end}}">{{.Boundary}}</div>
</body>
</html>`))

// RegisterRoutes mounts the bootstrap scripts, the widget stylesheet at
// every well-known path, and a server-rendered preview page.
func RegisterRoutes(r chi.Router, defaults config.WidgetDefaults) {
	r.Get("/widget/inject.js", serveScript(injectorBundle()))
	r.Get("/widget/embed.js", serveScript(embedBundle()))

	for _, path := range widget.WellKnownStylesheetPaths {
		r.Get(path, serveStylesheet)
	}

	r.Get("/widget/preview", handlePreview(defaults))
}

// injectorBundle bakes the runtime, the inlined stylesheet, and the
// declarative bootstrap into one self-contained script.
func injectorBundle() string {
	return fmt.Sprintf("window.LIZ_WIDGET_CSS = %q;\n%s\n%s", widget.InlineCSS(), runtimeScript, injectScript)
}

// embedBundle serves the runtime plus the programmatic handle. The
// stylesheet is resolved by the element's own fallback chain, so hosts
// that ship a built stylesheet keep control over it.
func embedBundle() string {
	return runtimeScript + "\n" + embedScript
}

func serveScript(body string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/javascript; charset=utf-8")
		w.Header().Set("Cache-Control", "public, max-age=3600")
		w.Write([]byte(body))
	}
}

func serveStylesheet(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/css; charset=utf-8")
	w.Header().Set("Cache-Control", "public, max-age=3600")
	w.Write([]byte(widget.InlineCSS()))
}

// handlePreview mounts a throwaway shell server-side and renders its
// boundary, for eyeballing variants and themes without a host page.
func handlePreview(defaults config.WidgetDefaults) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		attrs := map[string]string{
			widget.AttrVariant:     r.URL.Query().Get("variant"),
			widget.AttrTheme:       r.URL.Query().Get("theme"),
			widget.AttrContainerID: "liz-preview-" + uuid.NewString()[:8],
		}
		cfg := widget.ParseConfig(attrs, defaults)

		sh := widget.NewShell(cfg)
		sh.Mount(r.Context())
		defer sh.Unmount()

		data := struct {
			CSS         template.CSS
			Variant     config.Variant
			Theme       config.Theme
			ContainerID string
			StyleSource widget.StyleSource
			Boundary    template.HTML
		}{
			CSS:         template.CSS(widget.InlineCSS()),
			Variant:     cfg.Variant,
			Theme:       cfg.Theme,
			ContainerID: cfg.ContainerID,
			StyleSource: sh.Style().Source,
			Boundary:    template.HTML(sh.HTML()),
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		var sb strings.Builder
		if err := previewTmpl.Execute(&sb, data); err != nil {
			http.Error(w, "preview render failed", http.StatusInternalServerError)
			return
		}
		w.Write([]byte(sb.String()))
	}
}

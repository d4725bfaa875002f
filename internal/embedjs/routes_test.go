package embedjs

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/noli-ai/liz-widget/internal/config"
	"github.com/noli-ai/liz-widget/internal/widget"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	r := chi.NewRouter()
	RegisterRoutes(r, config.WidgetDefaults{Variant: config.VariantDefault, Theme: config.ThemeLight})
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv
}

func get(t *testing.T, url string) (*http.Response, string) {
	t.Helper()
	resp, err := http.Get(url)
	if err != nil {
		t.Fatalf("GET %s: %v", url, err)
	}
	body, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	if err != nil {
		t.Fatalf("reading body: %v", err)
	}
	return resp, string(body)
}

func TestInjectScript(t *testing.T) {
	srv := newTestServer(t)
	resp, body := get(t, srv.URL+"/widget/inject.js")

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); !strings.HasPrefix(ct, "application/javascript") {
		t.Errorf("Content-Type = %q", ct)
	}
	// The injector bundle ships the inlined stylesheet, the custom element
	// runtime, and the declarative bootstrap.
	if !strings.Contains(body, "window.LIZ_WIDGET_CSS") {
		t.Error("bundle missing inlined stylesheet")
	}
	if !strings.Contains(body, "liz-search-widget") {
		t.Error("bundle missing custom element definition")
	}
	if !strings.Contains(body, "document.currentScript") {
		t.Error("bundle missing declarative bootstrap")
	}
}

func TestEmbedScript(t *testing.T) {
	srv := newTestServer(t)
	resp, body := get(t, srv.URL+"/widget/embed.js")

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if !strings.Contains(body, "liz-search-widget") {
		t.Error("bundle missing custom element definition")
	}
	if !strings.Contains(body, "window.LizWidget") {
		t.Error("bundle missing programmatic handle")
	}
	// The embed bundle leaves stylesheet resolution to the element itself.
	if strings.Contains(body, "window.LIZ_WIDGET_CSS =") {
		t.Error("embed bundle should not force the inlined stylesheet")
	}
}

func TestStylesheetServedAtWellKnownPaths(t *testing.T) {
	srv := newTestServer(t)

	for _, path := range widget.WellKnownStylesheetPaths {
		resp, body := get(t, srv.URL+path)
		if resp.StatusCode != http.StatusOK {
			t.Errorf("%s: status = %d", path, resp.StatusCode)
			continue
		}
		if ct := resp.Header.Get("Content-Type"); !strings.HasPrefix(ct, "text/css") {
			t.Errorf("%s: Content-Type = %q", path, ct)
		}
		if !strings.Contains(body, ".liz-widget") {
			t.Errorf("%s: body missing widget rules", path)
		}
	}
}

func TestPreviewPage(t *testing.T) {
	srv := newTestServer(t)
	resp, body := get(t, srv.URL+"/widget/preview?variant=floating&theme=dark")

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if !strings.Contains(body, "liz-trigger--floating") {
		t.Error("preview missing floating trigger")
	}
	if !strings.Contains(body, "liz-widget--dark") {
		t.Error("preview missing dark theme class")
	}
	if !strings.Contains(body, "styles=inline") {
		t.Error("preview missing style source report")
	}
}

func TestPreviewPageUnknownValuesFallBack(t *testing.T) {
	srv := newTestServer(t)
	_, body := get(t, srv.URL+"/widget/preview?variant=bogus&theme=bogus")

	if !strings.Contains(body, "variant=default") {
		t.Error("unknown variant did not fall back to default")
	}
	if !strings.Contains(body, "theme=light") {
		t.Error("unknown theme did not fall back to light")
	}
}

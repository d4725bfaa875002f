package widget

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
)

// agentMarkdown renders the restricted dialect the agent responds in:
// paragraphs, emphasis, lists, and tables. Raw HTML in the source is
// escaped, not passed through, so agent output cannot inject markup into
// the boundary.
var agentMarkdown = goldmark.New(
	goldmark.WithExtensions(
		extension.GFM,
		highlighting.NewHighlighting(
			highlighting.WithStyle("github"),
		),
	),
)

// RenderMarkdown converts an agent response to sanitized HTML.
func RenderMarkdown(source string) (template.HTML, error) {
	var buf bytes.Buffer
	if err := agentMarkdown.Convert([]byte(source), &buf); err != nil {
		return "", fmt.Errorf("rendering agent markdown: %w", err)
	}
	return template.HTML(buf.String()), nil
}

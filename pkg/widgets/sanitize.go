package widgets

import (
	"bytes"
	"fmt"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
)

var (
	contentPolicy = sync.OnceValue(bluemonday.UGCPolicy)
	markdown      = goldmark.New()
)

// SanitizeHTML strips unsafe markup from raw label, hint and error content.
func SanitizeHTML(raw string) string {
	return contentPolicy().Sanitize(raw)
}

// RenderMarkdown converts Markdown to sanitized HTML.
func RenderMarkdown(source string) (string, error) {
	var buf bytes.Buffer
	if err := markdown.Convert([]byte(source), &buf); err != nil {
		return "", fmt.Errorf("widgets: render markdown: %w", err)
	}
	return strings.TrimSpace(SanitizeHTML(buf.String())), nil
}

// Package markdown renders note markdown to plain text for searching.
package markdown

import (
	"bytes"
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

// Renderer implements ports.PlainTextRenderer with goldmark and bluemonday.
type Renderer struct {
	md     goldmark.Markdown
	policy *bluemonday.Policy
}

// NewRenderer creates a renderer supporting GitHub-flavored markdown.
func NewRenderer() *Renderer {
	return &Renderer{
		md:     goldmark.New(goldmark.WithExtensions(extension.GFM)),
		policy: bluemonday.StrictPolicy(),
	}
}

// PlainText converts markdown to HTML, strips every tag and unescapes
// entities. Content that fails to render is returned unchanged.
func (r *Renderer) PlainText(source string) string {
	var buf bytes.Buffer
	if err := r.md.Convert([]byte(source), &buf); err != nil {
		return source
	}
	text := html.UnescapeString(r.policy.Sanitize(buf.String()))
	return strings.TrimSpace(text)
}

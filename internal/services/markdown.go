package services

import (
	"bytes"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

type MarkdownRenderer interface {
	ToHTML(markdown string) string
}

type markdownRenderer struct {
	md goldmark.Markdown
}

// NewMarkdownRenderer converts model output to HTML. Raw HTML embedded in the
// markdown is dropped by goldmark's default renderer.
func NewMarkdownRenderer() MarkdownRenderer {
	return &markdownRenderer{
		md: goldmark.New(goldmark.WithExtensions(extension.GFM)),
	}
}

func (r *markdownRenderer) ToHTML(markdown string) string {
	var buf bytes.Buffer
	if err := r.md.Convert([]byte(markdown), &buf); err != nil {
		// goldmark only fails on writer errors, which bytes.Buffer never returns
		return ""
	}
	return buf.String()
}

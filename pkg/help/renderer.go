package help

import (
	"github.com/charmbracelet/glamour"
)

// Renderer formats topic content for display. format is the file
// extension of the topic, ".md" or ".txt".
type Renderer interface {
	Render(content string, format string) string
}

// PlainRenderer returns content unchanged
type PlainRenderer struct{}

// Render returns the content unchanged
func (PlainRenderer) Render(content string, format string) string {
	return content
}

// GlamourRenderer renders markdown topics for a terminal
type GlamourRenderer struct {
	Style string // "auto" or a glamour style path
	Width int    // 0 keeps glamour's default wrapping
}

// NewGlamourRenderer creates a renderer that detects the terminal style
func NewGlamourRenderer() *GlamourRenderer {
	return &GlamourRenderer{Style: "auto"}
}

// Render converts markdown, falling back to the raw text on any error
func (r *GlamourRenderer) Render(content string, format string) string {
	if format != ".md" {
		return content
	}

	var options []glamour.TermRendererOption
	if r.Style != "" && r.Style != "auto" {
		options = append(options, glamour.WithStylePath(r.Style))
	} else {
		options = append(options, glamour.WithAutoStyle())
	}
	if r.Width > 0 {
		options = append(options, glamour.WithWordWrap(r.Width))
	}

	renderer, err := glamour.NewTermRenderer(options...)
	if err != nil {
		return content
	}
	rendered, err := renderer.Render(content)
	if err != nil {
		return content
	}
	return rendered
}

// RendererFunc adapts a function to Renderer
type RendererFunc func(content string, format string) string

// Render calls f
func (f RendererFunc) Render(content string, format string) string {
	return f(content, format)
}

// Package preview renders the generated component reference for the
// terminal.
package preview

import (
	"fmt"

	"github.com/charmbracelet/glamour"
)

// DefaultWidth is used when the terminal width is unknown.
const DefaultWidth = 80

// Renderer wraps Glamour for rendering markdown to styled terminal output.
type Renderer struct {
	renderer *glamour.TermRenderer
}

// NewRenderer creates a Renderer that wraps at width. Styled output uses the
// dark style; plain output (for pipes and files) uses the notty style, which
// keeps the text free of escape sequences.
func NewRenderer(width int, styled bool) (*Renderer, error) {
	if width <= 0 {
		width = DefaultWidth
	}
	style := "notty"
	if styled {
		style = "dark"
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return nil, fmt.Errorf("creating glamour renderer: %w", err)
	}
	return &Renderer{renderer: r}, nil
}

// Render processes markdown text into terminal output.
func (r *Renderer) Render(md string) (string, error) {
	if md == "" {
		return "", nil
	}
	return r.renderer.Render(md)
}

package report

import (
	"fmt"

	"github.com/charmbracelet/glamour"
)

// RenderTerminal styles markdown for an interactive terminal. A width of 0
// keeps glamour's default wrapping.
func RenderTerminal(markdown string, width int) (string, error) {
	options := []glamour.TermRendererOption{glamour.WithAutoStyle()}
	if width > 0 {
		options = append(options, glamour.WithWordWrap(width))
	}

	renderer, err := glamour.NewTermRenderer(options...)
	if err != nil {
		return "", fmt.Errorf("creating markdown renderer: %w", err)
	}
	out, err := renderer.Render(markdown)
	if err != nil {
		return "", fmt.Errorf("rendering markdown: %w", err)
	}
	return out, nil
}

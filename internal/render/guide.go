// guide.go embeds the igr cheat-sheet and renders it through glamour when
// the destination is an interactive terminal, falling back to raw
// markdown for piped/redirected output (so it doubles as LLM context).
// Grounded on llmd/guide's embed.FS pattern and extension/core/guide.go's
// terminal-detect-then-glamour-render shape.
package render

import (
	"embed"
	"os"

	"github.com/charmbracelet/glamour"

	"github.com/jpl-au/igr/internal/termstate"
)

//go:embed guide.md
var guideFiles embed.FS

// Guide returns the raw markdown content of the guide page.
func Guide() (string, error) {
	data, err := guideFiles.ReadFile("guide.md")
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// RenderGuide returns the guide, glamour-rendered for a terminal when
// stdout is interactive, or raw markdown otherwise.
func RenderGuide() (string, error) {
	content, err := Guide()
	if err != nil {
		return "", err
	}
	if !termstate.IsTTY(os.Stdout) {
		return content, nil
	}
	rendered, err := glamour.Render(content, "dark")
	if err != nil {
		return content, nil
	}
	return rendered, nil
}

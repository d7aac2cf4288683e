package tui

import (
	"strings"

	"github.com/charmbracelet/glamour"
)

// markdownRenderer renders markdown for terminal views and recreates the
// renderer when the wrap width changes.
type markdownRenderer struct {
	width    int
	renderer *glamour.TermRenderer
}

// render converts markdown input into ANSI-styled terminal text with the
// requested wrap width.
func (r *markdownRenderer) render(markdown string, width int) string {
	markdown = strings.TrimSpace(markdown)
	if markdown == "" {
		return ""
	}

	wrapWidth := width
	if wrapWidth < 24 {
		wrapWidth = 24
	}

	if r.renderer == nil || r.width != wrapWidth {
		renderer, err := glamour.NewTermRenderer(
			glamour.WithStandardStyle("dark"),
			glamour.WithWordWrap(wrapWidth),
		)
		if err != nil {
			return markdown
		}
		r.renderer = renderer
		r.width = wrapWidth
	}

	rendered, err := r.renderer.Render(markdown)
	if err != nil {
		return markdown
	}
	return strings.TrimRight(rendered, "\n")
}

// helpMarkdown is the long-form help shown by the ? overlay.
const helpMarkdown = `# tavla

Tabbed todo lists with full undo.

## Lists

| key | action |
|-----|--------|
| h / l | switch list |
| N | new list |
| r | rename list |
| D | delete list (must be empty) |
| [ / ] | move list left / right |
| T | move list to front |

## Items

| key | action |
|-----|--------|
| j / k | select item |
| n | new item |
| e / enter | edit item |
| d | delete item |
| J / K | move item down / up |
| t | move item to top |
| m | move item to another list |
| y | copy item text |

## History

Every change above is one entry on a single undo stack. **z** undoes,
**Z** redoes. A new change after an undo discards the redo branch.

Deleting a list requires it to be empty first; delete or move its items,
then delete the list. Undo restores deletions in reverse order.
`

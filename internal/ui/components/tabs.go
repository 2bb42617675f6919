package components

import (
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/codeval/internal/ui/theme"
)

// Tabs is a horizontal tab selector.
type Tabs struct {
	Labels   []string
	Selected int
}

// Next moves to the following tab, wrapping around.
func (t *Tabs) Next() {
	if len(t.Labels) == 0 {
		return
	}
	t.Selected = (t.Selected + 1) % len(t.Labels)
}

// View renders the tab strip.
func (t Tabs) View() string {
	parts := make([]string, len(t.Labels))
	for i, l := range t.Labels {
		if i == t.Selected {
			parts[i] = lipgloss.NewStyle().
				Foreground(theme.Primary).
				Bold(true).
				Underline(true).
				Render(l)
		} else {
			parts[i] = lipgloss.NewStyle().Foreground(theme.TextDim).Render(l)
		}
	}
	return strings.Join(parts, "  │  ")
}

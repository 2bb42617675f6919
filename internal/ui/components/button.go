package components

import (
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/codeval/internal/ui/theme"
)

// Button is a key-labelled action shown in a results card.
type Button struct {
	Key    string
	Label  string
	Active bool
}

// View renders the button.
func (b Button) View() string {
	text := b.Label
	if b.Key != "" {
		text = "[" + b.Key + "] " + b.Label
	}
	if b.Active {
		return lipgloss.NewStyle().
			Background(theme.Primary).
			Foreground(theme.Text).
			Bold(true).
			Padding(0, 1).
			Render(text)
	}
	return lipgloss.NewStyle().
		Foreground(theme.TextDim).
		Padding(0, 1).
		Render(text)
}

// ButtonRow renders buttons side by side.
func ButtonRow(buttons ...Button) string {
	parts := make([]string, len(buttons))
	for i, b := range buttons {
		parts[i] = b.View()
	}
	return strings.Join(parts, " ")
}

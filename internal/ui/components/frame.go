package components

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/codeval/internal/ui/theme"
)

// SplashFrame wraps content in a double border, centered within the
// given dimensions.
func SplashFrame(content string, width, height int) string {
	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.Primary).
		Width(width).
		Height(height).
		Align(lipgloss.Center, lipgloss.Center).
		Render(content)
}

// PaneBox wraps content in a titled pane of width x height cells,
// borders included.
func PaneBox(title, content string, width, height int, focused bool) string {
	style := theme.Pane
	if focused {
		style = theme.FocusedPane
	}
	body := theme.SectionTitle.Render(title) + "\n" + content
	return style.
		Width(width).
		Height(height).
		MaxHeight(height).
		Render(body)
}

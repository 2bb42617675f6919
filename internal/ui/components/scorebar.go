package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/codeval/internal/ui/theme"
)

// ScoreBar displays a score out of Max as a horizontal bar.
type ScoreBar struct {
	Label string
	Score float64
	Max   float64
	Width int
}

// NewScoreBar creates a score bar.
func NewScoreBar(label string, score, max float64, width int) ScoreBar {
	return ScoreBar{Label: label, Score: score, Max: max, Width: width}
}

// Fraction returns the filled share in [0, 1].
func (p ScoreBar) Fraction() float64 {
	if p.Max <= 0 {
		return 0
	}
	f := p.Score / p.Max
	if f < 0 {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}

// View renders the bar.
func (p ScoreBar) View() string {
	var result string

	if p.Label != "" {
		result += lipgloss.NewStyle().Foreground(theme.Text).Width(14).Render(p.Label) + " "
	}

	value := fmt.Sprintf(" %.0f/%.0f", p.Score, p.Max)
	barWidth := p.Width - lipgloss.Width(result) - len(value)
	if barWidth < 4 {
		barWidth = 4
	}

	filled := int(float64(barWidth) * p.Fraction())
	empty := barWidth - filled

	result += theme.ScoreFilled.Render(strings.Repeat(" ", filled)) +
		theme.ScoreEmpty.Render(strings.Repeat(" ", empty)) +
		lipgloss.NewStyle().Foreground(theme.TextDim).Render(value)

	return result
}

package theme

import (
	"charm.land/lipgloss/v2"
)

// Color palette
var (
	Primary   = lipgloss.Color("#6366F1") // Indigo
	Secondary = lipgloss.Color("#14B8A6") // Teal
	Accent    = lipgloss.Color("#F59E0B") // Amber
	Success   = lipgloss.Color("#22C55E") // Green
	Error     = lipgloss.Color("#F43F5E") // Rose
	Text      = lipgloss.Color("#F8FAFC") // White
	TextDim   = lipgloss.Color("#94A3B8") // Slate
	BgDark    = lipgloss.Color("#0F172A") // Deep Navy
	BgCard    = lipgloss.Color("#1E293B") // Dark Slate
	Border    = lipgloss.Color("#334155") // Slate
)

// Typography
var (
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary).
		Align(lipgloss.Center)

	Subtitle = lipgloss.NewStyle().
			Foreground(TextDim).
			Align(lipgloss.Center)

	Body = lipgloss.NewStyle().
		Foreground(Text)

	Hint = lipgloss.NewStyle().
		Foreground(TextDim).
		Italic(true)

	SectionTitle = lipgloss.NewStyle().
			Bold(true).
			Foreground(Secondary)
)

// Layout
var (
	Pane = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Border).
		Padding(0, 1)

	FocusedPane = Pane.
			BorderForeground(Primary)

	Card = lipgloss.NewStyle().
		Background(BgCard).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Border).
		Padding(1, 2)
)

// States
var (
	Selected = lipgloss.NewStyle().
			Foreground(Primary).
			Bold(true)

	Unselected = lipgloss.NewStyle().
			Foreground(Text)

	Passed = lipgloss.NewStyle().
		Foreground(Success).
		Bold(true)

	Failed = lipgloss.NewStyle().
		Foreground(Error).
		Bold(true)
)

// Components
var (
	ScoreFilled = lipgloss.NewStyle().
			Background(Secondary)

	ScoreEmpty = lipgloss.NewStyle().
			Background(Border)

	Tag = lipgloss.NewStyle().
		Foreground(BgDark).
		Background(Secondary).
		Padding(0, 1)

	OfflineBanner = lipgloss.NewStyle().
			Foreground(BgDark).
			Background(Accent).
			Bold(true).
			Padding(0, 1)

	ToastInfo = lipgloss.NewStyle().
			Foreground(Text).
			Background(Primary).
			Padding(0, 1)

	ToastWarn = lipgloss.NewStyle().
			Foreground(BgDark).
			Background(Accent).
			Padding(0, 1)

	ToastError = lipgloss.NewStyle().
			Foreground(Text).
			Background(Error).
			Padding(0, 1)
)

// Difficulty returns the style for a difficulty label.
func Difficulty(level string) lipgloss.Style {
	switch level {
	case "easy":
		return lipgloss.NewStyle().Foreground(Success)
	case "medium":
		return lipgloss.NewStyle().Foreground(Accent)
	case "hard":
		return lipgloss.NewStyle().Foreground(Error)
	default:
		return lipgloss.NewStyle().Foreground(TextDim)
	}
}

// Grade returns the style for a letter grade.
func Grade(grade string) lipgloss.Style {
	switch grade {
	case "A", "A+", "B":
		return Passed
	case "F":
		return Failed
	default:
		return lipgloss.NewStyle().Foreground(Accent).Bold(true)
	}
}

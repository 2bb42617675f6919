package workspace

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/codeval/internal/analysis"
	"github.com/abhisek/codeval/internal/config"
	"github.com/abhisek/codeval/internal/editor"
	"github.com/abhisek/codeval/internal/session"
	"github.com/abhisek/codeval/internal/ui/components"
	"github.com/abhisek/codeval/internal/ui/layout"
	"github.com/abhisek/codeval/internal/ui/theme"
)

const (
	detailHeight = 6
	toastHeight  = 1
)

func difficultyStyle(level string) lipgloss.Style {
	return theme.Difficulty(level)
}

// topicLabel turns a topic key like "nested_if_else" into "Nested If Else".
func topicLabel(name string) string {
	words := strings.Fields(strings.ReplaceAll(name, "_", " "))
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

// resize recomputes component sizes when the content area changes.
func (w *Workspace) resize(width, height int) {
	if width == w.width && height == w.height {
		return
	}
	w.width, w.height = width, height

	_, rightW := layout.SplitWidth(width, 34, 28)
	editorH, resultsH := w.rightHeights(height)

	w.editor.SetWidth(rightW - 4)
	w.editor.SetHeight(max(editorH-4, 1))
	w.results.SetWidth(rightW - 4)
	w.results.SetHeight(max(resultsH-3, 1))
	w.refreshResults()
}

func (w *Workspace) rightHeights(height int) (editorH, resultsH int) {
	rest := height - detailHeight - toastHeight
	share := 55
	if layout.IsCompactHeight(height) {
		share = 50
	}
	editorH = rest * share / 100
	resultsH = rest - editorH
	return editorH, resultsH
}

func (w *Workspace) View(width, height int) string {
	w.resize(width, height)

	leftW, rightW := layout.SplitWidth(width, 34, 28)
	left := w.viewLeft(leftW, height)

	editorH, resultsH := w.rightHeights(height)
	right := lipgloss.JoinVertical(lipgloss.Left,
		w.viewDetail(rightW, detailHeight),
		w.viewEditor(rightW, editorH),
		components.PaneBox(w.resultsTitle(), w.results.View(), rightW, resultsH, w.focus == focusResults),
		w.toast.View(rightW),
	)

	return lipgloss.JoinHorizontal(lipgloss.Top, left, right)
}

func (w *Workspace) viewLeft(width, height int) string {
	topicsH := len(w.topics.Items) + 3
	if limit := height / 3; topicsH > limit {
		topicsH = limit
	}
	questionsH := height - topicsH

	topics := components.PaneBox("Topics",
		w.topics.View(width-4, topicsH-3, w.focus == focusTopics),
		width, topicsH, w.focus == focusTopics)

	filterLine := lipgloss.NewStyle().Foreground(theme.TextDim).Render("difficulty: ") +
		difficultyStyle(w.filter.Difficulty).Render(w.filter.Difficulty)
	if w.filter.Active() {
		filterLine += lipgloss.NewStyle().Foreground(theme.TextDim).
			Render(fmt.Sprintf("  (%d shown)", len(w.visible)))
	}

	body := filterLine + "\n" + w.search.View() + "\n" +
		w.questions.View(width-4, max(questionsH-5, 1), w.focus == focusQuestions)
	questions := components.PaneBox("Questions", body, width, questionsH, w.focus == focusQuestions)

	return lipgloss.JoinVertical(lipgloss.Left, topics, questions)
}

func (w *Workspace) viewDetail(width, height int) string {
	q := w.state.Question()
	if q == nil {
		return components.PaneBox("Question",
			theme.Hint.Render("Select a question to get started."), width, height, false)
	}

	header := fmt.Sprintf("#%d  ", q.ID) + difficultyStyle(q.Difficulty).Render(q.Difficulty) +
		lipgloss.NewStyle().Foreground(theme.TextDim).Render("  "+topicLabel(q.Topic))
	text := lipgloss.NewStyle().Foreground(theme.Text).Width(width - 4).Render(q.Question)

	tags := make([]string, len(q.Concepts))
	for i, c := range q.Concepts {
		tags[i] = theme.Tag.Render(c)
	}

	body := header + "\n" + text
	if len(tags) > 0 {
		body += "\n" + strings.Join(tags, " ")
	}
	return components.PaneBox("Question", body, width, height, false)
}

func (w *Workspace) viewEditor(width, height int) string {
	title := "Editor · " + config.LanguageLabel(w.state.Language())
	stats := editor.Count(w.editor.Value())
	footer := lipgloss.NewStyle().Foreground(theme.TextDim).Render(stats.String())
	return components.PaneBox(title, w.editor.View()+"\n"+footer, width, height, w.focus == focusEditor)
}

func (w *Workspace) resultsTitle() string {
	switch w.state.Phase() {
	case session.PhaseLoading:
		return "Analyzing"
	case session.PhaseResults:
		return "Results"
	case session.PhaseHistory:
		return "History"
	default:
		return "Welcome"
	}
}

// refreshResults re-renders the results area for the current phase.
func (w *Workspace) refreshResults() {
	width := w.results.Width()
	if width <= 0 {
		width = 60
	}

	var content string
	switch w.state.Phase() {
	case session.PhaseLoading:
		content = w.spinner.View() + " Analyzing your code..."
	case session.PhaseResults:
		if r := w.state.Result(); r != nil {
			content = renderCard(r.Card, r.Offline, width)
		}
	case session.PhaseHistory:
		content = theme.Hint.Render("Viewing history...")
	default:
		content = renderWelcome(w.state.Question() != nil)
	}
	w.results.SetContent(content)
	w.results.GotoTop()
}

func renderWelcome(haveQuestion bool) string {
	lines := []string{
		lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render("Ready when you are."),
		"",
	}
	if haveQuestion {
		lines = append(lines,
			"1. Edit the starter code in the editor (e)",
			"2. Submit with ctrl+s or s",
		)
	} else {
		lines = append(lines,
			"1. Pick a topic and a question",
			"2. Write your solution in the editor",
			"3. Submit with ctrl+s to get feedback",
		)
	}
	return strings.Join(lines, "\n")
}

func renderCard(c analysis.Card, offline bool, width int) string {
	var b strings.Builder

	if offline {
		b.WriteString(theme.OfflineBanner.Render("OFFLINE PREVIEW · not a real grade"))
		b.WriteString("\n\n")
	}

	status := theme.Passed.Render(c.Status())
	if !c.Passed {
		status = theme.Failed.Render(c.Status())
	}
	b.WriteString(fmt.Sprintf("Score %s   Grade %s   %s\n",
		lipgloss.NewStyle().Bold(true).Foreground(theme.Text).Render(fmt.Sprintf("%.0f", c.Score)),
		theme.Grade(c.Grade).Render(c.Grade),
		status))
	b.WriteString(lipgloss.NewStyle().Foreground(theme.TextDim).Render("Skill level: "+c.SkillLevel) + "\n\n")
	b.WriteString(lipgloss.NewStyle().Width(width).Render(c.Summary) + "\n")

	if len(c.SubScores) > 0 {
		b.WriteString("\n")
		for _, s := range c.SubScores {
			b.WriteString(components.NewScoreBar(s.Name, s.Value, subScoreMax(c), width).View() + "\n")
		}
	}

	if len(c.ConceptsFound) > 0 || len(c.ConceptsMissing) > 0 {
		b.WriteString("\n" + theme.SectionTitle.Render("Concepts") + "\n")
		for _, f := range c.ConceptsFound {
			b.WriteString(theme.Passed.Render("  ✓ ") + f + "\n")
		}
		for _, m := range c.ConceptsMissing {
			b.WriteString(theme.Failed.Render("  ✗ ") + m + "\n")
		}
	}

	section(&b, "Feedback", c.Feedback, width)
	section(&b, "Suggestions", c.Suggestions, width)
	section(&b, "Strengths", c.Strengths, width)
	section(&b, "Next steps", c.NextSteps, width)

	if c.AIWarning != "" {
		b.WriteString("\n" + lipgloss.NewStyle().Foreground(theme.Accent).Render("⚠ "+c.AIWarning) + "\n")
	}

	b.WriteString("\n" + components.ButtonRow(
		components.Button{Key: "t", Label: "Try again", Active: true},
		components.Button{Key: "h", Label: "History"},
	))
	return b.String()
}

// subScoreMax guesses the scale of sub-scores: they share the total when
// they add up to it, otherwise each is out of 100.
func subScoreMax(c analysis.Card) float64 {
	var sum float64
	for _, s := range c.SubScores {
		sum += s.Value
	}
	if sum <= 100 && len(c.SubScores) > 1 {
		return 100 / float64(len(c.SubScores))
	}
	return 100
}

func section(b *strings.Builder, title string, items []string, width int) {
	if len(items) == 0 {
		return
	}
	b.WriteString("\n" + theme.SectionTitle.Render(title) + "\n")
	style := lipgloss.NewStyle().Width(width - 2)
	for _, it := range items {
		b.WriteString("• " + style.Render(it) + "\n")
	}
}

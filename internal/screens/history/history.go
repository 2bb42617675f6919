// Package history shows past analyses: the local log and the service's
// own history.
package history

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/codeval/internal/api"
	"github.com/abhisek/codeval/internal/evaluator"
	"github.com/abhisek/codeval/internal/history"
	"github.com/abhisek/codeval/internal/router"
	"github.com/abhisek/codeval/internal/screen"
	"github.com/abhisek/codeval/internal/ui/components"
	"github.com/abhisek/codeval/internal/ui/layout"
	"github.com/abhisek/codeval/internal/ui/theme"
)

const (
	tabLocal = iota
	tabServer
)

type localLoadedMsg struct {
	entries []history.Entry
	err     error
}

type serverLoadedMsg struct {
	entries []api.ServerHistoryEntry
	err     error
}

type clearedMsg struct {
	err error
}

// row is one displayable history line with its expandable details.
type row struct {
	when    string
	lang    string
	score   float64
	grade   string
	details []string
}

// HistoryScreen displays local and service-side analysis history.
type HistoryScreen struct {
	store   *history.Store
	backend api.Backend

	tabs     components.Tabs
	rows     [2][]row
	loaded   [2]bool
	errMsg   [2]string // service tab only; local storage errors are logged
	selected [2]int
	expanded map[int]bool

	confirmClear bool
}

var _ screen.Screen = (*HistoryScreen)(nil)
var _ screen.KeyHintProvider = (*HistoryScreen)(nil)

// New creates a HistoryScreen. backend may be nil to hide server history.
func New(store *history.Store, backend api.Backend) *HistoryScreen {
	return &HistoryScreen{
		store:    store,
		backend:  backend,
		tabs:     components.Tabs{Labels: []string{"This device", "Service"}},
		expanded: make(map[int]bool),
	}
}

func (s *HistoryScreen) Init() tea.Cmd {
	return s.loadLocal()
}

func (s *HistoryScreen) loadLocal() tea.Cmd {
	st := s.store
	return func() tea.Msg {
		if st == nil {
			return localLoadedMsg{}
		}
		entries, err := st.List(context.Background())
		return localLoadedMsg{entries: entries, err: err}
	}
}

func (s *HistoryScreen) loadServer() tea.Cmd {
	b := s.backend
	return func() tea.Msg {
		entries, err := b.History(context.Background())
		return serverLoadedMsg{entries: entries, err: err}
	}
}

func (s *HistoryScreen) Title() string {
	return "History"
}

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	if s.confirmClear {
		return []layout.KeyHint{
			{Key: "y", Description: "Clear history"},
			{Key: "any key", Description: "Cancel"},
		}
	}
	hints := []layout.KeyHint{
		{Key: "Tab", Description: "Switch"},
		{Key: "Enter", Description: "Details"},
		{Key: "↑↓", Description: "Navigate"},
	}
	if s.tabs.Selected == tabLocal {
		hints = append(hints, layout.KeyHint{Key: "c", Description: "Clear"})
	}
	return append(hints, layout.KeyHint{Key: "Esc", Description: "Back"})
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case localLoadedMsg:
		s.loaded[tabLocal] = true
		if msg.err != nil {
			log.Printf("warning: local history unavailable: %v", msg.err)
		}
		s.rows[tabLocal] = localRows(msg.entries)
		if s.selected[tabLocal] >= len(s.rows[tabLocal]) {
			s.selected[tabLocal] = 0
		}
		return s, nil

	case serverLoadedMsg:
		s.loaded[tabServer] = true
		if msg.err != nil {
			s.errMsg[tabServer] = evaluator.UserMessage(msg.err)
			return s, nil
		}
		s.rows[tabServer] = serverRows(msg.entries)
		return s, nil

	case clearedMsg:
		if msg.err != nil {
			log.Printf("warning: local history not cleared: %v", msg.err)
		}
		s.expanded = make(map[int]bool)
		return s, s.loadLocal()

	case tea.KeyPressMsg:
		return s, s.handleKey(msg.String())
	}
	return s, nil
}

func (s *HistoryScreen) handleKey(key string) tea.Cmd {
	if s.confirmClear {
		s.confirmClear = false
		if key == "y" && s.store != nil {
			st := s.store
			return func() tea.Msg {
				return clearedMsg{err: st.Clear(context.Background())}
			}
		}
		return nil
	}

	tab := s.tabs.Selected
	switch key {
	case "esc", "h":
		return func() tea.Msg { return router.PopScreenMsg{} }
	case "tab", "shift+tab":
		if s.backend == nil {
			return nil
		}
		s.tabs.Next()
		s.expanded = make(map[int]bool)
		if s.tabs.Selected == tabServer && !s.loaded[tabServer] {
			return s.loadServer()
		}
	case "r":
		if tab == tabServer && s.backend != nil {
			s.loaded[tabServer] = false
			return s.loadServer()
		}
		return s.loadLocal()
	case "c":
		if tab == tabLocal && len(s.rows[tabLocal]) > 0 {
			s.confirmClear = true
		}
	case "up", "k":
		if s.selected[tab] > 0 {
			s.selected[tab]--
		}
	case "down", "j":
		if s.selected[tab] < len(s.rows[tab])-1 {
			s.selected[tab]++
		}
	case "enter":
		s.expanded[s.selected[tab]] = !s.expanded[s.selected[tab]]
	}
	return nil
}

func localRows(entries []history.Entry) []row {
	rows := make([]row, len(entries))
	for i, e := range entries {
		rows[i] = row{
			when:  formatTime(e.Timestamp),
			lang:  e.Language,
			score: e.Score,
			grade: e.Grade,
			details: []string{
				e.Summary,
				"Code: " + strings.ReplaceAll(e.CodePreview, "\n", " ⏎ "),
			},
		}
	}
	return rows
}

func serverRows(entries []api.ServerHistoryEntry) []row {
	rows := make([]row, len(entries))
	for i, e := range entries {
		details := []string{
			fmt.Sprintf("Skill level: %s  Lines: %d  Complexity: %s  Mistakes: %d",
				orNA(e.SkillLevel), e.TotalLines, orNA(e.Complexity), e.MistakesCount),
		}
		if e.FeedbackSummary != "" {
			details = append(details, e.FeedbackSummary)
		}
		if len(e.MistakeTypes) > 0 {
			details = append(details, "Mistakes: "+strings.Join(e.MistakeTypes, ", "))
		}
		if e.CodeSnippetPreview != "" {
			details = append(details, "Code: "+strings.ReplaceAll(e.CodeSnippetPreview, "\n", " ⏎ "))
		}
		rows[i] = row{
			when:    formatTime(e.Timestamp),
			lang:    e.Language,
			score:   e.Score,
			grade:   e.Grade,
			details: details,
		}
	}
	return rows
}

// formatTime renders RFC 3339 or naive ISO timestamps; anything else is
// shown verbatim.
func formatTime(ts string) string {
	for _, f := range []string{time.RFC3339, "2006-01-02T15:04:05.999999", "2006-01-02T15:04:05"} {
		if t, err := time.Parse(f, ts); err == nil {
			return t.Local().Format("Jan 02 15:04")
		}
	}
	return ts
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}

func (s *HistoryScreen) View(width, height int) string {
	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, s.tabs.View()))
	b.WriteString("\n\n")

	tab := s.tabs.Selected
	center := func(style lipgloss.Style, text string) string {
		return lipgloss.PlaceHorizontal(width, lipgloss.Center, style.Render(text))
	}

	switch {
	case s.confirmClear:
		b.WriteString(center(lipgloss.NewStyle().Foreground(theme.Accent).Bold(true),
			"Clear all local history? (y to confirm)"))
		return b.String()
	case s.errMsg[tab] != "":
		b.WriteString(center(lipgloss.NewStyle().Foreground(theme.Error), "Error: "+s.errMsg[tab]))
		return b.String()
	case !s.loaded[tab]:
		b.WriteString(center(lipgloss.NewStyle().Foreground(theme.TextDim), "Loading history..."))
		return b.String()
	case len(s.rows[tab]) == 0:
		b.WriteString(center(lipgloss.NewStyle().Foreground(theme.TextDim).Italic(true),
			"No analyses yet. Submit some code!"))
		return b.String()
	}

	lineWidth := min(width-4, 90)
	for i, r := range s.rows[tab] {
		prefix := "  "
		if i == s.selected[tab] {
			prefix = "▸ "
		}
		line := fmt.Sprintf("%s%-13s %-7s %5.0f  ", prefix, r.when, r.lang, r.score)

		style := lipgloss.NewStyle().Foreground(theme.Text)
		if i == s.selected[tab] {
			style = style.Foreground(theme.Primary).Bold(true)
		}
		rendered := style.Render(line) + theme.Grade(r.grade).Render(orNA(r.grade))
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			lipgloss.NewStyle().Width(lineWidth).Render(rendered)))
		b.WriteString("\n")

		if s.expanded[i] {
			detail := lipgloss.NewStyle().Foreground(theme.TextDim).Width(lineWidth - 4).PaddingLeft(4)
			for _, d := range r.details {
				b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
					lipgloss.NewStyle().Width(lineWidth).Render(detail.Render(layout.Truncate(d, 3*lineWidth)))))
				b.WriteString("\n")
			}
		}
	}

	return b.String()
}

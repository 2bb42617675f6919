package components

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/codeval/internal/ui/layout"
	"github.com/abhisek/codeval/internal/ui/theme"
)

// ListItem is one row of a List.
type ListItem struct {
	Label  string
	Detail string // right-aligned, dimmed unless DetailStyle is set

	DetailStyle *lipgloss.Style
}

// List is a vertical, scrollable selection list. The highlighted row is
// the cursor; Active marks the row that is in effect (for example the
// selected topic), which may differ while the user browses.
type List struct {
	Items  []ListItem
	Cursor int
	Active int // -1 for none

	offset int
}

// NewList creates a list with the cursor on the first item.
func NewList(items []ListItem) List {
	return List{Items: items, Active: -1}
}

// SetItems replaces the rows, clamping the cursor.
func (l *List) SetItems(items []ListItem) {
	l.Items = items
	if l.Cursor >= len(items) {
		l.Cursor = len(items) - 1
	}
	if l.Cursor < 0 {
		l.Cursor = 0
	}
	if l.Active >= len(items) {
		l.Active = -1
	}
	l.offset = 0
}

// Update handles keyboard navigation. It returns true when the cursor moved.
func (l *List) Update(msg tea.Msg) bool {
	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok || len(l.Items) == 0 {
		return false
	}

	prev := l.Cursor
	switch kmsg.String() {
	case "up", "k":
		if l.Cursor > 0 {
			l.Cursor--
		}
	case "down", "j":
		if l.Cursor < len(l.Items)-1 {
			l.Cursor++
		}
	case "home", "g":
		l.Cursor = 0
	case "end", "G":
		l.Cursor = len(l.Items) - 1
	}
	return l.Cursor != prev
}

// View renders at most height rows, scrolling to keep the cursor visible.
func (l *List) View(width, height int, focused bool) string {
	if len(l.Items) == 0 {
		return theme.Hint.Render("  (empty)")
	}
	if height < 1 {
		height = 1
	}

	if l.Cursor < l.offset {
		l.offset = l.Cursor
	}
	if l.Cursor >= l.offset+height {
		l.offset = l.Cursor - height + 1
	}

	end := l.offset + height
	if end > len(l.Items) {
		end = len(l.Items)
	}

	var b strings.Builder
	for i := l.offset; i < end; i++ {
		item := l.Items[i]

		marker := "  "
		if i == l.Active {
			marker = "● "
		}
		if i == l.Cursor && focused {
			marker = "▸ "
		}

		detail := ""
		if item.Detail != "" {
			style := lipgloss.NewStyle().Foreground(theme.TextDim)
			if item.DetailStyle != nil {
				style = *item.DetailStyle
			}
			detail = " " + style.Render(item.Detail)
		}

		labelWidth := width - lipgloss.Width(marker) - lipgloss.Width(detail)
		label := layout.Truncate(item.Label, labelWidth)

		style := theme.Unselected
		if i == l.Cursor && focused {
			style = theme.Selected
		} else if i == l.Active {
			style = lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true)
		}

		gap := labelWidth - lipgloss.Width(label)
		if gap < 0 {
			gap = 0
		}
		b.WriteString(style.Render(marker+label) + strings.Repeat(" ", gap) + detail)
		if i < end-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

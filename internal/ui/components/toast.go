package components

import (
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/codeval/internal/ui/theme"
)

// ToastLevel selects the toast color.
type ToastLevel int

const (
	ToastInfo ToastLevel = iota
	ToastWarn
	ToastError
)

// ToastDuration is how long a toast stays visible.
const ToastDuration = 4 * time.Second

// ToastExpiredMsg hides the toast with the matching sequence number.
type ToastExpiredMsg struct {
	seq int
}

// Broadcast lets the expiry reach a covered screen.
func (ToastExpiredMsg) Broadcast() {}

// Toast is a single transient notification line.
type Toast struct {
	Text  string
	Level ToastLevel
	seq   int
}

// Show replaces the current toast and schedules its expiry.
func (t *Toast) Show(level ToastLevel, text string) tea.Cmd {
	t.seq++
	t.Text = text
	t.Level = level
	seq := t.seq
	return tea.Tick(ToastDuration, func(time.Time) tea.Msg {
		return ToastExpiredMsg{seq: seq}
	})
}

// Expire hides the toast if msg belongs to the one showing.
func (t *Toast) Expire(msg ToastExpiredMsg) {
	if msg.seq == t.seq {
		t.Text = ""
	}
}

// Visible reports whether a toast is showing.
func (t Toast) Visible() bool {
	return t.Text != ""
}

// View renders the toast, or "" when hidden.
func (t Toast) View(width int) string {
	if t.Text == "" {
		return ""
	}
	style := theme.ToastInfo
	switch t.Level {
	case ToastWarn:
		style = theme.ToastWarn
	case ToastError:
		style = theme.ToastError
	}
	return style.MaxWidth(width).Render(t.Text)
}

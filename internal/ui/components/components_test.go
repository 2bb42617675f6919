package components

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
)

func key(s string) tea.KeyPressMsg {
	switch s {
	case "up":
		return tea.KeyPressMsg{Code: tea.KeyUp}
	case "down":
		return tea.KeyPressMsg{Code: tea.KeyDown}
	}
	r := []rune(s)[0]
	return tea.KeyPressMsg{Code: r, Text: s}
}

func TestListNavigation(t *testing.T) {
	l := NewList([]ListItem{{Label: "a"}, {Label: "b"}, {Label: "c"}})

	if l.Update(key("up")) {
		t.Error("moving up at top should not report a move")
	}
	l.Update(key("down"))
	l.Update(key("j"))
	if l.Cursor != 2 {
		t.Errorf("Cursor = %d, want 2", l.Cursor)
	}
	if l.Update(key("down")) {
		t.Error("moving down at bottom should not report a move")
	}
}

func TestListScrollsToCursor(t *testing.T) {
	items := make([]ListItem, 10)
	for i := range items {
		items[i] = ListItem{Label: string(rune('a' + i))}
	}
	l := NewList(items)
	l.Cursor = 9

	out := l.View(20, 3, true)
	if strings.Count(out, "\n") != 2 {
		t.Errorf("expected 3 rows, got %q", out)
	}
	if !strings.Contains(out, "j") {
		t.Errorf("cursor row not visible: %q", out)
	}
}

func TestSetItemsClampsCursor(t *testing.T) {
	l := NewList([]ListItem{{Label: "a"}, {Label: "b"}, {Label: "c"}})
	l.Cursor = 2
	l.Active = 2
	l.SetItems([]ListItem{{Label: "x"}})
	if l.Cursor != 0 || l.Active != -1 {
		t.Errorf("Cursor=%d Active=%d after shrink", l.Cursor, l.Active)
	}
}

func TestScoreBarFraction(t *testing.T) {
	tests := []struct {
		score, max, want float64
	}{
		{50, 100, 0.5},
		{150, 100, 1},
		{-5, 100, 0},
		{10, 0, 0},
	}
	for _, tt := range tests {
		if got := NewScoreBar("", tt.score, tt.max, 40).Fraction(); got != tt.want {
			t.Errorf("Fraction(%v/%v) = %v, want %v", tt.score, tt.max, got, tt.want)
		}
	}
}

func TestToastExpiresOnlyLatest(t *testing.T) {
	var toast Toast
	toast.Show(ToastInfo, "first")
	first := ToastExpiredMsg{seq: toast.seq}
	toast.Show(ToastError, "second")

	toast.Expire(first)
	if !toast.Visible() || toast.Text != "second" {
		t.Errorf("stale expiry hid the toast: %+v", toast)
	}
	toast.Expire(ToastExpiredMsg{seq: toast.seq})
	if toast.Visible() {
		t.Error("toast still visible after expiry")
	}
}

func TestTabsWrap(t *testing.T) {
	tabs := Tabs{Labels: []string{"Local", "Server"}}
	tabs.Next()
	tabs.Next()
	if tabs.Selected != 0 {
		t.Errorf("Selected = %d, want 0", tabs.Selected)
	}
}

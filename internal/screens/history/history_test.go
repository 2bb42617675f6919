package history

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/codeval/internal/api"
	"github.com/abhisek/codeval/internal/history"
	"github.com/abhisek/codeval/internal/router"
	"github.com/abhisek/codeval/internal/store"
)

func newHistoryStore(t *testing.T) *history.Store {
	t.Helper()
	s, err := store.Open(filepath.Join(t.TempDir(), "codeval.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return history.New(s.KV())
}

func press(s *HistoryScreen, key string) tea.Cmd {
	var msg tea.KeyPressMsg
	switch key {
	case "tab":
		msg = tea.KeyPressMsg{Code: tea.KeyTab}
	case "esc":
		msg = tea.KeyPressMsg{Code: tea.KeyEscape}
	case "enter":
		msg = tea.KeyPressMsg{Code: tea.KeyEnter}
	default:
		msg = tea.KeyPressMsg{Code: []rune(key)[0], Text: key}
	}
	_, cmd := s.Update(msg)
	return cmd
}

func TestLocalHistoryShown(t *testing.T) {
	hs := newHistoryStore(t)
	ctx := context.Background()
	hs.Record(ctx, history.Entry{ID: 1, Timestamp: "2024-03-01T09:30:00Z", Language: "python", Score: 81, Grade: "A", Summary: "Nice loop", CodePreview: "for i in range(3):"})

	s := New(hs, api.NewMockBackend())
	s.Update(s.Init()())

	view := s.View(100, 30)
	if !strings.Contains(view, "python") || !strings.Contains(view, "81") {
		t.Errorf("view missing entry: %q", view)
	}

	press(s, "enter")
	if !strings.Contains(s.View(100, 30), "Nice loop") {
		t.Error("expanded row should show the summary")
	}
}

func TestCorruptLocalHistoryIsNotShownAsError(t *testing.T) {
	st, err := store.Open(filepath.Join(t.TempDir(), "codeval.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { st.Close() })
	if err := st.KV().Put(context.Background(), history.Key, "{not json"); err != nil {
		t.Fatalf("seed: %v", err)
	}

	s := New(history.New(st.KV()), nil)
	s.Update(s.Init()())

	view := s.View(100, 30)
	if strings.Contains(view, "Error:") {
		t.Errorf("storage error reached the view: %q", view)
	}
	if !strings.Contains(view, "No analyses yet") {
		t.Error("expected the empty history message")
	}
}

func TestEmptyHistory(t *testing.T) {
	s := New(newHistoryStore(t), nil)
	s.Update(s.Init()())
	if !strings.Contains(s.View(100, 30), "No analyses yet") {
		t.Error("expected empty message")
	}
}

func TestServerTabLoadsOnDemand(t *testing.T) {
	mock := api.NewMockBackend()
	mock.Entries = []api.ServerHistoryEntry{{ID: 3, Timestamp: "2024-01-01T10:00:00", Language: "c", Score: 55, Grade: "C"}}

	s := New(newHistoryStore(t), mock)
	s.Update(s.Init()())

	cmd := press(s, "tab")
	if cmd == nil {
		t.Fatal("expected server load command")
	}
	s.Update(cmd())

	if !strings.Contains(s.View(100, 30), "55") {
		t.Error("server entry not shown")
	}
}

func TestServerTabError(t *testing.T) {
	mock := api.NewMockBackend()
	mock.HistoryErr = &api.ServerError{StatusCode: 500, Message: "db locked"}

	s := New(newHistoryStore(t), mock)
	s.Update(press(s, "tab")())

	if !strings.Contains(s.View(100, 30), "db locked") {
		t.Error("expected server error message")
	}
}

func TestClearRequiresConfirmation(t *testing.T) {
	hs := newHistoryStore(t)
	ctx := context.Background()
	hs.Record(ctx, history.Entry{ID: 1, Grade: "B"})

	s := New(hs, nil)
	s.Update(s.Init()())

	press(s, "c")
	if cmd := press(s, "n"); cmd != nil {
		t.Error("cancel should not clear")
	}
	entries, _ := hs.List(ctx)
	if len(entries) != 1 {
		t.Fatalf("entries = %d after cancel", len(entries))
	}

	press(s, "c")
	cleared := press(s, "y")()
	reload := func() tea.Cmd { _, c := s.Update(cleared); return c }()
	s.Update(reload())

	entries, _ = hs.List(ctx)
	if len(entries) != 0 {
		t.Errorf("entries = %d after clear", len(entries))
	}
}

func TestEscPops(t *testing.T) {
	s := New(nil, nil)
	cmd := press(s, "esc")
	if cmd == nil {
		t.Fatal("expected pop command")
	}
	if _, ok := cmd().(router.PopScreenMsg); !ok {
		t.Error("expected PopScreenMsg")
	}
}

func TestFormatTime(t *testing.T) {
	if got := formatTime("not a time"); got != "not a time" {
		t.Errorf("formatTime passthrough = %q", got)
	}
	if got := formatTime("2024-01-01T10:00:00"); got == "2024-01-01T10:00:00" {
		t.Error("naive ISO timestamp not parsed")
	}
}

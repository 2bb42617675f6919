package router

import (
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/codeval/internal/screen"
)

// fakeScreen records Init calls and the messages it receives.
type fakeScreen struct {
	name  string
	inits int
	msgs  []tea.Msg
}

func (s *fakeScreen) Init() tea.Cmd {
	s.inits++
	return nil
}

func (s *fakeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	s.msgs = append(s.msgs, msg)
	return s, nil
}

func (s *fakeScreen) View(int, int) string { return s.name }
func (s *fakeScreen) Title() string        { return s.name }

type keyLikeMsg struct{}

type analysisResultMsg struct{}

func (analysisResultMsg) Broadcast() {}

func titles(r *Router) []string {
	out := make([]string, len(r.stack))
	for i, s := range r.stack {
		out[i] = s.Title()
	}
	return out
}

func TestStackOperations(t *testing.T) {
	tests := []struct {
		name   string
		run    func(r *Router)
		want   []string
		inited string
	}{
		{
			name:   "push history over workspace",
			run:    func(r *Router) { r.Update(PushScreenMsg{Screen: &fakeScreen{name: "history"}}) },
			want:   []string{"workspace", "history"},
			inited: "history",
		},
		{
			name: "pop back to workspace",
			run: func(r *Router) {
				r.Push(&fakeScreen{name: "history"})
				r.Update(PopScreenMsg{})
			},
			want: []string{"workspace"},
		},
		{
			name: "pop at the root is ignored",
			run:  func(r *Router) { r.Pop() },
			want: []string{"workspace"},
		},
		{
			name:   "replace keeps depth",
			run:    func(r *Router) { r.Update(ReplaceScreenMsg{Screen: &fakeScreen{name: "welcome"}}) },
			want:   []string{"welcome"},
			inited: "welcome",
		},
		{
			name: "replace on a deeper stack swaps only the top",
			run: func(r *Router) {
				r.Push(&fakeScreen{name: "history"})
				r.Replace(&fakeScreen{name: "stats"})
			},
			want:   []string{"workspace", "stats"},
			inited: "stats",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := New(&fakeScreen{name: "workspace"})
			tt.run(r)

			got := titles(r)
			if len(got) != len(tt.want) {
				t.Fatalf("stack = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Fatalf("stack = %v, want %v", got, tt.want)
				}
			}
			if r.Depth() != len(tt.want) {
				t.Errorf("Depth() = %d, want %d", r.Depth(), len(tt.want))
			}
			if r.Active().Title() != tt.want[len(tt.want)-1] {
				t.Errorf("Active() = %q", r.Active().Title())
			}
			if tt.inited != "" {
				if fs := r.Active().(*fakeScreen); fs.inits != 1 {
					t.Errorf("%s Init ran %d times, want 1", tt.inited, fs.inits)
				}
			}
		})
	}
}

func TestBroadcastReachesCoveredScreens(t *testing.T) {
	ws := &fakeScreen{name: "workspace"}
	hist := &fakeScreen{name: "history"}
	r := New(ws)
	r.Push(hist)

	r.Update(keyLikeMsg{})
	if len(ws.msgs) != 0 {
		t.Errorf("plain message reached covered screen: %v", ws.msgs)
	}
	if len(hist.msgs) != 1 {
		t.Errorf("top screen got %d messages, want 1", len(hist.msgs))
	}

	r.Update(analysisResultMsg{})
	if len(ws.msgs) != 1 || len(hist.msgs) != 2 {
		t.Errorf("broadcast delivery workspace=%d history=%d", len(ws.msgs), len(hist.msgs))
	}
}

func TestPopSendsRevealed(t *testing.T) {
	ws := &fakeScreen{name: "workspace"}
	r := New(ws)
	r.Push(&fakeScreen{name: "history"})
	r.Pop()

	if len(ws.msgs) != 1 {
		t.Fatalf("workspace got %d messages, want 1", len(ws.msgs))
	}
	if _, ok := ws.msgs[0].(screen.RevealedMsg); !ok {
		t.Errorf("expected RevealedMsg, got %T", ws.msgs[0])
	}
}

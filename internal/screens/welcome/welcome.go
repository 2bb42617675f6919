// Package welcome is the startup splash. It probes the service and loads
// the catalog, then hands both to the workspace.
package welcome

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/codeval/internal/api"
	"github.com/abhisek/codeval/internal/catalog"
	"github.com/abhisek/codeval/internal/router"
	"github.com/abhisek/codeval/internal/screen"
	"github.com/abhisek/codeval/internal/ui/components"
	"github.com/abhisek/codeval/internal/ui/layout"
	"github.com/abhisek/codeval/internal/ui/theme"
)

const (
	tickInterval = 100 * time.Millisecond
	minSplash    = 1500 * time.Millisecond
)

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

type tickMsg time.Time

type healthMsg struct {
	health *api.Health
	err    error
}

type catalogMsg struct {
	catalog *catalog.Catalog
	err     error
}

// Loaded is what the splash hands to the next screen.
type Loaded struct {
	Catalog *catalog.Catalog

	// CatalogErr is a *catalog.FallbackError when the built-in catalog
	// is in use.
	CatalogErr error

	Health    *api.Health
	HealthErr error
}

// Warnings lists non-fatal startup problems for display.
func (l Loaded) Warnings() []string {
	var out []string
	if l.HealthErr != nil {
		var vm *api.VersionMismatchError
		if errors.As(l.HealthErr, &vm) {
			out = append(out, vm.Error())
		}
	}
	if l.CatalogErr != nil {
		out = append(out, "Cannot load questions from the service; using built-in questions")
	}
	return out
}

// WelcomeScreen shows a splash while startup requests run.
type WelcomeScreen struct {
	backend api.Backend
	next    func(Loaded) screen.Screen

	loaded       Loaded
	gotHealth    bool
	gotCatalog   bool
	elapsed      time.Duration
	tickCount    int
	transitioned bool
}

var _ screen.Screen = (*WelcomeScreen)(nil)

// New creates a WelcomeScreen that transitions to the screen built by next.
func New(backend api.Backend, next func(Loaded) screen.Screen) *WelcomeScreen {
	return &WelcomeScreen{backend: backend, next: next}
}

func (w *WelcomeScreen) Title() string {
	return ""
}

func (w *WelcomeScreen) Init() tea.Cmd {
	return tea.Batch(tick(), w.probe(), w.loadCatalog())
}

func tick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (w *WelcomeScreen) probe() tea.Cmd {
	return func() tea.Msg {
		h, err := w.backend.Health(context.Background())
		if err == nil {
			err = api.CheckVersion(h)
		}
		return healthMsg{health: h, err: err}
	}
}

func (w *WelcomeScreen) loadCatalog() tea.Cmd {
	return func() tea.Msg {
		c, err := catalog.Load(context.Background(), w.backend)
		return catalogMsg{catalog: c, err: err}
	}
}

// Ready reports whether startup requests have finished.
func (w *WelcomeScreen) Ready() bool {
	return w.gotHealth && w.gotCatalog
}

func (w *WelcomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		w.elapsed += tickInterval
		w.tickCount++
		if w.Ready() && w.elapsed >= minSplash {
			return w, w.transition()
		}
		return w, tick()

	case healthMsg:
		w.gotHealth = true
		w.loaded.Health = msg.health
		w.loaded.HealthErr = msg.err

	case catalogMsg:
		w.gotCatalog = true
		w.loaded.Catalog = msg.catalog
		w.loaded.CatalogErr = msg.err

	case tea.KeyPressMsg:
		// A key skips the rest of the splash once loading is done.
		if w.Ready() {
			return w, w.transition()
		}
	}

	return w, nil
}

func (w *WelcomeScreen) transition() tea.Cmd {
	if w.transitioned {
		return nil
	}
	w.transitioned = true
	nextScreen := w.next(w.loaded)
	return func() tea.Msg {
		return router.ReplaceScreenMsg{Screen: nextScreen}
	}
}

func (w *WelcomeScreen) View(width, height int) string {
	sections := []string{
		RenderBanner(width),
		"",
		lipgloss.NewStyle().
			Foreground(theme.Text).
			Bold(true).
			Render("Write code. Get feedback. Improve."),
		"",
		w.statusLine("Service", w.gotHealth, w.healthStatus()),
		w.statusLine("Questions", w.gotCatalog, w.catalogStatus()),
	}

	if w.Ready() {
		sections = append(sections, "",
			lipgloss.NewStyle().
				Foreground(theme.TextDim).
				Italic(true).
				Render("press any key to continue"))
	}

	content := strings.Join(sections, "\n")
	if !layout.IsCompactHeight(height) && !layout.IsCompactWidth(width) {
		content = components.SplashFrame(content,
			min(width-4, lipgloss.Width(content)+8),
			min(height-2, lipgloss.Height(content)+4))
	}
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}

func (w *WelcomeScreen) statusLine(label string, done bool, status string) string {
	mark := lipgloss.NewStyle().Foreground(theme.Secondary).
		Render(spinnerFrames[w.tickCount%len(spinnerFrames)])
	if done {
		mark = status
	}
	return lipgloss.NewStyle().Foreground(theme.TextDim).Width(12).Render(label) + mark
}

func (w *WelcomeScreen) healthStatus() string {
	ok := lipgloss.NewStyle().Foreground(theme.Success)
	warn := lipgloss.NewStyle().Foreground(theme.Accent)
	bad := lipgloss.NewStyle().Foreground(theme.Error)

	var vm *api.VersionMismatchError
	switch {
	case w.loaded.HealthErr == nil && w.loaded.Health != nil:
		return ok.Render(fmt.Sprintf("✓ %s v%s", orDefault(w.loaded.Health.Service, "online"), orDefault(w.loaded.Health.Version, "?")))
	case errors.As(w.loaded.HealthErr, &vm):
		return warn.Render("! " + vm.Error())
	default:
		return bad.Render("✗ offline (results will be previews)")
	}
}

func (w *WelcomeScreen) catalogStatus() string {
	if w.loaded.Catalog == nil {
		return ""
	}
	text := fmt.Sprintf("%d questions in %d topics", w.loaded.Catalog.Len(), len(w.loaded.Catalog.Topics()))
	if w.loaded.CatalogErr != nil {
		return lipgloss.NewStyle().Foreground(theme.Accent).Render("! built-in: " + text)
	}
	return lipgloss.NewStyle().Foreground(theme.Success).Render("✓ " + text)
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

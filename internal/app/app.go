package app

import (
	"fmt"
	"os"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/codeval/internal/api"
	"github.com/abhisek/codeval/internal/autosave"
	"github.com/abhisek/codeval/internal/config"
	"github.com/abhisek/codeval/internal/evaluator"
	"github.com/abhisek/codeval/internal/history"
	"github.com/abhisek/codeval/internal/router"
	"github.com/abhisek/codeval/internal/screen"
	"github.com/abhisek/codeval/internal/screens/welcome"
	"github.com/abhisek/codeval/internal/screens/workspace"
	"github.com/abhisek/codeval/internal/store"
	"github.com/abhisek/codeval/internal/ui/layout"
)

// Options holds dependencies for the TUI.
type Options struct {
	Config  config.Config
	Backend api.Backend
	KV      store.KVRepo // nil disables local history and auto-save
}

// headerInfoProvider is implemented by screens that report connection
// details for the header bar.
type headerInfoProvider interface {
	HeaderInfo() layout.HeaderInfo
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router *router.Router
	info   layout.HeaderInfo
	width  int
	height int
}

// newAppModel creates a new AppModel starting at the splash screen.
func newAppModel(opts Options) AppModel {
	var hist *history.Store
	var saver *autosave.Saver
	if opts.KV != nil {
		hist = history.New(opts.KV)
		saver = autosave.NewSaver(opts.KV)
	}
	deps := workspace.Deps{
		Backend:   opts.Backend,
		Evaluator: evaluator.New(opts.Backend, hist),
		History:   hist,
		Saver:     saver,
		ServerURL: opts.Config.ServerURL,
		Language:  opts.Config.Language,
	}

	next := func(l welcome.Loaded) screen.Screen {
		return workspace.New(deps, l.Catalog, l.Warnings())
	}

	return AppModel{
		router: router.New(welcome.New(opts.Backend, next)),
		info: layout.HeaderInfo{
			Server:   opts.Config.ServerURL,
			Language: config.LanguageLabel(opts.Config.Language),
		},
	}
}

func (m AppModel) Init() tea.Cmd {
	if active := m.router.Active(); active != nil {
		return active.Init()
	}
	return nil
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			if m.router.Depth() > 1 && !m.capturing() {
				return m, func() tea.Msg { return router.PopScreenMsg{} }
			}
		}
	}

	cmd := m.router.Update(msg)
	if p, ok := m.router.Active().(headerInfoProvider); ok {
		m.info = p.HeaderInfo()
	}
	return m, cmd
}

func (m AppModel) capturing() bool {
	c, ok := m.router.Active().(screen.InputCapturer)
	return ok && c.CapturingInput()
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	active := m.router.Active()
	title := ""
	if active != nil {
		title = active.Title()
	}

	header := layout.RenderHeader(title, m.info, m.width)

	var footerHints []layout.KeyHint
	if p, ok := active.(screen.KeyHintProvider); ok {
		footerHints = p.KeyHints()
	} else if m.router.Depth() > 1 {
		footerHints = []layout.KeyHint{
			{Key: "Esc", Description: "Back"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	} else {
		footerHints = []layout.KeyHint{
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}

	footer := layout.RenderFooter(footerHints, m.width)

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := m.height - headerHeight - footerHeight
	if contentHeight < 0 {
		contentHeight = 0
	}

	content := m.router.View(m.width, contentHeight)
	frame := layout.RenderFrame(header, content, footer, m.width, m.height)

	v.SetContent(frame)
	return v
}

// Run starts the Bubble Tea program. Logging goes to logPath while the
// program owns the terminal.
func Run(opts Options, logPath string) error {
	if logPath != "" {
		f, err := tea.LogToFile(logPath, "codeval")
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		defer f.Close()
	}

	p := tea.NewProgram(newAppModel(opts))
	_, err := p.Run()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}

// Package workspace is the main screen: topics, questions, the code editor
// and the results area.
package workspace

import (
	"context"
	"fmt"
	"log"

	"charm.land/bubbles/v2/spinner"
	"charm.land/bubbles/v2/textarea"
	"charm.land/bubbles/v2/viewport"
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/codeval/internal/api"
	"github.com/abhisek/codeval/internal/autosave"
	"github.com/abhisek/codeval/internal/catalog"
	"github.com/abhisek/codeval/internal/config"
	"github.com/abhisek/codeval/internal/editor"
	"github.com/abhisek/codeval/internal/evaluator"
	"github.com/abhisek/codeval/internal/history"
	"github.com/abhisek/codeval/internal/router"
	"github.com/abhisek/codeval/internal/screen"
	historyscreen "github.com/abhisek/codeval/internal/screens/history"
	"github.com/abhisek/codeval/internal/session"
	"github.com/abhisek/codeval/internal/ui/components"
	"github.com/abhisek/codeval/internal/ui/layout"
)

type focus int

const (
	focusTopics focus = iota
	focusQuestions
	focusEditor
	focusResults
	focusCount
)

// Deps are the services the workspace uses.
type Deps struct {
	Backend   api.Backend
	Evaluator *evaluator.Evaluator
	History   *history.Store
	Saver     *autosave.Saver // nil disables auto-save
	ServerURL string
	Language  string
}

// Workspace implements screen.Screen for the main view.
type Workspace struct {
	deps  Deps
	state *session.State

	focus     focus
	topics    components.List
	questions components.List
	visible   []api.Question // questions passing the filter, in topic order
	filter    catalog.Filter
	search    components.SearchInput

	editor      textarea.Model
	lastExample string
	debounce    *autosave.Debouncer

	results viewport.Model
	spinner spinner.Model
	toast   components.Toast

	width, height int

	// pending collects commands raised by state subscribers during Update.
	pending []tea.Cmd
}

var _ screen.Screen = (*Workspace)(nil)
var _ screen.KeyHintProvider = (*Workspace)(nil)
var _ screen.InputCapturer = (*Workspace)(nil)

// New creates a Workspace over cat. Startup warnings are shown as toasts.
func New(deps Deps, cat *catalog.Catalog, warnings []string) *Workspace {
	ed := textarea.New()
	ed.Placeholder = "Write your solution here..."
	ed.ShowLineNumbers = true
	ed.CharLimit = evaluator.MaxCodeChars

	w := &Workspace{
		deps:      deps,
		state:     session.New(deps.Language),
		topics:    components.NewList(nil),
		questions: components.NewList(nil),
		filter:    catalog.Filter{Difficulty: catalog.DifficultyAll},
		search:    components.NewSearchInput("search questions", 60),
		editor:    ed,
		debounce:  autosave.NewDebouncer(autosave.DefaultDelay),
		results:   viewport.New(),
		spinner:   spinner.New(spinner.WithSpinner(spinner.Dot)),
	}
	w.state.Subscribe(w.onChange)
	w.state.SetCatalog(cat)
	for _, warn := range warnings {
		w.pending = append(w.pending, w.toast.Show(components.ToastWarn, warn))
	}
	return w
}

// State exposes the session state.
func (w *Workspace) State() *session.State {
	return w.state
}

func (w *Workspace) Title() string {
	return "Workspace"
}

func (w *Workspace) Init() tea.Cmd {
	cmds := w.flush()
	if w.deps.Saver != nil {
		saver := w.deps.Saver
		cmds = append(cmds, func() tea.Msg {
			code, err := saver.Restore(context.Background())
			return restoredMsg{code: code, err: err}
		})
	}
	return tea.Batch(cmds...)
}

// CapturingInput reports whether keys are going to a text field.
func (w *Workspace) CapturingInput() bool {
	return w.focus == focusEditor || w.search.Focused()
}

// HeaderInfo returns the server and language for the header bar.
func (w *Workspace) HeaderInfo() layout.HeaderInfo {
	info := layout.HeaderInfo{
		Server:   w.deps.ServerURL,
		Language: config.LanguageLabel(w.state.Language()),
	}
	if r := w.state.Result(); r != nil && r.Offline {
		info.Offline = true
	}
	return info
}

func (w *Workspace) KeyHints() []layout.KeyHint {
	switch {
	case w.search.Focused():
		return []layout.KeyHint{
			{Key: "Enter", Description: "Apply"},
			{Key: "Esc", Description: "Done"},
		}
	case w.focus == focusEditor:
		return []layout.KeyHint{
			{Key: "Ctrl+S", Description: "Submit"},
			{Key: "Esc", Description: "Leave editor"},
		}
	}
	hints := []layout.KeyHint{
		{Key: "Tab", Description: "Focus"},
		{Key: "Enter", Description: "Select"},
		{Key: "n/p", Description: "Next/Prev"},
		{Key: "/", Description: "Search"},
		{Key: "f", Description: "Difficulty"},
		{Key: "l", Description: "Language"},
		{Key: "s", Description: "Submit"},
		{Key: "h", Description: "History"},
	}
	if w.state.Phase() == session.PhaseResults {
		hints = append(hints, layout.KeyHint{Key: "t", Description: "Try again"})
	}
	return append(hints, layout.KeyHint{Key: "q", Description: "Quit"})
}

func (w *Workspace) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyPressMsg:
		cmd = w.handleKey(msg)

	case analysisDoneMsg:
		cmd = w.handleAnalysisDone(msg)

	case restoredMsg:
		if msg.err != nil {
			log.Printf("warning: %v", msg.err)
		} else if msg.code != "" && w.editor.Value() == "" {
			w.editor.SetValue(msg.code)
		}

	case autosave.DueMsg:
		if w.debounce.Due(msg) && w.deps.Saver != nil {
			cmd = w.deps.Saver.SaveCmd(w.editor.Value())
		}

	case components.ToastExpiredMsg:
		w.toast.Expire(msg)

	case spinner.TickMsg:
		if w.state.Phase() == session.PhaseLoading {
			w.spinner, cmd = w.spinner.Update(msg)
			w.refreshResults()
		}

	case screen.RevealedMsg:
		// Returning from the history screen.
		w.state.Back()
		if w.state.Phase() == session.PhaseLoading {
			cmd = w.spinner.Tick
		}

	default:
		// Pastes and other non-key input reach the editor here.
		if w.focus == focusEditor {
			before := w.editor.Value()
			w.editor, cmd = w.editor.Update(msg)
			if w.editor.Value() != before {
				cmd = tea.Batch(cmd, w.debounce.Trigger())
			}
		}
	}

	return w, tea.Batch(append(w.flush(), cmd)...)
}

func (w *Workspace) flush() []tea.Cmd {
	cmds := w.pending
	w.pending = nil
	return cmds
}

func (w *Workspace) handleKey(msg tea.KeyPressMsg) tea.Cmd {
	key := msg.String()

	if w.search.Focused() {
		return w.handleSearchKey(msg)
	}
	if w.focus == focusEditor {
		return w.handleEditorKey(msg)
	}

	switch key {
	case "tab":
		w.focus = (w.focus + 1) % focusCount
		return w.focusChanged()
	case "shift+tab":
		w.focus = (w.focus + focusCount - 1) % focusCount
		return w.focusChanged()
	case "enter":
		return w.activate()
	case "/":
		w.focus = focusQuestions
		return w.search.Focus()
	case "f":
		w.filter.Difficulty = catalog.NextDifficulty(w.state.Catalog().Difficulties(), w.filter.Difficulty)
		w.refreshQuestions()
		return nil
	case "n":
		w.state.NextQuestion()
		return nil
	case "p":
		w.state.PrevQuestion()
		return nil
	case "l":
		w.state.CycleLanguage()
		return nil
	case "e", "i":
		w.focus = focusEditor
		return w.focusChanged()
	case "x":
		if q := w.state.Question(); q != nil {
			return w.loadExample()
		}
		return nil
	case "s", "ctrl+s":
		return w.submit()
	case "t":
		w.state.TryAgain()
		return nil
	case "h":
		return w.openHistory()
	case "q":
		return tea.Quit
	}

	switch w.focus {
	case focusTopics:
		w.topics.Update(msg)
	case focusQuestions:
		w.questions.Update(msg)
	case focusResults:
		var cmd tea.Cmd
		w.results, cmd = w.results.Update(msg)
		return cmd
	}
	return nil
}

func (w *Workspace) handleSearchKey(msg tea.KeyPressMsg) tea.Cmd {
	switch msg.String() {
	case "enter":
		w.search.Blur()
		return nil
	case "esc":
		w.search.Reset()
		w.search.Blur()
		if w.filter.Search != "" {
			w.filter.Search = ""
			w.refreshQuestions()
		}
		return nil
	}
	var cmd tea.Cmd
	w.search, cmd = w.search.Update(msg)
	if w.filter.Search != w.search.Value() {
		w.filter.Search = w.search.Value()
		w.refreshQuestions()
	}
	return cmd
}

func (w *Workspace) handleEditorKey(msg tea.KeyPressMsg) tea.Cmd {
	switch msg.String() {
	case "esc":
		w.focus = focusQuestions
		return w.focusChanged()
	case "ctrl+s":
		return w.submit()
	}

	before := w.editor.Value()
	var cmd tea.Cmd
	w.editor, cmd = w.editor.Update(msg)
	if w.editor.Value() != before {
		return tea.Batch(cmd, w.debounce.Trigger())
	}
	return cmd
}

func (w *Workspace) focusChanged() tea.Cmd {
	if w.focus == focusEditor {
		return w.editor.Focus()
	}
	w.editor.Blur()
	return nil
}

// activate handles enter on the focused list.
func (w *Workspace) activate() tea.Cmd {
	switch w.focus {
	case focusTopics:
		names := w.state.Catalog().Topics()
		if w.topics.Cursor < len(names) {
			w.state.SelectTopic(names[w.topics.Cursor])
			w.focus = focusQuestions
		}
	case focusQuestions:
		if w.questions.Cursor < len(w.visible) {
			w.state.SelectQuestion(w.visible[w.questions.Cursor].ID)
			w.focus = focusEditor
			return w.focusChanged()
		}
	}
	return nil
}

// submit validates the editor contents and starts an analysis.
func (w *Workspace) submit() tea.Cmd {
	sub := evaluator.Submission{
		Code:     w.editor.Value(),
		Language: w.state.Language(),
	}
	if q := w.state.Question(); q != nil {
		sub.QuestionID = q.ID
	}
	if err := evaluator.Validate(sub); err != nil {
		return w.toast.Show(components.ToastWarn, evaluator.UserMessage(err))
	}

	ticket := w.state.BeginSubmit()
	return tea.Batch(w.spinner.Tick, w.analyzeCmd(ticket, sub))
}

func (w *Workspace) analyzeCmd(ticket session.Ticket, sub evaluator.Submission) tea.Cmd {
	ev := w.deps.Evaluator
	return func() tea.Msg {
		out, err := ev.Analyze(context.Background(), sub)
		return analysisDoneMsg{ticket: ticket, outcome: out, err: err}
	}
}

func (w *Workspace) handleAnalysisDone(msg analysisDoneMsg) tea.Cmd {
	if msg.err != nil {
		if w.state.Fail(msg.ticket) {
			return w.toast.Show(components.ToastError, evaluator.UserMessage(msg.err))
		}
		return nil
	}

	out := msg.outcome
	if !w.state.Complete(msg.ticket, session.Result{Card: out.Card, Offline: out.Offline}) {
		return nil
	}
	w.focus = focusResults
	w.editor.Blur()
	if out.Offline {
		log.Printf("analysis service unreachable: %v", out.Cause)
		return w.toast.Show(components.ToastError,
			fmt.Sprintf("Cannot reach the analysis service at %s; showing an offline preview", w.deps.ServerURL))
	}
	return nil
}

func (w *Workspace) openHistory() tea.Cmd {
	w.state.ShowHistory()
	next := historyscreen.New(w.deps.History, w.deps.Backend)
	return func() tea.Msg {
		return router.PushScreenMsg{Screen: next}
	}
}

func (w *Workspace) loadExample() tea.Cmd {
	q := w.state.Question()
	if q == nil {
		return nil
	}
	w.lastExample = editor.Example(*q, w.state.Language())
	w.editor.SetValue(w.lastExample)
	return w.debounce.Trigger()
}

// onChange keeps the views in sync with the session state.
func (w *Workspace) onChange(c session.Change) {
	switch c {
	case session.ChangeCatalog:
		w.refreshTopics()
	case session.ChangeTopic:
		w.refreshTopics()
		w.refreshQuestions()
		w.questions.Cursor = 0
	case session.ChangeQuestion:
		w.refreshTopics()
		w.refreshQuestions()
		w.pending = append(w.pending, w.loadExample())
	case session.ChangeLanguage:
		// Swap the example only if the learner has not edited it.
		if w.state.Question() != nil && w.editor.Value() == w.lastExample {
			w.pending = append(w.pending, w.loadExample())
		}
	}
	w.refreshResults()
}

func (w *Workspace) refreshTopics() {
	cat := w.state.Catalog()
	if cat == nil {
		return
	}
	names := cat.Topics()
	items := make([]components.ListItem, len(names))
	active := -1
	for i, name := range names {
		qs, _ := cat.Topic(name)
		items[i] = components.ListItem{Label: topicLabel(name), Detail: fmt.Sprintf("%d", len(qs))}
		if name == w.state.Topic() {
			active = i
		}
	}
	cursor := w.topics.Cursor
	w.topics.SetItems(items)
	w.topics.Active = active
	if active >= 0 && w.focus != focusTopics {
		cursor = active
	}
	if cursor < len(items) {
		w.topics.Cursor = cursor
	}
}

func (w *Workspace) refreshQuestions() {
	cat := w.state.Catalog()
	if cat == nil {
		return
	}
	qs, _ := cat.Topic(w.state.Topic())
	w.visible = w.filter.Apply(qs)

	items := make([]components.ListItem, len(w.visible))
	active := -1
	for i, q := range w.visible {
		style := difficultyStyle(q.Difficulty)
		items[i] = components.ListItem{
			Label:       fmt.Sprintf("%d. %s", q.ID, q.Question),
			Detail:      q.Difficulty,
			DetailStyle: &style,
		}
		if cur := w.state.Question(); cur != nil && cur.ID == q.ID {
			active = i
		}
	}
	w.questions.SetItems(items)
	w.questions.Active = active
	if active >= 0 {
		w.questions.Cursor = active
	}
}

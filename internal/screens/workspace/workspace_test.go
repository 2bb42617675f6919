package workspace

import (
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/codeval/internal/api"
	"github.com/abhisek/codeval/internal/autosave"
	"github.com/abhisek/codeval/internal/catalog"
	"github.com/abhisek/codeval/internal/config"
	"github.com/abhisek/codeval/internal/editor"
	"github.com/abhisek/codeval/internal/evaluator"
	"github.com/abhisek/codeval/internal/router"
	"github.com/abhisek/codeval/internal/screen"
	"github.com/abhisek/codeval/internal/session"
)

func testCatalog() *catalog.Catalog {
	return catalog.New([]api.Topic{
		{Name: "for_loop", Questions: []api.Question{
			{ID: 1, Difficulty: "easy", Question: "Print numbers 1 to 10", Concepts: []string{"for", "range"}},
			{ID: 2, Difficulty: "medium", Question: "Print even numbers up to 20", Concepts: []string{"for", "if"}},
			{ID: 3, Difficulty: "easy", Question: "Sum even numbers in a list", Concepts: []string{"for", "if"}},
		}},
		{Name: "while_loop", Questions: []api.Question{
			{ID: 4, Difficulty: "easy", Question: "Count down from 5", Concepts: []string{"while"}},
		}},
	})
}

func newTestWorkspace(t *testing.T, mock *api.MockBackend) *Workspace {
	t.Helper()
	w := New(Deps{
		Backend:   mock,
		Evaluator: evaluator.New(mock, nil),
		ServerURL: "http://evaluator.test",
		Language:  config.LanguagePython,
	}, testCatalog(), nil)
	w.Init()
	return w
}

func key(s string) tea.KeyPressMsg {
	switch s {
	case "tab":
		return tea.KeyPressMsg{Code: tea.KeyTab}
	case "enter":
		return tea.KeyPressMsg{Code: tea.KeyEnter}
	case "esc":
		return tea.KeyPressMsg{Code: tea.KeyEscape}
	case "down":
		return tea.KeyPressMsg{Code: tea.KeyDown}
	}
	r := []rune(s)[0]
	return tea.KeyPressMsg{Code: r, Text: s}
}

func structured(t *testing.T, body string) *api.AnalyzeResponse {
	t.Helper()
	resp, err := api.DecodeAnalyzeResponse([]byte(body))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	return resp
}

func TestFirstTopicSelectedOnLoad(t *testing.T) {
	w := newTestWorkspace(t, api.NewMockBackend())

	if got := w.State().Topic(); got != "for_loop" {
		t.Errorf("topic = %q, want for_loop", got)
	}
	if w.topics.Active != 0 {
		t.Errorf("active topic index = %d, want 0", w.topics.Active)
	}
	if len(w.visible) != 3 {
		t.Errorf("visible questions = %d, want 3", len(w.visible))
	}
	if w.State().Phase() != session.PhaseWelcome {
		t.Errorf("phase = %v, want Welcome", w.State().Phase())
	}
}

func TestSelectTopicWithKeys(t *testing.T) {
	w := newTestWorkspace(t, api.NewMockBackend())
	w.State().SelectQuestion(2)

	w.Update(key("down"))
	w.Update(key("enter"))

	if got := w.State().Topic(); got != "while_loop" {
		t.Fatalf("topic = %q, want while_loop", got)
	}
	if w.topics.Active != 1 {
		t.Errorf("active topic index = %d, want 1", w.topics.Active)
	}
	if w.State().Question() != nil {
		t.Error("selecting a topic should clear the question")
	}
	if len(w.visible) != 1 || w.visible[0].ID != 4 {
		t.Errorf("visible = %+v, want only question 4", w.visible)
	}
}

func TestSelectQuestionLoadsExample(t *testing.T) {
	w := newTestWorkspace(t, api.NewMockBackend())
	w.Update(key("tab"))
	w.Update(key("down"))
	w.Update(key("enter"))

	q := w.State().Question()
	if q == nil || q.ID != 2 {
		t.Fatalf("question = %+v, want id 2", q)
	}
	if w.editor.Value() != editor.Example(*q, config.LanguagePython) {
		t.Errorf("editor = %q, want the python example", w.editor.Value())
	}
	if !w.CapturingInput() {
		t.Error("editor should take focus after choosing a question")
	}
}

func TestEmptyCodeNeverSubmits(t *testing.T) {
	mock := api.NewMockBackend()
	w := newTestWorkspace(t, mock)
	w.State().SelectQuestion(1)
	w.editor.SetValue("   \n\t ")

	w.submit()

	if mock.CallCount() != 0 {
		t.Errorf("calls = %d, want 0", mock.CallCount())
	}
	if !w.toast.Visible() {
		t.Error("expected a validation toast")
	}
	if w.State().Phase() != session.PhaseWelcome {
		t.Errorf("phase = %v, want Welcome", w.State().Phase())
	}
}

func TestSubmitWithoutQuestion(t *testing.T) {
	mock := api.NewMockBackend()
	w := newTestWorkspace(t, mock)
	w.editor.SetValue("print(1)")

	w.submit()

	if mock.CallCount() != 0 {
		t.Errorf("calls = %d, want 0", mock.CallCount())
	}
	if !strings.Contains(w.toast.Text, "select a question first") {
		t.Errorf("toast = %q", w.toast.Text)
	}
}

func TestSubmitShowsResults(t *testing.T) {
	mock := api.NewMockBackend(api.MockAnalyze{
		Response: structured(t, `{"success": true, "analysis": {"grade": "B", "passed": true}}`),
	})
	w := newTestWorkspace(t, mock)
	w.State().SelectQuestion(1)

	if cmd := w.submit(); cmd == nil {
		t.Fatal("expected submit command")
	}
	if w.State().Phase() != session.PhaseLoading {
		t.Fatalf("phase = %v, want Loading", w.State().Phase())
	}

	ticket := session.Ticket{Generation: w.State().Generation()}
	sub := evaluator.Submission{Code: w.editor.Value(), QuestionID: 1, Language: config.LanguagePython}
	w.Update(w.analyzeCmd(ticket, sub)())

	if w.State().Phase() != session.PhaseResults {
		t.Fatalf("phase = %v, want Results", w.State().Phase())
	}
	r := w.State().Result()
	if r.Card.Grade != "B" || !r.Card.Passed {
		t.Errorf("card = %+v", r.Card)
	}
	if mock.Calls[0].QuestionID != 1 {
		t.Errorf("question_id = %d, want 1", mock.Calls[0].QuestionID)
	}
	if w.HeaderInfo().Offline {
		t.Error("real result should not be marked offline")
	}
}

func TestOfflineShowsMock(t *testing.T) {
	w := newTestWorkspace(t, api.NewMockBackend())
	w.State().SelectQuestion(1)

	ticket := w.State().BeginSubmit()
	sub := evaluator.Submission{Code: "print(1)", QuestionID: 1, Language: config.LanguagePython}
	w.Update(w.analyzeCmd(ticket, sub)())

	r := w.State().Result()
	if r == nil || !r.Offline || !r.Card.Mock {
		t.Fatalf("result = %+v, want offline mock", r)
	}
	if w.State().Phase() != session.PhaseResults {
		t.Errorf("phase = %v, want Results", w.State().Phase())
	}
	if !w.HeaderInfo().Offline {
		t.Error("header should report offline")
	}
	if !strings.Contains(w.toast.Text, "evaluator.test") {
		t.Errorf("toast = %q, want server URL", w.toast.Text)
	}
	if !strings.Contains(renderCard(r.Card, true, 80), "OFFLINE PREVIEW") {
		t.Error("offline card should carry the banner")
	}
}

func TestServerFailureReturnsToWelcome(t *testing.T) {
	mock := api.NewMockBackend(api.MockAnalyze{Err: &api.ServerError{StatusCode: 400, Message: "No code provided"}})
	w := newTestWorkspace(t, mock)
	w.State().SelectQuestion(1)

	ticket := w.State().BeginSubmit()
	w.Update(w.analyzeCmd(ticket, evaluator.Submission{Code: "x = 1", QuestionID: 1})())

	if w.State().Phase() != session.PhaseWelcome {
		t.Errorf("phase = %v, want Welcome", w.State().Phase())
	}
	if !strings.Contains(w.toast.Text, "No code provided") {
		t.Errorf("toast = %q", w.toast.Text)
	}
}

func TestStaleResponseDropped(t *testing.T) {
	mock := api.NewMockBackend(api.MockAnalyze{
		Response: structured(t, `{"success": true, "analysis": {"grade": "A"}}`),
	})
	w := newTestWorkspace(t, mock)
	w.State().SelectQuestion(1)

	ticket := w.State().BeginSubmit()
	msg := w.analyzeCmd(ticket, evaluator.Submission{Code: "x = 1", QuestionID: 1})()

	w.State().SelectQuestion(2)
	w.Update(msg)

	if w.State().Result() != nil {
		t.Error("stale result should be dropped")
	}
	if w.State().Phase() != session.PhaseWelcome {
		t.Errorf("phase = %v, want Welcome", w.State().Phase())
	}
}

func TestNextQuestionWraps(t *testing.T) {
	w := newTestWorkspace(t, api.NewMockBackend())
	w.State().SelectQuestion(3)

	w.Update(key("n"))
	if q := w.State().Question(); q == nil || q.ID != 1 {
		t.Errorf("after n from last: %+v, want id 1", q)
	}

	w.Update(key("p"))
	if q := w.State().Question(); q == nil || q.ID != 3 {
		t.Errorf("after p from first: %+v, want id 3", q)
	}
}

func TestDifficultyFilter(t *testing.T) {
	w := newTestWorkspace(t, api.NewMockBackend())

	w.Update(key("f"))
	if w.filter.Difficulty != "easy" {
		t.Fatalf("difficulty = %q, want easy", w.filter.Difficulty)
	}
	if len(w.visible) != 2 {
		t.Errorf("visible = %d, want 2", len(w.visible))
	}
	if w.State().Topic() != "for_loop" {
		t.Error("filtering must not change the selection")
	}
}

func TestSearchFilter(t *testing.T) {
	w := newTestWorkspace(t, api.NewMockBackend())

	w.Update(key("/"))
	if !w.CapturingInput() {
		t.Fatal("search should capture input")
	}
	for _, r := range "EVEN" {
		w.Update(tea.KeyPressMsg{Code: r, Text: string(r)})
	}
	w.Update(key("enter"))

	if len(w.visible) != 2 {
		t.Fatalf("visible = %+v, want the two even questions", w.visible)
	}
	if w.CapturingInput() {
		t.Error("enter should leave search")
	}
}

func TestSearchEscClears(t *testing.T) {
	w := newTestWorkspace(t, api.NewMockBackend())

	w.Update(key("/"))
	w.Update(key("z"))
	if len(w.visible) != 0 {
		t.Fatalf("visible = %d, want 0", len(w.visible))
	}

	w.Update(key("esc"))
	if w.filter.Search != "" || len(w.visible) != 3 {
		t.Errorf("esc should clear the search, visible = %d", len(w.visible))
	}
}

func TestLanguageCycleSwapsUneditedExample(t *testing.T) {
	w := newTestWorkspace(t, api.NewMockBackend())
	w.State().SelectQuestion(1)
	q := *w.State().Question()

	w.Update(key("l"))
	if w.State().Language() != config.LanguageC {
		t.Fatalf("language = %q, want c", w.State().Language())
	}
	if w.editor.Value() != editor.Example(q, config.LanguageC) {
		t.Error("unedited example should follow the language")
	}

	w.editor.SetValue("int main() { return 0; }")
	w.Update(key("l"))
	if w.editor.Value() != "int main() { return 0; }" {
		t.Error("edited code must be kept on language change")
	}
}

func TestHistoryRoundTrip(t *testing.T) {
	mock := api.NewMockBackend(api.MockAnalyze{
		Response: structured(t, `{"success": true, "analysis": {"grade": "A"}}`),
	})
	w := newTestWorkspace(t, mock)
	w.State().SelectQuestion(1)
	ticket := w.State().BeginSubmit()
	w.Update(w.analyzeCmd(ticket, evaluator.Submission{Code: "x = 1", QuestionID: 1})())

	_, cmd := w.Update(key("h"))
	if cmd == nil {
		t.Fatal("expected push command")
	}
	if w.State().Phase() != session.PhaseHistory {
		t.Errorf("phase = %v, want History", w.State().Phase())
	}
	if _, ok := cmd().(router.PushScreenMsg); !ok {
		t.Error("expected PushScreenMsg")
	}

	w.Update(screen.RevealedMsg{})
	if w.State().Phase() != session.PhaseResults {
		t.Errorf("phase = %v, want Results after back", w.State().Phase())
	}
}

func TestHistoryBackWithoutResult(t *testing.T) {
	w := newTestWorkspace(t, api.NewMockBackend())
	w.openHistory()
	w.Update(screen.RevealedMsg{})

	if w.State().Phase() != session.PhaseWelcome {
		t.Errorf("phase = %v, want Welcome", w.State().Phase())
	}
}

func TestRestoreLastCode(t *testing.T) {
	w := newTestWorkspace(t, api.NewMockBackend())
	w.Update(restoredMsg{code: "print('saved')"})

	if w.editor.Value() != "print('saved')" {
		t.Errorf("editor = %q", w.editor.Value())
	}
}

func TestTryAgain(t *testing.T) {
	mock := api.NewMockBackend(api.MockAnalyze{
		Response: structured(t, `{"success": true, "analysis": {"grade": "C"}}`),
	})
	w := newTestWorkspace(t, mock)
	w.State().SelectQuestion(1)
	ticket := w.State().BeginSubmit()
	w.Update(w.analyzeCmd(ticket, evaluator.Submission{Code: "x = 1", QuestionID: 1})())

	w.Update(key("t"))
	if w.State().Phase() != session.PhaseWelcome {
		t.Errorf("phase = %v, want Welcome", w.State().Phase())
	}
}

func TestViewRenders(t *testing.T) {
	w := newTestWorkspace(t, api.NewMockBackend())
	w.State().SelectQuestion(1)

	out := w.View(120, 40)
	if !strings.Contains(out, "Print numbers 1 to 10") {
		t.Error("view should show the selected question")
	}
}

// dueMsgs runs cmd and any batched commands, returning the auto-save ticks.
func dueMsgs(cmd tea.Cmd) []autosave.DueMsg {
	if cmd == nil {
		return nil
	}
	switch msg := cmd().(type) {
	case autosave.DueMsg:
		return []autosave.DueMsg{msg}
	case tea.BatchMsg:
		var out []autosave.DueMsg
		for _, c := range msg {
			out = append(out, dueMsgs(c)...)
		}
		return out
	}
	return nil
}

func TestPasteSchedulesAutosave(t *testing.T) {
	w := newTestWorkspace(t, api.NewMockBackend())
	w.debounce = autosave.NewDebouncer(time.Millisecond)
	w.Update(key("e"))

	_, cmd := w.Update(tea.PasteMsg{Content: "print('pasted')"})

	if !strings.Contains(w.editor.Value(), "print('pasted')") {
		t.Fatalf("editor = %q", w.editor.Value())
	}
	ticks := dueMsgs(cmd)
	if len(ticks) != 1 || !w.debounce.Due(ticks[0]) {
		t.Errorf("expected one current auto-save tick, got %d", len(ticks))
	}
}

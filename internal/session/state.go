package session

import (
	"github.com/abhisek/codeval/internal/analysis"
	"github.com/abhisek/codeval/internal/api"
	"github.com/abhisek/codeval/internal/catalog"
	"github.com/abhisek/codeval/internal/config"
)

// Phase is the visible results-area section.
type Phase int

const (
	PhaseWelcome Phase = iota // prompt to pick a question and submit
	PhaseLoading              // request in flight
	PhaseResults              // card shown
	PhaseHistory              // local history shown
)

func (p Phase) String() string {
	switch p {
	case PhaseWelcome:
		return "welcome"
	case PhaseLoading:
		return "loading"
	case PhaseResults:
		return "results"
	case PhaseHistory:
		return "history"
	default:
		return "unknown"
	}
}

// Result is the analysis currently shown.
type Result struct {
	Card    analysis.Card
	Offline bool
}

// Ticket identifies one submission. Responses carrying a stale ticket are
// discarded.
type Ticket struct {
	Generation uint64
}

// Change tells subscribers what part of the state moved.
type Change int

const (
	ChangeCatalog Change = iota
	ChangeTopic
	ChangeQuestion
	ChangeLanguage
	ChangePhase
)

// State is the single source of truth for the current topic, question,
// language and analysis. It is owned by one goroutine (the UI loop) and
// is not safe for concurrent use.
type State struct {
	catalog  *catalog.Catalog
	topic    string
	question *api.Question
	language string
	result   *Result
	phase    Phase

	generation  uint64
	subscribers []func(Change)
}

// New creates a State in the Welcome phase.
func New(language string) *State {
	if !config.IsLanguage(language) {
		language = config.LanguagePython
	}
	return &State{language: language, phase: PhaseWelcome}
}

// Subscribe registers fn to be called after every change.
func (s *State) Subscribe(fn func(Change)) {
	s.subscribers = append(s.subscribers, fn)
}

func (s *State) notify(c Change) {
	for _, fn := range s.subscribers {
		fn(c)
	}
}

// Catalog returns the loaded catalog, or nil before loading.
func (s *State) Catalog() *catalog.Catalog { return s.catalog }

// Topic returns the active topic name.
func (s *State) Topic() string { return s.topic }

// Question returns the active question, or nil.
func (s *State) Question() *api.Question { return s.question }

// Language returns the editor language.
func (s *State) Language() string { return s.language }

// Result returns the analysis on display, or nil.
func (s *State) Result() *Result { return s.result }

// Phase returns the visible section.
func (s *State) Phase() Phase { return s.phase }

// Generation returns the current request generation.
func (s *State) Generation() uint64 { return s.generation }

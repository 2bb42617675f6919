// Package session holds the learner's selection and the results-area state
// machine.
package session

import (
	"log"

	"github.com/abhisek/codeval/internal/catalog"
	"github.com/abhisek/codeval/internal/config"
)

// SetCatalog installs a freshly loaded catalog and selects its first topic.
func (s *State) SetCatalog(c *catalog.Catalog) {
	s.catalog = c
	s.topic = ""
	s.clearQuestion()
	s.notify(ChangeCatalog)

	if topics := c.Topics(); len(topics) > 0 {
		s.SelectTopic(topics[0])
	}
}

// SelectTopic makes name the only active topic. The active question and
// any analysis on display are cleared.
func (s *State) SelectTopic(name string) bool {
	if s.catalog == nil {
		return false
	}
	if _, ok := s.catalog.Topic(name); !ok {
		return false
	}
	s.topic = name
	s.clearQuestion()
	s.notify(ChangeTopic)
	return true
}

// SelectQuestion activates the question with id and discards any prior
// analysis. The active topic is searched first; otherwise the question's
// topic becomes the active topic.
func (s *State) SelectQuestion(id int) bool {
	if s.catalog == nil {
		return false
	}
	q, ok := s.catalog.QuestionIn(s.topic, id)
	if !ok {
		q, ok = s.catalog.Question(id)
	}
	if !ok {
		return false
	}
	s.clearQuestion()
	s.topic = q.Topic
	s.question = &q
	s.notify(ChangeQuestion)
	return true
}

// NextQuestion moves to the following question in the active topic,
// wrapping to the first. With no active question it picks the first one.
func (s *State) NextQuestion() bool { return s.step(1) }

// PrevQuestion moves to the preceding question, wrapping to the last.
func (s *State) PrevQuestion() bool { return s.step(-1) }

func (s *State) step(offset int) bool {
	if s.catalog == nil {
		return false
	}
	if s.question == nil {
		qs, ok := s.catalog.Topic(s.topic)
		if !ok || len(qs) == 0 {
			return false
		}
		return s.SelectQuestion(qs[0].ID)
	}
	q, ok := s.catalog.Neighbor(s.question.Topic, s.question.ID, offset)
	if !ok {
		return false
	}
	return s.SelectQuestion(q.ID)
}

// SetLanguage changes the editor language. Unknown languages are ignored.
func (s *State) SetLanguage(lang string) bool {
	if !config.IsLanguage(lang) || lang == s.language {
		return false
	}
	s.language = lang
	s.notify(ChangeLanguage)
	return true
}

// CycleLanguage advances to the next supported language.
func (s *State) CycleLanguage() string {
	s.SetLanguage(config.NextLanguage(s.language))
	return s.language
}

// clearQuestion drops the question and analysis and invalidates any
// request in flight.
func (s *State) clearQuestion() {
	s.question = nil
	s.result = nil
	s.generation++
	if s.phase == PhaseResults || s.phase == PhaseLoading {
		s.setPhase(PhaseWelcome)
	}
}

// BeginSubmit moves to Loading and returns the ticket the response must
// present.
func (s *State) BeginSubmit() Ticket {
	s.generation++
	s.setPhase(PhaseLoading)
	return Ticket{Generation: s.generation}
}

// Current reports whether t belongs to the latest submission.
func (s *State) Current(t Ticket) bool {
	return t.Generation == s.generation
}

// Complete shows r if t is current. Stale results are dropped.
func (s *State) Complete(t Ticket, r Result) bool {
	if !s.Current(t) {
		log.Printf("dropping stale analysis (generation %d, current %d)", t.Generation, s.generation)
		return false
	}
	s.result = &r
	if s.phase == PhaseHistory {
		return true
	}
	s.setPhase(PhaseResults)
	return true
}

// Fail returns to Welcome after a failed submission if t is current.
func (s *State) Fail(t Ticket) bool {
	if !s.Current(t) {
		log.Printf("dropping stale failure (generation %d, current %d)", t.Generation, s.generation)
		return false
	}
	if s.phase == PhaseLoading {
		s.setPhase(PhaseWelcome)
	}
	return true
}

// TryAgain leaves Results for Welcome.
func (s *State) TryAgain() {
	if s.phase != PhaseResults {
		return
	}
	s.result = nil
	s.setPhase(PhaseWelcome)
}

// ShowHistory switches to the History section from any phase.
func (s *State) ShowHistory() {
	s.setPhase(PhaseHistory)
}

// Back leaves History for Results when an analysis exists, else Welcome.
func (s *State) Back() {
	if s.phase != PhaseHistory {
		return
	}
	if s.result != nil {
		s.setPhase(PhaseResults)
		return
	}
	s.setPhase(PhaseWelcome)
}

func (s *State) setPhase(p Phase) {
	if s.phase == p {
		return
	}
	s.phase = p
	s.notify(ChangePhase)
}

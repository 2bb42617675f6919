// Package catalog holds the ordered topic/question catalog shown to learners.
package catalog

import (
	"context"
	"fmt"
	"strings"

	"github.com/abhisek/codeval/internal/api"
)

// Catalog is an ordered, read-only set of topics with precomputed indices.
type Catalog struct {
	topics []api.Topic
	all    []api.Question
	byID   map[int]api.Question
	index  map[string]int
}

// FallbackError reports that the built-in catalog is in use because the
// service catalog could not be loaded.
type FallbackError struct {
	Cause error
}

func (e *FallbackError) Error() string {
	return fmt.Sprintf("using built-in questions: %v", e.Cause)
}

func (e *FallbackError) Unwrap() error { return e.Cause }

// New builds a Catalog from topics in display order. Each question is
// annotated with its topic name.
func New(topics []api.Topic) *Catalog {
	c := &Catalog{
		topics: make([]api.Topic, 0, len(topics)),
		byID:   make(map[int]api.Question),
		index:  make(map[string]int, len(topics)),
	}
	for _, t := range topics {
		qs := make([]api.Question, len(t.Questions))
		copy(qs, t.Questions)
		for i := range qs {
			qs[i].Topic = t.Name
			if _, dup := c.byID[qs[i].ID]; !dup {
				c.byID[qs[i].ID] = qs[i]
			}
		}
		c.index[t.Name] = len(c.topics)
		c.topics = append(c.topics, api.Topic{Name: t.Name, Questions: qs})
		c.all = append(c.all, qs...)
	}
	return c
}

// Load fetches the catalog from the service. On any failure it returns the
// built-in catalog together with a *FallbackError describing the cause.
func Load(ctx context.Context, b api.Backend) (*Catalog, error) {
	topics, err := b.Questions(ctx)
	if err != nil {
		return Fallback(), &FallbackError{Cause: err}
	}
	return New(topics), nil
}

// Topics returns topic names in display order.
func (c *Catalog) Topics() []string {
	names := make([]string, len(c.topics))
	for i, t := range c.topics {
		names[i] = t.Name
	}
	return names
}

// Topic returns the questions of the named topic in their original order.
func (c *Catalog) Topic(name string) ([]api.Question, bool) {
	i, ok := c.index[name]
	if !ok {
		return nil, false
	}
	return c.topics[i].Questions, true
}

// Question looks up a question by ID. The first occurrence wins when IDs
// repeat across topics; use QuestionIn when the topic is known.
func (c *Catalog) Question(id int) (api.Question, bool) {
	q, ok := c.byID[id]
	return q, ok
}

// QuestionIn looks up a question by ID within one topic.
func (c *Catalog) QuestionIn(topic string, id int) (api.Question, bool) {
	qs, _ := c.Topic(topic)
	for _, q := range qs {
		if q.ID == id {
			return q, true
		}
	}
	return api.Question{}, false
}

// All returns every question, flattened in topic order.
func (c *Catalog) All() []api.Question {
	return c.all
}

// Difficulties returns DifficultyAll followed by every difficulty present,
// known levels first in easy, medium, hard order, then the rest in order
// of appearance.
func (c *Catalog) Difficulties() []string {
	seen := make(map[string]bool)
	var extra []string
	for _, q := range c.all {
		d := strings.ToLower(q.Difficulty)
		if d == "" || seen[d] {
			continue
		}
		seen[d] = true
		if levelRank(d) < 0 {
			extra = append(extra, d)
		}
	}
	out := []string{DifficultyAll}
	for _, d := range knownLevels {
		if seen[d] {
			out = append(out, d)
		}
	}
	return append(out, extra...)
}

// Len returns the total number of questions.
func (c *Catalog) Len() int {
	return len(c.all)
}

// ByDifficulty returns all questions with the given difficulty,
// case-insensitively.
func (c *Catalog) ByDifficulty(level string) []api.Question {
	var out []api.Question
	for _, q := range c.all {
		if strings.EqualFold(q.Difficulty, level) {
			out = append(out, q)
		}
	}
	return out
}

// ByConcept returns all questions that list the concept.
func (c *Catalog) ByConcept(concept string) []api.Question {
	var out []api.Question
	for _, q := range c.all {
		if q.HasConcept(concept) {
			out = append(out, q)
		}
	}
	return out
}

// Neighbor returns the question offset steps away from id within topic,
// wrapping around at either end.
func (c *Catalog) Neighbor(topic string, id, offset int) (api.Question, bool) {
	qs, _ := c.Topic(topic)
	for i := range qs {
		if qs[i].ID == id {
			n := len(qs)
			j := ((i+offset)%n + n) % n
			return qs[j], true
		}
	}
	return api.Question{}, false
}

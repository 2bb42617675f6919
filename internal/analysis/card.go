// Package analysis normalises /analyze responses into a renderable card.
package analysis

import (
	"fmt"
	"sort"

	"github.com/abhisek/codeval/internal/api"
)

// NotAvailable is shown for missing text fields.
const NotAvailable = "N/A"

// PassingScore is the threshold used when a payload carries no passed flag.
const PassingScore = 50

// SubScore is one named score component.
type SubScore struct {
	Name  string
	Value float64
}

// Card is the normalised result shown in the Results section. Every field
// has a defined default so nothing renders blank.
type Card struct {
	Score      float64
	Grade      string
	Passed     bool
	Summary    string
	SkillLevel string

	SubScores []SubScore

	ConceptsFound   []string
	ConceptsMissing []string

	Feedback    []string
	Suggestions []string
	Strengths   []string
	NextSteps   []string

	// AIWarning is non-empty when the service flagged the code as
	// resembling generated code.
	AIWarning string

	// Mock marks a locally synthesised, non-authoritative card.
	Mock bool
}

// FromResponse converts either response shape into a Card.
func FromResponse(resp *api.AnalyzeResponse) Card {
	if resp == nil {
		return Card{Grade: NotAvailable, Summary: NotAvailable, SkillLevel: NotAvailable}
	}
	switch resp.Kind {
	case api.KindReport:
		return fromReport(resp.Report)
	default:
		return fromAnalysis(resp.Analysis)
	}
}

func fromAnalysis(a *api.Analysis) Card {
	c := Card{Grade: NotAvailable, Summary: NotAvailable, SkillLevel: NotAvailable}
	if a == nil {
		return c
	}

	c.Grade = orNA(a.Grade)
	c.Passed = a.Passed
	c.Summary = orNA(a.Summary)

	names := make([]string, 0, len(a.Scores))
	for name := range a.Scores {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if name == "total" {
			continue
		}
		c.SubScores = append(c.SubScores, SubScore{Name: name, Value: a.Scores[name]})
	}
	if total, ok := a.Scores["total"]; ok {
		c.Score = total
	} else {
		for _, s := range c.SubScores {
			c.Score += s.Value
		}
	}

	c.ConceptsFound = a.Concepts.Found
	c.ConceptsMissing = a.Concepts.Missing

	for _, f := range a.Feedback {
		msg := f.Message
		if f.Category != "" {
			msg = fmt.Sprintf("[%s] %s", f.Category, msg)
		}
		if f.Urgent {
			msg = "! " + msg
		}
		c.Feedback = append(c.Feedback, msg)
	}
	c.Suggestions = a.Suggestions
	return c
}

func fromReport(r *api.Report) Card {
	c := Card{Grade: NotAvailable, Summary: NotAvailable, SkillLevel: NotAvailable}
	if r == nil {
		return c
	}

	c.Score = r.Score.Score
	c.Grade = orNA(r.Score.Grade)
	c.Passed = c.Score >= PassingScore
	c.Summary = orNA(r.Summary)
	c.SkillLevel = orNA(r.SkillLevel)

	names := make([]string, 0, len(r.Score.Breakdown))
	for name := range r.Score.Breakdown {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		c.SubScores = append(c.SubScores, SubScore{Name: name, Value: r.Score.Breakdown[name]})
	}

	for _, m := range r.Mistakes {
		line := m.Problem
		if m.Type != "" {
			line = fmt.Sprintf("[%s] %s", m.Type, m.Problem)
		}
		c.Feedback = append(c.Feedback, line)
		if m.Solution != "" {
			c.Suggestions = append(c.Suggestions, m.Solution)
		}
	}
	c.Feedback = append(c.Feedback, r.DetailedFeedback...)
	c.Strengths = r.PositivePoints
	c.NextSteps = r.NextSteps
	for _, step := range r.LearningPath {
		if step.Topic != "" {
			c.NextSteps = append(c.NextSteps, "Learn: "+step.Topic)
		}
	}

	if r.AIDetection != nil && r.AIDetection.IsSuspicious {
		c.AIWarning = fmt.Sprintf("Code resembles generated code (confidence %.0f%%)", r.AIDetection.Confidence*100)
	}
	return c
}

// Mock returns the offline preview card. All fields are populated.
func Mock() Card {
	return Card{
		Score:      75,
		Grade:      "B",
		Passed:     true,
		Summary:    "Offline preview: the analysis service could not be reached, so this result is illustrative only.",
		SkillLevel: "intermediate",
		SubScores: []SubScore{
			{Name: "correctness", Value: 30},
			{Name: "readability", Value: 25},
			{Name: "efficiency", Value: 20},
		},
		ConceptsFound:   []string{"loops"},
		ConceptsMissing: []string{"edge cases"},
		Feedback:        []string{"Your code structure looks reasonable.", "Consider handling unexpected input."},
		Suggestions:     []string{"Add comments explaining each step."},
		Strengths:       []string{"Clear variable names."},
		NextSteps:       []string{"Reconnect to the service for a real grade."},
		AIWarning:       "Not checked while offline.",
		Mock:            true,
	}
}

// Status renders the pass/fail label.
func (c Card) Status() string {
	if c.Passed {
		return "PASSED"
	}
	return "NEEDS WORK"
}

func orNA(s string) string {
	if s == "" {
		return NotAvailable
	}
	return s
}

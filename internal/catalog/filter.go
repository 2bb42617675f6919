package catalog

import (
	"strings"

	"github.com/abhisek/codeval/internal/api"
)

// DifficultyAll matches every difficulty.
const DifficultyAll = "all"

// knownLevels orders the difficulties the service is known to use.
var knownLevels = []string{"easy", "medium", "hard"}

func levelRank(level string) int {
	for i, l := range knownLevels {
		if l == level {
			return i
		}
	}
	return -1
}

// Filter narrows a question list for display.
type Filter struct {
	Difficulty string // "all" or "" matches everything
	Search     string // case-insensitive substring of the question text
}

// Match reports whether q passes the filter.
func (f Filter) Match(q api.Question) bool {
	if f.Difficulty != "" && f.Difficulty != DifficultyAll && !strings.EqualFold(q.Difficulty, f.Difficulty) {
		return false
	}
	if f.Search != "" && !strings.Contains(strings.ToLower(q.Question), strings.ToLower(f.Search)) {
		return false
	}
	return true
}

// Apply returns the questions passing the filter, preserving order.
// The input slice is not modified.
func (f Filter) Apply(qs []api.Question) []api.Question {
	out := make([]api.Question, 0, len(qs))
	for _, q := range qs {
		if f.Match(q) {
			out = append(out, q)
		}
	}
	return out
}

// Active reports whether the filter hides anything.
func (f Filter) Active() bool {
	return (f.Difficulty != "" && f.Difficulty != DifficultyAll) || f.Search != ""
}

// NextDifficulty cycles through choices, typically Catalog.Difficulties.
// An unknown current value moves to the first real level.
func NextDifficulty(choices []string, current string) string {
	if len(choices) == 0 {
		return DifficultyAll
	}
	for i, d := range choices {
		if strings.EqualFold(d, current) {
			return choices[(i+1)%len(choices)]
		}
	}
	if len(choices) > 1 {
		return choices[1]
	}
	return choices[0]
}

package api

import (
	"encoding/json"
	"strings"
)

// Question is a single coding exercise from the question bank.
type Question struct {
	ID         int      `json:"id"`
	Difficulty string   `json:"difficulty"`
	Question   string   `json:"question"`
	Concepts   []string `json:"concepts"`

	// Topic is joined in at load time; the service does not send it.
	Topic string `json:"topic,omitempty"`
}

// HasConcept reports whether the question lists concept (case-insensitive).
func (q Question) HasConcept(concept string) bool {
	for _, c := range q.Concepts {
		if strings.EqualFold(c, concept) {
			return true
		}
	}
	return false
}

// Topic is a named category and its questions in service order.
type Topic struct {
	Name      string
	Questions []Question
}

// AnalyzeRequest is the body of POST /analyze. QuestionID is omitted for
// the quick variant that carries no question context.
type AnalyzeRequest struct {
	Code       string `json:"code"`
	QuestionID int    `json:"question_id,omitempty"`
	Language   string `json:"language"`
}

// Health is the payload of GET /health.
type Health struct {
	Status        string `json:"status"`
	Service       string `json:"service"`
	Version       string `json:"version"`
	ModulesLoaded bool   `json:"modules_loaded"`
}

// ServerHistoryEntry is one analysis recorded by the service.
type ServerHistoryEntry struct {
	ID                 int      `json:"id"`
	Timestamp          string   `json:"timestamp"`
	Language           string   `json:"language"`
	Filename           string   `json:"filename"`
	SkillLevel         string   `json:"skill_level"`
	Score              float64  `json:"score"`
	Grade              string   `json:"grade"`
	TotalLines         int      `json:"total_lines"`
	Complexity         string   `json:"complexity"`
	MistakesCount      int      `json:"mistakes_count"`
	FeedbackSummary    string   `json:"feedback_summary"`
	CodeSnippetPreview string   `json:"code_snippet_preview"`
	MistakeTypes       []string `json:"mistake_types"`
}

// Stats is the payload of GET /stats. Message is set instead of the
// aggregates when the service has no analyses yet.
type Stats struct {
	Message         string            `json:"message,omitempty"`
	TotalAnalyses   int               `json:"total_analyses"`
	AverageScore    float64           `json:"average_score"`
	BestScore       float64           `json:"best_score"`
	WorstScore      float64           `json:"worst_score"`
	TotalMistakes   int               `json:"total_mistakes"`
	AverageMistakes float64           `json:"average_mistakes"`
	Languages       map[string]int    `json:"languages"`
	SkillLevels     map[string]int    `json:"skill_levels"`
	CommonMistakes  []json.RawMessage `json:"common_mistakes"`
}

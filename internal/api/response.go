package api

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ResponseKind tags which /analyze payload shape a response carried.
type ResponseKind int

const (
	KindStructured ResponseKind = iota + 1 // {success, analysis, question}
	KindReport                             // free-form grading report
)

func (k ResponseKind) String() string {
	switch k {
	case KindStructured:
		return "structured"
	case KindReport:
		return "report"
	default:
		return "unknown"
	}
}

// AnalyzeResponse is a tagged union over the two /analyze payload shapes.
// Exactly one of Analysis or Report is set, according to Kind.
type AnalyzeResponse struct {
	Kind ResponseKind

	// Analysis and Question are set for KindStructured.
	Analysis *Analysis
	Question *Question

	// Report is set for KindReport.
	Report *Report

	// Raw is the undecoded body.
	Raw json.RawMessage
}

// Analysis is the structured analysis object.
type Analysis struct {
	Scores      Scores          `json:"scores"`
	Grade       string          `json:"grade"`
	Passed      bool            `json:"passed"`
	Summary     string          `json:"summary"`
	Concepts    ConceptCoverage `json:"concepts"`
	Feedback    []FeedbackEntry `json:"feedback"`
	Suggestions []string        `json:"suggestions"`
}

// Scores maps sub-score names to values. Non-numeric values are dropped
// while decoding.
type Scores map[string]float64

func (s *Scores) UnmarshalJSON(data []byte) error {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	out := make(Scores, len(raw))
	for k, v := range raw {
		if f, ok := v.(float64); ok {
			out[k] = f
		}
	}
	*s = out
	return nil
}

// ConceptCoverage reports which required concepts the code demonstrated.
type ConceptCoverage struct {
	Required []string `json:"required"`
	Found    []string `json:"found"`
	Missing  []string `json:"missing"`
	Coverage float64  `json:"coverage"`
}

// FeedbackEntry is one feedback item in a structured analysis.
type FeedbackEntry struct {
	Category string `json:"category"`
	Message  string `json:"message"`
	Details  string `json:"details"`
	Urgent   bool   `json:"urgent"`
}

// Report is the free-form grading report shape.
type Report struct {
	Timestamp        string         `json:"timestamp"`
	Language         string         `json:"language"`
	SkillLevel       string         `json:"skill_level"`
	Summary          string         `json:"summary"`
	Score            ReportScore    `json:"score"`
	Mistakes         []Mistake      `json:"mistakes"`
	DetailedFeedback []string       `json:"detailed_feedback"`
	PositivePoints   []string       `json:"positive_points"`
	LearningPath     []LearningStep `json:"learning_path"`
	NextSteps        []string       `json:"next_steps"`
	AIDetection      *AIDetection   `json:"ai_detection,omitempty"`
}

// ReportScore is either a bare number or {score, grade, breakdown}.
type ReportScore struct {
	Score     float64            `json:"score"`
	Grade     string             `json:"grade"`
	Breakdown map[string]float64 `json:"breakdown"`
}

func (s *ReportScore) UnmarshalJSON(data []byte) error {
	var n float64
	if err := json.Unmarshal(data, &n); err == nil {
		*s = ReportScore{Score: n}
		return nil
	}
	type plain ReportScore
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*s = ReportScore(p)
	return nil
}

// Mistake is a detected problem in the submitted code.
type Mistake struct {
	Type      string `json:"type"`
	Problem   string `json:"problem"`
	WhyBad    string `json:"why_bad"`
	Solution  string `json:"solution"`
	LearnNext string `json:"learn_next"`
}

// LearningStep is a recommended topic with resources.
type LearningStep struct {
	Topic     string   `json:"topic"`
	Resources []string `json:"resources"`
	Priority  string   `json:"priority"`
}

// AIDetection reports whether the code resembles generated code.
type AIDetection struct {
	IsSuspicious     bool     `json:"is_suspicious"`
	Confidence       float64  `json:"confidence"`
	DetectedPatterns []string `json:"detected_patterns"`
	Explanations     []string `json:"explanations"`
	Recommendations  []string `json:"recommendations"`
}

// structuredEnvelope is the outer {success, analysis, error, question} shape.
type structuredEnvelope struct {
	Success  bool            `json:"success"`
	Analysis json.RawMessage `json:"analysis"`
	Error    string          `json:"error"`
	Question *Question       `json:"question"`
}

// DecodeAnalyzeResponse decodes a 2xx /analyze body into the tagged union.
// A structured body with success=false yields *AnalysisFailedError; a body
// matching neither shape yields *InvalidResponseError.
func DecodeAnalyzeResponse(raw []byte) (*AnalyzeResponse, error) {
	kind, err := detectShape(raw)
	if err != nil {
		return nil, err
	}

	resp := &AnalyzeResponse{Kind: kind, Raw: json.RawMessage(raw)}

	switch kind {
	case KindStructured:
		var env structuredEnvelope
		if err := json.Unmarshal(raw, &env); err != nil {
			return nil, &InvalidResponseError{Content: raw, Err: err}
		}
		if !env.Success {
			return nil, &AnalysisFailedError{Message: env.Error}
		}
		if len(env.Analysis) == 0 || string(env.Analysis) == "null" {
			return nil, &InvalidResponseError{Content: raw, Err: errors.New("success without analysis")}
		}
		var a Analysis
		if err := json.Unmarshal(env.Analysis, &a); err != nil {
			return nil, &InvalidResponseError{Content: raw, Err: fmt.Errorf("decode analysis: %w", err)}
		}
		resp.Analysis = &a
		resp.Question = env.Question

	case KindReport:
		var r Report
		if err := json.Unmarshal(raw, &r); err != nil {
			return nil, &InvalidResponseError{Content: raw, Err: fmt.Errorf("decode report: %w", err)}
		}
		resp.Report = &r
	}

	return resp, nil
}

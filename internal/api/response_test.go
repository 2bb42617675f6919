package api

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeStructured(t *testing.T) {
	raw := []byte(`{
		"success": true,
		"analysis": {
			"scores": {"correctness": 40, "style": 20, "notes": "ignored"},
			"grade": "B",
			"passed": true,
			"summary": "Solid loop",
			"concepts": {"required": ["for"], "found": ["for"], "missing": [], "coverage": 1.0},
			"feedback": [{"category": "style", "message": "Use clearer names", "urgent": false}],
			"suggestions": ["Add a docstring"]
		},
		"question": {"id": 1, "difficulty": "easy", "question": "Print 1..10", "concepts": ["for"]}
	}`)

	resp, err := DecodeAnalyzeResponse(raw)
	require.NoError(t, err)
	assert.Equal(t, KindStructured, resp.Kind)
	require.NotNil(t, resp.Analysis)
	assert.Nil(t, resp.Report)

	a := resp.Analysis
	assert.Equal(t, "B", a.Grade)
	assert.True(t, a.Passed)
	assert.Equal(t, Scores{"correctness": 40, "style": 20}, a.Scores)
	assert.Equal(t, []string{"for"}, a.Concepts.Found)
	require.Len(t, a.Feedback, 1)
	assert.Equal(t, "style", a.Feedback[0].Category)

	require.NotNil(t, resp.Question)
	assert.Equal(t, 1, resp.Question.ID)
}

func TestDecodeReport(t *testing.T) {
	tests := []struct {
		name      string
		raw       string
		wantScore float64
		wantGrade string
	}{
		{
			name:      "numeric score",
			raw:       `{"score": 64, "skill_level": "beginner", "mistakes": [{"type": "naming", "problem": "x is vague"}], "next_steps": ["practice"]}`,
			wantScore: 64,
		},
		{
			name:      "object score",
			raw:       `{"score": {"score": 88, "grade": "A", "breakdown": {"logic": 50}}, "positive_points": ["clean"]}`,
			wantScore: 88,
			wantGrade: "A",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := DecodeAnalyzeResponse([]byte(tt.raw))
			require.NoError(t, err)
			assert.Equal(t, KindReport, resp.Kind)
			require.NotNil(t, resp.Report)
			assert.Equal(t, tt.wantScore, resp.Report.Score.Score)
			assert.Equal(t, tt.wantGrade, resp.Report.Score.Grade)
		})
	}
}

func TestDecodeFailures(t *testing.T) {
	t.Run("success false with message", func(t *testing.T) {
		_, err := DecodeAnalyzeResponse([]byte(`{"success": false, "error": "Unsupported language"}`))
		var af *AnalysisFailedError
		require.True(t, errors.As(err, &af))
		assert.Equal(t, "Unsupported language", af.Error())
	})

	t.Run("error only body", func(t *testing.T) {
		_, err := DecodeAnalyzeResponse([]byte(`{"error": "boom"}`))
		var af *AnalysisFailedError
		require.True(t, errors.As(err, &af))
		assert.Equal(t, "boom", af.Error())
	})

	t.Run("success without analysis", func(t *testing.T) {
		_, err := DecodeAnalyzeResponse([]byte(`{"success": true}`))
		var inv *InvalidResponseError
		assert.True(t, errors.As(err, &inv))
	})

	t.Run("unknown shape", func(t *testing.T) {
		_, err := DecodeAnalyzeResponse([]byte(`{"hello": "world"}`))
		var inv *InvalidResponseError
		assert.True(t, errors.As(err, &inv))
	})

	t.Run("not json", func(t *testing.T) {
		_, err := DecodeAnalyzeResponse([]byte(`<html>`))
		var inv *InvalidResponseError
		assert.True(t, errors.As(err, &inv))
	})
}

package analysis

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/codeval/internal/api"
)

func TestFromStructured(t *testing.T) {
	resp, err := api.DecodeAnalyzeResponse([]byte(`{"success": true, "analysis": {"grade": "B", "passed": true}}`))
	require.NoError(t, err)

	c := FromResponse(resp)
	assert.Equal(t, "B", c.Grade)
	assert.True(t, c.Passed)
	assert.Equal(t, "PASSED", c.Status())
	assert.Equal(t, NotAvailable, c.Summary)
	assert.Zero(t, c.Score)
	assert.False(t, c.Mock)
}

func TestFromStructuredScores(t *testing.T) {
	c := FromResponse(&api.AnalyzeResponse{
		Kind: api.KindStructured,
		Analysis: &api.Analysis{
			Scores:   api.Scores{"style": 20, "correctness": 40},
			Feedback: []api.FeedbackEntry{{Category: "logic", Message: "Off by one", Urgent: true}},
		},
	})
	assert.Equal(t, 60.0, c.Score, "sum of sub-scores when no total")
	assert.Equal(t, []SubScore{{"correctness", 40}, {"style", 20}}, c.SubScores)
	assert.Equal(t, []string{"! [logic] Off by one"}, c.Feedback)
}

func TestFromReport(t *testing.T) {
	resp, err := api.DecodeAnalyzeResponse([]byte(`{
		"score": 42,
		"skill_level": "beginner",
		"mistakes": [{"type": "naming", "problem": "x is vague", "solution": "rename x"}],
		"positive_points": ["runs"],
		"learning_path": [{"topic": "functions"}],
		"ai_detection": {"is_suspicious": true, "confidence": 0.8}
	}`))
	require.NoError(t, err)

	c := FromResponse(resp)
	assert.Equal(t, 42.0, c.Score)
	assert.False(t, c.Passed)
	assert.Equal(t, NotAvailable, c.Grade)
	assert.Equal(t, "beginner", c.SkillLevel)
	assert.Equal(t, []string{"[naming] x is vague"}, c.Feedback)
	assert.Equal(t, []string{"rename x"}, c.Suggestions)
	assert.Equal(t, []string{"Learn: functions"}, c.NextSteps)
	assert.Contains(t, c.AIWarning, "80%")
}

func TestMockHasNoEmptyFields(t *testing.T) {
	c := Mock()
	v := reflect.ValueOf(c)
	for i := 0; i < v.NumField(); i++ {
		f := v.Field(i)
		name := v.Type().Field(i).Name
		switch f.Kind() {
		case reflect.String:
			assert.NotEmpty(t, f.String(), name)
		case reflect.Slice:
			assert.Positive(t, f.Len(), name)
		case reflect.Float64:
			assert.NotZero(t, f.Float(), name)
		}
	}
	assert.True(t, c.Mock)
}

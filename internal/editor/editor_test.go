package editor

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/abhisek/codeval/internal/api"
)

func TestCount(t *testing.T) {
	tests := []struct {
		code  string
		lines int
		chars int
	}{
		{"", 1, 0},
		{"print(1)", 1, 8},
		{"a\nb\nc", 3, 5},
		{"a\n", 2, 2},
		{"π = 3", 1, 5},
	}
	for _, tt := range tests {
		got := Count(tt.code)
		assert.Equal(t, tt.lines, got.Lines, "lines of %q", tt.code)
		assert.Equal(t, tt.chars, got.Chars, "chars of %q", tt.code)
	}
	assert.Equal(t, 6, Count("π = 3").Bytes)
}

func TestPythonExamplePatterns(t *testing.T) {
	tests := []struct {
		name     string
		concepts []string
		want     string
	}{
		{"counting loop", []string{"for"}, "for i in range(1, 11):"},
		{"filtered loop", []string{"for", "if"}, "if i % 2 == 0:"},
		{"counter loop", []string{"while"}, "while i <= 5:"},
		{"parity check", []string{"if", "else"}, "print(\"Odd\")"},
		{"stub", []string{"functions"}, "# Concepts to use: functions"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := api.Question{ID: 1, Question: "Do the thing", Concepts: tt.concepts}
			got := Example(q, "python")
			assert.Contains(t, got, tt.want)
			assert.Equal(t, got, Example(q, "python"), "deterministic")
		})
	}
}

func TestCExamplesIgnoreConcepts(t *testing.T) {
	a := Example(api.Question{Concepts: []string{"for"}}, "c")
	b := Example(api.Question{Concepts: []string{"while"}}, "c")
	assert.Equal(t, a, b)
	assert.Contains(t, a, "Write your solution here")
	assert.True(t, strings.HasPrefix(Example(api.Question{}, "cpp"), "#include <iostream>"))
}

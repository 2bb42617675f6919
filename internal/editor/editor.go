// Package editor provides the pure helpers behind the code editor pane.
package editor

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/abhisek/codeval/internal/api"
	"github.com/abhisek/codeval/internal/config"
)

// Stats are the counters shown under the editor.
type Stats struct {
	Lines int
	Chars int // runes
	Bytes int
}

// Count returns line and character counts for code. Lines are
// newline-delimited segments, so empty input is one line.
func Count(code string) Stats {
	return Stats{
		Lines: strings.Count(code, "\n") + 1,
		Chars: utf8.RuneCountInString(code),
		Bytes: len(code),
	}
}

func (s Stats) String() string {
	return fmt.Sprintf("Lines: %d  Characters: %d", s.Lines, s.Chars)
}

// Example returns deterministic starter code for q in lang.
func Example(q api.Question, lang string) string {
	switch lang {
	case config.LanguageC:
		return cBoilerplate
	case config.LanguageCPP:
		return cppBoilerplate
	default:
		return pythonExample(q)
	}
}

func pythonExample(q api.Question) string {
	hasFor := q.HasConcept("for")
	hasIf := q.HasConcept("if")

	switch {
	case hasFor && !hasIf:
		return "# " + q.Question + "\nfor i in range(1, 11):\n    print(i)\n"
	case hasFor && hasIf:
		return "# " + q.Question + "\nfor i in range(1, 21):\n    if i % 2 == 0:\n        print(i)\n"
	case q.HasConcept("while"):
		return "# " + q.Question + "\ni = 1\nwhile i <= 5:\n    print(i)\n    i += 1\n"
	case hasIf && q.HasConcept("else"):
		return "# " + q.Question + "\nnum = int(input(\"Enter a number: \"))\nif num % 2 == 0:\n    print(\"Even\")\nelse:\n    print(\"Odd\")\n"
	}

	concepts := "none"
	if len(q.Concepts) > 0 {
		concepts = strings.Join(q.Concepts, ", ")
	}
	return fmt.Sprintf("# %s\n# Concepts to use: %s\n\ndef solution():\n    # Write your code here\n    pass\n\nsolution()\n", q.Question, concepts)
}

const cBoilerplate = `#include <stdio.h>

int main() {
    // Write your solution here

    return 0;
}
`

const cppBoilerplate = `#include <iostream>
using namespace std;

int main() {
    // Write your solution here

    return 0;
}
`

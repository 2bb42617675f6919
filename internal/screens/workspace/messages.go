package workspace

import (
	"github.com/abhisek/codeval/internal/evaluator"
	"github.com/abhisek/codeval/internal/session"
)

// analysisDoneMsg carries the outcome of a submission. It is broadcast so
// the workspace sees it even while another screen is on top.
type analysisDoneMsg struct {
	ticket  session.Ticket
	outcome *evaluator.Outcome
	err     error
}

func (analysisDoneMsg) Broadcast() {}

// restoredMsg carries the code saved by a previous run.
type restoredMsg struct {
	code string
	err  error
}

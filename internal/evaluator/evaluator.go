// Package evaluator orchestrates a single code submission: validation, the
// /analyze call, the offline fallback and history recording.
package evaluator

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/abhisek/codeval/internal/analysis"
	"github.com/abhisek/codeval/internal/api"
	"github.com/abhisek/codeval/internal/history"
)

// MaxCodeChars is the largest submission the service accepts.
const MaxCodeChars = 10000

// ValidationError blocks a submission before any request is made.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

var (
	ErrEmptyCode   = &ValidationError{Msg: "write some code first"}
	ErrNoQuestion  = &ValidationError{Msg: "select a question first"}
	ErrCodeTooLong = &ValidationError{Msg: fmt.Sprintf("code too large (max %d characters)", MaxCodeChars)}
)

// Submission is the code sent for analysis.
type Submission struct {
	Code       string
	QuestionID int // 0 for a quick analysis without question context
	Language   string
}

// Outcome is the result of a submission that produced a card.
type Outcome struct {
	Card analysis.Card

	// Offline is set when the service was unreachable and Card is the
	// local mock. Cause holds the transport error.
	Offline bool
	Cause   error
}

// Evaluator submits code to a Backend and records results.
type Evaluator struct {
	backend api.Backend
	history *history.Store
	now     func() time.Time
}

// New creates an Evaluator. history may be nil to skip recording.
func New(b api.Backend, h *history.Store) *Evaluator {
	return &Evaluator{backend: b, history: h, now: time.Now}
}

// Validate checks a submission that requires a question.
func Validate(sub Submission) error {
	if err := validateCode(sub.Code); err != nil {
		return err
	}
	if sub.QuestionID == 0 {
		return ErrNoQuestion
	}
	return nil
}

func validateCode(code string) error {
	if strings.TrimSpace(code) == "" {
		return ErrEmptyCode
	}
	if utf8.RuneCountInString(code) > MaxCodeChars {
		return ErrCodeTooLong
	}
	return nil
}

// Analyze validates sub, submits it and returns the card to show.
//
// A transport failure is not an error: the Outcome carries the mock card
// with Offline set. Server and logical failures are returned as errors.
func (e *Evaluator) Analyze(ctx context.Context, sub Submission) (*Outcome, error) {
	if err := Validate(sub); err != nil {
		return nil, err
	}
	return e.submit(ctx, sub)
}

// AnalyzeQuick submits code without question context.
func (e *Evaluator) AnalyzeQuick(ctx context.Context, code, language string) (*Outcome, error) {
	if err := validateCode(code); err != nil {
		return nil, err
	}
	return e.submit(ctx, Submission{Code: code, Language: language})
}

func (e *Evaluator) submit(ctx context.Context, sub Submission) (*Outcome, error) {
	resp, err := e.backend.Analyze(ctx, api.AnalyzeRequest{
		Code:       sub.Code,
		QuestionID: sub.QuestionID,
		Language:   sub.Language,
	})
	if err != nil {
		var ne *api.NetworkError
		if errors.As(err, &ne) {
			return &Outcome{Card: analysis.Mock(), Offline: true, Cause: err}, nil
		}
		return nil, fmt.Errorf("analyze: %w", err)
	}

	card := analysis.FromResponse(resp)
	e.record(ctx, card, sub)
	return &Outcome{Card: card}, nil
}

// record stores a real result; storage failures are logged and dropped.
func (e *Evaluator) record(ctx context.Context, card analysis.Card, sub Submission) {
	if e.history == nil || card.Mock {
		return
	}
	entry := history.NewEntry(card, sub.Code, sub.Language, e.now())
	if err := e.history.Record(ctx, entry); err != nil {
		log.Printf("warning: history not saved: %v", err)
	}
}

// UserMessage renders err for a toast, unwrapping the service error types.
func UserMessage(err error) string {
	var ve *ValidationError
	var se *api.ServerError
	var af *api.AnalysisFailedError
	var inv *api.InvalidResponseError
	switch {
	case errors.As(err, &ve):
		return ve.Error()
	case errors.As(err, &se):
		return se.Error()
	case errors.As(err, &af):
		return af.Error()
	case errors.As(err, &inv):
		return "The service returned an unexpected response"
	case errors.Is(err, context.Canceled):
		return "Request cancelled"
	default:
		return err.Error()
	}
}

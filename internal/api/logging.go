package api

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/codeval/internal/store"
)

// LoggingBackend is a decorator that records every service call as an event.
type LoggingBackend struct {
	inner     Backend
	eventRepo store.EventRepo
}

var _ Backend = (*LoggingBackend)(nil)

// WithLogging wraps a Backend with request event logging.
func WithLogging(b Backend, repo store.EventRepo) Backend {
	return &LoggingBackend{inner: b, eventRepo: repo}
}

func (l *LoggingBackend) Health(ctx context.Context) (*Health, error) {
	ctx, finish := l.begin(ctx, http.MethodGet, "/health", nil)
	h, err := l.inner.Health(ctx)
	finish(h, err)
	return h, err
}

func (l *LoggingBackend) Questions(ctx context.Context) ([]Topic, error) {
	ctx, finish := l.begin(ctx, http.MethodGet, "/questions", nil)
	topics, err := l.inner.Questions(ctx)
	var summary map[string]int
	if err == nil {
		summary = make(map[string]int, len(topics))
		for _, t := range topics {
			summary[t.Name] = len(t.Questions)
		}
	}
	finish(summary, err)
	return topics, err
}

func (l *LoggingBackend) Analyze(ctx context.Context, req AnalyzeRequest) (*AnalyzeResponse, error) {
	ctx, finish := l.begin(ctx, http.MethodPost, "/analyze", req)
	resp, err := l.inner.Analyze(ctx, req)
	if resp != nil {
		finish(resp.Raw, err)
	} else {
		finish(nil, err)
	}
	return resp, err
}

func (l *LoggingBackend) History(ctx context.Context) ([]ServerHistoryEntry, error) {
	ctx, finish := l.begin(ctx, http.MethodGet, "/history", nil)
	entries, err := l.inner.History(ctx)
	finish(map[string]int{"entries": len(entries)}, err)
	return entries, err
}

func (l *LoggingBackend) Stats(ctx context.Context) (*Stats, error) {
	ctx, finish := l.begin(ctx, http.MethodGet, "/stats", nil)
	s, err := l.inner.Stats(ctx)
	finish(s, err)
	return s, err
}

// begin stamps the context with a request ID and returns a callback that
// records the outcome.
func (l *LoggingBackend) begin(ctx context.Context, method, endpoint string, reqBody any) (context.Context, func(respBody any, err error)) {
	id := RequestIDFrom(ctx)
	if id == "" {
		id = uuid.New().String()
		ctx = WithRequestID(ctx, id)
	}
	start := time.Now()

	return ctx, func(respBody any, err error) {
		data := store.RequestEventData{
			RequestID:   id,
			Method:      method,
			Endpoint:    endpoint,
			LatencyMs:   time.Since(start).Milliseconds(),
			Success:     err == nil,
			StatusCode:  statusOf(err),
			RequestBody: serialize(reqBody),
		}
		if err == nil {
			data.ResponseBody = serialize(respBody)
		} else {
			data.ErrorMessage = err.Error()
			var inv *InvalidResponseError
			if errors.As(err, &inv) {
				data.ResponseBody = string(inv.Content)
			}
		}

		// Log the event but don't fail the request if logging fails.
		if logErr := l.eventRepo.AppendRequest(context.WithoutCancel(ctx), data); logErr != nil {
			log.Printf("warning: failed to log request event: %v", logErr)
		}
	}
}

// statusOf infers the HTTP status from the call outcome; 0 means the
// service was never reached.
func statusOf(err error) int {
	if err == nil {
		return http.StatusOK
	}
	var se *ServerError
	if errors.As(err, &se) {
		return se.StatusCode
	}
	var af *AnalysisFailedError
	var inv *InvalidResponseError
	if errors.As(err, &af) || errors.As(err, &inv) {
		return http.StatusOK
	}
	return 0
}

func serialize(v any) string {
	switch b := v.(type) {
	case nil:
		return ""
	case json.RawMessage:
		return string(b)
	}
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return ""
	}
	return string(out)
}

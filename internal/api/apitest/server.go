// Package apitest provides an in-process fake of the analysis service.
package apitest

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/go-chi/chi/v5"
)

// Server is a fake analysis service backed by canned payloads.
type Server struct {
	*httptest.Server

	mu            sync.Mutex
	questionsBody string
	analyzeStatus int
	analyzeBody   string
	historyBody   string
	statsBody     string

	// Bodies received by POST /analyze, in order.
	Submissions []map[string]any

	analyzeHits atomic.Int32
}

// DefaultQuestions is a small two-topic catalog in the service's format.
const DefaultQuestions = `{
  "for_loop": [
    {"id": 1, "difficulty": "easy", "question": "Print numbers from 1 to 10", "concepts": ["for"]},
    {"id": 2, "difficulty": "easy", "question": "Print even numbers up to 20", "concepts": ["for", "if"]}
  ],
  "if_else": [
    {"id": 3, "difficulty": "easy", "question": "Check if a number is even or odd", "concepts": ["if", "else"]}
  ]
}`

// NewServer starts a fake service and registers cleanup with t.
func NewServer(t testing.TB) *Server {
	t.Helper()

	s := &Server{
		questionsBody: DefaultQuestions,
		analyzeStatus: http.StatusOK,
		analyzeBody:   `{"success": true, "analysis": {"scores": {"total": 80}, "grade": "A", "passed": true}}`,
		historyBody:   `{"history": []}`,
		statsBody:     `{"message": "No analyses yet"}`,
	}

	r := chi.NewRouter()
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, `{"status": "healthy", "service": "Smart Code Evaluator", "version": "1.0", "modules_loaded": true}`)
	})
	r.Get("/questions", func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		defer s.mu.Unlock()
		writeJSON(w, http.StatusOK, s.questionsBody)
	})
	r.Post("/analyze", func(w http.ResponseWriter, r *http.Request) {
		s.analyzeHits.Add(1)
		var body map[string]any
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			writeJSON(w, http.StatusBadRequest, `{"error": "invalid JSON"}`)
			return
		}
		s.mu.Lock()
		defer s.mu.Unlock()
		s.Submissions = append(s.Submissions, body)
		writeJSON(w, s.analyzeStatus, s.analyzeBody)
	})
	r.Get("/history", func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		defer s.mu.Unlock()
		writeJSON(w, http.StatusOK, s.historyBody)
	})
	r.Get("/stats", func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		defer s.mu.Unlock()
		writeJSON(w, http.StatusOK, s.statsBody)
	})

	s.Server = httptest.NewServer(r)
	t.Cleanup(s.Close)
	return s
}

// SetQuestions replaces the GET /questions body.
func (s *Server) SetQuestions(body string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.questionsBody = body
}

// SetAnalyze replaces the POST /analyze status and body.
func (s *Server) SetAnalyze(status int, body string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.analyzeStatus = status
	s.analyzeBody = body
}

// SetHistory replaces the GET /history body.
func (s *Server) SetHistory(body string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.historyBody = body
}

// SetStats replaces the GET /stats body.
func (s *Server) SetStats(body string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.statsBody = body
}

// AnalyzeHits returns how many POST /analyze requests arrived.
func (s *Server) AnalyzeHits() int {
	return int(s.analyzeHits.Load())
}

func writeJSON(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(body))
}

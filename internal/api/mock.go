package api

import (
	"context"
	"sync"
)

// MockAnalyze is a canned /analyze outcome for the MockBackend.
type MockAnalyze struct {
	Response *AnalyzeResponse
	Err      error
}

// MockBackend is a deterministic Backend for testing.
// Analyze returns canned outcomes in FIFO order and records all requests.
type MockBackend struct {
	mu sync.Mutex

	HealthResp  *Health
	HealthErr   error
	Topics      []Topic
	TopicsErr   error
	Entries     []ServerHistoryEntry
	HistoryErr  error
	StatsResp   *Stats
	StatsErr    error
	analyzeResp []MockAnalyze

	Calls []AnalyzeRequest
}

var _ Backend = (*MockBackend)(nil)

// NewMockBackend creates a MockBackend with the given canned analyze outcomes.
func NewMockBackend(outcomes ...MockAnalyze) *MockBackend {
	return &MockBackend{analyzeResp: outcomes}
}

func (m *MockBackend) Health(context.Context) (*Health, error) {
	if m.HealthErr != nil {
		return nil, m.HealthErr
	}
	if m.HealthResp != nil {
		return m.HealthResp, nil
	}
	return &Health{Status: "healthy", Service: "mock", Version: "1.0"}, nil
}

func (m *MockBackend) Questions(context.Context) ([]Topic, error) {
	if m.TopicsErr != nil {
		return nil, m.TopicsErr
	}
	return m.Topics, nil
}

// Analyze returns the next canned outcome, or a NetworkError when the queue
// is empty.
func (m *MockBackend) Analyze(_ context.Context, req AnalyzeRequest) (*AnalyzeResponse, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Calls = append(m.Calls, req)

	if len(m.analyzeResp) == 0 {
		return nil, &NetworkError{Endpoint: "/analyze"}
	}
	next := m.analyzeResp[0]
	m.analyzeResp = m.analyzeResp[1:]
	return next.Response, next.Err
}

func (m *MockBackend) History(context.Context) ([]ServerHistoryEntry, error) {
	if m.HistoryErr != nil {
		return nil, m.HistoryErr
	}
	return m.Entries, nil
}

func (m *MockBackend) Stats(context.Context) (*Stats, error) {
	if m.StatsErr != nil {
		return nil, m.StatsErr
	}
	if m.StatsResp != nil {
		return m.StatsResp, nil
	}
	return &Stats{Message: "No analyses yet"}, nil
}

// AddAnalyze appends a canned analyze outcome to the queue.
func (m *MockBackend) AddAnalyze(outcome MockAnalyze) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.analyzeResp = append(m.analyzeResp, outcome)
}

// CallCount returns the number of Analyze calls made.
func (m *MockBackend) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}

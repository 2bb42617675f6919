package store

import (
	"context"
	"time"
)

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit    int       // max results (0 = unlimited)
	Endpoint string    // exact endpoint match ("" = any)
	From     time.Time // timestamp >= From
}

// KVRepo persists small named values, the client-local equivalent of
// browser storage.
type KVRepo interface {
	// Get returns the value stored under key. ok is false when the key is absent.
	Get(ctx context.Context, key string) (value string, ok bool, err error)

	// Put stores value under key, replacing any previous value.
	Put(ctx context.Context, key, value string) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
}

// RequestEventData captures a single call to the analysis service.
type RequestEventData struct {
	RequestID    string
	Method       string
	Endpoint     string
	StatusCode   int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
	RequestBody  string
	ResponseBody string
}

// RequestEventRecord is a persisted request event.
type RequestEventRecord struct {
	ID        int
	Timestamp time.Time
	RequestEventData
}

// EndpointUsage aggregates request events per endpoint.
type EndpointUsage struct {
	Endpoint     string
	Calls        int
	Failures     int
	AvgLatencyMs int64
}

// EventRepo provides append and query access to request events.
type EventRepo interface {
	// AppendRequest records a service call.
	AppendRequest(ctx context.Context, data RequestEventData) error

	// QueryRequests returns events newest first.
	QueryRequests(ctx context.Context, opts QueryOpts) ([]RequestEventRecord, error)

	// GetRequest returns a single event, or nil if it does not exist.
	GetRequest(ctx context.Context, id int) (*RequestEventRecord, error)

	// UsageByEndpoint aggregates call counts and latency per endpoint.
	UsageByEndpoint(ctx context.Context) ([]EndpointUsage, error)
}

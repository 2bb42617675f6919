package api

import (
	"encoding/json"
	"fmt"
)

// NetworkError indicates the service could not be reached at all.
type NetworkError struct {
	Endpoint string
	Err      error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("cannot reach analysis service (%s): %v", e.Endpoint, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// ServerError indicates a non-2xx HTTP status.
type ServerError struct {
	StatusCode int
	Message    string
}

func (e *ServerError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("HTTP error %d", e.StatusCode)
}

// AnalysisFailedError indicates a 2xx response whose payload reports
// success=false.
type AnalysisFailedError struct {
	Message string
}

func (e *AnalysisFailedError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return "Analysis failed"
}

// InvalidResponseError indicates a 2xx body that could not be decoded into
// any known shape.
type InvalidResponseError struct {
	Content json.RawMessage
	Err     error
}

func (e *InvalidResponseError) Error() string {
	return fmt.Sprintf("invalid service response: %v", e.Err)
}

func (e *InvalidResponseError) Unwrap() error { return e.Err }

package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Backend is the analysis service as seen by the client.
type Backend interface {
	// Health probes GET /health.
	Health(ctx context.Context) (*Health, error)

	// Questions fetches GET /questions and returns topics in document order.
	Questions(ctx context.Context) ([]Topic, error)

	// Analyze submits code to POST /analyze.
	Analyze(ctx context.Context, req AnalyzeRequest) (*AnalyzeResponse, error)

	// History fetches the service-side history from GET /history.
	History(ctx context.Context) ([]ServerHistoryEntry, error)

	// Stats fetches GET /stats.
	Stats(ctx context.Context) (*Stats, error)
}

// maxBodyBytes bounds how much of a response body is read.
const maxBodyBytes = 4 << 20

// Client is the HTTP implementation of Backend.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

var _ Backend = (*Client)(nil)

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.httpClient.Timeout = d }
}

// NewClient creates a Client for the service at baseURL.
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the service base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

func (c *Client) Health(ctx context.Context) (*Health, error) {
	var h Health
	if err := c.getJSON(ctx, "/health", &h); err != nil {
		return nil, err
	}
	return &h, nil
}

func (c *Client) Questions(ctx context.Context) ([]Topic, error) {
	body, err := c.do(ctx, http.MethodGet, "/questions", nil)
	if err != nil {
		return nil, err
	}
	topics, err := decodeTopics(body)
	if err != nil {
		return nil, &InvalidResponseError{Content: body, Err: err}
	}
	return topics, nil
}

func (c *Client) Analyze(ctx context.Context, req AnalyzeRequest) (*AnalyzeResponse, error) {
	body, err := c.do(ctx, http.MethodPost, "/analyze", req)
	if err != nil {
		return nil, err
	}
	return DecodeAnalyzeResponse(body)
}

func (c *Client) History(ctx context.Context) ([]ServerHistoryEntry, error) {
	var payload struct {
		History []ServerHistoryEntry `json:"history"`
	}
	if err := c.getJSON(ctx, "/history", &payload); err != nil {
		return nil, err
	}
	return payload.History, nil
}

func (c *Client) Stats(ctx context.Context) (*Stats, error) {
	var s Stats
	if err := c.getJSON(ctx, "/stats", &s); err != nil {
		return nil, err
	}
	return &s, nil
}

func (c *Client) getJSON(ctx context.Context, path string, v any) error {
	body, err := c.do(ctx, http.MethodGet, path, nil)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, v); err != nil {
		return &InvalidResponseError{Content: body, Err: err}
	}
	return nil
}

// do performs a single request. Transport failures become *NetworkError and
// non-2xx statuses become *ServerError. There are no retries.
func (c *Client) do(ctx context.Context, method, path string, payload any) ([]byte, error) {
	var reqBody io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("marshal request: %w", err)
		}
		reqBody = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if id := RequestIDFrom(ctx); id != "" {
		req.Header.Set("X-Request-ID", id)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return nil, err
		}
		return nil, &NetworkError{Endpoint: path, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, &NetworkError{Endpoint: path, Err: fmt.Errorf("read body: %w", err)}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &ServerError{StatusCode: resp.StatusCode, Message: errorMessage(body)}
	}
	return body, nil
}

// errorMessage extracts {"error": "..."} from a failed response, if present.
func errorMessage(body []byte) string {
	var payload struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return ""
	}
	return payload.Error
}

// decodeTopics decodes a {topic: [question...]} object keeping key order.
func decodeTopics(raw []byte) ([]Topic, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))

	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, fmt.Errorf("catalog must be a JSON object, got %v", tok)
	}

	var topics []Topic
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("read topic key: %w", err)
		}
		name, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("unexpected topic key %v", tok)
		}

		var qs []Question
		if err := dec.Decode(&qs); err != nil {
			return nil, fmt.Errorf("decode topic %q: %w", name, err)
		}
		for i := range qs {
			qs[i].Topic = name
		}
		topics = append(topics, Topic{Name: name, Questions: qs})
	}

	if _, err := dec.Token(); err != nil {
		return nil, fmt.Errorf("read catalog end: %w", err)
	}
	return topics, nil
}

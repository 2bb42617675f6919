package store

import (
	"context"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
)

const eventTable = "request_events"

var eventColumns = []string{
	"id", "request_id", "timestamp", "method", "endpoint", "status_code",
	"latency_ms", "success", "error_message", "request_body", "response_body",
}

// eventRepo implements EventRepo on the request_events table.
type eventRepo struct {
	drv *entsql.Driver
}

func (r *eventRepo) AppendRequest(ctx context.Context, data RequestEventData) error {
	query, args := builder.Insert(eventTable).
		Columns(eventColumns[1:]...).
		Values(
			data.RequestID,
			time.Now().UTC(),
			data.Method,
			data.Endpoint,
			data.StatusCode,
			data.LatencyMs,
			data.Success,
			data.ErrorMessage,
			data.RequestBody,
			data.ResponseBody,
		).
		Query()

	if err := r.drv.Exec(ctx, query, args, nil); err != nil {
		return fmt.Errorf("save request event: %w", err)
	}
	return nil
}

func (r *eventRepo) QueryRequests(ctx context.Context, opts QueryOpts) ([]RequestEventRecord, error) {
	sel := builder.Select(eventColumns...).
		From(entsql.Table(eventTable)).
		OrderBy(entsql.Desc("id"))

	if opts.Endpoint != "" {
		sel = sel.Where(entsql.EQ("endpoint", opts.Endpoint))
	}
	if !opts.From.IsZero() {
		sel = sel.Where(entsql.GTE("timestamp", opts.From.UTC()))
	}
	if opts.Limit > 0 {
		sel = sel.Limit(opts.Limit)
	}

	query, args := sel.Query()
	var rows entsql.Rows
	if err := r.drv.Query(ctx, query, args, &rows); err != nil {
		return nil, fmt.Errorf("query request events: %w", err)
	}
	defer rows.Close()

	var records []RequestEventRecord
	for rows.Next() {
		rec, err := scanEvent(&rows)
		if err != nil {
			return nil, err
		}
		records = append(records, *rec)
	}
	return records, rows.Err()
}

func (r *eventRepo) GetRequest(ctx context.Context, id int) (*RequestEventRecord, error) {
	query, args := builder.Select(eventColumns...).
		From(entsql.Table(eventTable)).
		Where(entsql.EQ("id", id)).
		Query()

	var rows entsql.Rows
	if err := r.drv.Query(ctx, query, args, &rows); err != nil {
		return nil, fmt.Errorf("query request event %d: %w", id, err)
	}
	defer rows.Close()

	if !rows.Next() {
		return nil, rows.Err()
	}
	return scanEvent(&rows)
}

func (r *eventRepo) UsageByEndpoint(ctx context.Context) ([]EndpointUsage, error) {
	query, args := builder.Select("endpoint", entsql.Count("*"), entsql.Avg("latency_ms")).
		From(entsql.Table(eventTable)).
		GroupBy("endpoint").
		OrderBy("endpoint").
		Query()

	var rows entsql.Rows
	if err := r.drv.Query(ctx, query, args, &rows); err != nil {
		return nil, fmt.Errorf("query endpoint usage: %w", err)
	}
	defer rows.Close()

	var usage []EndpointUsage
	index := make(map[string]int)
	for rows.Next() {
		var (
			u   EndpointUsage
			avg float64
		)
		if err := rows.Scan(&u.Endpoint, &u.Calls, &avg); err != nil {
			return nil, fmt.Errorf("scan endpoint usage: %w", err)
		}
		u.AvgLatencyMs = int64(avg)
		index[u.Endpoint] = len(usage)
		usage = append(usage, u)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	failures, err := r.failuresByEndpoint(ctx)
	if err != nil {
		return nil, err
	}
	for endpoint, n := range failures {
		if i, ok := index[endpoint]; ok {
			usage[i].Failures = n
		}
	}
	return usage, nil
}

func (r *eventRepo) failuresByEndpoint(ctx context.Context) (map[string]int, error) {
	query, args := builder.Select("endpoint", entsql.Count("*")).
		From(entsql.Table(eventTable)).
		Where(entsql.EQ("success", false)).
		GroupBy("endpoint").
		Query()

	var rows entsql.Rows
	if err := r.drv.Query(ctx, query, args, &rows); err != nil {
		return nil, fmt.Errorf("query endpoint failures: %w", err)
	}
	defer rows.Close()

	out := make(map[string]int)
	for rows.Next() {
		var (
			endpoint string
			n        int
		)
		if err := rows.Scan(&endpoint, &n); err != nil {
			return nil, fmt.Errorf("scan endpoint failures: %w", err)
		}
		out[endpoint] = n
	}
	return out, rows.Err()
}

func scanEvent(rows *entsql.Rows) (*RequestEventRecord, error) {
	var rec RequestEventRecord
	err := rows.Scan(
		&rec.ID,
		&rec.RequestID,
		&rec.Timestamp,
		&rec.Method,
		&rec.Endpoint,
		&rec.StatusCode,
		&rec.LatencyMs,
		&rec.Success,
		&rec.ErrorMessage,
		&rec.RequestBody,
		&rec.ResponseBody,
	)
	if err != nil {
		return nil, fmt.Errorf("scan request event: %w", err)
	}
	return &rec, nil
}

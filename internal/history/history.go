// Package history keeps the capped local log of analysed submissions.
package history

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/abhisek/codeval/internal/analysis"
	"github.com/abhisek/codeval/internal/store"
)

// Key is the kv key the history is persisted under.
const Key = "codeHistory"

// DefaultLimit is the number of entries kept.
const DefaultLimit = 10

// previewLen is the number of runes of code kept in an entry.
const previewLen = 100

// Entry is one recorded analysis.
type Entry struct {
	ID          int64   `json:"id"`
	Timestamp   string  `json:"timestamp"`
	Language    string  `json:"language"`
	Score       float64 `json:"score"`
	Grade       string  `json:"grade"`
	Summary     string  `json:"summary"`
	CodePreview string  `json:"codePreview"`
}

// NewEntry builds an entry for a graded card.
func NewEntry(card analysis.Card, code, language string, now time.Time) Entry {
	return Entry{
		ID:          now.UnixMilli(),
		Timestamp:   now.UTC().Format(time.RFC3339),
		Language:    language,
		Score:       card.Score,
		Grade:       card.Grade,
		Summary:     card.Summary,
		CodePreview: Preview(code),
	}
}

// Preview truncates code for display in the history list.
func Preview(code string) string {
	r := []rune(code)
	if len(r) <= previewLen {
		return code
	}
	return string(r[:previewLen]) + "..."
}

// Store persists entries newest first in a single kv value.
type Store struct {
	kv    store.KVRepo
	limit int
}

// New creates a Store over kv holding at most DefaultLimit entries.
func New(kv store.KVRepo) *Store {
	return &Store{kv: kv, limit: DefaultLimit}
}

// ErrCorrupt reports a stored history value that cannot be decoded.
var ErrCorrupt = errors.New("corrupt history")

// List returns entries newest first. A missing value yields an empty list;
// an undecodable one yields an error wrapping ErrCorrupt.
func (s *Store) List(ctx context.Context) ([]Entry, error) {
	raw, ok, err := s.kv.Get(ctx, Key)
	if err != nil {
		return nil, fmt.Errorf("read history: %w", err)
	}
	if !ok || raw == "" {
		return nil, nil
	}
	var entries []Entry
	if err := json.Unmarshal([]byte(raw), &entries); err != nil {
		return nil, fmt.Errorf("decode history: %w: %v", ErrCorrupt, err)
	}
	return entries, nil
}

// Record prepends e and drops the oldest entries beyond the limit.
func (s *Store) Record(ctx context.Context, e Entry) error {
	entries, err := s.List(ctx)
	switch {
	case errors.Is(err, ErrCorrupt):
		// A corrupt value is replaced rather than blocking new entries.
		entries = nil
	case err != nil:
		return err
	}

	entries = append([]Entry{e}, entries...)
	if len(entries) > s.limit {
		entries = entries[:s.limit]
	}

	b, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("encode history: %w", err)
	}
	if err := s.kv.Put(ctx, Key, string(b)); err != nil {
		return fmt.Errorf("write history: %w", err)
	}
	return nil
}

// Clear removes all entries.
func (s *Store) Clear(ctx context.Context) error {
	if err := s.kv.Delete(ctx, Key); err != nil {
		return fmt.Errorf("clear history: %w", err)
	}
	return nil
}

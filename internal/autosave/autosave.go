// Package autosave debounces editor changes and persists the latest code.
package autosave

import (
	"context"
	"fmt"
	"log"
	"sync/atomic"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/codeval/internal/store"
)

// LastCodeKey is the kv key holding the most recent editor contents.
const LastCodeKey = "lastCode"

// DefaultDelay is the quiet period before a save fires.
const DefaultDelay = time.Second

var lastID atomic.Int64

// DueMsg is delivered when a debounce period ends. It only counts if its
// tag is still current; see Debouncer.Due.
type DueMsg struct {
	id  int64
	tag int
}

// Broadcast lets the tick reach a screen that is covered by another.
func (DueMsg) Broadcast() {}

// Debouncer coalesces bursts of changes into one save. Each Trigger
// supersedes the previous one, so only the last pending tick is honoured.
type Debouncer struct {
	id    int64
	tag   int
	delay time.Duration
}

// NewDebouncer creates a Debouncer with the given quiet period.
func NewDebouncer(delay time.Duration) *Debouncer {
	return &Debouncer{id: lastID.Add(1), delay: delay}
}

// Trigger restarts the quiet period.
func (d *Debouncer) Trigger() tea.Cmd {
	d.tag++
	id, tag := d.id, d.tag
	return tea.Tick(d.delay, func(time.Time) tea.Msg {
		return DueMsg{id: id, tag: tag}
	})
}

// Due reports whether msg is the latest tick of this debouncer.
func (d *Debouncer) Due(msg DueMsg) bool {
	return msg.id == d.id && msg.tag == d.tag
}

// Saver reads and writes the last editor contents.
type Saver struct {
	kv store.KVRepo
}

// NewSaver creates a Saver over kv.
func NewSaver(kv store.KVRepo) *Saver {
	return &Saver{kv: kv}
}

// Save stores code. Failures are logged and dropped.
func (s *Saver) Save(ctx context.Context, code string) {
	if err := s.kv.Put(ctx, LastCodeKey, code); err != nil {
		log.Printf("warning: autosave failed: %v", err)
	}
}

// Restore returns the last saved code, or "" when none exists.
func (s *Saver) Restore(ctx context.Context) (string, error) {
	code, _, err := s.kv.Get(ctx, LastCodeKey)
	if err != nil {
		return "", fmt.Errorf("restore code: %w", err)
	}
	return code, nil
}

// SaveCmd returns a command that saves code off the UI loop.
func (s *Saver) SaveCmd(code string) tea.Cmd {
	return func() tea.Msg {
		s.Save(context.Background(), code)
		return nil
	}
}

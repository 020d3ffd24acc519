package memory

import (
	"context"
	"sync"

	"spenddiary/internal/core"
	"spenddiary/internal/mirror"
)

// Mirror keeps the last replaced snapshot in memory. Used in tests and as a
// stand-in when no spreadsheet is configured.
type Mirror struct {
	mu       sync.Mutex
	entries  []core.DiaryEntry
	replaces int
}

var _ mirror.DiaryMirror = (*Mirror)(nil)

func New() *Mirror {
	return &Mirror{}
}

func (m *Mirror) Replace(_ context.Context, entries []core.DiaryEntry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = append([]core.DiaryEntry(nil), entries...)
	m.replaces++
	return nil
}

// Entries returns a copy of the last snapshot.
func (m *Mirror) Entries() []core.DiaryEntry {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]core.DiaryEntry(nil), m.entries...)
}

// Replaces reports how many times the snapshot was rewritten.
func (m *Mirror) Replaces() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.replaces
}

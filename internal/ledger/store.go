// Package ledger keeps the manual investment log and its persistence.
package ledger

import (
	"sync"

	"StreetDash/internal/model"
)

// DateLayout is the on-disk date format of ledger entries.
const DateLayout = "2006-01-02"

// Store persists the full list of ledger entries.
type Store interface {
	Load() ([]model.LedgerEntry, error)
	Save(entries []model.LedgerEntry) error
	Close() error
}

// MemoryStore keeps entries in process memory. Used when no ledger path is
// configured and in tests.
type MemoryStore struct {
	mu      sync.Mutex
	entries []model.LedgerEntry
	Saves   int
}

func NewMemoryStore(entries ...model.LedgerEntry) *MemoryStore {
	return &MemoryStore{entries: entries}
}

func (m *MemoryStore) Load() ([]model.LedgerEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]model.LedgerEntry(nil), m.entries...), nil
}

func (m *MemoryStore) Save(entries []model.LedgerEntry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = append([]model.LedgerEntry(nil), entries...)
	m.Saves++
	return nil
}

func (m *MemoryStore) Close() error { return nil }

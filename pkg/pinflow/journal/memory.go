package journal

import "sync"

// MemoryStore is an in-memory journal store for testing and short-lived
// diagnostics. Data is lost when the process exits.
type MemoryStore struct {
	mu     sync.RWMutex
	recs   []*Record
	seq    int
	closed bool
}

// NewMemoryStore creates a new in-memory journal store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Append implements Store.
func (m *MemoryStore) Append(rec *Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrStoreClosed
	}

	m.seq++
	// Copy so later caller mutations don't reach the stored record.
	stored := *rec
	stored.Sequence = m.seq
	if rec.Fired != nil {
		stored.Fired = make([]NodeFire, len(rec.Fired))
		copy(stored.Fired, rec.Fired)
	}
	m.recs = append(m.recs, &stored)
	return nil
}

// List implements Store.
func (m *MemoryStore) List() ([]*Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.closed {
		return nil, ErrStoreClosed
	}

	out := make([]*Record, len(m.recs))
	copy(out, m.recs)
	return out, nil
}

// Last implements Store.
func (m *MemoryStore) Last() (*Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.closed {
		return nil, ErrStoreClosed
	}
	if len(m.recs) == 0 {
		return nil, ErrNotFound
	}
	return m.recs[len(m.recs)-1], nil
}

// Prune implements Store.
func (m *MemoryStore) Prune() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrStoreClosed
	}
	m.recs = nil
	return nil
}

// Close implements Store.
func (m *MemoryStore) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}

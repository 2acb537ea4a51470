package testsupport

import (
	"context"
	"sync"
	"time"

	"taskhero.com/taskhero/internal/identity"
)

// MemorySessionStore is an in-process identity.SessionStore for tests.
type MemorySessionStore struct {
	mu      sync.Mutex
	records map[string]identity.TokenRecord
}

func NewMemorySessionStore() *MemorySessionStore {
	return &MemorySessionStore{records: make(map[string]identity.TokenRecord)}
}

func (m *MemorySessionStore) Save(_ context.Context, token string, rec identity.TokenRecord, _ time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.records[token] = rec
	return nil
}

func (m *MemorySessionStore) Load(_ context.Context, token string) (identity.TokenRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	rec, ok := m.records[token]
	if !ok {
		return identity.TokenRecord{}, identity.ErrSessionNotFound
	}
	return rec, nil
}

func (m *MemorySessionStore) Delete(_ context.Context, tokens ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, t := range tokens {
		delete(m.records, t)
	}
	return nil
}

func (m *MemorySessionStore) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	return len(m.records)
}

package iostore

import (
	"context"
	"sync"
	"time"

	"github.com/gnames/gndash/pkg/dataset"
)

type entry struct {
	snap      *dataset.Snapshot
	updatedAt time.Time
}

// memStore keeps snapshots in a map. Snapshots are immutable, so the
// same pointer is handed to every reader.
type memStore struct {
	mu       sync.RWMutex
	sessions map[string]entry
}

// NewMemory creates a session store that lives as long as the process.
func NewMemory() dataset.Store {
	return &memStore{sessions: make(map[string]entry)}
}

func (m *memStore) Get(
	_ context.Context,
	sessionID string,
) (*dataset.Snapshot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.sessions[sessionID]
	if !ok {
		return nil, dataset.NotFoundError(sessionID)
	}
	e.updatedAt = time.Now()
	m.sessions[sessionID] = e
	return e.snap, nil
}

func (m *memStore) Put(
	_ context.Context,
	sessionID string,
	snap *dataset.Snapshot,
) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[sessionID] = entry{snap: snap, updatedAt: time.Now()}
	return nil
}

func (m *memStore) Delete(_ context.Context, sessionID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, sessionID)
	return nil
}

func (m *memStore) Purge(_ context.Context, before time.Time) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var count int
	for id, e := range m.sessions {
		if e.updatedAt.Before(before) {
			delete(m.sessions, id)
			count++
		}
	}
	return count, nil
}

func (m *memStore) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	clear(m.sessions)
	return nil
}

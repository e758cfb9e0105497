package store

import (
	"context"
	"sync"
)

// MemoryStore keeps the high score for the lifetime of the process
type MemoryStore struct {
	mu    sync.Mutex
	score int
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (m *MemoryStore) Load(ctx context.Context) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.score, nil
}

// Save only ever raises the stored value
func (m *MemoryStore) Save(ctx context.Context, score int) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if score > m.score {
		m.score = score
	}
	return nil
}

func (m *MemoryStore) Close() error { return nil }

package session

import (
	"context"
	"sync"
)

// MemoryBackend keeps sessions in process. Used for local runs and tests.
type MemoryBackend struct {
	mu   sync.RWMutex
	data map[string]map[string][]byte
}

func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{data: map[string]map[string][]byte{}}
}

func (b *MemoryBackend) Get(_ context.Context, sessionID, key string) ([]byte, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	v, ok := b.data[sessionID][key]
	if !ok {
		return nil, ErrNotFound
	}
	return append([]byte(nil), v...), nil
}

func (b *MemoryBackend) Set(_ context.Context, sessionID, key string, value []byte) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.data[sessionID] == nil {
		b.data[sessionID] = map[string][]byte{}
	}
	b.data[sessionID][key] = append([]byte(nil), value...)
	return nil
}

func (b *MemoryBackend) Delete(_ context.Context, sessionID string, keys ...string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, k := range keys {
		delete(b.data[sessionID], k)
	}
	if len(b.data[sessionID]) == 0 {
		delete(b.data, sessionID)
	}
	return nil
}

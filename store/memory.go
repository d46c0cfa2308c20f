package store

import (
	"context"
	"sync"
)

// Memory keeps values in process. Useful for tests and throwaway sessions.
type Memory struct {
	mu     sync.RWMutex
	data   map[string][]byte
	closed bool

	// FailPut, when set, is returned by every Put. Lets tests simulate a full
	// quota.
	FailPut error
}

func NewMemory() *Memory {
	return &Memory{data: make(map[string][]byte)}
}

func (m *Memory) Get(_ context.Context, key string) ([]byte, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.closed {
		return nil, false, ErrClosed
	}
	v, ok := m.data[key]
	if !ok {
		return nil, false, nil
	}
	return append([]byte(nil), v...), true, nil
}

func (m *Memory) Put(_ context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return ErrClosed
	}
	if m.FailPut != nil {
		return m.FailPut
	}
	m.data[key] = append([]byte(nil), value...)
	return nil
}

func (m *Memory) Close() error {
	m.mu.Lock()
	m.closed = true
	m.mu.Unlock()
	return nil
}

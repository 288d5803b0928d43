package filestate

import (
	"context"
	"sync"
)

// Memory is an in-process Cache.
type Memory struct {
	mu     sync.RWMutex
	states map[string]State
}

var _ Cache = (*Memory)(nil)

// NewMemory returns an empty in-process cache.
func NewMemory() *Memory {
	return &Memory{states: make(map[string]State)}
}

func (m *Memory) Get(_ context.Context, p string) (*State, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.states[Key(p)]
	if !ok {
		return nil, nil
	}
	return &s, nil
}

func (m *Memory) Put(_ context.Context, s State) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.states[Key(s.Path)] = s
	return nil
}

func (m *Memory) Invalidate(_ context.Context, p string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.states, Key(p))
	return nil
}

func (m *Memory) Clear(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	clear(m.states)
	return nil
}

// Len reports the number of recorded paths.
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.states)
}

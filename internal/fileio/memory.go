package fileio

import (
	"fmt"
	"io/fs"
	"sync"
)

// Memory is an in-memory Provider. Every write advances a logical clock by
// one millisecond so mtimes strictly increase.
type Memory struct {
	mu    sync.Mutex
	files map[string]memFile
	clock int64
}

type memFile struct {
	content string
	mtime   int64
}

var _ Provider = (*Memory)(nil)

// NewMemory returns an empty in-memory filesystem whose clock starts at 1000.
func NewMemory() *Memory {
	return &Memory{files: make(map[string]memFile), clock: 1000}
}

func (m *Memory) Read(path string) (string, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	f, ok := m.files[path]
	if !ok {
		return "", 0, fmt.Errorf("open %s: %w", path, fs.ErrNotExist)
	}
	return f.content, f.mtime, nil
}

func (m *Memory) Exists(path string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.files[path]
	return ok
}

func (m *Memory) Mtime(path string) (int64, error) {
	_, mtime, err := m.Read(path)
	return mtime, err
}

func (m *Memory) Write(path, content string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.clock++
	m.files[path] = memFile{content: content, mtime: m.clock}
	return m.clock, nil
}

// Touch advances the file's mtime without changing its content.
func (m *Memory) Touch(path string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if f, ok := m.files[path]; ok {
		m.clock++
		f.mtime = m.clock
		m.files[path] = f
	}
}

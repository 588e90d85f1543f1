package storage

import (
	"os"
	"strings"
	"sync"

	"github.com/TheMichaelB/vecfmt/internal/models"
)

// MemoryStore keeps files in memory. Used by tests.
type MemoryStore struct {
	mu    sync.RWMutex
	files map[string]string

	// WriteErr, when set, fails every WriteLines call.
	WriteErr error
}

// NewMemoryStore creates an in-memory line store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		files: make(map[string]string),
	}
}

// Put stores raw text under path.
func (m *MemoryStore) Put(path, text string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.files[path] = text
}

// Get returns the raw text stored under path.
func (m *MemoryStore) Get(path string) (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	text, ok := m.files[path]
	return text, ok
}

// ReadLines splits the stored text into lines.
func (m *MemoryStore) ReadLines(path string) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	text, ok := m.files[path]
	if !ok {
		return nil, &models.FileAccessError{Op: "open", Path: path, Err: os.ErrNotExist}
	}
	return SplitLines(text), nil
}

// WriteLines replaces the stored text.
func (m *MemoryStore) WriteLines(path string, lines []string, mode os.FileMode) (WriteResult, error) {
	if m.WriteErr != nil {
		return WriteResult{}, &models.FileAccessError{Op: "write", Path: path, Err: m.WriteErr}
	}

	text := strings.Join(lines, "")

	m.mu.Lock()
	m.files[path] = text
	m.mu.Unlock()

	return WriteResult{
		Path:   path,
		Lines:  len(lines),
		Size:   int64(len(text)),
		Digest: Digest([]byte(text)),
	}, nil
}

// Exists checks if a file exists.
func (m *MemoryStore) Exists(path string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.files[path]
	return ok, nil
}

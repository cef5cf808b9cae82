package storage

import (
	"context"
	"errors"
	"sync"

	"github.com/easybill/backend/internal/domain/billing"
)

var _ billing.DocumentArchive = (*MemoryArchive)(nil)

// MemoryArchive keeps archived documents in process memory.
// Used when object storage is disabled and in tests.
type MemoryArchive struct {
	mu   sync.RWMutex
	docs map[string][]byte
}

// NewMemoryArchive creates an empty in-memory archive
func NewMemoryArchive() *MemoryArchive {
	return &MemoryArchive{docs: make(map[string][]byte)}
}

// Archive stores a copy of content under key
func (m *MemoryArchive) Archive(_ context.Context, key string, content []byte) error {
	if key == "" {
		return errors.New("storage key is required")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.docs[key] = append([]byte(nil), content...)
	return nil
}

// Remove drops a stored document
func (m *MemoryArchive) Remove(_ context.Context, key string) error {
	if key == "" {
		return errors.New("storage key is required")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.docs, key)
	return nil
}

// Get returns a stored document
func (m *MemoryArchive) Get(key string) ([]byte, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	doc, ok := m.docs[key]
	return doc, ok
}

// Len returns the number of stored documents
func (m *MemoryArchive) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.docs)
}

package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/aretw0/atelier/pkg/domain"
)

// Store implements ports.DocumentStore in memory.
// Safe for concurrent use.
type Store struct {
	data map[string]*domain.Document
	mu   sync.RWMutex
}

// NewStore creates a new in-memory store.
func NewStore() *Store {
	return &Store{
		data: make(map[string]*domain.Document),
	}
}

// NewFromDocuments creates a store seeded with docs, keyed by their ID.
// This improves DX for tests and demos.
func NewFromDocuments(docs ...*domain.Document) (*Store, error) {
	s := NewStore()
	for _, d := range docs {
		if d == nil || d.ID == "" {
			return nil, fmt.Errorf("document missing ID")
		}
		s.data[d.ID] = d.Clone()
	}
	return s, nil
}

// Save persists a copy of the document in memory.
func (s *Store) Save(ctx context.Context, id string, doc *domain.Document) error {
	if doc == nil {
		return domain.NilArgument("doc")
	}
	copied := doc.Clone()
	copied.ID = id

	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[id] = copied
	return nil
}

// Load retrieves a copy of the document.
func (s *Store) Load(ctx context.Context, id string) (*domain.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	doc, ok := s.data[id]
	if !ok {
		return nil, domain.ErrDocumentNotFound
	}
	return doc.Clone(), nil
}

// Delete removes the document.
func (s *Store) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, id)
	return nil
}

// List returns all stored document IDs.
func (s *Store) List(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	keys := make([]string, 0, len(s.data))
	for k := range s.data {
		keys = append(keys, k)
	}
	s.mu.RUnlock()
	sort.Strings(keys) // Deterministic order
	return keys, nil
}

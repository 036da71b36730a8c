package ports_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/aretw0/atelier/pkg/domain"
	"github.com/aretw0/atelier/pkg/ports"
)

// MockStore keeps documents as JSON to mimic a serializing backend.
type MockStore struct {
	data map[string][]byte
}

func NewMockStore() *MockStore {
	return &MockStore{
		data: make(map[string][]byte),
	}
}

func (m *MockStore) Save(ctx context.Context, id string, doc *domain.Document) error {
	raw, err := json.Marshal(doc)
	if err != nil {
		return err
	}
	m.data[id] = raw
	return nil
}

func (m *MockStore) Load(ctx context.Context, id string) (*domain.Document, error) {
	raw, ok := m.data[id]
	if !ok {
		return nil, domain.ErrDocumentNotFound
	}
	var doc domain.Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

func (m *MockStore) Delete(ctx context.Context, id string) error {
	delete(m.data, id)
	return nil
}

func (m *MockStore) List(ctx context.Context) ([]string, error) {
	ids := make([]string, 0, len(m.data))
	for id := range m.data {
		ids = append(ids, id)
	}
	return ids, nil
}

func TestDocumentStore_Contract(t *testing.T) {
	ports.RunDocumentStoreContract(t, NewMockStore())
}

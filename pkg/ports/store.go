package ports

import (
	"context"

	"github.com/aretw0/atelier/pkg/domain"
)

// DocumentStore defines the interface for persisting design documents.
type DocumentStore interface {
	// Save persists the document under the given ID.
	Save(ctx context.Context, id string, doc *domain.Document) error

	// Load retrieves a document.
	// Returns domain.ErrDocumentNotFound if the document does not exist.
	Load(ctx context.Context, id string) (*domain.Document, error)

	// Delete removes a document.
	Delete(ctx context.Context, id string) error

	// List returns the IDs of stored documents.
	List(ctx context.Context) ([]string, error)
}

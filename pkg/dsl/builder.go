package dsl

import (
	"fmt"

	"github.com/aretw0/atelier/pkg/adapters/memory"
	"github.com/aretw0/atelier/pkg/domain"
)

// Builder manages the document construction.
type Builder struct {
	namespace string
	root      *ComponentBuilder
}

// New creates a new document builder. namespace qualifies the root class name.
func New(namespace string) *Builder {
	return &Builder{namespace: namespace}
}

// Root sets the root component of the document.
// Calling Root again replaces the previous root and its children.
func (b *Builder) Root(typeName, name string) *ComponentBuilder {
	b.root = newComponent(typeName, name)
	return b.root
}

// Build compiles the tree into a document.
func (b *Builder) Build() (*domain.Document, error) {
	if b.root == nil {
		return nil, fmt.Errorf("%w: document missing root type", domain.ErrInvalidDocument)
	}
	return &domain.Document{
		Namespace: b.namespace,
		Root:      b.root.Build(),
	}, nil
}

// Store compiles the tree and seeds an in-memory store with it under id.
func (b *Builder) Store(id string) (*memory.Store, error) {
	doc, err := b.Build()
	if err != nil {
		return nil, err
	}
	doc.ID = id
	store, err := memory.NewFromDocuments(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to build memory store: %w", err)
	}
	return store, nil
}

package ports

import (
	"context"
	"testing"
	"time"

	"github.com/aretw0/atelier/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func contractDocument(rootName string) *domain.Document {
	return &domain.Document{
		Namespace: "contract",
		Root: domain.ComponentSpec{
			Type: "toolbox.Form",
			Name: rootName,
			Properties: map[string]any{
				"text": "Contract",
			},
			Children: []domain.ComponentSpec{
				{Type: "toolbox.Button", Name: "okButton"},
			},
		},
	}
}

// RunDocumentStoreContract runs a suite of tests to verify that a DocumentStore
// implementation adheres to the interface contract.
func RunDocumentStoreContract(t *testing.T, store DocumentStore) {
	ctx := context.Background()
	id := "contract-doc-" + time.Now().Format("20060102150405")

	t.Run("Save and Load", func(t *testing.T) {
		doc := contractDocument("mainForm")

		err := store.Save(ctx, id, doc)
		require.NoError(t, err, "Save should not return error")

		loaded, err := store.Load(ctx, id)
		require.NoError(t, err, "Load should not return error")
		assert.Equal(t, "contract", loaded.Namespace)
		assert.Equal(t, "mainForm", loaded.Root.Name)
		assert.Equal(t, "Contract", loaded.Root.Properties["text"])
		require.Len(t, loaded.Root.Children, 1)
		assert.Equal(t, "okButton", loaded.Root.Children[0].Name)
	})

	t.Run("Load returns a copy", func(t *testing.T) {
		loaded, err := store.Load(ctx, id)
		require.NoError(t, err)
		loaded.Root.Name = "mutated"

		again, err := store.Load(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, "mainForm", again.Root.Name)
	})

	t.Run("Load Non-Existent", func(t *testing.T) {
		_, err := store.Load(ctx, "non-existent-"+id)
		assert.ErrorIs(t, err, domain.ErrDocumentNotFound)
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, store.Save(ctx, id, contractDocument("mainForm")))

		err := store.Delete(ctx, id)
		require.NoError(t, err, "Delete should not return error")

		_, err = store.Load(ctx, id)
		assert.ErrorIs(t, err, domain.ErrDocumentNotFound, "Load after Delete should return ErrDocumentNotFound")
	})

	t.Run("List", func(t *testing.T) {
		id1 := id + "-1"
		id2 := id + "-2"
		_ = store.Save(ctx, id1, contractDocument("first"))
		_ = store.Save(ctx, id2, contractDocument("second"))

		defer func() {
			_ = store.Delete(ctx, id1)
			_ = store.Delete(ctx, id2)
		}()

		ids, err := store.List(ctx)
		require.NoError(t, err)
		assert.Contains(t, ids, id1)
		assert.Contains(t, ids, id2)
	})
}

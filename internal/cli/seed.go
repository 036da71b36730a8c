package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/aretw0/atelier/pkg/document"
	"github.com/aretw0/atelier/pkg/domain"
	"github.com/aretw0/atelier/pkg/ports"
)

// DocumentID derives the store ID of a document file from its base name.
func DocumentID(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// Seed reads each file and saves it under its DocumentID, after validating it
// with validate when non-nil. It returns the IDs in file order.
func Seed(ctx context.Context, store ports.DocumentStore, validate func(*domain.Document) error, paths ...string) ([]string, error) {
	ids := make([]string, 0, len(paths))
	for _, p := range paths {
		doc, err := document.ReadFile(p)
		if err != nil {
			return ids, err
		}
		if validate != nil {
			if err := validate(doc); err != nil {
				return ids, fmt.Errorf("%s: %w", filepath.Base(p), err)
			}
		}
		id := DocumentID(p)
		if err := store.Save(ctx, id, doc); err != nil {
			return ids, fmt.Errorf("failed to seed %s: %w", id, err)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

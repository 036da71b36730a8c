package document

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/aretw0/atelier/internal/compiler"
	"github.com/aretw0/atelier/internal/validator"
	"github.com/aretw0/atelier/pkg/domain"
	"github.com/aretw0/atelier/pkg/ports"
)

// Parse decodes a YAML or JSON design document.
func Parse(data []byte) (*domain.Document, error) {
	return compiler.NewParser().Parse(data)
}

// ReadFile reads a design document from disk.
func ReadFile(path string) (*domain.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	doc, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}

// Marshal encodes doc as JSON when format is "json" and as YAML otherwise.
func Marshal(doc *domain.Document, format string) ([]byte, error) {
	if doc == nil {
		return nil, domain.NilArgument("doc")
	}
	if strings.EqualFold(format, "json") {
		return json.MarshalIndent(doc, "", "  ")
	}
	return yaml.Marshal(doc)
}

// WriteFile writes doc to path, choosing the format by extension.
func WriteFile(path string, doc *domain.Document) error {
	format := "yaml"
	if strings.ToLower(filepath.Ext(path)) == ".json" {
		format = "json"
	}
	data, err := Marshal(doc, format)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// Validate checks doc. When types is non-nil every component type must resolve.
func Validate(doc *domain.Document, types ports.TypeResolutionService) error {
	return validator.ValidateDocument(doc, types)
}

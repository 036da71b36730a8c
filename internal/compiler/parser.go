package compiler

import (
	"bytes"
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/aretw0/atelier/pkg/domain"
)

// Parser is responsible for converting raw bytes into a Document.
type Parser struct{}

// NewParser creates a new parser instance.
func NewParser() *Parser {
	return &Parser{}
}

// Parse decodes a design document. Content starting with '{' is read as
// JSON, anything else as YAML.
func (p *Parser) Parse(data []byte) (*domain.Document, error) {
	var doc domain.Document
	if IsJSON(data) {
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("failed to parse document: %w", err)
		}
	} else if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse document: %w", err)
	}
	// Basic validation
	if doc.Root.Type == "" {
		return nil, fmt.Errorf("%w: document missing root type", domain.ErrInvalidDocument)
	}
	return &doc, nil
}

// IsJSON reports whether data looks like a JSON object.
func IsJSON(data []byte) bool {
	trimmed := bytes.TrimSpace(data)
	return len(trimmed) > 0 && trimmed[0] == '{'
}

// Package naming provides the default name-creation service of a design host.
package naming

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"unicode"

	"github.com/aretw0/atelier/pkg/domain"
	"github.com/aretw0/atelier/pkg/ports"
)

// Service names new components "<lowerCamelType><n>" using the first free ordinal.
type Service struct{}

func New() *Service {
	return &Service{}
}

// CreateName returns a name for a component of componentType that is free in
// container. A nil container yields ordinal 1.
func (s *Service) CreateName(container domain.Container, componentType reflect.Type) string {
	base := BaseName(componentType)
	for i := 1; ; i++ {
		name := base + strconv.Itoa(i)
		if container == nil {
			return name
		}
		if _, taken := container.Component(name); !taken {
			return name
		}
	}
}

// IsValidName reports whether name is an identifier: a letter or underscore
// followed by letters, digits or underscores.
func (s *Service) IsValidName(name string) bool {
	if name == "" {
		return false
	}
	for i, r := range name {
		switch {
		case r == '_', unicode.IsLetter(r):
		case i > 0 && unicode.IsDigit(r):
		default:
			return false
		}
	}
	return true
}

func (s *Service) ValidateName(name string) error {
	if !s.IsValidName(name) {
		return fmt.Errorf("%w: %q", domain.ErrInvalidName, name)
	}
	return nil
}

// BaseName derives the lowerCamel stem of generated names from a component type.
func BaseName(t reflect.Type) string {
	name := domain.TypeNameOf(t)
	if i := strings.LastIndex(name, "."); i >= 0 {
		name = name[i+1:]
	}
	if name == "" {
		return "component"
	}
	runes := []rune(name)
	for i := 0; i < len(runes) && unicode.IsUpper(runes[i]); i++ {
		if i > 0 && i+1 < len(runes) && unicode.IsLower(runes[i+1]) {
			break
		}
		runes[i] = unicode.ToLower(runes[i])
	}
	return string(runes)
}

var _ ports.NameCreationService = (*Service)(nil)

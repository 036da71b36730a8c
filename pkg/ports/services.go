package ports

import (
	"reflect"

	"github.com/aretw0/atelier/pkg/domain"
)

// DictionaryService is a per-site key/value store.
type DictionaryService interface {
	// GetKey returns the first key associated with value, or nil. A nil value never matches.
	GetKey(value any) any

	// GetValue returns the value stored under key. A nil key is an invalid argument.
	GetValue(key any) (any, error)

	// SetValue stores value under key. A nil value removes the association.
	SetValue(key, value any) error
}

// NameCreationService creates and validates component names.
type NameCreationService interface {
	// CreateName returns a unique name for a new component of the given type.
	// container is nil when the root component is being named.
	CreateName(container domain.Container, componentType reflect.Type) string
	IsValidName(name string) bool
	ValidateName(name string) error
}

// TypeResolutionService resolves component types by name.
type TypeResolutionService interface {
	GetType(name string) (reflect.Type, bool)
}

// ExtenderProviderService registers extender providers with a host.
type ExtenderProviderService interface {
	// AddExtenderProvider fails with an invalid argument on nil or duplicate providers.
	AddExtenderProvider(provider domain.ExtenderProvider) error

	// RemoveExtenderProvider is a no-op when the provider is not registered.
	RemoveExtenderProvider(provider domain.ExtenderProvider)
}

// ExtenderListService lists the registered extender providers.
type ExtenderListService interface {
	ExtenderProviders() []domain.ExtenderProvider
}

// TypeDescription is the design-time view of a component type.
type TypeDescription struct {
	TypeName   string   `json:"type_name"`
	Properties []string `json:"properties,omitempty"`
}

// TypeDescriptionProvider describes a component at design time.
type TypeDescriptionProvider interface {
	Describe(c domain.Component) TypeDescription
}

// TypeDescriptionProviderService hands out a provider per component.
type TypeDescriptionProviderService interface {
	ProviderFor(c domain.Component) TypeDescriptionProvider
}

package ports

import (
	"reflect"

	"github.com/aretw0/atelier/pkg/domain"
)

// Designer extends the design-time behaviour of a component.
type Designer interface {
	// Component returns the designed component once Initialize succeeded.
	Component() domain.Component

	// Initialize binds the designer to a freshly sited component.
	// Returning an error rolls the add back, except for domain.ErrCheckoutCanceled.
	Initialize(c domain.Component) error

	Dispose()
}

// RootDesigner is a designer able to own the whole design surface.
type RootDesigner interface {
	Designer

	// ViewTechnologies lists the view technologies the root designer supports.
	ViewTechnologies() []string
}

// DesignerProvider resolves designers and component types.
// It replaces attribute-driven designer discovery.
type DesignerProvider interface {
	// CreateDesigner returns a new designer for c, or nil when c has none.
	CreateDesigner(c domain.Component) Designer

	// Type resolves a registered component type by its qualified name.
	Type(name string) (reflect.Type, bool)
}

// ComponentFactory creates component instances for a type.
type ComponentFactory interface {
	NewComponent(componentType reflect.Type) (domain.Component, error)
}

package domain

import (
	"reflect"
)

// ServiceProvider resolves services by type.
// A nil result means the service is not available.
type ServiceProvider interface {
	GetService(serviceType reflect.Type) any
}

// Component is a unit of design-time state that can be sited in a Container.
type Component interface {
	Site() Site
	SetSite(site Site)
}

// Site binds a component to its container, its name and its services.
type Site interface {
	ServiceProvider

	// Component returns the sited component.
	Component() Component

	// Container returns the owning container, or nil once the component has been removed.
	Container() Container

	// DesignMode always reports true for sites created by a design host.
	DesignMode() bool

	// Name returns the site name. The empty string means "unnamed".
	Name() string

	// SetName renames the component. It fails when the name collides with a sibling.
	SetName(name string) error
}

// Container is an insertion-ordered collection of sited components.
type Container interface {
	// Add sites the component with a generated name.
	Add(c Component) error

	// AddNamed sites the component with the given name.
	AddNamed(c Component, name string) error

	// Remove unsites the component. Removing an unknown component is a no-op.
	Remove(c Component) error

	// Components returns a snapshot of the contained components in insertion order.
	Components() []Component

	// Component finds a component by site name, case-insensitively.
	Component(name string) (Component, bool)
}

// ComponentBase is an embeddable Component implementation.
type ComponentBase struct {
	site Site
}

// Site returns the current site, or nil.
func (b *ComponentBase) Site() Site {
	if b == nil {
		return nil
	}
	return b.site
}

// SetSite assigns the component's site.
func (b *ComponentBase) SetSite(site Site) {
	b.site = site
}

// NameOf returns the component's site name, or "" when it is not sited.
func NameOf(c Component) string {
	if c == nil {
		return ""
	}
	if site := c.Site(); site != nil {
		return site.Name()
	}
	return ""
}

// ExtenderProvider is implemented by components that contribute extender properties to others.
type ExtenderProvider interface {
	CanExtend(extendee any) bool
}

// InheritanceLevel describes whether a component was inherited from a base design.
type InheritanceLevel int

const (
	NotInherited InheritanceLevel = iota
	Inherited
	InheritedReadOnly
)

func (l InheritanceLevel) String() string {
	switch l {
	case Inherited:
		return "inherited"
	case InheritedReadOnly:
		return "inherited-readonly"
	default:
		return "not-inherited"
	}
}

// Inheritable is implemented by components that carry inheritance metadata.
type Inheritable interface {
	InheritanceLevel() InheritanceLevel
}

// ReflectionOnly is implemented by components whose type metadata is fixed to another
// target framework. Hosts do not install type-description providers for them.
type ReflectionOnly interface {
	ReflectionOnly() bool
}

// Disposable is implemented by components and services that release resources on teardown.
type Disposable interface {
	Dispose()
}

// TypeNamer lets a component report its own qualified type name.
type TypeNamer interface {
	ComponentType() string
}

// TypeName returns the qualified type name of a component ("pkg.Type").
func TypeName(c any) string {
	if c == nil {
		return ""
	}
	if n, ok := c.(TypeNamer); ok {
		return n.ComponentType()
	}
	return TypeNameOf(reflect.TypeOf(c))
}

// TypeNameOf returns the qualified name of t with pointer indirections removed.
func TypeNameOf(t reflect.Type) string {
	if t == nil {
		return ""
	}
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t.String()
}

// TypeFor returns the service key for T.
func TypeFor[T any]() reflect.Type {
	return reflect.TypeFor[T]()
}

// Lookup resolves a service of type T from the provider.
func Lookup[T any](p ServiceProvider) (T, bool) {
	var zero T
	if p == nil {
		return zero, false
	}
	svc, ok := p.GetService(reflect.TypeFor[T]()).(T)
	if !ok {
		return zero, false
	}
	return svc, true
}

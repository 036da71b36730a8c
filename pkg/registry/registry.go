package registry

import (
	"fmt"
	"reflect"
	"slices"
	"sync"

	"github.com/aretw0/atelier/pkg/domain"
	"github.com/aretw0/atelier/pkg/ports"
)

// DesignerFunc creates a fresh designer for a component.
type DesignerFunc func() ports.Designer

// Entry associates a component type with its designer.
type Entry struct {
	// Name is the qualified type name used by documents. Defaults to "pkg.Type".
	Name string
	// Type is the component type, a pointer to a struct implementing domain.Component.
	Type reflect.Type
	// Designer is optional; components without one are sited without a designer.
	Designer DesignerFunc
}

// Registry manages the available component types and their designers.
// It is safe for concurrent use.
type Registry struct {
	mu     sync.RWMutex
	byName map[string]*Entry
	byType map[reflect.Type]*Entry
}

// NewRegistry creates a new empty registry.
func NewRegistry() *Registry {
	return &Registry{
		byName: make(map[string]*Entry),
		byType: make(map[reflect.Type]*Entry),
	}
}

// Register adds a component type to the registry.
// If an entry with the same name or type exists, it is overwritten.
func (r *Registry) Register(e Entry) error {
	if e.Type == nil {
		return domain.NilArgument("type")
	}
	if e.Type.Kind() != reflect.Pointer || e.Type.Elem().Kind() != reflect.Struct {
		return &domain.ArgumentError{Param: "type", Reason: fmt.Sprintf("%s is not a pointer to a struct", e.Type)}
	}
	if !e.Type.Implements(reflect.TypeFor[domain.Component]()) {
		return &domain.ArgumentError{Param: "type", Reason: fmt.Sprintf("%s does not implement domain.Component", e.Type)}
	}
	if e.Name == "" {
		e.Name = domain.TypeNameOf(e.Type)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if old, ok := r.byType[e.Type]; ok {
		delete(r.byName, old.Name)
	}
	if old, ok := r.byName[e.Name]; ok {
		delete(r.byType, old.Type)
	}
	entry := e
	r.byName[e.Name] = &entry
	r.byType[e.Type] = &entry
	return nil
}

// Lookup returns the entry registered under name.
func (r *Registry) Lookup(name string) (Entry, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.byName[name]
	if !ok {
		return Entry{}, false
	}
	return *e, true
}

// Names returns the registered type names, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	names := make([]string, 0, len(r.byName))
	for name := range r.byName {
		names = append(names, name)
	}
	r.mu.RUnlock()
	slices.Sort(names)
	return names
}

// CreateDesigner returns a new designer for c, or nil when its type has none.
func (r *Registry) CreateDesigner(c domain.Component) ports.Designer {
	if c == nil {
		return nil
	}
	r.mu.RLock()
	e, ok := r.byType[reflect.TypeOf(c)]
	r.mu.RUnlock()
	if !ok || e.Designer == nil {
		return nil
	}
	return e.Designer()
}

// Type resolves a registered component type by name.
func (r *Registry) Type(name string) (reflect.Type, bool) {
	e, ok := r.Lookup(name)
	if !ok {
		return nil, false
	}
	return e.Type, true
}

// GetType makes the registry usable as a ports.TypeResolutionService.
func (r *Registry) GetType(name string) (reflect.Type, bool) {
	return r.Type(name)
}

// NewComponent instantiates a registered component type.
func (r *Registry) NewComponent(t reflect.Type) (domain.Component, error) {
	if t == nil {
		return nil, domain.NilArgument("componentType")
	}
	r.mu.RLock()
	_, ok := r.byType[t]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnknownType, domain.TypeNameOf(t))
	}
	return reflect.New(t.Elem()).Interface().(domain.Component), nil
}

// New instantiates the component type registered under name.
func (r *Registry) New(name string) (domain.Component, error) {
	t, ok := r.Type(name)
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnknownType, name)
	}
	return r.NewComponent(t)
}

var (
	_ ports.DesignerProvider      = (*Registry)(nil)
	_ ports.ComponentFactory      = (*Registry)(nil)
	_ ports.TypeResolutionService = (*Registry)(nil)
)

package design

import (
	"reflect"

	"github.com/aretw0/atelier/pkg/domain"
	"github.com/aretw0/atelier/pkg/ports"
)

// siteOwner is a container that creates sites: the host or a nested container.
type siteOwner interface {
	domain.Container
	domain.ServiceProvider

	clearsDictionaries() bool
	isDisposed() bool
}

// Site binds a component to its container. It is also the component's
// DictionaryService and a service container for site-local services.
type Site struct {
	component domain.Component
	owner     siteOwner
	host      *Host
	name      string

	dict     *dictionary
	services *ServiceContainer
	nested   *NestedContainer
	named    []*NestedContainer
}

func newSite(h *Host, owner siteOwner, c domain.Component, name string) *Site {
	return &Site{component: c, owner: owner, host: h, name: name}
}

func (s *Site) Component() domain.Component { return s.component }

// Container returns the owning container, or nil once the component was removed.
func (s *Site) Container() domain.Container {
	if s.owner == nil {
		return nil
	}
	return s.owner
}

func (s *Site) DesignMode() bool { return true }

func (s *Site) Name() string { return s.name }

// FullName returns the dotted name of the site. Sites of nested containers are
// prefixed with the owner's name and the container name.
func (s *Site) FullName() string {
	if s.name == "" {
		return ""
	}
	if n, ok := s.owner.(*NestedContainer); ok {
		return n.fullName(s.name)
	}
	return s.name
}

// SetName renames the component. Names are unique among siblings, ignoring case.
func (s *Site) SetName(name string) error {
	if s.owner == nil {
		return &domain.HostError{Op: "rename", Name: name, Err: domain.ErrInvalidOperation}
	}
	if s.host.disposed {
		return domain.ErrDisposed
	}
	if name == s.name {
		return nil
	}

	validate := true
	if name != "" {
		if other, ok := s.owner.Component(name); ok {
			if other != s.component {
				return &domain.HostError{Op: "rename", Name: name, Err: domain.ErrDuplicateName}
			}
			// case-only change of its own name
			validate = false
		}
	}
	if validate {
		if ns, ok := domain.Lookup[ports.NameCreationService](s.owner); ok {
			if err := ns.ValidateName(name); err != nil {
				return err
			}
		}
	}

	old := s.name
	s.name = name
	s.host.renamed(s, old, name)
	return nil
}

// GetService resolves, in order: the dictionary service, the default nested
// container, site-local services, services of the default nested container and
// finally the owning container.
func (s *Site) GetService(serviceType reflect.Type) any {
	switch serviceType {
	case nil:
		return nil
	case dictionaryServiceType:
		return s
	case nestedContainerType:
		if n := s.defaultNested(); n != nil {
			return n
		}
		return nil
	}
	if s.services != nil {
		if svc, ok := s.services.resolveLocal(serviceType); ok {
			return svc
		}
	}
	if s.nested != nil && serviceType != containerType && serviceType != serviceContainerType {
		if svc := s.nested.localService(serviceType); svc != nil {
			return svc
		}
	}
	if s.owner != nil {
		return s.owner.GetService(serviceType)
	}
	return s.host.GetService(serviceType)
}

// AddService registers a site-local service. Promoted services go to the host.
func (s *Site) AddService(serviceType reflect.Type, service any, promote bool) error {
	return s.serviceContainer().AddService(serviceType, service, promote)
}

func (s *Site) AddServiceFactory(serviceType reflect.Type, factory ports.ServiceFactory, promote bool) error {
	return s.serviceContainer().AddServiceFactory(serviceType, factory, promote)
}

func (s *Site) RemoveService(serviceType reflect.Type, promote bool) error {
	if s.services == nil && !promote {
		if serviceType == nil {
			return domain.NilArgument("serviceType")
		}
		return nil
	}
	return s.serviceContainer().RemoveService(serviceType, promote)
}

func (s *Site) serviceContainer() *ServiceContainer {
	if s.services == nil {
		s.services = NewServiceContainer(s.host)
		s.services.self = s
	}
	return s.services
}

// GetKey returns the first key associated with value. A nil value never matches.
func (s *Site) GetKey(value any) any {
	if value == nil {
		return nil
	}
	return s.dict.keyOf(value)
}

// GetValue returns the value stored under key, or nil.
func (s *Site) GetValue(key any) (any, error) {
	if err := checkKey(key); err != nil {
		return nil, err
	}
	v, _ := s.dict.get(key)
	return v, nil
}

// SetValue associates value with key. A nil value removes the key.
func (s *Site) SetValue(key, value any) error {
	if err := checkKey(key); err != nil {
		return err
	}
	if value == nil {
		s.dict.remove(key)
		return nil
	}
	if s.dict == nil {
		s.dict = &dictionary{values: make(map[any]any)}
	}
	s.dict.set(key, value)
	return nil
}

// CreateNestedContainer returns the nested container with the given name,
// creating it on first use. The empty name is the default nested container.
func (s *Site) CreateNestedContainer(name string) (*NestedContainer, error) {
	if s.host.disposed {
		return nil, domain.ErrDisposed
	}
	if s.owner == nil {
		return nil, &domain.HostError{Op: "create nested container", Name: name, Err: domain.ErrInvalidOperation}
	}
	if name == "" {
		return s.defaultNested(), nil
	}
	for _, n := range s.named {
		if n.name == name {
			return n, nil
		}
	}
	n := newNestedContainer(s.host, s.component, name)
	s.named = append(s.named, n)
	return n, nil
}

// NestedContainers returns the nested containers created for this site.
func (s *Site) NestedContainers() []*NestedContainer {
	var out []*NestedContainer
	if s.nested != nil {
		out = append(out, s.nested)
	}
	return append(out, s.named...)
}

func (s *Site) defaultNested() *NestedContainer {
	if s.nested == nil && s.owner != nil && !s.host.disposed {
		s.nested = newNestedContainer(s.host, s.component, "")
	}
	return s.nested
}

// detach releases what the site owns once its component left the container.
func (s *Site) detach(clearDictionary bool) {
	if clearDictionary {
		s.dict = nil
	}
	for _, n := range s.NestedContainers() {
		n.Dispose()
	}
	s.nested = nil
	s.named = nil
	s.owner = nil
}

var (
	_ domain.Site             = (*Site)(nil)
	_ ports.DictionaryService = (*Site)(nil)
	_ ports.ServiceContainer  = (*Site)(nil)
)

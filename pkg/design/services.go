package design

import (
	"reflect"

	"github.com/aretw0/atelier/pkg/domain"
	"github.com/aretw0/atelier/pkg/ports"
)

var (
	serviceContainerType   = reflect.TypeFor[ports.ServiceContainer]()
	containerType          = reflect.TypeFor[domain.Container]()
	designerHostType       = reflect.TypeFor[ports.DesignerHost]()
	changeServiceType      = reflect.TypeFor[ports.ComponentChangeService]()
	dictionaryServiceType  = reflect.TypeFor[ports.DictionaryService]()
	nestedContainerType    = reflect.TypeFor[ports.NestedContainer]()
	extenderProviderType   = reflect.TypeFor[ports.ExtenderProviderService]()
	extenderListType       = reflect.TypeFor[ports.ExtenderListService]()
	nameCreationType       = reflect.TypeFor[ports.NameCreationService]()
	typeResolutionType     = reflect.TypeFor[ports.TypeResolutionService]()
	typeDescriptionSvcType = reflect.TypeFor[ports.TypeDescriptionProviderService]()
)

// resolver is one step of a service lookup chain.
type resolver func(serviceType reflect.Type) (any, bool)

// ServiceContainer is a ports.ServiceContainer whose lookups walk an ordered
// chain: defaults, local services, the parent provider, fallbacks.
type ServiceContainer struct {
	self     ports.ServiceContainer
	parent   domain.ServiceProvider
	services map[reflect.Type]any

	defaults resolver
	fallback resolver

	promoteTarget   ports.ServiceContainer
	promoteResolved bool

	disposed bool
}

// NewServiceContainer creates a container that falls back to parent, which may be nil.
func NewServiceContainer(parent domain.ServiceProvider) *ServiceContainer {
	c := &ServiceContainer{
		parent:   parent,
		services: make(map[reflect.Type]any),
	}
	c.self = c
	return c
}

// GetService resolves a service, returning nil when it is unavailable or the container is disposed.
func (c *ServiceContainer) GetService(serviceType reflect.Type) any {
	if c.disposed || serviceType == nil {
		return nil
	}
	for _, r := range c.chain() {
		if svc, ok := r(serviceType); ok {
			return svc
		}
	}
	return nil
}

// Resolve is GetService with argument and disposal errors.
func (c *ServiceContainer) Resolve(serviceType reflect.Type) (any, error) {
	if c.disposed {
		return nil, domain.ErrDisposed
	}
	if serviceType == nil {
		return nil, domain.NilArgument("serviceType")
	}
	return c.GetService(serviceType), nil
}

func (c *ServiceContainer) AddService(serviceType reflect.Type, service any, promote bool) error {
	if c.disposed {
		return domain.ErrDisposed
	}
	if serviceType == nil {
		return domain.NilArgument("serviceType")
	}
	if service == nil {
		return domain.NilArgument("service")
	}
	if promote {
		if target := c.promotion(); target != nil {
			return target.AddService(serviceType, service, promote)
		}
	}
	if !reflect.TypeOf(service).AssignableTo(serviceType) {
		return &domain.HostError{Op: "add service", Name: serviceType.String(), Err: domain.ErrInvalidServiceInstance}
	}
	return c.store(serviceType, service)
}

func (c *ServiceContainer) AddServiceFactory(serviceType reflect.Type, factory ports.ServiceFactory, promote bool) error {
	if c.disposed {
		return domain.ErrDisposed
	}
	if serviceType == nil {
		return domain.NilArgument("serviceType")
	}
	if factory == nil {
		return domain.NilArgument("factory")
	}
	if promote {
		if target := c.promotion(); target != nil {
			return target.AddServiceFactory(serviceType, factory, promote)
		}
	}
	return c.store(serviceType, factory)
}

func (c *ServiceContainer) RemoveService(serviceType reflect.Type, promote bool) error {
	if c.disposed {
		return domain.ErrDisposed
	}
	if serviceType == nil {
		return domain.NilArgument("serviceType")
	}
	if promote {
		if target := c.promotion(); target != nil {
			return target.RemoveService(serviceType, promote)
		}
	}
	delete(c.services, serviceType)
	return nil
}

// Dispose disposes every instantiated Disposable service and rejects further use.
func (c *ServiceContainer) Dispose() {
	if c.disposed {
		return
	}
	c.disposed = true
	services := c.services
	c.services = nil
	for _, svc := range services {
		if _, isFactory := svc.(ports.ServiceFactory); isFactory {
			continue
		}
		if d, ok := svc.(domain.Disposable); ok && any(d) != any(c.self) {
			d.Dispose()
		}
	}
}

func (c *ServiceContainer) store(serviceType reflect.Type, service any) error {
	if _, exists := c.services[serviceType]; exists {
		return &domain.HostError{Op: "add service", Name: serviceType.String(), Err: domain.ErrServiceExists}
	}
	c.services[serviceType] = service
	return nil
}

func (c *ServiceContainer) chain() []resolver {
	steps := make([]resolver, 0, 5)
	if c.defaults != nil {
		steps = append(steps, c.defaults)
	}
	steps = append(steps, c.resolveSelf, c.resolveLocal, c.resolveParent)
	if c.fallback != nil {
		steps = append(steps, c.fallback)
	}
	return steps
}

func (c *ServiceContainer) resolveSelf(serviceType reflect.Type) (any, bool) {
	if serviceType == serviceContainerType {
		return c.self, true
	}
	return nil, false
}

// resolveLocal looks up services added to this container, instantiating factories on first use.
func (c *ServiceContainer) resolveLocal(serviceType reflect.Type) (any, bool) {
	svc, ok := c.services[serviceType]
	if !ok {
		return nil, false
	}
	factory, isFactory := svc.(ports.ServiceFactory)
	if !isFactory {
		return svc, true
	}
	created := factory(c.self, serviceType)
	if created == nil || !reflect.TypeOf(created).AssignableTo(serviceType) {
		delete(c.services, serviceType)
		return nil, false
	}
	if c.services != nil {
		c.services[serviceType] = created
	}
	return created, true
}

func (c *ServiceContainer) resolveParent(serviceType reflect.Type) (any, bool) {
	if c.parent == nil {
		return nil, false
	}
	svc := c.parent.GetService(serviceType)
	return svc, svc != nil
}

// promotion resolves, once, the container that promoted services are added to.
func (c *ServiceContainer) promotion() ports.ServiceContainer {
	if !c.promoteResolved {
		c.promoteResolved = true
		if c.parent != nil {
			if target, ok := c.parent.GetService(serviceContainerType).(ports.ServiceContainer); ok && target != c.self {
				c.promoteTarget = target
			}
		}
	}
	return c.promoteTarget
}

package ports

import (
	"reflect"

	"github.com/aretw0/atelier/pkg/domain"
)

// ServiceFactory lazily creates a service the first time it is requested.
// A result that is not assignable to serviceType is discarded.
type ServiceFactory func(container ServiceContainer, serviceType reflect.Type) any

// ServiceContainer is a service provider that services can be added to and removed from.
type ServiceContainer interface {
	domain.ServiceProvider

	// AddService registers a service instance. With promote set, the service is
	// registered on the parent service container instead, when there is one.
	AddService(serviceType reflect.Type, service any, promote bool) error

	// AddServiceFactory registers a lazily created service.
	AddServiceFactory(serviceType reflect.Type, factory ServiceFactory, promote bool) error

	// RemoveService removes a service. Removing an unknown service is a no-op.
	RemoveService(serviceType reflect.Type, promote bool) error
}

// ComponentChangeService broadcasts component change notifications.
type ComponentChangeService interface {
	// Subscribe registers hooks and returns a function that unregisters them.
	Subscribe(hooks domain.ChangeHooks) (cancel func())

	// OnComponentChanging announces that a member of component is about to change.
	OnComponentChanging(component any, member string)

	// OnComponentChanged announces that a member of component changed.
	OnComponentChanged(component any, member string, oldValue, newValue any)
}

// Transaction is an undo-batching scope. Transactions close in strict LIFO order.
type Transaction interface {
	Description() string
	Commit() error
	Cancel() error
	Committed() bool
	Canceled() bool
}

// DesignerHost is the top-level design-time container.
type DesignerHost interface {
	domain.Container
	ServiceContainer
	ComponentChangeService

	RootComponent() domain.Component
	RootComponentClassName() string
	Loading() bool
	InTransaction() bool
	TransactionDescription() string

	CreateTransaction(description string) (Transaction, error)
	CreateComponent(componentType reflect.Type, name string) (domain.Component, error)
	GetDesigner(c domain.Component) Designer
	GetType(typeName string) (reflect.Type, bool)

	// SubscribeHost registers host lifecycle hooks.
	SubscribeHost(hooks domain.HostHooks) (cancel func())
}

// NestedContainer is a container scoped to an owning component.
type NestedContainer interface {
	domain.Container

	Owner() domain.Component
	ContainerName() string
}

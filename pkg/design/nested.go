package design

import (
	"reflect"

	"github.com/aretw0/atelier/pkg/domain"
	"github.com/aretw0/atelier/pkg/ports"
)

// NestedContainer holds components owned by another component. It never elects
// a root of its own and keeps the dictionaries of removed sites.
type NestedContainer struct {
	host     *Host
	owner    domain.Component
	name     string
	sites    []*Site
	services *ServiceContainer
	disposed bool
}

func newNestedContainer(h *Host, owner domain.Component, name string) *NestedContainer {
	return &NestedContainer{host: h, owner: owner, name: name}
}

// Owner returns the component that owns the container.
func (n *NestedContainer) Owner() domain.Component { return n.owner }

// ContainerName returns the container name; the default nested container has none.
func (n *NestedContainer) ContainerName() string { return n.name }

func (n *NestedContainer) Add(c domain.Component) error {
	return n.host.add(n, &n.sites, c, "")
}

func (n *NestedContainer) AddNamed(c domain.Component, name string) error {
	return n.host.add(n, &n.sites, c, name)
}

func (n *NestedContainer) Remove(c domain.Component) error {
	return n.host.remove(n, &n.sites, c)
}

func (n *NestedContainer) Components() []domain.Component {
	return componentsOf(n.sites)
}

func (n *NestedContainer) Component(name string) (domain.Component, bool) {
	return findComponent(n.sites, name)
}

// GetService answers for the container itself and its own service container,
// then defers to the host.
func (n *NestedContainer) GetService(serviceType reflect.Type) any {
	switch serviceType {
	case nil:
		return nil
	case containerType, nestedContainerType:
		return n
	case serviceContainerType:
		if sc := n.serviceContainer(); sc != nil {
			return sc
		}
		return nil
	}
	if svc := n.localService(serviceType); svc != nil {
		return svc
	}
	return n.host.GetService(serviceType)
}

// Dispose removes every component, disposing the disposable ones.
func (n *NestedContainer) Dispose() {
	if n.disposed {
		return
	}
	comps := n.Components()
	for i := len(comps) - 1; i >= 0; i-- {
		c := comps[i]
		if err := n.Remove(c); err != nil {
			n.host.logger.Debug("failed to remove nested component", "container", n.name, "error", err)
		}
		if d, ok := c.(domain.Disposable); ok {
			d.Dispose()
		}
	}
	n.disposed = true
	if n.services != nil {
		n.services.Dispose()
	}
}

func (n *NestedContainer) localService(serviceType reflect.Type) any {
	if n.services == nil {
		return nil
	}
	svc, _ := n.services.resolveLocal(serviceType)
	return svc
}

func (n *NestedContainer) serviceContainer() *ServiceContainer {
	if n.disposed {
		return nil
	}
	if n.services == nil {
		n.services = NewServiceContainer(n.host)
	}
	return n.services
}

// ownerName returns the prefix for the full names of this container's sites.
// The second result is false when there is no prefix at all.
func (n *NestedContainer) ownerName() (string, bool) {
	var name string
	sited := false
	if n.owner != nil {
		if site := n.owner.Site(); site != nil {
			sited = true
			if s, ok := site.(*Site); ok {
				name = s.FullName()
			} else {
				name = site.Name()
			}
		}
	}
	if n.name != "" {
		return name + "." + n.name, true
	}
	return name, sited
}

func (n *NestedContainer) fullName(name string) string {
	prefix, ok := n.ownerName()
	if !ok {
		return name
	}
	return prefix + "." + name
}

func (n *NestedContainer) clearsDictionaries() bool { return false }

func (n *NestedContainer) isDisposed() bool { return n.disposed }

var _ ports.NestedContainer = (*NestedContainer)(nil)

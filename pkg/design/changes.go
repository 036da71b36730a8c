package design

import (
	"github.com/aretw0/atelier/pkg/domain"
)

// Subscribe registers component change hooks and returns a function that removes them.
func (h *Host) Subscribe(hooks domain.ChangeHooks) (cancel func()) {
	return h.changes.add(hooks)
}

// SubscribeHost registers transaction, load and activation hooks.
func (h *Host) SubscribeHost(hooks domain.HostHooks) (cancel func()) {
	return h.hostHooks.add(hooks)
}

// OnComponentChanging announces that member of component is about to change.
// Nothing is raised while the host is loading.
func (h *Host) OnComponentChanging(component any, member string) {
	if h.loading {
		return
	}
	e := &domain.ComponentChangingEvent{Component: component, Member: member}
	for _, hooks := range h.changes.snapshot() {
		if hooks.OnComponentChanging != nil {
			hooks.OnComponentChanging(e)
		}
	}
}

// OnComponentChanged announces that member of component changed.
// Nothing is raised while the host is loading.
func (h *Host) OnComponentChanged(component any, member string, oldValue, newValue any) {
	if h.loading {
		return
	}
	e := &domain.ComponentChangedEvent{Component: component, Member: member, OldValue: oldValue, NewValue: newValue}
	for _, hooks := range h.changes.snapshot() {
		if hooks.OnComponentChanged != nil {
			hooks.OnComponentChanged(e)
		}
	}
}

func (h *Host) fireComponent(t domain.EventType, c domain.Component, owner domain.Container) {
	e := &domain.ComponentEvent{Type: t, Component: c, Container: owner}
	for _, hooks := range h.changes.snapshot() {
		var fn func(*domain.ComponentEvent)
		switch t {
		case domain.EventComponentAdding:
			fn = hooks.OnComponentAdding
		case domain.EventComponentAdded:
			fn = hooks.OnComponentAdded
		case domain.EventComponentRemoving:
			fn = hooks.OnComponentRemoving
		case domain.EventComponentRemoved:
			fn = hooks.OnComponentRemoved
		}
		if fn != nil {
			fn(e)
		}
	}
}

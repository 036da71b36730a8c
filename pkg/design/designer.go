package design

import (
	"reflect"

	"github.com/aretw0/atelier/pkg/actions"
	"github.com/aretw0/atelier/pkg/domain"
	"github.com/aretw0/atelier/pkg/ports"
)

// ComponentDesigner is the base designer. Embed it and add verbs or action
// lists after calling Initialize.
type ComponentDesigner struct {
	component domain.Component
	verbs     []*actions.Verb
	lists     []actions.List
	published *commandSet
}

func (d *ComponentDesigner) Component() domain.Component {
	return d.component
}

// Initialize binds the designer to c and publishes its commands on the
// component's site, unless a command set is already reachable from there.
func (d *ComponentDesigner) Initialize(c domain.Component) error {
	if c == nil {
		return domain.NilArgument("component")
	}
	d.component = c
	site := c.Site()
	sc, ok := site.(ports.ServiceContainer)
	if !ok || site.GetService(actions.CommandSetType) != nil {
		return nil
	}
	cs := &commandSet{designer: d}
	if err := sc.AddService(actions.CommandSetType, cs, false); err != nil {
		return err
	}
	d.published = cs
	return nil
}

// InitializeNewComponent applies default property values to a freshly created component.
func (d *ComponentDesigner) InitializeNewComponent(defaults map[string]any) error {
	if d.component == nil {
		return &domain.HostError{Op: "initialize new component", Err: domain.ErrInvalidOperation}
	}
	return ApplyProperties(d.component, defaults)
}

// AddVerb appends verbs to the designer's verb menu. Nil verbs are ignored.
func (d *ComponentDesigner) AddVerb(verbs ...*actions.Verb) {
	for _, v := range verbs {
		if v != nil {
			d.verbs = append(d.verbs, v)
		}
	}
}

// Verbs returns the designer verbs followed by the items of its action lists
// that are flagged to appear as verbs.
func (d *ComponentDesigner) Verbs() []*actions.Verb {
	out := make([]*actions.Verb, 0, len(d.verbs))
	out = append(out, d.verbs...)
	for _, l := range d.lists {
		for _, it := range l.SortedItems() {
			if m, ok := it.(*actions.MethodItem); ok && m.IncludeAsVerb {
				v := actions.NewVerb(m.Text, m.Invoke)
				v.Description = m.Desc
				v.Category = m.Cat
				out = append(out, v)
			}
		}
	}
	return out
}

// AddActionList appends smart-tag lists. Nil lists are ignored.
func (d *ComponentDesigner) AddActionList(lists ...actions.List) {
	for _, l := range lists {
		if l != nil {
			d.lists = append(d.lists, l)
		}
	}
}

func (d *ComponentDesigner) ActionLists() []actions.List {
	out := make([]actions.List, len(d.lists))
	copy(out, d.lists)
	return out
}

// AssociatedComponents returns the components of the nested containers owned by the designed component.
func (d *ComponentDesigner) AssociatedComponents() []domain.Component {
	if d.component == nil {
		return nil
	}
	site, ok := d.component.Site().(*Site)
	if !ok {
		return nil
	}
	var out []domain.Component
	for _, n := range site.NestedContainers() {
		out = append(out, n.Components()...)
	}
	return out
}

// GetService resolves a service from the component's site.
func (d *ComponentDesigner) GetService(serviceType reflect.Type) any {
	if d.component == nil {
		return nil
	}
	site := d.component.Site()
	if site == nil {
		return nil
	}
	return site.GetService(serviceType)
}

// RaiseComponentChanging announces a change of member through the change service.
func (d *ComponentDesigner) RaiseComponentChanging(member string) {
	if cs, ok := domain.Lookup[ports.ComponentChangeService](d); ok {
		cs.OnComponentChanging(d.component, member)
	}
}

// RaiseComponentChanged reports a change of member through the change service.
func (d *ComponentDesigner) RaiseComponentChanged(member string, oldValue, newValue any) {
	if cs, ok := domain.Lookup[ports.ComponentChangeService](d); ok {
		cs.OnComponentChanged(d.component, member, oldValue, newValue)
	}
}

// Dispose withdraws the published command set and releases the component.
func (d *ComponentDesigner) Dispose() {
	if d.published != nil && d.component != nil {
		if sc, ok := d.component.Site().(ports.ServiceContainer); ok {
			if cs, _ := sc.GetService(actions.CommandSetType).(*commandSet); cs == d.published {
				_ = sc.RemoveService(actions.CommandSetType, false)
			}
		}
	}
	d.published = nil
	d.component = nil
}

// RootComponentDesigner is a designer able to own a design surface.
type RootComponentDesigner struct {
	ComponentDesigner

	Technologies []string
}

// ViewTechnologies returns the supported view technologies, "Default" when none are set.
func (d *RootComponentDesigner) ViewTechnologies() []string {
	if len(d.Technologies) == 0 {
		return []string{"Default"}
	}
	out := make([]string, len(d.Technologies))
	copy(out, d.Technologies)
	return out
}

// commandSet publishes a designer's verbs and action lists.
type commandSet struct {
	designer *ComponentDesigner
}

func (cs *commandSet) GetCommands(name string) []any {
	switch name {
	case actions.CommandVerbs:
		verbs := cs.designer.Verbs()
		out := make([]any, len(verbs))
		for i, v := range verbs {
			out[i] = v
		}
		return out
	case actions.CommandActionLists:
		out := make([]any, len(cs.designer.lists))
		for i, l := range cs.designer.lists {
			out[i] = l
		}
		return out
	}
	return nil
}

var (
	_ ports.Designer     = (*ComponentDesigner)(nil)
	_ ports.RootDesigner = (*RootComponentDesigner)(nil)
	_ actions.CommandSet = (*commandSet)(nil)
)

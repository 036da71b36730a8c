package actions

import (
	"reflect"

	"github.com/aretw0/atelier/pkg/domain"
)

// List is an ordered set of smart-tag items for one component.
type List interface {
	// Component returns the component the list acts on.
	Component() domain.Component

	// SortedItems returns the items to display, in display order.
	SortedItems() []Item
}

// Item is one entry of an action list.
type Item interface {
	DisplayName() string
	Category() string
	Description() string
}

// Invoker is implemented by items that run an action.
type Invoker interface {
	Invoke() error
}

// BaseList is a List backed by a fixed set of items. Embed it to build custom lists.
type BaseList struct {
	component domain.Component
	items     []Item

	// AutoShow asks the UI to open the smart tag when the component is created.
	AutoShow bool
}

// NewList creates a list for component c. Nil items are dropped.
func NewList(c domain.Component, items ...Item) *BaseList {
	l := &BaseList{component: c}
	for _, it := range items {
		l.AddItem(it)
	}
	return l
}

func (l *BaseList) Component() domain.Component {
	return l.component
}

// AddItem appends an item. Nil items are ignored.
func (l *BaseList) AddItem(it Item) {
	if isNil(it) {
		return
	}
	l.items = append(l.items, it)
}

func (l *BaseList) SortedItems() []Item {
	out := make([]Item, len(l.items))
	copy(out, l.items)
	return out
}

// MethodItem invokes a function when selected.
type MethodItem struct {
	Name string
	Text string
	Cat  string
	Desc string
	Run  func() error

	// IncludeAsVerb also surfaces the item in the designer's verb menu.
	IncludeAsVerb bool
}

func (m *MethodItem) DisplayName() string { return m.Text }
func (m *MethodItem) Category() string    { return m.Cat }
func (m *MethodItem) Description() string { return m.Desc }

// Invoke runs the item's function.
func (m *MethodItem) Invoke() error {
	if m.Run == nil {
		return nil
	}
	return m.Run()
}

// PropertyItem surfaces a component property in the smart tag.
type PropertyItem struct {
	Member string
	Text   string
	Cat    string
	Desc   string
}

func (p *PropertyItem) DisplayName() string { return p.Text }
func (p *PropertyItem) Category() string    { return p.Cat }
func (p *PropertyItem) Description() string { return p.Desc }

// HeaderItem groups the items that follow it.
type HeaderItem struct {
	Text string
	Cat  string
}

func (h *HeaderItem) DisplayName() string { return h.Text }
func (h *HeaderItem) Category() string    { return h.Cat }
func (h *HeaderItem) Description() string { return "" }

// isNil reports whether v is nil or a typed nil pointer.
func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func:
		return rv.IsNil()
	}
	return false
}

// sameList compares lists by identity.
func sameList(a, b List) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if reflect.TypeOf(a) != reflect.TypeOf(b) || !reflect.TypeOf(a).Comparable() {
		return false
	}
	return a == b
}

package http

import (
	"strings"

	"github.com/aretw0/atelier/pkg/actions"
	"github.com/aretw0/atelier/pkg/design"
	"github.com/aretw0/atelier/pkg/domain"
)

// ComponentView is the JSON form of a sited component.
type ComponentView struct {
	Name       string         `json:"name"`
	FullName   string         `json:"full_name"`
	Type       string         `json:"type"`
	Depth      int            `json:"depth"`
	Root       bool           `json:"root,omitempty"`
	Container  string         `json:"container,omitempty"`
	Properties map[string]any `json:"properties,omitempty"`
}

// ActionListView is the JSON form of an action list.
type ActionListView struct {
	Items []ActionItemView `json:"items"`
}

// ActionItemView is the JSON form of an action item.
type ActionItemView struct {
	Name        string `json:"name"`
	Kind        string `json:"kind"`
	Category    string `json:"category,omitempty"`
	Description string `json:"description,omitempty"`
	Invokable   bool   `json:"invokable"`
}

// InvokeRequest names the action item to run.
type InvokeRequest struct {
	Item string `json:"item"`
}

// RenameRequest carries the new component name.
type RenameRequest struct {
	Name string `json:"name"`
}

func componentViews(h *design.Host) ([]ComponentView, error) {
	views := []ComponentView{}
	var err error
	h.Walk(func(s *design.Site, depth int) bool {
		var v ComponentView
		v, err = componentView(h, s.Component(), depth)
		if err != nil {
			return false
		}
		views = append(views, v)
		return true
	})
	return views, err
}

func componentView(h *design.Host, c domain.Component, depth int) (ComponentView, error) {
	props, err := design.Properties(c)
	if err != nil {
		return ComponentView{}, err
	}
	v := ComponentView{
		Name:       domain.NameOf(c),
		Type:       domain.TypeName(c),
		Depth:      depth,
		Root:       c == h.RootComponent(),
		Properties: props,
	}
	if s, ok := c.Site().(*design.Site); ok {
		v.FullName = s.FullName()
		if n, ok := s.Container().(*design.NestedContainer); ok {
			v.Container = n.ContainerName()
		}
	}
	return v, nil
}

func actionViews(lists []actions.List) []ActionListView {
	views := make([]ActionListView, 0, len(lists))
	for _, l := range lists {
		items := l.SortedItems()
		view := ActionListView{Items: make([]ActionItemView, 0, len(items))}
		for _, it := range items {
			_, invokable := it.(actions.Invoker)
			view.Items = append(view.Items, ActionItemView{
				Name:        it.DisplayName(),
				Kind:        kindOf(it),
				Category:    it.Category(),
				Description: it.Description(),
				Invokable:   invokable,
			})
		}
		views = append(views, view)
	}
	return views
}

func kindOf(it actions.Item) string {
	switch it.(type) {
	case *actions.MethodItem:
		return "method"
	case *actions.VerbItem:
		return "verb"
	case *actions.PropertyItem:
		return "property"
	case *actions.HeaderItem:
		return "header"
	default:
		return "item"
	}
}

func findInvoker(lists []actions.List, name string) (actions.Invoker, bool) {
	for _, l := range lists {
		for _, it := range l.SortedItems() {
			inv, ok := it.(actions.Invoker)
			if ok && strings.EqualFold(it.DisplayName(), name) {
				return inv, true
			}
		}
	}
	return nil, false
}

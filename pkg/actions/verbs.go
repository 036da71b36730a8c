package actions

import (
	"github.com/aretw0/atelier/pkg/domain"
)

// Verb is a designer command offered for a component.
// Its flags are read each time a VerbList is queried.
type Verb struct {
	Text        string
	Description string
	Category    string

	Enabled   bool
	Visible   bool
	Supported bool

	Handler func() error
}

// NewVerb returns an enabled, visible and supported verb.
func NewVerb(text string, handler func() error) *Verb {
	return &Verb{
		Text:      text,
		Enabled:   true,
		Visible:   true,
		Supported: true,
		Handler:   handler,
	}
}

// Available reports whether the verb is enabled, visible and supported.
func (v *Verb) Available() bool {
	return v.Enabled && v.Visible && v.Supported
}

// Invoke runs the verb handler.
func (v *Verb) Invoke() error {
	if v.Handler == nil {
		return nil
	}
	return v.Handler()
}

// VerbList adapts a set of verbs to the List interface.
type VerbList struct {
	component domain.Component
	verbs     []*Verb
}

// NewVerbList wraps verbs for component c. Nil verbs are dropped.
func NewVerbList(c domain.Component, verbs ...*Verb) *VerbList {
	l := &VerbList{component: c}
	for _, v := range verbs {
		if v != nil {
			l.verbs = append(l.verbs, v)
		}
	}
	return l
}

func (l *VerbList) Component() domain.Component {
	return l.component
}

// Verbs returns every wrapped verb, available or not.
func (l *VerbList) Verbs() []*Verb {
	out := make([]*Verb, len(l.verbs))
	copy(out, l.verbs)
	return out
}

// SortedItems returns one VerbItem per currently available verb.
func (l *VerbList) SortedItems() []Item {
	var items []Item
	for _, v := range l.verbs {
		if v.Available() {
			items = append(items, &VerbItem{Verb: v})
		}
	}
	return items
}

// VerbItem is a method-invocation item that runs a verb.
type VerbItem struct {
	Verb *Verb
}

func (i *VerbItem) DisplayName() string { return i.Verb.Text }
func (i *VerbItem) Category() string    { return i.Verb.Category }
func (i *VerbItem) Description() string { return i.Verb.Description }

func (i *VerbItem) Invoke() error {
	return i.Verb.Invoke()
}

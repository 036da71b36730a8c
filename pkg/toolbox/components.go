package toolbox

import (
	"github.com/aretw0/atelier/pkg/domain"
)

// Form is the root component of a window design.
type Form struct {
	domain.ComponentBase
	Text   string `design:"text"`
	Width  int    `design:"width"`
	Height int    `design:"height"`
}

// Panel groups controls. Its children live in nested containers of its site.
type Panel struct {
	domain.ComponentBase
	Text string `design:"text"`
	Dock string `design:"dock"`
}

type Button struct {
	domain.ComponentBase
	Text    string `design:"text"`
	Enabled bool   `design:"enabled"`
}

type Label struct {
	domain.ComponentBase
	Text string `design:"text"`
}

// Timer is a non-visual component.
type Timer struct {
	domain.ComponentBase
	Interval int  `design:"interval"`
	Enabled  bool `design:"enabled"`
}

// ToolTip extends controls with a tip text, keyed by the control's site name.
type ToolTip struct {
	domain.ComponentBase
	Active bool              `design:"active"`
	Tips   map[string]string `design:"tips"`
}

// CanExtend reports whether target is a control that can carry a tip.
func (t *ToolTip) CanExtend(target any) bool {
	switch target.(type) {
	case *Button, *Label, *Panel:
		return true
	}
	return false
}

// SetToolTip sets the tip of c. An empty text removes it.
func (t *ToolTip) SetToolTip(c domain.Component, text string) {
	name := domain.NameOf(c)
	if name == "" {
		return
	}
	if text == "" {
		delete(t.Tips, name)
		return
	}
	if t.Tips == nil {
		t.Tips = make(map[string]string)
	}
	t.Tips[name] = text
}

// ToolTipOf returns the tip of c.
func (t *ToolTip) ToolTipOf(c domain.Component) string {
	return t.Tips[domain.NameOf(c)]
}

func (t *ToolTip) rekey(oldName, newName string) {
	text, ok := t.Tips[oldName]
	if !ok {
		return
	}
	delete(t.Tips, oldName)
	if newName != "" {
		t.Tips[newName] = text
	}
}

var _ domain.ExtenderProvider = (*ToolTip)(nil)

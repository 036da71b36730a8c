package toolbox

import (
	"maps"

	"github.com/aretw0/atelier/pkg/actions"
	"github.com/aretw0/atelier/pkg/design"
	"github.com/aretw0/atelier/pkg/domain"
	"github.com/aretw0/atelier/pkg/ports"
)

// FormDesigner is the root designer of a Form.
type FormDesigner struct {
	design.RootComponentDesigner
}

// InitializeNewComponent defaults the caption to the site name.
func (d *FormDesigner) InitializeNewComponent(defaults map[string]any) error {
	return d.RootComponentDesigner.InitializeNewComponent(withText(d.Component(), defaults))
}

// PanelDesigner offers a docking smart tag.
type PanelDesigner struct {
	design.ComponentDesigner
}

func (d *PanelDesigner) Initialize(c domain.Component) error {
	panel, ok := c.(*Panel)
	if !ok {
		return &domain.ArgumentError{Param: "component", Reason: "not a *toolbox.Panel"}
	}
	if err := d.ComponentDesigner.Initialize(c); err != nil {
		return err
	}
	d.AddActionList(actions.NewList(c,
		&actions.HeaderItem{Text: "Layout", Cat: "Layout"},
		&actions.MethodItem{
			Name:          "dock",
			Text:          "Dock in parent container",
			Cat:           "Layout",
			IncludeAsVerb: true,
			Run:           func() error { return d.toggleDock(panel) },
		},
	))
	return nil
}

func (d *PanelDesigner) toggleDock(p *Panel) error {
	next := "fill"
	if p.Dock == "fill" {
		next = "none"
	}
	d.RaiseComponentChanging("dock")
	old := p.Dock
	p.Dock = next
	d.RaiseComponentChanged("dock", old, next)
	return nil
}

// ButtonDesigner defaults the button caption to its name.
type ButtonDesigner struct {
	design.ComponentDesigner
}

func (d *ButtonDesigner) InitializeNewComponent(defaults map[string]any) error {
	defaults = withText(d.Component(), defaults)
	if _, ok := defaults["enabled"]; !ok {
		defaults["enabled"] = true
	}
	return d.ComponentDesigner.InitializeNewComponent(defaults)
}

// LabelDesigner defaults the label caption to its name.
type LabelDesigner struct {
	design.ComponentDesigner
}

func (d *LabelDesigner) InitializeNewComponent(defaults map[string]any) error {
	return d.ComponentDesigner.InitializeNewComponent(withText(d.Component(), defaults))
}

// TimerDesigner offers Start and Stop verbs.
type TimerDesigner struct {
	design.ComponentDesigner
	start *actions.Verb
	stop  *actions.Verb
}

func (d *TimerDesigner) Initialize(c domain.Component) error {
	timer, ok := c.(*Timer)
	if !ok {
		return &domain.ArgumentError{Param: "component", Reason: "not a *toolbox.Timer"}
	}
	if err := d.ComponentDesigner.Initialize(c); err != nil {
		return err
	}
	d.start = actions.NewVerb("Start", func() error { return d.setEnabled(timer, true) })
	d.stop = actions.NewVerb("Stop", func() error { return d.setEnabled(timer, false) })
	d.AddVerb(d.start, d.stop)
	d.sync(timer)
	return nil
}

func (d *TimerDesigner) setEnabled(t *Timer, enabled bool) error {
	if t.Enabled == enabled {
		return nil
	}
	d.RaiseComponentChanging("enabled")
	t.Enabled = enabled
	d.RaiseComponentChanged("enabled", !enabled, enabled)
	d.sync(t)
	return nil
}

func (d *TimerDesigner) sync(t *Timer) {
	d.start.Enabled = !t.Enabled
	d.stop.Enabled = t.Enabled
}

// ToolTipDesigner keeps tips attached to their controls across renames and removals.
type ToolTipDesigner struct {
	design.ComponentDesigner
	cancel func()
}

func (d *ToolTipDesigner) Initialize(c domain.Component) error {
	tip, ok := c.(*ToolTip)
	if !ok {
		return &domain.ArgumentError{Param: "component", Reason: "not a *toolbox.ToolTip"}
	}
	if err := d.ComponentDesigner.Initialize(c); err != nil {
		return err
	}
	changes, ok := domain.Lookup[ports.ComponentChangeService](d)
	if !ok {
		return nil
	}
	d.cancel = changes.Subscribe(domain.ChangeHooks{
		OnComponentRename: func(e *domain.ComponentRenameEvent) {
			tip.rekey(e.OldName, e.NewName)
		},
		OnComponentRemoving: func(e *domain.ComponentEvent) {
			if e.Component != domain.Component(tip) {
				tip.SetToolTip(e.Component, "")
			}
		},
	})
	return nil
}

func (d *ToolTipDesigner) Dispose() {
	if d.cancel != nil {
		d.cancel()
		d.cancel = nil
	}
	d.ComponentDesigner.Dispose()
}

// withText returns defaults with "text" set to the component name when absent.
func withText(c domain.Component, defaults map[string]any) map[string]any {
	out := make(map[string]any, len(defaults)+1)
	maps.Copy(out, defaults)
	if _, ok := out["text"]; !ok {
		if name := domain.NameOf(c); name != "" {
			out["text"] = name
		}
	}
	return out
}

var (
	_ ports.RootDesigner = (*FormDesigner)(nil)
	_ ports.Designer     = (*PanelDesigner)(nil)
	_ ports.Designer     = (*TimerDesigner)(nil)
	_ ports.Designer     = (*ToolTipDesigner)(nil)
)

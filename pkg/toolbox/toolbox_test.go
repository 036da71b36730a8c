package toolbox_test

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/atelier/pkg/actions"
	"github.com/aretw0/atelier/pkg/design"
	"github.com/aretw0/atelier/pkg/domain"
	"github.com/aretw0/atelier/pkg/naming"
	"github.com/aretw0/atelier/pkg/ports"
	"github.com/aretw0/atelier/pkg/registry"
	"github.com/aretw0/atelier/pkg/toolbox"
)

func newSurface(t *testing.T) *design.Surface {
	t.Helper()
	r := registry.NewRegistry()
	require.NoError(t, toolbox.Register(r))
	s, err := design.NewSurface(
		design.WithDesigners(r),
		design.WithFallbackService(reflect.TypeFor[ports.NameCreationService](), ports.NameCreationService(naming.New())),
		design.WithFallbackService(reflect.TypeFor[ports.TypeDescriptionProviderService](), ports.TypeDescriptionProviderService(toolbox.Descriptions{})),
	)
	require.NoError(t, err)
	return s
}

func create[T domain.Component](t *testing.T, h *design.Host, name string) T {
	t.Helper()
	c, err := h.CreateComponent(reflect.TypeFor[T](), name)
	require.NoError(t, err)
	return c.(T)
}

func TestRegister(t *testing.T) {
	r := registry.NewRegistry()
	require.NoError(t, toolbox.Register(r))

	assert.Equal(t, []string{
		"toolbox.Button", "toolbox.Form", "toolbox.Label",
		"toolbox.Panel", "toolbox.Timer", "toolbox.ToolTip",
	}, r.Names())
	assert.Implements(t, (*ports.RootDesigner)(nil), r.CreateDesigner(&toolbox.Form{}))
	_, isRoot := r.CreateDesigner(&toolbox.Button{}).(ports.RootDesigner)
	assert.False(t, isRoot)
}

func TestDesigners_DefaultText(t *testing.T) {
	h := newSurface(t).Host()
	form := create[*toolbox.Form](t, h, "")
	button := create[*toolbox.Button](t, h, "")

	require.NoError(t, h.GetDesigner(form).(*toolbox.FormDesigner).InitializeNewComponent(nil))
	require.NoError(t, h.GetDesigner(button).(*toolbox.ButtonDesigner).InitializeNewComponent(nil))

	assert.Equal(t, "form1", form.Text)
	assert.Equal(t, "button1", button.Text)
	assert.True(t, button.Enabled)
}

func TestPanelDesigner_DockAction(t *testing.T) {
	s := newSurface(t)
	h := s.Host()
	create[*toolbox.Form](t, h, "main")
	panel := create[*toolbox.Panel](t, h, "")

	var changed []string
	h.Subscribe(domain.ChangeHooks{OnComponentChanged: func(e *domain.ComponentChangedEvent) {
		changed = append(changed, e.Member)
	}})

	lists, err := s.Actions().GetComponentActions(panel, actions.All)
	require.NoError(t, err)
	require.Len(t, lists, 1)
	items := lists[0].SortedItems()
	require.Len(t, items, 2)
	dock, ok := items[1].(actions.Invoker)
	require.True(t, ok)

	require.NoError(t, dock.Invoke())
	assert.Equal(t, "fill", panel.Dock)
	require.NoError(t, dock.Invoke())
	assert.Equal(t, "none", panel.Dock)
	assert.Equal(t, []string{"dock", "dock"}, changed)
}

func TestTimerDesigner_Verbs(t *testing.T) {
	s := newSurface(t)
	h := s.Host()
	create[*toolbox.Form](t, h, "main")
	timer := create[*toolbox.Timer](t, h, "")

	lists, err := s.Actions().GetComponentActions(timer, actions.FromComponent)
	require.NoError(t, err)
	require.Len(t, lists, 1)
	items := lists[0].SortedItems()
	require.Len(t, items, 1)
	assert.Equal(t, "Start", items[0].DisplayName())

	require.NoError(t, items[0].(actions.Invoker).Invoke())
	assert.True(t, timer.Enabled)

	items = lists[0].SortedItems()
	require.Len(t, items, 1)
	assert.Equal(t, "Stop", items[0].DisplayName())
}

func TestToolTip_ExtenderAndRename(t *testing.T) {
	h := newSurface(t).Host()
	create[*toolbox.Form](t, h, "main")
	tip := create[*toolbox.ToolTip](t, h, "")
	button := create[*toolbox.Button](t, h, "ok")

	list, ok := domain.Lookup[ports.ExtenderListService](h)
	require.True(t, ok)
	assert.Contains(t, list.ExtenderProviders(), domain.ExtenderProvider(tip))
	assert.True(t, tip.CanExtend(button))
	assert.False(t, tip.CanExtend(&toolbox.Timer{}))

	tip.SetToolTip(button, "Confirms the dialog")
	require.NoError(t, button.Site().SetName("confirm"))
	assert.Equal(t, "Confirms the dialog", tip.ToolTipOf(button))
	assert.Equal(t, map[string]string{"confirm": "Confirms the dialog"}, tip.Tips)

	require.NoError(t, h.Remove(button))
	assert.Empty(t, tip.Tips)
}

func TestDescriptions(t *testing.T) {
	h := newSurface(t).Host()
	form := create[*toolbox.Form](t, h, "main")

	p := h.TypeDescriptionProvider(form)
	require.NotNil(t, p)
	assert.Equal(t, ports.TypeDescription{
		TypeName:   "toolbox.Form",
		Properties: []string{"height", "text", "width"},
	}, p.Describe(form))
}

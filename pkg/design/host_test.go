package design_test

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/atelier/pkg/design"
	"github.com/aretw0/atelier/pkg/domain"
	"github.com/aretw0/atelier/pkg/ports"
)

func TestHost_FirstComponentBecomesRoot(t *testing.T) {
	h, root := newHostWithRoot(t)

	assert.Same(t, root, h.RootComponent())
	assert.Equal(t, "form1", h.RootComponentClassName())
	assert.Implements(t, (*ports.RootDesigner)(nil), h.GetDesigner(root))

	site := root.Site()
	require.NotNil(t, site)
	assert.Equal(t, "form1", site.Name())
	assert.True(t, site.DesignMode())
	assert.Same(t, h, site.Container())
	assert.Same(t, root, site.Component())
}

func TestHost_RootNamespace(t *testing.T) {
	h, _ := newHostWithRoot(t, design.WithRootNamespace("MyApp"))
	assert.Equal(t, "MyApp.form1", h.RootComponentClassName())
}

func TestHost_FirstComponentWithoutRootDesigner(t *testing.T) {
	h := newSurface(t).Host()
	child := &childComponent{}

	err := h.Add(child)

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrNoRootDesigner)
	assert.ErrorIs(t, err, domain.ErrInvalidOperation)
	assert.Nil(t, child.Site())
	assert.Empty(t, h.Components())
	assert.Nil(t, h.RootComponent())
}

func TestHost_ComponentWithoutDesigner(t *testing.T) {
	h, _ := newHostWithRoot(t)
	c := &plainComponent{}

	require.NoError(t, h.AddNamed(c, "plain1"))

	assert.Nil(t, h.GetDesigner(c))
	assert.Len(t, h.Components(), 2)
}

func TestHost_ReAddRenamesOnly(t *testing.T) {
	h := newSurface(t).Host()
	root := &rootComponent{}

	require.NoError(t, h.Add(root))
	require.NoError(t, h.AddNamed(root, "name2"))
	require.NoError(t, h.Add(root))

	assert.Equal(t, "name2", root.Site().Name())
	assert.Len(t, h.Components(), 1)
}

func TestHost_DuplicateNameOnAdd(t *testing.T) {
	h, _ := newHostWithRoot(t)
	require.NoError(t, h.AddNamed(&childComponent{}, "button1"))

	second := &childComponent{}
	err := h.AddNamed(second, "BUTTON1")

	assert.ErrorIs(t, err, domain.ErrDuplicateName)
	assert.Nil(t, second.Site())
	assert.Len(t, h.Components(), 2)
}

func TestHost_NameUniquenessOnRename(t *testing.T) {
	h, _ := newHostWithRoot(t)
	a, b := &childComponent{}, &childComponent{}
	require.NoError(t, h.AddNamed(a, "alpha"))
	require.NoError(t, h.AddNamed(b, "beta"))

	err := b.Site().SetName("ALPHA")
	assert.ErrorIs(t, err, domain.ErrDuplicateName)
	assert.Equal(t, "beta", b.Site().Name())

	// Case-only change of its own name is always allowed.
	require.NoError(t, a.Site().SetName("Alpha"))
	assert.Equal(t, "Alpha", a.Site().Name())

	// Same value is a no-op.
	require.NoError(t, a.Site().SetName("Alpha"))

	names := map[string]bool{}
	for _, c := range h.Components() {
		key := strings.ToLower(c.Site().Name())
		assert.False(t, names[key], "duplicate name %q", key)
		names[key] = true
	}
}

func TestHost_AddRemoveRoundTrip(t *testing.T) {
	h, root := newHostWithRoot(t)
	before := h.Components()
	c := &childComponent{}

	require.NoError(t, h.Add(c))
	site := c.Site()
	require.NotNil(t, site)
	require.NoError(t, h.Remove(c))

	assert.Nil(t, c.Site())
	assert.Nil(t, site.Container())
	assert.Equal(t, before, h.Components())
	assert.Same(t, root, h.RootComponent())
	assert.Nil(t, h.GetDesigner(c))
}

func TestHost_RemoveUnknownComponent(t *testing.T) {
	h, _ := newHostWithRoot(t)

	assert.NoError(t, h.Remove(&childComponent{}))

	var argErr *domain.ArgumentError
	err := h.Remove(nil)
	require.ErrorAs(t, err, &argErr)
	assert.Equal(t, "component", argErr.Param)
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)
}

func TestHost_RemoveRoot(t *testing.T) {
	h, root := newHostWithRoot(t)

	require.NoError(t, h.Remove(root))

	assert.Nil(t, h.RootComponent())
	assert.Empty(t, h.RootComponentClassName())
}

func TestHost_RenameRootTracksClassName(t *testing.T) {
	tests := []struct {
		name      string
		className string
		newName   string
		expected  string
	}{
		{name: "namespace prefix is kept", className: "namespace.oldName", newName: "newName", expected: "namespace.newName"},
		{name: "nested namespace", className: "a.b.oldName", newName: "newName", expected: "a.b.newName"},
		{name: "bare class name tracks the name", className: "oldName", newName: "newName", expected: "newName"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newSurface(t).Host()
			root := &rootComponent{}
			h.BeginLoad()
			require.NoError(t, h.AddNamed(root, "oldName"))
			h.EndLoad(tt.className, nil)
			require.Equal(t, tt.className, h.RootComponentClassName())

			require.NoError(t, root.Site().SetName(tt.newName))

			assert.Equal(t, tt.expected, h.RootComponentClassName())
		})
	}
}

func TestHost_RenameEvent(t *testing.T) {
	h, _ := newHostWithRoot(t)
	c := &childComponent{}
	require.NoError(t, h.AddNamed(c, "before"))

	var got *domain.ComponentRenameEvent
	var nameAtEvent string
	h.Subscribe(domain.ChangeHooks{
		OnComponentRename: func(e *domain.ComponentRenameEvent) {
			got = e
			nameAtEvent = e.Component.Site().Name()
		},
	})

	require.NoError(t, c.Site().SetName("after"))

	require.NotNil(t, got)
	assert.Equal(t, "before", got.OldName)
	assert.Equal(t, "after", got.NewName)
	assert.Equal(t, "after", nameAtEvent)
}

func TestHost_NameCreationService(t *testing.T) {
	h := newSurface(t).Host()
	require.NoError(t, h.AddService(reflect.TypeFor[ports.NameCreationService](), ports.NameCreationService(nameService{}), false))

	root := &rootComponent{}
	require.NoError(t, h.Add(root))
	assert.Equal(t, "root1", root.Site().Name())

	a, b := &childComponent{}, &childComponent{}
	require.NoError(t, h.Add(a))
	require.NoError(t, h.Add(b))
	assert.Equal(t, "comp1", a.Site().Name())
	assert.Equal(t, "comp2", b.Site().Name())

	bad := &childComponent{}
	err := h.AddNamed(bad, "bad1")
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)
	assert.Nil(t, bad.Site())

	assert.Error(t, a.Site().SetName("badName"))
	assert.Equal(t, "comp1", a.Site().Name())

	// Case-identical renames skip validation.
	require.NoError(t, a.Site().SetName("COMP1"))
}

func TestHost_DesignerInitializationFailureRollsBack(t *testing.T) {
	boom := errors.New("boom")
	d := &mockRootDesigner{}
	d.On("Initialize", mock.Anything).Return(boom)

	p := newProvider()
	p.register(&plainComponent{}, func() ports.Designer { return d })
	h := newSurface(t, design.WithDesigners(p)).Host()

	var added int
	h.Subscribe(domain.ChangeHooks{OnComponentAdded: func(*domain.ComponentEvent) { added++ }})

	c := &plainComponent{}
	err := h.Add(c)

	assert.Same(t, boom, err)
	assert.Nil(t, c.Site())
	assert.Empty(t, h.Components())
	assert.Nil(t, h.RootComponent())
	assert.Empty(t, h.RootComponentClassName())
	assert.Nil(t, h.GetDesigner(c))
	assert.Zero(t, added)
	d.AssertExpectations(t)
}

func TestHost_CheckoutCanceledKeepsComponent(t *testing.T) {
	canceled := errors.Join(domain.ErrCheckoutCanceled, errors.New("user canceled"))
	d := &mockRootDesigner{}
	d.On("Initialize", mock.Anything).Return(canceled)

	p := newProvider()
	p.register(&plainComponent{}, func() ports.Designer { return d })
	h := newSurface(t, design.WithDesigners(p)).Host()

	c := &plainComponent{}
	err := h.AddNamed(c, "kept")

	assert.Same(t, canceled, err)
	assert.ErrorIs(t, err, domain.ErrCheckoutCanceled)
	require.NotNil(t, c.Site())
	assert.Equal(t, "kept", c.Site().Name())
	assert.Same(t, c, h.RootComponent())
	assert.Len(t, h.Components(), 1)
}

func TestHost_CyclicAdd(t *testing.T) {
	h, _ := newHostWithRoot(t, design.WithRootNamespace("MyApp"))
	cyclic := &namedTypeComponent{typeName: "myapp.FORM1"}

	err := h.Add(cyclic)

	assert.ErrorIs(t, err, domain.ErrCyclicAdd)
	assert.Nil(t, cyclic.Site())
}

func TestHost_EventOrdering(t *testing.T) {
	h, _ := newHostWithRoot(t)

	var adding, added, removing, removed int
	h.Subscribe(domain.ChangeHooks{
		OnComponentAdding: func(e *domain.ComponentEvent) {
			adding++
			assert.Nil(t, e.Component.Site(), "adding fires before the site exists")
		},
		OnComponentAdded: func(e *domain.ComponentEvent) {
			added++
			assert.GreaterOrEqual(t, adding, added)
			assert.NotNil(t, e.Component.Site())
		},
		OnComponentRemoving: func(e *domain.ComponentEvent) {
			removing++
			assert.NotNil(t, e.Component.Site(), "site is intact while removing")
		},
		OnComponentRemoved: func(e *domain.ComponentEvent) {
			removed++
			assert.GreaterOrEqual(t, removing, removed)
			assert.Nil(t, e.Component.Site())
		},
	})

	c := &childComponent{}
	require.NoError(t, h.Add(c))
	require.NoError(t, h.Remove(c))

	assert.Equal(t, []int{1, 1, 1, 1}, []int{adding, added, removing, removed})
}

func TestHost_RemovingHandlerNullsSite(t *testing.T) {
	h, _ := newHostWithRoot(t)
	c := &childComponent{}
	require.NoError(t, h.Add(c))

	h.Subscribe(domain.ChangeHooks{
		OnComponentRemoving: func(e *domain.ComponentEvent) {
			e.Component.SetSite(nil)
		},
	})

	require.NoError(t, h.Remove(c))
	assert.Nil(t, c.Site())
	assert.Len(t, h.Components(), 1)
}

func TestHost_UnsubscribeDuringDispatch(t *testing.T) {
	h, _ := newHostWithRoot(t)

	var first, second int
	var cancelSecond func()
	h.Subscribe(domain.ChangeHooks{OnComponentAdded: func(*domain.ComponentEvent) {
		first++
		cancelSecond()
	}})
	cancelSecond = h.Subscribe(domain.ChangeHooks{OnComponentAdded: func(*domain.ComponentEvent) { second++ }})

	require.NoError(t, h.Add(&childComponent{}))
	require.NoError(t, h.Add(&childComponent{}))

	assert.Equal(t, 2, first)
	assert.Equal(t, 1, second, "the snapshot still delivers the first event")
}

func TestHost_ExtenderProviders(t *testing.T) {
	h, _ := newHostWithRoot(t)
	list, ok := domain.Lookup[ports.ExtenderListService](h)
	require.True(t, ok)

	ext := &extenderComponent{}
	require.NoError(t, h.Add(ext))
	assert.Contains(t, list.ExtenderProviders(), domain.ExtenderProvider(ext))

	readOnly := &extenderComponent{level: domain.InheritedReadOnly}
	require.NoError(t, h.Add(readOnly))
	assert.NotContains(t, list.ExtenderProviders(), domain.ExtenderProvider(readOnly))

	require.NoError(t, h.Remove(ext))
	assert.Empty(t, list.ExtenderProviders())
}

func TestHost_ExtenderAlreadyRegistered(t *testing.T) {
	ext := &extenderComponent{}
	registry := design.NewExtenderService()
	require.NoError(t, registry.AddExtenderProvider(ext))
	parent := serviceMap{
		reflect.TypeFor[ports.ExtenderListService]():     registry,
		reflect.TypeFor[ports.ExtenderProviderService](): registry,
	}
	h, _ := newHostWithRoot(t, design.WithParent(parent))

	require.NoError(t, h.Add(ext))

	assert.Len(t, registry.ExtenderProviders(), 1)
}

func TestExtenderService_Arguments(t *testing.T) {
	s := design.NewExtenderService()
	ext := &extenderComponent{}

	assert.ErrorIs(t, s.AddExtenderProvider(nil), domain.ErrInvalidArgument)
	require.NoError(t, s.AddExtenderProvider(ext))
	assert.ErrorIs(t, s.AddExtenderProvider(ext), domain.ErrInvalidArgument)

	s.RemoveExtenderProvider(&extenderComponent{})
	assert.Len(t, s.ExtenderProviders(), 1)
	s.RemoveExtenderProvider(ext)
	assert.Empty(t, s.ExtenderProviders())
}

type describer struct{}

func (describer) Describe(c domain.Component) ports.TypeDescription {
	return ports.TypeDescription{TypeName: domain.TypeName(c)}
}

type describerService struct{}

func (describerService) ProviderFor(domain.Component) ports.TypeDescriptionProvider {
	return describer{}
}

func TestHost_TypeDescriptionProvider(t *testing.T) {
	h, _ := newHostWithRoot(t)
	require.NoError(t, h.AddService(reflect.TypeFor[ports.TypeDescriptionProviderService](), ports.TypeDescriptionProviderService(describerService{}), false))

	c := &childComponent{}
	require.NoError(t, h.Add(c))
	p := h.TypeDescriptionProvider(c)
	require.NotNil(t, p)
	assert.Equal(t, "design_test.childComponent", p.Describe(c).TypeName)

	ro := &reflectionOnlyComponent{}
	require.NoError(t, h.Add(ro))
	assert.Nil(t, h.TypeDescriptionProvider(ro))

	require.NoError(t, h.Remove(c))
	assert.Nil(t, h.TypeDescriptionProvider(c))
}

func TestHost_ChangeEventsSuppressedWhileLoading(t *testing.T) {
	h, root := newHostWithRoot(t)
	var changing, changed int
	h.Subscribe(domain.ChangeHooks{
		OnComponentChanging: func(*domain.ComponentChangingEvent) { changing++ },
		OnComponentChanged: func(e *domain.ComponentChangedEvent) {
			changed++
			assert.GreaterOrEqual(t, changing, changed)
		},
	})

	h.BeginLoad()
	assert.True(t, h.Loading())
	h.OnComponentChanging(root, "text")
	h.OnComponentChanged(root, "text", "a", "b")
	assert.Zero(t, changing)
	assert.Zero(t, changed)

	var loadErr error = errors.New("sentinel")
	h.SubscribeHost(domain.HostHooks{OnLoadComplete: func(err error) { loadErr = err }})
	h.EndLoad("", nil)
	assert.NoError(t, loadErr)
	assert.False(t, h.Loading())

	h.OnComponentChanging(root, "text")
	h.OnComponentChanged(root, "text", "a", "b")
	assert.Equal(t, 1, changing)
	assert.Equal(t, 1, changed)
}

func TestHost_Activate(t *testing.T) {
	h, _ := newHostWithRoot(t)
	activated := false
	h.SubscribeHost(domain.HostHooks{OnActivated: func() { activated = true }})

	h.Activate()

	assert.True(t, activated)
}

func TestHost_CreateComponent(t *testing.T) {
	h, _ := newHostWithRoot(t)

	c, err := h.CreateComponent(reflect.TypeFor[*childComponent](), "made1")
	require.NoError(t, err)
	assert.IsType(t, &childComponent{}, c)
	assert.Equal(t, "made1", c.Site().Name())
	assert.NotNil(t, h.GetDesigner(c))

	_, err = h.CreateComponent(reflect.TypeFor[string](), "")
	assert.ErrorIs(t, err, domain.ErrUnknownType)

	_, err = h.CreateComponent(nil, "")
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)
}

type typeResolver map[string]reflect.Type

func (r typeResolver) GetType(name string) (reflect.Type, bool) {
	t, ok := r[name]
	return t, ok
}

func TestHost_GetType(t *testing.T) {
	h, _ := newHostWithRoot(t)

	typ, ok := h.GetType("design_test.childComponent")
	require.True(t, ok)
	assert.Equal(t, reflect.TypeFor[*childComponent](), typ)

	require.NoError(t, h.AddService(reflect.TypeFor[ports.TypeResolutionService](),
		ports.TypeResolutionService(typeResolver{"Button": reflect.TypeFor[*plainComponent]()}), false))
	typ, ok = h.GetType("Button")
	require.True(t, ok)
	assert.Equal(t, reflect.TypeFor[*plainComponent](), typ)

	_, ok = h.GetType("missing")
	assert.False(t, ok)
}

func TestHost_DisposeFacadeIsRejected(t *testing.T) {
	h, _ := newHostWithRoot(t)

	err := h.Dispose()

	assert.ErrorIs(t, err, domain.ErrInvalidOperation)
	assert.False(t, h.Disposed())
	assert.NoError(t, h.Add(&childComponent{}))
}

func TestSurface_Dispose(t *testing.T) {
	s := newSurface(t)
	h := s.Host()
	root := &rootComponent{}
	require.NoError(t, h.Add(root))
	child := &disposableComponent{}
	require.NoError(t, h.Add(child))
	tx, err := h.CreateTransaction("pending")
	require.NoError(t, err)

	var removed []domain.Component
	h.Subscribe(domain.ChangeHooks{OnComponentRemoved: func(e *domain.ComponentEvent) {
		removed = append(removed, e.Component)
	}})

	s.Dispose()

	assert.True(t, h.Disposed())
	assert.True(t, tx.Canceled())
	assert.Equal(t, []domain.Component{child, root}, removed, "root is removed last")
	assert.True(t, child.disposed)
	assert.Nil(t, root.Site())

	assert.ErrorIs(t, h.Add(&childComponent{}), domain.ErrDisposed)
	assert.ErrorIs(t, h.Remove(root), domain.ErrDisposed)
	assert.ErrorIs(t, h.AddService(reflect.TypeFor[string](), "x", false), domain.ErrDisposed)
	assert.ErrorIs(t, h.RemoveService(reflect.TypeFor[string](), false), domain.ErrDisposed)
	_, err = h.CreateTransaction("late")
	assert.ErrorIs(t, err, domain.ErrDisposed)
	_, err = h.Resolve(reflect.TypeFor[ports.DesignerHost]())
	assert.ErrorIs(t, err, domain.ErrDisposed)
	assert.Nil(t, h.GetService(reflect.TypeFor[ports.DesignerHost]()))
	assert.ErrorIs(t, tx.Commit(), domain.ErrDisposed)

	// Disposing twice is harmless.
	s.Dispose()
}

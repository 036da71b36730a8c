package design_test

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/atelier/pkg/domain"
	"github.com/aretw0/atelier/pkg/ports"
)

func TestNestedContainer_FullNames(t *testing.T) {
	tests := []struct {
		name          string
		ownerName     string
		containerName string
		childName     string
		expected      string
	}{
		{name: "owner and default container", ownerName: "panel1", childName: "button1", expected: "panel1.button1"},
		{name: "owner and named container", ownerName: "panel1", containerName: "Items", childName: "button1", expected: "panel1.Items.button1"},
		{name: "unnamed owner", ownerName: "", childName: "button1", expected: ".button1"},
		{name: "unnamed owner and named container", ownerName: "", containerName: "Items", childName: "button1", expected: ".Items.button1"},
		{name: "unnamed child", ownerName: "panel1", containerName: "Items", childName: "", expected: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, _ := newHostWithRoot(t)
			owner := &childComponent{}
			if tt.ownerName == "" {
				require.NoError(t, h.Add(owner))
			} else {
				require.NoError(t, h.AddNamed(owner, tt.ownerName))
			}
			nested, err := siteOf(t, owner).CreateNestedContainer(tt.containerName)
			require.NoError(t, err)

			child := &childComponent{}
			if tt.childName == "" {
				require.NoError(t, nested.Add(child))
			} else {
				require.NoError(t, nested.AddNamed(child, tt.childName))
			}

			site := siteOf(t, child)
			assert.Equal(t, tt.childName, site.Name())
			assert.Equal(t, tt.expected, site.FullName())
		})
	}
}

func TestNestedContainer_FullNameWalksOwners(t *testing.T) {
	h, _ := newHostWithRoot(t)
	panel := &childComponent{}
	require.NoError(t, h.AddNamed(panel, "panel1"))
	outer, err := siteOf(t, panel).CreateNestedContainer("Controls")
	require.NoError(t, err)
	group := &childComponent{}
	require.NoError(t, outer.AddNamed(group, "group1"))
	inner, err := siteOf(t, group).CreateNestedContainer("")
	require.NoError(t, err)
	button := &childComponent{}
	require.NoError(t, inner.AddNamed(button, "button1"))

	assert.Equal(t, "panel1.Controls.group1.button1", siteOf(t, button).FullName())
}

func TestNestedContainer_Basics(t *testing.T) {
	h, root := newHostWithRoot(t)
	nested, err := siteOf(t, root).CreateNestedContainer("Items")
	require.NoError(t, err)

	assert.Same(t, root, nested.Owner())
	assert.Equal(t, "Items", nested.ContainerName())

	again, err := siteOf(t, root).CreateNestedContainer("Items")
	require.NoError(t, err)
	assert.Same(t, nested, again)

	c := &childComponent{}
	require.NoError(t, nested.AddNamed(c, "item1"))
	found, ok := nested.Component("ITEM1")
	require.True(t, ok)
	assert.Same(t, c, found)
	assert.Same(t, nested, c.Site().Container())
	assert.NotNil(t, h.GetDesigner(c))

	_, ok = h.Component("item1")
	assert.False(t, ok, "nested components are not host components")

	assert.ErrorIs(t, nested.AddNamed(&childComponent{}, "Item1"), domain.ErrDuplicateName)
	assert.NoError(t, nested.Remove(&childComponent{}))
	assert.NoError(t, h.Remove(c), "host ignores components of nested containers")
	assert.Len(t, nested.Components(), 1)
}

func TestNestedContainer_RaisesHostEvents(t *testing.T) {
	h, root := newHostWithRoot(t)
	nested, err := siteOf(t, root).CreateNestedContainer("")
	require.NoError(t, err)

	var containers []domain.Container
	h.Subscribe(domain.ChangeHooks{OnComponentAdded: func(e *domain.ComponentEvent) {
		containers = append(containers, e.Container)
	}})

	require.NoError(t, nested.Add(&childComponent{}))

	require.Len(t, containers, 1)
	assert.Same(t, nested, containers[0])
}

func TestNestedContainer_KeepsDictionaryOnRemoval(t *testing.T) {
	h, root := newHostWithRoot(t)
	nested, err := siteOf(t, root).CreateNestedContainer("")
	require.NoError(t, err)
	c := &childComponent{}
	require.NoError(t, nested.Add(c))
	dict := dictionaryOf(t, c)
	require.NoError(t, dict.SetValue("k", "v"))

	require.NoError(t, nested.Remove(c))

	assert.Nil(t, c.Site())
	v, err := dict.GetValue("k")
	require.NoError(t, err)
	assert.Equal(t, "v", v)
	assert.Len(t, h.Components(), 1)
}

func TestNestedContainer_RootGateBypass(t *testing.T) {
	h, root := newHostWithRoot(t)
	owner := &childComponent{}
	require.NoError(t, h.AddNamed(owner, "owner1"))
	nested, err := siteOf(t, owner).CreateNestedContainer("")
	require.NoError(t, err)
	require.NoError(t, h.Remove(root))
	require.Nil(t, h.RootComponent())

	// Without a root, non-root components are still accepted.
	plain := &childComponent{}
	require.NoError(t, nested.AddNamed(plain, "plain1"))
	assert.Nil(t, h.RootComponent())

	// A root-designer component becomes the host's root.
	newRoot := &rootComponent{}
	require.NoError(t, nested.AddNamed(newRoot, "form2"))
	assert.Same(t, newRoot, h.RootComponent())
	assert.Equal(t, "form2", h.RootComponentClassName())
	assert.Same(t, nested, newRoot.Site().Container())
}

func TestNestedContainer_ServiceContainer(t *testing.T) {
	h, root := newHostWithRoot(t)
	nested, err := siteOf(t, root).CreateNestedContainer("")
	require.NoError(t, err)

	assert.Same(t, nested, nested.GetService(reflect.TypeFor[domain.Container]()))
	assert.Same(t, nested, nested.GetService(reflect.TypeFor[ports.NestedContainer]()))
	assert.Same(t, h, nested.GetService(reflect.TypeFor[ports.DesignerHost]()))

	sc, ok := domain.Lookup[ports.ServiceContainer](nested)
	require.True(t, ok)
	require.NoError(t, sc.AddService(greeterType, english{}, false))
	assert.Equal(t, english{}, nested.GetService(greeterType))
	assert.Nil(t, h.GetService(greeterType))

	require.NoError(t, sc.AddService(reflect.TypeFor[*closer](), &closer{}, true))
	assert.NotNil(t, h.GetService(reflect.TypeFor[*closer]()), "promoted to the host")
}

func TestNestedContainer_DisposedWithOwner(t *testing.T) {
	h, _ := newHostWithRoot(t)
	owner := &childComponent{}
	require.NoError(t, h.Add(owner))
	nested, err := siteOf(t, owner).CreateNestedContainer("Items")
	require.NoError(t, err)
	child := &disposableComponent{}
	require.NoError(t, nested.Add(child))

	var removed []domain.Component
	h.Subscribe(domain.ChangeHooks{OnComponentRemoved: func(e *domain.ComponentEvent) {
		removed = append(removed, e.Component)
	}})

	require.NoError(t, h.Remove(owner))

	assert.Nil(t, child.Site())
	assert.True(t, child.disposed)
	assert.Empty(t, nested.Components())
	assert.Equal(t, []domain.Component{child, owner}, removed)
	assert.ErrorIs(t, nested.Add(&childComponent{}), domain.ErrDisposed)
}

func TestNestedContainer_MoveToHost(t *testing.T) {
	h, root := newHostWithRoot(t)
	nested, err := siteOf(t, root).CreateNestedContainer("")
	require.NoError(t, err)
	c := &childComponent{}
	require.NoError(t, nested.AddNamed(c, "moved"))

	require.NoError(t, h.AddNamed(c, "moved"))

	assert.Empty(t, nested.Components())
	assert.Same(t, h, c.Site().Container())
}

func TestNestedContainer_FailedMoveKeepsComponent(t *testing.T) {
	h, root := newHostWithRoot(t)
	require.NoError(t, h.AddService(reflect.TypeFor[ports.NameCreationService](), ports.NameCreationService(nameService{}), false))
	require.NoError(t, h.AddNamed(&childComponent{}, "dup"))
	nested, err := siteOf(t, root).CreateNestedContainer("")
	require.NoError(t, err)
	c := &childComponent{}
	require.NoError(t, nested.AddNamed(c, "moved"))

	tests := []struct {
		name    string
		newName string
		check   func(t *testing.T, err error)
	}{
		{name: "duplicate name", newName: "dup", check: func(t *testing.T, err error) {
			assert.ErrorIs(t, err, domain.ErrDuplicateName)
		}},
		{name: "rejected name", newName: "badName", check: func(t *testing.T, err error) {
			var argErr *domain.ArgumentError
			assert.ErrorAs(t, err, &argErr)
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.check(t, h.AddNamed(c, tt.newName))

			assert.Equal(t, []domain.Component{c}, nested.Components())
			site := siteOf(t, c)
			assert.Same(t, nested, site.Container())
			assert.Equal(t, "moved", site.Name())
		})
	}
}

package design_test

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/atelier/pkg/design"
	"github.com/aretw0/atelier/pkg/domain"
	"github.com/aretw0/atelier/pkg/ports"
)

type rootComponent struct {
	domain.ComponentBase
	Text string `design:"text"`
}

type childComponent struct {
	domain.ComponentBase
	Text    string `design:"text"`
	Width   int    `design:"width"`
	Enabled bool   `design:"enabled"`
}

type plainComponent struct {
	domain.ComponentBase
}

type extenderComponent struct {
	domain.ComponentBase
	level domain.InheritanceLevel
}

func (e *extenderComponent) CanExtend(any) bool                        { return true }
func (e *extenderComponent) InheritanceLevel() domain.InheritanceLevel { return e.level }

type reflectionOnlyComponent struct {
	domain.ComponentBase
}

func (r *reflectionOnlyComponent) ReflectionOnly() bool { return true }

type namedTypeComponent struct {
	domain.ComponentBase
	typeName string
}

func (n *namedTypeComponent) ComponentType() string { return n.typeName }

type disposableComponent struct {
	domain.ComponentBase
	disposed bool
}

func (d *disposableComponent) Dispose() { d.disposed = true }

// provider maps component types to designer factories.
type provider struct {
	designers map[reflect.Type]func() ports.Designer
	types     map[string]reflect.Type
}

func newProvider() *provider {
	p := &provider{
		designers: make(map[reflect.Type]func() ports.Designer),
		types:     make(map[string]reflect.Type),
	}
	p.register(&rootComponent{}, func() ports.Designer { return &design.RootComponentDesigner{} })
	p.register(&childComponent{}, func() ports.Designer { return &design.ComponentDesigner{} })
	p.register(&extenderComponent{}, func() ports.Designer { return &design.ComponentDesigner{} })
	p.register(&reflectionOnlyComponent{}, func() ports.Designer { return &design.ComponentDesigner{} })
	p.register(&namedTypeComponent{}, func() ports.Designer { return &design.ComponentDesigner{} })
	p.register(&disposableComponent{}, func() ports.Designer { return &design.ComponentDesigner{} })
	return p
}

func (p *provider) register(c domain.Component, f func() ports.Designer) {
	t := reflect.TypeOf(c)
	p.designers[t] = f
	p.types[domain.TypeNameOf(t)] = t
}

func (p *provider) CreateDesigner(c domain.Component) ports.Designer {
	if f, ok := p.designers[reflect.TypeOf(c)]; ok {
		return f()
	}
	return nil
}

func (p *provider) Type(name string) (reflect.Type, bool) {
	t, ok := p.types[name]
	return t, ok
}

// mockDesigner lets tests script Initialize results.
type mockDesigner struct {
	mock.Mock
	component domain.Component
}

func (m *mockDesigner) Component() domain.Component { return m.component }

func (m *mockDesigner) Initialize(c domain.Component) error {
	args := m.Called(c)
	if args.Error(0) == nil {
		m.component = c
	}
	return args.Error(0)
}

func (m *mockDesigner) Dispose() { m.Called() }

type mockRootDesigner struct {
	mockDesigner
}

func (m *mockRootDesigner) ViewTechnologies() []string { return []string{"Default"} }

// nameService names components "<prefix><n>" and rejects names starting with "bad".
type nameService struct{}

func (nameService) CreateName(container domain.Container, t reflect.Type) string {
	base := "comp"
	if container == nil {
		return "root1"
	}
	for i := 1; ; i++ {
		name := base + string(rune('0'+i))
		if _, taken := container.Component(name); !taken {
			return name
		}
	}
}

func (nameService) IsValidName(name string) bool {
	return name != "" && !(len(name) >= 3 && name[:3] == "bad")
}

func (n nameService) ValidateName(name string) error {
	if !n.IsValidName(name) {
		return &domain.ArgumentError{Param: "name", Reason: "rejected"}
	}
	return nil
}

// serviceMap is a parent provider backed by a map.
type serviceMap map[reflect.Type]any

func (m serviceMap) GetService(t reflect.Type) any { return m[t] }

func newSurface(t *testing.T, opts ...design.Option) *design.Surface {
	t.Helper()
	s, err := design.NewSurface(append([]design.Option{design.WithDesigners(newProvider())}, opts...)...)
	require.NoError(t, err)
	return s
}

// newHostWithRoot returns a host whose root component is already added.
func newHostWithRoot(t *testing.T, opts ...design.Option) (*design.Host, *rootComponent) {
	t.Helper()
	h := newSurface(t, opts...).Host()
	root := &rootComponent{}
	require.NoError(t, h.AddNamed(root, "form1"))
	return h, root
}

func siteOf(t *testing.T, c domain.Component) *design.Site {
	t.Helper()
	s, ok := c.Site().(*design.Site)
	require.True(t, ok, "component is not sited by a design host")
	return s
}

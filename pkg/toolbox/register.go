package toolbox

import (
	"reflect"
	"slices"
	"strings"

	"github.com/aretw0/atelier/pkg/design"
	"github.com/aretw0/atelier/pkg/domain"
	"github.com/aretw0/atelier/pkg/ports"
	"github.com/aretw0/atelier/pkg/registry"
)

// Register adds the stock component types to r under "toolbox.<Type>".
func Register(r *registry.Registry) error {
	entries := []registry.Entry{
		{Type: reflect.TypeFor[*Form](), Designer: func() ports.Designer { return &FormDesigner{} }},
		{Type: reflect.TypeFor[*Panel](), Designer: func() ports.Designer { return &PanelDesigner{} }},
		{Type: reflect.TypeFor[*Button](), Designer: func() ports.Designer { return &ButtonDesigner{} }},
		{Type: reflect.TypeFor[*Label](), Designer: func() ports.Designer { return &LabelDesigner{} }},
		{Type: reflect.TypeFor[*Timer](), Designer: func() ports.Designer { return &TimerDesigner{} }},
		{Type: reflect.TypeFor[*ToolTip](), Designer: func() ports.Designer { return &ToolTipDesigner{} }},
	}
	for _, e := range entries {
		if err := r.Register(e); err != nil {
			return err
		}
	}
	return nil
}

// Descriptions describes components by their design properties.
type Descriptions struct{}

func (Descriptions) ProviderFor(domain.Component) ports.TypeDescriptionProvider {
	return describer{}
}

type describer struct{}

// Describe lists the property names of c, sorted.
func (describer) Describe(c domain.Component) ports.TypeDescription {
	return ports.TypeDescription{
		TypeName:   domain.TypeName(c),
		Properties: propertyNames(reflect.TypeOf(c)),
	}
}

func propertyNames(t reflect.Type) []string {
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t == nil || t.Kind() != reflect.Struct {
		return nil
	}
	var names []string
	for i := range t.NumField() {
		f := t.Field(i)
		if !f.IsExported() || f.Anonymous {
			continue
		}
		name, _, _ := strings.Cut(f.Tag.Get(design.PropertyTag), ",")
		if name == "-" {
			continue
		}
		if name == "" {
			name = f.Name
		}
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

var _ ports.TypeDescriptionProviderService = Descriptions{}

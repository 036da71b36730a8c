package design

import (
	"fmt"
	"reflect"
	"slices"

	"github.com/mitchellh/mapstructure"

	"github.com/aretw0/atelier/pkg/domain"
)

// PropertyTag is the struct tag naming design-time properties.
const PropertyTag = "design"

// ApplyProperties decodes props into the exported fields of component, which
// must be a pointer to a struct. Unknown property names are rejected.
func ApplyProperties(component any, props map[string]any) error {
	if component == nil {
		return domain.NilArgument("component")
	}
	if len(props) == 0 {
		return nil
	}
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          PropertyTag,
		Result:           component,
		WeaklyTypedInput: true,
		ErrorUnused:      true,
		Squash:           true,
	})
	if err != nil {
		return fmt.Errorf("properties of %s: %w", domain.TypeName(component), err)
	}
	if err := dec.Decode(props); err != nil {
		return fmt.Errorf("properties of %s: %w", domain.TypeName(component), err)
	}
	return nil
}

// Properties encodes the non-zero exported fields of component.
func Properties(component any) (map[string]any, error) {
	if component == nil {
		return nil, domain.NilArgument("component")
	}
	v := reflect.Indirect(reflect.ValueOf(component))
	if v.Kind() != reflect.Struct {
		return nil, nil
	}
	raw := make(map[string]any)
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName: PropertyTag,
		Result:  &raw,
		Squash:  true,
	})
	if err != nil {
		return nil, err
	}
	if err := dec.Decode(component); err != nil {
		return nil, fmt.Errorf("properties of %s: %w", domain.TypeName(component), err)
	}
	props := make(map[string]any, len(raw))
	for k, val := range raw {
		if val == nil {
			continue
		}
		if rv := reflect.ValueOf(val); rv.IsZero() {
			continue
		}
		props[k] = val
	}
	return props, nil
}

// SetProperties applies props to a component sited in h, raising a changing
// and a changed notification per property in name order. A failing property
// stops the update; the ones before it stay applied.
func (h *Host) SetProperties(c domain.Component, props map[string]any) error {
	if c == nil {
		return domain.NilArgument("component")
	}
	if h.disposed {
		return domain.ErrDisposed
	}
	if s, ok := c.Site().(*Site); !ok || s.host != h {
		return &domain.ArgumentError{Param: "component", Reason: "not sited in this host"}
	}

	names := make([]string, 0, len(props))
	for name := range props {
		names = append(names, name)
	}
	slices.Sort(names)

	for _, name := range names {
		before, err := Properties(c)
		if err != nil {
			return err
		}
		h.OnComponentChanging(c, name)
		if err := ApplyProperties(c, map[string]any{name: props[name]}); err != nil {
			return err
		}
		after, err := Properties(c)
		if err != nil {
			return err
		}
		h.OnComponentChanged(c, name, before[name], after[name])
	}
	return nil
}

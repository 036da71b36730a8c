package dsl

import "github.com/aretw0/atelier/pkg/domain"

// ComponentBuilder provides a fluent API for configuring a component.
type ComponentBuilder struct {
	spec       domain.ComponentSpec
	children   []*ComponentBuilder
	containers []*container
}

type container struct {
	name       string
	components []*ComponentBuilder
}

func newComponent(typeName, name string) *ComponentBuilder {
	return &ComponentBuilder{spec: domain.ComponentSpec{Type: typeName, Name: name}}
}

// Set assigns a design property.
func (c *ComponentBuilder) Set(key string, value any) *ComponentBuilder {
	if c.spec.Properties == nil {
		c.spec.Properties = make(map[string]any)
	}
	c.spec.Properties[key] = value
	return c
}

// Add appends a child and returns its builder. Children of the root are
// sited in the host; children of other components go to their default
// nested container.
func (c *ComponentBuilder) Add(typeName, name string) *ComponentBuilder {
	child := newComponent(typeName, name)
	c.children = append(c.children, child)
	return child
}

// AddTo appends a component to the named nested container and returns its builder.
func (c *ComponentBuilder) AddTo(containerName, typeName, name string) *ComponentBuilder {
	child := newComponent(typeName, name)
	for _, n := range c.containers {
		if n.name == containerName {
			n.components = append(n.components, child)
			return child
		}
	}
	c.containers = append(c.containers, &container{name: containerName, components: []*ComponentBuilder{child}})
	return child
}

// Build returns the component spec with its descendants.
func (c *ComponentBuilder) Build() domain.ComponentSpec {
	spec := c.spec
	spec.Children = nil
	for _, child := range c.children {
		spec.Children = append(spec.Children, child.Build())
	}
	spec.Containers = nil
	for _, n := range c.containers {
		cs := domain.ContainerSpec{Name: n.name}
		for _, child := range n.components {
			cs.Components = append(cs.Components, child.Build())
		}
		spec.Containers = append(spec.Containers, cs)
	}
	return spec
}

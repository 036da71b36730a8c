package domain

// Document is the persisted form of a design surface.
type Document struct {
	// ID is assigned by the session manager; it is not part of the file format.
	ID string `yaml:"-" json:"id,omitempty"`

	// Namespace qualifies the root component class name ("namespace.RootName").
	Namespace string `yaml:"namespace,omitempty" json:"namespace,omitempty"`

	// Root is the root component. Its Children are sited directly in the host.
	Root ComponentSpec `yaml:"root" json:"root"`
}

// ComponentSpec describes one component of a document.
type ComponentSpec struct {
	Type       string          `yaml:"type" json:"type"`
	Name       string          `yaml:"name,omitempty" json:"name,omitempty"`
	Properties map[string]any  `yaml:"properties,omitempty" json:"properties,omitempty"`
	Children   []ComponentSpec `yaml:"children,omitempty" json:"children,omitempty"`
	Containers []ContainerSpec `yaml:"containers,omitempty" json:"containers,omitempty"`
}

// ContainerSpec describes a nested container owned by a component.
type ContainerSpec struct {
	Name       string          `yaml:"name,omitempty" json:"name,omitempty"`
	Components []ComponentSpec `yaml:"components,omitempty" json:"components,omitempty"`
}

// RootClassName returns the qualified class name of the document's root component.
func (d *Document) RootClassName() string {
	if d.Namespace == "" {
		return d.Root.Name
	}
	return d.Namespace + "." + d.Root.Name
}

// Count returns the number of components described by the document.
func (d *Document) Count() int {
	return d.Root.count()
}

func (s *ComponentSpec) count() int {
	n := 1
	for i := range s.Children {
		n += s.Children[i].count()
	}
	for _, c := range s.Containers {
		for i := range c.Components {
			n += c.Components[i].count()
		}
	}
	return n
}

// Clone returns a deep copy of the document.
func (d *Document) Clone() *Document {
	if d == nil {
		return nil
	}
	out := *d
	out.Root = d.Root.clone()
	return &out
}

func (s *ComponentSpec) clone() ComponentSpec {
	out := *s
	if s.Properties != nil {
		out.Properties = cloneValue(s.Properties).(map[string]any)
	}
	if s.Children != nil {
		out.Children = make([]ComponentSpec, len(s.Children))
		for i := range s.Children {
			out.Children[i] = s.Children[i].clone()
		}
	}
	if s.Containers != nil {
		out.Containers = make([]ContainerSpec, len(s.Containers))
		for i, c := range s.Containers {
			out.Containers[i].Name = c.Name
			if c.Components != nil {
				out.Containers[i].Components = make([]ComponentSpec, len(c.Components))
				for j := range c.Components {
					out.Containers[i].Components[j] = c.Components[j].clone()
				}
			}
		}
	}
	return out
}

func cloneValue(v any) any {
	switch v := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(v))
		for k, e := range v {
			out[k] = cloneValue(e)
		}
		return out
	case map[string]string:
		out := make(map[string]string, len(v))
		for k, e := range v {
			out[k] = e
		}
		return out
	case []any:
		out := make([]any, len(v))
		for i, e := range v {
			out[i] = cloneValue(e)
		}
		return out
	default:
		return v
	}
}

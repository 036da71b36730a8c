package document

import (
	"strings"

	"github.com/aretw0/atelier/pkg/design"
	"github.com/aretw0/atelier/pkg/domain"
)

// Load populates an empty host from doc. The host is in its loading phase
// while components are created, so no change notifications are raised;
// load-complete hooks receive the returned error.
func Load(host *design.Host, doc *domain.Document) (err error) {
	if host == nil {
		return domain.NilArgument("host")
	}
	if doc == nil {
		return domain.NilArgument("doc")
	}
	if host.RootComponent() != nil {
		return &domain.HostError{Op: "load", Name: doc.RootClassName(), Err: domain.ErrInvalidOperation}
	}
	if err := Validate(doc, host); err != nil {
		return err
	}

	var className string
	host.BeginLoad()
	defer func() { host.EndLoad(className, err) }()

	root, err := site(host, host, &doc.Root)
	if err != nil {
		return err
	}
	if doc.Namespace != "" {
		className = doc.Namespace + "." + domain.NameOf(root)
	}
	for i := range doc.Root.Children {
		child, err := site(host, host, &doc.Root.Children[i])
		if err != nil {
			return err
		}
		if err := populate(host, child, &doc.Root.Children[i]); err != nil {
			return err
		}
	}
	return populateContainers(host, root, doc.Root.Containers)
}

// site creates the component described by spec and adds it to into.
func site(host *design.Host, into domain.Container, spec *domain.ComponentSpec) (domain.Component, error) {
	t, ok := host.GetType(spec.Type)
	if !ok {
		return nil, &domain.HostError{Op: "load", Name: spec.Type, Err: domain.ErrUnknownType}
	}
	c, err := host.NewComponent(t)
	if err != nil {
		return nil, err
	}
	if err := design.ApplyProperties(c, spec.Properties); err != nil {
		return nil, err
	}
	if err := into.AddNamed(c, spec.Name); err != nil {
		if d, ok := c.(domain.Disposable); ok {
			d.Dispose()
		}
		return nil, err
	}
	return c, nil
}

// populate sites the children of a non-root component in its nested containers.
func populate(host *design.Host, c domain.Component, spec *domain.ComponentSpec) error {
	if len(spec.Children) > 0 {
		if err := populateContainers(host, c, []domain.ContainerSpec{{Components: spec.Children}}); err != nil {
			return err
		}
	}
	return populateContainers(host, c, spec.Containers)
}

func populateContainers(host *design.Host, c domain.Component, containers []domain.ContainerSpec) error {
	if len(containers) == 0 {
		return nil
	}
	s, ok := c.Site().(*design.Site)
	if !ok {
		return &domain.HostError{Op: "load", Name: domain.NameOf(c), Err: domain.ErrInvalidOperation}
	}
	for _, cs := range containers {
		nested, err := s.CreateNestedContainer(cs.Name)
		if err != nil {
			return err
		}
		for i := range cs.Components {
			child, err := site(host, nested, &cs.Components[i])
			if err != nil {
				return err
			}
			if err := populate(host, child, &cs.Components[i]); err != nil {
				return err
			}
		}
	}
	return nil
}

// Snapshot describes the components of host as a document.
func Snapshot(host *design.Host) (*domain.Document, error) {
	if host == nil {
		return nil, domain.NilArgument("host")
	}
	if host.Disposed() {
		return nil, domain.ErrDisposed
	}
	root := host.RootComponent()
	if root == nil {
		return nil, &domain.HostError{Op: "snapshot", Err: domain.ErrInvalidOperation}
	}

	spec, err := describe(root, true)
	if err != nil {
		return nil, err
	}
	for _, c := range host.Components() {
		if c == root {
			continue
		}
		child, err := describe(c, false)
		if err != nil {
			return nil, err
		}
		spec.Children = append(spec.Children, child)
	}

	doc := &domain.Document{Root: spec}
	if ns, ok := strings.CutSuffix(host.RootComponentClassName(), "."+spec.Name); ok && spec.Name != "" {
		doc.Namespace = ns
	}
	return doc, nil
}

// describe builds the spec of c. The default nested container of the root is
// written as an unnamed container since the root's children are host siblings.
func describe(c domain.Component, root bool) (domain.ComponentSpec, error) {
	props, err := design.Properties(c)
	if err != nil {
		return domain.ComponentSpec{}, err
	}
	spec := domain.ComponentSpec{
		Type: domain.TypeName(c),
		Name: domain.NameOf(c),
	}
	if len(props) > 0 {
		spec.Properties = props
	}

	s, ok := c.Site().(*design.Site)
	if !ok {
		return spec, nil
	}
	for _, nested := range s.NestedContainers() {
		members := nested.Components()
		if len(members) == 0 {
			continue
		}
		specs := make([]domain.ComponentSpec, 0, len(members))
		for _, m := range members {
			child, err := describe(m, false)
			if err != nil {
				return spec, err
			}
			specs = append(specs, child)
		}
		if nested.ContainerName() == "" && !root {
			spec.Children = specs
			continue
		}
		spec.Containers = append(spec.Containers, domain.ContainerSpec{Name: nested.ContainerName(), Components: specs})
	}
	return spec, nil
}

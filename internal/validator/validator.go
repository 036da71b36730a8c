package validator

import (
	"fmt"
	"strings"

	"github.com/aretw0/atelier/pkg/domain"
	"github.com/aretw0/atelier/pkg/naming"
	"github.com/aretw0/atelier/pkg/ports"
)

// ValidateDocument checks a design document before it is loaded: every
// component has a type, known to types when types is non-nil, and names are
// identifiers unique (case-insensitively) within their container.
func ValidateDocument(doc *domain.Document, types ports.TypeResolutionService) error {
	if doc == nil {
		return domain.NilArgument("doc")
	}
	names := naming.New()

	type item struct {
		path string
		spec *domain.ComponentSpec
	}
	queue := []item{{path: "root", spec: &doc.Root}}

	var errors []string
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		spec := cur.spec

		switch {
		case spec.Type == "":
			errors = append(errors, fmt.Sprintf("%s: missing component type", cur.path))
		case types != nil:
			if _, ok := types.GetType(spec.Type); !ok {
				errors = append(errors, fmt.Sprintf("%s: unknown component type '%s'", cur.path, spec.Type))
			}
		}
		if spec.Name != "" && !names.IsValidName(spec.Name) {
			errors = append(errors, fmt.Sprintf("%s: invalid name '%s'", cur.path, spec.Name))
		}

		siblings := spec.Children
		if spec == &doc.Root {
			// The root's children share the host with the root itself.
			siblings = append([]domain.ComponentSpec{doc.Root}, spec.Children...)
		}
		errors = append(errors, duplicates(cur.path+".children", siblings)...)
		for i := range spec.Children {
			queue = append(queue, item{path: childPath(cur.path, "children", i, &spec.Children[i]), spec: &spec.Children[i]})
		}

		seen := make(map[string]bool, len(spec.Containers))
		for _, c := range spec.Containers {
			key := strings.ToLower(c.Name)
			if seen[key] {
				errors = append(errors, fmt.Sprintf("%s: duplicate container '%s'", cur.path, c.Name))
			}
			seen[key] = true

			where := cur.path + ".containers[" + c.Name + "]"
			errors = append(errors, duplicates(where, c.Components)...)
			for i := range c.Components {
				queue = append(queue, item{path: childPath(where, "", i, &c.Components[i]), spec: &c.Components[i]})
			}
		}
	}

	if len(errors) > 0 {
		return fmt.Errorf("%w: found %d errors:\n- %s", domain.ErrInvalidDocument, len(errors), strings.Join(errors, "\n- "))
	}
	return nil
}

func duplicates(where string, specs []domain.ComponentSpec) []string {
	var out []string
	seen := make(map[string]bool, len(specs))
	for _, s := range specs {
		if s.Name == "" {
			continue
		}
		key := strings.ToLower(s.Name)
		if seen[key] {
			out = append(out, fmt.Sprintf("%s: duplicate name '%s'", where, s.Name))
		}
		seen[key] = true
	}
	return out
}

func childPath(parent, field string, i int, spec *domain.ComponentSpec) string {
	if field != "" {
		parent += "." + field
	}
	if spec.Name != "" {
		return parent + "/" + spec.Name
	}
	return fmt.Sprintf("%s[%d]", parent, i)
}

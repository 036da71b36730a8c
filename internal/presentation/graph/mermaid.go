package graph

import (
	"fmt"
	"strings"

	"github.com/aretw0/atelier/pkg/domain"
)

// GraphOverlay marks components to highlight on the diagram, by dotted path.
type GraphOverlay struct {
	Highlighted []string
	Selected    string
}

// GenerateMermaid produces a Mermaid flowchart of the component tree of doc.
// It applies semantic styling:
// - Root: ((Circle))
// - Component owning nested containers: [[Subroutine]]
// - Default: [Rectangle]
// Edges into named nested containers carry the container name as a label.
func GenerateMermaid(doc *domain.Document, overlay *GraphOverlay) string {
	var sb strings.Builder
	sb.WriteString("graph TD\n")
	if doc == nil {
		return sb.String()
	}

	w := &writer{sb: &sb}
	rootID := w.node(doc.Root, doc.Root.Name, true)
	for _, child := range doc.Root.Children {
		w.edge(rootID, "", w.tree(child, child.Name))
	}
	for _, c := range doc.Root.Containers {
		for _, child := range c.Components {
			w.edge(rootID, c.Name, w.tree(child, child.Name))
		}
	}

	if overlay != nil {
		sb.WriteString("\n    %% Overlay Styles\n")
		sb.WriteString("    classDef highlighted fill:#e1f5fe,stroke:#01579b,stroke-width:2px,color:#000;\n")
		sb.WriteString("    classDef selected fill:#ffeb3b,stroke:#fbc02d,stroke-width:4px,color:#000;\n")

		seen := make(map[string]bool)
		for _, p := range overlay.Highlighted {
			id := sanitizeMermaidID(p)
			if id != "" && !seen[id] {
				seen[id] = true
				fmt.Fprintf(&sb, "    class %s highlighted;\n", id)
			}
		}
		if overlay.Selected != "" {
			fmt.Fprintf(&sb, "    class %s selected;\n", sanitizeMermaidID(overlay.Selected))
		}
	}
	return sb.String()
}

type writer struct {
	sb      *strings.Builder
	unnamed int
}

// tree writes spec and its descendants. path is the dotted path of spec below the root.
func (w *writer) tree(spec domain.ComponentSpec, path string) string {
	id := w.node(spec, path, false)
	for _, child := range spec.Children {
		w.edge(id, "", w.tree(child, join(path, child.Name)))
	}
	for _, c := range spec.Containers {
		for _, child := range c.Components {
			w.edge(id, c.Name, w.tree(child, join(path, child.Name)))
		}
	}
	return id
}

func (w *writer) node(spec domain.ComponentSpec, path string, root bool) string {
	id := sanitizeMermaidID(path)
	if spec.Name == "" {
		w.unnamed++
		id = fmt.Sprintf("unnamed_%d", w.unnamed)
	}

	opener, closer := "[", "]"
	switch {
	case root:
		opener, closer = "((", "))"
	case len(spec.Children) > 0 || len(spec.Containers) > 0:
		opener, closer = "[[", "]]"
	}

	label := spec.Name
	if label == "" {
		label = "(unnamed)"
	}
	fmt.Fprintf(w.sb, "    %s%s\"%s <br/> %s\"%s\n", id, opener, label, spec.Type, closer)
	return id
}

func (w *writer) edge(from, container, to string) {
	if container == "" {
		fmt.Fprintf(w.sb, "    %s --> %s\n", from, to)
		return
	}
	fmt.Fprintf(w.sb, "    %s -- \"%s\" --> %s\n", from, strings.ReplaceAll(container, "\"", "'"), to)
}

func join(parent, name string) string {
	if parent == "" {
		return name
	}
	return parent + "." + name
}

func sanitizeMermaidID(id string) string {
	s := strings.ReplaceAll(id, ".", "_")
	s = strings.ReplaceAll(s, "-", "_")
	s = strings.ReplaceAll(s, "/", "_")
	s = strings.ReplaceAll(s, "\\", "_")
	s = strings.ReplaceAll(s, " ", "_")
	return s
}

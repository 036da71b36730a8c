package tui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/aretw0/atelier/pkg/actions"
	"github.com/aretw0/atelier/pkg/design"
	"github.com/aretw0/atelier/pkg/domain"
)

// Report describes the components of a loaded surface as Markdown: one table
// row per component in walk order, followed by the actions each one offers.
func Report(surface *design.Surface) (string, error) {
	h := surface.Host()
	var sb strings.Builder

	title := h.RootComponentClassName()
	if title == "" {
		title = "(empty surface)"
	}
	fmt.Fprintf(&sb, "# %s\n\n", title)
	fmt.Fprintf(&sb, "%d components\n\n", h.Count())

	sb.WriteString("| Component | Type | Container | Properties |\n")
	sb.WriteString("|---|---|---|---|\n")

	type entry struct {
		name  string
		lists []actions.List
	}
	var withActions []entry
	var err error
	h.Walk(func(s *design.Site, depth int) bool {
		c := s.Component()
		var props map[string]any
		if props, err = design.Properties(c); err != nil {
			return false
		}
		container := ""
		if n, ok := s.Container().(*design.NestedContainer); ok {
			container = n.ContainerName()
			if container == "" {
				container = "(default)"
			}
		}
		name := strings.Repeat("&nbsp;&nbsp;", depth) + escape(s.FullName())
		if c == h.RootComponent() {
			name = "**" + name + "**"
		}
		fmt.Fprintf(&sb, "| %s | `%s` | %s | %s |\n", name, domain.TypeName(c), escape(container), formatProperties(props))

		var lists []actions.List
		if lists, err = surface.Actions().GetComponentActions(c, actions.All); err != nil {
			return false
		}
		if len(lists) > 0 {
			withActions = append(withActions, entry{name: s.FullName(), lists: lists})
		}
		return true
	})
	if err != nil {
		return "", err
	}

	if len(withActions) > 0 {
		sb.WriteString("\n## Actions\n")
		for _, e := range withActions {
			fmt.Fprintf(&sb, "\n### %s\n\n", e.name)
			for _, l := range e.lists {
				for _, it := range l.SortedItems() {
					writeItem(&sb, it)
				}
			}
		}
	}
	return sb.String(), nil
}

func writeItem(sb *strings.Builder, it actions.Item) {
	switch it.(type) {
	case *actions.HeaderItem:
		fmt.Fprintf(sb, "- **%s**\n", it.DisplayName())
		return
	}
	line := "- " + it.DisplayName()
	if _, ok := it.(actions.Invoker); ok {
		line += " ▶"
	}
	if d := it.Description(); d != "" {
		line += ": " + d
	}
	sb.WriteString(line + "\n")
}

func formatProperties(props map[string]any) string {
	if len(props) == 0 {
		return ""
	}
	keys := make([]string, 0, len(props))
	for k := range props {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = fmt.Sprintf("%s=%v", k, props[k])
	}
	return escape(strings.Join(parts, ", "))
}

func escape(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}

package design_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/atelier/pkg/design"
)

func TestHost_Walk(t *testing.T) {
	h, root := newHostWithRoot(t)
	child := &childComponent{}
	require.NoError(t, h.AddNamed(child, "panel"))

	inner, err := siteOf(t, child).CreateNestedContainer("")
	require.NoError(t, err)
	require.NoError(t, inner.AddNamed(&plainComponent{}, "button"))
	footer, err := siteOf(t, child).CreateNestedContainer("footer")
	require.NoError(t, err)
	require.NoError(t, footer.AddNamed(&plainComponent{}, "status"))

	var visited []string
	var depths []int
	h.Walk(func(s *design.Site, depth int) bool {
		visited = append(visited, s.FullName())
		depths = append(depths, depth)
		return true
	})
	assert.Equal(t, []string{siteOf(t, root).FullName(), "panel", "panel.button", "panel.footer.status"}, visited)
	assert.Equal(t, []int{0, 0, 1, 1}, depths)
	assert.Equal(t, 4, h.Count())

	c, ok := h.Find("PANEL.Footer.Status")
	require.True(t, ok)
	assert.Equal(t, "status", siteOf(t, c).Name())

	_, ok = h.Find("")
	assert.False(t, ok)
	_, ok = h.Find("panel.missing")
	assert.False(t, ok)

	var first []string
	h.Walk(func(s *design.Site, _ int) bool {
		first = append(first, s.Name())
		return len(first) < 2
	})
	assert.Len(t, first, 2)
}

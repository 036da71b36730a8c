package design

import (
	"strings"

	"github.com/aretw0/atelier/pkg/domain"
)

// WalkFunc is called for every sited component. depth is 0 for components
// sited directly in the host. Returning false stops the walk.
type WalkFunc func(site *Site, depth int) bool

// Walk visits the components of the host depth-first, each followed by the
// components of its nested containers in creation order.
func (h *Host) Walk(fn WalkFunc) {
	walkSites(h.sites, 0, fn)
}

func walkSites(sites []*Site, depth int, fn WalkFunc) bool {
	for _, s := range sites {
		if !fn(s, depth) {
			return false
		}
		for _, n := range s.NestedContainers() {
			if !walkSites(n.sites, depth+1, fn) {
				return false
			}
		}
	}
	return true
}

// Find returns the component whose full name matches, ignoring case.
func (h *Host) Find(fullName string) (domain.Component, bool) {
	if fullName == "" {
		return nil, false
	}
	var found domain.Component
	h.Walk(func(s *Site, _ int) bool {
		if strings.EqualFold(s.FullName(), fullName) {
			found = s.component
			return false
		}
		return true
	})
	return found, found != nil
}

// Count returns the number of components sited in the host and its nested containers.
func (h *Host) Count() int {
	n := 0
	h.Walk(func(*Site, int) bool {
		n++
		return true
	})
	return n
}

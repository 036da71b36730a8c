package design

import (
	"fmt"

	"github.com/aretw0/atelier/pkg/actions"
)

// Surface owns a Host and its smart-tag action service.
// Dispose is the only way to tear the host down.
type Surface struct {
	host    *Host
	actions *actions.Service
}

// NewSurface creates a host configured by opts and registers an action service in it.
func NewSurface(opts ...Option) (*Surface, error) {
	h := newHost(opts...)
	svc, err := actions.NewService(h, actions.WithLogger(h.logger))
	if err != nil {
		return nil, fmt.Errorf("new surface: %w", err)
	}
	return &Surface{host: h, actions: svc}, nil
}

func (s *Surface) Host() *Host {
	return s.host
}

func (s *Surface) Actions() *actions.Service {
	return s.actions
}

// Dispose unregisters the action service, cancels open transactions and
// removes every component. The host rejects further use with domain.ErrDisposed.
func (s *Surface) Dispose() {
	if s.host.disposed {
		return
	}
	s.actions.Dispose()
	s.host.teardown()
}

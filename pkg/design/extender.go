package design

import (
	"reflect"

	"github.com/aretw0/atelier/pkg/domain"
	"github.com/aretw0/atelier/pkg/ports"
)

// ExtenderService is the default extender provider registry of a host.
type ExtenderService struct {
	providers []domain.ExtenderProvider
}

func NewExtenderService() *ExtenderService {
	return &ExtenderService{}
}

// AddExtenderProvider registers p. Nil and already registered providers are invalid arguments.
func (s *ExtenderService) AddExtenderProvider(p domain.ExtenderProvider) error {
	if p == nil {
		return domain.NilArgument("provider")
	}
	if !reflect.ValueOf(p).Comparable() {
		return &domain.ArgumentError{Param: "provider", Reason: "must be comparable"}
	}
	if s.index(p) >= 0 {
		return &domain.ArgumentError{Param: "provider", Reason: "already registered"}
	}
	s.providers = append(s.providers, p)
	return nil
}

func (s *ExtenderService) RemoveExtenderProvider(p domain.ExtenderProvider) {
	if i := s.index(p); i >= 0 {
		s.providers = append(s.providers[:i:i], s.providers[i+1:]...)
	}
}

// ExtenderProviders returns the registered providers in registration order.
func (s *ExtenderService) ExtenderProviders() []domain.ExtenderProvider {
	out := make([]domain.ExtenderProvider, len(s.providers))
	copy(out, s.providers)
	return out
}

func (s *ExtenderService) index(p domain.ExtenderProvider) int {
	if p == nil {
		return -1
	}
	for i, q := range s.providers {
		if q == p {
			return i
		}
	}
	return -1
}

func (s *ExtenderService) reset() {
	s.providers = nil
}

var (
	_ ports.ExtenderProviderService = (*ExtenderService)(nil)
	_ ports.ExtenderListService     = (*ExtenderService)(nil)
)

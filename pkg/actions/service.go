package actions

import (
	"fmt"
	"log/slog"

	"github.com/aretw0/atelier/internal/logging"
	"github.com/aretw0/atelier/pkg/domain"
	"github.com/aretw0/atelier/pkg/ports"
)

// Source selects which action lists GetComponentActions returns.
type Source int

const (
	// All returns service-registered lists followed by designer lists.
	All Source = iota
	// FromComponent returns only the lists pulled from the component's designer.
	FromComponent
	// FromService returns only the lists registered with the service.
	FromService
)

// ChangeType tells whether lists were added or removed.
type ChangeType int

const (
	ListsAdded ChangeType = iota
	ListsRemoved
)

func (t ChangeType) String() string {
	if t == ListsRemoved {
		return "removed"
	}
	return "added"
}

// ListsChangedEvent reports a change of a component's registered lists.
// Lists holds the lists still registered for the component after the change.
type ListsChangedEvent struct {
	Component domain.Component
	Type      ChangeType
	Lists     []List
}

// Service manages the smart-tag action lists of a design surface.
// It is not safe for concurrent use.
type Service struct {
	host   ports.DesignerHost
	logger *slog.Logger

	lists map[domain.Component][]List
	order []domain.Component

	nextID      int
	subscribers []subscriber

	cancelHost func()
	disposed   bool
}

type subscriber struct {
	id int
	fn func(*ListsChangedEvent)
}

// Option configures the Service.
type Option func(*Service)

// WithLogger configures a logger for the Service.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// NewService creates an action service. When provider exposes a designer host,
// the service registers itself there under ServiceType and drops the lists of
// components the host removes.
func NewService(provider domain.ServiceProvider, opts ...Option) (*Service, error) {
	s := &Service{
		lists:  make(map[domain.Component][]List),
		logger: logging.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}

	host, ok := domain.Lookup[ports.DesignerHost](provider)
	if !ok {
		return s, nil
	}
	if err := host.AddService(ServiceType, s, false); err != nil {
		return nil, fmt.Errorf("register action service: %w", err)
	}
	s.host = host
	s.cancelHost = host.Subscribe(domain.ChangeHooks{
		OnComponentRemoved: func(e *domain.ComponentEvent) {
			if err := s.Remove(e.Component); err != nil {
				s.logger.Warn("failed to drop action lists", "error", err)
			}
		},
	})
	return s, nil
}

// OnListsChanged registers fn for list changes and returns a function that unregisters it.
func (s *Service) OnListsChanged(fn func(*ListsChangedEvent)) (cancel func()) {
	if fn == nil {
		return func() {}
	}
	s.nextID++
	id := s.nextID
	s.subscribers = append(s.subscribers, subscriber{id: id, fn: fn})
	return func() {
		for i, sub := range s.subscribers {
			if sub.id == id {
				s.subscribers = append(s.subscribers[:i:i], s.subscribers[i+1:]...)
				return
			}
		}
	}
}

// Add registers lists for component c.
func (s *Service) Add(c domain.Component, lists ...List) error {
	if c == nil {
		return domain.NilArgument("component")
	}
	for _, l := range lists {
		if isNil(l) {
			return domain.NilArgument("list")
		}
	}
	if len(lists) == 0 {
		return nil
	}
	if _, ok := s.lists[c]; !ok {
		s.order = append(s.order, c)
	}
	s.lists[c] = append(s.lists[c], lists...)
	s.emit(c, ListsAdded)
	return nil
}

// Remove drops every list registered for component c.
func (s *Service) Remove(c domain.Component) error {
	if c == nil {
		return domain.NilArgument("component")
	}
	if _, ok := s.lists[c]; !ok {
		return nil
	}
	s.drop(c)
	s.emit(c, ListsRemoved)
	return nil
}

// RemoveList drops every registration of l, for any component.
func (s *Service) RemoveList(l List) error {
	if isNil(l) {
		return domain.NilArgument("list")
	}
	for _, c := range s.snapshotOrder() {
		if s.without(c, l) {
			s.emit(c, ListsRemoved)
		}
	}
	return nil
}

// RemoveFrom drops every registration of l for component c.
func (s *Service) RemoveFrom(c domain.Component, l List) error {
	if c == nil {
		return domain.NilArgument("component")
	}
	if isNil(l) {
		return domain.NilArgument("list")
	}
	if s.without(c, l) {
		s.emit(c, ListsRemoved)
	}
	return nil
}

// Contains reports whether any list is registered for c.
func (s *Service) Contains(c domain.Component) bool {
	if c == nil {
		return false
	}
	_, ok := s.lists[c]
	return ok
}

// Clear drops all registrations, raising one event per component.
func (s *Service) Clear() {
	comps := s.snapshotOrder()
	s.lists = make(map[domain.Component][]List)
	s.order = nil
	for _, c := range comps {
		s.emit(c, ListsRemoved)
	}
}

// GetComponentActions returns the action lists for c from the selected source.
func (s *Service) GetComponentActions(c domain.Component, src Source) ([]List, error) {
	if c == nil {
		return nil, domain.NilArgument("component")
	}
	var result []List
	switch src {
	case FromService:
		result = s.serviceActions(c)
	case FromComponent:
		result = s.designerActions(c)
	default:
		result = append(s.serviceActions(c), s.designerActions(c)...)
	}
	return result, nil
}

// Dispose unregisters the service from its host.
func (s *Service) Dispose() {
	if s.disposed {
		return
	}
	s.disposed = true
	if s.cancelHost != nil {
		s.cancelHost()
		s.cancelHost = nil
	}
	if s.host != nil {
		if err := s.host.RemoveService(ServiceType, false); err != nil {
			s.logger.Debug("action service already detached", "error", err)
		}
		s.host = nil
	}
}

func (s *Service) serviceActions(c domain.Component) []List {
	registered := s.lists[c]
	if len(registered) == 0 {
		return nil
	}
	out := make([]List, len(registered))
	copy(out, registered)
	return out
}

// designerActions pulls lists from the command set on the component's site.
// Verbs are only consulted when the designer publishes no action lists.
func (s *Service) designerActions(c domain.Component) []List {
	cs := lookupCommandSet(c)
	if cs == nil {
		return nil
	}
	var result []List
	for _, l := range ActionLists(cs) {
		if len(l.SortedItems()) > 0 {
			result = append(result, l)
		}
	}
	if len(result) > 0 {
		return result
	}
	verbs := Verbs(cs)
	if len(verbs) == 0 {
		return nil
	}
	vl := NewVerbList(c, verbs...)
	if len(vl.SortedItems()) == 0 {
		return nil
	}
	return []List{vl}
}

// without removes l from c's registrations and reports whether anything changed.
func (s *Service) without(c domain.Component, l List) bool {
	registered, ok := s.lists[c]
	if !ok {
		return false
	}
	kept := registered[:0:0]
	for _, r := range registered {
		if !sameList(r, l) {
			kept = append(kept, r)
		}
	}
	if len(kept) == len(registered) {
		return false
	}
	if len(kept) == 0 {
		s.drop(c)
	} else {
		s.lists[c] = kept
	}
	return true
}

func (s *Service) drop(c domain.Component) {
	delete(s.lists, c)
	for i, o := range s.order {
		if o == c {
			s.order = append(s.order[:i:i], s.order[i+1:]...)
			break
		}
	}
}

func (s *Service) snapshotOrder() []domain.Component {
	out := make([]domain.Component, len(s.order))
	copy(out, s.order)
	return out
}

func (s *Service) emit(c domain.Component, t ChangeType) {
	if len(s.subscribers) == 0 {
		return
	}
	e := &ListsChangedEvent{Component: c, Type: t, Lists: s.serviceActions(c)}
	subs := make([]subscriber, len(s.subscribers))
	copy(subs, s.subscribers)
	for _, sub := range subs {
		sub.fn(e)
	}
}

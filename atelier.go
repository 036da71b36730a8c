package atelier

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"reflect"

	"github.com/aretw0/atelier/internal/logging"
	"github.com/aretw0/atelier/pkg/design"
	"github.com/aretw0/atelier/pkg/document"
	"github.com/aretw0/atelier/pkg/domain"
	"github.com/aretw0/atelier/pkg/naming"
	"github.com/aretw0/atelier/pkg/observability"
	"github.com/aretw0/atelier/pkg/ports"
	"github.com/aretw0/atelier/pkg/registry"
	"github.com/aretw0/atelier/pkg/toolbox"
)

// Version is the atelier release.
const Version = "0.4.0"

// Studio is the high-level entry point for the atelier library.
// It holds the component registry and the services every design surface it
// creates shares, and opens documents into fresh surfaces.
type Studio struct {
	registry  *registry.Registry
	names     ports.NameCreationService
	metrics   *observability.Metrics
	parent    domain.ServiceProvider
	namespace string
	audit     bool
	logger    *slog.Logger
}

// Option defines a functional option for configuring the Studio.
type Option func(*Studio)

// WithRegistry replaces the default registry, which holds the toolbox types.
func WithRegistry(r *registry.Registry) Option {
	return func(s *Studio) {
		s.registry = r
	}
}

// WithNameCreation replaces the default name-creation service.
func WithNameCreation(names ports.NameCreationService) Option {
	return func(s *Studio) {
		s.names = names
	}
}

// WithMetrics attaches m to every surface the studio creates.
func WithMetrics(m *observability.Metrics) Option {
	return func(s *Studio) {
		s.metrics = m
	}
}

// WithParentServices sets the provider consulted after a host's own services.
func WithParentServices(parent domain.ServiceProvider) Option {
	return func(s *Studio) {
		s.parent = parent
	}
}

// WithNamespace qualifies root class names of new surfaces.
func WithNamespace(namespace string) Option {
	return func(s *Studio) {
		s.namespace = namespace
	}
}

// WithAuditLog logs component additions, removals and renames at Info level.
func WithAuditLog(enabled bool) Option {
	return func(s *Studio) {
		s.audit = enabled
	}
}

// WithLogger sets a custom structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Studio) {
		s.logger = logger
	}
}

// New initializes a Studio. Without WithRegistry the toolbox types are registered.
func New(opts ...Option) (*Studio, error) {
	s := &Studio{}
	for _, opt := range opts {
		opt(s)
	}

	if s.registry == nil {
		s.registry = registry.NewRegistry()
		if err := toolbox.Register(s.registry); err != nil {
			return nil, fmt.Errorf("failed to register toolbox: %w", err)
		}
	}
	if s.names == nil {
		s.names = naming.New()
	}
	if s.logger == nil {
		s.logger = logging.NewNop()
	}
	return s, nil
}

// Registry returns the component registry.
func (s *Studio) Registry() *registry.Registry {
	return s.registry
}

// NewSurface creates an empty design surface.
func (s *Studio) NewSurface() (*design.Surface, error) {
	opts := []design.Option{
		design.WithDesigners(s.registry),
		design.WithLogger(s.logger),
		design.WithRootNamespace(s.namespace),
		design.WithFallbackService(reflect.TypeFor[ports.NameCreationService](), s.names),
		design.WithFallbackService(reflect.TypeFor[ports.TypeDescriptionProviderService](), ports.TypeDescriptionProviderService(toolbox.Descriptions{})),
	}
	if s.parent != nil {
		opts = append(opts, design.WithParent(s.parent))
	}
	surface, err := design.NewSurface(opts...)
	if err != nil {
		return nil, err
	}
	if s.metrics != nil {
		s.metrics.Attach(surface.Host())
	}
	if s.audit {
		surface.Host().Subscribe(observability.LoggingHooks(s.logger))
	}
	return surface, nil
}

// Load creates a surface populated from doc.
func (s *Studio) Load(doc *domain.Document) (*design.Surface, error) {
	surface, err := s.NewSurface()
	if err != nil {
		return nil, err
	}
	if err := document.Load(surface.Host(), doc); err != nil {
		surface.Dispose()
		return nil, err
	}
	surface.Host().Activate()
	return surface, nil
}

// Open reads the document at path and loads it into a new surface.
func (s *Studio) Open(path string) (*design.Surface, error) {
	doc, err := document.ReadFile(path)
	if err != nil {
		return nil, err
	}
	surface, err := s.Load(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", filepath.Base(path), err)
	}
	return surface, nil
}

// Validate checks doc against the studio's registry without loading it.
func (s *Studio) Validate(doc *domain.Document) error {
	return document.Validate(doc, s.registry)
}

// Open is a shortcut for New(opts...) followed by Studio.Open.
func Open(path string, opts ...Option) (*design.Surface, error) {
	s, err := New(opts...)
	if err != nil {
		return nil, err
	}
	return s.Open(path)
}

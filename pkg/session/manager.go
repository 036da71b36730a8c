package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"maps"
	"slices"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/aretw0/atelier/internal/logging"
	"github.com/aretw0/atelier/pkg/design"
	"github.com/aretw0/atelier/pkg/document"
	"github.com/aretw0/atelier/pkg/domain"
	"github.com/aretw0/atelier/pkg/ports"
)

// DefaultLockTTL bounds how long a distributed lock survives a crashed holder.
const DefaultLockTTL = 30 * time.Second

// SurfaceFactory creates a design surface populated from a document.
type SurfaceFactory interface {
	Load(doc *domain.Document) (*design.Surface, error)
}

// lockEntry holds the mutex and the reference count.
type lockEntry struct {
	mu   sync.Mutex
	refs int
}

// Manager orchestrates access to open design surfaces, ensuring safe concurrent operations.
// It uses Reference Counting to garbage collect unused locks.
type Manager struct {
	store   ports.DocumentStore
	factory SurfaceFactory

	mu       sync.Mutex                 // Global lock for the maps
	locks    map[string]*lockEntry      // Map of active locks
	surfaces map[string]*design.Surface // Open surfaces, by document ID

	locker  ports.DistributedLocker // Optional distributed locker
	lockTTL time.Duration
	logger  *slog.Logger
}

// Option configures the Manager.
type Option func(*Manager)

// WithLocker enables distributed locking.
func WithLocker(locker ports.DistributedLocker) Option {
	return func(m *Manager) {
		m.locker = locker
	}
}

// WithLockTTL sets the TTL of distributed locks.
func WithLockTTL(ttl time.Duration) Option {
	return func(m *Manager) {
		m.lockTTL = ttl
	}
}

// WithLogger configures a logger for the Manager.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Manager) {
		m.logger = logger
	}
}

// NewManager creates a Manager persisting documents in store and opening
// them with factory.
func NewManager(store ports.DocumentStore, factory SurfaceFactory, opts ...Option) *Manager {
	m := &Manager{
		store:    store,
		factory:  factory,
		locks:    make(map[string]*lockEntry),
		surfaces: make(map[string]*design.Surface),
		lockTTL:  DefaultLockTTL,
		logger:   logging.NewNop(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// acquire gets or creates a lock entry and increments its reference count.
// The caller MUST Lock the entry.mu, and then call release(id) after unlocking.
func (m *Manager) acquire(id string) *lockEntry {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, exists := m.locks[id]
	if !exists {
		entry = &lockEntry{}
		m.locks[id] = entry
	}
	entry.refs++
	return entry
}

// release decrements the reference count and deletes the entry if it reaches zero.
func (m *Manager) release(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, exists := m.locks[id]
	if !exists {
		return
	}

	entry.refs--
	if entry.refs <= 0 {
		delete(m.locks, id)
	}
}

// Create stores doc under a new ID and opens it.
func (m *Manager) Create(ctx context.Context, doc *domain.Document) (string, error) {
	if doc == nil {
		return "", domain.NilArgument("doc")
	}
	id := ulid.Make().String()
	err := m.WithLock(ctx, id, func(ctx context.Context) error {
		surface, err := m.factory.Load(doc)
		if err != nil {
			return err
		}
		stored := *doc
		stored.ID = id
		if err := m.store.Save(ctx, id, &stored); err != nil {
			surface.Dispose()
			return fmt.Errorf("failed to save document: %w", err)
		}
		m.put(id, surface)
		return nil
	})
	if err != nil {
		return "", err
	}
	m.logger.Info("Document created", "document_id", id, "root", doc.RootClassName())
	return id, nil
}

// Open loads the document into a surface unless it is already open.
func (m *Manager) Open(ctx context.Context, id string) error {
	return m.WithLock(ctx, id, func(ctx context.Context) error {
		_, err := m.open(ctx, id)
		return err
	})
}

// WithSurface runs fn with exclusive access to the surface of the document,
// opening it first when needed.
func (m *Manager) WithSurface(ctx context.Context, id string, fn func(context.Context, *design.Surface) error) error {
	return m.WithLock(ctx, id, func(ctx context.Context) error {
		surface, err := m.open(ctx, id)
		if err != nil {
			return err
		}
		return fn(ctx, surface)
	})
}

// Snapshot describes the current state of an open or stored document.
func (m *Manager) Snapshot(ctx context.Context, id string) (*domain.Document, error) {
	var doc *domain.Document
	err := m.WithSurface(ctx, id, func(_ context.Context, s *design.Surface) error {
		var err error
		doc, err = document.Snapshot(s.Host())
		if doc != nil {
			doc.ID = id
		}
		return err
	})
	return doc, err
}

// Save persists the current state of an open document.
func (m *Manager) Save(ctx context.Context, id string) error {
	return m.WithLock(ctx, id, func(ctx context.Context) error {
		surface, ok := m.get(id)
		if !ok {
			return &domain.HostError{Op: "save", Name: id, Err: domain.ErrInvalidOperation}
		}
		doc, err := document.Snapshot(surface.Host())
		if err != nil {
			return err
		}
		doc.ID = id
		return m.store.Save(ctx, id, doc)
	})
}

// Close disposes the surface of the document without saving it.
// Closing a document that is not open is a no-op.
func (m *Manager) Close(ctx context.Context, id string) error {
	return m.WithLock(ctx, id, func(context.Context) error {
		m.drop(id)
		return nil
	})
}

// Delete closes the document and removes it from the store.
func (m *Manager) Delete(ctx context.Context, id string) error {
	return m.WithLock(ctx, id, func(ctx context.Context) error {
		m.drop(id)
		return m.store.Delete(ctx, id)
	})
}

// List delegates to the store.
func (m *Manager) List(ctx context.Context) ([]string, error) {
	return m.store.List(ctx)
}

// IsOpen reports whether the document has a live surface.
func (m *Manager) IsOpen(id string) bool {
	_, ok := m.get(id)
	return ok
}

// OpenDocuments returns the IDs of open documents, sorted.
func (m *Manager) OpenDocuments() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Sorted(maps.Keys(m.surfaces))
}

// Shutdown closes every open document.
func (m *Manager) Shutdown(ctx context.Context) error {
	var errs []error
	for _, id := range m.OpenDocuments() {
		if err := m.Close(ctx, id); err != nil {
			errs = append(errs, fmt.Errorf("close %s: %w", id, err))
		}
	}
	return errors.Join(errs...)
}

// Store returns the underlying document store.
func (m *Manager) Store() ports.DocumentStore {
	return m.store
}

// WithLock executes a function while holding the lock for the document.
func (m *Manager) WithLock(ctx context.Context, id string, fn func(context.Context) error) error {
	entry := m.acquire(id)
	entry.mu.Lock()
	defer func() {
		entry.mu.Unlock()
		m.release(id)
	}()

	// Distributed Locking
	if m.locker != nil {
		unlock, err := m.locker.Lock(ctx, id, m.lockTTL)
		if err != nil {
			return fmt.Errorf("failed to acquire distributed lock: %w", err)
		}
		defer func() {
			if err := unlock(ctx); err != nil {
				m.logger.Warn("Failed to release distributed lock (will expire via TTL)",
					"document_id", id,
					"err", err,
				)
			}
		}()
	}

	return fn(ctx)
}

// open returns the surface of id, loading it from the store. Callers hold the lock of id.
func (m *Manager) open(ctx context.Context, id string) (*design.Surface, error) {
	if s, ok := m.get(id); ok {
		return s, nil
	}
	doc, err := m.store.Load(ctx, id)
	if err != nil {
		return nil, err
	}
	surface, err := m.factory.Load(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to open document %s: %w", id, err)
	}
	m.put(id, surface)
	m.logger.Debug("Document opened", "document_id", id)
	return surface, nil
}

func (m *Manager) get(id string) (*design.Surface, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.surfaces[id]
	return s, ok
}

func (m *Manager) put(id string, s *design.Surface) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.surfaces[id] = s
}

// drop disposes and forgets the surface of id. Callers hold the lock of id.
func (m *Manager) drop(id string) {
	m.mu.Lock()
	s, ok := m.surfaces[id]
	delete(m.surfaces, id)
	m.mu.Unlock()
	if ok {
		s.Dispose()
		m.logger.Debug("Document closed", "document_id", id)
	}
}

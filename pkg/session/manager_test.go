package session_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/atelier"
	"github.com/aretw0/atelier/pkg/adapters/memory"
	"github.com/aretw0/atelier/pkg/design"
	"github.com/aretw0/atelier/pkg/domain"
	"github.com/aretw0/atelier/pkg/ports"
	"github.com/aretw0/atelier/pkg/session"
	"github.com/aretw0/atelier/pkg/toolbox"
)

// SlowStore simulates latency to provoke race conditions if locking is missing.
type SlowStore struct {
	*memory.Store
}

func (s *SlowStore) Save(ctx context.Context, id string, doc *domain.Document) error {
	time.Sleep(5 * time.Millisecond) // Simulate IO
	return s.Store.Save(ctx, id, doc)
}

func (s *SlowStore) Load(ctx context.Context, id string) (*domain.Document, error) {
	time.Sleep(5 * time.Millisecond) // Simulate IO
	return s.Store.Load(ctx, id)
}

func newDocument() *domain.Document {
	return &domain.Document{
		Namespace: "shop",
		Root: domain.ComponentSpec{
			Type: "toolbox.Form",
			Name: "Orders",
			Children: []domain.ComponentSpec{
				{Type: "toolbox.Timer", Name: "refresh", Properties: map[string]any{"interval": 500}},
			},
		},
	}
}

func newManager(t *testing.T, store ports.DocumentStore, opts ...session.Option) *session.Manager {
	t.Helper()
	studio, err := atelier.New()
	require.NoError(t, err)
	m := session.NewManager(store, studio, opts...)
	t.Cleanup(func() { _ = m.Shutdown(context.Background()) })
	return m
}

func TestManager_CreateAndSave(t *testing.T) {
	store := memory.NewStore()
	manager := newManager(t, store)
	ctx := context.Background()

	id, err := manager.Create(ctx, newDocument())
	require.NoError(t, err)
	assert.Len(t, id, 26, "ULID")
	assert.True(t, manager.IsOpen(id))

	stored, err := store.Load(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, id, stored.ID)
	assert.Equal(t, "shop.Orders", stored.RootClassName())

	err = manager.WithSurface(ctx, id, func(_ context.Context, s *design.Surface) error {
		c, ok := s.Host().Component("refresh")
		require.True(t, ok)
		c.(*toolbox.Timer).Interval = 1000
		return nil
	})
	require.NoError(t, err)
	require.NoError(t, manager.Save(ctx, id))

	stored, err = store.Load(ctx, id)
	require.NoError(t, err)
	require.Len(t, stored.Root.Children, 1)
	assert.Equal(t, 1000, stored.Root.Children[0].Properties["interval"])
}

func TestManager_CreateInvalidDocument(t *testing.T) {
	store := memory.NewStore()
	manager := newManager(t, store)

	_, err := manager.Create(context.Background(), &domain.Document{Root: domain.ComponentSpec{Type: "toolbox.Window"}})
	assert.ErrorIs(t, err, domain.ErrInvalidDocument)

	ids, err := manager.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, ids)
	assert.Empty(t, manager.OpenDocuments())
}

func TestManager_OpenFromStore(t *testing.T) {
	doc := newDocument()
	doc.ID = "orders"
	store, err := memory.NewFromDocuments(doc)
	require.NoError(t, err)
	manager := newManager(t, store)
	ctx := context.Background()

	assert.False(t, manager.IsOpen("orders"))
	require.NoError(t, manager.Open(ctx, "orders"))
	assert.Equal(t, []string{"orders"}, manager.OpenDocuments())

	snap, err := manager.Snapshot(ctx, "orders")
	require.NoError(t, err)
	assert.Equal(t, "orders", snap.ID)
	assert.Equal(t, "shop", snap.Namespace)

	assert.ErrorIs(t, manager.Open(ctx, "missing"), domain.ErrDocumentNotFound)
}

func TestManager_SaveRequiresOpenDocument(t *testing.T) {
	manager := newManager(t, memory.NewStore())
	assert.ErrorIs(t, manager.Save(context.Background(), "nope"), domain.ErrInvalidOperation)
}

func TestManager_CloseDisposesSurface(t *testing.T) {
	manager := newManager(t, memory.NewStore())
	ctx := context.Background()

	id, err := manager.Create(ctx, newDocument())
	require.NoError(t, err)

	var host *design.Host
	require.NoError(t, manager.WithSurface(ctx, id, func(_ context.Context, s *design.Surface) error {
		host = s.Host()
		return nil
	}))

	require.NoError(t, manager.Close(ctx, id))
	assert.False(t, manager.IsOpen(id))
	assert.True(t, host.Disposed())
	require.NoError(t, manager.Close(ctx, id), "closing twice is a no-op")

	// Reopening reads the stored document into a fresh surface.
	require.NoError(t, manager.WithSurface(ctx, id, func(_ context.Context, s *design.Surface) error {
		assert.NotSame(t, host, s.Host())
		return nil
	}))
}

func TestManager_Delete(t *testing.T) {
	store := memory.NewStore()
	manager := newManager(t, store)
	ctx := context.Background()

	id, err := manager.Create(ctx, newDocument())
	require.NoError(t, err)
	require.NoError(t, manager.Delete(ctx, id))

	assert.False(t, manager.IsOpen(id))
	_, err = store.Load(ctx, id)
	assert.ErrorIs(t, err, domain.ErrDocumentNotFound)
}

func TestManager_Locking(t *testing.T) {
	store := &SlowStore{Store: memory.NewStore()}
	manager := newManager(t, store)
	ctx := context.Background()

	id, err := manager.Create(ctx, newDocument())
	require.NoError(t, err)

	var wg sync.WaitGroup
	concurrentWrites := 10

	// Each writer performs a read-modify-write on the surface and saves it.
	// Without per-document locking the host would be mutated concurrently.
	for i := 0; i < concurrentWrites; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := manager.WithSurface(ctx, id, func(_ context.Context, s *design.Surface) error {
				c, _ := s.Host().Component("refresh")
				timer := c.(*toolbox.Timer)
				next := timer.Interval + 1
				time.Sleep(time.Millisecond)
				timer.Interval = next
				return nil
			})
			assert.NoError(t, err)
			assert.NoError(t, manager.Save(ctx, id))
		}()
	}
	wg.Wait()

	stored, err := store.Load(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, 500+concurrentWrites, stored.Root.Children[0].Properties["interval"])
}

func TestManager_ConcurrentOpen(t *testing.T) {
	doc := newDocument()
	doc.ID = "shared"
	seed, err := memory.NewFromDocuments(doc)
	require.NoError(t, err)
	manager := newManager(t, &SlowStore{Store: seed})
	ctx := context.Background()

	hosts := make(chan *design.Host, 2)
	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := manager.WithSurface(ctx, "shared", func(_ context.Context, s *design.Surface) error {
				hosts <- s.Host()
				return nil
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()
	close(hosts)

	first, second := <-hosts, <-hosts
	assert.Same(t, first, second, "a document is opened once")
}

// recordingLocker is a DistributedLocker that records lock usage.
type recordingLocker struct {
	mu       sync.Mutex
	keys     []string
	ttls     []time.Duration
	unlocked int
	fail     error
}

func (l *recordingLocker) Lock(ctx context.Context, key string, ttl time.Duration) (ports.UnlockFunc, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.fail != nil {
		return nil, l.fail
	}
	l.keys = append(l.keys, key)
	l.ttls = append(l.ttls, ttl)
	return func(context.Context) error {
		l.mu.Lock()
		defer l.mu.Unlock()
		l.unlocked++
		return nil
	}, nil
}

func TestManager_DistributedLock(t *testing.T) {
	locker := &recordingLocker{}
	manager := newManager(t, memory.NewStore(), session.WithLocker(locker), session.WithLockTTL(time.Second))
	ctx := context.Background()

	id, err := manager.Create(ctx, newDocument())
	require.NoError(t, err)
	require.NoError(t, manager.Save(ctx, id))

	locker.mu.Lock()
	assert.Equal(t, []string{id, id}, locker.keys)
	assert.Equal(t, []time.Duration{time.Second, time.Second}, locker.ttls)
	assert.Equal(t, 2, locker.unlocked)
	locker.mu.Unlock()

	locker.fail = errors.New("redis down")
	err = manager.Save(ctx, id)
	assert.ErrorContains(t, err, "failed to acquire distributed lock")
}

package http

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"

	"github.com/aretw0/atelier/pkg/design"
	"github.com/aretw0/atelier/pkg/domain"
)

// ChangeEvent is the JSON payload streamed for a component change.
type ChangeEvent struct {
	Type      domain.EventType `json:"type"`
	Component string           `json:"component,omitempty"`
	Member    string           `json:"member,omitempty"`
	OldName   string           `json:"old_name,omitempty"`
	NewName   string           `json:"new_name,omitempty"`
}

// StreamManager handles active SSE connections, keyed by document ID.
type StreamManager struct {
	mu          sync.RWMutex
	subscribers map[string]map[chan<- string]struct{}
}

func NewStreamManager() *StreamManager {
	return &StreamManager{
		subscribers: make(map[string]map[chan<- string]struct{}),
	}
}

func (sm *StreamManager) Subscribe(id string) (chan string, func()) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	ch := make(chan string, 10)
	if _, ok := sm.subscribers[id]; !ok {
		sm.subscribers[id] = make(map[chan<- string]struct{})
	}
	sm.subscribers[id][ch] = struct{}{}

	return ch, func() {
		sm.mu.Lock()
		defer sm.mu.Unlock()
		if subs, ok := sm.subscribers[id]; ok {
			delete(subs, ch)
			close(ch)
			if len(subs) == 0 {
				delete(sm.subscribers, id)
			}
		}
	}
}

// Broadcast sends msg to every subscriber of id. Slow subscribers lose messages.
func (sm *StreamManager) Broadcast(id string, msg string) bool {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	delivered := false
	for ch := range sm.subscribers[id] {
		select {
		case ch <- msg:
			delivered = true
		default:
		}
	}
	return delivered
}

// attachment is the change subscription shared by the SSE clients of a document.
type attachment struct {
	host   *design.Host
	refs   int
	cancel func()
}

// attach subscribes the document's host once, however many clients listen.
// Callers hold the document lock.
func (s *Server) attach(id string, h *design.Host) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if a, ok := s.attached[id]; ok {
		if a.host == h {
			a.refs++
			return
		}
		// The document was closed and reopened; the old host is gone.
		a.cancel()
		a.host = h
		a.refs++
		a.cancel = h.Subscribe(s.changeHooks(id))
		return
	}
	s.attached[id] = &attachment{host: h, refs: 1, cancel: h.Subscribe(s.changeHooks(id))}
}

// detach drops a client reference. Callers hold the document lock.
func (s *Server) detach(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.attached[id]
	if !ok {
		return
	}
	a.refs--
	if a.refs <= 0 {
		a.cancel()
		delete(s.attached, id)
	}
}

// changeHooks converts host notifications into broadcasts for document id.
func (s *Server) changeHooks(id string) domain.ChangeHooks {
	send := func(e ChangeEvent) {
		data, err := json.Marshal(e)
		if err != nil {
			return
		}
		if !s.Streams.Broadcast(id, string(data)) {
			s.logger.Debug("SSE: event not delivered", "document_id", id, "type", e.Type)
		}
	}
	component := func(e *domain.ComponentEvent) {
		send(ChangeEvent{Type: e.Type, Component: domain.NameOf(e.Component)})
	}
	return domain.ChangeHooks{
		OnComponentAdded:    component,
		OnComponentRemoving: component,
		OnComponentChanged: func(e *domain.ComponentChangedEvent) {
			c, _ := e.Component.(domain.Component)
			send(ChangeEvent{Type: domain.EventComponentChanged, Component: domain.NameOf(c), Member: e.Member})
		},
		OnComponentRename: func(e *domain.ComponentRenameEvent) {
			send(ChangeEvent{Type: domain.EventComponentRename, Component: e.NewName, OldName: e.OldName, NewName: e.NewName})
		},
	}
}

// SubscribeEvents handles the GET /documents/{id}/events request (SSE).
func (s *Server) SubscribeEvents(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming not supported", http.StatusInternalServerError)
		return
	}
	id := chi.URLParam(r, "id")

	ch, unsubscribe := s.Streams.Subscribe(id)
	defer unsubscribe()

	err := s.Sessions.WithSurface(r.Context(), id, func(_ context.Context, surface *design.Surface) error {
		s.attach(id, surface.Host())
		return nil
	})
	if err != nil {
		s.fail(w, "SubscribeEvents", err)
		return
	}
	defer func() {
		// Host hooks are only touched under the document lock.
		_ = s.Sessions.WithLock(context.Background(), id, func(context.Context) error {
			s.detach(id)
			return nil
		})
	}()

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	fmt.Fprintf(w, "event: ping\ndata: connected\n\n")
	flusher.Flush()
	s.logger.Info("SSE: Subscribing to document updates", "document_id", id)

	for {
		select {
		case <-r.Context().Done():
			s.logger.Info("SSE Client Disconnected", "document_id", id)
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			fmt.Fprintf(w, "data: %s\n\n", msg)
			flusher.Flush()
		}
	}
}

package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"reflect"
	"strings"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/aretw0/atelier/internal/logging"
	"github.com/aretw0/atelier/internal/sanitize"
	"github.com/aretw0/atelier/pkg/actions"
	"github.com/aretw0/atelier/pkg/design"
	"github.com/aretw0/atelier/pkg/document"
	"github.com/aretw0/atelier/pkg/domain"
	"github.com/aretw0/atelier/pkg/schema"
	"github.com/aretw0/atelier/pkg/session"
)

// maxBodySize bounds request bodies.
const maxBodySize = 1 << 20

// Server exposes the documents of a session manager over HTTP.
type Server struct {
	Sessions *session.Manager
	Streams  *StreamManager
	Version  string

	gatherer prometheus.Gatherer
	logger   *slog.Logger

	mu       sync.Mutex
	attached map[string]*attachment
}

// Option configures the Server.
type Option func(*Server)

// WithMetrics serves g on GET /metrics.
func WithMetrics(g prometheus.Gatherer) Option {
	return func(s *Server) {
		s.gatherer = g
	}
}

// WithLogger sets the request logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// WithVersion sets the version reported by GET /info.
func WithVersion(version string) Option {
	return func(s *Server) {
		s.Version = version
	}
}

// NewHandler creates a new HTTP handler for the session manager.
func NewHandler(sessions *session.Manager, opts ...Option) http.Handler {
	server := &Server{
		Sessions: sessions,
		Streams:  NewStreamManager(),
		Version:  "dev",
		logger:   logging.NewNop(),
		attached: make(map[string]*attachment),
	}
	for _, opt := range opts {
		opt(server)
	}

	r := chi.NewRouter()
	r.Use(server.enableCORS)

	r.Get("/health", server.GetHealth)
	r.Get("/info", server.GetInfo)
	if server.gatherer != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(server.gatherer, promhttp.HandlerOpts{}))
	}

	r.Route("/documents", func(r chi.Router) {
		r.Get("/", server.ListDocuments)
		r.Post("/", server.CreateDocument)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", server.GetDocument)
			r.Delete("/", server.DeleteDocument)
			r.Post("/save", server.SaveDocument)
			r.Post("/close", server.CloseDocument)
			r.Get("/events", server.SubscribeEvents)
			r.Get("/components", server.ListComponents)
			r.Get("/components/{name}/actions", server.GetActions)
			r.Post("/components/{name}/actions/invoke", server.InvokeAction)
			r.Post("/components/{name}/rename", server.RenameComponent)
			r.Get("/components/{name}/schema", server.GetSchema)
			r.Post("/components/{name}/properties", server.SetProperties)
		})
	})
	return r
}

func (s *Server) enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// GetHealth handles the GET /health request.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// GetInfo handles the GET /info request.
func (s *Server) GetInfo(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]any{
		"app":     "atelier-http",
		"version": strings.TrimSpace(s.Version),
		"open":    s.Sessions.OpenDocuments(),
	})
}

// ListDocuments handles the GET /documents request.
func (s *Server) ListDocuments(w http.ResponseWriter, r *http.Request) {
	ids, err := s.Sessions.List(r.Context())
	if err != nil {
		s.fail(w, "ListDocuments", err)
		return
	}
	if ids == nil {
		ids = []string{}
	}
	s.writeJSON(w, http.StatusOK, map[string][]string{"documents": ids})
}

// CreateDocument handles the POST /documents request. The body is a YAML or JSON document.
func (s *Server) CreateDocument(w http.ResponseWriter, r *http.Request) {
	data, err := io.ReadAll(io.LimitReader(r.Body, maxBodySize))
	if err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	doc, err := document.Parse(data)
	if err != nil {
		s.fail(w, "CreateDocument", err)
		return
	}
	id, err := s.Sessions.Create(r.Context(), doc)
	if err != nil {
		s.fail(w, "CreateDocument", err)
		return
	}
	w.Header().Set("Location", "/documents/"+id)
	s.writeJSON(w, http.StatusCreated, map[string]string{"id": id})
}

// GetDocument handles the GET /documents/{id} request.
func (s *Server) GetDocument(w http.ResponseWriter, r *http.Request) {
	doc, err := s.Sessions.Snapshot(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.fail(w, "GetDocument", err)
		return
	}
	s.writeJSON(w, http.StatusOK, doc)
}

// DeleteDocument handles the DELETE /documents/{id} request.
func (s *Server) DeleteDocument(w http.ResponseWriter, r *http.Request) {
	if err := s.Sessions.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.fail(w, "DeleteDocument", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// SaveDocument handles the POST /documents/{id}/save request.
func (s *Server) SaveDocument(w http.ResponseWriter, r *http.Request) {
	if err := s.Sessions.Save(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.fail(w, "SaveDocument", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// CloseDocument handles the POST /documents/{id}/close request.
func (s *Server) CloseDocument(w http.ResponseWriter, r *http.Request) {
	if err := s.Sessions.Close(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.fail(w, "CloseDocument", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ListComponents handles the GET /documents/{id}/components request.
func (s *Server) ListComponents(w http.ResponseWriter, r *http.Request) {
	var views []ComponentView
	err := s.Sessions.WithSurface(r.Context(), chi.URLParam(r, "id"), func(_ context.Context, surface *design.Surface) error {
		var err error
		views, err = componentViews(surface.Host())
		return err
	})
	if err != nil {
		s.fail(w, "ListComponents", err)
		return
	}
	s.writeJSON(w, http.StatusOK, views)
}

// GetActions handles the GET /documents/{id}/components/{name}/actions request.
func (s *Server) GetActions(w http.ResponseWriter, r *http.Request) {
	var views []ActionListView
	err := s.withComponent(r, func(surface *design.Surface, c domain.Component) error {
		lists, err := surface.Actions().GetComponentActions(c, sourceOf(r))
		if err != nil {
			return err
		}
		views = actionViews(lists)
		return nil
	})
	if err != nil {
		s.fail(w, "GetActions", err)
		return
	}
	s.writeJSON(w, http.StatusOK, views)
}

// InvokeAction handles the POST /documents/{id}/components/{name}/actions/invoke request.
// The item runs inside a designer transaction that is canceled if it fails.
func (s *Server) InvokeAction(w http.ResponseWriter, r *http.Request) {
	var body InvokeRequest
	if err := json.NewDecoder(io.LimitReader(r.Body, maxBodySize)).Decode(&body); err != nil || body.Item == "" {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	var view ComponentView
	err := s.withComponent(r, func(surface *design.Surface, c domain.Component) error {
		lists, err := surface.Actions().GetComponentActions(c, actions.All)
		if err != nil {
			return err
		}
		inv, ok := findInvoker(lists, body.Item)
		if !ok {
			return &domain.HostError{Op: "invoke", Name: body.Item, Err: errActionNotFound}
		}
		if err := transacted(surface.Host(), "Invoke "+body.Item, inv.Invoke); err != nil {
			return err
		}
		view, err = componentView(surface.Host(), c, 0)
		return err
	})
	if err != nil {
		s.fail(w, "InvokeAction", err)
		return
	}
	s.writeJSON(w, http.StatusOK, view)
}

// RenameComponent handles the POST /documents/{id}/components/{name}/rename request.
func (s *Server) RenameComponent(w http.ResponseWriter, r *http.Request) {
	var body RenameRequest
	if err := json.NewDecoder(io.LimitReader(r.Body, maxBodySize)).Decode(&body); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	var view ComponentView
	err := s.withComponent(r, func(surface *design.Surface, c domain.Component) error {
		old := domain.NameOf(c)
		desc := fmt.Sprintf("Rename %s to %s", old, body.Name)
		if err := transacted(surface.Host(), desc, func() error { return c.Site().SetName(body.Name) }); err != nil {
			return err
		}
		var err error
		view, err = componentView(surface.Host(), c, 0)
		return err
	})
	if err != nil {
		s.fail(w, "RenameComponent", err)
		return
	}
	s.writeJSON(w, http.StatusOK, view)
}

// GetSchema handles the GET /documents/{id}/components/{name}/schema request.
func (s *Server) GetSchema(w http.ResponseWriter, r *http.Request) {
	var props schema.Schema
	err := s.withComponent(r, func(_ *design.Surface, c domain.Component) error {
		props = propertySchema(c)
		return nil
	})
	if err != nil {
		s.fail(w, "GetSchema", err)
		return
	}
	if props == nil {
		props = schema.Schema{}
	}
	s.writeJSON(w, http.StatusOK, props)
}

// SetProperties handles the POST /documents/{id}/components/{name}/properties request.
// The body maps property names to values. Strings are sanitized and the whole
// map is checked against the component schema before anything is applied.
func (s *Server) SetProperties(w http.ResponseWriter, r *http.Request) {
	var props map[string]any
	if err := json.NewDecoder(io.LimitReader(r.Body, maxBodySize)).Decode(&props); err != nil || len(props) == 0 {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	props, err := sanitize.Values(props)
	if err != nil {
		s.fail(w, "SetProperties", fmt.Errorf("%w: %w", domain.ErrInvalidArgument, err))
		return
	}

	var view ComponentView
	err = s.withComponent(r, func(surface *design.Surface, c domain.Component) error {
		if err := schema.Validate(propertySchema(c), props); err != nil {
			return fmt.Errorf("%w: %w", domain.ErrInvalidArgument, err)
		}
		h := surface.Host()
		desc := "Set properties of " + domain.NameOf(c)
		if err := transacted(h, desc, func() error { return h.SetProperties(c, props) }); err != nil {
			return err
		}
		var err error
		view, err = componentView(h, c, 0)
		return err
	})
	if err != nil {
		s.fail(w, "SetProperties", err)
		return
	}
	s.writeJSON(w, http.StatusOK, view)
}

func propertySchema(c domain.Component) schema.Schema {
	return schema.FromStruct(reflect.TypeOf(c), design.PropertyTag)
}

// withComponent runs fn with the component named by the {name} URL parameter.
func (s *Server) withComponent(r *http.Request, fn func(*design.Surface, domain.Component) error) error {
	name := chi.URLParam(r, "name")
	return s.Sessions.WithSurface(r.Context(), chi.URLParam(r, "id"), func(_ context.Context, surface *design.Surface) error {
		c, ok := surface.Host().Find(name)
		if !ok {
			return &domain.HostError{Op: "find", Name: name, Err: errComponentNotFound}
		}
		return fn(surface, c)
	})
}

// transacted runs fn inside a transaction, committing on success.
func transacted(h *design.Host, description string, fn func() error) error {
	tx, err := h.CreateTransaction(description)
	if err != nil {
		return err
	}
	if err := fn(); err != nil {
		_ = tx.Cancel()
		return err
	}
	return tx.Commit()
}

func sourceOf(r *http.Request) actions.Source {
	switch r.URL.Query().Get("source") {
	case "component":
		return actions.FromComponent
	case "service":
		return actions.FromService
	default:
		return actions.All
	}
}

var (
	errComponentNotFound = errors.New("component not found")
	errActionNotFound    = errors.New("action not found")
)

// statusOf maps domain errors to HTTP status codes.
func statusOf(err error) int {
	switch {
	case errors.Is(err, domain.ErrDocumentNotFound),
		errors.Is(err, errComponentNotFound),
		errors.Is(err, errActionNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrInvalidDocument),
		errors.Is(err, domain.ErrInvalidArgument),
		errors.Is(err, domain.ErrInvalidName),
		errors.Is(err, domain.ErrUnknownType):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrDuplicateName),
		errors.Is(err, domain.ErrInvalidOperation),
		errors.Is(err, domain.ErrDisposed):
		return http.StatusConflict
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) fail(w http.ResponseWriter, op string, err error) {
	status := statusOf(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error(op+" failed", "error", err)
	} else {
		s.logger.Warn(op+" rejected", "error", err, "status", status)
	}
	s.writeJSON(w, status, map[string]string{"error": err.Error()})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("response encode failed", "error", err)
	}
}

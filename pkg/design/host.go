package design

import (
	"errors"
	"log/slog"
	"reflect"
	"strings"

	"github.com/aretw0/atelier/internal/logging"
	"github.com/aretw0/atelier/pkg/domain"
	"github.com/aretw0/atelier/pkg/ports"
)

// Host is the top-level container of a design surface.
// It is not safe for concurrent use.
type Host struct {
	parent    domain.ServiceProvider
	provider  ports.DesignerProvider
	logger    *slog.Logger
	namespace string
	fallbacks map[reflect.Type]any

	services  *ServiceContainer
	extenders *ExtenderService

	sites         []*Site
	designerOf    map[domain.Component]ports.Designer
	typeProviders map[domain.Component]ports.TypeDescriptionProvider

	root          domain.Component
	rootClassName string

	transactions []*Transaction
	closing      int

	changes   hookList[domain.ChangeHooks]
	hostHooks hookList[domain.HostHooks]

	loading   bool
	unloading bool
	disposed  bool
}

// Option configures a Host.
type Option func(*Host)

// WithParent sets the provider consulted for services the host does not offer itself.
func WithParent(parent domain.ServiceProvider) Option {
	return func(h *Host) {
		h.parent = parent
	}
}

// WithDesigners sets the provider that resolves designers and component types.
func WithDesigners(provider ports.DesignerProvider) Option {
	return func(h *Host) {
		h.provider = provider
	}
}

// WithLogger configures a logger for the Host.
func WithLogger(logger *slog.Logger) Option {
	return func(h *Host) {
		h.logger = logger
	}
}

// WithRootNamespace qualifies the root component class name ("namespace.name").
func WithRootNamespace(namespace string) Option {
	return func(h *Host) {
		h.namespace = namespace
	}
}

// WithFallbackService registers a service that is only used when neither the
// host nor its parent provide one of the same type.
func WithFallbackService(serviceType reflect.Type, service any) Option {
	return func(h *Host) {
		if serviceType != nil && service != nil {
			h.fallbacks[serviceType] = service
		}
	}
}

func newHost(opts ...Option) *Host {
	h := &Host{
		logger:        logging.NewNop(),
		fallbacks:     make(map[reflect.Type]any),
		designerOf:    make(map[domain.Component]ports.Designer),
		typeProviders: make(map[domain.Component]ports.TypeDescriptionProvider),
		extenders:     NewExtenderService(),
	}
	for _, opt := range opts {
		opt(h)
	}
	h.services = NewServiceContainer(h.parent)
	h.services.self = h
	h.services.defaults = h.resolveDefaults
	h.services.fallback = h.resolveFallback
	return h
}

// Add sites c with a generated name.
func (h *Host) Add(c domain.Component) error {
	return h.add(h, &h.sites, c, "")
}

// AddNamed sites c under name. Adding a component that is already sited in the
// host only renames it.
func (h *Host) AddNamed(c domain.Component, name string) error {
	return h.add(h, &h.sites, c, name)
}

// Remove unsites c. It is a no-op when c is not sited in the host.
func (h *Host) Remove(c domain.Component) error {
	return h.remove(h, &h.sites, c)
}

func (h *Host) Components() []domain.Component {
	return componentsOf(h.sites)
}

func (h *Host) Component(name string) (domain.Component, bool) {
	return findComponent(h.sites, name)
}

// RootComponent returns the root component, or nil before one was added.
func (h *Host) RootComponent() domain.Component {
	return h.root
}

// RootComponentClassName returns the class name of the design ("namespace.name" or "name").
func (h *Host) RootComponentClassName() string {
	return h.rootClassName
}

// GetDesigner returns the designer of a sited component, or nil.
func (h *Host) GetDesigner(c domain.Component) ports.Designer {
	if c == nil {
		return nil
	}
	return h.designerOf[c]
}

// TypeDescriptionProvider returns the provider installed for c when it was added.
func (h *Host) TypeDescriptionProvider(c domain.Component) ports.TypeDescriptionProvider {
	if c == nil {
		return nil
	}
	return h.typeProviders[c]
}

// GetType resolves a type name through the type-resolution service, then through
// the designer provider.
func (h *Host) GetType(typeName string) (reflect.Type, bool) {
	if typeName == "" {
		return nil, false
	}
	if trs, ok := domain.Lookup[ports.TypeResolutionService](h); ok {
		if t, ok := trs.GetType(typeName); ok {
			return t, true
		}
	}
	if h.provider != nil {
		return h.provider.Type(typeName)
	}
	return nil, false
}

// CreateComponent instantiates componentType and adds it to the host.
func (h *Host) CreateComponent(componentType reflect.Type, name string) (domain.Component, error) {
	if h.disposed {
		return nil, domain.ErrDisposed
	}
	if componentType == nil {
		return nil, domain.NilArgument("componentType")
	}
	c, err := h.NewComponent(componentType)
	if err != nil {
		return nil, err
	}
	if err := h.AddNamed(c, name); err != nil {
		if d, ok := c.(domain.Disposable); ok {
			d.Dispose()
		}
		return nil, err
	}
	return c, nil
}

// NewComponent instantiates componentType without siting it. The designer
// provider is used when it is also a ports.ComponentFactory.
func (h *Host) NewComponent(componentType reflect.Type) (domain.Component, error) {
	if componentType == nil {
		return nil, domain.NilArgument("componentType")
	}
	if factory, ok := h.provider.(ports.ComponentFactory); ok {
		return factory.NewComponent(componentType)
	}
	return newComponent(componentType)
}

// Loading reports whether a loader is populating the host.
func (h *Host) Loading() bool {
	return h.loading
}

// BeginLoad starts the loading phase. Change notifications are suppressed until EndLoad.
func (h *Host) BeginLoad() {
	h.loading = true
}

// EndLoad ends the loading phase. A non-empty rootClassName replaces the
// root component class name. Load-complete hooks receive loadErr.
func (h *Host) EndLoad(rootClassName string, loadErr error) {
	h.loading = false
	if rootClassName != "" {
		h.rootClassName = rootClassName
	}
	for _, hooks := range h.hostHooks.snapshot() {
		if hooks.OnLoadComplete != nil {
			hooks.OnLoadComplete(loadErr)
		}
	}
}

// Activate notifies subscribers that the design surface became active.
func (h *Host) Activate() {
	for _, hooks := range h.hostHooks.snapshot() {
		if hooks.OnActivated != nil {
			hooks.OnActivated()
		}
	}
}

// CreateTransaction opens a transaction on top of the stack.
func (h *Host) CreateTransaction(description string) (ports.Transaction, error) {
	if h.disposed {
		return nil, domain.ErrDisposed
	}
	if description == "" {
		description = DefaultTransactionDescription
	}
	for _, hooks := range h.hostHooks.snapshot() {
		if hooks.OnTransactionOpening != nil {
			hooks.OnTransactionOpening()
		}
	}
	t := &Transaction{host: h, description: description}
	h.transactions = append(h.transactions, t)
	for _, hooks := range h.hostHooks.snapshot() {
		if hooks.OnTransactionOpened != nil {
			hooks.OnTransactionOpened()
		}
	}
	h.logger.Debug("transaction opened", "transaction", description, "depth", len(h.transactions))
	return t, nil
}

// InTransaction reports whether a transaction is open.
func (h *Host) InTransaction() bool {
	return len(h.transactions) > 0
}

// TransactionDescription returns the description of the innermost open transaction.
func (h *Host) TransactionDescription() string {
	if t := h.top(); t != nil {
		return t.description
	}
	return ""
}

// IsClosingTransaction reports whether a transaction is being committed or canceled.
func (h *Host) IsClosingTransaction() bool {
	return h.closing > 0
}

func (h *Host) top() *Transaction {
	if len(h.transactions) == 0 {
		return nil
	}
	return h.transactions[len(h.transactions)-1]
}

func (h *Host) pop(t *Transaction) {
	for i := len(h.transactions) - 1; i >= 0; i-- {
		if h.transactions[i] == t {
			h.transactions = append(h.transactions[:i:i], h.transactions[i+1:]...)
			return
		}
	}
}

func (h *Host) GetService(serviceType reflect.Type) any {
	return h.services.GetService(serviceType)
}

// Resolve is GetService with argument and disposal errors.
func (h *Host) Resolve(serviceType reflect.Type) (any, error) {
	return h.services.Resolve(serviceType)
}

func (h *Host) AddService(serviceType reflect.Type, service any, promote bool) error {
	return h.services.AddService(serviceType, service, promote)
}

func (h *Host) AddServiceFactory(serviceType reflect.Type, factory ports.ServiceFactory, promote bool) error {
	return h.services.AddServiceFactory(serviceType, factory, promote)
}

func (h *Host) RemoveService(serviceType reflect.Type, promote bool) error {
	return h.services.RemoveService(serviceType, promote)
}

// Dispose always fails. Tear a host down through its Surface.
func (h *Host) Dispose() error {
	return &domain.HostError{Op: "dispose", Err: domain.ErrInvalidOperation}
}

// Disposed reports whether the host was torn down.
func (h *Host) Disposed() bool {
	return h.disposed
}

func (h *Host) resolveDefaults(serviceType reflect.Type) (any, bool) {
	switch serviceType {
	case containerType, designerHostType, changeServiceType:
		return h, true
	}
	return nil, false
}

func (h *Host) resolveFallback(serviceType reflect.Type) (any, bool) {
	switch serviceType {
	case extenderProviderType, extenderListType:
		return h.extenders, true
	}
	svc, ok := h.fallbacks[serviceType]
	return svc, ok
}

func (h *Host) clearsDictionaries() bool { return true }

func (h *Host) isDisposed() bool { return h.disposed }

// add sites c in owner, which is the host itself or one of its nested containers.
func (h *Host) add(owner siteOwner, sites *[]*Site, c domain.Component, name string) error {
	if h.disposed || owner.isDisposed() {
		return domain.ErrDisposed
	}
	if c == nil {
		return domain.NilArgument("component")
	}
	if !reflect.ValueOf(c).Comparable() {
		return &domain.ArgumentError{Param: "component", Reason: "must be a pointer or other comparable type"}
	}

	if site, ok := c.Site().(*Site); ok && site.owner == owner && indexOfSite(*sites, site) >= 0 {
		if name != "" && name != site.name {
			return site.SetName(name)
		}
		return nil
	}

	typeName := domain.TypeName(c)
	if h.root != nil && strings.EqualFold(typeName, h.rootClassName) {
		return &domain.HostError{Op: "add", Name: typeName, Err: domain.ErrCyclicAdd}
	}

	designer, becomesRoot, err := h.rootGate(owner, c, typeName)
	if err != nil {
		return err
	}
	name, err = h.resolveName(owner, c, name, becomesRoot)
	if err != nil {
		return err
	}
	if name != "" {
		if _, taken := findComponent(*sites, name); taken {
			return &domain.HostError{Op: "add", Name: name, Err: domain.ErrDuplicateName}
		}
	}

	// Leave the previous container only once the add is known to succeed.
	if prev := c.Site(); prev != nil {
		if pc := prev.Container(); pc != nil {
			if err := pc.Remove(c); err != nil {
				return err
			}
			// Moving the root away frees the root slot.
			if h.root == nil && designer == nil {
				if designer, becomesRoot, err = h.rootGate(owner, c, typeName); err != nil {
					return err
				}
			}
		}
	}

	h.fireComponent(domain.EventComponentAdding, c, owner)

	site := newSite(h, owner, c, name)
	*sites = append(*sites, site)
	c.SetSite(site)

	if designer == nil {
		designer = h.createDesigner(c)
	}
	prevClassName := h.rootClassName
	if becomesRoot {
		h.root = c
		if h.rootClassName == "" {
			h.rootClassName = h.qualify(name)
		}
	}

	if designer != nil {
		h.designerOf[c] = designer
		if err := designer.Initialize(c); err != nil {
			delete(h.designerOf, c)
			if errors.Is(err, domain.ErrCheckoutCanceled) {
				h.logger.Warn("designer initialisation canceled, component kept", "name", name, "type", typeName, "error", err)
				h.completeAdd(owner, c)
				return err
			}
			h.logger.Warn("designer initialisation failed", "name", name, "type", typeName, "error", err)
			h.rollback(sites, site, becomesRoot, prevClassName)
			return err
		}
	}

	h.completeAdd(owner, c)
	h.logger.Debug("component added", "name", name, "type", typeName, "root", becomesRoot)
	return nil
}

func (h *Host) completeAdd(owner siteOwner, c domain.Component) {
	h.registerExtender(c)
	h.installTypeDescription(c)
	h.fireComponent(domain.EventComponentAdded, c, owner)
}

// rollback undoes the siting of a component whose designer failed to initialise.
func (h *Host) rollback(sites *[]*Site, site *Site, wasRoot bool, className string) {
	if i := indexOfSite(*sites, site); i >= 0 {
		*sites = append((*sites)[:i:i], (*sites)[i+1:]...)
	}
	c := site.component
	if c.Site() == site {
		c.SetSite(nil)
	}
	site.owner = nil
	if wasRoot && h.root == c {
		h.root = nil
		h.rootClassName = className
	}
}

func (h *Host) remove(owner siteOwner, sites *[]*Site, c domain.Component) error {
	if h.disposed {
		return domain.ErrDisposed
	}
	if c == nil {
		return domain.NilArgument("component")
	}
	site, ok := c.Site().(*Site)
	if !ok || site.owner != owner || indexOfSite(*sites, site) < 0 {
		return nil
	}

	h.fireComponent(domain.EventComponentRemoving, c, owner)

	// Handlers may have nulled the site; only the captured site is used below.
	h.unregisterExtender(c)
	if d, ok := h.designerOf[c]; ok {
		delete(h.designerOf, c)
		d.Dispose()
	}
	delete(h.typeProviders, c)
	site.detach(owner.clearsDictionaries())

	if i := indexOfSite(*sites, site); i >= 0 {
		*sites = append((*sites)[:i:i], (*sites)[i+1:]...)
	}
	if c.Site() == site {
		c.SetSite(nil)
	}
	if h.root == c {
		h.root = nil
		h.rootClassName = ""
	}

	h.fireComponent(domain.EventComponentRemoved, c, owner)
	h.logger.Debug("component removed", "name", site.name, "type", domain.TypeName(c))
	return nil
}

// renamed commits a site rename: it keeps the root class name in step and raises the rename event.
func (h *Host) renamed(site *Site, oldName, newName string) {
	if site.component == h.root && h.root != nil {
		if dot := strings.LastIndex(h.rootClassName, "."); dot > 0 {
			h.rootClassName = h.rootClassName[:dot+1] + newName
		} else {
			h.rootClassName = newName
		}
	}
	h.logger.Debug("component renamed", "old", oldName, "new", newName)
	e := &domain.ComponentRenameEvent{Component: site.component, OldName: oldName, NewName: newName}
	for _, hooks := range h.changes.snapshot() {
		if hooks.OnComponentRename != nil {
			hooks.OnComponentRename(e)
		}
	}
}

// rootGate creates the designer of c while the host has no root and reports
// whether c becomes the root. Only the host itself requires a root designer.
func (h *Host) rootGate(owner siteOwner, c domain.Component, typeName string) (ports.Designer, bool, error) {
	if h.root != nil {
		return nil, false, nil
	}
	designer := h.createDesigner(c)
	if _, ok := designer.(ports.RootDesigner); ok {
		return designer, true, nil
	}
	if owner == siteOwner(h) {
		return nil, false, &domain.HostError{Op: "add", Name: typeName, Err: domain.ErrNoRootDesigner}
	}
	return designer, false, nil
}

func (h *Host) resolveName(owner siteOwner, c domain.Component, name string, root bool) (string, error) {
	ns, ok := domain.Lookup[ports.NameCreationService](owner)
	if !ok {
		return name, nil
	}
	if name != "" {
		if err := ns.ValidateName(name); err != nil {
			return "", err
		}
		return name, nil
	}
	var container domain.Container = owner
	if root {
		container = nil
	}
	return ns.CreateName(container, reflect.TypeOf(c)), nil
}

func (h *Host) createDesigner(c domain.Component) ports.Designer {
	if h.provider == nil {
		return nil
	}
	return h.provider.CreateDesigner(c)
}

func (h *Host) qualify(name string) string {
	if h.namespace == "" {
		return name
	}
	return h.namespace + "." + name
}

func (h *Host) registerExtender(c domain.Component) {
	ep, ok := c.(domain.ExtenderProvider)
	if !ok || inheritedReadOnly(c) {
		return
	}
	if list, ok := domain.Lookup[ports.ExtenderListService](h); ok {
		for _, p := range list.ExtenderProviders() {
			if p == ep {
				return
			}
		}
	}
	svc, ok := domain.Lookup[ports.ExtenderProviderService](h)
	if !ok {
		return
	}
	if err := svc.AddExtenderProvider(ep); err != nil {
		h.logger.Warn("failed to register extender provider", "type", domain.TypeName(c), "error", err)
	}
}

func (h *Host) unregisterExtender(c domain.Component) {
	ep, ok := c.(domain.ExtenderProvider)
	if !ok || inheritedReadOnly(c) {
		return
	}
	if svc, ok := domain.Lookup[ports.ExtenderProviderService](h); ok {
		svc.RemoveExtenderProvider(ep)
	}
}

func (h *Host) installTypeDescription(c domain.Component) {
	if ro, ok := c.(domain.ReflectionOnly); ok && ro.ReflectionOnly() {
		return
	}
	svc, ok := domain.Lookup[ports.TypeDescriptionProviderService](h)
	if !ok {
		return
	}
	if p := svc.ProviderFor(c); p != nil {
		h.typeProviders[c] = p
	}
}

// teardown removes every component, root last, and disposes the host services.
func (h *Host) teardown() {
	if h.disposed || h.unloading {
		return
	}
	h.unloading = true
	defer func() { h.unloading = false }()

	for t := h.top(); t != nil; t = h.top() {
		if err := t.Cancel(); err != nil {
			h.pop(t)
		}
	}

	comps := h.Components()
	for i := len(comps) - 1; i >= 0; i-- {
		if comps[i] != h.root {
			h.dispose(comps[i])
		}
	}
	if h.root != nil {
		h.dispose(h.root)
	}

	h.services.Dispose()
	h.extenders.reset()
	h.changes.reset()
	h.hostHooks.reset()
	h.disposed = true
	h.logger.Debug("host disposed")
}

func (h *Host) dispose(c domain.Component) {
	if err := h.Remove(c); err != nil {
		h.logger.Warn("failed to remove component during teardown", "type", domain.TypeName(c), "error", err)
	}
	if d, ok := c.(domain.Disposable); ok {
		d.Dispose()
	}
}

func inheritedReadOnly(c domain.Component) bool {
	inh, ok := c.(domain.Inheritable)
	return ok && inh.InheritanceLevel() == domain.InheritedReadOnly
}

func newComponent(t reflect.Type) (domain.Component, error) {
	base := t
	if base.Kind() == reflect.Pointer {
		base = base.Elem()
	}
	if base.Kind() == reflect.Struct {
		if c, ok := reflect.New(base).Interface().(domain.Component); ok {
			return c, nil
		}
	}
	return nil, &domain.HostError{Op: "create component", Name: domain.TypeNameOf(t), Err: domain.ErrUnknownType}
}

func componentsOf(sites []*Site) []domain.Component {
	out := make([]domain.Component, len(sites))
	for i, s := range sites {
		out[i] = s.component
	}
	return out
}

func findComponent(sites []*Site, name string) (domain.Component, bool) {
	if name == "" {
		return nil, false
	}
	for _, s := range sites {
		if strings.EqualFold(s.name, name) {
			return s.component, true
		}
	}
	return nil, false
}

func indexOfSite(sites []*Site, site *Site) int {
	for i, s := range sites {
		if s == site {
			return i
		}
	}
	return -1
}

var _ ports.DesignerHost = (*Host)(nil)

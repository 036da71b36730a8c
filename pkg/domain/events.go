package domain

// EventType defines the category of a change notification.
type EventType string

const (
	EventComponentAdding   EventType = "component_adding"
	EventComponentAdded    EventType = "component_added"
	EventComponentRemoving EventType = "component_removing"
	EventComponentRemoved  EventType = "component_removed"
	EventComponentChanging EventType = "component_changing"
	EventComponentChanged  EventType = "component_changed"
	EventComponentRename   EventType = "component_rename"
)

// ComponentEvent is raised when a component is added to or removed from a container.
type ComponentEvent struct {
	Type      EventType
	Component Component
	Container Container
}

// ComponentChangingEvent is raised before a member of a component changes.
type ComponentChangingEvent struct {
	Component any
	Member    string // empty when the whole component changes
}

// ComponentChangedEvent is raised after a member of a component changed.
type ComponentChangedEvent struct {
	Component any
	Member    string
	OldValue  any
	NewValue  any
}

// ComponentRenameEvent is raised after a site name has been committed.
type ComponentRenameEvent struct {
	Component Component
	OldName   string
	NewName   string
}

// TransactionCloseEvent is raised when a transaction is committed or canceled.
type TransactionCloseEvent struct {
	Description     string
	Committed       bool
	LastTransaction bool // true when no transaction remains open after this one
}

// ChangeHooks defines callbacks for component change notifications.
// Nil fields are ignored.
type ChangeHooks struct {
	OnComponentAdding   func(*ComponentEvent)
	OnComponentAdded    func(*ComponentEvent)
	OnComponentRemoving func(*ComponentEvent)
	OnComponentRemoved  func(*ComponentEvent)
	OnComponentChanging func(*ComponentChangingEvent)
	OnComponentChanged  func(*ComponentChangedEvent)
	OnComponentRename   func(*ComponentRenameEvent)
}

// HostHooks defines callbacks for host-level lifecycle notifications.
type HostHooks struct {
	OnTransactionOpening func()
	OnTransactionOpened  func()
	OnTransactionClosing func(*TransactionCloseEvent)
	OnTransactionClosed  func(*TransactionCloseEvent)
	OnLoadComplete       func(err error)
	OnActivated          func()
}

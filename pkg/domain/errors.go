package domain

import (
	"errors"
	"fmt"
)

// ErrInvalidArgument is returned when a required argument is nil or empty.
var ErrInvalidArgument = errors.New("invalid argument")

// ErrInvalidOperation is returned when an operation is not valid in the current state.
var ErrInvalidOperation = errors.New("invalid operation")

// ErrDisposed is returned by any mutating or service operation after teardown.
var ErrDisposed = errors.New("object disposed")

// ErrNoRootDesigner is returned when the first component added to a host has no root designer.
var ErrNoRootDesigner = fmt.Errorf("%w: component has no root designer", ErrInvalidOperation)

// ErrCyclicAdd is returned when an instance of the root component's own class is added to the host.
var ErrCyclicAdd = errors.New("cannot add an instance of the root component class to itself")

// ErrDuplicateName is returned when a name collides, case-insensitively, with a sibling.
var ErrDuplicateName = errors.New("duplicate component name")

// ErrInvalidName is returned by name-creation services for names that are not identifiers.
var ErrInvalidName = errors.New("invalid component name")

// ErrServiceExists is returned when a service type is registered twice in the same container.
var ErrServiceExists = errors.New("service already exists")

// ErrInvalidServiceInstance is returned when a service instance is not assignable to its service type.
var ErrInvalidServiceInstance = errors.New("service instance does not implement service type")

// ErrCheckoutCanceled is the designer-initialisation error that leaves a component sited.
// Designers return it (or wrap it) when the user cancels a source-control checkout.
var ErrCheckoutCanceled = errors.New("checkout canceled")

// ErrNestedTransaction is returned when a transaction is closed while a newer one is still open.
var ErrNestedTransaction = fmt.Errorf("%w: transaction is not the innermost open transaction", ErrInvalidOperation)

// ErrDocumentNotFound is returned when a document ID cannot be found in the store.
var ErrDocumentNotFound = errors.New("document not found")

// ErrUnknownType is returned when a component type name cannot be resolved.
var ErrUnknownType = errors.New("unknown component type")

// ErrInvalidDocument is returned when a design document fails validation.
var ErrInvalidDocument = errors.New("invalid document")

// ArgumentError names the offending parameter of an invalid call.
type ArgumentError struct {
	Param  string
	Reason string
}

func (e *ArgumentError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("invalid argument %q: %s", e.Param, e.Reason)
	}
	return fmt.Sprintf("invalid argument %q", e.Param)
}

func (e *ArgumentError) Unwrap() error {
	return ErrInvalidArgument
}

// NilArgument returns an ArgumentError for a missing parameter.
func NilArgument(param string) error {
	return &ArgumentError{Param: param, Reason: "must not be nil"}
}

// HostError reports a structural failure of a host or container operation.
type HostError struct {
	Op   string // "add", "rename", ...
	Name string // component or type name involved, if any
	Err  error
}

func (e *HostError) Error() string {
	if e.Name == "" {
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("%s %q: %v", e.Op, e.Name, e.Err)
}

func (e *HostError) Unwrap() error {
	return e.Err
}

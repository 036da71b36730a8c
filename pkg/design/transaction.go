package design

import (
	"github.com/aretw0/atelier/pkg/domain"
)

// DefaultTransactionDescription names transactions created without a description.
const DefaultTransactionDescription = "(unnamed transaction)"

// Transaction batches design-time edits. Transactions of a host close in LIFO order.
type Transaction struct {
	host        *Host
	description string
	committed   bool
	canceled    bool
}

func (t *Transaction) Description() string { return t.description }
func (t *Transaction) Committed() bool     { return t.committed }
func (t *Transaction) Canceled() bool      { return t.canceled }

// Commit closes the transaction, keeping its edits.
func (t *Transaction) Commit() error {
	return t.close(true)
}

// Cancel closes the transaction, discarding its edits.
func (t *Transaction) Cancel() error {
	return t.close(false)
}

// Dispose cancels the transaction if it is still open.
func (t *Transaction) Dispose() {
	if t.committed || t.canceled {
		return
	}
	if err := t.Cancel(); err != nil {
		t.host.logger.Warn("failed to cancel transaction on dispose", "transaction", t.description, "error", err)
	}
}

func (t *Transaction) close(commit bool) error {
	if t.host.disposed {
		return domain.ErrDisposed
	}
	if t.committed || t.canceled {
		return nil
	}
	h := t.host
	if h.top() != t {
		return &domain.HostError{Op: "close transaction", Name: t.description, Err: domain.ErrNestedTransaction}
	}

	e := &domain.TransactionCloseEvent{
		Description:     t.description,
		Committed:       commit,
		LastTransaction: len(h.transactions) == 1,
	}

	h.closing++
	defer func() { h.closing-- }()

	for _, hooks := range h.hostHooks.snapshot() {
		if hooks.OnTransactionClosing != nil {
			hooks.OnTransactionClosing(e)
		}
	}
	if commit {
		t.committed = true
	} else {
		t.canceled = true
	}
	for _, hooks := range h.hostHooks.snapshot() {
		if hooks.OnTransactionClosed != nil {
			hooks.OnTransactionClosed(e)
		}
	}
	h.pop(t)
	h.logger.Debug("transaction closed", "transaction", t.description, "committed", commit, "last", e.LastTransaction)
	return nil
}

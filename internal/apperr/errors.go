package apperr

import (
	"errors"
	"fmt"

	"github.com/diewo77/stockbill/validation"
)

// Sentinel errors for cases that carry no extra fields.
var (
	ErrMissingOwner = errors.New("missing_owner_identity")
)

// ValidationError reports malformed input. Recoverable by the caller,
// never retried automatically.
type ValidationError struct {
	Violations validation.Violations
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %v", map[string]string(e.Violations))
}

// NotFoundError means the entity does not exist or is not owned by the caller.
type NotFoundError struct {
	Entity string
	ID     string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Entity, e.ID)
}

// InsufficientStockError names the offending item so the UI can show
// an actionable message.
type InsufficientStockError struct {
	ItemID    string
	Name      string
	Requested int
	Available int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for %q: requested %d, available %d", e.Name, e.Requested, e.Available)
}

// PersistenceError wraps a store failure with the workflow stage that hit it.
type PersistenceError struct {
	Stage string
	Err   error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persistence failed at %s: %v", e.Stage, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

// RenderingError marks a document-generation failure after the invoice was
// already committed. Callers must not treat it as an invoice-creation failure.
type RenderingError struct {
	Err error
}

func (e *RenderingError) Error() string { return fmt.Sprintf("rendering failed: %v", e.Err) }

func (e *RenderingError) Unwrap() error { return e.Err }

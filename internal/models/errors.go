package models

import (
	"errors"
	"fmt"
)

// Symbolic persistence categories. The store maps backend faults onto these
// so callers never have to pattern-match error messages.
var (
	ErrNotFound = errors.New("not found")
	ErrConflict = errors.New("conflict")
)

// ValidationError reports a missing or malformed required field at
// construction time.
type ValidationError struct {
	Field string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("missing or invalid field: %s", e.Field)
}

// PermissionDenied means the actor's role or ownership does not authorize the
// attempted action.
type PermissionDenied struct {
	Role   UserRole
	Action Action
}

func (e *PermissionDenied) Error() string {
	return fmt.Sprintf("role %s is not permitted to perform %s", e.Role, e.Action)
}

// InvalidTransition means the action does not apply to the order's current
// status, typically a stale view or a double submit. The caller should
// refresh the order before retrying.
type InvalidTransition struct {
	Action Action
	Status OrderStatus
}

func (e *InvalidTransition) Error() string {
	return fmt.Sprintf("cannot %s an order in status %q", e.Action, e.Status)
}

// MissingArtifact means a transition's required inputs (files, selections)
// are incomplete. Safe to retry once the input is supplied.
type MissingArtifact struct {
	Field string
}

func (e *MissingArtifact) Error() string {
	return fmt.Sprintf("required input missing: %s", e.Field)
}

// UploadFailure wraps a file-storage fault. The triggering transition aborts
// with no partial mutation.
type UploadFailure struct {
	Err error
}

func (e *UploadFailure) Error() string {
	return fmt.Sprintf("file upload failed: %v", e.Err)
}

func (e *UploadFailure) Unwrap() error { return e.Err }

// PersistenceFailure wraps a store write rejection. Surfaced verbatim, no
// automatic retry.
type PersistenceFailure struct {
	Err error
}

func (e *PersistenceFailure) Error() string {
	return fmt.Sprintf("persistence failed: %v", e.Err)
}

func (e *PersistenceFailure) Unwrap() error { return e.Err }

// SelectionMismatch signals an attempt to mix statuses in a bulk selection.
type SelectionMismatch struct {
	Want OrderStatus
	Got  OrderStatus
}

func (e *SelectionMismatch) Error() string {
	return fmt.Sprintf("selection requires status %q, got %q", e.Want, e.Got)
}

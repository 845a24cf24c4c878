package service

import (
	"errors"
	"fmt"
)

// Error classes. Every error returned by an accessor matches exactly one of
// them with errors.Is.
var (
	// ErrValidation marks input rejected before reaching the store.
	ErrValidation = errors.New("validation failed")
	// ErrStore marks a failed store call (network, constraint, driver).
	ErrStore = errors.New("store request failed")
	// ErrPermissionDenied marks a write the store accepted but did not apply.
	ErrPermissionDenied = errors.New("permission denied")
	// ErrNotFound marks an id that does not exist (any more).
	ErrNotFound = errors.New("not found")
)

// ValidationError describes a rejected field.
type ValidationError struct {
	Entity  string
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// MetricLabel implements metrics.Classifier.
func (e *ValidationError) MetricLabel() string {
	return "validation"
}

func invalid(entity, field, format string, args ...interface{}) error {
	return &ValidationError{Entity: entity, Field: field, Message: fmt.Sprintf(format, args...)}
}

// StoreError wraps a failed store call.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() []error {
	return []error{ErrStore, e.Err}
}

// MetricLabel implements metrics.Classifier.
func (e *StoreError) MetricLabel() string {
	return "store_error"
}

// NotFoundError reports a missing row.
type NotFoundError struct {
	Entity string
	ID     uint
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %d not found", e.Entity, e.ID)
}

func (e *NotFoundError) Unwrap() error {
	return ErrNotFound
}

// MetricLabel implements metrics.Classifier.
func (e *NotFoundError) MetricLabel() string {
	return "not_found"
}

// PermissionDeniedError is raised when a verification read shows that a
// write was silently dropped, which is how row-level security policies
// behave when the current role lacks the privilege.
type PermissionDeniedError struct {
	Entity string
	Table  string
	ID     uint
	Op     string
}

func (e *PermissionDeniedError) Error() string {
	return fmt.Sprintf(
		"%s %d was not %s: the database accepted the request but the row is unchanged. "+
			"The access policy on table %q is blocking this operation; "+
			"grant %s on %q to the admin role (row-level security policy) and try again",
		e.Entity, e.ID, pastTense(e.Op), e.Table, sqlVerb(e.Op), e.Table,
	)
}

func (e *PermissionDeniedError) Unwrap() error {
	return ErrPermissionDenied
}

// MetricLabel implements metrics.Classifier.
func (e *PermissionDeniedError) MetricLabel() string {
	return "permission_denied"
}

func pastTense(op string) string {
	switch op {
	case "delete":
		return "deleted"
	case "update":
		return "updated"
	default:
		return op + "ed"
	}
}

func sqlVerb(op string) string {
	switch op {
	case "delete":
		return "DELETE"
	default:
		return "UPDATE"
	}
}

// wrapStore classifies err as a StoreError unless it already carries one of
// the error classes.
func wrapStore(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrValidation) || errors.Is(err, ErrStore) ||
		errors.Is(err, ErrNotFound) || errors.Is(err, ErrPermissionDenied) {
		return err
	}
	return &StoreError{Op: op, Err: err}
}

// Message returns the text shown in the admin error banner.
func Message(err error) string {
	if err == nil {
		return ""
	}

	var validation *ValidationError
	if errors.As(err, &validation) {
		return validation.Message
	}
	var denied *PermissionDeniedError
	if errors.As(err, &denied) {
		return denied.Error()
	}
	var missing *NotFoundError
	if errors.As(err, &missing) {
		return missing.Error()
	}
	var store *StoreError
	if errors.As(err, &store) {
		return fmt.Sprintf("could not %s, please try again: %v", store.Op, store.Err)
	}
	return err.Error()
}

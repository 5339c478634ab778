package service

import (
	"fmt"
)

// ValidationError reports a structurally invalid section. It names the
// offending type and field so the client can fix the request; it never
// reaches persistence.
type ValidationError struct {
	SectionType SectionType
	Field       string
	Position    int
}

func (e *ValidationError) Error() string {
	if e.Field == "position" {
		return fmt.Sprintf("section at index %d: position must be zero or positive", e.Position)
	}
	return fmt.Sprintf("%s section at position %d requires %s", e.SectionType, e.Position, e.Field)
}

// NotFoundError reports an unknown page, space, tag or revision identity.
type NotFoundError struct {
	Resource string
	Key      string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Resource, e.Key)
}

func notFound(resource string, key interface{}) *NotFoundError {
	return &NotFoundError{Resource: resource, Key: fmt.Sprintf("%v", key)}
}

// ConflictError reports a slug collision or a revision-number race lost to a
// concurrent writer. The caller should retry with a fresh view.
type ConflictError struct {
	Resource string
	Reason   string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s conflict: %s", e.Resource, e.Reason)
}

// IntegrityError wraps a storage-level constraint violation not otherwise
// classified. Opaque to the caller, logged in full internally.
type IntegrityError struct {
	Op  string
	Err error
}

func (e *IntegrityError) Error() string {
	return fmt.Sprintf("integrity failure during %s: %v", e.Op, e.Err)
}

func (e *IntegrityError) Unwrap() error {
	return e.Err
}

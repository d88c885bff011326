// Package catalogerr implements the error taxonomy of §7: error kinds, not
// concrete types, so the orchestrator can attach field-level detail while
// the HTTP handler layer maps each kind to a status code.
package catalogerr

import "fmt"

// Kind is one of the error categories in §7's taxonomy table.
type Kind string

const (
	KindValidation         Kind = "validation"
	KindAlreadyExists      Kind = "already_exists"
	KindReferenceNotFound  Kind = "reference_not_found"
	KindNotFound           Kind = "not_found"
	KindInUse              Kind = "in_use"
	KindTransientStorage   Kind = "transient_storage"
	KindBrokerUnavailable  Kind = "broker_unavailable"
	KindFileFormat         Kind = "file_format"
	KindFileTooLarge       Kind = "file_too_large"
	KindStorageUnavailable Kind = "storage_unavailable"
)

// Error is a domain error carrying its taxonomy Kind plus a human-readable
// detail naming the offending field/entity.
type Error struct {
	Kind   Kind
	Detail string
	Err    error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Detail, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Detail)
}

func (e *Error) Unwrap() error { return e.Err }

// New constructs a catalogerr.Error of the given kind and detail.
func New(kind Kind, detail string) *Error {
	return &Error{Kind: kind, Detail: detail}
}

// Wrap constructs a catalogerr.Error that also carries the causing error.
func Wrap(kind Kind, detail string, err error) *Error {
	return &Error{Kind: kind, Detail: detail, Err: err}
}

// AlreadyExists builds a KindAlreadyExists error naming the conflicting field.
func AlreadyExists(field string) *Error {
	return New(KindAlreadyExists, fmt.Sprintf("%s already in use by a live entity", field))
}

// ReferenceNotFound builds a KindReferenceNotFound error naming the missing
// foreign-key target (e.g. "tags", "category", "brand").
func ReferenceNotFound(what string, id any) *Error {
	if id == nil {
		return New(KindReferenceNotFound, fmt.Sprintf("%s not found", what))
	}
	return New(KindReferenceNotFound, fmt.Sprintf("%s %v not found", what, id))
}

// NotFound builds a KindNotFound error for a missing entity lookup by id.
func NotFound(what string, id any) *Error {
	return New(KindNotFound, fmt.Sprintf("%s %v not found", what, id))
}

// InUse builds a KindInUse error for a blocked removal.
func InUse(what string) *Error {
	return New(KindInUse, fmt.Sprintf("cannot remove %s: referenced by a live product", what))
}

// As extracts a *Error from err, if any.
func As(err error) (*Error, bool) {
	ce, ok := err.(*Error)
	return ce, ok
}

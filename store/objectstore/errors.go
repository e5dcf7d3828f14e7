package objectstore

import (
	"fmt"

	"github.com/batchvault/batchvault/store/catalog"
)

// NotFoundError records a lookup against an id or key absent from the
// catalog or backend.
type NotFoundError struct {
	ID string
}

func (e NotFoundError) Error() string {
	return fmt.Sprintf("objectstore: %s not found", e.ID)
}

// ConflictError records an attempted mutation of an immutable entry, a
// duplicate partition key, or a duplicate catalog id.
type ConflictError struct {
	ID string
}

func (e ConflictError) Error() string {
	return fmt.Sprintf("objectstore: %s already exists", e.ID)
}

// NameMismatchError is returned when reopening a store under a name that
// disagrees with the persisted manifest.
type NameMismatchError struct {
	Got, Want string
}

func (e NameMismatchError) Error() string {
	return fmt.Sprintf("objectstore: name %q does not match persisted name %q", e.Got, e.Want)
}

// InvalidInfoError records an unrecognized descriptor union tag, or a
// request whose shape the store refuses (empty partition key, a glob
// character in a name, a foreign key to the wrong descriptor kind).
type InvalidInfoError struct {
	Reason string
}

func (e InvalidInfoError) Error() string {
	return fmt.Sprintf("objectstore: invalid info: %s", e.Reason)
}

// MissingContextError records a file/table registration that names a
// dataset but no partition key. A registration that names no dataset at
// all is catalogued without being linked, and gets no error.
type MissingContextError struct {
	Reason string
}

func (e MissingContextError) Error() string {
	return fmt.Sprintf("objectstore: missing context: %s", e.Reason)
}

// IOError wraps a backend read/write failure with the operation and id
// that triggered it.
type IOError struct {
	Op  string
	ID  string
	Err error
}

func (e IOError) Error() string {
	return fmt.Sprintf("objectstore: io error during %s(%s): %v", e.Op, e.ID, e.Err)
}

func (e IOError) Unwrap() error { return e.Err }

// DecodeError records a manifest that failed to parse.
type DecodeError struct {
	Err error
}

func (e DecodeError) Error() string {
	return fmt.Sprintf("objectstore: decode error: %v", e.Err)
}

func (e DecodeError) Unwrap() error { return e.Err }

// translateCatalogErr maps the catalog package's own error taxonomy onto
// the object store's, so callers only ever need to type-switch on one
// set of error types regardless of which layer produced the failure.
func translateCatalogErr(err error) error {
	switch e := err.(type) {
	case catalog.ConflictError:
		return ConflictError{ID: e.ID}
	case catalog.NotFoundError:
		return NotFoundError{ID: e.ID}
	default:
		return err
	}
}

// Package domainerr holds error types shared by every bounded context.
package domainerr

import (
	"errors"
	"fmt"
)

// ErrNotFound is the sentinel matched by every NotFoundError.
var ErrNotFound = errors.New("not found")

// NotFoundError reports an identity-keyed lookup that located no record.
type NotFoundError struct {
	Entity string
	ID     int64
}

// NewNotFound builds a NotFoundError for the given entity type and identity.
func NewNotFound(entity string, id int64) *NotFoundError {
	return &NotFoundError{Entity: entity, ID: id}
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s with id: %d not found", e.Entity, e.ID)
}

// Is lets errors.Is(err, ErrNotFound) match any NotFoundError.
func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// AsNotFound extracts the NotFoundError from an error chain.
func AsNotFound(err error) (*NotFoundError, bool) {
	var nf *NotFoundError
	if errors.As(err, &nf) {
		return nf, true
	}
	return nil, false
}

package storage

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when an operation references an id that is not
	// present in its collection.
	ErrNotFound = errors.New("record not found")

	// ErrSerialization marks a stored collection that could not be decoded.
	// Reads treat such a collection as empty; the error is only logged.
	ErrSerialization = errors.New("corrupt stored collection")

	// ErrNoChange may be returned from a Mutate or Modify callback to leave
	// the collection as it is.
	ErrNoChange = errors.New("no change")

	// ErrInvalidIdentity is returned when a namespace is requested for a blank user.
	ErrInvalidIdentity = errors.New("user identity is required")
)

// IOError wraps a failure of the backing medium.
type IOError struct {
	Op  string
	Key string
	Err error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("storage %s %q: %v", e.Op, e.Key, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }

func notFound(key, id string) error {
	return fmt.Errorf("%s in %q: %w", id, key, ErrNotFound)
}

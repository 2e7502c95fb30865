package models

import (
	"errors"
	"fmt"
)

var (
	// ErrStorage marks underlying database I/O failures. Batch callers treat
	// these as non-fatal and retryable: collection keeps going when one save
	// fails.
	ErrStorage = errors.New("models: storage failure")

	// ErrNotFound is returned when a requested record does not exist.
	ErrNotFound = errors.New("models: not found")
)

// storageErr wraps a database error so callers can match it with
// errors.Is(err, ErrStorage) while keeping the underlying cause in the chain.
func storageErr(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, ErrStorage, err)
}

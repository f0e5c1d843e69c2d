package errors

import (
	stdErrors "errors"
	"fmt"
)

// StorageError represents a failed read or write against durable storage.
// The operation that triggered it must be treated as not applied.
type StorageError struct {
	Op  string // "load", "save" or "remove"
	Key string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage %s %q failed: %v", e.Op, e.Key, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// NewStorageError wraps err with the storage operation and key.
func NewStorageError(op, key string, err error) *StorageError {
	return &StorageError{Op: op, Key: key, Err: err}
}

// IsStorageError checks if error is a StorageError
func IsStorageError(err error) bool {
	var storageErr *StorageError
	return stdErrors.As(err, &storageErr)
}

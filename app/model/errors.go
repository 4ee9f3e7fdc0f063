package model

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound         = errors.New("no document found with the given _id")
	ErrCapacityExceeded = fmt.Errorf("you can only have %d top 10 achievements, remove one before adding another", Top10Capacity)
)

// ValidationError is a missing or malformed input, rejected before any write.
type ValidationError struct {
	Field   string
	Message string
}

func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return e.Field + ": " + e.Message
}

// StorageError wraps a failed persistence call.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return "storage " + e.Op + ": " + e.Err.Error()
}

func (e *StorageError) Unwrap() error { return e.Err }

// NotificationError is a failed mail send. It is logged, never returned to an end user.
type NotificationError struct {
	To  string
	Err error
}

func (e *NotificationError) Error() string {
	return "notify " + e.To + ": " + e.Err.Error()
}

func (e *NotificationError) Unwrap() error { return e.Err }

func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}

func IsStorage(err error) bool {
	var s *StorageError
	return errors.As(err, &s)
}

// Package apperr defines the error taxonomy shared by stores, services and handlers.
// Each condition is a distinct type so the HTTP boundary can map it to a status code.
package apperr

import (
	"errors"
	"fmt"
)

// ValidationError is malformed or out-of-range input.
type ValidationError struct {
	Message string
	Details []FieldError
}

// FieldError describes one invalid field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *ValidationError) Error() string { return e.Message }

// NotFoundError means a referenced entity does not exist.
type NotFoundError struct {
	Resource string
	Message  string
}

func (e *NotFoundError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return e.Resource + " not found"
}

// ConflictError is a uniqueness violation: duplicate like, duplicate or self friendship.
type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string { return e.Message }

// StoreError wraps a persistence failure. Its detail is logged, never returned to clients.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string { return fmt.Sprintf("%s: %v", e.Op, e.Err) }

func (e *StoreError) Unwrap() error { return e.Err }

func Validation(msg string, details ...FieldError) error {
	return &ValidationError{Message: msg, Details: details}
}

func NotFound(resource string) error {
	return &NotFoundError{Resource: resource}
}

// NotFoundf builds a NotFoundError with a custom client-facing message.
func NotFoundf(resource, format string, args ...any) error {
	return &NotFoundError{Resource: resource, Message: fmt.Sprintf(format, args...)}
}

func Conflict(msg string) error {
	return &ConflictError{Message: msg}
}

// Store wraps err as a StoreError unless it already belongs to the taxonomy.
func Store(op string, err error) error {
	if err == nil {
		return nil
	}
	if IsNotFound(err) || IsConflict(err) || IsValidation(err) {
		return err
	}
	var se *StoreError
	if errors.As(err, &se) {
		return err
	}
	return &StoreError{Op: op, Err: err}
}

func IsValidation(err error) bool {
	var target *ValidationError
	return errors.As(err, &target)
}

func IsNotFound(err error) bool {
	var target *NotFoundError
	return errors.As(err, &target)
}

func IsConflict(err error) bool {
	var target *ConflictError
	return errors.As(err, &target)
}

func IsStore(err error) bool {
	var target *StoreError
	return errors.As(err, &target)
}

/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package errors

import (
	"errors"
	"fmt"
)

// Common sentinel errors
var (
	// ErrNotFound is returned when a store or entity is not found
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists is returned when registering something that is already registered
	ErrAlreadyExists = errors.New("already exists")

	// ErrInvalidInput is returned when configuration or entity validation fails
	ErrInvalidInput = errors.New("invalid input")

	// ErrHandlerFailed is reported when an event handler returns an error or panics
	ErrHandlerFailed = errors.New("event handler failed")
)

// NotFoundError represents a lookup miss that callers asked to treat as an error
type NotFoundError struct {
	Type string
	Key  string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s with key %q not found", e.Type, e.Key)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// AlreadyExistsError represents a duplicate registration
type AlreadyExistsError struct {
	Type string
	Key  string
}

func (e *AlreadyExistsError) Error() string {
	return fmt.Sprintf("%s with key %q already exists", e.Type, e.Key)
}

func (e *AlreadyExistsError) Is(target error) bool {
	return target == ErrAlreadyExists
}

// ValidationError represents an input validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed for field %q: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation failed: %s", e.Message)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// HandlerError wraps the failure of a single event handler invocation.
// Cause is the returned error, or an error built from the recovered panic value.
type HandlerError struct {
	Store        string
	Subscription string
	Event        string
	Cause        error
}

func (e *HandlerError) Error() string {
	return fmt.Sprintf("store %q: handler %s failed on %s event: %v", e.Store, e.Subscription, e.Event, e.Cause)
}

func (e *HandlerError) Is(target error) bool {
	return target == ErrHandlerFailed
}

func (e *HandlerError) Unwrap() error {
	return e.Cause
}

// Helper functions for creating errors

// NewNotFoundError creates a new NotFoundError
func NewNotFoundError(kind, key string) error {
	return &NotFoundError{Type: kind, Key: key}
}

// NewAlreadyExistsError creates a new AlreadyExistsError
func NewAlreadyExistsError(kind, key string) error {
	return &AlreadyExistsError{Type: kind, Key: key}
}

// NewValidationError creates a new ValidationError
func NewValidationError(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// NewHandlerError creates a new HandlerError
func NewHandlerError(store, subscription, event string, cause error) error {
	return &HandlerError{Store: store, Subscription: subscription, Event: event, Cause: cause}
}

// NewPanicError turns a recovered panic value into an error.
func NewPanicError(recovered any) error {
	if err, ok := recovered.(error); ok {
		return fmt.Errorf("panic: %w", err)
	}
	return fmt.Errorf("panic: %v", recovered)
}

// IsNotFound checks if an error is a not found error
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsAlreadyExists checks if an error is an already exists error
func IsAlreadyExists(err error) bool {
	return errors.Is(err, ErrAlreadyExists)
}

// IsValidationError checks if an error is a validation error
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}

// IsHandlerFailure checks if an error came from a failed event handler
func IsHandlerFailure(err error) bool {
	return errors.Is(err, ErrHandlerFailed)
}

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
	// ErrNotFound is returned when an entity is not found
	ErrNotFound = errors.New("entity not found")

	// ErrAlreadyExists is returned when attempting to create an entity that already exists
	ErrAlreadyExists = errors.New("entity already exists")

	// ErrInvalidInput is returned when input validation fails
	ErrInvalidInput = errors.New("invalid input")

	// ErrNotResolved is returned when a generic type argument cannot be resolved
	ErrNotResolved = errors.New("type not resolved")

	// ErrNoSchema is returned when no schema is registered for a type, or a field has no column
	ErrNoSchema = errors.New("no schema found for type")

	// ErrPersistence is returned when the persistence collaborator reports a failure
	ErrPersistence = errors.New("persistence failure")
)

// Kind classifies an error for boundary-level reporting.
type Kind string

const (
	KindNone          Kind = ""
	KindNotFound      Kind = "not_found"
	KindAlreadyExists Kind = "already_exists"
	KindValidation    Kind = "validation"
	KindNotResolved   Kind = "not_resolved"
	KindSchema        Kind = "schema"
	KindPersistence   Kind = "persistence"
	KindUnknown       Kind = "unknown"
)

// NotFoundError represents an error when an entity is not found
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

// AlreadyExistsError represents an error when an entity already exists
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

// NotResolvedError reports a generic type argument that could not be recovered.
type NotResolvedError struct {
	Owner string
	Index int
}

func (e *NotResolvedError) Error() string {
	return fmt.Sprintf("type argument %d of %s not resolved", e.Index, e.Owner)
}

func (e *NotResolvedError) Is(target error) bool {
	return target == ErrNotResolved
}

// SchemaError reports a missing schema registration or an unmapped field.
type SchemaError struct {
	Type  string
	Field string
}

func (e *SchemaError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("schema for %s has no column for field %q", e.Type, e.Field)
	}
	return fmt.Sprintf("no schema registered for %s", e.Type)
}

func (e *SchemaError) Is(target error) bool {
	return target == ErrNoSchema
}

// PersistenceError wraps a failure reported by the persistence collaborator.
type PersistenceError struct {
	Operation string
	Err       error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s failed: %v", e.Operation, e.Err)
}

func (e *PersistenceError) Is(target error) bool {
	return target == ErrPersistence
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

// Helper functions for creating errors

// NewNotFoundError creates a new NotFoundError
func NewNotFoundError(entityType, key string) error {
	return &NotFoundError{Type: entityType, Key: key}
}

// NewAlreadyExistsError creates a new AlreadyExistsError
func NewAlreadyExistsError(entityType, key string) error {
	return &AlreadyExistsError{Type: entityType, Key: key}
}

// NewValidationError creates a new ValidationError
func NewValidationError(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// NewNotResolvedError creates a new NotResolvedError
func NewNotResolvedError(owner string, index int) error {
	return &NotResolvedError{Owner: owner, Index: index}
}

// NewSchemaError creates a new SchemaError; field is empty when the whole schema is missing
func NewSchemaError(entityType, field string) error {
	return &SchemaError{Type: entityType, Field: field}
}

// NewPersistenceError wraps err as a PersistenceError, or returns nil for a nil err
func NewPersistenceError(operation string, err error) error {
	if err == nil {
		return nil
	}
	return &PersistenceError{Operation: operation, Err: err}
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

// IsNotResolved checks if an error is a type resolution error
func IsNotResolved(err error) bool {
	return errors.Is(err, ErrNotResolved)
}

// IsSchemaError checks if an error is a schema error
func IsSchemaError(err error) bool {
	return errors.Is(err, ErrNoSchema)
}

// IsPersistenceError checks if an error came from the persistence collaborator
func IsPersistenceError(err error) bool {
	return errors.Is(err, ErrPersistence)
}

// KindOf classifies err. Errors wrapping several kinds report the outermost
// semantic kind, checked in the order below.
func KindOf(err error) Kind {
	switch {
	case err == nil:
		return KindNone
	case IsValidationError(err):
		return KindValidation
	case IsSchemaError(err):
		return KindSchema
	case IsNotResolved(err):
		return KindNotResolved
	case IsNotFound(err):
		return KindNotFound
	case IsAlreadyExists(err):
		return KindAlreadyExists
	case IsPersistenceError(err):
		return KindPersistence
	default:
		return KindUnknown
	}
}

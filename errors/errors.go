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
	// ErrNullMapperProvider is returned when materialization is requested without a mapper provider
	ErrNullMapperProvider = errors.New("mapper provider is nil")

	// ErrInvalidMapper is returned when a mapper provider yields no mapper for a type
	ErrInvalidMapper = errors.New("invalid property mapper")

	// ErrInvalidPropertyMapping is returned when a mapper produces a blank output key
	ErrInvalidPropertyMapping = errors.New("invalid property mapping")

	// ErrUnknownType is returned when a type name or native type has no schema type
	ErrUnknownType = errors.New("unknown schema type")

	// ErrNotFound is returned when a source has no instance for a key
	ErrNotFound = errors.New("instance not found")

	// ErrAlreadyExists is returned when registering a type name twice
	ErrAlreadyExists = errors.New("type already exists")

	// ErrInvalidInput is returned when input validation fails
	ErrInvalidInput = errors.New("invalid input")

	// ErrNoKeyTemplate is returned when an entity type has no key template for a storage lookup
	ErrNoKeyTemplate = errors.New("no key template found for type")
)

// InvalidMapperError reports the schema type for which no mapper was provided
type InvalidMapperError struct {
	Type string
}

func (e *InvalidMapperError) Error() string {
	return fmt.Sprintf("mapper provider returned no mapper for type %q", e.Type)
}

func (e *InvalidMapperError) Is(target error) bool {
	return target == ErrInvalidMapper
}

// InvalidPropertyMappingError reports a property whose mapped output key was blank
type InvalidPropertyMappingError struct {
	Type     string
	Property string
}

func (e *InvalidPropertyMappingError) Error() string {
	if e.Type != "" {
		return fmt.Sprintf("mapper returned an empty key for property %q of type %q", e.Property, e.Type)
	}
	return fmt.Sprintf("mapper returned an empty key for property %q", e.Property)
}

func (e *InvalidPropertyMappingError) Is(target error) bool {
	return target == ErrInvalidPropertyMapping
}

// UnknownTypeError represents a failed schema type resolution
type UnknownTypeError struct {
	Name string
}

func (e *UnknownTypeError) Error() string {
	return fmt.Sprintf("no schema type registered for %q", e.Name)
}

func (e *UnknownTypeError) Is(target error) bool {
	return target == ErrUnknownType
}

// NotFoundError represents an error when an instance is not found
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

// AlreadyExistsError represents an error when a type is already registered
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

// Helper functions for creating errors

// NewInvalidMapperError creates a new InvalidMapperError
func NewInvalidMapperError(typeName string) error {
	return &InvalidMapperError{Type: typeName}
}

// NewInvalidPropertyMappingError creates a new InvalidPropertyMappingError
func NewInvalidPropertyMappingError(typeName, property string) error {
	return &InvalidPropertyMappingError{Type: typeName, Property: property}
}

// NewUnknownTypeError creates a new UnknownTypeError
func NewUnknownTypeError(name string) error {
	return &UnknownTypeError{Name: name}
}

// NewNotFoundError creates a new NotFoundError
func NewNotFoundError(typeName, key string) error {
	return &NotFoundError{Type: typeName, Key: key}
}

// NewAlreadyExistsError creates a new AlreadyExistsError
func NewAlreadyExistsError(typeName, key string) error {
	return &AlreadyExistsError{Type: typeName, Key: key}
}

// NewValidationError creates a new ValidationError
func NewValidationError(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// IsNullMapperProvider checks if an error is a nil mapper provider error
func IsNullMapperProvider(err error) bool {
	return errors.Is(err, ErrNullMapperProvider)
}

// IsInvalidMapper checks if an error is an invalid mapper error
func IsInvalidMapper(err error) bool {
	return errors.Is(err, ErrInvalidMapper)
}

// IsInvalidPropertyMapping checks if an error is an invalid property mapping error
func IsInvalidPropertyMapping(err error) bool {
	return errors.Is(err, ErrInvalidPropertyMapping)
}

// IsUnknownType checks if an error is an unknown type error
func IsUnknownType(err error) bool {
	return errors.Is(err, ErrUnknownType)
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

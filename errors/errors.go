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

	// ErrConditionFailed is returned when a conditional update fails
	ErrConditionFailed = errors.New("condition check failed")

	// ErrNoIndexMap is returned when no index map is found for a type
	ErrNoIndexMap = errors.New("no index map found for type")

	// ErrConfiguration is returned when sender registration is ambiguous or invalid
	ErrConfiguration = errors.New("invalid dispatch configuration")

	// ErrRouting is returned when a notification has no registered sender
	ErrRouting = errors.New("no sender registered for notification")

	// ErrDelivery is returned when a sender fails to deliver a notification
	ErrDelivery = errors.New("notification delivery failed")
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

// ConditionFailedError represents a failed conditional operation
type ConditionFailedError struct {
	Operation string
	Condition string
}

func (e *ConditionFailedError) Error() string {
	return fmt.Sprintf("condition check failed for %s operation: %s", e.Operation, e.Condition)
}

func (e *ConditionFailedError) Is(target error) bool {
	return target == ErrConditionFailed
}

// ConfigurationError represents an invalid dispatch table configuration,
// such as two senders declaring the same variant or a sender declaring an
// unknown variant. Fatal to startup; never recovered at dispatch time.
type ConfigurationError struct {
	Variant string
	Message string
}

func (e *ConfigurationError) Error() string {
	if e.Variant != "" {
		return fmt.Sprintf("dispatch configuration error for variant %q: %s", e.Variant, e.Message)
	}
	return fmt.Sprintf("dispatch configuration error: %s", e.Message)
}

func (e *ConfigurationError) Is(target error) bool {
	return target == ErrConfiguration
}

// RoutingError represents a notification whose variant has no registered sender.
// It carries the offending notification's identifier so the failure is attributable.
type RoutingError struct {
	NotificationID string
	Variant        string
}

func (e *RoutingError) Error() string {
	return fmt.Sprintf("no sender registered for variant %q (notification %q)", e.Variant, e.NotificationID)
}

func (e *RoutingError) Is(target error) bool {
	return target == ErrRouting
}

// DeliveryError represents a sender side effect that could not complete.
// The underlying cause is preserved for errors.Is/As chains.
type DeliveryError struct {
	NotificationID string
	Variant        string
	Cause          error
}

func (e *DeliveryError) Error() string {
	return fmt.Sprintf("delivery failed for %s notification %q: %v", e.Variant, e.NotificationID, e.Cause)
}

func (e *DeliveryError) Is(target error) bool {
	return target == ErrDelivery
}

func (e *DeliveryError) Unwrap() error {
	return e.Cause
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

// NewConditionFailedError creates a new ConditionFailedError
func NewConditionFailedError(operation, condition string) error {
	return &ConditionFailedError{Operation: operation, Condition: condition}
}

// NewConfigurationError creates a new ConfigurationError
func NewConfigurationError(variant, message string) error {
	return &ConfigurationError{Variant: variant, Message: message}
}

// NewRoutingError creates a new RoutingError
func NewRoutingError(notificationID, variant string) error {
	return &RoutingError{NotificationID: notificationID, Variant: variant}
}

// NewDeliveryError creates a new DeliveryError wrapping the underlying cause
func NewDeliveryError(notificationID, variant string, cause error) error {
	return &DeliveryError{NotificationID: notificationID, Variant: variant, Cause: cause}
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

// IsConditionFailed checks if an error is a condition failed error
func IsConditionFailed(err error) bool {
	return errors.Is(err, ErrConditionFailed)
}

// IsConfigurationError checks if an error is a dispatch configuration error
func IsConfigurationError(err error) bool {
	return errors.Is(err, ErrConfiguration)
}

// IsRoutingError checks if an error is a routing error
func IsRoutingError(err error) bool {
	return errors.Is(err, ErrRouting)
}

// IsDeliveryError checks if an error is a delivery error
func IsDeliveryError(err error) bool {
	return errors.Is(err, ErrDelivery)
}

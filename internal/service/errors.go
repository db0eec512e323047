// Package service holds the catalog business logic. Services receive the shared
// database pool and their other collaborators at construction time and return
// plain data; HTTP shaping happens in the handlers.
package service

import (
	"errors"
)

// The three client-error kinds. Anything not wrapped in one of these propagates
// unclassified and the boundary treats it as a server fault.

// NotFoundError reports that a referenced entity does not exist.
type NotFoundError struct {
	Message string
}

func (e *NotFoundError) Error() string { return e.Message }

func NewNotFoundError(message string) error {
	return &NotFoundError{Message: message}
}

// AuthorizationError reports that the caller is neither the owner nor an
// authorized collaborator.
type AuthorizationError struct {
	Message string
}

func (e *AuthorizationError) Error() string { return e.Message }

func NewAuthorizationError(message string) error {
	return &AuthorizationError{Message: message}
}

// InvariantError reports a write that violated a business rule.
type InvariantError struct {
	Message string
}

func (e *InvariantError) Error() string { return e.Message }

func NewInvariantError(message string) error {
	return &InvariantError{Message: message}
}

func IsNotFound(err error) bool {
	var target *NotFoundError
	return errors.As(err, &target)
}

func IsAuthorization(err error) bool {
	var target *AuthorizationError
	return errors.As(err, &target)
}

func IsInvariant(err error) bool {
	var target *InvariantError
	return errors.As(err, &target)
}

package domain

import (
	"errors"
	"fmt"
	"net/http"
)

// HTTPError defines errors that can be mapped to HTTP status codes.
// Implementing this interface enables extensible error handling (OCP compliance).
type HTTPError interface {
	error
	StatusCode() int
}

// Domain error types implementing HTTPError interface
type (
	// NotFoundError indicates a resource was not found or is not owned by the caller
	NotFoundError struct {
		Message string
	}

	// ValidationError indicates invalid input
	ValidationError struct {
		Message string
	}

	// UnauthorizedError indicates authentication failure
	UnauthorizedError struct {
		Message string
	}

	// ForbiddenError indicates authorization failure
	ForbiddenError struct {
		Message string
	}
)

// Error implementations
func (e *NotFoundError) Error() string     { return e.Message }
func (e *ValidationError) Error() string   { return e.Message }
func (e *UnauthorizedError) Error() string { return e.Message }
func (e *ForbiddenError) Error() string    { return e.Message }

// StatusCode implementations (HTTPError interface)
func (e *NotFoundError) StatusCode() int     { return http.StatusNotFound }
func (e *ValidationError) StatusCode() int   { return http.StatusBadRequest }
func (e *UnauthorizedError) StatusCode() int { return http.StatusUnauthorized }
func (e *ForbiddenError) StatusCode() int    { return http.StatusForbidden }

// Sentinel errors for use with errors.Is()
var (
	ErrNotFound         = errors.New("not found")
	ErrParentNotFound   = errors.New("parent folder not found")
	ErrValidation       = errors.New("validation failed")
	ErrUnauthorized     = errors.New("unauthorized")
	ErrForbidden        = errors.New("forbidden")
	ErrStoreUnavailable = errors.New("store unavailable")
)

// ParentNotFoundError is returned when a create references a parentId that
// does not exist, is soft-deleted, or belongs to another owner. Creation
// fails cleanly; nothing is persisted.
type ParentNotFoundError struct {
	ParentID string
}

// Error implements the error interface
func (e *ParentNotFoundError) Error() string {
	return fmt.Sprintf("parent folder %s not found", e.ParentID)
}

// StatusCode implements the HTTPError interface
func (e *ParentNotFoundError) StatusCode() int {
	return http.StatusNotFound
}

// Is allows errors.Is() to match against ErrParentNotFound
func (e *ParentNotFoundError) Is(target error) bool {
	return target == ErrParentNotFound
}

// StoreUnavailableError wraps a store adapter failure after its bounded
// retry policy is exhausted. The original cause is preserved for logs.
type StoreUnavailableError struct {
	Op  string // store operation that failed (e.g. "put folder")
	Err error  // underlying SDK error
}

// Error implements the error interface
func (e *StoreUnavailableError) Error() string {
	return fmt.Sprintf("%s: store unavailable: %v", e.Op, e.Err)
}

// StatusCode implements the HTTPError interface
func (e *StoreUnavailableError) StatusCode() int {
	return http.StatusServiceUnavailable
}

// Unwrap exposes the underlying cause
func (e *StoreUnavailableError) Unwrap() error {
	return e.Err
}

// Is allows errors.Is() to match against ErrStoreUnavailable
func (e *StoreUnavailableError) Is(target error) bool {
	return target == ErrStoreUnavailable
}

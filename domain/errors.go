package domain

import (
	"errors"
	"net/http"
)

// HTTPError is implemented by errors that map to an HTTP status code.
// Handlers use it to translate domain failures without switching on
// concrete types.
type HTTPError interface {
	error
	StatusCode() int
}

type (
	// ValidationError indicates invalid caller input. Never retried.
	ValidationError struct {
		Message string
	}

	// NotFoundError indicates a missing project or file target.
	NotFoundError struct {
		Message string
	}

	// UnauthorizedError indicates the caller's identity is invalid.
	UnauthorizedError struct {
		Message string
	}

	// InsufficientCreditsError is a business-rule rejection: the owner's
	// remaining credits do not cover the requested operation. No state
	// change accompanies it.
	InsufficientCreditsError struct {
		Required  int
		Remaining int
	}

	// ConcurrentGenerationError indicates a generation is already in
	// flight for the project. Submissions are rejected, never queued.
	ConcurrentGenerationError struct {
		Message string
	}

	// ServiceError wraps a failure from an external collaborator
	// (generation or deployment service). Never silently retried.
	ServiceError struct {
		Message string
		Err     error
	}
)

func (e *ValidationError) Error() string   { return e.Message }
func (e *NotFoundError) Error() string     { return e.Message }
func (e *UnauthorizedError) Error() string { return e.Message }

func (e *InsufficientCreditsError) Error() string {
	return "insufficient credits"
}

func (e *ConcurrentGenerationError) Error() string { return e.Message }

func (e *ServiceError) Error() string { return e.Message }
func (e *ServiceError) Unwrap() error { return e.Err }

func (e *ValidationError) StatusCode() int           { return http.StatusBadRequest }
func (e *NotFoundError) StatusCode() int             { return http.StatusNotFound }
func (e *UnauthorizedError) StatusCode() int         { return http.StatusUnauthorized }
func (e *InsufficientCreditsError) StatusCode() int  { return http.StatusPaymentRequired }
func (e *ConcurrentGenerationError) StatusCode() int { return http.StatusConflict }
func (e *ServiceError) StatusCode() int              { return http.StatusBadGateway }

// Sentinel errors for errors.Is() checks.
var (
	ErrNotFound            = errors.New("not found")
	ErrValidation          = errors.New("validation failed")
	ErrUnauthorized        = errors.New("unauthorized")
	ErrInsufficientCredits = errors.New("insufficient credits")
)

func (e *NotFoundError) Is(target error) bool     { return target == ErrNotFound }
func (e *ValidationError) Is(target error) bool   { return target == ErrValidation }
func (e *UnauthorizedError) Is(target error) bool { return target == ErrUnauthorized }

func (e *InsufficientCreditsError) Is(target error) bool {
	return target == ErrInsufficientCredits
}

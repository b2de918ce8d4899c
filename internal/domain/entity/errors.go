package entity

import (
	"errors"
	"fmt"
)

// Sentinel errors for the reader's error taxonomy.
// The structured errors below match them with errors.Is.
var (
	// ErrFetch indicates a transport failure or a non-success HTTP status.
	ErrFetch = errors.New("fetch failed")

	// ErrFormat indicates a response that could not be decoded or lacks a required field.
	ErrFormat = errors.New("unexpected response format")

	// ErrNotFound indicates a detail view with neither a usable id nor a usable payload.
	ErrNotFound = errors.New("article not found")

	// ErrInvalidInput indicates that the provided input is invalid
	ErrInvalidInput = errors.New("invalid input")
)

// FetchError reports a failed call to the news API.
// StatusCode is 0 when the request never produced a response.
type FetchError struct {
	Op         string
	StatusCode int
	Err        error
}

// Error returns a formatted error message for the fetch error.
func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s: HTTP %d", e.Op, e.StatusCode)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
	return e.Op + ": fetch failed"
}

// Unwrap returns the underlying cause.
func (e *FetchError) Unwrap() error { return e.Err }

// Is makes errors.Is(err, ErrFetch) true for every FetchError.
func (e *FetchError) Is(target error) bool { return target == ErrFetch }

// FormatError reports a response body that is not the expected shape.
type FormatError struct {
	Op    string
	Field string
	Err   error
}

// Error returns a formatted error message for the format error.
func (e *FormatError) Error() string {
	switch {
	case e.Field != "" && e.Err != nil:
		return fmt.Sprintf("%s: field %q: %v", e.Op, e.Field, e.Err)
	case e.Field != "":
		return fmt.Sprintf("%s: missing field %q", e.Op, e.Field)
	case e.Err != nil:
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	default:
		return e.Op + ": unexpected response format"
	}
}

// Unwrap returns the underlying cause.
func (e *FormatError) Unwrap() error { return e.Err }

// Is makes errors.Is(err, ErrFormat) true for every FormatError.
func (e *FormatError) Is(target error) bool { return target == ErrFormat }

// NotFoundError reports a detail view that has nothing to resolve.
type NotFoundError struct {
	Reason string
}

// Error returns a formatted error message for the not-found error.
func (e *NotFoundError) Error() string {
	if e.Reason == "" {
		return ErrNotFound.Error()
	}
	return fmt.Sprintf("%s: %s", ErrNotFound.Error(), e.Reason)
}

// Is makes errors.Is(err, ErrNotFound) true for every NotFoundError.
func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

// ValidationError represents a validation error with detailed field information.
// It implements the error interface and provides context about which field failed validation.
type ValidationError struct {
	Field   string
	Message string
}

// Error returns a formatted error message for the validation error.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error on field '%s': %s", e.Field, e.Message)
}

// Is makes errors.Is(err, ErrInvalidInput) true for every ValidationError.
func (e *ValidationError) Is(target error) bool { return target == ErrInvalidInput }

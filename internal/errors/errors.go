// Package errors provides structured error types for todotrack.
package errors

import (
	"fmt"
	"strings"
)

// Code represents a unique error code.
type Code string

// Error codes for todotrack.
const (
	CodeInvalidPriority Code = "INVALID_PRIORITY"
	CodeTaskNotFound    Code = "TASK_NOT_FOUND"
	CodeConfigInvalid   Code = "CONFIG_INVALID"
	CodeIOFailure       Code = "IO_FAILURE"
)

// Category groups error codes for HTTP status mapping.
type Category int

const (
	CategoryUnknown Category = iota
	CategoryNotFound
	CategoryBadRequest
	CategoryInternal
)

// codeCategories maps error codes to their categories.
var codeCategories = map[Code]Category{
	CodeInvalidPriority: CategoryBadRequest,
	CodeTaskNotFound:    CategoryNotFound,
	CodeConfigInvalid:   CategoryBadRequest,
	CodeIOFailure:       CategoryInternal,
}

// HTTPStatus returns the HTTP status code for a category.
func (c Category) HTTPStatus() int {
	switch c {
	case CategoryNotFound:
		return 404
	case CategoryBadRequest:
		return 400
	default:
		return 500
	}
}

// TrackError is the structured error type for todotrack.
type TrackError struct {
	Code  Code   `json:"code"`
	What  string `json:"what"`
	Fix   string `json:"fix,omitempty"`
	Cause error  `json:"-"`
}

// Error implements the error interface.
func (e *TrackError) Error() string {
	var b strings.Builder
	b.WriteString(e.What)
	if e.Cause != nil {
		b.WriteString(": ")
		b.WriteString(e.Cause.Error())
	}
	return b.String()
}

// Unwrap returns the underlying cause.
func (e *TrackError) Unwrap() error {
	return e.Cause
}

// Category returns the error category for HTTP status mapping.
func (e *TrackError) Category() Category {
	if cat, ok := codeCategories[e.Code]; ok {
		return cat
	}
	return CategoryUnknown
}

// HTTPStatus returns the appropriate HTTP status code for this error.
func (e *TrackError) HTTPStatus() int {
	return e.Category().HTTPStatus()
}

// Is reports whether target is a TrackError with the same code.
func (e *TrackError) Is(target error) bool {
	t, ok := target.(*TrackError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// --- Error constructors ---

// ErrInvalidPriority returns an error for a priority outside {low, medium, high}.
func ErrInvalidPriority(priority string) *TrackError {
	return &TrackError{
		Code: CodeInvalidPriority,
		What: fmt.Sprintf("invalid priority %q", priority),
		Fix:  "Use one of: low, medium, high",
	}
}

// ErrTaskNotFound returns an error when a task doesn't exist.
func ErrTaskNotFound(id int64) *TrackError {
	return &TrackError{
		Code: CodeTaskNotFound,
		What: fmt.Sprintf("task %d not found", id),
		Fix:  "Run 'todotrack list' to see existing tasks",
	}
}

// ErrConfigInvalid returns an error for invalid configuration.
func ErrConfigInvalid(field, reason string) *TrackError {
	return &TrackError{
		Code: CodeConfigInvalid,
		What: fmt.Sprintf("invalid configuration: %s", field),
		Fix:  reason,
	}
}

// ErrIO wraps a fatal I/O error from the store or exporter.
func ErrIO(what string, cause error) *TrackError {
	return &TrackError{
		Code:  CodeIOFailure,
		What:  what,
		Cause: cause,
	}
}

// AsTrackError attempts to convert an error to a TrackError.
// Returns nil if the error is not a TrackError.
func AsTrackError(err error) *TrackError {
	for err != nil {
		if te, ok := err.(*TrackError); ok {
			return te
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			return nil
		}
		err = u.Unwrap()
	}
	return nil
}

package router

import (
	"encoding/json"
	"io"
	"strings"
)

// Error is a failure that can be written to the client as-is.
// Anything a handler returns that does not implement Error is treated as
// internal and replaced by the router's default error.
type Error interface {
	error
	StatusCode() int
	Encode(w io.Writer) error
}

// JsonError is the canonical error body. Every failure surfaced by the
// service, regardless of which stage of the pipeline produced it, is
// serialized in this shape.
type JsonError struct {
	Status int    `json:"status"`
	Reason string `json:"error_reason"`
}

func NewJsonError(status int, reason string) JsonError {
	return JsonError{
		Status: status,
		Reason: reason,
	}
}

func (e JsonError) StatusCode() int {
	return e.Status
}

func (e JsonError) Error() string {
	return e.Reason
}

func (e JsonError) Encode(w io.Writer) error {
	return json.NewEncoder(w).Encode(e)
}

// ValidationError carries multiple reasons. It is only produced by request
// body validation; pipeline failures are always singular JsonErrors.
type ValidationError struct {
	Status int      `json:"status"`
	Errors []string `json:"errors"`
}

func NewValidationError(status int, errs []string) ValidationError {
	return ValidationError{
		Status: status,
		Errors: errs,
	}
}

func (e ValidationError) StatusCode() int {
	return e.Status
}

func (e ValidationError) Error() string {
	return strings.Join(e.Errors, "; ")
}

func (e ValidationError) Encode(w io.Writer) error {
	return json.NewEncoder(w).Encode(e)
}

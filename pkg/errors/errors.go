package errors

import (
	"fmt"
	"strings"
)

// ErrNotFound is returned when a resource is not found
type ErrNotFound struct {
	Resource string
	ID       string
}

func (e *ErrNotFound) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Resource, e.ID)
}

// ErrUnauthorized is returned when authentication fails
type ErrUnauthorized struct {
	Message string
}

func (e *ErrUnauthorized) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return "unauthorized"
}

// ErrValidation is returned when validation fails
type ErrValidation struct {
	Message string
	Fields  map[string]string
}

func (e *ErrValidation) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return "validation failed"
}

// ErrUpstream is returned when the Shopify Admin API could not be reached,
// answered with a non-success status, or reported GraphQL errors.
// StatusCode is 0 when no response was received.
type ErrUpstream struct {
	Operation  string
	StatusCode int
	Message    string
	Throttled  bool
	Err        error
}

func (e *ErrUpstream) Error() string {
	var b strings.Builder
	b.WriteString("shopify ")
	if e.Operation != "" {
		b.WriteString(e.Operation)
		b.WriteString(" ")
	}
	b.WriteString("request failed")
	if e.StatusCode != 0 {
		fmt.Fprintf(&b, ": status %d", e.StatusCode)
	}
	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

func (e *ErrUpstream) Unwrap() error {
	return e.Err
}

// ErrMalformedResponse is returned when an upstream payload decodes but is
// missing a field the caller depends on.
type ErrMalformedResponse struct {
	Resource string
	Field    string
	Err      error
}

func (e *ErrMalformedResponse) Error() string {
	msg := fmt.Sprintf("malformed %s response", e.Resource)
	if e.Field != "" {
		msg += ": missing or invalid " + e.Field
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *ErrMalformedResponse) Unwrap() error {
	return e.Err
}

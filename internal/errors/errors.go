// Copyright (c) 2025 The restadmin Authors
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package errors defines typed errors with categories for user-friendly reporting.
// Every failure that reaches the view layer carries one of the kinds below so the
// CLI and the TUI can decide how to present it and whether a retry makes sense.
package errors

import (
	stderrors "errors"
	"fmt"
)

// Kind is a machine-readable error category.
type Kind string

const (
	// Network indicates a transport failure or a non-success HTTP status.
	Network Kind = "network_error"
	// Parse indicates malformed JSON or a payload missing expected fields.
	Parse Kind = "parse_error"
	// UnknownResource indicates a resource name that is not in the catalog.
	UnknownResource Kind = "unknown_resource"
)

// E wraps an error with kind and human-friendly message.
type E struct {
	Kind    Kind
	Message string
	Err     error
	// Status is the HTTP status code for Network errors caused by a response, 0 otherwise.
	Status int
}

func (e *E) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *E) Unwrap() error { return e.Err }

// Is matches any *E of the same kind, so errors.Is(err, errors.New(Parse, "")) works.
func (e *E) Is(target error) bool {
	t, ok := target.(*E)
	return ok && t.Kind == e.Kind
}

func Wrap(kind Kind, msg string, err error) *E { return &E{Kind: kind, Message: msg, Err: err} }
func New(kind Kind, msg string) *E             { return &E{Kind: kind, Message: msg} }

// Status builds a Network error for a non-success HTTP response.
func Status(code int, msg string) *E {
	return &E{Kind: Network, Message: msg, Status: code}
}

// KindOf returns the kind of the first *E in err's chain, or "" if there is none.
func KindOf(err error) Kind {
	var e *E
	if stderrors.As(err, &e) {
		return e.Kind
	}
	return ""
}

// IsKind reports whether err carries the given kind.
func IsKind(err error, kind Kind) bool {
	return KindOf(err) == kind
}

// Copyright 2026 The Opsdesk Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"fmt"

	"github.com/opsdesk-project/opsdesk/lib/deskapi"
)

// ErrorCategory classifies command failures so that scripts wrapping
// the CLI can make programmatic decisions (retry, fix input, escalate)
// without parsing error message text.
type ErrorCategory string

const (
	// CategoryValidation indicates the caller provided invalid input:
	// missing required arguments, unparseable values, a draft the
	// backend rejected. The caller should fix the input and retry.
	CategoryValidation ErrorCategory = "validation"

	// CategoryNotFound indicates a referenced resource does not exist:
	// unknown ticket ID, missing session file. Retrying with the same
	// parameters will not help.
	CategoryNotFound ErrorCategory = "not_found"

	// CategoryAuth indicates the backend rejected the stored
	// credentials. The caller should run "opsdesk login" again.
	CategoryAuth ErrorCategory = "auth"

	// CategoryTransient indicates a temporary failure: network error,
	// timeout, the backend's database still warming up. The caller
	// should back off and retry.
	CategoryTransient ErrorCategory = "transient"

	// CategoryInternal indicates an unexpected error: bugs, I/O
	// failures, malformed responses. The caller should report the
	// error rather than retry.
	CategoryInternal ErrorCategory = "internal"
)

// CommandError is a categorized error returned by CLI commands. Main
// maps the category to an exit code (validation 2, auth 3, not-found
// 4, transient 5, internal 1) so shell scripts can branch on $?.
//
// CommandError wraps an inner error, preserving the full error chain.
// Use the category-specific constructors (Validation, NotFound, etc.)
// rather than constructing CommandError directly.
type CommandError struct {
	// Category classifies the error for programmatic handling.
	Category ErrorCategory

	// Err is the underlying error with the human-readable message.
	Err error
}

func (e *CommandError) Error() string { return e.Err.Error() }

// Unwrap returns the underlying error, allowing errors.Is and
// errors.As to walk the full chain through the CommandError wrapper.
func (e *CommandError) Unwrap() error { return e.Err }

// ExitCode maps the category to the process exit code.
func (e *CommandError) ExitCode() int {
	switch e.Category {
	case CategoryValidation:
		return 2
	case CategoryAuth:
		return 3
	case CategoryNotFound:
		return 4
	case CategoryTransient:
		return 5
	default:
		return 1
	}
}

// Validation creates a validation error: the caller provided bad input.
func Validation(format string, args ...any) *CommandError {
	return &CommandError{Category: CategoryValidation, Err: fmt.Errorf(format, args...)}
}

// NotFound creates a not-found error: a referenced resource does not exist.
func NotFound(format string, args ...any) *CommandError {
	return &CommandError{Category: CategoryNotFound, Err: fmt.Errorf(format, args...)}
}

// Auth creates an authentication error: the backend rejected the credentials.
func Auth(format string, args ...any) *CommandError {
	return &CommandError{Category: CategoryAuth, Err: fmt.Errorf(format, args...)}
}

// Transient creates a transient error: a temporary failure that may succeed on retry.
func Transient(format string, args ...any) *CommandError {
	return &CommandError{Category: CategoryTransient, Err: fmt.Errorf(format, args...)}
}

// Internal creates an internal error: an unexpected failure, bug, or I/O error.
func Internal(format string, args ...any) *CommandError {
	return &CommandError{Category: CategoryInternal, Err: fmt.Errorf(format, args...)}
}

// Backend categorizes an error from the ticket backend. Credential
// rejections get the login hint appended; everything else keeps its
// message and gains the matching category.
func Backend(operation string, err error) *CommandError {
	switch {
	case deskapi.IsUnauthorized(err):
		return Auth("%s: %v — run \"opsdesk login\" to refresh your credentials", operation, err)
	case deskapi.IsNotFound(err):
		return NotFound("%s: %v", operation, err)
	case deskapi.IsValidationFailed(err):
		return Validation("%s: %v", operation, err)
	case deskapi.IsDatabaseNotReady(err):
		return Transient("%s: %v", operation, err)
	default:
		return Internal("%s: %v", operation, err)
	}
}

// Copyright 2026 The Opsdesk Authors
// SPDX-License-Identifier: Apache-2.0

package deskapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// APIError represents a non-2xx response from the ticket backend. The
// backend wraps error text in a {"detail": "..."} body; plain-text
// bodies from proxies in front of it are carried through verbatim.
type APIError struct {
	// StatusCode is the HTTP response status code.
	StatusCode int

	// Detail is the error description from the backend.
	Detail string
}

func (err *APIError) Error() string {
	return fmt.Sprintf("deskapi: HTTP %d: %s", err.StatusCode, err.Detail)
}

// IsUnauthorized reports whether err is a 401 response, meaning the
// stored credentials were rejected and the operator must log in again.
func IsUnauthorized(err error) bool {
	var apiError *APIError
	return errors.As(err, &apiError) && apiError.StatusCode == 401
}

// IsNotFound reports whether err is a 404 Not Found response.
func IsNotFound(err error) bool {
	var apiError *APIError
	return errors.As(err, &apiError) && apiError.StatusCode == 404
}

// IsValidationFailed reports whether err is a 422 response, returned
// when a submitted payload fails the backend's field validation.
func IsValidationFailed(err error) bool {
	var apiError *APIError
	return errors.As(err, &apiError) && apiError.StatusCode == 422
}

// IsDatabaseNotReady reports whether err is the backend's 503 response
// emitted while its database connection is still warming up.
func IsDatabaseNotReady(err error) bool {
	var apiError *APIError
	return errors.As(err, &apiError) && apiError.StatusCode == 503
}

// parseAPIErrorFromBody parses a backend error from a status code and
// response body.
func parseAPIErrorFromBody(statusCode int, body []byte) *APIError {
	apiError := &APIError{StatusCode: statusCode}

	var wireError struct {
		Detail string `json:"detail"`
	}
	if json.Unmarshal(body, &wireError) == nil && wireError.Detail != "" {
		apiError.Detail = wireError.Detail
	} else {
		apiError.Detail = strings.TrimSpace(string(body))
	}
	if apiError.Detail == "" {
		apiError.Detail = "(no error detail)"
	}
	return apiError
}

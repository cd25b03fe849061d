// Copyright 2026 The Opsdesk Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"errors"
	"strings"
	"testing"

	"github.com/opsdesk-project/opsdesk/lib/deskapi"
)

func TestBackendCategorizes(t *testing.T) {
	cases := []struct {
		status   int
		category ErrorCategory
		exitCode int
	}{
		{401, CategoryAuth, 3},
		{404, CategoryNotFound, 4},
		{422, CategoryValidation, 2},
		{503, CategoryTransient, 5},
		{500, CategoryInternal, 1},
	}
	for _, test := range cases {
		err := Backend("listing tickets", &deskapi.APIError{StatusCode: test.status, Detail: "boom"})
		if err.Category != test.category {
			t.Errorf("HTTP %d category = %q, want %q", test.status, err.Category, test.category)
		}
		if got := err.ExitCode(); got != test.exitCode {
			t.Errorf("HTTP %d exit code = %d, want %d", test.status, got, test.exitCode)
		}
	}
}

func TestBackendAuthMentionsLogin(t *testing.T) {
	err := Backend("listing tickets", &deskapi.APIError{StatusCode: 401, Detail: "Invalid credentials"})
	if !strings.Contains(err.Error(), "opsdesk login") {
		t.Errorf("auth error %q should mention opsdesk login", err)
	}
}

func TestCommandErrorUnwraps(t *testing.T) {
	inner := &deskapi.APIError{StatusCode: 404, Detail: "not here"}
	err := Backend("updating status", inner)

	var apiError *deskapi.APIError
	if !errors.As(err, &apiError) {
		t.Fatal("CommandError should unwrap to the backend error")
	}
	if apiError.StatusCode != 404 {
		t.Errorf("unwrapped status = %d, want 404", apiError.StatusCode)
	}
}

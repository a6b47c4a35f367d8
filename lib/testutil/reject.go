// Copyright 2026 The ScratchRobin Authors
// SPDX-License-Identifier: Apache-2.0

package testutil

import (
	"github.com/scratchrobin/scratchrobin/lib/reject"
)

// RequireReject fails the test unless err carries a reject with the
// given code, and returns its payload for further checks.
//
//	payload := testutil.RequireReject(t, err, reject.CodeArtifactMissing)
//	if payload.Details != "LICENSE" { ... }
func RequireReject(t interface {
	Helper()
	Fatalf(format string, args ...any)
}, err error, code string) reject.Payload {
	t.Helper()
	if err == nil {
		t.Fatalf("expected reject %s, got nil error", code)
	}
	rejectErr, ok := reject.As(err)
	if !ok {
		t.Fatalf("expected reject %s, got non-reject error: %v", code, err)
	}
	payload := rejectErr.Payload()
	if payload.Code != code {
		t.Fatalf("reject code = %s, want %s (%v)", payload.Code, code, err)
	}
	return payload
}

// Copyright 2026 The ScratchRobin Authors
// SPDX-License-Identifier: Apache-2.0

package release

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/scratchrobin/scratchrobin/lib/reject"
	"github.com/scratchrobin/scratchrobin/lib/testutil"
)

func TestWriteAuditRequiredAppends(t *testing.T) {
	path := filepath.Join(t.TempDir(), "audit.jsonl")
	for _, line := range []string{`{"event":"a"}`, `{"event":"b"}`} {
		if err := WriteAuditRequired(path, line); err != nil {
			t.Fatalf("WriteAuditRequired: %v", err)
		}
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "{\"event\":\"a\"}\n{\"event\":\"b\"}\n" {
		t.Errorf("audit log = %q", data)
	}
}

func TestWriteAuditRequiredOpenFailure(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing-dir", "audit.jsonl")
	payload := testutil.RequireReject(t, WriteAuditRequired(path, "x"), reject.CodeAuditWrite)
	if payload.Message != "audit write failure: open" || payload.Details != path {
		t.Errorf("payload = %+v", payload)
	}
}

func TestEnforceGovernanceGate(t *testing.T) {
	var applied int
	var audited []string
	apply := func() error { applied++; return nil }
	audit := func(event string) error { audited = append(audited, event); return nil }

	if err := EnforceGovernanceGate(true, apply, audit); err != nil {
		t.Fatalf("allowed action: %v", err)
	}
	if applied != 1 || len(audited) != 0 {
		t.Errorf("allowed: applied=%d audited=%v", applied, audited)
	}

	payload := testutil.RequireReject(t, EnforceGovernanceGate(false, apply, audit), reject.CodeGovernanceGate)
	if payload.Operation != "enforce_governance_gate" {
		t.Errorf("operation = %q", payload.Operation)
	}
	if applied != 1 || len(audited) != 1 || audited[0] != "denied" {
		t.Errorf("denied: applied=%d audited=%v", applied, audited)
	}
}

func TestEnforceGovernanceGateAuditFailure(t *testing.T) {
	auditErr := errors.New("disk full")
	err := EnforceGovernanceGate(false, func() error { return nil }, func(string) error { return auditErr })
	if !errors.Is(err, auditErr) {
		t.Errorf("error = %v, want audit failure", err)
	}
}

// Copyright 2026 The ScratchRobin Authors
// SPDX-License-Identifier: Apache-2.0

package release

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/scratchrobin/scratchrobin/lib/clock"
	"github.com/scratchrobin/scratchrobin/lib/reject"
	"github.com/scratchrobin/scratchrobin/lib/testutil"
)

func TestServiceCheckRegisterWritesAudit(t *testing.T) {
	root := t.TempDir()
	register := testutil.WriteFile(t, root, "BLOCKER_REGISTER.csv", sampleRegister)
	auditLog := filepath.Join(root, "audit.log")

	service := NewService(ServiceConfig{
		AuditLog: auditLog,
		Clock:    clock.Fake(time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)),
	})
	verdict, err := service.CheckRegister(register)
	if err != nil {
		t.Fatalf("CheckRegister: %v", err)
	}
	if verdict.Promotable || verdict.BlockerCount != 3 {
		t.Errorf("verdict = %+v", verdict)
	}

	data, err := os.ReadFile(auditLog)
	if err != nil {
		t.Fatalf("reading audit log: %v", err)
	}
	want := "2026-03-01T12:00:00Z gate_check register=" + register +
		" promotable=false phase=unresolved_p0_blockers rc=unresolved_p0_p1_blockers blocking=BLK-0001;BLK-0002\n"
	if string(data) != want {
		t.Errorf("audit log = %q, want %q", data, want)
	}
}

func TestServiceCheckRegisterRejects(t *testing.T) {
	root := t.TempDir()
	service := NewService(ServiceConfig{})

	_, err := service.CheckRegister(filepath.Join(root, "missing.csv"))
	testutil.RequireReject(t, err, reject.CodeGovernanceRegister)

	bad := testutil.WriteFile(t, root, "bad.csv", BlockerHeader+"\n"+
		"BLK-1,P0,open,manual,X,2026-02-14T00:00:00Z,2026-02-14T00:00:00Z,o,s\n")
	_, err = service.CheckRegister(bad)
	testutil.RequireReject(t, err, reject.CodeGovernanceRegister)
}

func TestServiceCheckRegisterAuditFailure(t *testing.T) {
	root := t.TempDir()
	register := testutil.WriteFile(t, root, "BLOCKER_REGISTER.csv", sampleRegister)

	// A directory cannot be opened for append.
	service := NewService(ServiceConfig{AuditLog: root})
	_, err := service.CheckRegister(register)
	testutil.RequireReject(t, err, reject.CodeAuditWrite)
}

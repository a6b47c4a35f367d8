// Copyright 2026 The ScratchRobin Authors
// SPDX-License-Identifier: Apache-2.0

package release

import (
	"maps"
	"os"
	"slices"

	"github.com/scratchrobin/scratchrobin/lib/reject"
)

func auditReject(stage, path string) *reject.Error {
	return reject.New(reject.CodeAuditWrite, "audit write failure: "+stage, "governance", "write_audit_required",
		reject.WithDetails(path))
}

// WriteAuditRequired appends line plus a newline to the audit log at
// path and syncs it to disk. The file is created if absent.
func WriteAuditRequired(path, line string) error {
	file, err := os.OpenFile(path, os.O_WRONLY|os.O_APPEND|os.O_CREATE, 0o644)
	if err != nil {
		return auditReject("open", path)
	}
	if _, err := file.WriteString(line + "\n"); err != nil {
		file.Close()
		return auditReject("flush", path)
	}
	if err := file.Sync(); err != nil {
		file.Close()
		return auditReject("fsync", path)
	}
	if err := file.Close(); err != nil {
		return auditReject("flush", path)
	}
	return nil
}

// EnforceGovernanceGate runs apply when allowed. A denied action is
// audited as "denied" before the rejection is returned; an audit
// failure takes precedence.
func EnforceGovernanceGate(allowed bool, apply func() error, audit func(string) error) error {
	if !allowed {
		if err := audit("denied"); err != nil {
			return err
		}
		return reject.New(reject.CodeGovernanceGate, "governance policy denied action", "governance",
			"enforce_governance_gate")
	}
	return apply()
}

func sortedKeys[V any](m map[string]V) []string {
	return slices.Sorted(maps.Keys(m))
}

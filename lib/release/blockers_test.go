// Copyright 2026 The ScratchRobin Authors
// SPDX-License-Identifier: Apache-2.0

package release

import (
	"path/filepath"
	"slices"
	"testing"

	"github.com/scratchrobin/scratchrobin/lib/reject"
	"github.com/scratchrobin/scratchrobin/lib/testutil"
)

const sampleRegister = BlockerHeader + "\n" +
	"BLK-0001,P0,open,conformance_case,CASE-0001,2026-02-14T00:00:00Z,2026-02-14T00:00:00Z,release,catalog fixture missing\n" +
	"BLK-0002,P1,mitigated,reject_code,SRB1-R-3101,2026-02-14T00:00:00Z,2026-02-14T00:00:00Z,storage,project loader hardening\n" +
	"\n" +
	"BLK-0003,P2,waived,manual,NOTE-1,2026-02-14T00:00:00Z,2026-02-14T00:00:00Z,docs,preview-only waiver, pending copy edit\n"

func sampleRows(t *testing.T) []BlockerRow {
	t.Helper()
	rows, err := ParseBlockerRegister(sampleRegister)
	if err != nil {
		t.Fatalf("ParseBlockerRegister: %v", err)
	}
	return rows
}

func TestLoadBlockerRegister(t *testing.T) {
	path := testutil.WriteFile(t, t.TempDir(), "BLOCKER_REGISTER.csv", sampleRegister)

	rows, err := LoadBlockerRegister(path)
	if err != nil {
		t.Fatalf("LoadBlockerRegister: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("rows = %d, want 3", len(rows))
	}
	if rows[1].SourceID != "SRB1-R-3101" || rows[1].Status != "mitigated" {
		t.Errorf("row 1 = %+v", rows[1])
	}
	if rows[2].Summary != "preview-only waiver, pending copy edit" {
		t.Errorf("summary = %q, want the trailing columns joined", rows[2].Summary)
	}
	if err := ValidateBlockerRows(rows); err != nil {
		t.Errorf("ValidateBlockerRows: %v", err)
	}
}

func TestLoadBlockerRegisterMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "absent.csv")
	_, err := LoadBlockerRegister(path)
	payload := testutil.RequireReject(t, err, reject.CodeGovernanceRegister)
	if payload.Message != "unable to read blocker register" || payload.Details != path {
		t.Errorf("payload = %+v", payload)
	}
	if payload.Surface != "governance" || payload.Operation != "load_blocker_register" {
		t.Errorf("surface/operation = %s/%s", payload.Surface, payload.Operation)
	}
}

func TestParseBlockerRegisterRejects(t *testing.T) {
	tests := []struct {
		name        string
		text        string
		wantMessage string
		wantDetails string
	}{
		{"empty", "", "invalid blocker register header", ""},
		{"wrong header", "id,severity\n", "invalid blocker register header", ""},
		{"crlf header", BlockerHeader + "\r\n", "invalid blocker register header", ""},
		{"short row", BlockerHeader + "\nBLK-0001,P0,open\n", "invalid blocker row format", "BLK-0001,P0,open"},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := ParseBlockerRegister(test.text)
			payload := testutil.RequireReject(t, err, reject.CodeGovernanceRegister)
			if payload.Message != test.wantMessage {
				t.Errorf("message = %q, want %q", payload.Message, test.wantMessage)
			}
			if payload.Details != test.wantDetails {
				t.Errorf("details = %q, want %q", payload.Details, test.wantDetails)
			}
		})
	}
}

func TestValidateBlockerRowsRejects(t *testing.T) {
	valid := BlockerRow{
		BlockerID: "BLK-0100", Severity: "P1", Status: "open", SourceType: "manual", SourceID: "X",
		OpenedAt: "2026-02-14T00:00:00Z", UpdatedAt: "2026-02-14T00:00:00Z", Owner: "ops", Summary: "text",
	}
	tests := []struct {
		name        string
		mutate      func(*BlockerRow)
		wantMessage string
	}{
		{"short id", func(r *BlockerRow) { r.BlockerID = "BLK-12" }, "invalid blocker id"},
		{"lowercase id", func(r *BlockerRow) { r.BlockerID = "blk-0001" }, "invalid blocker id"},
		{"severity", func(r *BlockerRow) { r.Severity = "P3" }, "invalid blocker enum value"},
		{"status", func(r *BlockerRow) { r.Status = "resolved" }, "invalid blocker enum value"},
		{"source type", func(r *BlockerRow) { r.SourceType = "ticket" }, "invalid blocker enum value"},
		{"timestamp", func(r *BlockerRow) { r.UpdatedAt = "2026-02-14 00:00:00" }, "invalid blocker row fields"},
		{"owner", func(r *BlockerRow) { r.Owner = "" }, "invalid blocker row fields"},
		{"waived source", func(r *BlockerRow) {
			r.Status, r.SourceType, r.Summary = "waived", "reject_code", "ga-only"
		}, "waived requires manual source"},
		{"waived scope", func(r *BlockerRow) { r.Status = "waived" }, "waived requires profile scope in summary"},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			row := valid
			test.mutate(&row)
			payload := testutil.RequireReject(t, ValidateBlockerRows([]BlockerRow{row}), reject.CodeGovernanceRegister)
			if payload.Message != test.wantMessage {
				t.Errorf("message = %q, want %q", payload.Message, test.wantMessage)
			}
			if payload.Operation != "validate_blockers" {
				t.Errorf("operation = %q", payload.Operation)
			}
		})
	}
	if err := ValidateBlockerRows([]BlockerRow{valid}); err != nil {
		t.Errorf("valid row rejected: %v", err)
	}
}

func TestGates(t *testing.T) {
	rows := sampleRows(t)

	phase, err := EvaluatePhaseAcceptance(rows)
	if err != nil {
		t.Fatalf("EvaluatePhaseAcceptance: %v", err)
	}
	if phase.Pass || phase.Reason != ReasonUnresolvedP0 || !slices.Equal(phase.BlockingBlockerIDs, []string{"BLK-0001"}) {
		t.Errorf("phase = %+v", phase)
	}

	rc, err := EvaluateRcEntry(rows)
	if err != nil {
		t.Fatalf("EvaluateRcEntry: %v", err)
	}
	if rc.Pass || rc.Reason != ReasonUnresolvedP0P1 ||
		!slices.Equal(rc.BlockingBlockerIDs, []string{"BLK-0001", "BLK-0002"}) {
		t.Errorf("rc = %+v", rc)
	}

	rows[0].Status = "closed"
	rows[1].Status = "closed"
	verdict, err := EvaluatePromotability(rows)
	if err != nil {
		t.Fatalf("EvaluatePromotability: %v", err)
	}
	if !verdict.Promotable || verdict.PhaseAcceptance.Reason != ReasonPass || verdict.RcEntry.Reason != ReasonPass {
		t.Errorf("verdict = %+v", verdict)
	}
}

func TestGatesValidateFirst(t *testing.T) {
	rows := sampleRows(t)
	rows[2].Severity = "P9"
	if _, err := EvaluatePhaseAcceptance(rows); reject.CodeOf(err) != reject.CodeGovernanceRegister {
		t.Errorf("phase error = %v", err)
	}
	if _, err := EvaluateRcEntry(rows); reject.CodeOf(err) != reject.CodeGovernanceRegister {
		t.Errorf("rc error = %v", err)
	}
}

func TestExportPromotabilityJSON(t *testing.T) {
	verdict, err := EvaluatePromotability(nil)
	if err != nil {
		t.Fatalf("EvaluatePromotability: %v", err)
	}
	text, err := ExportPromotabilityJSON(verdict)
	if err != nil {
		t.Fatalf("ExportPromotabilityJSON: %v", err)
	}
	want := `{"promotable":true,` +
		`"phase_acceptance":{"pass":true,"reason":"pass","blocking_blocker_ids":[]},` +
		`"rc_entry":{"pass":true,"reason":"pass","blocking_blocker_ids":[]},` +
		`"blocker_count":0}`
	if text != want {
		t.Errorf("json =\n%s\nwant\n%s", text, want)
	}
}

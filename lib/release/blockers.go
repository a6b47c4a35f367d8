// Copyright 2026 The ScratchRobin Authors
// SPDX-License-Identifier: Apache-2.0

package release

import (
	"os"
	"regexp"
	"slices"
	"strings"

	"github.com/scratchrobin/scratchrobin/lib/jsondoc"
	"github.com/scratchrobin/scratchrobin/lib/reject"
)

// BlockerHeader is the required first line of a blocker register.
const BlockerHeader = "blocker_id,severity,status,source_type,source_id,opened_at,updated_at,owner,summary"

const blockerColumns = 9

// BlockerRow is one blocker register entry.
type BlockerRow struct {
	BlockerID  string `json:"blocker_id"`
	Severity   string `json:"severity"`
	Status     string `json:"status"`
	SourceType string `json:"source_type"`
	SourceID   string `json:"source_id"`
	OpenedAt   string `json:"opened_at"`
	UpdatedAt  string `json:"updated_at"`
	Owner      string `json:"owner"`
	Summary    string `json:"summary"`
}

// Unresolved reports whether the blocker still counts against a gate.
func (r BlockerRow) Unresolved() bool {
	return r.Status == "open" || r.Status == "mitigated"
}

var (
	blockerIDPattern = regexp.MustCompile(`^BLK-[0-9]{4}$`)

	severities  = []string{"P0", "P1", "P2"}
	statuses    = []string{"open", "mitigated", "waived", "closed"}
	sourceTypes = []string{"reject_code", "conformance_case", "manual"}
)

func governanceReject(message, operation string, options ...reject.Option) *reject.Error {
	return reject.New(reject.CodeGovernanceRegister, message, "governance", operation, options...)
}

// LoadBlockerRegister reads and splits the register at path. Rows are
// not validated here; the gates do that.
func LoadBlockerRegister(path string) ([]BlockerRow, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, governanceReject("unable to read blocker register", "load_blocker_register",
			reject.WithDetails(path))
	}
	return ParseBlockerRegister(string(data))
}

// ParseBlockerRegister splits register text into rows. Lines end at
// '\n' only; a '\r' before it stays part of the line, so a CRLF header
// does not match.
func ParseBlockerRegister(text string) ([]BlockerRow, error) {
	lines := strings.Split(text, "\n")
	if lines[0] != BlockerHeader {
		return nil, governanceReject("invalid blocker register header", "load_blocker_register")
	}

	var rows []BlockerRow
	for _, line := range lines[1:] {
		if line == "" {
			continue
		}
		columns := strings.SplitN(line, ",", blockerColumns)
		if len(columns) != blockerColumns {
			return nil, governanceReject("invalid blocker row format", "load_blocker_register",
				reject.WithDetails(line))
		}
		rows = append(rows, BlockerRow{
			BlockerID:  columns[0],
			Severity:   columns[1],
			Status:     columns[2],
			SourceType: columns[3],
			SourceID:   columns[4],
			OpenedAt:   columns[5],
			UpdatedAt:  columns[6],
			Owner:      columns[7],
			Summary:    columns[8],
		})
	}
	return rows, nil
}

// ValidateBlockerRows checks every row's id, enumerations, timestamps,
// and required text. A waived blocker must be a manual entry whose
// summary scopes the waiver with "ga-only" or "preview-only".
func ValidateBlockerRows(rows []BlockerRow) error {
	for _, row := range rows {
		if !blockerIDPattern.MatchString(row.BlockerID) {
			return governanceReject("invalid blocker id", "validate_blockers", reject.WithDetails(row.BlockerID))
		}
		if !slices.Contains(severities, row.Severity) || !slices.Contains(statuses, row.Status) ||
			!slices.Contains(sourceTypes, row.SourceType) {
			return governanceReject("invalid blocker enum value", "validate_blockers", reject.WithDetails(row.BlockerID))
		}
		if !jsondoc.IsRFC3339UTC(row.OpenedAt) || !jsondoc.IsRFC3339UTC(row.UpdatedAt) ||
			row.Owner == "" || row.Summary == "" {
			return governanceReject("invalid blocker row fields", "validate_blockers", reject.WithDetails(row.BlockerID))
		}
		if row.Status == "waived" {
			if row.SourceType != "manual" {
				return governanceReject("waived requires manual source", "validate_blockers",
					reject.WithDetails(row.BlockerID))
			}
			if !strings.Contains(row.Summary, "ga-only") && !strings.Contains(row.Summary, "preview-only") {
				return governanceReject("waived requires profile scope in summary", "validate_blockers",
					reject.WithDetails(row.BlockerID))
			}
		}
	}
	return nil
}

// Copyright 2026 The ScratchRobin Authors
// SPDX-License-Identifier: Apache-2.0

package release

import (
	"encoding/json"
	"slices"
)

// Gate reasons.
const (
	ReasonPass           = "pass"
	ReasonUnresolvedP0   = "unresolved_p0_blockers"
	ReasonUnresolvedP0P1 = "unresolved_p0_p1_blockers"
)

// GateDecision is the outcome of one gate. BlockingBlockerIDs lists
// the offending rows in register order.
type GateDecision struct {
	Pass               bool     `json:"pass"`
	Reason             string   `json:"reason"`
	BlockingBlockerIDs []string `json:"blocking_blocker_ids"`
}

func evaluate(rows []BlockerRow, blocking []string, failReason string) (GateDecision, error) {
	if err := ValidateBlockerRows(rows); err != nil {
		return GateDecision{}, err
	}
	decision := GateDecision{BlockingBlockerIDs: []string{}}
	for _, row := range rows {
		if slices.Contains(blocking, row.Severity) && row.Unresolved() {
			decision.BlockingBlockerIDs = append(decision.BlockingBlockerIDs, row.BlockerID)
		}
	}
	decision.Pass = len(decision.BlockingBlockerIDs) == 0
	decision.Reason = failReason
	if decision.Pass {
		decision.Reason = ReasonPass
	}
	return decision, nil
}

// EvaluatePhaseAcceptance fails on any unresolved P0 blocker.
func EvaluatePhaseAcceptance(rows []BlockerRow) (GateDecision, error) {
	return evaluate(rows, []string{"P0"}, ReasonUnresolvedP0)
}

// EvaluateRcEntry fails on any unresolved P0 or P1 blocker.
func EvaluateRcEntry(rows []BlockerRow) (GateDecision, error) {
	return evaluate(rows, []string{"P0", "P1"}, ReasonUnresolvedP0P1)
}

// Promotability combines both gates.
type Promotability struct {
	Promotable      bool         `json:"promotable"`
	PhaseAcceptance GateDecision `json:"phase_acceptance"`
	RcEntry         GateDecision `json:"rc_entry"`
	BlockerCount    int          `json:"blocker_count"`
}

// EvaluatePromotability runs both gates. The build is promotable only
// when both pass.
func EvaluatePromotability(rows []BlockerRow) (Promotability, error) {
	phase, err := EvaluatePhaseAcceptance(rows)
	if err != nil {
		return Promotability{}, err
	}
	rc, err := EvaluateRcEntry(rows)
	if err != nil {
		return Promotability{}, err
	}
	return Promotability{
		Promotable:      phase.Pass && rc.Pass,
		PhaseAcceptance: phase,
		RcEntry:         rc,
		BlockerCount:    len(rows),
	}, nil
}

// ExportPromotabilityJSON renders a verdict as single-line JSON with
// a fixed key order.
func ExportPromotabilityJSON(verdict Promotability) (string, error) {
	for _, decision := range []*GateDecision{&verdict.PhaseAcceptance, &verdict.RcEntry} {
		if decision.BlockingBlockerIDs == nil {
			decision.BlockingBlockerIDs = []string{}
		}
	}
	data, err := json.Marshal(verdict)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

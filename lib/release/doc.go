// Copyright 2026 The ScratchRobin Authors
// SPDX-License-Identifier: Apache-2.0

// Package release decides whether a build may be promoted.
//
// The input is the blocker register, a CSV file with the exact header
//
//	blocker_id,severity,status,source_type,source_id,opened_at,updated_at,owner,summary
//
// Rows are split on the first eight commas, so only the trailing
// summary column may contain commas; quoting is not recognized.
//
// Two gates read the validated rows. Phase acceptance blocks on any
// unresolved (open or mitigated) P0 blocker; RC entry blocks on any
// unresolved P0 or P1 blocker. A build is promotable when both pass.
//
// The package also carries the alpha-preservation checks (deep-pack
// mirror presence and hashes, Silverston continuity, element
// inventory mapping, the extraction gate) and the governance
// primitives: the required audit append and the policy gate that
// audits denials.
package release

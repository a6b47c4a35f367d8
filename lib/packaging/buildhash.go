// Copyright 2026 The ScratchRobin Authors
// SPDX-License-Identifier: Apache-2.0

package packaging

import (
	"strings"

	"github.com/scratchrobin/scratchrobin/lib/binhash"
	"github.com/scratchrobin/scratchrobin/lib/jsondoc"
	"github.com/scratchrobin/scratchrobin/lib/reject"
)

const surface = "packaging"

// CanonicalBuildHash normalizes a full commit id (trimmed, lowercased;
// 40 hex characters for SHA-1 repositories, 64 for SHA-256) and
// returns the SHA-256 hex digest of the normalized id.
func CanonicalBuildHash(commit string) (string, error) {
	normalized := strings.ToLower(strings.TrimSpace(commit))
	if (len(normalized) != 40 && len(normalized) != 64) || !jsondoc.IsLowerHex(normalized) {
		return "", reject.New(reject.CodeConfigInvalid, "invalid commit id format", surface, "canonical_build_hash")
	}
	return binhash.SumString(normalized).String(), nil
}

// Copyright 2026 The ScratchRobin Authors
// SPDX-License-Identifier: Apache-2.0

// Package binhash computes the SHA-256 content digests recorded for
// specset files, compared for alpha mirror files, and derived for
// canonical build hashes.
//
//   - [HashFile] streams a file and returns its digest and size
//   - [Sum] hashes an in-memory buffer
//   - [FormatDigest] and [ParseDigest] convert to and from the
//     lowercase hex form used in manifests and payloads
package binhash

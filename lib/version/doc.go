// Copyright 2026 The ScratchRobin Authors
// SPDX-License-Identifier: Apache-2.0

// Package version reports build information for scratchrobin-tool.
//
// Four variables are injected with -ldflags -X at build time:
//
//	go build -ldflags "-X github.com/scratchrobin/scratchrobin/lib/version.GitCommit=$(git rev-parse --short HEAD)"
//
// Without injection they read "unknown" and "0.1.0-beta1-dev".
// [SelfDigest] hashes the running binary, which tells two installed
// copies of the tool apart when their version strings agree.
package version

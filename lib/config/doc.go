// Copyright 2026 The ScratchRobin Authors
// SPDX-License-Identifier: Apache-2.0

// Package config loads the YAML configuration of scratchrobin-tool.
//
// A configuration file is optional. When one is used it comes from
// the --config flag or the SCRATCHROBIN_CONFIG environment variable
// (via [Load]); there is no search of home or system directories.
// Without a file, [ForRepo] yields the defaults rooted at a repository
// found by [FindRepoRoot], which mirrors how the tool locates its
// resources when run from a checkout or an unpacked package.
//
// Path fields may reference ${SCRATCHROBIN_REPO} (the configured repo
// root), ${HOME}, any environment variable, and ${VAR:-default}.
// Expanded paths are cleaned, so "${SCRATCHROBIN_REPO}/../x" names a
// sibling of the repository.
//
// The file may carry development, ci, and release sections that
// override the base values when environment matches.
package config

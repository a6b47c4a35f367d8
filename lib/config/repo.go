// Copyright 2026 The ScratchRobin Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"os"
	"path/filepath"
)

// RepoMarkers are the files whose joint presence identifies a
// ScratchRobin repository or unpacked package.
var RepoMarkers = []string{
	"config/scratchrobin.toml.example",
	"config/connections.toml.example",
}

// FindRepoRoot tries the working directory, its parent, the
// executable's directory, and that directory's parent, in order, and
// returns the first that holds every marker. If none does, it returns
// workingDir. An empty executable skips the last two candidates.
func FindRepoRoot(workingDir, executable string) string {
	candidates := []string{workingDir, filepath.Dir(workingDir)}
	if executable != "" {
		if absolute, err := filepath.Abs(executable); err == nil {
			exeDir := filepath.Dir(absolute)
			candidates = append(candidates, exeDir, filepath.Dir(exeDir))
		}
	}
	for _, candidate := range candidates {
		if candidate != "" && hasMarkers(candidate) {
			return candidate
		}
	}
	return workingDir
}

func hasMarkers(dir string) bool {
	for _, marker := range RepoMarkers {
		if _, err := os.Stat(filepath.Join(dir, filepath.FromSlash(marker))); err != nil {
			return false
		}
	}
	return true
}

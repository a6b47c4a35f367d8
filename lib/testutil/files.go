// Copyright 2026 The ScratchRobin Authors
// SPDX-License-Identifier: Apache-2.0

package testutil

import (
	"os"
	"path/filepath"
)

// WriteFile writes content to root/relative, creating parent
// directories, and returns the full path. Fails the test on error.
func WriteFile(t interface {
	Helper()
	Fatalf(format string, args ...any)
}, root, relative, content string) string {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(relative))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("creating directory for %s: %v", relative, err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing %s: %v", relative, err)
	}
	return path
}

// WriteFiles writes every entry of files (relative path to content)
// under root.
func WriteFiles(t interface {
	Helper()
	Fatalf(format string, args ...any)
}, root string, files map[string]string) {
	t.Helper()
	for relative, content := range files {
		WriteFile(t, root, relative, content)
	}
}

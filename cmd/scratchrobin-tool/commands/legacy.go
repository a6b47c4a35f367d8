// Copyright 2026 The ScratchRobin Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"slices"
	"strings"
)

// TranslateLegacyArgs rewrites the single-flag invocations older
// release scripts use into the equivalent subcommand. The forms are
// matched anywhere in args, in this order:
//
//	--release-gate-check [--blocker-register=PATH]
//	--validate-package-manifest=PATH [--surface-registry=PATH] [--manifest-schema=PATH]
//	--check-package-artifacts=PATH [--package-root=PATH]
//
// Any other argument list is returned unchanged. Translated commands
// log only errors so that stderr carries nothing but the failure line.
func TranslateLegacyArgs(args []string) []string {
	quiet := "--log-level=error"

	if slices.Contains(args, "--release-gate-check") {
		translated := []string{"release", "gate-check", "--json", quiet}
		if value, ok := argValue(args, "--blocker-register="); ok {
			translated = append(translated, "--blocker-register="+value)
		}
		return translated
	}

	if manifest, ok := argValue(args, "--validate-package-manifest="); ok {
		translated := []string{"package", "validate-manifest", quiet}
		if value, ok := argValue(args, "--surface-registry="); ok {
			translated = append(translated, "--surface-registry="+value)
		}
		if value, ok := argValue(args, "--manifest-schema="); ok {
			translated = append(translated, "--manifest-schema="+value)
		}
		return append(translated, "--", manifest)
	}

	if manifest, ok := argValue(args, "--check-package-artifacts="); ok {
		translated := []string{"package", "check-artifacts", quiet}
		if value, ok := argValue(args, "--package-root="); ok {
			translated = append(translated, "--package-root="+value)
		}
		return append(translated, "--", manifest)
	}

	return args
}

func argValue(args []string, prefix string) (string, bool) {
	for _, arg := range args {
		if value, ok := strings.CutPrefix(arg, prefix); ok {
			return value, true
		}
	}
	return "", false
}

// Copyright 2026 The ScratchRobin Authors
// SPDX-License-Identifier: Apache-2.0

package packaging

import (
	"os"
	"path/filepath"

	"github.com/scratchrobin/scratchrobin/lib/jsondoc"
	"github.com/scratchrobin/scratchrobin/lib/reject"
)

// MandatoryDocuments are shipped by every package regardless of
// profile.
var MandatoryDocuments = []string{
	"LICENSE",
	"README.md",
	"docs/installation_guide/README.md",
	"docs/developers_guide/README.md",
}

// ValidatePackageArtifacts requires every mandatory document to be
// among the packaged paths.
func ValidatePackageArtifacts(packaged Set) error {
	for _, path := range MandatoryDocuments {
		if !packaged.Contains(path) {
			return reject.New(reject.CodeArtifactMissing, "missing mandatory license/documentation artifacts",
				surface, "validate_package_artifacts", reject.WithDetails(path))
		}
	}
	return nil
}

// CollectManifestArtifactPaths returns the five artifact paths named
// by the manifest followed by the mandatory documents.
func CollectManifestArtifactPaths(text []byte) ([]string, error) {
	scope := jsondoc.Scope{Code: reject.CodeConfigInvalid, Surface: surface, Operation: "collect_artifact_paths"}
	value, err := scope.ParseText(text)
	if err != nil {
		return nil, err
	}
	manifest, err := scope.RequireObject(value, "manifest must be object")
	if err != nil {
		return nil, err
	}
	paths, err := manifestArtifacts(manifest, scope)
	if err != nil {
		return nil, err
	}
	return append(paths, MandatoryDocuments...), nil
}

// ValidateManifestArtifactPathsExist checks that every collected
// artifact path exists under packageRoot, then that the mandatory
// documents are among them.
func ValidateManifestArtifactPathsExist(text []byte, packageRoot string) error {
	paths, err := CollectManifestArtifactPaths(text)
	if err != nil {
		return err
	}
	packaged := make(Set, len(paths))
	for _, path := range paths {
		if _, err := os.Stat(filepath.Join(packageRoot, filepath.FromSlash(path))); err != nil {
			return reject.New(reject.CodeArtifactMissing, "packaged artifact missing", surface,
				"validate_artifact_paths_exist", reject.WithDetails(path))
		}
		packaged[path] = struct{}{}
	}
	return ValidatePackageArtifacts(packaged)
}

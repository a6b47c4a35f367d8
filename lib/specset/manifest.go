// Copyright 2026 The ScratchRobin Authors
// SPDX-License-Identifier: Apache-2.0

package specset

import (
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/scratchrobin/scratchrobin/lib/jsondoc"
	"github.com/scratchrobin/scratchrobin/lib/reject"
)

const surface = "spec_workspace"

// SetIDs are the known specification sets, in discovery order.
var SetIDs = []string{"sb_v3", "sb_vnext", "sb_beta1"}

// ManifestDir is where specset manifests live, relative to the
// specification root.
const ManifestDir = "resources/specset_packages"

// Manifest describes one specset package.
type Manifest struct {
	SetID                         string `json:"set_id"`
	PackageRoot                   string `json:"package_root"`
	AuthoritativeInventoryRelpath string `json:"authoritative_inventory_relpath"`
	VersionStamp                  string `json:"version_stamp"`
	PackageHashSHA256             string `json:"package_hash_sha256"`
}

func scope(code, operation string) jsondoc.Scope {
	return jsondoc.Scope{Code: code, Surface: surface, Operation: operation}
}

// ManifestPath returns the manifest location for setID under root.
func ManifestPath(root, setID string) string {
	return filepath.Join(root, filepath.FromSlash(ManifestDir), setID+"_specset_manifest.example.json")
}

// DiscoverSpecsets returns the manifest paths of every known set,
// requiring each to exist.
func DiscoverSpecsets(root string) ([]string, error) {
	paths := make([]string, 0, len(SetIDs))
	for _, setID := range SetIDs {
		path := ManifestPath(root, setID)
		if _, err := os.Stat(path); err != nil {
			return nil, reject.New(reject.CodeSpecsetDiscovery, "missing manifest", surface, "discover_specsets",
				reject.WithDetails(path))
		}
		paths = append(paths, path)
	}
	return paths, nil
}

// LoadSpecsetManifest reads and validates the manifest at path.
func LoadSpecsetManifest(path string) (Manifest, error) {
	s := scope(reject.CodeSpecsetPackage, "load_specset_manifest")
	value, err := s.ParseFile(path)
	if err != nil {
		return Manifest{}, err
	}
	object, err := s.RequireObject(value, "manifest must be object")
	if err != nil {
		return Manifest{}, err
	}
	if err := s.EnsureOnlyFields(object, "set_id", "package_root", "authoritative_inventory_relpath",
		"version_stamp", "package_hash_sha256"); err != nil {
		return Manifest{}, err
	}

	var manifest Manifest
	for _, field := range []struct {
		key    string
		target *string
	}{
		{"set_id", &manifest.SetID},
		{"package_root", &manifest.PackageRoot},
		{"authoritative_inventory_relpath", &manifest.AuthoritativeInventoryRelpath},
		{"version_stamp", &manifest.VersionStamp},
		{"package_hash_sha256", &manifest.PackageHashSHA256},
	} {
		if *field.target, err = s.RequireString(object, field.key); err != nil {
			return Manifest{}, err
		}
	}

	if !slices.Contains(SetIDs, manifest.SetID) {
		return Manifest{}, reject.New(reject.CodeSpecsetDiscovery, "unsupported set id", surface,
			"load_specset_manifest", reject.WithDetails(manifest.SetID))
	}
	if jsondoc.HasUnsafePathSyntax(manifest.PackageRoot) ||
		jsondoc.HasUnsafePathSyntax(manifest.AuthoritativeInventoryRelpath) {
		return Manifest{}, s.Reject("path traversal in manifest")
	}
	if !jsondoc.IsSHA256Hex(strings.ToLower(manifest.PackageHashSHA256)) {
		return Manifest{}, s.Reject("invalid package_hash_sha256")
	}
	return manifest, nil
}

// Copyright 2026 The ScratchRobin Authors
// SPDX-License-Identifier: Apache-2.0

package specset

import (
	"cmp"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/scratchrobin/scratchrobin/lib/binhash"
	"github.com/scratchrobin/scratchrobin/lib/reject"
)

// FileRow is one normative file of a loaded specset package.
type FileRow struct {
	SetID        string `json:"set_id"`
	RelativePath string `json:"relative_path"`
	IsNormative  bool   `json:"is_normative"`
	ContentHash  string `json:"content_hash"`
	SizeBytes    int64  `json:"size_bytes"`
}

// Ref returns the "set:path" reference used by coverage links.
func (r FileRow) Ref() string {
	return r.SetID + ":" + r.RelativePath
}

func packageReject(message, details string) *reject.Error {
	return reject.New(reject.CodeSpecsetPackage, message, surface, "load_specset_package", reject.WithDetails(details))
}

// resolve returns the absolute, symlink-free form of an existing path.
func resolve(path string) (string, error) {
	resolved, err := filepath.EvalSymlinks(path)
	if err != nil {
		return "", err
	}
	return filepath.Abs(resolved)
}

// LoadSpecsetPackage loads the manifest at manifestPath and hashes
// every file its inventory lists. Rows are sorted by set and path.
func LoadSpecsetPackage(manifestPath string) ([]FileRow, error) {
	manifest, err := LoadSpecsetManifest(manifestPath)
	if err != nil {
		return nil, err
	}
	packageRoot := filepath.Join(filepath.Dir(manifestPath), filepath.FromSlash(manifest.PackageRoot))
	inventoryPath := filepath.Join(packageRoot, filepath.FromSlash(manifest.AuthoritativeInventoryRelpath))
	if _, err := os.Stat(inventoryPath); err != nil {
		return nil, packageReject("inventory missing", inventoryPath)
	}

	relatives, err := ParseAuthoritativeInventory(inventoryPath)
	if err != nil {
		return nil, err
	}
	rootResolved, err := resolve(packageRoot)
	if err != nil {
		return nil, packageReject("inventory missing", inventoryPath)
	}

	rows := make([]FileRow, 0, len(relatives))
	for _, relative := range relatives {
		path := filepath.Join(packageRoot, filepath.FromSlash(relative))
		resolved, err := resolve(path)
		if err != nil {
			return nil, packageReject("missing normative file", relative)
		}
		if resolved != rootResolved && !strings.HasPrefix(resolved, rootResolved+string(filepath.Separator)) {
			return nil, packageReject("normative path escaped package root", relative)
		}
		digest, size, err := binhash.HashFile(resolved)
		if err != nil {
			return nil, packageReject("missing normative file", relative)
		}
		rows = append(rows, FileRow{
			SetID:        manifest.SetID,
			RelativePath: relative,
			IsNormative:  true,
			ContentHash:  digest.String(),
			SizeBytes:    size,
		})
	}
	slices.SortFunc(rows, func(a, b FileRow) int {
		return cmp.Or(cmp.Compare(a.SetID, b.SetID), cmp.Compare(a.RelativePath, b.RelativePath))
	})
	return rows, nil
}

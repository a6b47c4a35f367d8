// Copyright 2026 The ScratchRobin Authors
// SPDX-License-Identifier: Apache-2.0

package release

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/scratchrobin/scratchrobin/lib/binhash"
	"github.com/scratchrobin/scratchrobin/lib/reject"
)

const alphaSurface = "alpha_preservation"

// AlphaMirrorEntry is one file of the alpha deep-pack mirror.
type AlphaMirrorEntry struct {
	RelativePath   string `json:"relative_path"`
	ExpectedSize   int64  `json:"expected_size"`
	ExpectedSHA256 string `json:"expected_sha256"`
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil || !errors.Is(err, fs.ErrNotExist)
}

// ValidateAlphaMirrorPresence requires every entry to name a file that
// exists under root.
func ValidateAlphaMirrorPresence(root string, entries []AlphaMirrorEntry) error {
	for _, entry := range entries {
		if entry.RelativePath == "" {
			return reject.New(reject.CodeAlphaMirrorMissing, "required alpha deep-pack mirror file missing",
				alphaSurface, "validate_mirror_presence")
		}
		if !exists(filepath.Join(root, entry.RelativePath)) {
			return reject.New(reject.CodeAlphaMirrorMissing, "required alpha deep-pack mirror file missing",
				alphaSurface, "validate_mirror_presence", reject.WithDetails(entry.RelativePath))
		}
	}
	return nil
}

// ValidateAlphaMirrorHashes compares each mirrored file's size and
// SHA-256 against the entry. The expected digest may be either case.
func ValidateAlphaMirrorHashes(root string, entries []AlphaMirrorEntry) error {
	for _, entry := range entries {
		mismatch := reject.New(reject.CodeAlphaMirrorMismatch, "alpha deep-pack mirror hash/size mismatch",
			alphaSurface, "validate_mirror_hashes", reject.WithDetails(entry.RelativePath))
		digest, size, err := binhash.HashFile(filepath.Join(root, entry.RelativePath))
		if err != nil {
			return mismatch
		}
		if size != entry.ExpectedSize || digest.String() != strings.ToLower(entry.ExpectedSHA256) {
			return mismatch
		}
	}
	return nil
}

// ValidateSilverstonContinuity requires every required artifact to be
// present.
func ValidateSilverstonContinuity(present, required map[string]struct{}) error {
	for _, name := range sortedKeys(required) {
		if _, ok := present[name]; !ok {
			return reject.New(reject.CodeSilverstonContinuity, "mandatory Silverston/ERD continuity artifact missing",
				alphaSurface, "validate_silverston_continuity", reject.WithDetails(name))
		}
	}
	return nil
}

// ValidateAlphaInventoryMapping checks that every mapping pair is
// non-empty and that each required element id is mapped from some file.
func ValidateAlphaInventoryMapping(required map[string]struct{}, fileToElement map[string]string) error {
	seen := make(map[string]struct{}, len(fileToElement))
	for _, file := range sortedKeys(fileToElement) {
		element := fileToElement[file]
		if file == "" || element == "" {
			return reject.New(reject.CodeAlphaInventory, "alpha deep-pack element inventory mapping incomplete/invalid",
				alphaSurface, "validate_inventory_mapping")
		}
		seen[element] = struct{}{}
	}
	for _, element := range sortedKeys(required) {
		if _, ok := seen[element]; !ok {
			return reject.New(reject.CodeAlphaInventory, "alpha deep-pack element inventory mapping incomplete/invalid",
				alphaSurface, "validate_inventory_mapping", reject.WithDetails(element))
		}
	}
	return nil
}

// ValidateAlphaExtractionGate passes only when all three stages passed.
func ValidateAlphaExtractionGate(extraction, continuity, deepContract bool) error {
	if !extraction || !continuity || !deepContract {
		return reject.New(reject.CodeAlphaExtractionGate, "alpha deep-pack extraction/continuity conformance gate failure",
			alphaSurface, "validate_extraction_gate")
	}
	return nil
}

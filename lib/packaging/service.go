// Copyright 2026 The ScratchRobin Authors
// SPDX-License-Identifier: Apache-2.0

package packaging

import (
	"log/slog"

	"github.com/scratchrobin/scratchrobin/lib/specset"
)

// Service is the packaging entry point used by the CLI. It holds no
// state beyond its logger; every call reads its inputs afresh.
type Service struct {
	logger *slog.Logger
}

// NewService returns a Service that logs to logger. A nil logger
// discards output.
func NewService(logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Service{logger: logger}
}

// CanonicalBuildHash wraps the package-level function.
func (s *Service) CanonicalBuildHash(commit string) (string, error) {
	return CanonicalBuildHash(commit)
}

// ValidateManifestFile validates the manifest at manifestPath.
func (s *Service) ValidateManifestFile(manifestPath, registryPath, schemaPath string) (ValidationResult, error) {
	result, err := ValidateManifestFile(manifestPath, registryPath, schemaPath)
	if err != nil {
		s.logger.Warn("manifest rejected", "manifest", manifestPath, "error", err)
		return ValidationResult{}, err
	}
	s.logger.Info("manifest validated", "manifest", manifestPath, "profile_id", result.ProfileID)
	return result, nil
}

// CheckPackageArtifacts reads the manifest at manifestPath and checks
// its artifacts against the tree at packageRoot.
func (s *Service) CheckPackageArtifacts(manifestPath, packageRoot string) error {
	text, err := LoadTextFile(manifestPath)
	if err != nil {
		return err
	}
	if err := ValidateManifestArtifactPathsExist(text, packageRoot); err != nil {
		s.logger.Warn("package artifacts incomplete", "manifest", manifestPath, "package_root", packageRoot,
			"error", err)
		return err
	}
	s.logger.Info("package artifacts present", "manifest", manifestPath, "package_root", packageRoot)
	return nil
}

// DiscoverSpecsets lists the specset manifests under specRoot.
func (s *Service) DiscoverSpecsets(specRoot string) ([]string, error) {
	return specset.DiscoverSpecsets(specRoot)
}

// LoadSpecsetManifest reads one specset manifest.
func (s *Service) LoadSpecsetManifest(path string) (specset.Manifest, error) {
	return specset.LoadSpecsetManifest(path)
}

// ParseAuthoritativeInventory reads one inventory file.
func (s *Service) ParseAuthoritativeInventory(path string) ([]string, error) {
	return specset.ParseAuthoritativeInventory(path)
}

// LoadSpecsetPackage loads and hashes a specset package.
func (s *Service) LoadSpecsetPackage(manifestPath string) ([]specset.FileRow, error) {
	rows, err := specset.LoadSpecsetPackage(manifestPath)
	if err != nil {
		return nil, err
	}
	s.logger.Debug("specset package loaded", "manifest", manifestPath, "files", len(rows))
	return rows, nil
}

// AssertCoverageComplete requires full coverage in class.
func (s *Service) AssertCoverageComplete(files []specset.FileRow, links []specset.CoverageLink, class string) error {
	return specset.AssertCoverageComplete(files, links, class)
}

// ValidateBindings checks conformance case bindings.
func (s *Service) ValidateBindings(caseIDs []string, registry Set) error {
	return specset.ValidateBindings(caseIDs, registry)
}

// AggregateCoverage counts coverage links by class and state.
func (s *Service) AggregateCoverage(links []specset.CoverageLink) map[string]int {
	return specset.AggregateCoverage(links)
}

// ExportWorkPackage renders coverage gaps as JSON.
func (s *Service) ExportWorkPackage(setID string, gaps []specset.Gap, generatedAt string) (string, error) {
	return specset.ExportWorkPackage(setID, gaps, generatedAt)
}

// ValidateSpecsetPayloadFile checks a spec workspace payload file.
func (s *Service) ValidateSpecsetPayloadFile(path string) error {
	if err := specset.ValidateSpecsetPayloadFile(path); err != nil {
		s.logger.Warn("specset payload rejected", "path", path, "error", err)
		return err
	}
	return nil
}

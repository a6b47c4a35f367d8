// Copyright 2026 The ScratchRobin Authors
// SPDX-License-Identifier: Apache-2.0

package packaging

import (
	"os"
	"slices"

	"github.com/scratchrobin/scratchrobin/lib/jsondoc"
	"github.com/scratchrobin/scratchrobin/lib/reject"
)

// ManifestVersion is the only manifest_version accepted.
const ManifestVersion = "1.0.0"

// ArtifactKeys are the members of a manifest's "artifacts" object, in
// the order they are reported.
var ArtifactKeys = []string{
	"license_path",
	"attribution_path",
	"help_root_path",
	"config_template_path",
	"connections_template_path",
}

var (
	manifestFields = []string{
		"manifest_version", "profile_id", "build_version", "build_hash", "build_timestamp_utc",
		"platform", "enabled_backends", "surfaces", "security_defaults", "artifacts",
	}
	securityFields = []string{
		"security_mode", "credential_store_policy", "audit_enabled_default", "tls_required_default",
	}

	profiles           = []string{"full", "no_scratchbird", "minimal_ui", "ci_strict", "preview", "ga"}
	platforms          = []string{"linux", "windows", "macos"}
	securityModes      = []string{"standard", "hardened"}
	credentialPolicies = []string{"required", "preferred", "fallback_file"}
)

var manifestScope = jsondoc.Scope{Code: reject.CodeConfigInvalid, Surface: surface, Operation: "validate_profile_manifest"}

// ValidationResult is the outcome of a successful manifest check.
type ValidationResult struct {
	OK        bool   `json:"ok"`
	ProfileID string `json:"profile_id"`
}

// ValidateProfileManifest checks a parsed package profile manifest
// against the surface registry and the schema's backend enum.
func ValidateProfileManifest(value any, registry, backends Set) (ValidationResult, error) {
	scope := manifestScope
	manifest, err := scope.RequireObject(value, "manifest must be object")
	if err != nil {
		return ValidationResult{}, err
	}
	if err := scope.EnsureOnlyFields(manifest, manifestFields...); err != nil {
		return ValidationResult{}, err
	}

	version, err := scope.RequireString(manifest, "manifest_version")
	if err != nil {
		return ValidationResult{}, err
	}
	if version != ManifestVersion {
		return ValidationResult{}, scope.Reject("unsupported manifest_version")
	}

	profileID, err := requireEnum(manifest, "profile_id", profiles, "invalid profile_id")
	if err != nil {
		return ValidationResult{}, err
	}
	if _, err := scope.RequireString(manifest, "build_version"); err != nil {
		return ValidationResult{}, err
	}
	buildHash, err := scope.RequireString(manifest, "build_hash")
	if err != nil {
		return ValidationResult{}, err
	}
	if !jsondoc.IsSHA256Hex(buildHash) {
		return ValidationResult{}, scope.Reject("invalid build_hash")
	}
	timestamp, err := scope.RequireString(manifest, "build_timestamp_utc")
	if err != nil {
		return ValidationResult{}, err
	}
	if !jsondoc.IsRFC3339UTC(timestamp) {
		return ValidationResult{}, scope.Reject("invalid build_timestamp_utc")
	}
	if _, err := requireEnum(manifest, "platform", platforms, "invalid platform"); err != nil {
		return ValidationResult{}, err
	}

	if err := validateBackends(manifest, backends); err != nil {
		return ValidationResult{}, err
	}
	if err := validateSecurityDefaults(manifest); err != nil {
		return ValidationResult{}, err
	}
	if _, err := manifestArtifacts(manifest, scope); err != nil {
		return ValidationResult{}, err
	}
	if err := ValidateSurfaceRegistry(manifest, registry); err != nil {
		return ValidationResult{}, err
	}
	return ValidationResult{OK: true, ProfileID: profileID}, nil
}

func requireEnum(object map[string]any, key string, allowed []string, message string) (string, error) {
	value, err := manifestScope.RequireString(object, key)
	if err != nil {
		return "", err
	}
	if !slices.Contains(allowed, value) {
		return "", manifestScope.Reject(message)
	}
	return value, nil
}

func validateBackends(manifest map[string]any, backends Set) error {
	ids, err := manifestScope.RequireStringArray(manifest, "enabled_backends")
	if err != nil {
		return err
	}
	if len(ids) == 0 {
		return manifestScope.Reject("enabled_backends must be non-empty")
	}
	for _, id := range ids {
		if !backends.Contains(id) {
			return manifestScope.Reject("unknown backend id", reject.WithDetails(id))
		}
	}
	return manifestScope.EnsureSortedUnique(ids, "enabled_backends")
}

func validateSecurityDefaults(manifest map[string]any) error {
	value, err := manifestScope.RequireMember(manifest, "security_defaults")
	if err != nil {
		return err
	}
	defaults, err := manifestScope.RequireObject(value, "invalid security_defaults")
	if err != nil {
		return err
	}
	if err := manifestScope.EnsureOnlyFields(defaults, securityFields...); err != nil {
		return err
	}
	if _, err := requireEnum(defaults, "security_mode", securityModes, "invalid security_mode"); err != nil {
		return err
	}
	if _, err := requireEnum(defaults, "credential_store_policy", credentialPolicies,
		"invalid credential_store_policy"); err != nil {
		return err
	}
	for _, key := range []string{"audit_enabled_default", "tls_required_default"} {
		value, err := manifestScope.RequireMember(defaults, key)
		if err != nil {
			return err
		}
		if _, ok := value.(bool); !ok {
			return manifestScope.Reject("invalid " + key)
		}
	}
	return nil
}

// manifestArtifacts returns the five artifact paths in ArtifactKeys
// order after checking that each is a safe relative path.
func manifestArtifacts(manifest map[string]any, scope jsondoc.Scope) ([]string, error) {
	value, err := scope.RequireMember(manifest, "artifacts")
	if err != nil {
		return nil, err
	}
	artifacts, err := scope.RequireObject(value, "invalid artifacts")
	if err != nil {
		return nil, err
	}
	if err := scope.EnsureOnlyFields(artifacts, ArtifactKeys...); err != nil {
		return nil, err
	}
	paths := make([]string, 0, len(ArtifactKeys))
	for _, key := range ArtifactKeys {
		path, err := scope.RequireString(artifacts, key)
		if err != nil {
			return nil, err
		}
		if jsondoc.HasUnsafePathSyntax(path) {
			return nil, scope.Reject("invalid artifact path", reject.WithDetails(path))
		}
		paths = append(paths, path)
	}
	return paths, nil
}

// ValidateManifestJSON parses manifest text and validates it.
func ValidateManifestJSON(text []byte, registry, backends Set) (ValidationResult, error) {
	value, err := manifestScope.ParseText(text)
	if err != nil {
		return ValidationResult{}, err
	}
	return ValidateProfileManifest(value, registry, backends)
}

// ValidateManifestFile loads the manifest, the surface registry, and
// the manifest schema from disk and validates the manifest.
func ValidateManifestFile(manifestPath, registryPath, schemaPath string) (ValidationResult, error) {
	registry, err := LoadSurfaceRegistry(registryPath)
	if err != nil {
		return ValidationResult{}, err
	}
	backends, err := LoadBackendEnumFromSchema(schemaPath)
	if err != nil {
		return ValidationResult{}, err
	}
	text, err := LoadTextFile(manifestPath)
	if err != nil {
		return ValidationResult{}, err
	}
	return ValidateManifestJSON(text, registry, backends)
}

// LoadTextFile reads a packaging input file.
func LoadTextFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, reject.New(reject.CodeConfigInvalid, "failed to read file", surface, "load_text_file",
			reject.WithDetails(path))
	}
	return data, nil
}

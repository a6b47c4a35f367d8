// Copyright 2026 The ScratchRobin Authors
// SPDX-License-Identifier: Apache-2.0

package packaging

import (
	"github.com/scratchrobin/scratchrobin/lib/jsondoc"
	"github.com/scratchrobin/scratchrobin/lib/reject"
)

// Set is an unordered collection of identifiers.
type Set map[string]struct{}

// NewSet builds a Set from values.
func NewSet(values ...string) Set {
	set := make(Set, len(values))
	for _, value := range values {
		set[value] = struct{}{}
	}
	return set
}

// Contains reports whether value is in the set.
func (s Set) Contains(value string) bool {
	_, ok := s[value]
	return ok
}

// LoadSurfaceRegistry reads the surface id registry, a JSON object
// whose "surface_ids" member lists every known UI surface.
func LoadSurfaceRegistry(path string) (Set, error) {
	scope := jsondoc.Scope{Code: reject.CodeConfigInvalid, Surface: surface, Operation: "load_surface_registry"}
	value, err := scope.ParseFile(path)
	if err != nil {
		return nil, err
	}
	object, err := scope.RequireObject(value, "surface registry must be object")
	if err != nil {
		return nil, err
	}
	ids, err := scope.RequireStringArray(object, "surface_ids")
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return nil, scope.Reject("surface registry empty", reject.WithDetails(path))
	}
	return NewSet(ids...), nil
}

// LoadBackendEnumFromSchema reads the backend ids a manifest may enable
// from properties.enabled_backends.items.enum of the manifest JSON
// schema. A failed step names the key it could not traverse.
func LoadBackendEnumFromSchema(path string) (Set, error) {
	scope := jsondoc.Scope{Code: reject.CodeConfigInvalid, Surface: surface, Operation: "load_backend_enum"}
	value, err := scope.ParseFile(path)
	if err != nil {
		return nil, err
	}
	for _, key := range []string{"properties", "enabled_backends", "items"} {
		object, ok := value.(map[string]any)
		if !ok {
			return nil, scope.Reject("invalid schema object", reject.WithDetails(key))
		}
		if value, ok = object[key]; !ok {
			return nil, scope.Reject("missing schema key", reject.WithDetails(key))
		}
	}
	items, ok := value.(map[string]any)
	if !ok {
		return nil, scope.Reject("invalid schema object", reject.WithDetails("enum"))
	}
	enum, ok := items["enum"].([]any)
	if !ok {
		return nil, scope.Reject("invalid backend enum", reject.WithDetails("enum"))
	}
	set := make(Set, len(enum))
	for _, item := range enum {
		id, ok := item.(string)
		if !ok || id == "" {
			return nil, scope.Reject("invalid backend enum", reject.WithDetails("enum"))
		}
		set[id] = struct{}{}
	}
	if len(set) == 0 {
		return nil, scope.Reject("invalid backend enum", reject.WithDetails("enum"))
	}
	return set, nil
}

// ValidateSurfaceRegistry checks the manifest's surfaces groups
// (enabled, disabled, preview_only): every id must be registered and
// appear in at most one group, and a "ga" profile may not have any
// preview-only surface.
func ValidateSurfaceRegistry(manifest map[string]any, registry Set) error {
	scope := jsondoc.Scope{Code: reject.CodeConfigInvalid, Surface: surface, Operation: "validate_surface_registry"}
	value, err := scope.RequireMember(manifest, "surfaces")
	if err != nil {
		return err
	}
	surfaces, err := scope.RequireObject(value, "invalid surfaces object")
	if err != nil {
		return err
	}

	seen := make(Set)
	var previewOnly []string
	for _, group := range []string{"enabled", "disabled", "preview_only"} {
		ids, err := scope.RequireStringArray(surfaces, group)
		if err != nil {
			return err
		}
		for _, id := range ids {
			if !registry.Contains(id) {
				return scope.Reject("unknown surface id " + id)
			}
			if seen.Contains(id) {
				return scope.Reject("surface id duplicated across groups: " + id)
			}
			seen[id] = struct{}{}
		}
		if group == "preview_only" {
			previewOnly = ids
		}
	}

	profileID, err := scope.RequireString(manifest, "profile_id")
	if err != nil {
		return err
	}
	if profileID == "ga" && len(previewOnly) > 0 {
		return reject.New(reject.CodeProfileForbidden, "ga profile cannot contain preview-only surfaces",
			surface, "validate_surface_registry")
	}
	return nil
}

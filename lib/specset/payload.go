// Copyright 2026 The ScratchRobin Authors
// SPDX-License-Identifier: Apache-2.0

package specset

import (
	"encoding/json"
	"regexp"
	"slices"

	"github.com/scratchrobin/scratchrobin/lib/jsondoc"
	"github.com/scratchrobin/scratchrobin/lib/reject"
)

var (
	specRefPattern = regexp.MustCompile(`^(sb_v3|sb_vnext|sb_beta1):.+$`)

	indexStatuses  = []string{"unindexed", "indexed", "stale", "error"}
	fileRoles      = []string{"readme", "spec_outline", "decision", "dependencies", "test_contract", "contract", "matrix", "registry", "vector", "other"}
	coverageClass  = []string{ClassDesign, ClassDevelopment, ClassManagement}
	coverageStates = []string{StateCovered, StatePartial, StateMissing}
	bindingKinds   = []string{"required", "supporting"}
)

type payloadValidator struct {
	jsondoc.Scope
}

func (v payloadValidator) array(parent map[string]any, key string) ([]any, error) {
	items, ok := parent[key].([]any)
	if !ok {
		return nil, v.Reject("missing array field: " + key)
	}
	return items, nil
}

func (v payloadValidator) rows(parent map[string]any, key string, allowed ...string) ([]map[string]any, error) {
	items, err := v.array(parent, key)
	if err != nil {
		return nil, err
	}
	rows := make([]map[string]any, 0, len(items))
	for _, item := range items {
		row, ok := item.(map[string]any)
		if !ok {
			return nil, v.Reject("invalid " + key + " row")
		}
		for _, field := range sortedFields(row) {
			if !slices.Contains(allowed, field) {
				return nil, v.Reject("unexpected field in " + key + "[]: " + field)
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// strings returns the named non-empty string fields of row in order.
func (v payloadValidator) strings(row map[string]any, keys ...string) ([]string, error) {
	values := make([]string, len(keys))
	for i, key := range keys {
		value, err := v.RequireString(row, key)
		if err != nil {
			return nil, err
		}
		values[i] = value
	}
	return values, nil
}

func nullOrString(row map[string]any, key string) bool {
	value, ok := row[key]
	if !ok {
		return false
	}
	if value == nil {
		return true
	}
	_, isString := value.(string)
	return isString
}

func sortedFields(row map[string]any) []string {
	fields := make([]string, 0, len(row))
	for field := range row {
		fields = append(fields, field)
	}
	slices.Sort(fields)
	return fields
}

func isSetID(value string) bool {
	return slices.Contains(SetIDs, value)
}

// ValidateSpecsetPayload checks the spec workspace payload stored in a
// project: its spec_sets, spec_files, coverage_links, and
// conformance_bindings tables.
func ValidateSpecsetPayload(value any) error {
	v := payloadValidator{scope(reject.CodeSpecsetPackage, "validate_specset_payload")}
	payload, err := v.RequireObject(value, "specset payload must be object")
	if err != nil {
		return err
	}
	for _, field := range sortedFields(payload) {
		if !slices.Contains([]string{"spec_sets", "spec_files", "coverage_links", "conformance_bindings"}, field) {
			return v.Reject("unexpected field in root: " + field)
		}
	}
	for _, check := range []func(map[string]any) error{
		v.specSets, v.specFiles, v.coverageLinks, v.conformanceBindings,
	} {
		if err := check(payload); err != nil {
			return err
		}
	}
	return nil
}

// ValidateSpecsetPayloadFile parses the JSON (or JSONC) file at path
// and validates it with ValidateSpecsetPayload.
func ValidateSpecsetPayloadFile(path string) error {
	value, err := scope(reject.CodeSpecsetPackage, "validate_specset_payload").ParseFile(path)
	if err != nil {
		return err
	}
	return ValidateSpecsetPayload(value)
}

func (v payloadValidator) specSets(payload map[string]any) error {
	rows, err := v.rows(payload, "spec_sets", "set_id", "package_manifest_ref", "package_root",
		"authoritative_inventory_relpath", "version_stamp", "package_hash_sha256", "last_indexed_at",
		"index_status", "index_error")
	if err != nil {
		return err
	}
	for _, row := range rows {
		values, err := v.strings(row, "set_id", "package_manifest_ref", "package_root",
			"authoritative_inventory_relpath", "version_stamp", "package_hash_sha256")
		if err != nil {
			return err
		}
		if !isSetID(values[0]) || !jsondoc.IsRelativePath(values[1]) || !jsondoc.IsRelativePath(values[2]) ||
			!jsondoc.IsRelativePath(values[3]) || !jsondoc.IsSHA256Hex(values[5]) {
			return v.Reject("invalid spec_set fields")
		}
		indexedAt, present := row["last_indexed_at"]
		if text, isString := indexedAt.(string); !present || (indexedAt != nil && !(isString && jsondoc.IsRFC3339UTC(text))) {
			return v.Reject("invalid last_indexed_at")
		}
		status, err := v.RequireString(row, "index_status")
		if err != nil {
			return err
		}
		if !slices.Contains(indexStatuses, status) {
			return v.Reject("invalid index_status")
		}
		if !nullOrString(row, "index_error") {
			return v.Reject("invalid index_error")
		}
	}
	return nil
}

func (v payloadValidator) specFiles(payload map[string]any) error {
	rows, err := v.rows(payload, "spec_files", "set_id", "section_id", "relative_path", "is_normative",
		"file_role", "content_hash", "last_seen_at", "size_bytes")
	if err != nil {
		return err
	}
	for _, row := range rows {
		values, err := v.strings(row, "set_id", "section_id", "relative_path", "file_role", "content_hash", "last_seen_at")
		if err != nil {
			return err
		}
		number, ok := row["size_bytes"].(json.Number)
		if !ok {
			return v.Reject("invalid size_bytes")
		}
		if size, err := number.Int64(); err != nil || size < 0 {
			return v.Reject("invalid size_bytes")
		}
		if _, ok := row["is_normative"].(bool); !ok {
			return v.Reject("invalid is_normative")
		}
		if !isSetID(values[0]) || !jsondoc.IsRelativePath(values[2]) || !slices.Contains(fileRoles, values[3]) ||
			!jsondoc.IsSHA256Hex(values[4]) || !jsondoc.IsRFC3339UTC(values[5]) {
			return v.Reject("invalid spec_files fields")
		}
	}
	return nil
}

func (v payloadValidator) coverageLinks(payload map[string]any) error {
	rows, err := v.rows(payload, "coverage_links", "spec_file_ref", "robin_surface_or_service_id",
		"coverage_class", "coverage_state", "conformance_case_id", "last_updated_at")
	if err != nil {
		return err
	}
	for _, row := range rows {
		values, err := v.strings(row, "spec_file_ref", "robin_surface_or_service_id", "coverage_class",
			"coverage_state", "last_updated_at")
		if err != nil {
			return err
		}
		if !specRefPattern.MatchString(values[0]) || !slices.Contains(coverageClass, values[2]) ||
			!slices.Contains(coverageStates, values[3]) || !jsondoc.IsRFC3339UTC(values[4]) {
			return v.Reject("invalid coverage_links fields")
		}
		if !nullOrString(row, "conformance_case_id") {
			return v.Reject("invalid conformance_case_id")
		}
	}
	return nil
}

func (v payloadValidator) conformanceBindings(payload map[string]any) error {
	rows, err := v.rows(payload, "conformance_bindings", "binding_id", "spec_file_ref", "case_id",
		"binding_kind", "notes")
	if err != nil {
		return err
	}
	for _, row := range rows {
		values, err := v.strings(row, "binding_id", "spec_file_ref", "case_id", "binding_kind")
		if err != nil {
			return err
		}
		if !specRefPattern.MatchString(values[1]) || !slices.Contains(bindingKinds, values[3]) {
			return v.Reject("invalid conformance_bindings fields")
		}
		if !nullOrString(row, "notes") {
			return v.Reject("invalid conformance binding notes")
		}
	}
	return nil
}

// Copyright 2026 The ScratchRobin Authors
// SPDX-License-Identifier: Apache-2.0

package project

import (
	"slices"

	"github.com/google/uuid"

	"github.com/scratchrobin/scratchrobin/lib/jsondoc"
)

const validateOperation = "validate_project_payload"

// ValidateDocument checks a PROJ document against the project payload
// contract. Failures are SRB1-R-3002.
func ValidateDocument(document Document) error {
	if !IsProjectUUID(document.ProjectID) {
		return payloadReject(validateOperation, "invalid project_id")
	}
	if document.Name == "" {
		return payloadReject(validateOperation, "invalid string field: name")
	}
	if !jsondoc.IsRFC3339UTC(document.CreatedAt) || !jsondoc.IsRFC3339UTC(document.UpdatedAt) {
		return payloadReject(validateOperation, "invalid project timestamps")
	}
	if document.UpdatedAt < document.CreatedAt {
		return payloadReject(validateOperation, "updated_at earlier than created_at")
	}
	if document.AuditLogPath != "" && !jsondoc.IsRelativePath(document.AuditLogPath) {
		return payloadReject(validateOperation, "invalid audit_log_path")
	}
	return validateConfig(document.Config)
}

func validateConfig(config Config) error {
	if config.DefaultEnvironmentID == "" {
		return payloadReject(validateOperation, "invalid string field: default_environment_id")
	}
	if config.ActiveConnectionID != nil && !IsProjectUUID(*config.ActiveConnectionID) {
		return payloadReject(validateOperation, "invalid active_connection_id")
	}
	if !jsondoc.IsRelativePath(config.ConnectionsFilePath) {
		return payloadReject(validateOperation, "invalid connections_file_path")
	}
	if config.SecurityMode != "standard" && config.SecurityMode != "hardened" {
		return payloadReject(validateOperation, "invalid security_mode")
	}
	for name := range config.Features {
		if name == "" {
			return payloadReject(validateOperation, "invalid feature flag")
		}
	}

	governance := config.Governance
	if len(governance.Owners) == 0 {
		return payloadReject(validateOperation, "governance.owners cannot be empty")
	}
	if !distinctNonEmpty(governance.Owners) {
		return payloadReject(validateOperation, "invalid governance owner entry")
	}
	if !distinctNonEmpty(governance.Stewards) {
		return payloadReject(validateOperation, "invalid governance steward entry")
	}
	if governance.ReviewMinApprovals < 1 {
		return payloadReject(validateOperation, "invalid integer field: review_min_approvals")
	}
	audit := governance.AuditPolicy
	if audit.Level != "minimal" && audit.Level != "standard" && audit.Level != "verbose" {
		return payloadReject(validateOperation, "invalid audit level")
	}
	if audit.RetentionDays < 1 {
		return payloadReject(validateOperation, "invalid integer field: retention_days")
	}
	return nil
}

// ValidateCatalog checks an OBJS catalog: unique object ids and
// paths, known kinds and design states, and a well-formed change
// history. Failures are SRB1-R-3002.
func ValidateCatalog(catalog ObjectCatalog) error {
	ids := make(map[string]struct{}, len(catalog.Objects))
	paths := make(map[string]struct{}, len(catalog.Objects))
	for _, object := range catalog.Objects {
		if _, seen := ids[object.ID]; seen || !IsProjectUUID(object.ID) {
			return payloadReject(validateOperation, "invalid/duplicate project object id")
		}
		_, pathSeen := paths[object.Path]
		if !slices.Contains(ObjectKinds, object.Kind) || object.Name == "" ||
			!jsondoc.IsRelativePath(object.Path) || pathSeen {
			return payloadReject(validateOperation, "invalid project object identity")
		}
		ids[object.ID] = struct{}{}
		paths[object.Path] = struct{}{}

		if !slices.Contains(DesignStates, object.DesignState) {
			return payloadReject(validateOperation, "invalid design_state")
		}
		if object.HasSource && (object.SourceSnapshot == nil || *object.SourceSnapshot == "") {
			return payloadReject(validateOperation, "has_source requires source_snapshot")
		}
		for _, entry := range object.ChangeHistory {
			if !jsondoc.IsRFC3339UTC(entry.Timestamp) || entry.Actor == "" || entry.Action == "" ||
				!slices.Contains(DesignStates, entry.StateBefore) || !slices.Contains(DesignStates, entry.StateAfter) {
				return payloadReject(validateOperation, "invalid change_history fields")
			}
		}
		if path := object.DesignFilePath; path != nil && *path != "" && !jsondoc.IsRelativePath(*path) {
			return payloadReject(validateOperation, "invalid design_file_path")
		}
	}
	return nil
}

// IsProjectUUID reports whether value is a canonical lowercase RFC
// 4122 UUID of version 1 through 8.
func IsProjectUUID(value string) bool {
	id, err := uuid.Parse(value)
	if err != nil || id.String() != value {
		return false
	}
	return id.Variant() == uuid.RFC4122 && id.Version() >= 1 && id.Version() <= 8
}

func distinctNonEmpty(values []string) bool {
	seen := make(map[string]struct{}, len(values))
	for _, value := range values {
		if _, dup := seen[value]; dup || value == "" {
			return false
		}
		seen[value] = struct{}{}
	}
	return true
}

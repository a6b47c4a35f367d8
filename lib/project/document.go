// Copyright 2026 The ScratchRobin Authors
// SPDX-License-Identifier: Apache-2.0

package project

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/scratchrobin/scratchrobin/lib/clock"
	"github.com/scratchrobin/scratchrobin/lib/codec"
	"github.com/scratchrobin/scratchrobin/lib/reject"
)

// Document is the PROJ payload: project identity and configuration.
type Document struct {
	ProjectID    string `cbor:"project_id"`
	Name         string `cbor:"name"`
	CreatedAt    string `cbor:"created_at"`
	UpdatedAt    string `cbor:"updated_at"`
	Config       Config `cbor:"config"`
	AuditLogPath string `cbor:"audit_log_path,omitempty"`
}

// Config is the project-level configuration block.
type Config struct {
	DefaultEnvironmentID string          `cbor:"default_environment_id"`
	ActiveConnectionID   *string         `cbor:"active_connection_id"`
	ConnectionsFilePath  string          `cbor:"connections_file_path"`
	SecurityMode         string          `cbor:"security_mode"`
	Governance           Governance      `cbor:"governance"`
	Features             map[string]bool `cbor:"features"`
}

// Governance names who owns the project and how changes are reviewed.
type Governance struct {
	Owners             []string    `cbor:"owners"`
	Stewards           []string    `cbor:"stewards"`
	ReviewMinApprovals int         `cbor:"review_min_approvals"`
	AuditPolicy        AuditPolicy `cbor:"audit_policy"`
}

// AuditPolicy controls the project audit trail.
type AuditPolicy struct {
	Level         string `cbor:"level"`
	RetentionDays int    `cbor:"retention_days"`
	ExportEnabled bool   `cbor:"export_enabled"`
}

// NewDocument returns a valid document with a fresh random project id,
// both timestamps set to now, and conservative defaults. A nil clock
// reads the wall clock.
func NewDocument(name, owner string, c clock.Clock) Document {
	if c == nil {
		c = clock.Real()
	}
	stamp := clock.FormatUTC(c.Now())
	return Document{
		ProjectID: uuid.NewString(),
		Name:      name,
		CreatedAt: stamp,
		UpdatedAt: stamp,
		Config: Config{
			DefaultEnvironmentID: "dev",
			ConnectionsFilePath:  "config/connections.toml",
			SecurityMode:         "standard",
			Governance: Governance{
				Owners:             []string{owner},
				Stewards:           []string{},
				ReviewMinApprovals: 1,
				AuditPolicy: AuditPolicy{
					Level:         "standard",
					RetentionDays: 90,
				},
			},
			Features: map[string]bool{},
		},
	}
}

// Touch bumps UpdatedAt to now.
func (d *Document) Touch(c clock.Clock) {
	if c == nil {
		c = clock.Real()
	}
	d.UpdatedAt = clock.FormatUTC(c.Now())
}

// EncodeDocument validates and encodes a document for the PROJ chunk.
func EncodeDocument(document Document) ([]byte, error) {
	if err := ValidateDocument(document); err != nil {
		return nil, err
	}
	data, err := codec.Marshal(document)
	if err != nil {
		return nil, payloadReject("encode_document", fmt.Sprintf("encoding document: %v", err))
	}
	return data, nil
}

// DecodeDocument decodes and validates a PROJ payload.
func DecodeDocument(data []byte) (Document, error) {
	if err := codec.Wellformed(data); err != nil {
		return Document{}, payloadReject("decode_document", fmt.Sprintf("document payload is not well-formed CBOR: %v", err))
	}
	var document Document
	if err := codec.Unmarshal(data, &document); err != nil {
		return Document{}, payloadReject("decode_document", fmt.Sprintf("decoding document: %v", err))
	}
	if err := ValidateDocument(document); err != nil {
		return Document{}, err
	}
	return document, nil
}

func payloadReject(operation, message string) *reject.Error {
	return reject.New(reject.CodeProjectPayload, message, "project", operation)
}

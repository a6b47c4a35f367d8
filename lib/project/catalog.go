// Copyright 2026 The ScratchRobin Authors
// SPDX-License-Identifier: Apache-2.0

package project

import (
	"fmt"
	"slices"

	"github.com/scratchrobin/scratchrobin/lib/codec"
)

// ObjectCatalog is the OBJS payload: the database objects a project
// tracks, each addressed by a stable id and a project-relative path.
type ObjectCatalog struct {
	Objects []Object `cbor:"objects"`
}

// Object is one tracked database object.
type Object struct {
	ID             string        `cbor:"id"`
	Kind           string        `cbor:"kind"`
	Name           string        `cbor:"name"`
	Path           string        `cbor:"path"`
	SchemaName     *string       `cbor:"schema_name"`
	DesignState    string        `cbor:"design_state"`
	HasSource      bool          `cbor:"has_source"`
	SourceSnapshot *string       `cbor:"source_snapshot"`
	ChangeHistory  []ChangeEntry `cbor:"change_history"`
	DesignFilePath *string       `cbor:"design_file_path"`
}

// ChangeEntry records one design-state transition.
type ChangeEntry struct {
	Timestamp   string  `cbor:"timestamp"`
	Actor       string  `cbor:"actor"`
	Action      string  `cbor:"action"`
	StateBefore string  `cbor:"state_before"`
	StateAfter  string  `cbor:"state_after"`
	Note        *string `cbor:"note"`
}

// ObjectKinds and DesignStates are the accepted enumerations.
var (
	ObjectKinds = []string{
		"schema", "table", "index", "domain", "sequence", "view", "trigger",
		"procedure", "function", "package", "job", "user", "role",
	}
	DesignStates = []string{
		"EXTRACTED", "NEW", "MODIFIED", "DELETED", "PENDING",
		"APPROVED", "REJECTED", "IMPLEMENTED", "CONFLICTED",
	}
)

// ByPath returns a path to id index of the catalog.
func (c ObjectCatalog) ByPath() map[string]string {
	index := make(map[string]string, len(c.Objects))
	for _, object := range c.Objects {
		index[object.Path] = object.ID
	}
	return index
}

// Sorted returns a copy of the catalog with objects ordered by path,
// the order EncodeCatalog writes.
func (c ObjectCatalog) Sorted() ObjectCatalog {
	objects := slices.Clone(c.Objects)
	slices.SortFunc(objects, func(a, b Object) int {
		switch {
		case a.Path < b.Path:
			return -1
		case a.Path > b.Path:
			return 1
		}
		return 0
	})
	return ObjectCatalog{Objects: objects}
}

// EncodeCatalog validates and encodes a catalog for the OBJS chunk.
// Objects are written in path order, so insertion order does not
// affect the container bytes.
func EncodeCatalog(catalog ObjectCatalog) ([]byte, error) {
	if err := ValidateCatalog(catalog); err != nil {
		return nil, err
	}
	sorted := catalog.Sorted()
	if sorted.Objects == nil {
		sorted.Objects = []Object{}
	}
	data, err := codec.Marshal(sorted)
	if err != nil {
		return nil, payloadReject("encode_catalog", fmt.Sprintf("encoding catalog: %v", err))
	}
	return data, nil
}

// DecodeCatalog decodes and validates an OBJS payload.
func DecodeCatalog(data []byte) (ObjectCatalog, error) {
	if err := codec.Wellformed(data); err != nil {
		return ObjectCatalog{}, payloadReject("decode_catalog", fmt.Sprintf("catalog payload is not well-formed CBOR: %v", err))
	}
	var catalog ObjectCatalog
	if err := codec.Unmarshal(data, &catalog); err != nil {
		return ObjectCatalog{}, payloadReject("decode_catalog", fmt.Sprintf("decoding catalog: %v", err))
	}
	if err := ValidateCatalog(catalog); err != nil {
		return ObjectCatalog{}, err
	}
	return catalog, nil
}

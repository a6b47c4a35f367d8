// Copyright 2026 The ScratchRobin Authors
// SPDX-License-Identifier: Apache-2.0

// Package jsondoc reads the JSON documents consumed by the packaging
// and specset gates (profile manifests, surface registries, manifest
// schemas, specset manifests) and provides the field accessors those
// gates share.
//
// Documents may carry // and /* */ comments and trailing commas; they
// are normalized with tidwall/jsonc before decoding. Values decode
// into the generic tree produced by encoding/json with UseNumber, so
// integers survive intact.
//
// Every accessor is a method on [Scope], which names the reject code,
// surface, and operation to report when a field is missing or has the
// wrong shape:
//
//	scope := jsondoc.Scope{Code: reject.CodeConfigInvalid, Surface: "packaging", Operation: "validate_profile_manifest"}
//	profile, err := scope.RequireString(manifest, "profile_id")
package jsondoc

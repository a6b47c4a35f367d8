// Copyright 2026 The ScratchRobin Authors
// SPDX-License-Identifier: Apache-2.0

// Package codec holds the CBOR configuration used for payloads stored
// inside project containers.
//
// The container format treats chunk payloads as opaque bytes and CRCs
// them, so two saves of the same document must produce identical
// payload bytes. The encoder therefore uses Core Deterministic
// Encoding (RFC 8949 §4.2): sorted map keys, smallest integer
// encoding, no indefinite-length items.
//
//	data, err := codec.Marshal(document)
//	err = codec.Unmarshal(data, &document)
//
// Types stored only in containers use `cbor` struct tags. Types that
// also appear in CLI --json output use `json` tags, which the CBOR
// library reads when no `cbor` tag is present.
package codec

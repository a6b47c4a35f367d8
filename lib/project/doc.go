// Copyright 2026 The ScratchRobin Authors
// SPDX-License-Identifier: Apache-2.0

// Package project stores ScratchRobin projects in SRPJ containers.
//
// [Service] is the file-level entry point: RoundTripFile builds a
// container, writes it, and reloads it to prove the write; LoadFile
// reads and verifies one. Both report failures as SRB1-R-3101.
//
// On top of the raw chunk API the package defines what goes in the
// chunks. The PROJ payload is a [Document] and the OBJS payload an
// [ObjectCatalog], both encoded with deterministic CBOR so that saving
// an unchanged project reproduces the same bytes. Optional asset
// chunks carry an [EncodeAsset] envelope that may compress the data
// with zstd or LZ4; the container itself still sees opaque bytes.
//
// Writes are not atomic. A failed RoundTripFile leaves the target in
// an undefined state, and concurrent writers to one path must be
// serialized by the caller.
package project

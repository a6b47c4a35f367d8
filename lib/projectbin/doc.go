// Copyright 2026 The ScratchRobin Authors
// SPDX-License-Identifier: Apache-2.0

// Package projectbin implements the SRPJ project container: a
// versioned, chunked, CRC-checked binary file holding a project's
// metadata (PROJ), its object catalog (OBJS), and any number of
// optional named payloads.
//
// Layout, little-endian throughout:
//
//	header (44 bytes)
//	  0   magic "SRPJ"
//	  4   major version (u16, 1)
//	  6   minor version (u16, 0)
//	  8   header size (u16, 44)
//	  10  TOC entry size (u16, 40)
//	  12  chunk count (u32)
//	  16  TOC offset (u64, 44)
//	  24  total file size (u64)
//	  32  flags (u32, 0)
//	  36  reserved (u32, 0)
//	  40  header CRC32, computed with bytes 40..43 zeroed
//	TOC (40 bytes per chunk)
//	  0   chunk id (4 ASCII bytes)
//	  4   flags (u32, 0)
//	  8   payload offset (u64)
//	  16  payload length (u64)
//	  24  payload CRC32 (u32)
//	  28  payload version (u16, 1)
//	  30  reserved (u16, 0)
//	  32  ordinal (u32)
//	  36  reserved (u32, 0)
//	payloads, concatenated in TOC order
//
// PROJ is always ordinal 0 and OBJS ordinal 1. Optional chunks follow
// in ascending id order, so [Build] is deterministic: identical input
// yields identical bytes.
//
// [Load] is the single authority on well-formedness. Damage to a
// mandatory chunk is fatal; an optional chunk whose range or CRC is
// bad is skipped so that files written by newer tools stay readable.
// A single flipped payload byte therefore fails [Load] only when it
// lands in PROJ or OBJS. Every failure is a reject with code SRB1-R-3101.
package projectbin

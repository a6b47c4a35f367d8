// Copyright 2026 The ScratchRobin Authors
// SPDX-License-Identifier: Apache-2.0

package projectbin

import (
	"encoding/binary"
	"encoding/hex"
	"hash/crc32"

	"github.com/zeebo/blake3"

	"github.com/scratchrobin/scratchrobin/lib/reject"
)

const (
	// Magic is the four-byte file signature.
	Magic = "SRPJ"

	MajorVersion   uint16 = 1
	MinorVersion   uint16 = 0
	PayloadVersion uint16 = 1

	HeaderSize   = 44
	TOCEntrySize = 40

	// ChunkProject and ChunkObjects are the mandatory chunks.
	ChunkProject = "PROJ"
	ChunkObjects = "OBJS"

	headerCRCOffset = 40
)

const surface = "project"

// Header is the decoded fixed-size file header.
type Header struct {
	Major        uint16
	Minor        uint16
	HeaderSize   uint16
	TOCEntrySize uint16
	ChunkCount   uint32
	TOCOffset    uint64
	FileSize     uint64
	Flags        uint32
	Reserved     uint32
	CRC          uint32
}

// TOCEntry is one decoded table-of-contents row.
type TOCEntry struct {
	ID             string
	Flags          uint32
	Offset         uint64
	Length         uint64
	CRC            uint32
	PayloadVersion uint16
	Reserved0      uint16
	Ordinal        uint32
	Reserved1      uint32
}

// Checksum returns the IEEE CRC32 (reflected polynomial 0xEDB88320)
// used for the header and every payload.
func Checksum(data []byte) uint32 {
	return crc32.ChecksumIEEE(data)
}

// Fingerprint returns the hex BLAKE3 digest of a container. Builds
// of identical input share a fingerprint, which is what change
// detection keys on.
func Fingerprint(data []byte) string {
	digest := blake3.Sum256(data)
	return hex.EncodeToString(digest[:])
}

func isMandatory(id string) bool {
	return id == ChunkProject || id == ChunkObjects
}

func headerChecksum(raw []byte) uint32 {
	var scratch [HeaderSize]byte
	copy(scratch[:], raw[:HeaderSize])
	binary.LittleEndian.PutUint32(scratch[headerCRCOffset:], 0)
	return Checksum(scratch[:])
}

func encodeHeader(dst []byte, header Header) {
	copy(dst[0:4], Magic)
	binary.LittleEndian.PutUint16(dst[4:], header.Major)
	binary.LittleEndian.PutUint16(dst[6:], header.Minor)
	binary.LittleEndian.PutUint16(dst[8:], header.HeaderSize)
	binary.LittleEndian.PutUint16(dst[10:], header.TOCEntrySize)
	binary.LittleEndian.PutUint32(dst[12:], header.ChunkCount)
	binary.LittleEndian.PutUint64(dst[16:], header.TOCOffset)
	binary.LittleEndian.PutUint64(dst[24:], header.FileSize)
	binary.LittleEndian.PutUint32(dst[32:], header.Flags)
	binary.LittleEndian.PutUint32(dst[36:], header.Reserved)
	binary.LittleEndian.PutUint32(dst[40:], header.CRC)
}

func decodeHeader(src []byte) Header {
	return Header{
		Major:        binary.LittleEndian.Uint16(src[4:]),
		Minor:        binary.LittleEndian.Uint16(src[6:]),
		HeaderSize:   binary.LittleEndian.Uint16(src[8:]),
		TOCEntrySize: binary.LittleEndian.Uint16(src[10:]),
		ChunkCount:   binary.LittleEndian.Uint32(src[12:]),
		TOCOffset:    binary.LittleEndian.Uint64(src[16:]),
		FileSize:     binary.LittleEndian.Uint64(src[24:]),
		Flags:        binary.LittleEndian.Uint32(src[32:]),
		Reserved:     binary.LittleEndian.Uint32(src[36:]),
		CRC:          binary.LittleEndian.Uint32(src[40:]),
	}
}

func encodeTOCEntry(dst []byte, entry TOCEntry) {
	copy(dst[0:4], entry.ID)
	binary.LittleEndian.PutUint32(dst[4:], entry.Flags)
	binary.LittleEndian.PutUint64(dst[8:], entry.Offset)
	binary.LittleEndian.PutUint64(dst[16:], entry.Length)
	binary.LittleEndian.PutUint32(dst[24:], entry.CRC)
	binary.LittleEndian.PutUint16(dst[28:], entry.PayloadVersion)
	binary.LittleEndian.PutUint16(dst[30:], entry.Reserved0)
	binary.LittleEndian.PutUint32(dst[32:], entry.Ordinal)
	binary.LittleEndian.PutUint32(dst[36:], entry.Reserved1)
}

func decodeTOCEntry(src []byte) TOCEntry {
	return TOCEntry{
		ID:             string(src[0:4]),
		Flags:          binary.LittleEndian.Uint32(src[4:]),
		Offset:         binary.LittleEndian.Uint64(src[8:]),
		Length:         binary.LittleEndian.Uint64(src[16:]),
		CRC:            binary.LittleEndian.Uint32(src[24:]),
		PayloadVersion: binary.LittleEndian.Uint16(src[28:]),
		Reserved0:      binary.LittleEndian.Uint16(src[30:]),
		Ordinal:        binary.LittleEndian.Uint32(src[32:]),
		Reserved1:      binary.LittleEndian.Uint32(src[36:]),
	}
}

func binaryReject(message, operation, details string) *reject.Error {
	if details == "" {
		return reject.New(reject.CodeProjectBinary, message, surface, operation)
	}
	return reject.New(reject.CodeProjectBinary, message, surface, operation, reject.WithDetails(details))
}

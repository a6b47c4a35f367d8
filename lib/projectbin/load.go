// Copyright 2026 The ScratchRobin Authors
// SPDX-License-Identifier: Apache-2.0

package projectbin

import (
	"slices"
)

// Loaded is a parsed and verified container. TOC holds only the
// entries whose payloads passed range and CRC checks.
type Loaded struct {
	Header Header
	TOC    []TOCEntry

	data []byte
}

// LoadedChunks returns the ids of every verified chunk in ascending
// order.
func (l *Loaded) LoadedChunks() []string {
	ids := make([]string, 0, len(l.TOC))
	for _, entry := range l.TOC {
		ids = append(ids, entry.ID)
	}
	slices.Sort(ids)
	return slices.Compact(ids)
}

// Chunk returns the payload of the first verified chunk with the
// given id. The returned slice aliases the loaded buffer.
func (l *Loaded) Chunk(id string) ([]byte, bool) {
	for _, entry := range l.TOC {
		if entry.ID == id {
			return l.data[entry.Offset : entry.Offset+entry.Length], true
		}
	}
	return nil, false
}

// Fingerprint returns the BLAKE3 fingerprint of the whole container.
func (l *Loaded) Fingerprint() string {
	return Fingerprint(l.data)
}

// Size is the total container size in bytes.
func (l *Loaded) Size() int {
	return len(l.data)
}

// Load parses and validates a container. The returned Loaded keeps a
// reference to data.
func Load(data []byte) (*Loaded, error) {
	if len(data) < HeaderSize {
		return nil, binaryReject("file too small", "load_project_binary", "")
	}

	header := decodeHeader(data)
	if err := validateHeader(header, data); err != nil {
		return nil, err
	}

	size := uint64(len(data))
	tocBytes := uint64(header.ChunkCount) * TOCEntrySize
	if header.TOCOffset > size || tocBytes > size-header.TOCOffset {
		return nil, binaryReject("toc range out of file", "load_project_binary", "")
	}

	loaded := &Loaded{Header: header, data: data}
	for i := range uint64(header.ChunkCount) {
		position := header.TOCOffset + i*TOCEntrySize
		entry := decodeTOCEntry(data[position : position+TOCEntrySize])

		if entry.Flags != 0 || entry.Reserved0 != 0 || entry.Reserved1 != 0 || entry.PayloadVersion != PayloadVersion {
			return nil, binaryReject("invalid toc row fields", "load_project_binary", entry.ID)
		}

		if entry.Offset > size || entry.Length > size-entry.Offset {
			if isMandatory(entry.ID) {
				return nil, binaryReject("mandatory chunk out of range", "load_project_binary", entry.ID)
			}
			continue
		}

		if Checksum(data[entry.Offset:entry.Offset+entry.Length]) != entry.CRC {
			if isMandatory(entry.ID) {
				return nil, binaryReject("mandatory chunk crc mismatch", "load_project_binary", entry.ID)
			}
			continue
		}

		loaded.TOC = append(loaded.TOC, entry)
	}

	for _, required := range []string{ChunkObjects, ChunkProject} {
		if _, ok := loaded.Chunk(required); !ok {
			return nil, binaryReject("missing mandatory chunk", "load_project_binary", required)
		}
	}

	return loaded, nil
}

func validateHeader(header Header, data []byte) error {
	if string(data[0:4]) != Magic {
		return binaryReject("bad magic", "validate_header", "")
	}
	if header.Major != MajorVersion || header.HeaderSize != HeaderSize || header.TOCEntrySize != TOCEntrySize {
		return binaryReject("bad fixed header fields", "validate_header", "")
	}
	if header.FileSize == 0 || header.FileSize != uint64(len(data)) {
		return binaryReject("declared file size mismatch", "validate_header", "")
	}
	if header.Flags != 0 || header.Reserved != 0 {
		return binaryReject("non-zero reserved/flags", "validate_header", "")
	}
	if headerChecksum(data) != header.CRC {
		return binaryReject("header crc mismatch", "validate_header", "")
	}
	return nil
}

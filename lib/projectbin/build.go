// Copyright 2026 The ScratchRobin Authors
// SPDX-License-Identifier: Apache-2.0

package projectbin

import (
	"slices"
)

type chunk struct {
	id      string
	payload []byte
}

// Build serializes the mandatory PROJ and OBJS payloads and the
// optional chunks into a container. Optional chunk ids must be
// exactly four bytes and their payloads non-empty.
func Build(project, objects []byte, optional map[string][]byte) ([]byte, error) {
	if len(project) == 0 || len(objects) == 0 {
		return nil, binaryReject("mandatory payload empty", "build_binary", "")
	}

	optionalIDs := make([]string, 0, len(optional))
	for id, payload := range optional {
		if len(id) != 4 || len(payload) == 0 || isMandatory(id) {
			return nil, binaryReject("invalid optional chunk contract", "build_binary", id)
		}
		optionalIDs = append(optionalIDs, id)
	}
	slices.Sort(optionalIDs)

	chunks := make([]chunk, 0, 2+len(optionalIDs))
	chunks = append(chunks, chunk{ChunkProject, project}, chunk{ChunkObjects, objects})
	for _, id := range optionalIDs {
		chunks = append(chunks, chunk{id, optional[id]})
	}

	tocOffset := uint64(HeaderSize)
	offset := tocOffset + uint64(len(chunks))*TOCEntrySize
	entries := make([]TOCEntry, len(chunks))
	for i, c := range chunks {
		entries[i] = TOCEntry{
			ID:             c.id,
			Offset:         offset,
			Length:         uint64(len(c.payload)),
			CRC:            Checksum(c.payload),
			PayloadVersion: PayloadVersion,
			Ordinal:        uint32(i),
		}
		offset += uint64(len(c.payload))
	}

	out := make([]byte, offset)
	for i, entry := range entries {
		position := tocOffset + uint64(i)*TOCEntrySize
		encodeTOCEntry(out[position:position+TOCEntrySize], entry)
		copy(out[entry.Offset:], chunks[i].payload)
	}

	header := Header{
		Major:        MajorVersion,
		Minor:        MinorVersion,
		HeaderSize:   HeaderSize,
		TOCEntrySize: TOCEntrySize,
		ChunkCount:   uint32(len(chunks)),
		TOCOffset:    tocOffset,
		FileSize:     offset,
	}
	encodeHeader(out[:HeaderSize], header)
	header.CRC = headerChecksum(out)
	encodeHeader(out[:HeaderSize], header)

	return out, nil
}

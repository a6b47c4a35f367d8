// Copyright 2026 The ScratchRobin Authors
// SPDX-License-Identifier: Apache-2.0

package projectbin

import (
	"bytes"
	"encoding/binary"
	"slices"
	"testing"

	"github.com/scratchrobin/scratchrobin/lib/reject"
)

func buildSample(t *testing.T) []byte {
	t.Helper()
	data, err := Build([]byte{1, 2, 3, 4}, []byte{10, 11}, map[string][]byte{
		"RPTG": {77, 88, 99},
		"ASST": {5},
	})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	return data
}

func requireBinaryReject(t *testing.T, err error, wantDetails string) {
	t.Helper()
	rejectErr, ok := reject.As(err)
	if !ok {
		t.Fatalf("error = %v, want reject", err)
	}
	payload := rejectErr.Payload()
	if payload.Code != reject.CodeProjectBinary {
		t.Fatalf("code = %q, want %q (%v)", payload.Code, reject.CodeProjectBinary, err)
	}
	if payload.Surface != "project" {
		t.Errorf("surface = %q, want project", payload.Surface)
	}
	if wantDetails != "" && payload.Details != wantDetails {
		t.Errorf("details = %q, want %q", payload.Details, wantDetails)
	}
}

func TestBuildLayout(t *testing.T) {
	data := buildSample(t)

	wantSize := HeaderSize + 4*TOCEntrySize + 4 + 2 + 1 + 3
	if len(data) != wantSize {
		t.Fatalf("len = %d, want %d", len(data), wantSize)
	}
	if string(data[0:4]) != "SRPJ" {
		t.Errorf("magic = %q", data[0:4])
	}
	if got := binary.LittleEndian.Uint32(data[0:4]); got != 0x4A505253 {
		t.Errorf("magic as u32 = %#x, want 0x4A505253", got)
	}
	if got := binary.LittleEndian.Uint32(data[12:]); got != 4 {
		t.Errorf("chunk count = %d, want 4", got)
	}
	if got := binary.LittleEndian.Uint64(data[16:]); got != HeaderSize {
		t.Errorf("toc offset = %d, want %d", got, HeaderSize)
	}
	if got := binary.LittleEndian.Uint64(data[24:]); got != uint64(wantSize) {
		t.Errorf("declared size = %d, want %d", got, wantSize)
	}

	// Ordinals: PROJ, OBJS, then optional ids in ascending order.
	wantOrder := []string{"PROJ", "OBJS", "ASST", "RPTG"}
	for i, id := range wantOrder {
		row := data[HeaderSize+i*TOCEntrySize:]
		if string(row[0:4]) != id {
			t.Errorf("toc[%d] id = %q, want %q", i, row[0:4], id)
		}
		if got := binary.LittleEndian.Uint32(row[32:]); got != uint32(i) {
			t.Errorf("toc[%d] ordinal = %d, want %d", i, got, i)
		}
		if got := binary.LittleEndian.Uint16(row[28:]); got != 1 {
			t.Errorf("toc[%d] payload version = %d, want 1", i, got)
		}
	}

	payloadStart := HeaderSize + 4*TOCEntrySize
	if !bytes.Equal(data[payloadStart:payloadStart+4], []byte{1, 2, 3, 4}) {
		t.Errorf("PROJ payload not first after TOC")
	}
}

func TestBuildHeaderChecksum(t *testing.T) {
	data := buildSample(t)

	stored := binary.LittleEndian.Uint32(data[40:])
	scratch := slices.Clone(data[:HeaderSize])
	copy(scratch[40:], []byte{0, 0, 0, 0})
	if want := Checksum(scratch); stored != want {
		t.Errorf("header crc = %#x, want %#x", stored, want)
	}
}

func TestChecksumKnownValue(t *testing.T) {
	// Standard CRC-32/IEEE check value.
	if got := Checksum([]byte("123456789")); got != 0xCBF43926 {
		t.Fatalf("Checksum = %#x, want 0xcbf43926", got)
	}
}

func TestBuildDeterministic(t *testing.T) {
	first := buildSample(t)
	second := buildSample(t)
	if !bytes.Equal(first, second) {
		t.Fatal("identical input produced different bytes")
	}
	if Fingerprint(first) != Fingerprint(second) {
		t.Fatal("fingerprints differ for identical builds")
	}
	other, err := Build([]byte{1, 2, 3, 5}, []byte{10, 11}, nil)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if Fingerprint(first) == Fingerprint(other) {
		t.Fatal("different builds share a fingerprint")
	}
	if len(Fingerprint(first)) != 64 {
		t.Errorf("fingerprint length = %d, want 64", len(Fingerprint(first)))
	}
}

func TestBuildPreconditions(t *testing.T) {
	tests := []struct {
		name     string
		project  []byte
		objects  []byte
		optional map[string][]byte
		details  string
	}{
		{"empty project", nil, []byte{1}, nil, ""},
		{"empty objects", []byte{1}, []byte{}, nil, ""},
		{"short optional id", []byte{1}, []byte{1}, map[string][]byte{"RPT": {1}}, "RPT"},
		{"long optional id", []byte{1}, []byte{1}, map[string][]byte{"RPTGX": {1}}, "RPTGX"},
		{"empty optional payload", []byte{1}, []byte{1}, map[string][]byte{"RPTG": {}}, "RPTG"},
		{"optional shadows mandatory", []byte{1}, []byte{1}, map[string][]byte{"PROJ": {1}}, "PROJ"},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := Build(test.project, test.objects, test.optional)
			requireBinaryReject(t, err, test.details)
		})
	}
}

func TestLoadRoundTrip(t *testing.T) {
	data := buildSample(t)

	loaded, err := Load(data)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	want := []string{"ASST", "OBJS", "PROJ", "RPTG"}
	if got := loaded.LoadedChunks(); !slices.Equal(got, want) {
		t.Errorf("LoadedChunks = %v, want %v", got, want)
	}
	if len(loaded.TOC) != 4 {
		t.Errorf("TOC entries = %d, want 4", len(loaded.TOC))
	}
	payload, ok := loaded.Chunk("RPTG")
	if !ok || !bytes.Equal(payload, []byte{77, 88, 99}) {
		t.Errorf("Chunk(RPTG) = %v, %v", payload, ok)
	}
	if _, ok := loaded.Chunk("NONE"); ok {
		t.Error("Chunk(NONE) found")
	}
	if loaded.Header.ChunkCount != 4 || loaded.Size() != len(data) {
		t.Errorf("header = %+v, size = %d", loaded.Header, loaded.Size())
	}
}

// reseal recomputes the header CRC so that a test can reach checks
// beyond header validation.
func reseal(data []byte) {
	binary.LittleEndian.PutUint32(data[40:], headerChecksum(data))
}

func TestLoadRejectsHeaderDamage(t *testing.T) {
	tests := []struct {
		name   string
		mutate func([]byte) []byte
	}{
		{"too small", func(d []byte) []byte { return d[:43] }},
		{"bad magic", func(d []byte) []byte { d[0] = 'X'; reseal(d); return d }},
		{"bad major", func(d []byte) []byte { binary.LittleEndian.PutUint16(d[4:], 2); reseal(d); return d }},
		{"bad header size", func(d []byte) []byte { binary.LittleEndian.PutUint16(d[8:], 48); reseal(d); return d }},
		{"bad toc entry size", func(d []byte) []byte { binary.LittleEndian.PutUint16(d[10:], 32); reseal(d); return d }},
		{"declared size byte flipped", func(d []byte) []byte { d[24] ^= 0xFF; return d }},
		{"declared size zero", func(d []byte) []byte { binary.LittleEndian.PutUint64(d[24:], 0); reseal(d); return d }},
		{"trailing bytes", func(d []byte) []byte { return append(d, 0) }},
		{"flags set", func(d []byte) []byte { binary.LittleEndian.PutUint32(d[32:], 1); reseal(d); return d }},
		{"reserved set", func(d []byte) []byte { binary.LittleEndian.PutUint32(d[36:], 1); reseal(d); return d }},
		{"header crc", func(d []byte) []byte { d[6] ^= 0x01; return d }},
		{"toc out of file", func(d []byte) []byte { binary.LittleEndian.PutUint32(d[12:], 1000); reseal(d); return d }},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			data := test.mutate(buildSample(t))
			_, err := Load(data)
			requireBinaryReject(t, err, "")
		})
	}
}

func TestLoadRejectsTOCRowFields(t *testing.T) {
	data := buildSample(t)
	// OBJS row, payload version.
	binary.LittleEndian.PutUint16(data[HeaderSize+TOCEntrySize+28:], 2)
	_, err := Load(data)
	requireBinaryReject(t, err, "OBJS")
}

func TestLoadMandatoryPayloadCorruption(t *testing.T) {
	data := buildSample(t)
	payloadStart := HeaderSize + 4*TOCEntrySize
	data[payloadStart] ^= 0xFF
	_, err := Load(data)
	requireBinaryReject(t, err, "PROJ")
}

func TestLoadMandatoryOutOfRange(t *testing.T) {
	data := buildSample(t)
	binary.LittleEndian.PutUint64(data[HeaderSize+TOCEntrySize+16:], 1<<40)
	_, err := Load(data)
	requireBinaryReject(t, err, "OBJS")
}

func TestLoadSkipsDamagedOptionalChunk(t *testing.T) {
	data := buildSample(t)
	// RPTG is the last payload.
	data[len(data)-1] ^= 0xFF

	loaded, err := Load(data)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	want := []string{"ASST", "OBJS", "PROJ"}
	if got := loaded.LoadedChunks(); !slices.Equal(got, want) {
		t.Errorf("LoadedChunks = %v, want %v", got, want)
	}

	// Out-of-range optional chunk is skipped as well.
	binary.LittleEndian.PutUint64(data[HeaderSize+2*TOCEntrySize+8:], uint64(len(data)+1))
	loaded, err = Load(data)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got := loaded.LoadedChunks(); !slices.Equal(got, []string{"OBJS", "PROJ"}) {
		t.Errorf("LoadedChunks = %v, want [OBJS PROJ]", got)
	}
}

func TestLoadMissingMandatoryChunk(t *testing.T) {
	data := buildSample(t)
	// Rename the OBJS row to an optional id; the CRC still matches so
	// the chunk loads, but OBJS is gone.
	copy(data[HeaderSize+TOCEntrySize:], "OBJX")
	_, err := Load(data)
	requireBinaryReject(t, err, "OBJS")
}

func TestLoadDetectsAnyPayloadByteFlip(t *testing.T) {
	original := buildSample(t)
	payloadStart := HeaderSize + 4*TOCEntrySize
	// Mandatory payload region: PROJ (4 bytes) then OBJS (2 bytes).
	for offset := payloadStart; offset < payloadStart+6; offset++ {
		data := slices.Clone(original)
		data[offset] ^= 0x01
		if _, err := Load(data); err == nil {
			t.Errorf("flipping byte %d was not detected", offset)
		}
	}
}

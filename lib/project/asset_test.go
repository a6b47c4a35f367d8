// Copyright 2026 The ScratchRobin Authors
// SPDX-License-Identifier: Apache-2.0

package project

import (
	"bytes"
	"encoding/binary"
	"runtime"
	"testing"

	"github.com/scratchrobin/scratchrobin/lib/reject"
	"github.com/scratchrobin/scratchrobin/lib/testutil"
)

func TestAssetRoundTrip(t *testing.T) {
	compressible := bytes.Repeat([]byte("dashboard widget layout;"), 200)
	tiny := []byte{42}

	tests := []struct {
		name        string
		data        []byte
		compression Compression
		wantStored  Compression
	}{
		{"none", compressible, CompressionNone, CompressionNone},
		{"lz4", compressible, CompressionLZ4, CompressionLZ4},
		{"zstd", compressible, CompressionZstd, CompressionZstd},
		{"lz4 incompressible", tiny, CompressionLZ4, CompressionNone},
		{"zstd incompressible", tiny, CompressionZstd, CompressionNone},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			envelope, err := EncodeAsset(test.data, test.compression)
			if err != nil {
				t.Fatalf("EncodeAsset: %v", err)
			}
			if test.wantStored != CompressionNone && len(envelope) >= len(test.data) {
				t.Errorf("envelope %d bytes, not smaller than %d", len(envelope), len(test.data))
			}
			data, stored, err := DecodeAsset(envelope)
			if err != nil {
				t.Fatalf("DecodeAsset: %v", err)
			}
			if stored != test.wantStored {
				t.Errorf("stored compression = %s, want %s", stored, test.wantStored)
			}
			if !bytes.Equal(data, test.data) {
				t.Error("asset did not round-trip")
			}
		})
	}
}

func TestEncodeAssetRejectsEmpty(t *testing.T) {
	_, err := EncodeAsset(nil, CompressionZstd)
	testutil.RequireReject(t, err, reject.CodeProjectBinary)
}

func TestDecodeAssetRejectsDamage(t *testing.T) {
	envelope, err := EncodeAsset(bytes.Repeat([]byte("abc"), 100), CompressionZstd)
	if err != nil {
		t.Fatal(err)
	}

	short := envelope[:3]
	_, _, err = DecodeAsset(short)
	testutil.RequireReject(t, err, reject.CodeProjectBinary)

	badSize := bytes.Clone(envelope)
	badSize[2]++
	_, _, err = DecodeAsset(badSize)
	testutil.RequireReject(t, err, reject.CodeProjectBinary)

	unknown := bytes.Clone(envelope)
	unknown[0] = 9
	_, _, err = DecodeAsset(unknown)
	testutil.RequireReject(t, err, reject.CodeProjectBinary)
}

// allocatedDuring returns the bytes the runtime allocated while run
// executed.
func allocatedDuring(run func()) uint64 {
	var before, after runtime.MemStats
	runtime.ReadMemStats(&before)
	run()
	runtime.ReadMemStats(&after)
	return after.TotalAlloc - before.TotalAlloc
}

func sizedEnvelope(compression Compression, size uint32, body ...byte) []byte {
	envelope := make([]byte, assetHeaderSize, assetHeaderSize+len(body))
	envelope[0] = byte(compression)
	binary.LittleEndian.PutUint32(envelope[2:], size)
	return append(envelope, body...)
}

func TestDecodeAssetRejectsImplausibleSize(t *testing.T) {
	tests := []struct {
		name     string
		envelope []byte
	}{
		{"lz4 above limit", sizedEnvelope(CompressionLZ4, 0x7FFFFFFF, 0)},
		{"zstd above limit", sizedEnvelope(CompressionZstd, 0xFFFFFFFF, 0)},
		{"none above limit", sizedEnvelope(CompressionNone, maxAssetSize+1, 0)},
		{"lz4 beyond block expansion", sizedEnvelope(CompressionLZ4, 4<<20, 0)},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			var err error
			allocated := allocatedDuring(func() {
				_, _, err = DecodeAsset(test.envelope)
			})
			testutil.RequireReject(t, err, reject.CodeProjectBinary)
			if allocated > 1<<20 {
				t.Errorf("allocated %d bytes decoding a %d-byte envelope", allocated, len(test.envelope))
			}
		})
	}
}

func TestParseCompression(t *testing.T) {
	for _, compression := range []Compression{CompressionNone, CompressionLZ4, CompressionZstd} {
		parsed, err := ParseCompression(compression.String())
		if err != nil || parsed != compression {
			t.Errorf("ParseCompression(%q) = %v, %v", compression.String(), parsed, err)
		}
	}
	if _, err := ParseCompression("gzip"); err == nil {
		t.Error("ParseCompression(gzip) succeeded")
	}
}

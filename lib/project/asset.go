// Copyright 2026 The ScratchRobin Authors
// SPDX-License-Identifier: Apache-2.0

package project

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"

	"github.com/scratchrobin/scratchrobin/lib/reject"
)

// Compression identifies how an asset payload is stored. The values
// are written to disk and must not change.
type Compression uint8

const (
	CompressionNone Compression = 0
	CompressionLZ4  Compression = 1
	CompressionZstd Compression = 2
)

// assetHeaderSize covers the compression tag, a reserved byte, and
// the uncompressed length (u32 little-endian).
const assetHeaderSize = 6

// maxAssetSize bounds the uncompressed size of a single asset. The
// size field comes from the file, so it is checked against this limit
// before any buffer is allocated.
const maxAssetSize = 256 << 20

// An LZ4 block expands by at most maxLZ4Expansion. The slack covers
// short blocks.
const (
	maxLZ4Expansion   = 255
	lz4ExpansionSlack = 16
)

var errIncompressible = errors.New("data is incompressible")

// String returns the flag spelling of the compression.
func (c Compression) String() string {
	switch c {
	case CompressionNone:
		return "none"
	case CompressionLZ4:
		return "lz4"
	case CompressionZstd:
		return "zstd"
	default:
		return fmt.Sprintf("unknown(%d)", uint8(c))
	}
}

// ParseCompression parses "none", "lz4", or "zstd".
func ParseCompression(name string) (Compression, error) {
	switch name {
	case "none":
		return CompressionNone, nil
	case "lz4":
		return CompressionLZ4, nil
	case "zstd":
		return CompressionZstd, nil
	default:
		return 0, fmt.Errorf("unknown compression %q", name)
	}
}

var (
	zstdEncoder *zstd.Encoder
	zstdDecoder *zstd.Decoder
)

func init() {
	var err error
	zstdEncoder, err = zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		panic("project: zstd encoder initialization failed: " + err.Error())
	}
	zstdDecoder, err = zstd.NewReader(nil, zstd.WithDecoderMaxMemory(maxAssetSize))
	if err != nil {
		panic("project: zstd decoder initialization failed: " + err.Error())
	}
}

// EncodeAsset wraps data in an asset envelope, compressing it with
// the requested algorithm. Data that does not shrink is stored
// uncompressed. Empty data is rejected because the container forbids
// empty chunks.
func EncodeAsset(data []byte, compression Compression) ([]byte, error) {
	if len(data) == 0 {
		return nil, assetReject("encode_asset", "asset payload empty")
	}
	if len(data) > maxAssetSize {
		return nil, assetReject("encode_asset", "asset payload too large")
	}

	body := data
	used := CompressionNone
	var err error
	switch compression {
	case CompressionNone:
	case CompressionLZ4:
		body, err = compressLZ4(data)
		used = CompressionLZ4
	case CompressionZstd:
		body, err = compressZstd(data)
		used = CompressionZstd
	default:
		return nil, assetReject("encode_asset", "unsupported compression "+compression.String())
	}
	if errors.Is(err, errIncompressible) {
		body, used = data, CompressionNone
	} else if err != nil {
		return nil, assetReject("encode_asset", err.Error())
	}

	envelope := make([]byte, assetHeaderSize+len(body))
	envelope[0] = byte(used)
	binary.LittleEndian.PutUint32(envelope[2:], uint32(len(data)))
	copy(envelope[assetHeaderSize:], body)
	return envelope, nil
}

// DecodeAsset unwraps an asset envelope and returns the original data
// together with the compression it was stored with.
func DecodeAsset(envelope []byte) ([]byte, Compression, error) {
	if len(envelope) < assetHeaderSize || envelope[1] != 0 {
		return nil, 0, assetReject("decode_asset", "invalid asset envelope")
	}
	compression := Compression(envelope[0])
	declared := binary.LittleEndian.Uint32(envelope[2:])
	if declared > maxAssetSize {
		return nil, 0, assetReject("decode_asset",
			fmt.Sprintf("asset size %d exceeds limit %d", declared, maxAssetSize))
	}
	size := int(declared)
	body := envelope[assetHeaderSize:]

	var data []byte
	var err error
	switch compression {
	case CompressionNone:
		if len(body) != size {
			err = fmt.Errorf("stored size %d does not match %d", len(body), size)
		}
		data = body
	case CompressionLZ4:
		data, err = decompressLZ4(body, size)
	case CompressionZstd:
		data, err = decompressZstd(body, size)
	default:
		err = fmt.Errorf("unsupported compression %s", compression)
	}
	if err != nil {
		return nil, 0, assetReject("decode_asset", err.Error())
	}
	return data, compression, nil
}

func compressLZ4(data []byte) ([]byte, error) {
	destination := make([]byte, lz4.CompressBlockBound(len(data)))
	written, err := lz4.CompressBlock(data, destination, nil)
	if err != nil {
		return nil, fmt.Errorf("lz4 compress: %w", err)
	}
	if written == 0 || written >= len(data) {
		return nil, errIncompressible
	}
	return destination[:written], nil
}

func decompressLZ4(compressed []byte, size int) ([]byte, error) {
	if size > len(compressed)*maxLZ4Expansion+lz4ExpansionSlack {
		return nil, fmt.Errorf("lz4 decompress: size %d impossible for %d compressed bytes", size, len(compressed))
	}
	destination := make([]byte, size)
	read, err := lz4.UncompressBlock(compressed, destination)
	if err != nil {
		return nil, fmt.Errorf("lz4 decompress: %w", err)
	}
	if read != size {
		return nil, fmt.Errorf("lz4 decompress: got %d bytes, expected %d", read, size)
	}
	return destination, nil
}

func compressZstd(data []byte) ([]byte, error) {
	compressed := zstdEncoder.EncodeAll(data, nil)
	if len(compressed) >= len(data) {
		return nil, errIncompressible
	}
	return compressed, nil
}

func decompressZstd(compressed []byte, size int) ([]byte, error) {
	result, err := zstdDecoder.DecodeAll(compressed, nil)
	if err != nil {
		return nil, fmt.Errorf("zstd decompress: %w", err)
	}
	if len(result) != size {
		return nil, fmt.Errorf("zstd decompress: got %d bytes, expected %d", len(result), size)
	}
	return result, nil
}

func assetReject(operation, message string) *reject.Error {
	return reject.New(reject.CodeProjectBinary, message, "project", operation)
}

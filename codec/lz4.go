// Package codec provides ready-made duocache.Pipeline.Decompressor /
// compressor pairs for the opaque codec-compressed ".cp" pixel payload
// format.
//
// Grounded on internal/segment/diskann/compression.go's LZ4 block
// framing: an 8-byte little-endian [uncompressed size][compressed size]
// header followed by the block payload, with a zero compressed size
// meaning the block is stored raw rather than lz4-compressed.
package codec

import (
	"encoding/binary"
	"fmt"

	"github.com/pierrec/lz4/v4"
)

const headerSize = 8

// LZ4Compress frames data as [uncompressed size uint32 LE][compressed
// size uint32 LE][block]. When data is incompressible — lz4.CompressBlock
// reports n == 0 — the block is stored raw instead, with compressed
// size 0 signaling that to LZ4Decompressor, matching the teacher's
// diskann block header convention rather than discarding the payload.
//
// LZ4Compress is not itself a duocache.Pipeline field — PutBytes callers
// use it directly to produce the compressed bytes passed as Item.Data
// with IsCompressed set to true.
func LZ4Compress(data []byte) ([]byte, error) {
	bound := lz4.CompressBlockBound(len(data))
	dst := make([]byte, headerSize+bound)
	binary.LittleEndian.PutUint32(dst[0:4], uint32(len(data)))

	n, err := lz4.CompressBlock(data, dst[headerSize:], nil)
	if err != nil {
		return nil, fmt.Errorf("codec: lz4 compress: %w", err)
	}
	if n == 0 || n >= len(data) {
		binary.LittleEndian.PutUint32(dst[4:8], 0)
		copy(dst[headerSize:], data)
		return dst[:headerSize+len(data)], nil
	}

	binary.LittleEndian.PutUint32(dst[4:8], uint32(n))
	return dst[:headerSize+n], nil
}

// LZ4Decompressor is a duocache.Pipeline.Decompressor for payloads
// produced by LZ4Compress.
func LZ4Decompressor(data []byte) ([]byte, error) {
	if len(data) < headerSize {
		return nil, fmt.Errorf("codec: lz4 block too small for header (%d bytes)", len(data))
	}

	uncompressedSize := binary.LittleEndian.Uint32(data[0:4])
	compressedSize := binary.LittleEndian.Uint32(data[4:8])
	if uncompressedSize == 0 {
		return nil, nil
	}

	if compressedSize == 0 {
		if uint32(len(data)-headerSize) < uncompressedSize {
			return nil, fmt.Errorf("codec: lz4 raw block declares %d bytes but carries %d", uncompressedSize, len(data)-headerSize)
		}
		return data[headerSize : headerSize+int(uncompressedSize)], nil
	}

	if uint32(len(data)-headerSize) < compressedSize {
		return nil, fmt.Errorf("codec: lz4 block declares %d compressed bytes but carries %d", compressedSize, len(data)-headerSize)
	}

	dst := make([]byte, uncompressedSize)
	n, err := lz4.UncompressBlock(data[headerSize:headerSize+int(compressedSize)], dst)
	if err != nil {
		return nil, fmt.Errorf("codec: lz4 decompress: %w", err)
	}
	if uint32(n) != uncompressedSize {
		return nil, fmt.Errorf("codec: lz4 decompressed %d bytes, header declared %d", n, uncompressedSize)
	}
	return dst, nil
}

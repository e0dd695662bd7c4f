package snapshot

import (
	"encoding/binary"
	"errors"
	"fmt"
	"hash/crc32"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

const (
	// magic identifies mesh snapshot files (ASCII "MSH0").
	magic = 0x4d534830
	// version is the current snapshot format version.
	version = 0x00010000
)

// Compression selects the payload compression algorithm.
type Compression uint8

const (
	// CompressionNone stores the payload uncompressed.
	CompressionNone Compression = 0
	// CompressionLZ4 favors speed over ratio.
	CompressionLZ4 Compression = 1
	// CompressionZstd favors ratio over speed.
	CompressionZstd Compression = 2
)

// String returns a string representation of the Compression.
func (c Compression) String() string {
	switch c {
	case CompressionNone:
		return "none"
	case CompressionLZ4:
		return "lz4"
	case CompressionZstd:
		return "zstd"
	default:
		return "unknown"
	}
}

var (
	// ErrInvalidMagic is returned when a blob is not a mesh snapshot.
	ErrInvalidMagic = errors.New("invalid magic number")
	// ErrInvalidVersion is returned for snapshot versions this build
	// cannot read.
	ErrInvalidVersion = errors.New("unsupported snapshot version")
	// ErrTruncated is returned when a snapshot ends mid-header or
	// mid-payload.
	ErrTruncated = errors.New("truncated snapshot")
)

// ChecksumMismatchError is returned when payload verification fails.
type ChecksumMismatchError struct {
	Expected uint32
	Actual   uint32
}

func (e *ChecksumMismatchError) Error() string {
	return fmt.Sprintf("checksum mismatch: expected 0x%08x, got 0x%08x", e.Expected, e.Actual)
}

// UnknownCodecError is returned when a snapshot records a codec this
// build does not know.
type UnknownCodecError struct {
	Name string
}

func (e *UnknownCodecError) Error() string {
	return fmt.Sprintf("unknown snapshot codec %q", e.Name)
}

// UnknownCompressionError is returned when a snapshot records a
// compression algorithm this build does not know.
type UnknownCompressionError struct {
	Compression Compression
}

func (e *UnknownCompressionError) Error() string {
	return fmt.Sprintf("unknown snapshot compression %d", uint8(e.Compression))
}

// header is the self-describing prefix of every snapshot blob.
//
// Layout (little endian):
//
//	[0:4)   magic
//	[4:8)   version
//	[8]     compression
//	[9]     codec name length
//	[10:..) codec name
//	[..+8)  uncompressed payload size
//	[..+4)  CRC32 (IEEE) of the stored payload
//	[..+8)  stored payload size
type header struct {
	compression      Compression
	codecName        string
	uncompressedSize uint64
	checksum         uint32
	payloadSize      uint64
}

func (h *header) encodedSize() int {
	return 4 + 4 + 1 + 1 + len(h.codecName) + 8 + 4 + 8
}

func (h *header) encode() []byte {
	buf := make([]byte, h.encodedSize())
	binary.LittleEndian.PutUint32(buf[0:], magic)
	binary.LittleEndian.PutUint32(buf[4:], version)
	buf[8] = uint8(h.compression)
	buf[9] = uint8(len(h.codecName))
	off := 10 + copy(buf[10:], h.codecName)
	binary.LittleEndian.PutUint64(buf[off:], h.uncompressedSize)
	binary.LittleEndian.PutUint32(buf[off+8:], h.checksum)
	binary.LittleEndian.PutUint64(buf[off+12:], h.payloadSize)
	return buf
}

// decodeHeader parses and validates the header, returning the header
// and the offset where the payload starts.
func decodeHeader(data []byte) (*header, int, error) {
	if len(data) < 10 {
		return nil, 0, ErrTruncated
	}
	if binary.LittleEndian.Uint32(data[0:]) != magic {
		return nil, 0, ErrInvalidMagic
	}
	if binary.LittleEndian.Uint32(data[4:]) != version {
		return nil, 0, ErrInvalidVersion
	}

	h := &header{compression: Compression(data[8])}

	nameLen := int(data[9])
	if len(data) < 10+nameLen+20 {
		return nil, 0, ErrTruncated
	}
	h.codecName = string(data[10 : 10+nameLen])

	off := 10 + nameLen
	h.uncompressedSize = binary.LittleEndian.Uint64(data[off:])
	h.checksum = binary.LittleEndian.Uint32(data[off+8:])
	h.payloadSize = binary.LittleEndian.Uint64(data[off+12:])

	start := off + 20
	if uint64(len(data)-start) < h.payloadSize {
		return nil, 0, ErrTruncated
	}
	return h, start, nil
}

var (
	zstdEncoder *zstd.Encoder
	zstdDecoder *zstd.Decoder
)

func init() {
	zstdEncoder, _ = zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	zstdDecoder, _ = zstd.NewReader(nil)
}

// compress compresses the payload. When compression does not shrink the
// payload it falls back to storing it raw, and returns the compression
// actually used.
func compress(data []byte, c Compression) ([]byte, Compression, error) {
	switch c {
	case CompressionNone:
		return data, CompressionNone, nil

	case CompressionZstd:
		compressed := zstdEncoder.EncodeAll(data, nil)
		if len(compressed) >= len(data) {
			return data, CompressionNone, nil
		}
		return compressed, CompressionZstd, nil

	case CompressionLZ4:
		compressed := make([]byte, lz4.CompressBlockBound(len(data)))
		n, err := lz4.CompressBlock(data, compressed, nil)
		if err != nil {
			return nil, c, err
		}
		if n == 0 || n >= len(data) {
			return data, CompressionNone, nil
		}
		return compressed[:n], CompressionLZ4, nil

	default:
		return nil, c, &UnknownCompressionError{Compression: c}
	}
}

func decompress(data []byte, c Compression, uncompressedSize uint64) ([]byte, error) {
	switch c {
	case CompressionNone:
		return data, nil

	case CompressionZstd:
		decoded, err := zstdDecoder.DecodeAll(data, make([]byte, 0, uncompressedSize))
		if err != nil {
			return nil, err
		}
		if uint64(len(decoded)) != uncompressedSize {
			return nil, ErrTruncated
		}
		return decoded, nil

	case CompressionLZ4:
		decoded := make([]byte, uncompressedSize)
		n, err := lz4.UncompressBlock(data, decoded)
		if err != nil {
			return nil, err
		}
		if uint64(n) != uncompressedSize {
			return nil, ErrTruncated
		}
		return decoded, nil

	default:
		return nil, &UnknownCompressionError{Compression: c}
	}
}

func checksum(data []byte) uint32 {
	return crc32.ChecksumIEEE(data)
}

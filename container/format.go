package container

import "errors"

const (
	// MagicNumber identifies container files (ASCII: "ANDD").
	MagicNumber = 0x414E4444
	// Version is the current file format version.
	Version = 0x00010000

	// headerSize is the fixed length of the file header:
	// magic(4) version(4) compression(1) pad(3) rawLen(8) payloadLen(8) crc32(4).
	headerSize = 32
)

// Compression selects the payload compression codec.
type Compression uint8

const (
	// CompressionNone stores the payload uncompressed.
	CompressionNone Compression = 0
	// CompressionZstd compresses the payload with zstd.
	CompressionZstd Compression = 1
	// CompressionLZ4 compresses the payload with LZ4 block compression.
	CompressionLZ4 Compression = 2
)

// String returns the codec name.
func (c Compression) String() string {
	switch c {
	case CompressionNone:
		return "none"
	case CompressionZstd:
		return "zstd"
	case CompressionLZ4:
		return "lz4"
	default:
		return "unknown"
	}
}

var (
	// ErrInvalidMagic is returned when a file does not start with the
	// container magic number.
	ErrInvalidMagic = errors.New("container: invalid magic number")

	// ErrInvalidVersion is returned for format versions this library
	// cannot decode.
	ErrInvalidVersion = errors.New("container: unsupported format version")

	// ErrInvalidCompression is returned for unknown compression codecs.
	ErrInvalidCompression = errors.New("container: unknown compression codec")

	// ErrChecksumMismatch is returned when the payload checksum does not
	// match the header.
	ErrChecksumMismatch = errors.New("container: checksum mismatch")

	// ErrTruncated is returned when the payload ends before the encoded
	// structure does.
	ErrTruncated = errors.New("container: truncated or malformed payload")

	// ErrShapeMismatch is returned when a dataset shape disagrees with the
	// number of stored values.
	ErrShapeMismatch = errors.New("container: shape does not match value count")
)

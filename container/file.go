package container

import (
	"encoding/binary"
	"fmt"
	"hash/crc32"
	"os"
	"path/filepath"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Encode serializes the group tree into a self-describing byte blob.
func Encode(root *Group, compression Compression) ([]byte, error) {
	payload := appendGroup(make([]byte, 0, encodedSizeHint(root)), root)
	rawLen := uint64(len(payload))

	switch compression {
	case CompressionNone:
	case CompressionZstd:
		enc, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
		if err != nil {
			return nil, err
		}
		payload = enc.EncodeAll(payload, nil)
		if err := enc.Close(); err != nil {
			return nil, err
		}
	case CompressionLZ4:
		compressed := make([]byte, lz4.CompressBlockBound(len(payload)))
		n, err := lz4.CompressBlock(payload, compressed, nil)
		if err != nil {
			return nil, err
		}
		if n == 0 {
			// Incompressible payload, fall back to storing it as-is.
			compression = CompressionNone
		} else {
			payload = compressed[:n]
		}
	default:
		return nil, fmt.Errorf("%w: %d", ErrInvalidCompression, compression)
	}

	buf := make([]byte, 0, headerSize+len(payload))
	buf = binary.LittleEndian.AppendUint32(buf, MagicNumber)
	buf = binary.LittleEndian.AppendUint32(buf, Version)
	buf = append(buf, byte(compression), 0, 0, 0)
	buf = binary.LittleEndian.AppendUint64(buf, rawLen)
	buf = binary.LittleEndian.AppendUint64(buf, uint64(len(payload)))
	buf = binary.LittleEndian.AppendUint32(buf, crc32.ChecksumIEEE(payload))
	return append(buf, payload...), nil
}

// Decode reconstructs a group tree from a blob produced by Encode.
func Decode(data []byte) (*Group, error) {
	if len(data) < headerSize {
		return nil, fmt.Errorf("%w: %d bytes is shorter than the header", ErrTruncated, len(data))
	}
	if magic := binary.LittleEndian.Uint32(data[0:]); magic != MagicNumber {
		return nil, fmt.Errorf("%w: 0x%08X", ErrInvalidMagic, magic)
	}
	if version := binary.LittleEndian.Uint32(data[4:]); version != Version {
		return nil, fmt.Errorf("%w: 0x%08X", ErrInvalidVersion, version)
	}
	compression := Compression(data[8])
	rawLen := binary.LittleEndian.Uint64(data[12:])
	payloadLen := binary.LittleEndian.Uint64(data[20:])
	sum := binary.LittleEndian.Uint32(data[28:])

	if uint64(len(data)-headerSize) != payloadLen {
		return nil, fmt.Errorf("%w: header declares %d payload bytes, have %d",
			ErrTruncated, payloadLen, len(data)-headerSize)
	}
	payload := data[headerSize:]
	if got := crc32.ChecksumIEEE(payload); got != sum {
		return nil, fmt.Errorf("%w: want 0x%08X, got 0x%08X", ErrChecksumMismatch, sum, got)
	}

	switch compression {
	case CompressionNone:
		if rawLen != payloadLen {
			return nil, fmt.Errorf("%w: uncompressed length %d does not match payload length %d",
				ErrTruncated, rawLen, payloadLen)
		}
	case CompressionZstd:
		dec, err := zstd.NewReader(nil)
		if err != nil {
			return nil, err
		}
		defer dec.Close()
		payload, err = dec.DecodeAll(payload, make([]byte, 0, rawLen))
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrTruncated, err)
		}
		if uint64(len(payload)) != rawLen {
			return nil, fmt.Errorf("%w: decompressed to %d bytes, expected %d",
				ErrTruncated, len(payload), rawLen)
		}
	case CompressionLZ4:
		raw := make([]byte, rawLen)
		n, err := lz4.UncompressBlock(payload, raw)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrTruncated, err)
		}
		if uint64(n) != rawLen {
			return nil, fmt.Errorf("%w: decompressed to %d bytes, expected %d",
				ErrTruncated, n, rawLen)
		}
		payload = raw
	default:
		return nil, fmt.Errorf("%w: %d", ErrInvalidCompression, compression)
	}

	d := &decoder{buf: payload}
	root, err := d.group(0)
	if err != nil {
		return nil, err
	}
	if d.off != len(payload) {
		return nil, fmt.Errorf("%w: %d trailing bytes after root group", ErrTruncated, len(payload)-d.off)
	}
	return root, nil
}

// WriteFile encodes the tree and writes it to path. The file is first
// written to a temporary sibling and renamed into place, so a crash mid-write
// never leaves a partially written container at path.
func WriteFile(path string, root *Group, compression Compression) error {
	data, err := Encode(root, compression)
	if err != nil {
		return err
	}

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return err
	}
	return nil
}

// ReadFile reads and decodes a container file.
func ReadFile(path string) (*Group, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Decode(data)
}

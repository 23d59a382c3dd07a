package container

import (
	"encoding/binary"
	"hash/crc32"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func sampleTree(t *testing.T) *Group {
	t.Helper()

	root := NewGroup()
	root.SetStringAttr("element_type", "float32")

	points := root.CreateGroup("data_points")
	points.SetStringAttr("kind", "dense")
	require.NoError(t, points.SetFloat32("vectors", []int{2, 3}, []float32{1, 2, 3, 4, 5, 6}))

	sparse := points.CreateGroup("sparse")
	sparse.SetUintsAttr("shape", []uint64{2, 4})
	require.NoError(t, sparse.SetUint64("indptr", []int{3}, []uint64{0, 1, 2}))
	require.NoError(t, sparse.SetUint32("indices", []int{2}, []uint32{0, 3}))
	require.NoError(t, sparse.SetFloat32("data", []int{2}, []float32{-1.5, 2.25}))

	return root
}

func requireTreeEqual(t *testing.T, want, got *Group) {
	t.Helper()

	require.Equal(t, want.attrNames(), got.attrNames())
	for _, name := range want.attrNames() {
		require.Equal(t, want.attrs[name], got.attrs[name], "attr %q", name)
	}

	require.Equal(t, want.DatasetNames(), got.DatasetNames())
	for _, name := range want.DatasetNames() {
		require.Equal(t, want.datasets[name], got.datasets[name], "dataset %q", name)
	}

	require.Equal(t, want.GroupNames(), got.GroupNames())
	for _, name := range want.GroupNames() {
		w, _ := want.Group(name)
		g, _ := got.Group(name)
		requireTreeEqual(t, w, g)
	}
}

func TestEncodeDecode_RoundTrip(t *testing.T) {
	for _, compression := range []Compression{CompressionNone, CompressionZstd, CompressionLZ4} {
		root := sampleTree(t)

		data, err := Encode(root, compression)
		require.NoError(t, err)

		got, err := Decode(data)
		require.NoError(t, err)
		requireTreeEqual(t, root, got)
	}
}

func TestEncode_Deterministic(t *testing.T) {
	a, err := Encode(sampleTree(t), CompressionNone)
	require.NoError(t, err)
	b, err := Encode(sampleTree(t), CompressionNone)
	require.NoError(t, err)
	require.Equal(t, a, b)
}

func TestDecode_InvalidMagic(t *testing.T) {
	data, err := Encode(sampleTree(t), CompressionNone)
	require.NoError(t, err)

	binary.LittleEndian.PutUint32(data[0:], 0xDEADBEEF)
	_, err = Decode(data)
	require.ErrorIs(t, err, ErrInvalidMagic)
}

func TestDecode_InvalidVersion(t *testing.T) {
	data, err := Encode(sampleTree(t), CompressionNone)
	require.NoError(t, err)

	binary.LittleEndian.PutUint32(data[4:], 0x00990000)
	_, err = Decode(data)
	require.ErrorIs(t, err, ErrInvalidVersion)
}

func TestDecode_ChecksumMismatch(t *testing.T) {
	data, err := Encode(sampleTree(t), CompressionNone)
	require.NoError(t, err)

	// Flip a payload byte without fixing the checksum.
	data[len(data)-1] ^= 0xFF
	_, err = Decode(data)
	require.ErrorIs(t, err, ErrChecksumMismatch)
}

func TestDecode_Truncated(t *testing.T) {
	data, err := Encode(sampleTree(t), CompressionNone)
	require.NoError(t, err)

	_, err = Decode(data[:len(data)-7])
	require.ErrorIs(t, err, ErrTruncated)

	_, err = Decode(data[:headerSize-1])
	require.ErrorIs(t, err, ErrTruncated)
}

func TestDecode_TrailingGarbage(t *testing.T) {
	data, err := Encode(sampleTree(t), CompressionNone)
	require.NoError(t, err)

	// Extend the payload and redo header bookkeeping so only the trailing
	// bytes are wrong.
	data = append(data, 0x00, 0x00)
	binary.LittleEndian.PutUint64(data[12:], uint64(len(data)-headerSize))
	binary.LittleEndian.PutUint64(data[20:], uint64(len(data)-headerSize))
	binary.LittleEndian.PutUint32(data[28:], crc32.ChecksumIEEE(data[headerSize:]))

	_, err = Decode(data)
	require.ErrorIs(t, err, ErrTruncated)
}

func TestDecode_ExcessiveNesting(t *testing.T) {
	root := NewGroup()
	g := root
	for i := 0; i < maxGroupDepth+10; i++ {
		g = g.CreateGroup("g")
	}

	data, err := Encode(root, CompressionNone)
	require.NoError(t, err)

	_, err = Decode(data)
	require.ErrorIs(t, err, ErrTruncated)
}

func TestDecode_UnknownCompression(t *testing.T) {
	data, err := Encode(sampleTree(t), CompressionNone)
	require.NoError(t, err)

	data[8] = 0x7F
	_, err = Decode(data)
	require.ErrorIs(t, err, ErrInvalidCompression)
}

func TestSetDataset_ShapeMismatch(t *testing.T) {
	g := NewGroup()
	err := g.SetFloat32("vectors", []int{2, 3}, []float32{1, 2, 3})
	require.ErrorIs(t, err, ErrShapeMismatch)

	err = g.SetUint32("ids", []int{-1}, nil)
	require.ErrorIs(t, err, ErrShapeMismatch)
}

func TestWriteFile_ReadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sample.annd")
	root := sampleTree(t)

	require.NoError(t, WriteFile(path, root, CompressionZstd))

	got, err := ReadFile(path)
	require.NoError(t, err)
	requireTreeEqual(t, root, got)

	// No temp files left behind.
	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	require.Len(t, entries, 1)
}

func TestReadFile_Missing(t *testing.T) {
	_, err := ReadFile(filepath.Join(t.TempDir(), "nope.annd"))
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestDataset_EmptyShapes(t *testing.T) {
	g := NewGroup()
	require.NoError(t, g.SetFloat64("empty", []int{0, 5}, nil))

	data, err := Encode(g, CompressionNone)
	require.NoError(t, err)

	got, err := Decode(data)
	require.NoError(t, err)

	shape, values, ok := got.Float64("empty")
	require.True(t, ok)
	require.Equal(t, []int{0, 5}, shape)
	require.Empty(t, values)
}

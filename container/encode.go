package container

import (
	"encoding/binary"
	"math"
)

// Payload encoding (all multi-byte values little-endian):
//
//	group   := attrs datasets groups
//	attrs   := uvarint(count) { str(name) byte(kind) attrBody }*
//	datasets:= uvarint(count) { str(name) byte(dtype) uvarint(ndim) uvarint(dim)* value* }*
//	groups  := uvarint(count) { str(name) group }*
//	str     := uvarint(len) bytes
//
// Entries are written in sorted name order so that the same tree always
// encodes to the same bytes.

func appendString(buf []byte, s string) []byte {
	buf = binary.AppendUvarint(buf, uint64(len(s)))
	return append(buf, s...)
}

func appendGroup(buf []byte, g *Group) []byte {
	buf = binary.AppendUvarint(buf, uint64(len(g.attrs)))
	for _, name := range g.attrNames() {
		a := g.attrs[name]
		buf = appendString(buf, name)
		buf = append(buf, byte(a.kind))
		switch a.kind {
		case attrKindString:
			buf = appendString(buf, a.str)
		case attrKindUints:
			buf = binary.AppendUvarint(buf, uint64(len(a.uints)))
			for _, v := range a.uints {
				buf = binary.AppendUvarint(buf, v)
			}
		}
	}

	buf = binary.AppendUvarint(buf, uint64(len(g.datasets)))
	for _, name := range g.DatasetNames() {
		d := g.datasets[name]
		buf = appendString(buf, name)
		buf = append(buf, byte(d.dtype))
		buf = binary.AppendUvarint(buf, uint64(len(d.shape)))
		for _, dim := range d.shape {
			buf = binary.AppendUvarint(buf, uint64(dim))
		}
		buf = appendValues(buf, d)
	}

	buf = binary.AppendUvarint(buf, uint64(len(g.groups)))
	for _, name := range g.GroupNames() {
		buf = appendString(buf, name)
		buf = appendGroup(buf, g.groups[name])
	}
	return buf
}

func appendValues(buf []byte, d *Dataset) []byte {
	switch d.dtype {
	case DTypeUint32:
		for _, v := range d.u32 {
			buf = binary.LittleEndian.AppendUint32(buf, v)
		}
	case DTypeUint64:
		for _, v := range d.u64 {
			buf = binary.LittleEndian.AppendUint64(buf, v)
		}
	case DTypeFloat32:
		for _, v := range d.f32 {
			buf = binary.LittleEndian.AppendUint32(buf, math.Float32bits(v))
		}
	case DTypeFloat64:
		for _, v := range d.f64 {
			buf = binary.LittleEndian.AppendUint64(buf, math.Float64bits(v))
		}
	}
	return buf
}

func encodedSizeHint(g *Group) int {
	// Datasets dominate; attrs and names are noise.
	n := 64
	for _, d := range g.datasets {
		n += 16 + d.numElements()*d.dtype.size()
	}
	for _, child := range g.groups {
		n += encodedSizeHint(child)
	}
	return n
}

package container

import (
	"encoding/binary"
	"fmt"
	"math"
)

// maxGroupDepth caps group nesting. Legitimate trees are a few levels
// deep; a crafted file could otherwise nest groups until the decoder
// exhausts its stack.
const maxGroupDepth = 100

// decoder walks the payload buffer. Every read is bounds-checked; a short
// buffer surfaces as ErrTruncated rather than a panic.
type decoder struct {
	buf []byte
	off int
}

func (d *decoder) uvarint() (uint64, error) {
	v, n := binary.Uvarint(d.buf[d.off:])
	if n <= 0 {
		return 0, ErrTruncated
	}
	d.off += n
	return v, nil
}

func (d *decoder) count() (int, error) {
	v, err := d.uvarint()
	if err != nil {
		return 0, err
	}
	if v > uint64(len(d.buf)) {
		// A count can never exceed the remaining payload bytes.
		return 0, fmt.Errorf("%w: implausible count %d", ErrTruncated, v)
	}
	return int(v), nil
}

func (d *decoder) bytes(n int) ([]byte, error) {
	if n < 0 || d.off+n > len(d.buf) {
		return nil, ErrTruncated
	}
	b := d.buf[d.off : d.off+n]
	d.off += n
	return b, nil
}

func (d *decoder) string() (string, error) {
	n, err := d.count()
	if err != nil {
		return "", err
	}
	b, err := d.bytes(n)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func (d *decoder) byte() (byte, error) {
	b, err := d.bytes(1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

func (d *decoder) group(depth int) (*Group, error) {
	if depth > maxGroupDepth {
		return nil, fmt.Errorf("%w: groups nested deeper than %d levels", ErrTruncated, maxGroupDepth)
	}
	g := NewGroup()

	numAttrs, err := d.count()
	if err != nil {
		return nil, err
	}
	for i := 0; i < numAttrs; i++ {
		name, err := d.string()
		if err != nil {
			return nil, err
		}
		kind, err := d.byte()
		if err != nil {
			return nil, err
		}
		switch attrKind(kind) {
		case attrKindString:
			s, err := d.string()
			if err != nil {
				return nil, err
			}
			g.SetStringAttr(name, s)
		case attrKindUints:
			n, err := d.count()
			if err != nil {
				return nil, err
			}
			values := make([]uint64, n)
			for i := range values {
				if values[i], err = d.uvarint(); err != nil {
					return nil, err
				}
			}
			g.SetUintsAttr(name, values)
		default:
			return nil, fmt.Errorf("%w: attribute %q has unknown kind %d", ErrTruncated, name, kind)
		}
	}

	numDatasets, err := d.count()
	if err != nil {
		return nil, err
	}
	for i := 0; i < numDatasets; i++ {
		name, err := d.string()
		if err != nil {
			return nil, err
		}
		if err := d.dataset(g, name); err != nil {
			return nil, err
		}
	}

	numGroups, err := d.count()
	if err != nil {
		return nil, err
	}
	for i := 0; i < numGroups; i++ {
		name, err := d.string()
		if err != nil {
			return nil, err
		}
		child, err := d.group(depth + 1)
		if err != nil {
			return nil, err
		}
		g.groups[name] = child
	}
	return g, nil
}

func (d *decoder) dataset(g *Group, name string) error {
	tag, err := d.byte()
	if err != nil {
		return err
	}
	dtype := DType(tag)
	if !dtype.valid() {
		return fmt.Errorf("%w: dataset %q has unknown dtype %d", ErrTruncated, name, tag)
	}

	ndim, err := d.count()
	if err != nil {
		return err
	}
	shape := make([]int, ndim)
	count := 1
	for i := range shape {
		dim, err := d.uvarint()
		if err != nil {
			return err
		}
		if dim > uint64(math.MaxInt32) {
			return fmt.Errorf("%w: dataset %q dimension %d too large", ErrTruncated, name, dim)
		}
		shape[i] = int(dim)
		count *= int(dim)
	}

	raw, err := d.bytes(count * dtype.size())
	if err != nil {
		return fmt.Errorf("%w: dataset %q shape %v exceeds payload", ErrTruncated, name, shape)
	}

	switch dtype {
	case DTypeUint32:
		values := make([]uint32, count)
		for i := range values {
			values[i] = binary.LittleEndian.Uint32(raw[i*4:])
		}
		return g.SetUint32(name, shape, values)
	case DTypeUint64:
		values := make([]uint64, count)
		for i := range values {
			values[i] = binary.LittleEndian.Uint64(raw[i*8:])
		}
		return g.SetUint64(name, shape, values)
	case DTypeFloat32:
		values := make([]float32, count)
		for i := range values {
			values[i] = math.Float32frombits(binary.LittleEndian.Uint32(raw[i*4:]))
		}
		return g.SetFloat32(name, shape, values)
	default:
		values := make([]float64, count)
		for i := range values {
			values[i] = math.Float64frombits(binary.LittleEndian.Uint64(raw[i*8:]))
		}
		return g.SetFloat64(name, shape, values)
	}
}

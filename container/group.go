package container

import (
	"fmt"
	"sort"
)

// DType identifies the element type of a dataset.
type DType uint8

const (
	// DTypeUint32 stores 32-bit unsigned integers.
	DTypeUint32 DType = 1
	// DTypeUint64 stores 64-bit unsigned integers.
	DTypeUint64 DType = 2
	// DTypeFloat32 stores IEEE-754 single-precision floats.
	DTypeFloat32 DType = 3
	// DTypeFloat64 stores IEEE-754 double-precision floats.
	DTypeFloat64 DType = 4
)

// String returns the stable name of the dtype.
func (t DType) String() string {
	switch t {
	case DTypeUint32:
		return "uint32"
	case DTypeUint64:
		return "uint64"
	case DTypeFloat32:
		return "float32"
	case DTypeFloat64:
		return "float64"
	default:
		return fmt.Sprintf("dtype(%d)", uint8(t))
	}
}

func (t DType) valid() bool {
	return t >= DTypeUint32 && t <= DTypeFloat64
}

// size returns the element width in bytes.
func (t DType) size() int {
	switch t {
	case DTypeUint32, DTypeFloat32:
		return 4
	default:
		return 8
	}
}

type attrKind uint8

const (
	attrKindString attrKind = 1
	attrKindUints  attrKind = 2
)

type attr struct {
	kind  attrKind
	str   string
	uints []uint64
}

// Dataset is a typed n-dimensional array stored inside a group.
// Values are kept in exactly one of the typed slices, selected by dtype.
type Dataset struct {
	dtype DType
	shape []int
	u32   []uint32
	u64   []uint64
	f32   []float32
	f64   []float64
}

// DType returns the element type of the dataset.
func (d *Dataset) DType() DType { return d.dtype }

// Shape returns the dimensions of the dataset.
func (d *Dataset) Shape() []int { return d.shape }

func (d *Dataset) numElements() int {
	n := 1
	for _, dim := range d.shape {
		n *= dim
	}
	return n
}

func checkShape(shape []int, count int) error {
	n := 1
	for _, dim := range shape {
		if dim < 0 {
			return fmt.Errorf("%w: negative dimension %d", ErrShapeMismatch, dim)
		}
		n *= dim
	}
	if n != count {
		return fmt.Errorf("%w: shape %v implies %d elements, have %d", ErrShapeMismatch, shape, n, count)
	}
	return nil
}

// Group is a node in the container tree. It holds attributes, datasets and
// nested groups, each addressed by name.
type Group struct {
	attrs    map[string]attr
	datasets map[string]*Dataset
	groups   map[string]*Group
}

// NewGroup creates an empty group.
func NewGroup() *Group {
	return &Group{
		attrs:    make(map[string]attr),
		datasets: make(map[string]*Dataset),
		groups:   make(map[string]*Group),
	}
}

// CreateGroup creates (or replaces) a nested group and returns it.
func (g *Group) CreateGroup(name string) *Group {
	child := NewGroup()
	g.groups[name] = child
	return child
}

// Group returns the nested group with the given name.
func (g *Group) Group(name string) (*Group, bool) {
	child, ok := g.groups[name]
	return child, ok
}

// GroupNames returns the names of all nested groups in sorted order.
func (g *Group) GroupNames() []string {
	names := make([]string, 0, len(g.groups))
	for name := range g.groups {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// SetStringAttr sets a string attribute on the group.
func (g *Group) SetStringAttr(name, value string) {
	g.attrs[name] = attr{kind: attrKindString, str: value}
}

// StringAttr returns the string attribute with the given name.
func (g *Group) StringAttr(name string) (string, bool) {
	a, ok := g.attrs[name]
	if !ok || a.kind != attrKindString {
		return "", false
	}
	return a.str, true
}

// SetUintsAttr sets an unsigned-integer-slice attribute on the group.
func (g *Group) SetUintsAttr(name string, values []uint64) {
	g.attrs[name] = attr{kind: attrKindUints, uints: values}
}

// UintsAttr returns the unsigned-integer-slice attribute with the given name.
func (g *Group) UintsAttr(name string) ([]uint64, bool) {
	a, ok := g.attrs[name]
	if !ok || a.kind != attrKindUints {
		return nil, false
	}
	return a.uints, true
}

// Dataset returns the dataset with the given name.
func (g *Group) Dataset(name string) (*Dataset, bool) {
	d, ok := g.datasets[name]
	return d, ok
}

// DatasetNames returns the names of all datasets in sorted order.
func (g *Group) DatasetNames() []string {
	names := make([]string, 0, len(g.datasets))
	for name := range g.datasets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// SetUint32 stores a uint32 dataset with the given shape.
func (g *Group) SetUint32(name string, shape []int, values []uint32) error {
	if err := checkShape(shape, len(values)); err != nil {
		return err
	}
	g.datasets[name] = &Dataset{dtype: DTypeUint32, shape: shape, u32: values}
	return nil
}

// Uint32 returns the shape and values of a uint32 dataset.
func (g *Group) Uint32(name string) ([]int, []uint32, bool) {
	d, ok := g.datasets[name]
	if !ok || d.dtype != DTypeUint32 {
		return nil, nil, false
	}
	return d.shape, d.u32, true
}

// SetUint64 stores a uint64 dataset with the given shape.
func (g *Group) SetUint64(name string, shape []int, values []uint64) error {
	if err := checkShape(shape, len(values)); err != nil {
		return err
	}
	g.datasets[name] = &Dataset{dtype: DTypeUint64, shape: shape, u64: values}
	return nil
}

// Uint64 returns the shape and values of a uint64 dataset.
func (g *Group) Uint64(name string) ([]int, []uint64, bool) {
	d, ok := g.datasets[name]
	if !ok || d.dtype != DTypeUint64 {
		return nil, nil, false
	}
	return d.shape, d.u64, true
}

// SetFloat32 stores a float32 dataset with the given shape.
func (g *Group) SetFloat32(name string, shape []int, values []float32) error {
	if err := checkShape(shape, len(values)); err != nil {
		return err
	}
	g.datasets[name] = &Dataset{dtype: DTypeFloat32, shape: shape, f32: values}
	return nil
}

// Float32 returns the shape and values of a float32 dataset.
func (g *Group) Float32(name string) ([]int, []float32, bool) {
	d, ok := g.datasets[name]
	if !ok || d.dtype != DTypeFloat32 {
		return nil, nil, false
	}
	return d.shape, d.f32, true
}

// SetFloat64 stores a float64 dataset with the given shape.
func (g *Group) SetFloat64(name string, shape []int, values []float64) error {
	if err := checkShape(shape, len(values)); err != nil {
		return err
	}
	g.datasets[name] = &Dataset{dtype: DTypeFloat64, shape: shape, f64: values}
	return nil
}

// Float64 returns the shape and values of a float64 dataset.
func (g *Group) Float64(name string) ([]int, []float64, bool) {
	d, ok := g.datasets[name]
	if !ok || d.dtype != DTypeFloat64 {
		return nil, nil, false
	}
	return d.shape, d.f64, true
}

func (g *Group) attrNames() []string {
	names := make([]string, 0, len(g.attrs))
	for name := range g.attrs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

package array

import (
	"math"

	"github.com/hupe1980/geoarrow"
	"github.com/hupe1980/geoarrow/internal/mem"
	"github.com/hupe1980/geoarrow/traits"
)

// CoordBuffer is an immutable sequence of coordinates of one dimension.
//
// Implementations are *InterleavedCoords and *SeparatedCoords.
type CoordBuffer interface {
	Len() int
	Dim() geoarrow.Dimension
	CoordType() geoarrow.CoordType
	X(i int) float64
	Y(i int) float64
	// Nth returns axis n of coordinate i. Neither index is checked.
	Nth(i, n int) float64
	// Coord returns a view of coordinate i.
	Coord(i int) Coord
	// Slice returns a zero-copy window of length coordinates.
	Slice(offset, length int) CoordBuffer
	// ToCoordType copies the buffer into the given layout, or returns it
	// unchanged when the layout already matches.
	ToCoordType(ct geoarrow.CoordType) CoordBuffer
}

// Coord is a view of one coordinate in a CoordBuffer.
type Coord struct {
	buf CoordBuffer
	i   int
}

var _ traits.Coord = Coord{}

func (c Coord) Dim() geoarrow.Dimension    { return c.buf.Dim() }
func (c Coord) X() float64                 { return c.buf.X(c.i) }
func (c Coord) Y() float64                 { return c.buf.Y(c.i) }
func (c Coord) NthUnchecked(n int) float64 { return c.buf.Nth(c.i, n) }

// Index returns the position of the coordinate in its buffer.
func (c Coord) Index() int { return c.i }

func (c Coord) isNaN() bool {
	for n := range c.Dim().Size() {
		if !math.IsNaN(c.NthUnchecked(n)) {
			return false
		}
	}
	return true
}

// InterleavedCoords stores x0 y0 [z0] [m0] x1 y1 ... in one buffer.
type InterleavedCoords struct {
	dim    geoarrow.Dimension
	values []float64
}

// NewInterleavedCoords wraps values without copying. len(values) must be a
// multiple of dim.Size().
func NewInterleavedCoords(dim geoarrow.Dimension, values []float64) (*InterleavedCoords, error) {
	if !dim.Valid() {
		return nil, geoarrow.IncorrectType("dimension %s", dim)
	}
	if len(values)%dim.Size() != 0 {
		return nil, geoarrow.IncorrectType("%d values do not divide into %s coordinates", len(values), dim)
	}
	return &InterleavedCoords{dim: dim, values: values}, nil
}

func (c *InterleavedCoords) Len() int                      { return len(c.values) / c.dim.Size() }
func (c *InterleavedCoords) Dim() geoarrow.Dimension       { return c.dim }
func (c *InterleavedCoords) CoordType() geoarrow.CoordType { return geoarrow.Interleaved }
func (c *InterleavedCoords) X(i int) float64               { return c.values[i*c.dim.Size()] }
func (c *InterleavedCoords) Y(i int) float64               { return c.values[i*c.dim.Size()+1] }
func (c *InterleavedCoords) Nth(i, n int) float64          { return c.values[i*c.dim.Size()+n] }
func (c *InterleavedCoords) Coord(i int) Coord             { return Coord{buf: c, i: i} }

// Values returns the underlying interleaved values. The slice must not be modified.
func (c *InterleavedCoords) Values() []float64 { return c.values }

func (c *InterleavedCoords) Slice(offset, length int) CoordBuffer {
	checkWindow(offset, length, c.Len())
	n := c.dim.Size()
	return &InterleavedCoords{dim: c.dim, values: c.values[offset*n : (offset+length)*n : (offset+length)*n]}
}

func (c *InterleavedCoords) ToCoordType(ct geoarrow.CoordType) CoordBuffer {
	if ct == geoarrow.Interleaved {
		return c
	}
	size := c.dim.Size()
	length := c.Len()
	out := &SeparatedCoords{dim: c.dim}
	for n := range size {
		axis := mem.AllocAlignedFloat64(length)
		for i := range length {
			axis[i] = c.values[i*size+n]
		}
		out.axes[n] = axis
	}
	return out
}

// SeparatedCoords stores one buffer per axis.
type SeparatedCoords struct {
	dim  geoarrow.Dimension
	axes [4][]float64
}

// NewSeparatedCoords wraps one slice per axis without copying. All axes must
// have equal length and there must be exactly dim.Size() of them.
func NewSeparatedCoords(dim geoarrow.Dimension, axes ...[]float64) (*SeparatedCoords, error) {
	if !dim.Valid() {
		return nil, geoarrow.IncorrectType("dimension %s", dim)
	}
	if len(axes) != dim.Size() {
		return nil, &geoarrow.ErrDimensionMismatch{Expected: dim, Actual: dimensionOfSize(len(axes), dim)}
	}
	c := &SeparatedCoords{dim: dim}
	for n, axis := range axes {
		if len(axis) != len(axes[0]) {
			return nil, geoarrow.IncorrectType("axis %s has %d values, want %d", dim.Axes()[n], len(axis), len(axes[0]))
		}
		c.axes[n] = axis
	}
	return c, nil
}

func dimensionOfSize(n int, like geoarrow.Dimension) geoarrow.Dimension {
	switch n {
	case 2:
		return geoarrow.XY
	case 3:
		if like == geoarrow.XYM {
			return geoarrow.XYM
		}
		return geoarrow.XYZ
	default:
		return geoarrow.XYZM
	}
}

func (c *SeparatedCoords) Len() int                      { return len(c.axes[0]) }
func (c *SeparatedCoords) Dim() geoarrow.Dimension       { return c.dim }
func (c *SeparatedCoords) CoordType() geoarrow.CoordType { return geoarrow.Separated }
func (c *SeparatedCoords) X(i int) float64               { return c.axes[0][i] }
func (c *SeparatedCoords) Y(i int) float64               { return c.axes[1][i] }
func (c *SeparatedCoords) Nth(i, n int) float64          { return c.axes[n][i] }
func (c *SeparatedCoords) Coord(i int) Coord             { return Coord{buf: c, i: i} }

// Axis returns the values of axis n. The slice must not be modified.
func (c *SeparatedCoords) Axis(n int) []float64 { return c.axes[n] }

func (c *SeparatedCoords) Slice(offset, length int) CoordBuffer {
	checkWindow(offset, length, c.Len())
	out := &SeparatedCoords{dim: c.dim}
	for n := range c.dim.Size() {
		out.axes[n] = c.axes[n][offset : offset+length : offset+length]
	}
	return out
}

func (c *SeparatedCoords) ToCoordType(ct geoarrow.CoordType) CoordBuffer {
	if ct == geoarrow.Separated {
		return c
	}
	size := c.dim.Size()
	length := c.Len()
	values := mem.AllocAlignedFloat64(length * size)
	for n := range size {
		axis := c.axes[n]
		for i, v := range axis {
			values[i*size+n] = v
		}
	}
	return &InterleavedCoords{dim: c.dim, values: values}
}

// CoordsEqual reports whether a and b hold the same coordinate values,
// regardless of layout. NaN equals NaN.
func CoordsEqual(a, b CoordBuffer) bool {
	if a.Dim() != b.Dim() || a.Len() != b.Len() {
		return false
	}
	size := a.Dim().Size()
	for i := range a.Len() {
		for n := range size {
			x, y := a.Nth(i, n), b.Nth(i, n)
			if x != y && !(math.IsNaN(x) && math.IsNaN(y)) {
				return false
			}
		}
	}
	return true
}

// copyCoords copies a window of src into a fresh buffer of the same layout.
func copyCoords(src CoordBuffer, offset, length int) CoordBuffer {
	b := NewCoordBufferBuilder(src.Dim(), src.CoordType())
	b.ReserveExact(length)
	for i := offset; i < offset+length; i++ {
		b.pushFrom(src, i)
	}
	return b.Finish()
}

func checkWindow(offset, length, n int) {
	switch {
	case offset < 0 || offset > n:
		panic(&geoarrow.ErrInvalidIndex{Index: offset, Len: n})
	case length < 0 || offset+length > n:
		panic(&geoarrow.ErrInvalidIndex{Index: offset + length, Len: n})
	}
}

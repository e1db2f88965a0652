package array

import (
	"math"

	"github.com/hupe1980/geoarrow"
	"github.com/hupe1980/geoarrow/internal/mem"
	"github.com/hupe1980/geoarrow/traits"
)

// CoordBufferBuilder appends coordinates to a growing buffer in either layout.
type CoordBufferBuilder struct {
	dim       geoarrow.Dimension
	coordType geoarrow.CoordType
	values    []float64    // interleaved
	axes      [4][]float64 // separated
}

// NewCoordBufferBuilder returns an empty builder.
func NewCoordBufferBuilder(dim geoarrow.Dimension, ct geoarrow.CoordType) *CoordBufferBuilder {
	return &CoordBufferBuilder{dim: dim, coordType: ct}
}

// Dim returns the builder's dimension.
func (b *CoordBufferBuilder) Dim() geoarrow.Dimension { return b.dim }

// CoordType returns the builder's layout.
func (b *CoordBufferBuilder) CoordType() geoarrow.CoordType { return b.coordType }

// Len returns the number of coordinates pushed so far.
func (b *CoordBufferBuilder) Len() int {
	if b.coordType == geoarrow.Interleaved {
		return len(b.values) / b.dim.Size()
	}
	return len(b.axes[0])
}

// Reserve makes room for at least n more coordinates, growing geometrically.
func (b *CoordBufferBuilder) Reserve(n int) {
	if b.coordType == geoarrow.Interleaved {
		b.values = mem.Grow(b.values, n*b.dim.Size())
		return
	}
	for i := range b.dim.Size() {
		b.axes[i] = mem.Grow(b.axes[i], n)
	}
}

// ReserveExact makes room for exactly n more coordinates.
func (b *CoordBufferBuilder) ReserveExact(n int) {
	if b.coordType == geoarrow.Interleaved {
		b.values = mem.GrowExact(b.values, n*b.dim.Size())
		return
	}
	for i := range b.dim.Size() {
		b.axes[i] = mem.GrowExact(b.axes[i], n)
	}
}

// TryPushCoord appends c, failing with *geoarrow.ErrDimensionMismatch when
// c's dimension differs from the builder's.
func (b *CoordBufferBuilder) TryPushCoord(c traits.Coord) error {
	if err := geoarrow.CheckDimension(b.dim, c.Dim()); err != nil {
		return err
	}
	b.Reserve(1)
	if b.coordType == geoarrow.Interleaved {
		for n := range b.dim.Size() {
			b.values = append(b.values, c.NthUnchecked(n))
		}
		return nil
	}
	for n := range b.dim.Size() {
		b.axes[n] = append(b.axes[n], c.NthUnchecked(n))
	}
	return nil
}

// PushCoord appends c and panics on dimension mismatch.
func (b *CoordBufferBuilder) PushCoord(c traits.Coord) {
	geoarrow.Must(b.TryPushCoord(c))
}

// PushNaN appends a coordinate with every axis NaN.
func (b *CoordBufferBuilder) PushNaN() {
	b.Reserve(1)
	nan := math.NaN()
	if b.coordType == geoarrow.Interleaved {
		for range b.dim.Size() {
			b.values = append(b.values, nan)
		}
		return
	}
	for n := range b.dim.Size() {
		b.axes[n] = append(b.axes[n], nan)
	}
}

// PushValues appends one coordinate from raw axis values in storage order.
// len(values) must equal Dim().Size().
func (b *CoordBufferBuilder) PushValues(values ...float64) {
	if len(values) != b.dim.Size() {
		panic(&geoarrow.ErrDimensionMismatch{Expected: b.dim, Actual: dimensionOfSize(len(values), b.dim)})
	}
	b.Reserve(1)
	if b.coordType == geoarrow.Interleaved {
		b.values = append(b.values, values...)
		return
	}
	for n, v := range values {
		b.axes[n] = append(b.axes[n], v)
	}
}

func (b *CoordBufferBuilder) pushFrom(src CoordBuffer, i int) {
	if b.coordType == geoarrow.Interleaved {
		for n := range b.dim.Size() {
			b.values = append(b.values, src.Nth(i, n))
		}
		return
	}
	for n := range b.dim.Size() {
		b.axes[n] = append(b.axes[n], src.Nth(i, n))
	}
}

// Finish freezes the pushed coordinates into a CoordBuffer without copying.
// The builder must not be used afterwards.
func (b *CoordBufferBuilder) Finish() CoordBuffer {
	if b.coordType == geoarrow.Interleaved {
		c := &InterleavedCoords{dim: b.dim, values: b.values}
		b.values = nil
		return c
	}
	c := &SeparatedCoords{dim: b.dim, axes: b.axes}
	b.axes = [4][]float64{}
	return c
}
